package posh

import "testing"

func TestJobTableAppendAndAt(t *testing.T) {
	table := &JobTable{}
	a := &Job{Command: "a"}
	b := &Job{Command: "b"}
	c := &Job{Command: "c"}

	table.Append(a)
	table.Append(b)
	table.Append(c)

	if table.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", table.Len())
	}

	for i, want := range []*Job{a, b, c} {
		got, ok := table.At(i + 1)
		if !ok || got != want {
			t.Errorf("At(%d) = %v, %v; want %v, true", i+1, got, ok, want)
		}
	}

	if _, ok := table.At(0); ok {
		t.Error("At(0) should report false")
	}
	if _, ok := table.At(4); ok {
		t.Error("At(4) should report false for an out-of-range index")
	}
}

func TestJobTableIndicesShiftAfterRemoval(t *testing.T) {
	table := &JobTable{}
	a := &Job{Command: "a"}
	b := &Job{Command: "b"}
	c := &Job{Command: "c"}
	table.Append(a)
	table.Append(b)
	table.Append(c)

	table.Remove(a)

	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}

	// b, formerly at index 2, now occupies index 1: job indices are
	// positions, not stable identities.
	got, ok := table.At(1)
	if !ok || got != b {
		t.Fatalf("At(1) after removal = %v, %v; want %v, true", got, ok, b)
	}
	got, ok = table.At(2)
	if !ok || got != c {
		t.Fatalf("At(2) after removal = %v, %v; want %v, true", got, ok, c)
	}

	idx, ok := table.IndexOf(c)
	if !ok || idx != 2 {
		t.Errorf("IndexOf(c) = %d, %v; want 2, true", idx, ok)
	}
}

func TestJobTableRemoveHeadAndTail(t *testing.T) {
	table := &JobTable{}
	a := &Job{Command: "a"}
	table.Append(a)
	table.Remove(a)

	if table.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", table.Len())
	}
	if _, ok := table.At(1); ok {
		t.Error("At(1) on an empty table should report false")
	}

	b := &Job{Command: "b"}
	table.Append(b)
	if table.Len() != 1 {
		t.Fatalf("append after draining to empty: Len() = %d, want 1", table.Len())
	}
}

func TestJobTableFindByPid(t *testing.T) {
	table := &JobTable{}
	a := &Job{Command: "a", Pid: 100}
	b := &Job{Command: "b", Pid: 200}
	table.Append(a)
	table.Append(b)

	got, ok := table.FindByPid(200)
	if !ok || got != b {
		t.Fatalf("FindByPid(200) = %v, %v; want %v, true", got, ok, b)
	}

	if _, ok := table.FindByPid(999); ok {
		t.Error("FindByPid(999) should report false for an untracked pid")
	}
}

func TestJobTableAllIsSnapshot(t *testing.T) {
	table := &JobTable{}
	a := &Job{Command: "a"}
	table.Append(a)

	snap := table.All()
	if len(snap) != 1 {
		t.Fatalf("All() = %v, want 1 job", snap)
	}

	table.Remove(a)
	if len(snap) != 1 {
		t.Error("All()'s returned slice should not reflect later mutation")
	}
}
