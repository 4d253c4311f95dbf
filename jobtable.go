package posh

import "golang.org/x/sys/unix"

// State is a job's lifecycle state.
type State int

const (
	Running State = iota
	Stopped
	Done
	Terminated
)

func (s State) String() string {
	switch s {
	case Running:
		return "Running"
	case Stopped:
		return "Stopped"
	case Done:
		return "Done"
	case Terminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// Job is a tracked child process. Jobs live only inside a JobTable;
// nothing outside the table owns one.
type Job struct {
	Command    string
	Pid        int
	LastStatus unix.WaitStatus
	State      State
	Background bool

	prev, next *Job
}

// JobTable is the ordered, doubly linked sequence of jobs described in
// the data model: O(1) append/remove, O(n) 1-based lookup by index,
// in-order iteration. It is only ever touched from the shell's main
// goroutine, so it carries no locking of its own.
type JobTable struct {
	head, tail *Job
	len        int
}

// Append adds job to the tail of the table.
func (t *JobTable) Append(job *Job) {
	job.prev, job.next = nil, nil
	if t.tail == nil {
		t.head, t.tail = job, job
	} else {
		job.prev = t.tail
		t.tail.next = job
		t.tail = job
	}
	t.len++
}

// Remove splices job out of the table. job must currently be a member
// of t; removing a job not in the table is a no-op.
func (t *JobTable) Remove(job *Job) {
	if job.prev != nil {
		job.prev.next = job.next
	} else if t.head == job {
		t.head = job.next
	} else {
		return
	}

	if job.next != nil {
		job.next.prev = job.prev
	} else if t.tail == job {
		t.tail = job.prev
	}

	job.prev, job.next = nil, nil
	t.len--
}

// At returns the job at the given 1-based index, walking from the
// head. The index is a position, not a stable identity: it changes as
// jobs ahead of it are removed.
func (t *JobTable) At(index int) (*Job, bool) {
	if index < 1 {
		return nil, false
	}
	i := 1
	for j := t.head; j != nil; j = j.next {
		if i == index {
			return j, true
		}
		i++
	}
	return nil, false
}

// IndexOf returns job's current 1-based position, or false if job is
// not a member of the table.
func (t *JobTable) IndexOf(job *Job) (int, bool) {
	i := 1
	for j := t.head; j != nil; j = j.next {
		if j == job {
			return i, true
		}
		i++
	}
	return 0, false
}

// FindByPid returns the job whose most recently recorded pid matches,
// or false if none does.
func (t *JobTable) FindByPid(pid int) (*Job, bool) {
	for j := t.head; j != nil; j = j.next {
		if j.Pid == pid {
			return j, true
		}
	}
	return nil, false
}

// Len reports the number of jobs currently in the table.
func (t *JobTable) Len() int { return t.len }

// All returns the jobs in table order. The returned slice is a
// snapshot; mutating the table afterward does not affect it.
func (t *JobTable) All() []*Job {
	jobs := make([]*Job, 0, t.len)
	for j := t.head; j != nil; j = j.next {
		jobs = append(jobs, j)
	}
	return jobs
}
