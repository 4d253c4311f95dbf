package posh

import (
	"os/exec"
	"strings"
	"syscall"
	"testing"

	"golang.org/x/sys/unix"
)

func TestResumeBgAlreadyBackgroundRunningIsNoOp(t *testing.T) {
	sh, stdout, _ := newTestShellWithBuffers()

	cmd := exec.Command("/bin/sleep", "30")
	spawnGroup(t, cmd)
	job := &Job{Command: "sleep 30", Pid: cmd.Process.Pid, State: Running, Background: true}
	sh.Jobs.Append(job)

	if err := sh.resume(job, backgroundMode); err != nil {
		t.Fatalf("resume(bg) failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "Nothing to do.") {
		t.Errorf("stdout = %q, want \"Nothing to do.\"", stdout.String())
	}
}

func TestResumeBgOnRunningForegroundJobIsForbidden(t *testing.T) {
	sh, _, _ := newTestShellWithBuffers()

	cmd := exec.Command("/bin/sleep", "30")
	spawnGroup(t, cmd)
	job := &Job{Command: "sleep 30", Pid: cmd.Process.Pid, State: Running, Background: false}
	sh.Jobs.Append(job)

	err := sh.resume(job, backgroundMode)
	if err == nil {
		t.Fatal("expected bg on a running foreground job to be rejected")
	}
	if _, ok := err.(*UserError); !ok {
		t.Fatalf("expected *UserError, got %T: %v", err, err)
	}
	if job.Background {
		t.Error("job.Background should be unchanged after a rejected transition")
	}
}

func TestResumeBgOnStoppedJobSendsSigcont(t *testing.T) {
	sh, _, _ := newTestShellWithBuffers()

	cmd := exec.Command("/bin/sleep", "30")
	spawnGroup(t, cmd)
	if err := unix.Kill(cmd.Process.Pid, unix.SIGSTOP); err != nil {
		t.Fatalf("SIGSTOP failed: %v", err)
	}
	var status unix.WaitStatus
	if _, err := unix.Wait4(cmd.Process.Pid, &status, unix.WUNTRACED, nil); err != nil {
		t.Fatalf("Wait4 failed: %v", err)
	}

	job := &Job{Command: "sleep 30", Pid: cmd.Process.Pid, State: Stopped, Background: false}
	sh.Jobs.Append(job)

	if err := sh.resume(job, backgroundMode); err != nil {
		t.Fatalf("resume(bg) on a stopped job failed: %v", err)
	}
	if !job.Background {
		t.Error("job.Background should be true after bg")
	}

	if _, err := unix.Wait4(cmd.Process.Pid, &status, unix.WCONTINUED, nil); err != nil {
		t.Fatalf("Wait4 after SIGCONT failed: %v", err)
	}
	state, transitioned := classifyStatus(status)
	if !transitioned || state != Running {
		t.Errorf("classifyStatus after bg = %v, %v; want Running, true", state, transitioned)
	}
}

func TestResumeFgAlreadyForegroundRunningIsNoOp(t *testing.T) {
	sh, stdout, _ := newTestShellWithBuffers()

	cmd := exec.Command("/bin/true")
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	t.Cleanup(func() { _, _ = cmd.Process.Wait() })

	job := &Job{Command: "true", Pid: cmd.Process.Pid, State: Running, Background: false}
	sh.Jobs.Append(job)
	sh.foreground = job

	// fg on a job already in foregroundMode and Running is a no-op
	// before the wait loop ever runs, so /bin/true's own quick exit
	// never needs to be observed here.
	if err := sh.resume(job, foregroundMode); err != nil {
		t.Fatalf("resume(fg) failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "Nothing to do.") {
		t.Errorf("stdout = %q, want \"Nothing to do.\"", stdout.String())
	}

	_ = unix.Kill(job.Pid, unix.SIGKILL)
}
