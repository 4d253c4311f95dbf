package posh

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// StatusEvent is an immutable snapshot of a job state transition,
// queued for reporting at the next safe point in the command loop.
type StatusEvent struct {
	Job            *Job
	JobIndexAtTime int
	State          State
	Status         unix.WaitStatus
	Background     bool
}

// classifyStatus maps a raw wait status word to the job state it
// represents, per the collector's state table.
func classifyStatus(status unix.WaitStatus) (State, bool) {
	switch {
	case status.Exited():
		return Done, true
	case status.Signaled():
		return Terminated, true
	case status.CoreDump():
		return Terminated, true
	case status.Stopped():
		return Stopped, true
	case status.Continued():
		return Running, true
	default:
		return Running, false
	}
}

// drainNonBlocking repeatedly polls for child status changes without
// blocking, consuming every ready transition before returning.
func (sh *Shell) drainNonBlocking() error {
	for {
		var status unix.WaitStatus
		pid, err := unix.Wait4(-1, &status, unix.WNOHANG|unix.WUNTRACED|unix.WCONTINUED, nil)
		if err == unix.ECHILD {
			return nil
		}
		if err != nil {
			return fatalf(ExitSyscallFailure, "wait4", err)
		}
		if pid <= 0 {
			return nil
		}
		if err := sh.recordTransition(pid, status); err != nil {
			return err
		}
	}
}

// waitOnceBlocking blocks for exactly one status change from any
// child and records it.
func (sh *Shell) waitOnceBlocking() error {
	var status unix.WaitStatus
	pid, err := unix.Wait4(-1, &status, unix.WUNTRACED|unix.WCONTINUED, nil)
	if err == unix.ECHILD {
		return nil
	}
	if err != nil {
		return fatalf(ExitSyscallFailure, "wait4", err)
	}
	return sh.recordTransition(pid, status)
}

// recordTransition locates the job a raw wait status belongs to,
// updates it, and enqueues a StatusEvent describing the transition.
func (sh *Shell) recordTransition(pid int, status unix.WaitStatus) error {
	job, ok := sh.Jobs.FindByPid(pid)
	if !ok {
		return fatalf(ExitJobTableCorrupt, "job-table",
			fmt.Errorf("wait4 reported pid %d, which is not a tracked job", pid))
	}

	state, transitioned := classifyStatus(status)
	if !transitioned {
		return nil
	}

	job.LastStatus = status
	job.State = state

	idx, _ := sh.Jobs.IndexOf(job)
	sh.pending = append(sh.pending, &StatusEvent{
		Job:            job,
		JobIndexAtTime: idx,
		State:          state,
		Status:         status,
		Background:     job.Background,
	})

	if sh.foreground == job && state != Running {
		sh.foreground = nil
	}

	return nil
}

// compositeWait drains any ready transitions, then blocks for more
// until no job is in the foreground. It is used after launching a
// foreground job and when fg resumes one.
func (sh *Shell) compositeWait() error {
	sh.term.save()
	defer sh.term.restore()

	if err := sh.drainNonBlocking(); err != nil {
		return err
	}
	for sh.foreground != nil {
		if err := sh.waitOnceBlocking(); err != nil {
			return err
		}
		if err := sh.drainNonBlocking(); err != nil {
			return err
		}
	}
	return nil
}
