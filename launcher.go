package posh

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
)

// jobControlSignals are masked to ignore in the parent around the
// Launcher and Job Controller critical sections, and reset to default
// dispositions on both exit paths.
var jobControlSignals = []os.Signal{
	unix.SIGINT, unix.SIGQUIT, unix.SIGTSTP, unix.SIGTTIN, unix.SIGTTOU,
}

func ignoreJobControlSignals() { signal.Ignore(jobControlSignals...) }

func restoreJobControlSignals() { signal.Reset(jobControlSignals...) }

// ExecFailedError reports that execve(2) failed inside the forked
// child. It is the Go-native replacement for the source's "child
// exits with code -1 on exec failure" contract: os/exec already
// plumbs this back through a close-on-exec pipe internally and
// surfaces it as a Start error, so there is nothing left for us to
// hand-roll.
type ExecFailedError struct {
	Path string
	Err  error
}

func (e *ExecFailedError) Error() string { return fmt.Sprintf("exec %s: %v", e.Path, e.Err) }

func (e *ExecFailedError) Unwrap() error { return e.Err }

// Launch is the Process Launcher: it forks, places the child in its
// own process group, grants or withholds the controlling terminal,
// and — for a foreground job — blocks until the job leaves the
// Running state.
//
// args is the original token array, untouched: args[0] is the bare
// name the user typed (the one the Resolver searched PATH for), not
// the resolved path. execv(command, args) replaces only the program
// image at path; argv[0] as the child sees it must stay args[0], so
// exec.Command's own args[0] (which it sets to path) is overwritten
// immediately after construction.
//
// Race-freedom: Go cannot safely run arbitrary user code between
// fork and exec (the runtime is multi-threaded; only the raw
// syscalls inside the fork/exec trampoline are safe there). Rather
// than hand-roll the source's sem_wait/sem_post handshake around a
// race we cannot actually create, Launch asks the trampoline itself
// to perform setpgid(child, child) and, for foreground jobs, the
// terminal-foreground ioctl — both of which it does unconditionally
// before calling execve, with no user-space scheduling window at
// all. That is a strictly stronger guarantee than the source's
// semaphore, which only orders two already-running processes.
func (sh *Shell) Launch(path string, args []string, background bool, command string) error {
	ignoreJobControlSignals()
	defer restoreJobControlSignals()

	foreground := !background && sh.interactive

	cmd := exec.Command(path, args[1:]...)
	cmd.Args[0] = args[0]
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid:    true,
		Pgid:       0,
		Foreground: foreground,
		Ctty:       0,
	}

	jobIndex := sh.nextJobNum

	if err := cmd.Start(); err != nil {
		return classifyStartError(path, err)
	}

	job := &Job{Command: command, Pid: cmd.Process.Pid, State: Running, Background: background}
	sh.Jobs.Append(job)
	sh.nextJobNum = jobIndex + 1

	fmt.Fprint(sh.stdout, formatStatusLine(&StatusEvent{
		Job: job, JobIndexAtTime: jobIndex, State: Running, Background: background,
	}))

	if background {
		return nil
	}

	sh.foreground = job
	if err := sh.compositeWait(); err != nil {
		return err
	}
	return sh.reclaimTerminal()
}

// reclaimTerminal hands the controlling terminal back to the shell's
// own process group after a foreground wait returns.
func (sh *Shell) reclaimTerminal() error {
	if !sh.interactive {
		return nil
	}
	if err := unix.IoctlSetInt(0, unix.TIOCSPGRP, sh.pgid); err != nil {
		return fatalf(ExitSyscallFailure, "tcsetpgrp", err)
	}
	return nil
}

// classifyStartError distinguishes recoverable fork-resource
// exhaustion from everything else, which is fatal.
func classifyStartError(path string, err error) error {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.EAGAIN:
			return &RecoverableForkError{Reason: "Couldn't create the process: process limit exceeded."}
		case syscall.ENOMEM:
			return &RecoverableForkError{Reason: "Not enough memory to create the process."}
		}
	}
	if errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission) {
		return &ExecFailedError{Path: path, Err: err}
	}
	return fatalf(ExitSyscallFailure, "fork", err)
}
