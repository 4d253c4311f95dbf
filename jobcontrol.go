package posh

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Foreground mode, for readability at Job Controller call sites.
type mode bool

const (
	foregroundMode mode = true
	backgroundMode mode = false
)

// resume implements fg (foreground=true) and bg (foreground=false) for
// a job the caller has already looked up: resume it if stopped, and
// re-enter the foreground wait loop if the target mode is foreground.
func (sh *Shell) resume(job *Job, target mode) error {
	ignoreJobControlSignals()
	defer restoreJobControlSignals()

	wantForeground := bool(target)
	alreadyThere := job.Background != wantForeground
	if alreadyThere && job.State == Running {
		fmt.Fprintln(sh.stdout, "Nothing to do.")
		return nil
	}

	// REDESIGN FLAG: forbid silently backgrounding a running
	// foreground job instead of reproducing the source's unclean
	// terminal handoff.
	if target == backgroundMode && !job.Background && job.State == Running {
		return userErrorf("bg: job is already running in the foreground; use Ctrl-Z first")
	}

	job.Background = !wantForeground

	if job.State != Running {
		if err := unix.Kill(job.Pid, unix.SIGCONT); err != nil {
			return userErrorf("unable to resume process: %v", err)
		}
	}

	if target == backgroundMode {
		return nil
	}

	if sh.interactive {
		if err := unix.IoctlSetInt(0, unix.TIOCSPGRP, job.Pid); err != nil {
			return fatalf(ExitSyscallFailure, "tcsetpgrp", err)
		}
	}

	sh.foreground = job
	if err := sh.compositeWait(); err != nil {
		return err
	}
	return sh.reclaimTerminal()
}
