package posh

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// rawStatus returns the raw wait status word, the opaque value the
// data model calls last_status.
func rawStatus(s unix.WaitStatus) int { return int(s) }

// flushEvents drains the pending StatusEvent FIFO in order, printing
// each in the status-line format and purging jobs that have reached a
// terminal state. After it returns the FIFO is empty.
func (sh *Shell) flushEvents() {
	for _, ev := range sh.pending {
		fmt.Fprint(sh.stdout, formatStatusLine(ev))

		if ev.State == Done || ev.State == Terminated {
			sh.Jobs.Remove(ev.Job)
			sh.nextJobNum--
		}
	}
	sh.pending = sh.pending[:0]
}

// formatStatusLine renders a StatusEvent exactly as:
//
//	[<idx>] PID=<pid>\t<State>[ (status <raw>)]\t<command>[ &]\n
func formatStatusLine(ev *StatusEvent) string {
	line := fmt.Sprintf("[%d] PID=%d\t%s", ev.JobIndexAtTime, ev.Job.Pid, ev.State)
	if ev.State != Running {
		line += fmt.Sprintf(" (status %d)", rawStatus(ev.Status))
	}
	line += fmt.Sprintf("\t%s", ev.Job.Command)
	if ev.Background {
		line += " &"
	}
	return line + "\n"
}
