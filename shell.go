package posh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Shell owns every piece of job-control state: the Job Table, the
// current foreground job, the next job index, and the pending
// Status Event FIFO. It is constructed once at startup and driven
// entirely from one goroutine — there is no locking anywhere in this
// package because there is nothing else to race with.
type Shell struct {
	Jobs       *JobTable
	foreground *Job
	nextJobNum int
	pending    []*StatusEvent

	session     *Session
	logger      *Logger
	term        *termGuard
	interactive bool
	pgid        int

	stdin  *bufio.Scanner
	stdout io.Writer
	stderr io.Writer
}

// New constructs a Shell reading from stdin and writing to stdout and
// stderr, and claims its own process group the way a job-controlling
// shell must at startup.
func New() (*Shell, error) {
	pgid := os.Getpid()
	if err := unix.Setpgid(0, 0); err != nil && !errors.Is(err, unix.EPERM) {
		return nil, fatalf(ExitSyscallFailure, "setpgid", err)
	}

	sh := &Shell{
		Jobs:        &JobTable{},
		nextJobNum:  1,
		session:     NewSession(),
		logger:      NewLogger(os.Stderr, "posh: "),
		term:        newTermGuard(0),
		interactive: term.IsTerminal(0),
		pgid:        pgid,
		stdin:       bufio.NewScanner(os.Stdin),
		stdout:      os.Stdout,
		stderr:      os.Stderr,
	}
	return sh, nil
}

// Run is the Shell Loop (§4.8): drain and flush, prompt, read a
// line, tokenize, dispatch. It returns nil on a clean exit (EOF or
// the exit built-in) and a *FatalError for anything the CLI contract
// maps to a non-zero exit code.
func (sh *Shell) Run() error {
	sh.logger.Infof("session %s started at %s for %s@%s (uid %d)",
		sh.session.SessionID, sh.session.StartTime.Format("2006-01-02 15:04:05"),
		sh.session.UserName, sh.session.Hostname, sh.session.UserID)
	fmt.Fprintln(sh.stdout, "Welcome to posh.")

	for {
		if err := sh.drainNonBlocking(); err != nil {
			return err
		}
		sh.flushEvents()

		cwd, err := os.Getwd()
		if err != nil {
			cwd = "?"
		}
		fmt.Fprint(sh.stdout, Prompt(cwd))

		if !sh.stdin.Scan() {
			if err := sh.stdin.Err(); err != nil {
				return fatalf(ExitReadFailure, "read", err)
			}
			break
		}

		line := sh.stdin.Text()

		tokens, err := Tokenize(line, DefaultDelimiters)
		if err != nil {
			return err
		}

		tokens, background := ExtractBackground(tokens)
		if len(tokens) == 0 {
			continue
		}

		if err := sh.dispatch(tokens, background); err != nil {
			if errors.Is(err, errExit) {
				break
			}
			var fatal *FatalError
			if errors.As(err, &fatal) {
				return fatal
			}
			var recoverable *RecoverableForkError
			if errors.As(err, &recoverable) {
				sh.logger.Warnf("%v", recoverable)
				continue
			}
			fmt.Fprintln(sh.stdout, err)
		}
	}

	if err := sh.drainNonBlocking(); err != nil {
		return err
	}
	sh.flushEvents()
	fmt.Fprintln(sh.stdout, "Bye.")
	return nil
}

// builtinNames is every recognized built-in command name, dispatched
// before falling through to the Resolver and Process Launcher.
var builtinNames = map[string]bool{
	"cd": true, "pwd": true, "exit": true, "jobs": true,
	"fg": true, "bg": true, "help": true,
}

func (sh *Shell) dispatch(tokens []string, background bool) error {
	name := tokens[0]

	if builtinNames[name] {
		sh.logger.Infof("%s is a built-in command", name)
		return sh.runBuiltin(name, tokens[1:])
	}

	path, err := sh.Resolve(name)
	if err != nil {
		return err
	}

	sh.logger.Infof("Executing [%s]...", path)
	return sh.Launch(path, tokens, background, path)
}
