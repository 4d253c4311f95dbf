package posh

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"syscall"
)

// errExit signals a clean shutdown requested by the exit built-in.
var errExit = errors.New("exit")

func (sh *Shell) runBuiltin(name string, args []string) error {
	switch name {
	case "cd":
		return sh.builtinCd(args)
	case "pwd":
		return sh.builtinPwd()
	case "exit":
		return errExit
	case "jobs":
		return sh.builtinJobs()
	case "fg":
		return sh.builtinFg(args)
	case "bg":
		return sh.builtinBg(args)
	case "help":
		return sh.builtinHelp()
	default:
		return userErrorf("%s: not a built-in command", name)
	}
}

// builtinCd changes the working directory, classifying the common
// errnos a shell's cd is expected to handle and treating anything
// else as fatal.
func (sh *Shell) builtinCd(args []string) error {
	if len(args) < 1 || args[0] == "" {
		fmt.Fprintln(sh.stdout, "cd: please specify a proper directory.")
		return nil
	}

	dir := args[0]
	fmt.Fprintf(sh.stdout, "Switching to [%s]...\n", dir)

	if err := os.Chdir(dir); err != nil {
		var errno syscall.Errno
		if errors.As(err, &errno) {
			switch errno {
			case syscall.EACCES:
				fmt.Fprintln(sh.stdout, "cd: access denied.")
				return nil
			case syscall.ENOENT:
				fmt.Fprintln(sh.stdout, "cd: directory not found.")
				return nil
			case syscall.ENOTDIR:
				fmt.Fprintln(sh.stdout, "cd: the specified path is not a directory.")
				return nil
			case syscall.ENAMETOOLONG:
				fmt.Fprintln(sh.stdout, "cd: the path is too long.")
				return nil
			}
		}
		return fatalf(ExitSyscallFailure, "chdir", err)
	}
	return nil
}

func (sh *Shell) builtinPwd() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fatalf(ExitSyscallFailure, "getwd", err)
	}
	fmt.Fprintln(sh.stdout, cwd)
	return nil
}

func (sh *Shell) builtinJobs() error {
	jobs := sh.Jobs.All()
	fmt.Fprintf(sh.stdout, "%d jobs in total.\n\n", len(jobs))
	for i, job := range jobs {
		fmt.Fprint(sh.stdout, formatStatusLine(&StatusEvent{
			Job:            job,
			JobIndexAtTime: i + 1,
			State:          job.State,
			Status:         job.LastStatus,
			Background:     job.Background,
		}))
	}
	return nil
}

// parseJobArg validates that arg is a complete decimal integer in
// [1, nextJobNum) and resolves it to a job.
func (sh *Shell) parseJobArg(args []string, verb string) (*Job, error) {
	if len(args) < 1 || args[0] == "" {
		return nil, userErrorf("%s: please specify a proper job number.", verb)
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n >= sh.nextJobNum {
		return nil, userErrorf("%s: please specify a proper job number.", verb)
	}

	job, ok := sh.Jobs.At(n)
	if !ok {
		return nil, userErrorf("%s: please specify a proper job number.", verb)
	}
	return job, nil
}

func (sh *Shell) builtinFg(args []string) error {
	job, err := sh.parseJobArg(args, "fg")
	if err != nil {
		return err
	}
	return sh.resume(job, foregroundMode)
}

func (sh *Shell) builtinBg(args []string) error {
	job, err := sh.parseJobArg(args, "bg")
	if err != nil {
		return err
	}
	return sh.resume(job, backgroundMode)
}

func (sh *Shell) builtinHelp() error {
	fmt.Fprintln(sh.stdout, "Built-in commands:")
	for _, name := range []string{"cd", "pwd", "exit", "jobs", "fg", "bg", "help"} {
		fmt.Fprintf(sh.stdout, "  %s\n", name)
	}
	fmt.Fprintln(sh.stdout, "\nAppend '&' to a command line to run it in the background.")
	fmt.Fprintln(sh.stdout, "A command containing '/' is an explicit path; otherwise PATH is searched.")
	return nil
}
