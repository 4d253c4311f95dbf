// Command posh is an interactive, POSIX job-controlling shell.
package main

import (
	"errors"
	"fmt"
	"os"

	"posh"
)

func main() {
	sh, err := posh.New()
	if err != nil {
		os.Exit(exitCode(err))
	}

	if err := sh.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var fatal *posh.FatalError
	if errors.As(err, &fatal) {
		return fatal.Code
	}
	return posh.ExitSyscallFailure
}
