package posh

import (
	"errors"
	"os"
	"strings"
	"syscall"

	"golang.org/x/sys/unix"
)

// candidates returns the ordered list of paths to probe for name: a
// single literal path if name contains a '/', otherwise one candidate
// per PATH directory.
func candidates(name string) []string {
	if strings.Contains(name, "/") {
		return []string{name}
	}

	var out []string
	for _, dir := range strings.Split(os.Getenv("PATH"), ":") {
		out = append(out, dir+"/"+name)
	}
	return out
}

// Resolve locates an executable given a bare command name or a
// path-qualified name, logging a trace per candidate. It returns a
// *UserError ("[<name>]: not a command") if nothing matches.
func (sh *Shell) Resolve(name string) (string, error) {
	for _, candidate := range candidates(name) {
		if err := unix.Access(candidate, unix.F_OK); err != nil {
			reason, fatal := classifyAccessErrno(err)
			if fatal {
				return "", fatalf(ExitSyscallFailure, "access", err)
			}
			sh.logger.Infof("%v", &ResolverCandidateError{Candidate: candidate, Reason: reason})
			continue
		}

		if err := unix.Access(candidate, unix.X_OK); err != nil {
			if isFatalAccessErrno(err) {
				return "", fatalf(ExitSyscallFailure, "access", err)
			}
			sh.logger.Infof("%v", &ResolverCandidateError{Candidate: candidate, Reason: "exists; cannot be executed."})
			continue
		}

		sh.logger.Infof("File [%s]: exists; executable.", candidate)
		return candidate, nil
	}

	return "", userErrorf("[%s]: not a command", name)
}

// classifyAccessErrno maps F_OK failures to a diagnostic string, or
// reports them as fatal when the errno is not one access(2) is
// expected to return for a routine missing-file check.
func classifyAccessErrno(err error) (reason string, fatal bool) {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return "", true
	}
	switch errno {
	case syscall.EACCES:
		return "access denied.", false
	case syscall.ELOOP:
		return "too many symbolic links.", false
	case syscall.ENAMETOOLONG:
		return "the path is too long.", false
	case syscall.ENOENT:
		return "not found.", false
	case syscall.ENOTDIR:
		return "wrong path.", false
	default:
		return "", true
	}
}

func isFatalAccessErrno(err error) bool {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return true
	}
	switch errno {
	case syscall.EFAULT, syscall.EINVAL, syscall.EIO, syscall.ENOMEM, syscall.ETXTBSY:
		return true
	default:
		return false
	}
}
