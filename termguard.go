package posh

import "golang.org/x/term"

// termGuard saves and restores the controlling terminal's termios
// state around a foreground job's composite wait. Ambient robustness
// the distilled spec is silent on: a foreground job that leaves the
// tty in raw or no-echo mode (a crashed full-screen program, for
// instance) should not corrupt the shell's own prompt.
type termGuard struct {
	fd    int
	saved *term.State
}

func newTermGuard(fd int) *termGuard { return &termGuard{fd: fd} }

// save captures the current termios state, if stdin is a terminal.
func (g *termGuard) save() {
	if !term.IsTerminal(g.fd) {
		return
	}
	state, err := term.GetState(g.fd)
	if err != nil {
		return
	}
	g.saved = state
}

// restore re-applies the saved termios state, if one was captured.
func (g *termGuard) restore() {
	if g.saved == nil {
		return
	}
	term.Restore(g.fd, g.saved)
	g.saved = nil
}
