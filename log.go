package posh

import (
	"fmt"
	"io"
	"log"
	"runtime"
	"strings"
)

// Logger is a small leveled wrapper over the standard library's
// log.Logger: diagnostic trace (session identity, resolver candidate
// results, "Executing [...]"  notices, recoverable fork errors) goes
// through here instead of raw Fprintf calls, tagged with a level and
// caller location.
type Logger struct {
	*log.Logger
}

// NewLogger builds a Logger writing to w, each line stamped with
// prefix and a timestamp.
func NewLogger(w io.Writer, prefix string) *Logger {
	return &Logger{log.New(w, prefix, log.Ldate|log.Ltime|log.Lmicroseconds)}
}

// Errorf logs a fatal-adjacent diagnostic.
func (l *Logger) Errorf(msg string, args ...any) {
	file, line := callerLocation(2)
	l.Printf("[ERROR] %s:%d --- %s", file, line, fmt.Sprintf(msg, args...))
}

// Warnf logs a recoverable-but-notable diagnostic.
func (l *Logger) Warnf(msg string, args ...any) {
	file, line := callerLocation(2)
	l.Printf("[WARN] %s:%d --- %s", file, line, fmt.Sprintf(msg, args...))
}

// Infof logs routine trace: session banners, resolver candidates,
// dispatch notices.
func (l *Logger) Infof(msg string, args ...any) {
	file, line := callerLocation(2)
	l.Printf("[INFO] %s:%d --- %s", file, line, fmt.Sprintf(msg, args...))
}

func callerLocation(depth int) (string, int) {
	_, file, line, ok := runtime.Caller(depth)
	if !ok {
		return "???", 0
	}
	parts := strings.Split(file, "/")
	if len(parts) > 3 {
		file = strings.Join(parts[len(parts)-3:], "/")
	}
	return file, line
}
