package posh

import (
	"os"
	"time"

	"github.com/google/uuid"
)

// Session is per-invocation identity metadata, stamped into the
// startup log line rather than anything job control depends on.
type Session struct {
	StartTime time.Time
	PID       int
	UserID    int
	UserName  string
	Hostname  string
	SessionID string
}

// NewSession initializes a new session from the current environment.
func NewSession() *Session {
	hostname, _ := os.Hostname()
	return &Session{
		StartTime: time.Now(),
		PID:       os.Getpid(),
		UserID:    os.Getuid(),
		UserName:  os.Getenv("USER"),
		Hostname:  hostname,
		SessionID: uuid.New().String(),
	}
}
