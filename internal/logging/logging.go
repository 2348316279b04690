// Package logging builds the structured logger shared by all packages.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a [log.Logger] writing to w with timestamps enabled. Debug
// turns on debug level and caller reporting. w defaults to [os.Stderr].
func New(w io.Writer, debug bool) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := log.Options{
		ReportTimestamp: true,
		ReportCaller:    debug,
		Prefix:          "sqlite-grid",
	}
	l := log.NewWithOptions(w, opts)
	if debug {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// OpenFile opens path for appending log lines. The caller closes the file.
func OpenFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// WithSession returns a child logger tagged with a fresh session id.
func WithSession(l *log.Logger) *log.Logger {
	return l.With("session", SessionID())
}

// SessionID generates a new v4 [uuid.UUID] as a string.
func SessionID() string {
	return uuid.New().String()
}
