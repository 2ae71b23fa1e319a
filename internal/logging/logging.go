// Package logging sets up the session log file. The terminal belongs to
// the dashboard, so all diagnostics (API calls, mutation outcomes, poller
// failures) go to a file instead of stdout.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Open returns a logger writing to path, creating parent directories as
// needed, plus a close func for shutdown. Any failure degrades to a no-op
// logger: logging must never take the session down.
func Open(path string) (zerolog.Logger, func() error) {
	if path == "" {
		return zerolog.Nop(), noopClose
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), noopClose
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), noopClose
	}
	logger := zerolog.New(file).With().Timestamp().Logger()
	return logger, file.Close
}

// NewWriter builds a logger against an arbitrary writer, used by tests.
func NewWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

func noopClose() error { return nil }
