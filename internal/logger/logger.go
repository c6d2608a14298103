// Package logger builds the application's structured loggers. The TUI keeps
// its terminal clean, so interactive runs log to a file or not at all, while
// CLI subcommands log to the console.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewConsole returns a console-friendly structured logger.
func NewConsole(level string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).Level(parseLevel(level)).With().Timestamp().Logger()
}

// NewWithWriter returns a structured logger writing JSON lines to w.
func NewWithWriter(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger()
}

// NewFile returns a logger appending to path, creating parent directories as
// needed. An empty path yields a disabled logger.
func NewFile(path, level string) (zerolog.Logger, func() error, error) {
	if strings.TrimSpace(path) == "" {
		return zerolog.Nop(), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	return NewWithWriter(f, level), f.Close, nil
}

func parseLevel(level string) zerolog.Level {
	l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || l == zerolog.NoLevel {
		return zerolog.WarnLevel
	}
	return l
}
