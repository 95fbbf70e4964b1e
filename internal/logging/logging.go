// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// AppName names the state directory the log file lives in.
const AppName = "prayer-dashboard"

// DefaultLevel is used when no level is configured.
const DefaultLevel = zerolog.WarnLevel

// maxFileSize is the size at which the log file is rotated to ".old".
const maxFileSize = 5 << 20

// Path returns the dashboard log file location.
func Path() string {
	return filepath.Join(xdg.StateHome, AppName, "dashboard.log")
}

// ParseLevel parses a level name. An empty string means DefaultLevel.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return DefaultLevel, nil
	}
	l, err := zerolog.ParseLevel(s)
	if err != nil {
		return DefaultLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	if l == zerolog.NoLevel {
		return DefaultLevel, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}

// Init points the global logger at w. Loggers pulled from a context that
// carries none fall back to it.
func Init(w io.Writer, level zerolog.Level) {
	log.Logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log.Logger
}

// Console logs human-readable lines to stderr, for one-shot commands.
func Console(level zerolog.Level) {
	Init(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}, level)
}

// ToFile logs JSON lines to path, for when the dashboard owns the
// terminal. The returned closer flushes and closes the file.
func ToFile(path string, level zerolog.Level) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := rotate(path, maxFileSize); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	Init(f, level)
	return f, nil
}

// rotate moves path to path.old once it has grown past maxSize.
func rotate(path string, maxSize int64) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat log file: %w", err)
	}
	if info.Size() < maxSize {
		return nil
	}
	if err := os.Rename(path, path+".old"); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}
	return nil
}
