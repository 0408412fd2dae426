// Package logging configures structured diagnostics with slog and tint.
//
// The interactive transcript goes to stdout; diagnostics go to stderr so
// they never interleave with command output when stdout is redirected.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// EnvLevel names the environment variable that overrides the configured level.
const EnvLevel = "LOG_LEVEL"

// New returns a tint-backed logger writing to w at the given level. Colour
// is used only when w is a terminal.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(w),
	}))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Setup builds the process logger from the configured level name, letting
// LOG_LEVEL take precedence, and installs it as the slog default.
func Setup(configured string) *slog.Logger {
	name := configured
	if env := os.Getenv(EnvLevel); env != "" {
		name = env
	}
	logger := New(os.Stderr, ParseLevel(name))
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything else
// yields warn.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
