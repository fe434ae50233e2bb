// Package logging configures colored structured logging with tint.
//
// The interactive menu owns stdout, so logs go to stderr unless a writer is
// given.
//
// Usage:
//
//	logging.Setup()                             // level from LOG_LEVEL env
//	logging.SetupWithLevel(slog.LevelDebug)     // explicit level override
//	logging.SetupWithOptions(logging.Options{}) // writer, level, color
//
// Environment variables:
//
//	LOG_LEVEL: debug, info, warn, error (default: info)
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Options controls the default logger.
type Options struct {
	Writer  io.Writer // default os.Stderr
	Level   slog.Level
	NoColor bool
	RunID   string // attached to every record when set
}

// Setup configures colored logging at the level specified by LOG_LEVEL env var
// (default: INFO).
func Setup() {
	SetupWithLevel(levelFromEnv())
}

// SetupWithLevel configures colored logging at the given level.
func SetupWithLevel(level slog.Level) {
	SetupWithOptions(Options{Level: level})
}

// SetupWithOptions installs a tint handler as the slog default and returns
// the logger.
func SetupWithOptions(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	logger := slog.New(tint.NewHandler(w, &tint.Options{
		Level:      opts.Level,
		TimeFormat: time.Kitchen,
		AddSource:  opts.Level <= slog.LevelDebug,
		NoColor:    opts.NoColor,
	}))
	if opts.RunID != "" {
		logger = logger.With("run_id", opts.RunID)
	}
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps debug, info, warn and error to a level. Anything else is
// info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func levelFromEnv() slog.Level {
	return ParseLevel(os.Getenv("LOG_LEVEL"))
}
