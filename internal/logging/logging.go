// Package logging builds the process logger from LogConfig.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spektr-org/finlit/internal/config"
)

// New creates a *slog.Logger writing to os.Stderr and sets it as the
// slog default. See NewWithWriter for the format rules.
func New(cfg config.LogConfig) *slog.Logger {
	logger := NewWithWriter(cfg, os.Stderr)
	slog.SetDefault(logger)
	return logger
}

// NewWithWriter creates a logger on w.
//
// Format "json" produces structured JSON output; anything else is text.
// Level is one of: debug, info, warn, error (case-insensitive); defaults to info.
func NewWithWriter(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps a level name onto slog.Level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
