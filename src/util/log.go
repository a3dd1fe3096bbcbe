package util

import (
	"io"
	"log/slog"
)

// NewLogger creates a text logger writing to w. Verbose mode enables debug messages. It does not set the global
// logger.
func NewLogger(opt Options, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if opt.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
