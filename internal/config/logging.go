package config

import (
	"io"
	"log/slog"
)

// NewLogger returns a text logger writing to w at the configured level.
func NewLogger(l Log, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l.SlogLevel()}))
}
