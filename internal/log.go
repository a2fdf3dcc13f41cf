package internal

import (
	"io"
	"log/slog"
)

// LoggerOrDiscard returns l, or a logger that drops all records if l is nil.
func LoggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}

	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
