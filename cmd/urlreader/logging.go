package main

import (
	"io"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
	"golang.org/x/term"
)

// setupLogging installs a charmbracelet/log backed slog logger as the
// default, writing colored text to terminals and JSON otherwise.
func setupLogging(w io.Writer, verbose bool) *slog.Logger {
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
	})

	if verbose {
		handler.SetLevel(charmlog.DebugLevel)
	} else {
		handler.SetLevel(charmlog.InfoLevel)
	}

	if !isTerminal(w) {
		handler.SetFormatter(charmlog.JSONFormatter)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}
