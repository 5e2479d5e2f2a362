// Package logging configures the process wide slog logger.
package logging

import (
	"io"
	"log/slog"
)

// Setup installs a text logger writing to w as the slog default. Warnings
// and errors are always shown; verbose adds debug output.
func Setup(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
