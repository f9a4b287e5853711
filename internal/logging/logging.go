// Package logging configures the client log. The TUI owns stdout, so log
// output goes to a JSON file under the storage directory.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options configure the client logger.
type Options struct {
	Path  string
	Level string
}

// Setup opens the log file, installs a JSON slog handler as the default
// logger, and returns a closer for shutdown. An unopenable path degrades to a
// discarding logger rather than failing startup.
func Setup(opts Options) (*slog.Logger, func() error) {
	var w io.Writer = io.Discard
	closer := func() error { return nil }

	if opts.Path != "" {
		file, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			w = file
			closer = file.Close
		}
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(opts.Level),
	})
	logger := slog.New(handler).With("app", "duka")
	slog.SetDefault(logger)
	return logger, closer
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
