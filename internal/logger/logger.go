package logger

import (
	"io"
	"log/slog"
	"strings"
)

// New creates a structured JSON logger writing to w. A "debug" level also
// records the source location.
func New(level string, w io.Writer) *slog.Logger {
	logLevel := ParseLevel(level)
	debug := logLevel == slog.LevelDebug

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: debug,
	})

	return slog.New(handler)
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
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
