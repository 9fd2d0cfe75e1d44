package shell

import (
	"io"
	"log/slog"
	"strings"
)

const defaultLogLevel = "info"

// NewLogger creates a structured JSON logger writing to w.
//
// The level is parsed case-insensitively (debug, info, warn, error).
// An unknown level falls back to info and the fallback itself is logged as a warning.
func NewLogger(level string, w io.Writer) *slog.Logger {
	var parsed slog.Level
	knownLevel := true

	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		parsed = slog.LevelDebug
	case "info", "":
		parsed = slog.LevelInfo
	case "warn", "warning":
		parsed = slog.LevelWarn
	case "error":
		parsed = slog.LevelError
	default:
		parsed = slog.LevelInfo
		knownLevel = false
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parsed}))

	if !knownLevel {
		logger.Warn("invalid log level configured, using default level",
			"configured_level", level,
			"default_level", defaultLogLevel)
	}

	return logger
}
