package main

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// initLogging installs the default slog logger. JSON when HEXSCAN_JSON_LOG
// is 1, true or json, text otherwise.
func initLogging(w io.Writer) *slog.Logger {
	mode := strings.ToLower(os.Getenv("HEXSCAN_JSON_LOG"))
	opts := &slog.HandlerOptions{Level: levelFromEnv()}

	var handler slog.Handler
	if mode == "1" || mode == "true" || mode == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(handler).With("app", "hexscan")
	slog.SetDefault(logger)
	return logger
}

func levelFromEnv() slog.Leveler {
	switch strings.ToLower(os.Getenv("HEXSCAN_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
