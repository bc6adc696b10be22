package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// setupLogging configures the default slog logger from LOG_LEVEL.
// Logs go to stderr; stdout is reserved for report output. At debug level a
// tint handler prints colorized per-query timings, otherwise a plain text
// handler stays quiet in normal operation.
func setupLogging(env map[string]string) {
	logLevel := slog.LevelInfo

	if logLevelStr := env["LOG_LEVEL"]; logLevelStr != "" {
		if err := logLevel.UnmarshalText([]byte(logLevelStr)); err != nil {
			panic(fmt.Sprintf("invalid log level: %s", logLevelStr))
		}
	}

	if logLevel == slog.LevelDebug {
		handler := tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.TimeOnly,
		})

		slog.SetDefault(slog.New(handler))
		slog.Debug("debug logging enabled")

		return
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))
}
