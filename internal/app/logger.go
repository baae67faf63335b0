package app

import (
	"io"
	"log/slog"
)

// logLevels maps the accepted -log-level values onto slog levels. The CLI
// validates against the same set before the config reaches us.
var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// newLogger builds the run's logger. It never touches the process-global
// logger: report output goes to the run's output writer and log lines go
// wherever the caller points them, and the two must not interleave.
// Unknown levels fall back to warn, the CLI default.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	level, ok := logLevels[levelStr]
	if !ok {
		level = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
