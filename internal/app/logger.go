package app

import (
	"io"
	"log/slog"
)

// Log formats accepted by Config.LogFormat.
const (
	LogText = "text"
	LogJSON = "json"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// NewLogger builds the logger described by cfg, writing to w. It does not
// set the global logger. Fields NewConfig would reject fall back to warnings
// rendered as text.
func NewLogger(cfg *Config, w io.Writer) *slog.Logger {
	level, ok := logLevels[cfg.LogLevel]
	if !ok {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.LogFormat == LogJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
