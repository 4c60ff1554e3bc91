package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/officegraph/internal/ctxlog"
	"github.com/vk/officegraph/internal/fsutil"
	"github.com/vk/officegraph/internal/hcl"
	"github.com/vk/officegraph/internal/metrics"
	"github.com/vk/officegraph/internal/persist"
	"github.com/vk/officegraph/internal/resolver"
)

// App encapsulates the application's dependencies and configuration.
type App struct {
	logger  *slog.Logger
	config  *Config
	metrics *metrics.Metrics
	codec   *hcl.Codec
	repo    *persist.Repository
}

// NewApp is the constructor for the main application. Logs go to logW.
func NewApp(logW io.Writer, cfg *Config) *App {
	logger := NewLogger(cfg, logW)
	logger.Debug("Logger configured successfully.", "level", cfg.LogLevel, "format", cfg.LogFormat)

	m := metrics.New()
	codec := hcl.NewCodec()
	return &App{
		logger:  logger,
		config:  cfg,
		metrics: m,
		codec:   codec,
		repo:    persist.NewRepository(codec, resolver.New(m)),
	}
}

// Config returns the application's configuration.
func (a *App) Config() *Config { return a.config }

// Metrics returns the counters collected by the application.
func (a *App) Metrics() *metrics.Metrics { return a.metrics }

func (a *App) withLogger(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// files expands the configured paths into office files.
func (a *App) files() ([]string, error) {
	files, err := fsutil.ExpandPaths(a.config.Paths, hcl.Extension)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found", hcl.Extension)
	}
	a.logger.Debug("Discovered office files.", "count", len(files))
	return files, nil
}
