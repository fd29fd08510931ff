// Package app initializes and holds the long-lived services shared by the
// CLI commands, acting as a small dependency injection container.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/velohist/regionharvest/internal/clock/system"
	"github.com/velohist/regionharvest/internal/config"
	"github.com/velohist/regionharvest/internal/logging"
	"github.com/velohist/regionharvest/internal/metrics"
)

// App holds the shared services for one process: configuration, the run
// logger with its durable file sink, the wall clock, and the metrics
// recorder. It is built once at startup and closed by a Cobra hook when the
// command finishes.
type App struct {
	cfg      config.Config
	logger   *zap.Logger
	closeLog func()
	clock    *system.Clock
	rec      *metrics.Recorder
}

// New loads configuration and wires up the shared services. It fails fast if
// the configuration is invalid or the run log cannot be opened.
func New(cfgPath string) (*App, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, closeLog, err := logging.New(cfg.Log.File, cfg.Log.Development)
	if err != nil {
		return nil, fmt.Errorf("init run log: %w", err)
	}

	return &App{
		cfg:      cfg,
		logger:   logger,
		closeLog: closeLog,
		clock:    system.New(),
		rec:      metrics.NewRecorder(),
	}, nil
}

// Config returns the loaded configuration.
func (a *App) Config() config.Config {
	return a.cfg
}

// Logger returns the shared zap logger backed by the durable run log.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Clock returns the wall clock used for result timestamps.
func (a *App) Clock() *system.Clock {
	return a.clock
}

// Metrics returns the process-wide metrics recorder.
func (a *App) Metrics() *metrics.Recorder {
	return a.rec
}

// Close flushes the logger and releases the run log file handle.
func (a *App) Close() {
	_ = a.logger.Sync()
	a.closeLog()
}
