// Package internal contains core application functionality
package internal

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/karloscodes/cartridge"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"viteurl/internal/config"
	"viteurl/internal/server"
	"viteurl/internal/view"
	"viteurl/pkg/viteurl"
)

// Application wires configuration, logging, the Vite helper and the preview server
type Application struct {
	Config   *config.Config
	Logger   *slog.Logger
	Helper   *viteurl.Helper
	Server   *server.Server
	Registry *prometheus.Registry

	errs chan error
}

type appOptions struct {
	views  fs.FS
	logger *slog.Logger
}

// Option customizes NewApp.
type Option func(*appOptions)

// WithViews renders templates from views instead of the configured directory.
func WithViews(views fs.FS) Option {
	return func(o *appOptions) {
		o.views = views
	}
}

// WithLogger replaces the logger built from configuration.
func WithLogger(logger *slog.Logger) Option {
	return func(o *appOptions) {
		o.logger = logger
	}
}

// NewApp creates a new application instance from the process configuration
func NewApp(opts ...Option) (*Application, error) {
	return NewAppWithConfig(config.GetConfig(), opts...)
}

// NewAppWithConfig creates a new application with the provided config
func NewAppWithConfig(cfg *config.Config, opts ...Option) (*Application, error) {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		logger = cartridge.NewLogger(cfg, nil)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := server.NewMetrics(registry)

	helper, err := view.NewHelper(cfg, logger, viteurl.WithObserver(metrics.Observe))
	if err != nil {
		return nil, fmt.Errorf("failed to create vite helper: %w", err)
	}

	srv, err := server.New(server.Options{
		Config:   cfg,
		Logger:   logger,
		Helper:   helper,
		Gatherer: registry,
		Views:    o.views,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	return &Application{
		Config:   cfg,
		Logger:   logger,
		Helper:   helper,
		Server:   srv,
		Registry: registry,
		errs:     make(chan error, 1),
	}, nil
}

// StartAsync starts serving in the background; listen errors arrive on Errors.
func (a *Application) StartAsync() error {
	go func() {
		if err := a.Server.Listen(); err != nil {
			a.errs <- err
		}
	}()
	return nil
}

// Errors reports a failure of the background listener.
func (a *Application) Errors() <-chan error {
	return a.errs
}

// Shutdown gracefully stops the server.
func (a *Application) Shutdown(ctx context.Context) error {
	a.Logger.Info("Shutting down preview server")
	return a.Server.Shutdown(ctx)
}
