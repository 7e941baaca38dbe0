// Package app assembles the subscription stack shared by the HTTP server
// and the Lambda entry point.
package app

import (
	"context"
	"fmt"

	"github.com/ignite/newsletter-subscriber/internal/config"
	"github.com/ignite/newsletter-subscriber/internal/metrics"
	"github.com/ignite/newsletter-subscriber/internal/pkg/logger"
	"github.com/ignite/newsletter-subscriber/internal/service/subscription"
	"github.com/ignite/newsletter-subscriber/internal/storage"
)

// App holds the wired components.
type App struct {
	Config  *config.Config
	Backend storage.Backend
	Store   *storage.Guard
	Metrics *metrics.Metrics
	Service *subscription.Service
}

// ConfigureLogger applies the log settings from cfg to the default logger.
func ConfigureLogger(cfg config.LogConfig) {
	logger.SetLevel(logger.ParseLevel(cfg.Level))
	logger.SetRedactPII(cfg.ShouldRedactPII())
}

// New builds the storage backend selected by cfg and the workflow on top of it.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	ConfigureLogger(cfg.Log)

	m := metrics.New()

	backend, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	guard := storage.NewGuard(backend, m)
	svc, err := subscription.NewService(subscription.Config{Store: guard, Metrics: m})
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("creating subscription service: %w", err)
	}

	logger.Info("storage initialized", "backend", backend.Name())

	return &App{
		Config:  cfg,
		Backend: backend,
		Store:   guard,
		Metrics: m,
		Service: svc,
	}, nil
}

// Close releases the storage backend.
func (a *App) Close() error {
	return a.Backend.Close()
}
