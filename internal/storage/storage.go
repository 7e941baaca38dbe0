// Package storage holds the subscriber storage backends and the fail-closed
// guard that adapts them to the subscription service's boolean contract.
package storage

import (
	"context"
	"fmt"

	"github.com/ignite/newsletter-subscriber/internal/config"
	"github.com/ignite/newsletter-subscriber/internal/domain"
	"github.com/ignite/newsletter-subscriber/internal/repository/postgres"
)

// Backend is the error-returning contract every storage implementation
// satisfies. Implementations must be safe for concurrent use.
type Backend interface {
	// Name identifies the backend in logs and metrics.
	Name() string

	// Exists reports whether a subscriber with the normalized email is stored.
	Exists(ctx context.Context, email string) (bool, error)

	// Insert persists a new subscriber record.
	Insert(ctx context.Context, sub *domain.Subscriber) error

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any client resources.
	Close() error
}

// New constructs the backend selected by cfg.Type.
func New(ctx context.Context, cfg config.StorageConfig) (Backend, error) {
	switch cfg.Type {
	case config.StorageMemory:
		return NewMemoryStore(), nil
	case config.StorageDynamoDB:
		store, err := NewDynamoDBStore(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("initializing DynamoDB storage: %w", err)
		}
		return store, nil
	case config.StorageRedis:
		store, err := NewRedisStore(cfg.RedisURL, cfg.RedisKeyPrefix)
		if err != nil {
			return nil, fmt.Errorf("initializing Redis storage: %w", err)
		}
		return store, nil
	case config.StoragePostgres:
		repo, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("initializing PostgreSQL storage: %w", err)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
