package storage

import (
	"context"
	"time"

	"github.com/ignite/newsletter-subscriber/internal/domain"
	"github.com/ignite/newsletter-subscriber/internal/metrics"
	"github.com/ignite/newsletter-subscriber/internal/pkg/logger"
)

// Guard adapts a Backend to the subscription service's boolean store
// contract. Backend errors are logged and counted here, then converted to
// false: lookups fail closed ("not subscribed") and inserts report failure.
type Guard struct {
	backend Backend
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewGuard wraps backend. m may be nil.
func NewGuard(backend Backend, m *metrics.Metrics) *Guard {
	return &Guard{backend: backend, metrics: m, now: time.Now}
}

// IsSubscribed reports whether email is already stored. A backend error is
// treated as "not subscribed".
func (g *Guard) IsSubscribed(ctx context.Context, email string) bool {
	exists, err := g.backend.Exists(ctx, domain.NormalizeEmail(email))
	if err != nil {
		g.metrics.ObserveStorageError(g.backend.Name(), "exists")
		logger.Error("subscriber lookup failed",
			"backend", g.backend.Name(),
			"email", email,
			"error", err,
		)
		return false
	}
	return exists
}

// AddSubscriber stores a new active subscriber. It returns false if the
// backend rejected the write.
func (g *Guard) AddSubscriber(ctx context.Context, email string) bool {
	sub := domain.NewSubscriber(email, g.now())
	if err := g.backend.Insert(ctx, sub); err != nil {
		g.metrics.ObserveStorageError(g.backend.Name(), "insert")
		logger.Error("adding subscriber failed",
			"backend", g.backend.Name(),
			"email", sub.Email,
			"error", err,
		)
		return false
	}
	return true
}

// Ping checks backend reachability for readiness probes.
func (g *Guard) Ping(ctx context.Context) error {
	return g.backend.Ping(ctx)
}
