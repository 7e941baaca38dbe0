// Package postgres implements subscriber persistence against PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ignite/newsletter-subscriber/internal/domain"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Schema creates the subscriber table. The unique index on email makes
// inserts race-free at the storage layer.
const Schema = `
CREATE TABLE IF NOT EXISTS newsletter_subscribers (
	id            UUID PRIMARY KEY,
	email         TEXT NOT NULL,
	subscribed_at TIMESTAMPTZ NOT NULL,
	status        TEXT NOT NULL DEFAULT 'active'
);
CREATE UNIQUE INDEX IF NOT EXISTS newsletter_subscribers_email_key
	ON newsletter_subscribers (email);
`

// SubscriberRepo stores subscribers in the newsletter_subscribers table.
type SubscriberRepo struct{ db *sql.DB }

// NewSubscriberRepo creates a Postgres-backed subscriber repository.
func NewSubscriberRepo(db *sql.DB) *SubscriberRepo { return &SubscriberRepo{db: db} }

// Open connects to dsn and verifies the connection.
func Open(ctx context.Context, dsn string) (*SubscriberRepo, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return NewSubscriberRepo(db), nil
}

// Name identifies the backend in logs and metrics.
func (r *SubscriberRepo) Name() string { return "postgres" }

// EnsureSchema applies Schema.
func (r *SubscriberRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (r *SubscriberRepo) Exists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM newsletter_subscribers WHERE email = $1)`,
		domain.NormalizeEmail(email),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("subscriber exists: %w", err)
	}
	return exists, nil
}

func (r *SubscriberRepo) Insert(ctx context.Context, sub *domain.Subscriber) error {
	subscribedAt, err := sub.SubscribedTime()
	if err != nil {
		return fmt.Errorf("insert subscriber: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO newsletter_subscribers (id, email, subscribed_at, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING
	`, sub.ID, domain.NormalizeEmail(sub.Email), subscribedAt, string(sub.Status))
	if err != nil {
		return fmt.Errorf("insert subscriber: %w", err)
	}
	return nil
}

func (r *SubscriberRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SubscriberRepo) Close() error {
	return r.db.Close()
}
