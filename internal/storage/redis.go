package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ignite/newsletter-subscriber/internal/domain"
	"github.com/ignite/newsletter-subscriber/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps one JSON value per subscriber under prefix+email.
// Inserts use SET NX, so the first writer for an address wins and later
// writers are no-ops.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to the Redis server described by url
// (redis://[:password@]host:port/db).
func NewRedisStore(url, prefix string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	return NewRedisStoreWithClient(redis.NewClient(opts), prefix), nil
}

// NewRedisStoreWithClient creates a store around an existing client.
func NewRedisStoreWithClient(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(email string) string {
	return s.prefix + domain.NormalizeEmail(email)
}

// Name implements Backend.
func (s *RedisStore) Name() string { return "redis" }

// Exists implements Backend.
func (s *RedisStore) Exists(ctx context.Context, email string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(email)).Result()
	if err != nil {
		return false, fmt.Errorf("checking subscriber key: %w", err)
	}
	return n > 0, nil
}

// Insert implements Backend.
func (s *RedisStore) Insert(ctx context.Context, sub *domain.Subscriber) error {
	data, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("marshaling subscriber: %w", err)
	}

	created, err := s.client.SetNX(ctx, s.key(sub.Email), data, 0).Result()
	if err != nil {
		return fmt.Errorf("writing subscriber key: %w", err)
	}
	if !created {
		logger.Debug("subscriber already present, keeping existing record", "email", sub.Email)
	}
	return nil
}

// Get loads the stored record for email. The second return is false when no
// record exists.
func (s *RedisStore) Get(ctx context.Context, email string) (*domain.Subscriber, bool, error) {
	data, err := s.client.Get(ctx, s.key(email)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading subscriber key: %w", err)
	}

	var sub domain.Subscriber
	if err := json.Unmarshal(data, &sub); err != nil {
		return nil, false, fmt.Errorf("unmarshaling subscriber: %w", err)
	}
	return &sub, true, nil
}

// Ping implements Backend.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close implements Backend.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
