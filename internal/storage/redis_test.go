package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ignite/newsletter-subscriber/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisStoreWithClient(client, "newsletter:subscriber:"), mr
}

func TestRedisStoreInsertAndExists(t *testing.T) {
	s, mr := newTestRedisStore(t)
	ctx := context.Background()

	exists, err := s.Exists(ctx, "reader@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	sub := domain.NewSubscriber("Reader@Example.com", time.Now())
	require.NoError(t, s.Insert(ctx, sub))

	exists, err = s.Exists(ctx, " READER@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.True(t, mr.Exists("newsletter:subscriber:reader@example.com"))

	got, ok, err := s.Get(ctx, "reader@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sub.ID, got.ID)
	assert.Equal(t, domain.SubscriberActive, got.Status)
}

func TestRedisStoreFirstWriterWins(t *testing.T) {
	s, _ := newTestRedisStore(t)
	ctx := context.Background()

	first := domain.NewSubscriber("reader@example.com", time.Now())
	require.NoError(t, s.Insert(ctx, first))
	require.NoError(t, s.Insert(ctx, domain.NewSubscriber("reader@example.com", time.Now())))

	got, ok, err := s.Get(ctx, "reader@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first.ID, got.ID)
}

func TestRedisStoreGetMissing(t *testing.T) {
	s, _ := newTestRedisStore(t)

	got, ok, err := s.Get(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestRedisStoreUnavailable(t *testing.T) {
	s, mr := newTestRedisStore(t)
	ctx := context.Background()
	require.NoError(t, s.Ping(ctx))

	mr.Close()

	_, err := s.Exists(ctx, "reader@example.com")
	assert.Error(t, err)
	assert.Error(t, s.Insert(ctx, domain.NewSubscriber("reader@example.com", time.Now())))
	assert.Error(t, s.Ping(ctx))
}

func TestNewRedisStoreBadURL(t *testing.T) {
	_, err := NewRedisStore("not a url", "p:")
	assert.Error(t, err)

	s, err := NewRedisStore("redis://localhost:6379/3", "p:")
	require.NoError(t, err)
	assert.Equal(t, "redis", s.Name())
	assert.NoError(t, s.Close())
}
