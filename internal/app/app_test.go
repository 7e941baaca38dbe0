package app

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/ignite/newsletter-subscriber/internal/config"
	"github.com/ignite/newsletter-subscriber/internal/pkg/logger"
	"github.com/ignite/newsletter-subscriber/internal/service/subscription"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogs(t *testing.T) {
	t.Helper()
	logger.SetOutput(io.Discard)
	t.Cleanup(func() {
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logger.INFO)
		logger.SetRedactPII(true)
	})
}

func TestNewMemory(t *testing.T) {
	quietLogs(t)

	a, err := New(context.Background(), &config.Config{
		Storage: config.StorageConfig{Type: config.StorageMemory},
	})
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, "memory", a.Backend.Name())

	ctx := context.Background()
	assert.Equal(t, subscription.OutcomeSubscribed, a.Service.SubscribeEmail(ctx, "a@b.com").Outcome)
	assert.Equal(t, subscription.OutcomeAlreadySubscribed, a.Service.SubscribeEmail(ctx, "A@B.com").Outcome)
	assert.True(t, a.Store.IsSubscribed(ctx, "a@b.com"))
}

func TestNewRedis(t *testing.T) {
	quietLogs(t)
	mr := miniredis.RunT(t)

	a, err := New(context.Background(), &config.Config{
		Storage: config.StorageConfig{
			Type:           config.StorageRedis,
			RedisURL:       "redis://" + mr.Addr() + "/0",
			RedisKeyPrefix: "test:",
		},
	})
	require.NoError(t, err)
	defer a.Close()

	res := a.Service.SubscribeEmail(context.Background(), "reader@example.com")
	assert.Equal(t, subscription.OutcomeSubscribed, res.Outcome)
	assert.True(t, mr.Exists("test:reader@example.com"))
}

func TestNewUnsupportedStorage(t *testing.T) {
	quietLogs(t)

	_, err := New(context.Background(), &config.Config{
		Storage: config.StorageConfig{Type: "cassandra"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported storage type: cassandra")
}
