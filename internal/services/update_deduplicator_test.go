package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prefeitura-rio/bot-massagistas/internal/logging"
	"github.com/prefeitura-rio/bot-massagistas/internal/redisclient"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDeduplicator(t *testing.T, ttl time.Duration) (*UpdateDeduplicator, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	raw := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = raw.Close() })
	return NewUpdateDeduplicator(redisclient.NewClient(raw), ttl, logging.Logger), mr
}

func TestUpdateDeduplicator_FirstDelivery(t *testing.T) {
	dedup, mr := newTestDeduplicator(t, time.Minute)
	ctx := context.Background()

	assert.True(t, dedup.FirstDelivery(ctx, 100))
	assert.False(t, dedup.FirstDelivery(ctx, 100))
	assert.True(t, dedup.FirstDelivery(ctx, 101))

	require.True(t, mr.Exists("bot:update:100"))
	assert.Equal(t, time.Minute, mr.TTL("bot:update:100"))
}

func TestUpdateDeduplicator_Expiry(t *testing.T) {
	dedup, mr := newTestDeduplicator(t, time.Minute)
	ctx := context.Background()

	assert.True(t, dedup.FirstDelivery(ctx, 7))
	mr.FastForward(2 * time.Minute)
	assert.True(t, dedup.FirstDelivery(ctx, 7))
}

func TestUpdateDeduplicator_FailsOpen(t *testing.T) {
	dedup, mr := newTestDeduplicator(t, time.Minute)
	mr.Close()

	assert.True(t, dedup.FirstDelivery(context.Background(), 1))
	assert.True(t, dedup.FirstDelivery(context.Background(), 1))
}

func TestUpdateDeduplicator_Disabled(t *testing.T) {
	var nilDedup *UpdateDeduplicator
	assert.True(t, nilDedup.FirstDelivery(context.Background(), 1))

	noClient := NewUpdateDeduplicator(nil, time.Minute, logging.Logger)
	assert.True(t, noClient.FirstDelivery(context.Background(), 1))
	assert.True(t, noClient.FirstDelivery(context.Background(), 1))
}
