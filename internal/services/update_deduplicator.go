package services

import (
	"context"
	"strconv"
	"time"

	"github.com/prefeitura-rio/bot-massagistas/internal/logging"
	"github.com/prefeitura-rio/bot-massagistas/internal/observability"
	"github.com/prefeitura-rio/bot-massagistas/internal/redisclient"
	"go.uber.org/zap"
)

const updateKeyPrefix = "bot:update:"

// UpdateDeduplicator remembers recently seen Telegram update IDs so that a
// webhook redelivery is not processed twice. Redis errors never block
// processing.
type UpdateDeduplicator struct {
	client *redisclient.Client
	ttl    time.Duration
	logger *logging.SafeLogger
}

// NewUpdateDeduplicator creates a deduplicator. A nil client disables it.
func NewUpdateDeduplicator(client *redisclient.Client, ttl time.Duration, logger *logging.SafeLogger) *UpdateDeduplicator {
	return &UpdateDeduplicator{
		client: client,
		ttl:    ttl,
		logger: logger.Named("dedup"),
	}
}

// FirstDelivery reports whether the update should be processed.
func (d *UpdateDeduplicator) FirstDelivery(ctx context.Context, updateID int) bool {
	if d == nil || d.client == nil {
		return true
	}

	key := updateKeyPrefix + strconv.Itoa(updateID)
	first, err := d.client.SetNX(ctx, key, time.Now().Unix(), d.ttl).Result()
	if err != nil {
		d.logger.Warn("update dedup unavailable, processing anyway",
			zap.Int("update_id", updateID),
			zap.Error(err))
		return true
	}

	if !first {
		observability.DuplicateUpdates.Inc()
		d.logger.Debug("skipping redelivered update", zap.Int("update_id", updateID))
	}
	return first
}
