package services

import (
	"context"
	"sync"
	"time"

	"github.com/prefeitura-rio/bot-massagistas/internal/logging"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RateLimiter is a token bucket guarding the spreadsheet API quota.
// Every directory store call takes one token; tokens come back one per interval.
type RateLimiter struct {
	mu        sync.Mutex
	capacity  int
	available int
	interval  time.Duration
	updatedAt time.Time
	clock     func() time.Time
	logger    *logging.SafeLogger
}

// NewRateLimiter creates a full bucket of capacity tokens refilled one per interval
func NewRateLimiter(capacity int, interval time.Duration, logger *logging.SafeLogger) *RateLimiter {
	return newRateLimiterWithClock(capacity, interval, time.Now, logger)
}

// NewPerMinuteRateLimiter allows bursts of up to perMinute calls and a sustained perMinute calls per minute
func NewPerMinuteRateLimiter(perMinute int, logger *logging.SafeLogger) *RateLimiter {
	return NewRateLimiter(perMinute, time.Minute/time.Duration(perMinute), logger)
}

func newRateLimiterWithClock(capacity int, interval time.Duration, clock func() time.Time, logger *logging.SafeLogger) *RateLimiter {
	// Very high per-minute rates truncate the interval to zero.
	interval = max(interval, time.Nanosecond)
	return &RateLimiter{
		capacity:  capacity,
		available: capacity,
		interval:  interval,
		updatedAt: clock(),
		clock:     clock,
		logger:    logger,
	}
}

// Allow takes a token for operation, reporting false when the bucket is empty
func (rl *RateLimiter) Allow(ctx context.Context, operation string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refill()
	if rl.available > 0 {
		rl.available--
		return true
	}

	trace.SpanFromContext(ctx).AddEvent("store quota exhausted",
		trace.WithAttributes(attribute.String("operation", operation)))
	rl.logger.Warn("store quota exhausted",
		zap.String("operation", operation),
		zap.Int("capacity", rl.capacity),
		zap.Duration("refill_interval", rl.interval))
	return false
}

// refill credits whole intervals elapsed since the last update; caller holds mu.
func (rl *RateLimiter) refill() {
	earned := int(rl.clock().Sub(rl.updatedAt) / rl.interval)
	if earned <= 0 {
		return
	}
	rl.updatedAt = rl.updatedAt.Add(time.Duration(earned) * rl.interval)
	rl.available = min(rl.available+earned, rl.capacity)
}
