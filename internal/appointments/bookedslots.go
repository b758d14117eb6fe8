package appointments

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/riddhima-gkmit/mindease-platform/pkg/logging"
)

// SlotSource loads booked slots from the store of record.
type SlotSource interface {
	BookedSlots(ctx context.Context, therapistID uuid.UUID, date string) ([]string, error)
}

// BookedSlotsCache fronts the repository's booked-slot lookup with Redis.
// Booking and cancellation invalidate the key so the next read is fresh.
// Redis failures degrade to the repository.
type BookedSlotsCache struct {
	source SlotSource
	rdb    *redis.Client
	ttl    time.Duration
	logger *logging.Logger
	tracer trace.Tracer
}

// NewBookedSlotsCache wires the cache. rdb may be nil, in which case every
// read goes to the source.
func NewBookedSlotsCache(source SlotSource, rdb *redis.Client, ttl time.Duration, logger *logging.Logger) *BookedSlotsCache {
	if source == nil {
		panic("appointments: slot source required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &BookedSlotsCache{
		source: source,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
		tracer: otel.Tracer("mindease.internal.appointments.bookedslots"),
	}
}

func slotKey(therapistID uuid.UUID, date string) string {
	return fmt.Sprintf("booked_slots:%s:%s", therapistID, date)
}

// BookedSlots returns the cached slot list, falling back to the source on
// a miss or a Redis error.
func (c *BookedSlotsCache) BookedSlots(ctx context.Context, therapistID uuid.UUID, date string) ([]string, error) {
	ctx, span := c.tracer.Start(ctx, "bookedslots.load")
	defer span.End()

	key := slotKey(therapistID, date)
	if c.rdb != nil {
		raw, err := c.rdb.Get(ctx, key).Bytes()
		if err == nil {
			var slots []string
			if jsonErr := json.Unmarshal(raw, &slots); jsonErr == nil {
				return slots, nil
			}
			c.logger.Warn("booked slots cache entry corrupt", "key", key)
		} else if err != redis.Nil {
			c.logger.Warn("booked slots cache read failed", "key", key, "error", err)
		}
	}

	slots, err := c.source.BookedSlots(ctx, therapistID, date)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if c.rdb != nil {
		raw, err := json.Marshal(slots)
		if err == nil {
			if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
				c.logger.Warn("booked slots cache write failed", "key", key, "error", err)
			}
		}
	}
	return slots, nil
}

// Invalidate drops the cached list for a therapist/date pair.
func (c *BookedSlotsCache) Invalidate(ctx context.Context, therapistID uuid.UUID, date string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, slotKey(therapistID, date)).Err(); err != nil {
		c.logger.Warn("booked slots cache invalidate failed", "therapist_id", therapistID, "date", date, "error", err)
	}
}
