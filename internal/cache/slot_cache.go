package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	domain "github.com/NovaClinicSystems/clinic-scheduler/internal/domain/schedule"
	ucschedule "github.com/NovaClinicSystems/clinic-scheduler/internal/usecase/schedule"
)

// SlotCache keeps annotated slot views in redis, keyed per doctor and
// date range. Redis being down degrades every call to a miss; the API
// never fails because of the cache.
type SlotCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func NewSlotCache(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *SlotCache {
	return &SlotCache{rdb: rdb, ttl: ttl, log: log}
}

func slotKey(doctorID uint, from, to time.Time) string {
	return fmt.Sprintf(
		"slots:%d:%s:%s",
		doctorID,
		from.Format(domain.DateKeyLayout),
		to.Format(domain.DateKeyLayout),
	)
}

func (c *SlotCache) GetSlots(
	ctx context.Context,
	doctorID uint,
	from time.Time,
	to time.Time,
) (map[string][]domain.Slot, bool) {

	raw, err := c.rdb.Get(ctx, slotKey(doctorID, from, to)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("slot cache get failed", zap.Uint("doctor_id", doctorID), zap.Error(err))
		return nil, false
	}

	var slots map[string][]domain.Slot
	if err := json.Unmarshal(raw, &slots); err != nil {
		c.log.Warn("slot cache entry corrupt, dropping", zap.Uint("doctor_id", doctorID), zap.Error(err))
		c.rdb.Del(ctx, slotKey(doctorID, from, to))
		return nil, false
	}

	return slots, true
}

func (c *SlotCache) SetSlots(
	ctx context.Context,
	doctorID uint,
	from time.Time,
	to time.Time,
	slots map[string][]domain.Slot,
) {

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, slotKey(doctorID, from, to), raw, c.ttl).Err(); err != nil {
		c.log.Warn("slot cache set failed", zap.Uint("doctor_id", doctorID), zap.Error(err))
	}
}

// Invalidate drops every cached range for the doctor, so the next query
// recomputes the view against current rules and appointments.
func (c *SlotCache) Invalidate(ctx context.Context, doctorID uint) {
	pattern := fmt.Sprintf("slots:%d:*", doctorID)

	iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("slot cache scan failed", zap.Uint("doctor_id", doctorID), zap.Error(err))
		return
	}

	if len(keys) == 0 {
		return
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("slot cache invalidation failed", zap.Uint("doctor_id", doctorID), zap.Error(err))
	}
}

// Compile-time check
var _ ucschedule.SlotCache = (*SlotCache)(nil)
