package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	domain "github.com/NovaClinicSystems/clinic-scheduler/internal/domain/schedule"
)

// IntentStore parks a PendingBookingIntent while the patient goes through
// login. Intents are single-use and expire on their own.
type IntentStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewIntentStore(rdb *redis.Client, ttl time.Duration) *IntentStore {
	return &IntentStore{rdb: rdb, ttl: ttl}
}

func intentKey(id string) string {
	return fmt.Sprintf("booking-intent:%s", id)
}

func (s *IntentStore) Save(
	ctx context.Context,
	intent domain.PendingBookingIntent,
) (string, error) {

	raw, err := json.Marshal(intent)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	if err := s.rdb.Set(ctx, intentKey(id), raw, s.ttl).Err(); err != nil {
		return "", err
	}

	return id, nil
}

// Take retrieves and deletes the intent. A missing or expired id yields
// (nil, nil): the login flow simply continues without a resumed booking.
func (s *IntentStore) Take(
	ctx context.Context,
	id string,
) (*domain.PendingBookingIntent, error) {

	raw, err := s.rdb.GetDel(ctx, intentKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var intent domain.PendingBookingIntent
	if err := json.Unmarshal(raw, &intent); err != nil {
		return nil, nil
	}

	return &intent, nil
}
