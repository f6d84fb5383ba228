package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/restodeals/backend/pkg/logger"
	"github.com/restodeals/backend/pkg/redis"
)

// cartTTL bounds how long an abandoned cart lingers. Every save refreshes it.
const cartTTL = 30 * 24 * time.Hour

// Store persists the cart as one serialized blob per user.
type Store interface {
	Load(ctx context.Context, userID uuid.UUID) ([]Item, error)
	Save(ctx context.Context, userID uuid.UUID, items []Item) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type blobClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(userID string) string
}

type redisStore struct {
	client blobClient
	logg   *logger.Logger
}

func NewRedisStore(client *redis.Client, logg *logger.Logger) (Store, error) {
	if client == nil {
		return nil, errors.New("cart: redis client is required")
	}
	if logg == nil {
		return nil, errors.New("cart: logger is required")
	}
	return &redisStore{client: client, logg: logg}, nil
}

// Load rehydrates the cart blob. A missing key is an empty cart; a blob that
// no longer unmarshals is discarded and also read as empty, so one bad write
// can never wedge the cart.
func (s *redisStore) Load(ctx context.Context, userID uuid.UUID) ([]Item, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(userID.String()))
	if errors.Is(err, redis.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logCtx := s.logg.WithField(ctx, "user_id", userID)
		s.logg.Warn(logCtx, "discarding unreadable cart blob")
		if delErr := s.client.Del(ctx, s.client.CartKey(userID.String())); delErr != nil {
			s.logg.Error(ctx, "drop unreadable cart blob", delErr)
		}
		return nil, nil
	}
	return items, nil
}

func (s *redisStore) Save(ctx context.Context, userID uuid.UUID, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.client.CartKey(userID.String()), string(payload), cartTTL)
}

func (s *redisStore) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.client.Del(ctx, s.client.CartKey(userID.String()))
}
