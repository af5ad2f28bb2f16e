package rate

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned by Store.Load when no rate has been saved yet.
var ErrNotFound = errors.New("interest rate not found")

// Store persists the default rate so it survives restarts.
type Store interface {
	Load(ctx context.Context) (float64, error)
	Save(ctx context.Context, rate float64) error
}

// RedisStore keeps the rate under a single Redis key.
type RedisStore struct {
	client redis.UniversalClient
	key    string
}

// NewRedisStore wraps client. An empty key selects the default key.
func NewRedisStore(client redis.UniversalClient, key string) *RedisStore {
	if key == "" {
		key = constants.DefaultRedisRateKey
	}
	return &RedisStore{client: client, key: key}
}

// Key returns the Redis key holding the rate.
func (s *RedisStore) Key() string {
	return s.key
}

// Load returns the saved rate or ErrNotFound.
func (s *RedisStore) Load(ctx context.Context) (float64, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read interest rate from redis: %w", err)
	}

	r, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid interest rate %q stored at %s: %w", val, s.key, err)
	}
	return r, nil
}

// Save overwrites the stored rate.
func (s *RedisStore) Save(ctx context.Context, rate float64) error {
	if err := s.client.Set(ctx, s.key, strconv.FormatFloat(rate, 'f', -1, 64), 0).Err(); err != nil {
		return fmt.Errorf("failed to write interest rate to redis: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
