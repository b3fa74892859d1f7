package dedupe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smartpro/consultation-intake/pkg/logging"
)

// Redis is a Cache backed by a shared Redis instance, for deployments
// where duplicate suppression must hold across replicas. Expiry rides on
// Redis TTLs, so Sweep is a no-op.
type Redis struct {
	client *redis.Client
	window time.Duration
	prefix string
	logger *logging.Logger
}

// NewRedis creates a Redis-backed cache. prefix namespaces keys so the
// submission and webhook-call caches can share one instance.
func NewRedis(client *redis.Client, window time.Duration, prefix string, logger *logging.Logger) *Redis {
	if logger == nil {
		logger = logging.Default()
	}
	return &Redis{
		client: client,
		window: window,
		prefix: prefix,
		logger: logger,
	}
}

func (r *Redis) key(key string) string {
	return fmt.Sprintf("intake:%s:%s", r.prefix, key)
}

// Get returns the recorded timestamp for key if the entry has not expired.
func (r *Redis) Get(ctx context.Context, key string) (time.Time, bool, error) {
	raw, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("dedupe: redis get: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		// Unparseable entry is treated as absent rather than poisoning
		// the guard.
		r.logger.Warn("dropping malformed cache entry", "key", key, "value", raw)
		_ = r.client.Del(ctx, r.key(key)).Err()
		return time.Time{}, false, nil
	}
	return ts, true, nil
}

// Set records now for key with the window as TTL.
func (r *Redis) Set(ctx context.Context, key string, now time.Time) error {
	if err := r.client.Set(ctx, r.key(key), now.Format(time.RFC3339Nano), r.window).Err(); err != nil {
		return fmt.Errorf("dedupe: redis set: %w", err)
	}
	return nil
}

// SetIfAbsent reserves key atomically via SETNX with the window as TTL.
func (r *Redis) SetIfAbsent(ctx context.Context, key string, now time.Time) (bool, error) {
	won, err := r.client.SetNX(ctx, r.key(key), now.Format(time.RFC3339Nano), r.window).Result()
	if err != nil {
		return false, fmt.Errorf("dedupe: redis setnx: %w", err)
	}
	return won, nil
}

// Delete removes the entry for key.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("dedupe: redis del: %w", err)
	}
	return nil
}

// Sweep is a no-op: Redis expires entries itself.
func (r *Redis) Sweep(context.Context, time.Time) error {
	return nil
}
