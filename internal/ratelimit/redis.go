package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares counting buckets across instances through Redis.
// The window is enforced with a key TTL set on the first increment, so the
// fixed-window semantics match MemoryStore.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Store backed by the given Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Increment implements Store. Redis INCR is atomic, so concurrent requests
// from the same client cannot lose updates.
func (s *RedisStore) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, time.Time{}, err
	}

	if count == 1 {
		if err := s.client.PExpire(ctx, key, window).Err(); err != nil {
			return 0, time.Time{}, err
		}
		return count, time.Now().Add(window), nil
	}

	ttl, err := s.client.PTTL(ctx, key).Result()
	if err != nil {
		return 0, time.Time{}, err
	}
	if ttl < 0 {
		// Key exists without an expiry (e.g. a crash between INCR and
		// PEXPIRE). Re-arm the window rather than counting forever.
		if err := s.client.PExpire(ctx, key, window).Err(); err != nil {
			return 0, time.Time{}, err
		}
		ttl = window
	}

	return count, time.Now().Add(ttl), nil
}

// decrementScript only decrements a key that still exists. A forgive racing
// the window expiry must not recreate the bucket as a counter with no TTL.
var decrementScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
	return redis.call("DECR", KEYS[1])
end
return 0
`)

// Decrement implements Store. Decrementing an expired bucket is a no-op,
// matching MemoryStore.
func (s *RedisStore) Decrement(ctx context.Context, key string) error {
	return decrementScript.Run(ctx, s.client, []string{key}).Err()
}
