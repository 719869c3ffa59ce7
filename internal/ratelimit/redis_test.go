package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client), mr
}

func TestRedisStoreIncrementCounts(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		count, _, err := store.Increment(ctx, "client-a", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, count)
	}

	// Other clients count independently.
	count, _, err := store.Increment(ctx, "client-b", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRedisStoreWindowExpiryResetsCount(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	_, _, err := store.Increment(ctx, "client-a", time.Minute)
	require.NoError(t, err)
	_, _, err = store.Increment(ctx, "client-a", time.Minute)
	require.NoError(t, err)

	mr.FastForward(time.Minute + time.Second)

	count, _, err := store.Increment(ctx, "client-a", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRedisStoreDecrementRestoresBudget(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	_, _, err := store.Increment(ctx, "client-a", time.Minute)
	require.NoError(t, err)
	_, _, err = store.Increment(ctx, "client-a", time.Minute)
	require.NoError(t, err)

	require.NoError(t, store.Decrement(ctx, "client-a"))

	count, _, err := store.Increment(ctx, "client-a", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestRedisStoreDecrementExpiredBucketIsNoOp(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	_, _, err := store.Increment(ctx, "client-a", time.Minute)
	require.NoError(t, err)

	// The bucket expires before the forgive lands. The decrement must not
	// recreate the key: a bare DECR would leave a -1 counter with no TTL,
	// permanently skewing every later window for this client.
	mr.FastForward(time.Minute + time.Second)
	require.NoError(t, store.Decrement(ctx, "client-a"))

	assert.False(t, mr.Exists("client-a"))

	count, _, err := store.Increment(ctx, "client-a", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
