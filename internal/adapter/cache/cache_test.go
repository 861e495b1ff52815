package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisUsageCacheMarkAndCheck(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	c := NewRedisUsageCache(client, 30*time.Minute)
	ctx := context.Background()

	assert.False(t, c.WasRecentlyUsed(ctx, "q-1"))
	c.MarkUsed(ctx, "q-1")
	assert.True(t, c.WasRecentlyUsed(ctx, "q-1"))
	assert.False(t, c.WasRecentlyUsed(ctx, "q-2"))

	ttl := srv.TTL(usedKeyPrefix + "q-1")
	assert.Equal(t, 30*time.Minute, ttl)
}

func TestRedisUsageCacheExpiry(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	c := NewRedisUsageCache(client, time.Minute)
	ctx := context.Background()

	c.MarkUsed(ctx, "q-1")
	srv.FastForward(2 * time.Minute)
	assert.False(t, c.WasRecentlyUsed(ctx, "q-1"))
}

func TestRedisUsageCacheDegradesOnFailure(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	c := NewRedisUsageCache(client, time.Minute)
	ctx := context.Background()

	srv.Close()
	assert.False(t, c.WasRecentlyUsed(ctx, "q-1"), "a broken cache reports nothing as used")
	c.MarkUsed(ctx, "q-1") // must not panic
}

func TestMemoryUsageCacheExpiry(t *testing.T) {
	t.Parallel()
	c := NewMemoryUsageCache(time.Minute)
	current := time.Unix(1_700_000_000, 0)
	c.now = func() time.Time { return current }
	ctx := context.Background()

	c.MarkUsed(ctx, "q-1")
	require.True(t, c.WasRecentlyUsed(ctx, "q-1"))

	current = current.Add(2 * time.Minute)
	assert.False(t, c.WasRecentlyUsed(ctx, "q-1"))
}
