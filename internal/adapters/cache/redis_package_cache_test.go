package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"tour-package-service/internal/ports"
)

func newTestCache(t *testing.T) (*RedisPackageCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisPackageCache(client), mr
}

func TestRedisPackageCacheMissThenHit(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	require.False(t, ok)

	entry := ports.CachedPackage{TourIDs: []int{1, 2}, Cost: 150, DurationDays: 3, Value: 13}
	require.NoError(t, c.Put(ctx, "k1", entry, time.Minute))
	require.True(t, mr.Exists(defaultKeyPrefix+"k1"))

	got, ok, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, entry, *got)
}

func TestRedisPackageCacheExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "k", ports.CachedPackage{TourIDs: []int{}, Value: -1}, time.Second))
	mr.FastForward(2 * time.Second)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisPackageCacheCorruptEntry(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set(defaultKeyPrefix+"bad", "{not json"))

	_, _, err := c.Get(context.Background(), "bad")
	require.Error(t, err)
}

func TestRedisPackageCacheRejectsEmptyKey(t *testing.T) {
	c, _ := newTestCache(t)

	_, _, err := c.Get(context.Background(), " ")
	require.Error(t, err)
	require.Error(t, c.Put(context.Background(), "", ports.CachedPackage{}, 0))
}

func TestRedisPackageCacheServerDown(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	_, _, err := c.Get(context.Background(), "k")
	require.Error(t, err)
}
