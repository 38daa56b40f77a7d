package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tour-package-service/internal/adapters/repositories"
	"tour-package-service/internal/platform/db"
	"tour-package-service/internal/ports"
)

func newSQLTestCache(t *testing.T) (*SQLPackageCache, *time.Time) {
	t.Helper()

	conn, err := db.Open("sqlite", filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, repositories.InitSchema(conn))

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := NewSQLPackageCache(conn, repositories.SQLite)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestSQLPackageCacheMissThenHit(t *testing.T) {
	c, _ := newSQLTestCache(t)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	require.False(t, ok)

	entry := ports.CachedPackage{TourIDs: []int{1, 2}, Cost: 150, DurationDays: 3, Value: 13}
	require.NoError(t, c.Put(ctx, "k1", entry, time.Minute))

	got, ok, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, entry, *got)
}

func TestSQLPackageCacheOverwrite(t *testing.T) {
	c, _ := newSQLTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "k", ports.CachedPackage{TourIDs: []int{1}, Value: 5}, 0))
	require.NoError(t, c.Put(ctx, "k", ports.CachedPackage{TourIDs: []int{2}, Value: 8}, 0))

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []int{2}, got.TourIDs)
}

func TestSQLPackageCacheExpiry(t *testing.T) {
	c, now := newSQLTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "short", ports.CachedPackage{Value: -1}, time.Minute))
	require.NoError(t, c.Put(ctx, "forever", ports.CachedPackage{Value: 3}, 0))

	*now = now.Add(2 * time.Minute)

	_, ok, err := c.Get(ctx, "short")
	require.NoError(t, err)
	require.False(t, ok)

	n, err := c.DeleteExpired(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, ok, err = c.Get(ctx, "forever")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSQLPackageCacheRejectsEmptyKey(t *testing.T) {
	c, _ := newSQLTestCache(t)

	_, _, err := c.Get(context.Background(), " ")
	require.Error(t, err)
	require.Error(t, c.Put(context.Background(), "", ports.CachedPackage{}, 0))
}
