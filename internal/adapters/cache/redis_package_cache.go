package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"tour-package-service/internal/platform/obs"
	"tour-package-service/internal/ports"
)

const defaultKeyPrefix = "tourpkg:package:"

// RedisPackageCache is a Redis-backed cache of optimization results.
// Entries are JSON documents; expiry is left to Redis.
type RedisPackageCache struct {
	Client *redis.Client
	Prefix string
}

func NewRedisPackageCache(client *redis.Client) *RedisPackageCache {
	return &RedisPackageCache{Client: client, Prefix: defaultKeyPrefix}
}

// Fetch the cached result for key.
func (r *RedisPackageCache) Get(ctx context.Context, key string) (_ *ports.CachedPackage, _ bool, err error) {
	defer obs.Time(ctx, "package.cache.Get")(&err)

	if r.Client == nil {
		return nil, false, errors.New("package cache: client is nil")
	}

	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get package cache: key must not be empty")
	}

	raw, err := r.Client.Get(ctx, r.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get package cache: redis get: %w", err)
	}

	var out ports.CachedPackage
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false, fmt.Errorf("get package cache: decode entry: %w", err)
	}

	return &out, true, nil
}

// Store a result under key. A non-positive ttl keeps the entry until evicted.
func (r *RedisPackageCache) Put(ctx context.Context, key string, pkg ports.CachedPackage, ttl time.Duration) error {
	if r.Client == nil {
		return errors.New("package cache: client is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("insert package cache: key must not be empty")
	}

	if ttl < 0 {
		ttl = 0
	}

	raw, err := json.Marshal(pkg)
	if err != nil {
		return fmt.Errorf("insert package cache: encode entry: %w", err)
	}

	if err := r.Client.Set(ctx, r.Prefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("insert package cache: redis set: %w", err)
	}

	return nil
}
