package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"tour-package-service/internal/adapters/repositories"
	"tour-package-service/internal/platform/obs"
	"tour-package-service/internal/ports"
)

// SQLPackageCache stores optimization results in the package_cache table of
// the catalog database. It backs the service when Redis is not configured.
type SQLPackageCache struct {
	DB      *sql.DB
	Dialect repositories.Dialect

	now func() time.Time
}

func NewSQLPackageCache(db *sql.DB, dialect repositories.Dialect) *SQLPackageCache {
	return &SQLPackageCache{DB: db, Dialect: dialect, now: time.Now}
}

// Fetch the cached result for key. Expired rows read as misses.
func (s *SQLPackageCache) Get(ctx context.Context, key string) (_ *ports.CachedPackage, _ bool, err error) {
	defer obs.Time(ctx, "package.cache.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("package cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get package cache: key must not be empty")
	}

	q := s.Dialect.Bind(`
	SELECT entry, expires_at
	FROM package_cache
	WHERE cache_key = ?;
	`)

	var raw string
	var expiresAt int64
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&raw, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get package cache: query package_cache table: %w", err)
	}

	if expiresAt != 0 && expiresAt <= s.clock().Unix() {
		return nil, false, nil
	}

	var out ports.CachedPackage
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, false, fmt.Errorf("get package cache: decode entry: %w", err)
	}

	return &out, true, nil
}

// Store a result under key. A non-positive ttl keeps the entry until the key
// is overwritten.
func (s *SQLPackageCache) Put(ctx context.Context, key string, pkg ports.CachedPackage, ttl time.Duration) error {
	if s.DB == nil {
		return errors.New("package cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("insert package cache: key must not be empty")
	}

	raw, err := json.Marshal(pkg)
	if err != nil {
		return fmt.Errorf("insert package cache: encode entry: %w", err)
	}

	var expiresAt int64
	if ttl > 0 {
		expiresAt = s.clock().Add(ttl).Unix()
	}

	q := s.Dialect.Bind(`
	INSERT INTO package_cache (cache_key, entry, expires_at)
	VALUES (?, ?, ?)
	ON CONFLICT (cache_key) DO UPDATE
	SET entry = EXCLUDED.entry,
		expires_at = EXCLUDED.expires_at;
	`)

	if _, err := s.DB.ExecContext(ctx, q, key, string(raw), expiresAt); err != nil {
		return fmt.Errorf("insert package cache key=%q: %w", key, err)
	}

	return nil
}

// DeleteExpired removes rows whose ttl has passed and reports how many went.
func (s *SQLPackageCache) DeleteExpired(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("package cache: db is nil")
	}

	q := s.Dialect.Bind(`
	DELETE FROM package_cache
	WHERE expires_at <> 0 AND expires_at <= ?;
	`)

	res, err := s.DB.ExecContext(ctx, q, s.clock().Unix())
	if err != nil {
		return 0, fmt.Errorf("delete expired package cache: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired package cache: rows affected: %w", err)
	}
	return n, nil
}

func (s *SQLPackageCache) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}
