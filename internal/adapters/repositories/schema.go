package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Dialect selects the bind-parameter style of the target database.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

// ParseDialect maps a database/sql driver name to its Dialect.
func ParseDialect(driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "pgx", "postgres", "postgresql":
		return Postgres, nil
	default:
		return 0, fmt.Errorf("parse dialect: unsupported driver %q", driver)
	}
}

// Bind rewrites "?" placeholders into the dialect's style.
func (d Dialect) Bind(query string) string {
	if d != Postgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Initialize the catalog schema. Statements are portable across SQLite and PostgreSQL.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createRegionsQuery := `
	CREATE TABLE IF NOT EXISTS regions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL
	);
	`

	createToursQuery := `
	CREATE TABLE IF NOT EXISTS tours (
		id INTEGER PRIMARY KEY,
		region_id TEXT NOT NULL,
		name TEXT NOT NULL,
		cost DOUBLE PRECISION NOT NULL,
		duration_days INTEGER NOT NULL
	);
	`

	createAttractionsQuery := `
	CREATE TABLE IF NOT EXISTS attractions (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		cultural_value DOUBLE PRECISION NOT NULL
	);
	`

	// No foreign keys: dangling links are reported by the catalog at load time.
	createLinksQuery := `
	CREATE TABLE IF NOT EXISTS tour_attractions (
		tour_id INTEGER NOT NULL,
		attraction_id INTEGER NOT NULL,
		PRIMARY KEY (tour_id, attraction_id)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_tours_region
	ON tours(region_id, id);
	`

	// Optimization results keyed by catalog version; expires_at is unix
	// seconds, 0 for no expiry.
	createPackageCacheQuery := `
	CREATE TABLE IF NOT EXISTS package_cache (
		cache_key TEXT PRIMARY KEY,
		entry TEXT NOT NULL,
		expires_at BIGINT NOT NULL
	);
	`

	statements := []string{
		createRegionsQuery,
		createToursQuery,
		createAttractionsQuery,
		createLinksQuery,
		createIndexQuery,
		createPackageCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
