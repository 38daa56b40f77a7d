package repositories

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"tour-package-service/internal/catalog"
)

const testSeed = `{
  "regions": [{"id": "R1", "name": "Nord"}, {"id": "R2", "name": "Sud"}],
  "tours": [
    {"id": 2, "region_id": "R1", "name": "Laghi", "cost": 50, "duration_days": 1},
    {"id": 1, "region_id": "R1", "name": "Colline", "cost": 100, "duration_days": 2}
  ],
  "attractions": [
    {"id": 1, "name": "Duomo", "cultural_value": 5},
    {"id": 2, "name": "Castello", "cultural_value": 3},
    {"id": 3, "name": "Museo", "cultural_value": 8}
  ],
  "links": [
    {"tour_id": 1, "attraction_id": 1},
    {"tour_id": 1, "attraction_id": 2},
    {"tour_id": 2, "attraction_id": 2},
    {"tour_id": 2, "attraction_id": 3},
    {"tour_id": 2, "attraction_id": 3}
  ]
}`

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// Each connection to :memory: is its own database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, InitSchema(db))
	return db
}

func writeSeed(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestSeedAndLoadCatalog(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, SeedFromJSON(db, SQLite, writeSeed(t, testSeed)))

	repo := NewSQLCatalogRepository(db)
	ctx := context.Background()

	regions, err := repo.ListRegions(ctx)
	require.NoError(t, err)
	require.Len(t, regions, 2)
	require.Equal(t, "R1", regions[0].ID)

	tours, err := repo.ListTours(ctx)
	require.NoError(t, err)
	require.Len(t, tours, 2)
	require.Equal(t, 1, tours[0].ID)
	require.Equal(t, 100.0, tours[0].Cost)
	require.Equal(t, 2, tours[0].DurationDays)

	links, err := repo.ListTourAttractionLinks(ctx)
	require.NoError(t, err)
	require.Len(t, links, 4, "duplicate link collapsed by primary key")

	c, err := catalog.Load(ctx, repo)
	require.NoError(t, err)
	require.Len(t, c.ToursInRegion("R1"), 2)

	a, ok := c.Attraction(2)
	require.True(t, ok)
	require.Equal(t, []int{1, 2}, a.TourIDs())
}

func TestSeedReplacesPreviousContents(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, SeedFromJSON(db, SQLite, writeSeed(t, testSeed)))

	smaller := `{"regions":[{"id":"R3","name":"Isole"}],"tours":[{"id":9,"region_id":"R3","name":"Mare","cost":10,"duration_days":1}],"attractions":[],"links":[]}`
	require.NoError(t, SeedFromJSON(db, SQLite, writeSeed(t, smaller)))

	tours, err := NewSQLCatalogRepository(db).ListTours(context.Background())
	require.NoError(t, err)
	require.Len(t, tours, 1)
	require.Equal(t, 9, tours[0].ID)
}

func TestLoadRejectsDanglingLinks(t *testing.T) {
	db := openTestDB(t)
	bad := `{"regions":[{"id":"R1","name":"Nord"}],"tours":[{"id":1,"region_id":"R1","name":"x","cost":1,"duration_days":1}],"attractions":[],"links":[{"tour_id":1,"attraction_id":42}]}`
	require.NoError(t, SeedFromJSON(db, SQLite, writeSeed(t, bad)))

	_, err := catalog.Load(context.Background(), NewSQLCatalogRepository(db))
	require.ErrorIs(t, err, catalog.ErrConsistency)
}

func TestReadSeedValidation(t *testing.T) {
	cases := map[string]string{
		"negative cost":  `{"tours":[{"id":1,"region_id":"R1","cost":-5,"duration_days":1}]}`,
		"missing region": `{"tours":[{"id":1,"region_id":" ","cost":5,"duration_days":1}]}`,
		"zero id":        `{"attractions":[{"id":0,"cultural_value":1}]}`,
		"bad link":       `{"links":[{"tour_id":0,"attraction_id":1}]}`,
		"malformed":      `{"tours":`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadSeed(writeSeed(t, body))
			require.Error(t, err)
		})
	}
}

func TestDialectBind(t *testing.T) {
	q := "INSERT INTO t (a, b) VALUES (?, ?);"

	require.Equal(t, q, SQLite.Bind(q))
	require.Equal(t, "INSERT INTO t (a, b) VALUES ($1, $2);", Postgres.Bind(q))

	d, err := ParseDialect("pgx")
	require.NoError(t, err)
	require.Equal(t, Postgres, d)

	_, err = ParseDialect("mysql")
	require.Error(t, err)
}

func TestRepositoryNilDB(t *testing.T) {
	_, err := NewSQLCatalogRepository(nil).ListTours(context.Background())
	require.Error(t, err)
	require.Error(t, InitSchema(nil))
}
