package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type RegionSeed struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TourSeed struct {
	ID           int     `json:"id"`
	RegionID     string  `json:"region_id"`
	Name         string  `json:"name"`
	Cost         float64 `json:"cost"`
	DurationDays int     `json:"duration_days"`
}

type AttractionSeed struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	CulturalValue float64 `json:"cultural_value"`
}

type LinkSeed struct {
	TourID       int `json:"tour_id"`
	AttractionID int `json:"attraction_id"`
}

// Contents of a catalog seed file.
type CatalogSeed struct {
	Regions     []RegionSeed     `json:"regions"`
	Tours       []TourSeed       `json:"tours"`
	Attractions []AttractionSeed `json:"attractions"`
	Links       []LinkSeed       `json:"links"`
}

// Read and validate a catalog seed file.
func ReadSeed(jsonPath string) (*CatalogSeed, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read seed: read %q: %w", jsonPath, err)
	}

	var seed CatalogSeed
	if err := json.Unmarshal(bytes, &seed); err != nil {
		return nil, fmt.Errorf("read seed: parse json: %w", err)
	}

	if err := seed.validate(); err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}

	return &seed, nil
}

// Row-level checks only. Cross-table consistency is the catalog's job.
func (s *CatalogSeed) validate() error {
	for i := range s.Regions {
		s.Regions[i].ID = strings.TrimSpace(s.Regions[i].ID)
		if s.Regions[i].ID == "" {
			return fmt.Errorf("region at index %d: id cannot be empty", i+1)
		}
	}

	for i := range s.Tours {
		t := &s.Tours[i]
		t.RegionID = strings.TrimSpace(t.RegionID)
		switch {
		case t.ID <= 0:
			return fmt.Errorf("tour at index %d: invalid id %d", i+1, t.ID)
		case t.RegionID == "":
			return fmt.Errorf("tour id=%d: region_id cannot be empty", t.ID)
		case t.Cost < 0:
			return fmt.Errorf("tour id=%d: cost cannot be negative", t.ID)
		case t.DurationDays < 0:
			return fmt.Errorf("tour id=%d: duration_days cannot be negative", t.ID)
		}
	}

	for i, a := range s.Attractions {
		if a.ID <= 0 {
			return fmt.Errorf("attraction at index %d: invalid id %d", i+1, a.ID)
		}
		if a.CulturalValue < 0 {
			return fmt.Errorf("attraction id=%d: cultural_value cannot be negative", a.ID)
		}
	}

	for i, l := range s.Links {
		if l.TourID <= 0 || l.AttractionID <= 0 {
			return fmt.Errorf("link at index %d: invalid ids %d->%d", i+1, l.TourID, l.AttractionID)
		}
	}

	return nil
}

// Populate the database with catalog data from a JSON file.
// The previous catalog contents are replaced in a single transaction.
func SeedFromJSON(db *sql.DB, dialect Dialect, jsonPath string) error {
	seed, err := ReadSeed(jsonPath)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	return Seed(db, dialect, seed)
}

func Seed(db *sql.DB, dialect Dialect, seed *CatalogSeed) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed catalog: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"tour_attractions", "tours", "attractions", "regions"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("seed catalog: clear %s: %w", table, err)
		}
	}

	insert := func(query string, rows int, args func(i int) []any) error {
		stmt, err := tx.Prepare(dialect.Bind(query))
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		for i := 0; i < rows; i++ {
			if _, err := stmt.Exec(args(i)...); err != nil {
				return fmt.Errorf("insert row %d: %w", i+1, err)
			}
		}
		return nil
	}

	if err := insert(`INSERT INTO regions (id, name) VALUES (?, ?);`, len(seed.Regions), func(i int) []any {
		r := seed.Regions[i]
		return []any{r.ID, r.Name}
	}); err != nil {
		return fmt.Errorf("seed catalog: regions: %w", err)
	}

	if err := insert(`
	INSERT INTO tours (
		id,
		region_id,
		name,
		cost,
		duration_days
	)
	VALUES (?, ?, ?, ?, ?);
	`, len(seed.Tours), func(i int) []any {
		t := seed.Tours[i]
		return []any{t.ID, t.RegionID, t.Name, t.Cost, t.DurationDays}
	}); err != nil {
		return fmt.Errorf("seed catalog: tours: %w", err)
	}

	if err := insert(`INSERT INTO attractions (id, name, cultural_value) VALUES (?, ?, ?);`, len(seed.Attractions), func(i int) []any {
		a := seed.Attractions[i]
		return []any{a.ID, a.Name, a.CulturalValue}
	}); err != nil {
		return fmt.Errorf("seed catalog: attractions: %w", err)
	}

	if err := insert(`
	INSERT INTO tour_attractions (tour_id, attraction_id)
	VALUES (?, ?)
	ON CONFLICT (tour_id, attraction_id) DO NOTHING;
	`, len(seed.Links), func(i int) []any {
		l := seed.Links[i]
		return []any{l.TourID, l.AttractionID}
	}); err != nil {
		return fmt.Errorf("seed catalog: links: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed catalog: commit tx: %w", err)
	}

	return nil
}
