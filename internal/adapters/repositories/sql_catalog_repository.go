package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tour-package-service/internal/domain"
	"tour-package-service/internal/platform/obs"
)

// SQL-backed implementation of the CatalogSource port.
// Queries take no parameters, so the same repository serves SQLite and PostgreSQL.
type SQLCatalogRepository struct{ DB *sql.DB }

func NewSQLCatalogRepository(db *sql.DB) *SQLCatalogRepository {
	return &SQLCatalogRepository{DB: db}
}

// Return all regions stored in the database.
func (s *SQLCatalogRepository) ListRegions(ctx context.Context) (_ []domain.Region, err error) {
	defer obs.Time(ctx, "catalog.repo.ListRegions")(&err)

	if s.DB == nil {
		return nil, errors.New("sql catalog repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT
		id,
		name
	FROM regions
	ORDER BY id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list regions: query regions table: %w", err)
	}
	defer rows.Close()

	regions := make([]domain.Region, 0, 16)
	for rows.Next() {
		var r domain.Region
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, fmt.Errorf("list regions: scan row: %w", err)
		}
		regions = append(regions, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list regions: row iteration: %w", err)
	}

	return regions, nil
}

// Return all tours stored in the database.
func (s *SQLCatalogRepository) ListTours(ctx context.Context) (_ []domain.Tour, err error) {
	defer obs.Time(ctx, "catalog.repo.ListTours")(&err)

	if s.DB == nil {
		return nil, errors.New("sql catalog repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT
		id,
		region_id,
		name,
		cost,
		duration_days
	FROM tours
	ORDER BY id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list tours: query tours table: %w", err)
	}
	defer rows.Close()

	tours := make([]domain.Tour, 0, 64)
	for rows.Next() {
		var t domain.Tour
		if err := rows.Scan(&t.ID, &t.RegionID, &t.Name, &t.Cost, &t.DurationDays); err != nil {
			return nil, fmt.Errorf("list tours: scan row: %w", err)
		}
		tours = append(tours, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tours: row iteration: %w", err)
	}

	return tours, nil
}

// Return all attractions stored in the database.
func (s *SQLCatalogRepository) ListAttractions(ctx context.Context) (_ []domain.Attraction, err error) {
	defer obs.Time(ctx, "catalog.repo.ListAttractions")(&err)

	if s.DB == nil {
		return nil, errors.New("sql catalog repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT
		id,
		name,
		cultural_value
	FROM attractions
	ORDER BY id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list attractions: query attractions table: %w", err)
	}
	defer rows.Close()

	attractions := make([]domain.Attraction, 0, 64)
	for rows.Next() {
		var a domain.Attraction
		if err := rows.Scan(&a.ID, &a.Name, &a.CulturalValue); err != nil {
			return nil, fmt.Errorf("list attractions: scan row: %w", err)
		}
		attractions = append(attractions, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attractions: row iteration: %w", err)
	}

	return attractions, nil
}

// Return every tour/attraction link stored in the database.
func (s *SQLCatalogRepository) ListTourAttractionLinks(ctx context.Context) (_ []domain.Link, err error) {
	defer obs.Time(ctx, "catalog.repo.ListTourAttractionLinks")(&err)

	if s.DB == nil {
		return nil, errors.New("sql catalog repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT
		tour_id,
		attraction_id
	FROM tour_attractions
	ORDER BY tour_id, attraction_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list links: query tour_attractions table: %w", err)
	}
	defer rows.Close()

	links := make([]domain.Link, 0, 128)
	for rows.Next() {
		var l domain.Link
		if err := rows.Scan(&l.TourID, &l.AttractionID); err != nil {
			return nil, fmt.Errorf("list links: scan row: %w", err)
		}
		links = append(links, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list links: row iteration: %w", err)
	}

	return links, nil
}
