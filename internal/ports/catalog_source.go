package ports

import (
	"context"
	"tour-package-service/internal/domain"
)

// Port: a boundary for reading complete catalog snapshots from a data source.
// Each call returns the full table; partial or streaming loads are not supported.
type CatalogSource interface {
	// Retrieve all regions.
	ListRegions(ctx context.Context) ([]domain.Region, error)
	// Retrieve all tours. Attraction sets are left empty; the catalog fills them from links.
	ListTours(ctx context.Context) ([]domain.Tour, error)
	// Retrieve all attractions. Tour sets are left empty.
	ListAttractions(ctx context.Context) ([]domain.Attraction, error)
	// Retrieve every tour/attraction link.
	ListTourAttractionLinks(ctx context.Context) ([]domain.Link, error)
}
