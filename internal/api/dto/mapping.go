package dto

import (
	"tour-package-service/internal/domain"
	"tour-package-service/internal/services"
)

func NewTourResponse(t domain.Tour) TourResponse {
	return TourResponse{
		ID:            t.ID,
		RegionID:      t.RegionID,
		Name:          t.Name,
		Cost:          t.Cost,
		DurationDays:  t.DurationDays,
		AttractionIDs: t.AttractionIDs(),
	}
}

// NewPackageResponse flattens a service result for JSON output.
func NewPackageResponse(res *services.PackageResult) PackageResponse {
	pkg := res.Package
	out := PackageResponse{
		RegionID:       pkg.RegionID,
		Found:          pkg.Found(),
		Tours:          make([]TourResponse, 0, len(pkg.Tours)),
		Cost:           pkg.Cost,
		DurationDays:   pkg.DurationDays,
		Value:          pkg.Value,
		Cached:         res.Cached,
		CatalogVersion: res.CatalogVersion,
		Stats: SearchStatsResponse{
			Nodes:            res.Stats.Nodes,
			InfeasiblePrunes: res.Stats.InfeasiblePrunes,
			SkippedTours:     res.Stats.SkippedTours,
			BoundPrunes:      res.Stats.BoundPrunes,
		},
	}
	for _, t := range pkg.Tours {
		out.Tours = append(out.Tours, NewTourResponse(t))
	}
	return out
}
