package dto

type PackageRequest struct {
	RegionID       string   `json:"region_id" validate:"required,max=64"`
	MaxDays        *int     `json:"max_days" validate:"omitempty,gte=0"`
	MaxBudget      *float64 `json:"max_budget" validate:"omitempty,gte=0"`
	Policy         string   `json:"policy" validate:"omitempty,oneof=max sum"`
	BranchAndBound *bool    `json:"branch_and_bound"`
}

type SearchStatsResponse struct {
	Nodes            int `json:"nodes"`
	InfeasiblePrunes int `json:"infeasible_prunes"`
	SkippedTours     int `json:"skipped_tours"`
	BoundPrunes      int `json:"bound_prunes"`
}

type PackageResponse struct {
	RegionID       string              `json:"region_id"`
	Found          bool                `json:"found"`
	Tours          []TourResponse      `json:"tours"`
	Cost           float64             `json:"cost"`
	DurationDays   int                 `json:"duration_days"`
	Value          float64             `json:"value"`
	Cached         bool                `json:"cached"`
	CatalogVersion string              `json:"catalog_version"`
	Stats          SearchStatsResponse `json:"stats"`
}
