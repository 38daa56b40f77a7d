package ports

import (
	"context"
	"time"
)

// Cached outcome of an optimization run. Tours are stored by id and
// rehydrated from the current catalog on a hit.
type CachedPackage struct {
	TourIDs      []int   `json:"tour_ids"`
	Cost         float64 `json:"cost"`
	DurationDays int     `json:"duration_days"`
	Value        float64 `json:"value"`
}

// Contract for storing optimization results keyed by request fingerprint.
type PackageCache interface {
	// Return the cached result for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) (*CachedPackage, bool, error)
	// Store a result for key with the given time to live.
	Put(ctx context.Context, key string, pkg CachedPackage, ttl time.Duration) error
}
