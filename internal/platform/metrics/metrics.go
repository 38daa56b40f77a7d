// Package metrics declares the Prometheus collectors exported by the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Package optimizations by outcome ("found", "no_solution", "error").
	Searches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tourpkg_searches_total",
		Help: "Package optimizations by outcome.",
	}, []string{"outcome"})

	SearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tourpkg_search_duration_seconds",
		Help:    "Wall time of a single subset search.",
		Buckets: prometheus.ExponentialBuckets(0.00005, 4, 10), // 50us to ~13s
	})

	SearchNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tourpkg_search_nodes",
		Help:    "Search tree nodes visited per optimization.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 12),
	})

	// Pruned branches by reason ("infeasible", "no_new_attraction", "bound").
	SearchPrunes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tourpkg_search_prunes_total",
		Help: "Pruned search branches by reason.",
	}, []string{"reason"})

	// Result cache lookups by result ("hit", "miss", "error").
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tourpkg_cache_lookups_total",
		Help: "Package cache lookups by result.",
	}, []string{"result"})

	CatalogReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tourpkg_catalog_reloads_total",
		Help: "Catalog reloads by outcome.",
	}, []string{"outcome"})
)
