package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"tour-package-service/internal/catalog"
	"tour-package-service/internal/domain"
	"tour-package-service/internal/platform/metrics"
	"tour-package-service/internal/platform/obs"
	"tour-package-service/internal/ports"
)

type PackageRequest struct {
	RegionID       string
	MaxDays        *int
	MaxBudget      *float64
	Policy         string
	BranchAndBound bool
}

type PackageResult struct {
	Package        domain.Package
	Stats          SearchStats
	Cached         bool
	CatalogVersion string
}

// PackageService runs package optimizations against the current catalog
// snapshot. Results are cached per catalog version when a cache is
// configured, and identical in-flight requests share one search.
type PackageService struct {
	Catalog  *catalog.Holder
	Cache    ports.PackageCache
	CacheTTL time.Duration

	group singleflight.Group
}

func NewPackageService(holder *catalog.Holder, cache ports.PackageCache, ttl time.Duration) *PackageService {
	return &PackageService{Catalog: holder, Cache: cache, CacheTTL: ttl}
}

func (s *PackageService) Generate(ctx context.Context, req PackageRequest) (_ *PackageResult, err error) {
	defer obs.Time(ctx, "package.Generate")(&err)

	regionID := strings.TrimSpace(req.RegionID)
	if regionID == "" {
		return nil, fmt.Errorf("generate package: %w: region_id is required", ErrInvalidArgument)
	}

	policy, err := PolicyByName(req.Policy)
	if err != nil {
		return nil, fmt.Errorf("generate package: %w", err)
	}

	cons := Constraints{MaxDays: req.MaxDays, MaxBudget: req.MaxBudget}
	if err := cons.validate(); err != nil {
		return nil, fmt.Errorf("generate package: %w", err)
	}

	cat := s.Catalog.Load()
	if cat == nil {
		return nil, errors.New("generate package: catalog not loaded")
	}

	key := cacheKey(cat.Version(), regionID, cons, policy)

	if pkg, ok := s.lookup(ctx, cat, key, regionID); ok {
		return &PackageResult{Package: pkg, Cached: true, CatalogVersion: cat.Version()}, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		start := time.Now()
		pkg, stats, err := GeneratePackage(cat, regionID, cons, SearchOptions{
			Policy:         policy,
			BranchAndBound: req.BranchAndBound,
		})
		if err != nil {
			metrics.Searches.WithLabelValues("error").Inc()
			return nil, err
		}
		observeSearch(pkg, stats, time.Since(start))

		s.store(ctx, key, pkg)
		return &PackageResult{Package: pkg, Stats: stats, CatalogVersion: cat.Version()}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("generate package: %w", err)
	}

	res := *v.(*PackageResult)
	return &res, nil
}

// lookup returns a cached package rehydrated from cat. Cache failures are
// logged and treated as misses.
func (s *PackageService) lookup(ctx context.Context, cat *catalog.Catalog, key, regionID string) (domain.Package, bool) {
	if s.Cache == nil {
		return domain.Package{}, false
	}

	cached, ok, err := s.Cache.Get(ctx, key)
	if err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		log.Printf("req_id=%s package cache get failed key=%s err=%v", obs.RequestID(ctx), key, err)
		return domain.Package{}, false
	}
	if !ok {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return domain.Package{}, false
	}

	if cached.Value == domain.NoSolution {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return domain.EmptyPackage(regionID), true
	}

	pkg := domain.Package{
		RegionID:     regionID,
		Tours:        make([]domain.Tour, 0, len(cached.TourIDs)),
		Cost:         cached.Cost,
		DurationDays: cached.DurationDays,
		Value:        cached.Value,
	}
	for _, id := range cached.TourIDs {
		t, ok := cat.Tour(id)
		if !ok {
			// The key embeds the catalog version, so this only happens on a
			// hash collision or a foreign writer.
			metrics.CacheLookups.WithLabelValues("error").Inc()
			log.Printf("req_id=%s package cache entry references unknown tour key=%s tour_id=%d", obs.RequestID(ctx), key, id)
			return domain.Package{}, false
		}
		pkg.Tours = append(pkg.Tours, t)
	}

	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return pkg, true
}

func (s *PackageService) store(ctx context.Context, key string, pkg domain.Package) {
	if s.Cache == nil {
		return
	}

	entry := ports.CachedPackage{
		TourIDs:      pkg.TourIDs(),
		Cost:         pkg.Cost,
		DurationDays: pkg.DurationDays,
		Value:        pkg.Value,
	}
	if err := s.Cache.Put(ctx, key, entry, s.CacheTTL); err != nil {
		log.Printf("req_id=%s package cache put failed key=%s err=%v", obs.RequestID(ctx), key, err)
	}
}

func observeSearch(pkg domain.Package, stats SearchStats, dur time.Duration) {
	outcome := "found"
	if !pkg.Found() {
		outcome = "no_solution"
	}
	metrics.Searches.WithLabelValues(outcome).Inc()
	metrics.SearchDuration.Observe(dur.Seconds())
	metrics.SearchNodes.Observe(float64(stats.Nodes))
	metrics.SearchPrunes.WithLabelValues("infeasible").Add(float64(stats.InfeasiblePrunes))
	metrics.SearchPrunes.WithLabelValues("no_new_attraction").Add(float64(stats.SkippedTours))
	metrics.SearchPrunes.WithLabelValues("bound").Add(float64(stats.BoundPrunes))
}

// cacheKey fingerprints everything that can change a result. The
// branch-and-bound flag is left out because it never does.
func cacheKey(version, regionID string, cons Constraints, policy ValuePolicy) string {
	days, budget := "inf", "inf"
	if cons.MaxDays != nil {
		days = strconv.Itoa(*cons.MaxDays)
	}
	if cons.MaxBudget != nil {
		budget = strconv.FormatFloat(*cons.MaxBudget, 'g', -1, 64)
	}
	return fmt.Sprintf("v=%s|region=%s|days=%s|budget=%s|policy=%s", version, regionID, days, budget, policy.Name)
}
