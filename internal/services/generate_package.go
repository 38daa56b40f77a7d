package services

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"tour-package-service/internal/catalog"
	"tour-package-service/internal/domain"
)

// ErrInvalidArgument marks caller mistakes rejected before any search runs.
var ErrInvalidArgument = errors.New("invalid argument")

// boundEps absorbs float rounding between the precomputed ceilings and the
// running value, so the bound never cuts a branch that could still win.
const boundEps = 1e-9

// Optional limits for a package. Nil means unbounded.
type Constraints struct {
	MaxDays   *int
	MaxBudget *float64
}

type SearchOptions struct {
	Policy ValuePolicy
	// BranchAndBound cuts extension loops whose best possible value cannot
	// beat the incumbent. It never changes the returned package.
	BranchAndBound bool
}

// Counters collected during one search.
type SearchStats struct {
	Nodes            int `json:"nodes"`
	InfeasiblePrunes int `json:"infeasible_prunes"`
	SkippedTours     int `json:"skipped_tours"`
	BoundPrunes      int `json:"bound_prunes"`
}

func (c Constraints) validate() error {
	if c.MaxDays != nil && *c.MaxDays < 0 {
		return fmt.Errorf("%w: max_days must be non-negative, got %d", ErrInvalidArgument, *c.MaxDays)
	}
	if c.MaxBudget != nil && (*c.MaxBudget < 0 || math.IsNaN(*c.MaxBudget)) {
		return fmt.Errorf("%w: max_budget must be non-negative, got %v", ErrInvalidArgument, *c.MaxBudget)
	}
	return nil
}

// GeneratePackage selects the subset of the region's tours with the highest
// cultural value that fits within the constraints.
//
// Every subset is enumerated at most once by recursing over strictly
// increasing positions in cat.ToursInRegion. A tour adding no attraction
// beyond those already covered is never taken. Branches over budget or over
// the day limit are abandoned. On equal values the first subset found wins.
//
// When no feasible non-empty selection exists (including unknown regions)
// the result is domain.EmptyPackage with Value == domain.NoSolution.
// All search state is local to the call, so concurrent calls are safe.
func GeneratePackage(
	cat *catalog.Catalog,
	regionID string,
	cons Constraints,
	opts SearchOptions,
) (domain.Package, SearchStats, error) {
	if cat == nil {
		return domain.Package{}, SearchStats{}, errors.New("generate package: catalog must be non-nil")
	}
	if err := cons.validate(); err != nil {
		return domain.Package{}, SearchStats{}, fmt.Errorf("generate package: %w", err)
	}

	s, err := newSearch(cat, cat.ToursInRegion(regionID), cons, opts)
	if err != nil {
		return domain.Package{}, SearchStats{}, fmt.Errorf("generate package: region %q: %w", regionID, err)
	}

	s.visit(0, nil, 0, 0, 0, newAttrSet(len(s.values)))

	if s.bestValue == domain.NoSolution {
		return domain.EmptyPackage(regionID), s.stats, nil
	}

	pkg := domain.Package{
		RegionID:     regionID,
		Tours:        make([]domain.Tour, 0, len(s.bestPicked)),
		Cost:         s.bestCost,
		DurationDays: s.bestDays,
		Value:        s.bestValue,
	}
	for _, i := range s.bestPicked {
		pkg.Tours = append(pkg.Tours, s.tours[i].tour)
	}

	return pkg, s.stats, nil
}

type searchTour struct {
	tour  domain.Tour
	attrs []int // region-local attraction indices, ascending attraction id
}

// search carries the call-scoped state of one GeneratePackage run.
type search struct {
	tours     []searchTour
	values    []float64 // cultural value by region-local attraction index
	policy    ValuePolicy
	maxDays   float64
	maxBudget float64

	useBound bool
	ceiling  []float64 // ceiling[i]: upper bound on value gained from tours[i:]

	bestPicked []int
	bestCost   float64
	bestDays   int
	bestValue  float64

	stats SearchStats
}

func newSearch(cat *catalog.Catalog, tours []domain.Tour, cons Constraints, opts SearchOptions) (*search, error) {
	s := &search{
		tours:     make([]searchTour, 0, len(tours)),
		policy:    opts.Policy.orDefault(),
		maxDays:   math.Inf(1),
		maxBudget: math.Inf(1),
		useBound:  opts.BranchAndBound,
		bestValue: domain.NoSolution,
	}
	if cons.MaxDays != nil {
		s.maxDays = float64(*cons.MaxDays)
	}
	if cons.MaxBudget != nil {
		s.maxBudget = *cons.MaxBudget
	}

	// Memoize each tour's attractions as dense indices so the hot loop
	// never touches the catalog maps.
	local := make(map[int]int)
	for _, t := range tours {
		st := searchTour{tour: t}
		for _, aid := range t.AttractionIDs() {
			idx, ok := local[aid]
			if !ok {
				a, found := cat.Attraction(aid)
				if !found {
					return nil, fmt.Errorf("tour %d: %w: unknown attraction %d", t.ID, catalog.ErrConsistency, aid)
				}
				idx = len(s.values)
				local[aid] = idx
				s.values = append(s.values, a.CulturalValue)
			}
			st.attrs = append(st.attrs, idx)
		}
		s.tours = append(s.tours, st)
	}

	if s.useBound {
		s.ceiling = make([]float64, len(s.tours)+1)
		for i := len(s.tours) - 1; i >= 0; i-- {
			s.ceiling[i] = s.ceiling[i+1] + s.policy.Combine(s.valuesOf(s.tours[i].attrs))
		}
	}

	return s, nil
}

func (s *search) valuesOf(idx []int) []float64 {
	out := make([]float64, len(idx))
	for k, i := range idx {
		out[k] = s.values[i]
	}
	return out
}

// visit is one node of the search tree: picked holds positions in s.tours
// in increasing order, and the running metrics describe that selection.
func (s *search) visit(start int, picked []int, days int, cost, value float64, used attrSet) {
	s.stats.Nodes++

	if cost > s.maxBudget || float64(days) > s.maxDays {
		s.stats.InfeasiblePrunes++
		return
	}

	if len(picked) > 0 && value > s.bestValue {
		s.bestPicked = slices.Clone(picked)
		s.bestCost = cost
		s.bestDays = days
		s.bestValue = value
	}

	for i := start; i < len(s.tours); i++ {
		if s.useBound && value+s.ceiling[i] <= s.bestValue-boundEps*math.Max(1, math.Abs(s.bestValue)) {
			s.stats.BoundPrunes++
			return
		}

		fresh := make([]int, 0, len(s.tours[i].attrs))
		for _, a := range s.tours[i].attrs {
			if !used.has(a) {
				fresh = append(fresh, a)
			}
		}
		if len(fresh) == 0 {
			s.stats.SkippedTours++
			continue
		}

		t := s.tours[i].tour
		s.visit(
			i+1,
			append(slices.Clip(picked), i),
			days+t.DurationDays,
			cost+t.Cost,
			value+s.policy.Combine(s.valuesOf(fresh)),
			used.with(fresh),
		)
	}
}
