package domain

// NoSolution is the Value of a Package when no feasible non-empty
// selection of tours exists. Real values are never negative.
const NoSolution = -1.0

// Represents the outcome of one package optimization run.
// Tours are kept in selection order, which carries no meaning beyond
// reproducibility. Cost and DurationDays are sums over Tours; Value is the
// sum of each tour's incremental cultural value.
type Package struct {
	RegionID     string
	Tours        []Tour
	Cost         float64
	DurationDays int
	Value        float64
}

// EmptyPackage returns the "no solution" result for a region.
func EmptyPackage(regionID string) Package {
	return Package{
		RegionID: regionID,
		Tours:    []Tour{},
		Value:    NoSolution,
	}
}

// Found reports whether the package holds a feasible selection.
func (p Package) Found() bool { return p.Value != NoSolution }

// Return the ids of the selected tours in selection order.
func (p Package) TourIDs() []int {
	ids := make([]int, 0, len(p.Tours))
	for _, t := range p.Tours {
		ids = append(ids, t.ID)
	}
	return ids
}
