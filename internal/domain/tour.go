package domain

import "slices"

// Represents a purchasable multi-day tour offered in a single region.
// Attractions holds the ids of every attraction the tour grants access to;
// it is populated from the tour/attraction relation when the catalog is built.
type Tour struct {
	ID           int
	RegionID     string
	Name         string
	Cost         float64
	DurationDays int
	Attractions  map[int]struct{}
}

// Return the tour's attraction ids in ascending order.
func (t Tour) AttractionIDs() []int {
	ids := make([]int, 0, len(t.Attractions))
	for id := range t.Attractions {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Report whether the tour is linked to the given attraction.
func (t Tour) HasAttraction(id int) bool {
	_, ok := t.Attractions[id]
	return ok
}
