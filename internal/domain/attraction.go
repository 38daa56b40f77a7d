package domain

import "slices"

// Point of interest with a cultural value. An attraction may be reachable
// through several tours; Tours holds their ids.
type Attraction struct {
	ID            int
	Name          string
	CulturalValue float64
	Tours         map[int]struct{}
}

// Return the attraction's tour ids in ascending order.
func (a Attraction) TourIDs() []int {
	ids := make([]int, 0, len(a.Tours))
	for id := range a.Tours {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// One row of the many-to-many tour/attraction relation.
type Link struct {
	TourID       int
	AttractionID int
}
