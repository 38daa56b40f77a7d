package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmptyPackageIsNotFound(t *testing.T) {
	p := EmptyPackage("R1")

	require.False(t, p.Found())
	require.Equal(t, NoSolution, p.Value)
	require.Empty(t, p.Tours)
	require.Zero(t, p.Cost)
}

func TestPackageZeroValueIsFound(t *testing.T) {
	p := Package{RegionID: "R1", Tours: []Tour{{ID: 3}, {ID: 1}}, Value: 0}

	require.True(t, p.Found())
	require.Equal(t, []int{3, 1}, p.TourIDs())
}

func TestTourAttractionIDsSorted(t *testing.T) {
	tour := Tour{ID: 1, Attractions: map[int]struct{}{9: {}, 2: {}, 5: {}}}

	require.Equal(t, []int{2, 5, 9}, tour.AttractionIDs())
	require.True(t, tour.HasAttraction(5))
	require.False(t, tour.HasAttraction(4))
}
