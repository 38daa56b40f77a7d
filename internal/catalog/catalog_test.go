package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"tour-package-service/internal/domain"
)

func sampleRecords() ([]domain.Region, []domain.Tour, []domain.Attraction, []domain.Link) {
	regions := []domain.Region{{ID: "R2", Name: "Sud"}, {ID: "R1", Name: "Nord"}}
	tours := []domain.Tour{
		{ID: 3, RegionID: "R1", Cost: 70, DurationDays: 1},
		{ID: 1, RegionID: "R1", Cost: 100, DurationDays: 2},
		{ID: 2, RegionID: "R2", Cost: 50, DurationDays: 1},
	}
	attractions := []domain.Attraction{
		{ID: 10, CulturalValue: 5},
		{ID: 11, CulturalValue: 3},
	}
	links := []domain.Link{
		{TourID: 1, AttractionID: 10},
		{TourID: 1, AttractionID: 11},
		{TourID: 2, AttractionID: 11},
		{TourID: 1, AttractionID: 10},
	}
	return regions, tours, attractions, links
}

func TestNewWiresRelationBothWays(t *testing.T) {
	c, err := New(sampleRecords())
	require.NoError(t, err)

	tour, ok := c.Tour(1)
	require.True(t, ok)
	require.Equal(t, []int{10, 11}, tour.AttractionIDs())

	a, ok := c.Attraction(11)
	require.True(t, ok)
	require.Equal(t, []int{1, 2}, a.TourIDs())

	for _, tr := range c.Tours() {
		for aid := range tr.Attractions {
			attr, _ := c.Attraction(aid)
			_, back := attr.Tours[tr.ID]
			require.True(t, back, "tour %d <-> attraction %d", tr.ID, aid)
		}
	}
	require.Equal(t, 3, c.LinkCount())
}

func TestToursInRegionSortedByID(t *testing.T) {
	c, err := New(sampleRecords())
	require.NoError(t, err)

	got := c.ToursInRegion("R1")
	require.Len(t, got, 2)
	require.Equal(t, 1, got[0].ID)
	require.Equal(t, 3, got[1].ID)

	require.Empty(t, c.ToursInRegion("R9"))
	require.False(t, c.HasRegion("R9"))
	require.True(t, c.HasRegion("R2"))
}

func TestRegionsSorted(t *testing.T) {
	c, err := New(sampleRecords())
	require.NoError(t, err)

	regions := c.Regions()
	require.Equal(t, "R1", regions[0].ID)
	require.Equal(t, "R2", regions[1].ID)
}

func TestNewRejectsDanglingLinks(t *testing.T) {
	regions, tours, attractions, links := sampleRecords()

	_, err := New(regions, tours, attractions, append(links, domain.Link{TourID: 99, AttractionID: 10}))
	require.ErrorIs(t, err, ErrConsistency)

	var ce *ConsistencyError
	require.True(t, errors.As(err, &ce))
	require.Equal(t, "link", ce.Entity)
	require.Equal(t, "99->10", ce.ID)

	_, err = New(regions, tours, attractions, append(links, domain.Link{TourID: 1, AttractionID: 77}))
	require.ErrorIs(t, err, ErrConsistency)
}

func TestNewRejectsBadRecords(t *testing.T) {
	regions, tours, attractions, links := sampleRecords()

	cases := map[string]func() error{
		"duplicate tour": func() error {
			_, err := New(regions, append(tours, domain.Tour{ID: 1, RegionID: "R1"}), attractions, links)
			return err
		},
		"unknown region": func() error {
			_, err := New(regions, append(tours, domain.Tour{ID: 8, RegionID: "R7"}), attractions, links)
			return err
		},
		"negative cost": func() error {
			_, err := New(regions, append(tours, domain.Tour{ID: 8, RegionID: "R1", Cost: -1}), attractions, links)
			return err
		},
		"negative value": func() error {
			_, err := New(regions, tours, append(attractions, domain.Attraction{ID: 12, CulturalValue: -2}), links)
			return err
		},
		"duplicate region": func() error {
			_, err := New(append(regions, domain.Region{ID: "R1"}), tours, attractions, links)
			return err
		},
	}

	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, fn(), ErrConsistency)
		})
	}
}

func TestNewWithoutRegionsSkipsRegionCheck(t *testing.T) {
	_, tours, attractions, links := sampleRecords()

	c, err := New(nil, append(tours, domain.Tour{ID: 8, RegionID: "R7"}), attractions, links)
	require.NoError(t, err)
	require.True(t, c.HasRegion("R7"))
}

func TestVersionIsContentFingerprint(t *testing.T) {
	a, err := New(sampleRecords())
	require.NoError(t, err)
	b, err := New(sampleRecords())
	require.NoError(t, err)
	require.Equal(t, a.Version(), b.Version())

	regions, tours, attractions, links := sampleRecords()
	attractions[0].CulturalValue = 6
	c, err := New(regions, tours, attractions, links)
	require.NoError(t, err)
	require.NotEqual(t, a.Version(), c.Version())
}

type staticSource struct {
	regions     []domain.Region
	tours       []domain.Tour
	attractions []domain.Attraction
	links       []domain.Link
	err         error
}

func (s *staticSource) ListRegions(context.Context) ([]domain.Region, error) {
	return s.regions, s.err
}

func (s *staticSource) ListTours(context.Context) ([]domain.Tour, error) {
	return s.tours, nil
}

func (s *staticSource) ListAttractions(context.Context) ([]domain.Attraction, error) {
	return s.attractions, nil
}

func (s *staticSource) ListTourAttractionLinks(context.Context) ([]domain.Link, error) {
	return s.links, nil
}

func TestLoadAndReload(t *testing.T) {
	regions, tours, attractions, links := sampleRecords()
	src := &staticSource{regions: regions, tours: tours, attractions: attractions, links: links}

	c, err := Load(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, c.Tours(), 3)

	h := NewHolder(c)
	require.Same(t, c, h.Load())

	src.tours = append(src.tours, domain.Tour{ID: 4, RegionID: "R2", Cost: 10, DurationDays: 1})
	next, err := h.Reload(context.Background(), src)
	require.NoError(t, err)
	require.Same(t, next, h.Load())
	require.Len(t, h.Load().ToursInRegion("R2"), 2)

	src.err = errors.New("db down")
	_, err = h.Reload(context.Background(), src)
	require.Error(t, err)
	require.Same(t, next, h.Load(), "failed reload keeps previous snapshot")
}

func TestLoadFailsFastOnInconsistentSource(t *testing.T) {
	regions, tours, attractions, _ := sampleRecords()
	src := &staticSource{
		regions:     regions,
		tours:       tours,
		attractions: attractions,
		links:       []domain.Link{{TourID: 1, AttractionID: 404}},
	}

	_, err := Load(context.Background(), src)
	require.ErrorIs(t, err, ErrConsistency)
}
