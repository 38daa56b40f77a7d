// Package catalog holds immutable, indexed snapshots of regions, tours and
// attractions with the tour/attraction relation wired in both directions.
package catalog

import (
	"encoding/binary"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"tour-package-service/internal/domain"
)

// Catalog is a read-only snapshot. Values returned by its methods share
// the attraction/tour id sets with the snapshot and must not be modified.
type Catalog struct {
	regions     []domain.Region
	regionIndex map[string]struct{}
	tours       map[int]domain.Tour
	attractions map[int]domain.Attraction
	byRegion    map[string][]domain.Tour
	linkCount   int
	version     string
}

// New validates the loaded records and wires the many-to-many relation.
//
// Any link that names a missing tour or attraction, duplicated ids, negative
// costs/durations/values, or (when regions are supplied) a tour in an
// unknown region fails with a *ConsistencyError.
func New(
	regions []domain.Region,
	tours []domain.Tour,
	attractions []domain.Attraction,
	links []domain.Link,
) (*Catalog, error) {
	c := &Catalog{
		regions:     make([]domain.Region, 0, len(regions)),
		regionIndex: make(map[string]struct{}, len(regions)),
		tours:       make(map[int]domain.Tour, len(tours)),
		attractions: make(map[int]domain.Attraction, len(attractions)),
		byRegion:    make(map[string][]domain.Tour),
	}

	for _, r := range regions {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			return nil, inconsistent("region", strconv.Quote(r.ID), "empty id")
		}
		if _, dup := c.regionIndex[id]; dup {
			return nil, inconsistent("region", id, "duplicate id")
		}
		c.regionIndex[id] = struct{}{}
		c.regions = append(c.regions, domain.Region{ID: id, Name: r.Name})
	}
	slices.SortFunc(c.regions, func(a, b domain.Region) int { return strings.Compare(a.ID, b.ID) })

	for _, t := range tours {
		if _, dup := c.tours[t.ID]; dup {
			return nil, inconsistent("tour", t.ID, "duplicate id")
		}
		if t.Cost < 0 || math.IsNaN(t.Cost) {
			return nil, inconsistent("tour", t.ID, "invalid cost %v", t.Cost)
		}
		if t.DurationDays < 0 {
			return nil, inconsistent("tour", t.ID, "negative duration %d", t.DurationDays)
		}
		if len(regions) > 0 {
			if _, ok := c.regionIndex[t.RegionID]; !ok {
				return nil, inconsistent("tour", t.ID, "references unknown region %q", t.RegionID)
			}
		}
		t.Attractions = make(map[int]struct{})
		c.tours[t.ID] = t
	}

	for _, a := range attractions {
		if _, dup := c.attractions[a.ID]; dup {
			return nil, inconsistent("attraction", a.ID, "duplicate id")
		}
		if a.CulturalValue < 0 || math.IsNaN(a.CulturalValue) {
			return nil, inconsistent("attraction", a.ID, "invalid cultural value %v", a.CulturalValue)
		}
		a.Tours = make(map[int]struct{})
		c.attractions[a.ID] = a
	}

	for _, l := range links {
		t, ok := c.tours[l.TourID]
		if !ok {
			return nil, inconsistent("link", linkID(l), "references unknown tour %d", l.TourID)
		}
		a, ok := c.attractions[l.AttractionID]
		if !ok {
			return nil, inconsistent("link", linkID(l), "references unknown attraction %d", l.AttractionID)
		}
		if _, dup := t.Attractions[a.ID]; dup {
			continue
		}
		t.Attractions[a.ID] = struct{}{}
		a.Tours[t.ID] = struct{}{}
		c.linkCount++
	}

	for _, t := range c.tours {
		c.byRegion[t.RegionID] = append(c.byRegion[t.RegionID], t)
	}
	for _, ts := range c.byRegion {
		slices.SortFunc(ts, func(a, b domain.Tour) int { return a.ID - b.ID })
	}

	c.version = c.fingerprint()
	return c, nil
}

func linkID(l domain.Link) string {
	return strconv.Itoa(l.TourID) + "->" + strconv.Itoa(l.AttractionID)
}

// Return all regions sorted by id.
func (c *Catalog) Regions() []domain.Region {
	return slices.Clone(c.regions)
}

// HasRegion reports whether the region was loaded or has at least one tour.
func (c *Catalog) HasRegion(id string) bool {
	if _, ok := c.regionIndex[id]; ok {
		return true
	}
	_, ok := c.byRegion[id]
	return ok
}

// Return a copy of the id -> tour mapping.
func (c *Catalog) Tours() map[int]domain.Tour {
	out := make(map[int]domain.Tour, len(c.tours))
	for id, t := range c.tours {
		out[id] = t
	}
	return out
}

// Return a copy of the id -> attraction mapping.
func (c *Catalog) Attractions() map[int]domain.Attraction {
	out := make(map[int]domain.Attraction, len(c.attractions))
	for id, a := range c.attractions {
		out[id] = a
	}
	return out
}

func (c *Catalog) Tour(id int) (domain.Tour, bool) {
	t, ok := c.tours[id]
	return t, ok
}

func (c *Catalog) Attraction(id int) (domain.Attraction, bool) {
	a, ok := c.attractions[id]
	return a, ok
}

// ToursInRegion returns the region's tours ordered by ascending id.
// The order is stable across calls; the optimizer uses positions in this
// slice as combination indices.
func (c *Catalog) ToursInRegion(regionID string) []domain.Tour {
	return slices.Clone(c.byRegion[regionID])
}

// Number of distinct tour/attraction links wired into the snapshot.
func (c *Catalog) LinkCount() int { return c.linkCount }

// Version is a content fingerprint of the snapshot. Two catalogs built from
// the same records share a version.
func (c *Catalog) Version() string { return c.version }

func (c *Catalog) fingerprint() string {
	h := xxhash.New()
	var buf [8]byte
	writeInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = h.Write(buf[:])
	}
	writeFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = h.Write(buf[:])
	}

	for _, r := range c.regions {
		_, _ = h.WriteString(r.ID)
		_, _ = h.WriteString("\x00")
	}

	tourIDs := make([]int, 0, len(c.tours))
	for id := range c.tours {
		tourIDs = append(tourIDs, id)
	}
	slices.Sort(tourIDs)
	for _, id := range tourIDs {
		t := c.tours[id]
		writeInt(t.ID)
		_, _ = h.WriteString(t.RegionID)
		_, _ = h.WriteString("\x00")
		writeFloat(t.Cost)
		writeInt(t.DurationDays)
		for _, aid := range t.AttractionIDs() {
			writeInt(aid)
		}
	}

	attrIDs := make([]int, 0, len(c.attractions))
	for id := range c.attractions {
		attrIDs = append(attrIDs, id)
	}
	slices.Sort(attrIDs)
	for _, id := range attrIDs {
		writeInt(id)
		writeFloat(c.attractions[id].CulturalValue)
	}

	return strconv.FormatUint(h.Sum64(), 16)
}
