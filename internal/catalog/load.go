package catalog

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"tour-package-service/internal/domain"
	"tour-package-service/internal/platform/obs"
	"tour-package-service/internal/ports"
)

// Load reads the four catalog snapshots concurrently and builds a Catalog.
func Load(ctx context.Context, src ports.CatalogSource) (_ *Catalog, err error) {
	defer obs.Time(ctx, "catalog.Load")(&err)

	var (
		regions     []domain.Region
		tours       []domain.Tour
		attractions []domain.Attraction
		links       []domain.Link
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var e error
		if regions, e = src.ListRegions(gctx); e != nil {
			return fmt.Errorf("list regions: %w", e)
		}
		return nil
	})
	g.Go(func() error {
		var e error
		if tours, e = src.ListTours(gctx); e != nil {
			return fmt.Errorf("list tours: %w", e)
		}
		return nil
	})
	g.Go(func() error {
		var e error
		if attractions, e = src.ListAttractions(gctx); e != nil {
			return fmt.Errorf("list attractions: %w", e)
		}
		return nil
	})
	g.Go(func() error {
		var e error
		if links, e = src.ListTourAttractionLinks(gctx); e != nil {
			return fmt.Errorf("list tour attraction links: %w", e)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	c, err := New(regions, tours, attractions, links)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return c, nil
}

// Holder publishes the current catalog snapshot. Readers always observe a
// complete snapshot; Reload swaps it atomically.
type Holder struct {
	current atomic.Pointer[Catalog]
}

func NewHolder(c *Catalog) *Holder {
	h := &Holder{}
	h.current.Store(c)
	return h
}

func (h *Holder) Load() *Catalog { return h.current.Load() }

func (h *Holder) Store(c *Catalog) { h.current.Store(c) }

// Reload builds a fresh snapshot from src and publishes it. On error the
// previous snapshot stays in place.
func (h *Holder) Reload(ctx context.Context, src ports.CatalogSource) (*Catalog, error) {
	c, err := Load(ctx, src)
	if err != nil {
		return nil, err
	}
	h.current.Store(c)
	return c, nil
}
