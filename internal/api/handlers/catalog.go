package handlers

import (
	"net/http"
	"slices"
	"strings"
	"tour-package-service/internal/api/dto"
	"tour-package-service/internal/catalog"
	"tour-package-service/internal/domain"
)

// CatalogHandler exposes read-only catalog endpoints over the current snapshot.
type CatalogHandler struct {
	Catalog *catalog.Holder
}

func (h *CatalogHandler) Regions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	cat := h.Catalog.Load()
	if cat == nil {
		writeError(w, r, http.StatusServiceUnavailable, "catalog not loaded")
		return
	}

	regions := cat.Regions()
	res := dto.ListRegionsResponse{Regions: make([]dto.RegionResponse, 0, len(regions))}
	for _, reg := range regions {
		res.Regions = append(res.Regions, dto.RegionResponse{ID: reg.ID, Name: reg.Name})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Tours lists the tours of ?region=ID, or every tour when no region is given.
func (h *CatalogHandler) Tours(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	cat := h.Catalog.Load()
	if cat == nil {
		writeError(w, r, http.StatusServiceUnavailable, "catalog not loaded")
		return
	}

	var tours []domain.Tour
	if region := strings.TrimSpace(r.URL.Query().Get("region")); region != "" {
		tours = cat.ToursInRegion(region)
	} else {
		for _, t := range cat.Tours() {
			tours = append(tours, t)
		}
		slices.SortFunc(tours, func(a, b domain.Tour) int { return a.ID - b.ID })
	}

	res := dto.ListToursResponse{Tours: make([]dto.TourResponse, 0, len(tours))}
	for _, t := range tours {
		res.Tours = append(res.Tours, dto.NewTourResponse(t))
	}

	writeJSON(w, r, http.StatusOK, res)
}
