package handlers

import (
	"net/http"
	"tour-package-service/internal/catalog"
)

// HealthHandler reports liveness and whether a catalog snapshot is loaded.
type HealthHandler struct {
	Catalog *catalog.Holder
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	cat := h.Catalog.Load()
	if cat == nil {
		writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "catalog not loaded"})
		return
	}

	res := map[string]string{"status": "ok", "catalog_version": cat.Version()}
	writeJSON(w, r, http.StatusOK, res)
}
