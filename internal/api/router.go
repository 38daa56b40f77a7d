package api

import (
	"net/http"
	"tour-package-service/internal/api/handlers"
	"tour-package-service/internal/catalog"
	"tour-package-service/internal/services"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

type RouterOptions struct {
	// Requests per second allowed on /packages; 0 disables limiting.
	RateLimit             float64
	RateBurst             int
	DefaultBranchAndBound bool
	DefaultPolicy         string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(holder *catalog.Holder, svc *services.PackageService, opts RouterOptions) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{Catalog: holder}
	catalogHandler := &handlers.CatalogHandler{Catalog: holder}
	pkgHandler := &handlers.PackageHandler{
		Service:               svc,
		DefaultBranchAndBound: opts.DefaultBranchAndBound,
		DefaultPolicy:         opts.DefaultPolicy,
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/regions", catalogHandler.Regions)
	mux.HandleFunc("/tours", catalogHandler.Tours)
	mux.Handle("/packages", rateLimit(limiter, http.HandlerFunc(pkgHandler.Generate)))
	mux.Handle("/metrics", promhttp.Handler())

	return requestIDMiddleware(loggingMiddleware(mux))
}
