package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"sirms/console/console/ui"
	"sirms/console/internal/api"
	"sirms/console/internal/config"
	"sirms/console/internal/logging"
	"sirms/console/internal/metrics"
	"sirms/console/internal/middleware"
)

// RegisterRoutes builds the chi router serving the console, the JSON API and
// the health check
func RegisterRoutes(
	cfg *config.Config,
	deps *api.Dependencies,
	uiHandler *ui.UIHandler,
	metricsReg *metrics.MetricsRegistry,
	upSince time.Time,
) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))

	logging.Info("Router initialized with metrics and logging middleware")
	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(deps.Store, deps.Upstream, upSince))

	// console actions and the API draw from the same per-client budget
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	// Register UI routes (separate from API)
	RegisterUIRoutes(r, uiHandler, limiter)

	handlers := api.NewHandlers(deps)
	RegisterAPIRoutes(r, handlers, limiter, cfg.CORSOrigins)

	return r
}
