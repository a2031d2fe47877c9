package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"sirms/console/internal/api"
	"sirms/console/internal/middleware"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers, limiter *middleware.RateLimiter, allowedOrigins []string) {
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(cors.Handler(cors.Options{
			AllowedOrigins:   allowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300, // Maximum value not ignored by any of major browsers
		}))
		v1.Use(limiter.Middleware)

		v1.Route("/flights", func(flights chi.Router) {
			flights.Get("/schema", handlers.DefaultSchemaHandler())
			flights.Get("/{callsign}/{instant}", handlers.FlightLookupHandler())
		})
		v1.Get("/weather/{instant}/{runway}/{destination}/{departure}", handlers.RunwayWeatherHandler())
		v1.Post("/observations/parse", handlers.ParseObservationHandler())
	})
}
