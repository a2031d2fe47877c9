package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"sirms/console/console/ui"
	"sirms/console/internal/middleware"
)

// RegisterUIRoutes registers the operator console
func RegisterUIRoutes(r chi.Router, uiHandler *ui.UIHandler, limiter *middleware.RateLimiter) {
	// embedded stylesheet
	r.Handle("/static/*", http.StripPrefix("/static/", ui.StaticHandler()))

	r.Group(func(console chi.Router) {
		console.Use(middleware.ThemeMiddleware)

		console.Get("/", uiHandler.DashboardHandler)

		console.Route("/console", func(actions chi.Router) {
			actions.Post("/theme", uiHandler.SetThemeHandler)

			// state-changing actions are rate limited
			actions.Group(func(limited chi.Router) {
				limited.Use(limiter.Middleware)
				limited.Post("/lookup", uiHandler.LookupHandler)
				limited.Post("/schema", uiHandler.SchemaHandler)
				limited.Post("/weather", uiHandler.WeatherHandler)
				limited.Post("/reset", uiHandler.ResetHandler)
			})
		})
	})
}
