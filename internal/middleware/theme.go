package middleware

import (
	"net/http"

	"sirms/console/internal/constants"
	ctxpkg "sirms/console/internal/context"
)

// ThemeMiddleware injects the operator's theme preference into the request context
func ThemeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Get theme from cookie, default to "light"
		theme := "light"
		cookie, err := r.Cookie(constants.ThemeCookieName)
		if err == nil && ctxpkg.IsValidTheme(cookie.Value) {
			theme = cookie.Value
		}

		ctx := ctxpkg.SetTheme(r.Context(), theme)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
