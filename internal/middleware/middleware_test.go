package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	ctxpkg "sirms/console/internal/context"
	"sirms/console/internal/metrics"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	handler := rl.Middleware(http.HandlerFunc(okHandler))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/flights/schema", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// other clients have their own bucket
	req := httptest.NewRequest(http.MethodGet, "/api/v1/flights/schema", nil)
	req.RemoteAddr = "203.0.113.8:5555"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRateLimiter_WhitelistsLoopback(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	handler := rl.Middleware(http.HandlerFunc(okHandler))

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "127.0.0.1:4000"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	}
}

func TestRateLimiter_SweepsIdleVisitorsPeriodically(t *testing.T) {
	rl := NewRateLimiter(10, 10)
	t0 := rl.lastSweep

	rl.getLimiter("203.0.113.1", t0)
	rl.getLimiter("203.0.113.2", t0.Add(limiterSweepInterval/2))
	assert.Len(t, rl.visitors, 2)
	assert.Equal(t, t0, rl.lastSweep, "no sweep before the interval elapses")

	// .1 idle past the TTL but the map is not swept between intervals
	late := t0.Add(limiterIdleTTL + time.Second)
	rl.lastSweep = late.Add(-limiterSweepInterval / 2)
	rl.getLimiter("203.0.113.3", late)
	assert.Len(t, rl.visitors, 3)

	// first call after the interval evicts both idle visitors
	rl.getLimiter("203.0.113.3", late.Add(limiterSweepInterval))
	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "203.0.113.3")
	assert.Equal(t, late.Add(limiterSweepInterval), rl.lastSweep)
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxpkg.GetRequestID(r.Context())
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rr.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", seen)
}

func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	m := metrics.NewMetricsRegistry(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.Get("/api/v1/flights/{callsign}/{instant}", okHandler)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/flights/SIA321/2024-01-01T10:00:00Z", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues("/api/v1/flights/{callsign}/{instant}", http.MethodGet, "200"),
	))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.HTTPRequestsInFlight.WithLabelValues(http.MethodGet)))
}

func TestThemeMiddleware(t *testing.T) {
	var theme string
	handler := ThemeMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		theme = ctxpkg.GetTheme(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "theme_preference", Value: "dark"})
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "dark", theme)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "theme_preference", Value: "neon"})
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "light", theme)
}

func TestNormalizeEndpoint(t *testing.T) {
	assert.Equal(t, "/missing/{id}", NormalizeEndpoint("/missing/12345"))
	assert.Equal(t, "/missing/{id}/x", NormalizeEndpoint("/missing/3f2504e0-4f89-11d3-9a0c-0305e82c3301/x"))
	assert.Equal(t, "/missing/SIA321", NormalizeEndpoint("/missing/SIA321"))
}
