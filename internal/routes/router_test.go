package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sirms/console/console/ui"
	"sirms/console/internal/api"
	"sirms/console/internal/common"
	"sirms/console/internal/config"
	"sirms/console/internal/metrics"
	"sirms/console/internal/models/dtos"
)

type stubServices struct{}

func (stubServices) Aggregate(context.Context, dtos.FlightQuery) (*dtos.FlightRecord, error) {
	return &dtos.FlightRecord{GUFI: dtos.StrPtr("g1")}, nil
}

func (stubServices) LoadDefaultSchema(context.Context) (*dtos.FlightRecord, error) {
	return &dtos.FlightRecord{GUFI: dtos.StrPtr(dtos.DefaultSchemaGUFI)}, nil
}

func (stubServices) LookupWeather(context.Context, dtos.WeatherQuery) (*dtos.WeatherReport, error) {
	return &dtos.WeatherReport{}, nil
}

func (stubServices) HomeAerodrome() string { return "WSSS" }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		RateLimit:   config.RateLimitConfig{RPS: 100, Burst: 100},
		CORSOrigins: []string{"http://localhost:8081"},
	}
	m := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	store := common.NewMemoryStateStore[ui.ConsoleState](time.Hour, m)

	renderer, err := ui.NewRenderer()
	require.NoError(t, err)

	svc := stubServices{}
	deps := &api.Dependencies{
		Services: &api.Services{Flights: svc, Schema: svc, Weather: svc},
		Store:    store,
	}
	uiHandler := ui.NewUIHandler(svc, svc, svc, store, renderer, time.UTC)
	return RegisterRoutes(cfg, deps, uiHandler, m, time.Now())
}

func TestRouter_Endpoints(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/healthCheck", "", http.StatusOK},
		{http.MethodGet, "/", "", http.StatusOK},
		{http.MethodGet, "/static/console.css", "", http.StatusOK},
		{http.MethodPost, "/console/lookup", "callsign=SIA321&incident_time=2024-01-01T10:00", http.StatusSeeOther},
		{http.MethodPost, "/console/schema", "", http.StatusSeeOther},
		{http.MethodPost, "/console/reset", "", http.StatusSeeOther},
		{http.MethodPost, "/console/theme", "theme=dark", http.StatusSeeOther},
		{http.MethodGet, "/api/v1/flights/schema", "", http.StatusOK},
		{http.MethodGet, "/api/v1/flights/SIA321/2024-01-01T10:00:00Z", "", http.StatusOK},
		{http.MethodGet, "/api/v1/nope", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
			assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
		})
	}
}

func TestRouter_StaticAssets(t *testing.T) {
	router := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/console.css", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/css")

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/missing.js", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_APICORSPreflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/flights/schema", nil)
	req.Header.Set("Origin", "http://localhost:8081")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, "http://localhost:8081", rr.Header().Get("Access-Control-Allow-Origin"))
}
