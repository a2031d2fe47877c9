package main

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

	"sirms/console/internal/config"
	"sirms/console/internal/constants"
	"sirms/console/internal/metrics"
	"sirms/console/internal/providers"
)

func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/find/fpl/", func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/find/fpl/"), "/")
		w.Header().Set("Content-Type", "application/json")
		if len(parts) == 2 {
			if parts[0] != "SIA321" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Write([]byte(`{"gufi":"g1","aircraftIdentification":"SIA321",
				"departure":{"departureAerodrome":"WSSS","actualTimeOfDeparture":"2024-01-01T00:00:00Z"},
				"arrival":{"destinationAerodrome":"WMKK"}}`))
			return
		}
		w.Write([]byte(`{"gufi":"g1","departure":{"actualTimeOfDeparture":"2024-01-01T00:05:00Z"}}`))
	})
	mux.HandleFunc("/find/met-report/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"wind":{"RWY 02L":{"mid":"{windDirection=120, windSpeed=10}","tdz":"{windSpeed=9}"}},"visibility":{}}`))
	})
	mux.HandleFunc("/schema", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"gufi":"defaultFpl"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func runQuery(t *testing.T, callsign, instant, runway string, schema bool) (result, int) {
	t.Helper()
	srv := newUpstream(t)
	m := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	provider := providers.NewFlightDataProvider(srv.URL, 5*time.Second, m)
	cfg := &config.Config{HomeAerodrome: "WSSS"}

	var out result
	code := run(context.Background(), cfg, provider, m, callsign, instant, runway, schema, &out)
	return out, code
}

func TestRun_FlightWithWeather(t *testing.T) {
	out, code := runQuery(t, "SIA321", "2024-01-01T10:00:00Z", "02l", false)
	require.Equal(t, 0, code, out.Error)

	require.NotNil(t, out.Flight)
	assert.Equal(t, "2024-01-01T00:05:00Z", *out.Flight.Departure.ActualTimeOfDeparture)
	require.NotNil(t, out.Weather)
	assert.True(t, out.Weather.Classification.IsDeparture)
	require.Len(t, out.Panels, 1)
	assert.Equal(t, "MID Wind", out.Panels[0].Title)
}

func TestRun_SecondaryFailureKeepsFlight(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/find/fpl/SIA321/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"gufi":"g1","departure":{"departureAerodrome":"WSSS"}}`))
	})
	mux.HandleFunc("/find/fpl/g1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	m := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	provider := providers.NewFlightDataProvider(srv.URL, 5*time.Second, m)

	var out result
	code := run(context.Background(), &config.Config{HomeAerodrome: "WSSS"}, provider, m, "SIA321", "2024-01-01T10:00:00Z", "", false, &out)
	assert.Equal(t, 0, code)
	require.NotNil(t, out.Flight)
	assert.Equal(t, "g1", out.Flight.GUFIValue())
	assert.Equal(t, constants.ErrCodeFetchFailed, out.Code)
	assert.NotEmpty(t, out.Warning)
	assert.Empty(t, out.Error)
}

func TestRun_NotFound(t *testing.T) {
	out, code := runQuery(t, "XXX1", "2024-01-01T10:00:00Z", "", false)
	assert.Equal(t, 1, code)
	assert.Equal(t, constants.ErrCodeNotFound, out.Code)
	assert.Nil(t, out.Flight)
}

func TestRun_BadTime(t *testing.T) {
	out, code := runQuery(t, "SIA321", "tomorrow", "", false)
	assert.Equal(t, 2, code)
	assert.Equal(t, constants.ErrCodeInvalidQuery, out.Code)
}

func TestRun_MissingArguments(t *testing.T) {
	out, code := runQuery(t, "", "", "", false)
	assert.Equal(t, 1, code)
	assert.Equal(t, constants.ErrCodeInvalidQuery, out.Code)
}

func TestRun_Schema(t *testing.T) {
	out, code := runQuery(t, "", "", "", true)
	require.Equal(t, 0, code)
	assert.True(t, out.Flight.IsDefaultSchema())
}
