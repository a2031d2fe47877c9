package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SIRMS_CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/flights", cfg.FlightAPI.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.FlightAPI.Timeout)
	assert.Equal(t, time.Minute, cfg.FlightAPI.ProbeInterval)
	assert.Equal(t, "WSSS", cfg.HomeAerodrome)
	assert.Equal(t, "memory", cfg.Session.Backend)
	assert.Equal(t, time.UTC, cfg.Location())
	assert.Equal(t, []string{"https://*", "http://localhost:3000"}, cfg.CORSOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SIRMS_FLIGHT_API_BASE_URL", "http://fpl.example/flights/")
	t.Setenv("SIRMS_HOME_AERODROME", " wmkk ")
	t.Setenv("SIRMS_INCIDENT_TIMEZONE", "Asia/Singapore")
	t.Setenv("SIRMS_SESSION_BACKEND", "REDIS")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://fpl.example/flights", cfg.FlightAPI.BaseURL)
	assert.Equal(t, "WMKK", cfg.HomeAerodrome)
	assert.Equal(t, "redis", cfg.Session.Backend)
	assert.Equal(t, "Asia/Singapore", cfg.Location().String())
}

func TestLoad_InvalidBackend(t *testing.T) {
	t.Setenv("SIRMS_SESSION_BACKEND", "disk")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session.backend")
}

func TestLoad_InvalidTimezone(t *testing.T) {
	t.Setenv("SIRMS_INCIDENT_TIMEZONE", "Mars/Olympus")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incident_timezone")
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(" , "))
	assert.Equal(t, []string{"a", "b"}, splitList("a, ,b"))
}
