package api

import (
	"context"

	"sirms/console/internal/config"
	"sirms/console/internal/metrics"
	"sirms/console/internal/models/dtos"
	"sirms/console/internal/providers"
	"sirms/console/internal/services"
	"sirms/console/internal/workers"
)

type FlightAggregator interface {
	Aggregate(ctx context.Context, q dtos.FlightQuery) (*dtos.FlightRecord, error)
}

type SchemaLoader interface {
	LoadDefaultSchema(ctx context.Context) (*dtos.FlightRecord, error)
}

type WeatherLookup interface {
	LookupWeather(ctx context.Context, q dtos.WeatherQuery) (*dtos.WeatherReport, error)
	HomeAerodrome() string
}

// StorePinger is the health view of the console session store
type StorePinger interface {
	Ping(ctx context.Context) error
	Backend() string
}

// UpstreamReporter exposes the last reachability check of the flight data service
type UpstreamReporter interface {
	LastProbe() (workers.ProbeResult, bool)
}

type Services struct {
	Flights FlightAggregator
	Schema  SchemaLoader
	Weather WeatherLookup
}

type Dependencies struct {
	Provider *providers.FlightDataProvider
	Services *Services
	Store    StorePinger
	Upstream UpstreamReporter
}

// InitDependencies wires the flight data provider and the lookup services.
// The session store and the upstream monitor are attached by the caller.
func InitDependencies(cfg *config.Config, m *metrics.MetricsRegistry) (*Dependencies, error) {
	provider := providers.NewFlightDataProvider(cfg.FlightAPI.BaseURL, cfg.FlightAPI.Timeout, m)

	svcs := &Services{
		Flights: services.NewFlightLookupService(provider, m),
		Schema:  services.NewSchemaService(provider, m),
		Weather: services.NewWeatherService(provider, cfg.HomeAerodrome, m),
	}

	return &Dependencies{
		Provider: provider,
		Services: svcs,
	}, nil
}
