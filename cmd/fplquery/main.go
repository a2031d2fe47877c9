package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"sirms/console/internal/config"
	"sirms/console/internal/constants"
	"sirms/console/internal/logging"
	"sirms/console/internal/metrics"
	"sirms/console/internal/models/dtos"
	"sirms/console/internal/providers"
	"sirms/console/internal/services"
)

// result is the JSON document written to stdout
type result struct {
	Flight  *dtos.FlightRecord          `json:"flight,omitempty"`
	Warning string                      `json:"warning,omitempty"`
	Weather *dtos.WeatherReport         `json:"weather,omitempty"`
	Panels  []services.ObservationPanel `json:"panels,omitempty"`
	Error   string                      `json:"error,omitempty"`
	Code    string                      `json:"code,omitempty"`
}

func main() {
	os.Exit(realMain())
}

func realMain() int {
	callsign := flag.String("callsign", "", "aircraft callsign, e.g. SIA321")
	instant := flag.String("time", "", "incident time, RFC 3339 (e.g. 2024-01-01T00:00:00Z)")
	runway := flag.String("runway", "", "also look up wind and visibility for this runway")
	schema := flag.Bool("schema", false, "print the default flight plan schema and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		return 2
	}
	// keep stdout for the JSON document
	if err := logging.Init(cfg.AppEnv); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		return 2
	}
	defer logging.Close()

	m := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	provider := providers.NewFlightDataProvider(cfg.FlightAPI.BaseURL, cfg.FlightAPI.Timeout, m)

	ctx, cancel := context.WithTimeout(context.Background(), 3*cfg.FlightAPI.Timeout)
	defer cancel()

	var out result
	code := run(ctx, cfg, provider, m, *callsign, *instant, *runway, *schema, &out)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write result: %v\n", err)
		return 2
	}
	return code
}

func run(
	ctx context.Context,
	cfg *config.Config,
	provider *providers.FlightDataProvider,
	m *metrics.MetricsRegistry,
	callsign, instant, runway string,
	schema bool,
	out *result,
) int {
	if schema {
		rec, err := services.NewSchemaService(provider, m).LoadDefaultSchema(ctx)
		if err != nil {
			return fail(out, err)
		}
		out.Flight = rec
		return 0
	}

	var incidentTime time.Time
	if instant != "" {
		t, err := time.Parse(time.RFC3339, instant)
		if err != nil {
			out.Error = fmt.Sprintf("invalid -time %q: %v", instant, err)
			out.Code = constants.ErrCodeInvalidQuery
			return 2
		}
		incidentTime = t.UTC()
	}

	rec, err := services.NewFlightLookupService(provider, m).Aggregate(ctx, dtos.FlightQuery{
		Callsign:     callsign,
		IncidentTime: incidentTime,
	})
	switch {
	case err == nil:
	case services.RecordUsable(err) && rec != nil:
		out.Warning = err.Error()
		out.Code = services.ErrorCode(err)
	default:
		return fail(out, err)
	}
	out.Flight = rec

	if runway == "" {
		return 0
	}

	q, err := services.NewWeatherQuery(rec, incidentTime, runway)
	if err != nil {
		return fail(out, err)
	}
	report, err := services.NewWeatherService(provider, cfg.HomeAerodrome, m).LookupWeather(ctx, q)
	if err != nil {
		return fail(out, err)
	}
	out.Weather = report
	out.Panels = services.SelectPanels(report)
	return 0
}

func fail(out *result, err error) int {
	out.Error = err.Error()
	out.Code = services.ErrorCode(err)
	return 1
}
