package services

import (
	"context"
	"strings"
	"time"

	"sirms/console/internal/constants"
	"sirms/console/internal/logging"
	"sirms/console/internal/metobs"
	"sirms/console/internal/metrics"
	"sirms/console/internal/models/dtos"
)

// MetReportSource serves runway wind and visibility observations
type MetReportSource interface {
	FindMetReport(ctx context.Context, q dtos.WeatherQuery) (*dtos.MetReportResponse, int, error)
}

// WeatherService looks up runway observations and classifies the flight
// against the home aerodrome.
type WeatherService struct {
	source  MetReportSource
	home    string
	metrics *metrics.MetricsRegistry
}

func NewWeatherService(source MetReportSource, homeAerodrome string, m *metrics.MetricsRegistry) *WeatherService {
	return &WeatherService{
		source:  source,
		home:    strings.ToUpper(strings.TrimSpace(homeAerodrome)),
		metrics: m,
	}
}

// HomeAerodrome returns the aerodrome flights are classified against
func (s *WeatherService) HomeAerodrome() string {
	return s.home
}

// Classify marks a flight as an arrival when it lands at home and as a
// departure when it leaves from home. Both or neither may hold.
func Classify(home, destination, departure string) dtos.Classification {
	home = strings.ToUpper(strings.TrimSpace(home))
	c := dtos.Classification{HomeAerodrome: home}
	if home == "" {
		return c
	}
	c.IsArrival = strings.EqualFold(strings.TrimSpace(destination), home)
	c.IsDeparture = strings.EqualFold(strings.TrimSpace(departure), home)
	return c
}

// NewWeatherQuery builds a weather query from a previously aggregated flight.
// It fails with ErrMissingContext when no flight is held.
func NewWeatherQuery(flight *dtos.FlightRecord, incidentTime time.Time, runway string) (dtos.WeatherQuery, error) {
	if flight == nil {
		return dtos.WeatherQuery{}, lookupErr(constants.ErrCodeMissingContext, constants.StageWeather, "", nil)
	}
	q := dtos.WeatherQuery{
		IncidentTime:         incidentTime,
		Runway:               dtos.NormalizeRunway(runway),
		DestinationAerodrome: flight.DestinationAerodromeValue(),
		DepartureAerodrome:   flight.DepartureAerodromeValue(),
	}
	if err := validateWeatherQuery(q); err != nil {
		return dtos.WeatherQuery{}, err
	}
	return q, nil
}

func validateWeatherQuery(q dtos.WeatherQuery) error {
	if q.Runway == "" || q.IncidentTime.IsZero() {
		return lookupErr(constants.ErrCodeInvalidQuery, constants.StageWeather, constants.MsgInvalidRunwayQuery, nil)
	}
	return nil
}

// LookupWeather fetches the met report for q. ErrNoWindData means the
// service has nothing for the runway; the caller must drop any report it
// was showing.
func (s *WeatherService) LookupWeather(ctx context.Context, q dtos.WeatherQuery) (*dtos.WeatherReport, error) {
	report, err := s.lookupWeather(ctx, q)
	recordLookup(s.metrics, "weather", err)
	return report, err
}

func (s *WeatherService) lookupWeather(ctx context.Context, q dtos.WeatherQuery) (*dtos.WeatherReport, error) {
	q.Runway = dtos.NormalizeRunway(q.Runway)
	q.DestinationAerodrome = strings.ToUpper(strings.TrimSpace(q.DestinationAerodrome))
	q.DepartureAerodrome = strings.ToUpper(strings.TrimSpace(q.DepartureAerodrome))
	if err := validateWeatherQuery(q); err != nil {
		return nil, err
	}

	classification := Classify(s.home, q.DestinationAerodrome, q.DepartureAerodrome)

	met, status, err := s.source.FindMetReport(ctx, q)
	if err != nil {
		logging.Warn("Met report fetch failed",
			"runway", q.Runway,
			"status", status,
			"error", err.Error(),
		)
		return nil, lookupErr(constants.ErrCodeFetchFailed, constants.StageWeather, "", err)
	}

	label := dtos.RunwayLabel(q.Runway)
	if met == nil || !hasRunway(met, label) {
		return nil, lookupErr(constants.ErrCodeNoWindData, constants.StageWeather, "", nil)
	}

	return &dtos.WeatherReport{
		Runway:         label,
		Wind:           met.Wind,
		Visibility:     met.Visibility,
		Classification: classification,
	}, nil
}

func hasRunway(met *dtos.MetReportResponse, label string) bool {
	if obs, ok := met.Wind.ForRunway(label); ok && !obs.Empty() {
		return true
	}
	if obs, ok := met.Visibility.ForRunway(label); ok && !obs.Empty() {
		return true
	}
	return false
}

// ObservationPanel is one decoded observation selected for display
type ObservationPanel struct {
	Kind     string              `json:"kind"`
	Position string              `json:"position"`
	Title    string              `json:"title"`
	Raw      dtos.RawObservation `json:"raw"`
	Fields   []metobs.Field      `json:"fields"`
}

var (
	departurePositions = []string{dtos.PositionMid, dtos.PositionMidVariableWind}
	arrivalPositions   = []string{dtos.PositionTDZ, dtos.PositionTDZVariableWind}
)

var positionTitles = map[string]string{
	dtos.PositionMid:             "MID",
	dtos.PositionMidVariableWind: "MID Variable",
	dtos.PositionTDZ:             "TDZ",
	dtos.PositionTDZVariableWind: "TDZ Variable",
}

// SelectPanels picks the observations to show: mid-field for departures,
// touchdown zone for arrivals. Positions the service left empty are skipped.
func SelectPanels(report *dtos.WeatherReport) []ObservationPanel {
	if report == nil {
		return nil
	}

	var positions []string
	if report.Classification.IsDeparture {
		positions = append(positions, departurePositions...)
	}
	if report.Classification.IsArrival {
		positions = append(positions, arrivalPositions...)
	}

	var panels []ObservationPanel
	for _, kind := range []struct {
		name   string
		title  string
		record dtos.RunwayRecord
	}{
		{"wind", "Wind", report.Wind},
		{"visibility", "Visibility", report.Visibility},
	} {
		obs, ok := kind.record.ForRunway(report.Runway)
		if !ok {
			continue
		}
		for _, pos := range positions {
			raw := obs.Position(pos)
			fields := metobs.ParseFields(string(raw))
			if len(fields) == 0 {
				continue
			}
			panels = append(panels, ObservationPanel{
				Kind:     kind.name,
				Position: pos,
				Title:    positionTitles[pos] + " " + kind.title,
				Raw:      raw,
				Fields:   fields,
			})
		}
	}
	return panels
}
