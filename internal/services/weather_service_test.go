package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sirms/console/internal/models/dtos"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name        string
		dest, dep   string
		isArrival   bool
		isDeparture bool
	}{
		{"arrival", "WSSS", "WMKK", true, false},
		{"departure", "WMKK", "WSSS", false, true},
		{"both", "WSSS", "WSSS", true, true},
		{"neither", "WMKK", "VHHH", false, false},
		{"case and space", " wsss", "", true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Classify("WSSS", tc.dest, tc.dep)
			assert.Equal(t, tc.isArrival, c.IsArrival)
			assert.Equal(t, tc.isDeparture, c.IsDeparture)
			assert.Equal(t, "WSSS", c.HomeAerodrome)
		})
	}

	empty := Classify("", "", "")
	assert.False(t, empty.IsArrival || empty.IsDeparture)
}

func TestNewWeatherQuery(t *testing.T) {
	_, err := NewWeatherQuery(nil, incident, "02L")
	assert.ErrorIs(t, err, ErrMissingContext)

	flight := &dtos.FlightRecord{
		Departure: dtos.Departure{DepartureAerodrome: dtos.StrPtr("wmkk")},
		Arrival:   dtos.Arrival{DestinationAerodrome: dtos.StrPtr("WSSS")},
	}

	_, err = NewWeatherQuery(flight, incident, " ")
	assert.ErrorIs(t, err, ErrInvalidQuery)

	q, err := NewWeatherQuery(flight, incident, " 02l ")
	require.NoError(t, err)
	assert.Equal(t, dtos.WeatherQuery{
		IncidentTime:         incident,
		Runway:               "02L",
		DestinationAerodrome: "WSSS",
		DepartureAerodrome:   "WMKK",
	}, q)
}

func metReport(body *dtos.MetReportResponse, err error) func(context.Context, dtos.WeatherQuery) (*dtos.MetReportResponse, int, error) {
	return func(context.Context, dtos.WeatherQuery) (*dtos.MetReportResponse, int, error) {
		return body, 200, err
	}
}

func TestLookupWeather_Arrival(t *testing.T) {
	src := &mockFlightData{findMetReportFunc: metReport(&dtos.MetReportResponse{
		Wind: dtos.WindRecord{"RWY 02L": {
			Mid:             "{windDirection=090, windSpeed=5}",
			TDZ:             "{windDirection=120, windSpeed=10}",
			TDZVariableWind: "{minWindDirection=100, maxWindDirection=140}",
		}},
		Visibility: dtos.VisibilityRecord{"RWY 02L": {TDZ: "{visibility=8000, unit=m}"}},
	}, nil)}
	svc := NewWeatherService(src, "wsss", nil)

	report, err := svc.LookupWeather(context.Background(), dtos.WeatherQuery{
		IncidentTime: incident, Runway: "02l", DestinationAerodrome: "WSSS", DepartureAerodrome: "WMKK",
	})
	require.NoError(t, err)

	assert.Equal(t, "02L", src.lastWeather.Runway)
	assert.Equal(t, "RWY 02L", report.Runway)
	assert.True(t, report.Classification.IsArrival)
	assert.False(t, report.Classification.IsDeparture)

	panels := SelectPanels(report)
	require.Len(t, panels, 3)
	assert.Equal(t, "TDZ Wind", panels[0].Title)
	assert.Equal(t, "120", panels[0].Fields[0].Value)
	assert.Equal(t, dtos.PositionTDZVariableWind, panels[1].Position)
	assert.Equal(t, "visibility", panels[2].Kind)
	assert.Equal(t, "TDZ Visibility", panels[2].Title)
}

func TestSelectPanels_DepartureAndNeither(t *testing.T) {
	report := &dtos.WeatherReport{
		Runway: "RWY 20R",
		Wind: dtos.WindRecord{"RWY 20R": {
			Mid: "{windDirection=200, windSpeed=12}",
			TDZ: "{windDirection=210, windSpeed=14}",
		}},
		Classification: dtos.Classification{IsDeparture: true},
	}

	panels := SelectPanels(report)
	require.Len(t, panels, 1)
	assert.Equal(t, dtos.PositionMid, panels[0].Position)

	report.Classification = dtos.Classification{}
	assert.Empty(t, SelectPanels(report))

	report.Classification = dtos.Classification{IsArrival: true, IsDeparture: true}
	assert.Len(t, SelectPanels(report), 2)

	assert.Nil(t, SelectPanels(nil))
}

func TestLookupWeather_NoWindData(t *testing.T) {
	cases := map[string]*dtos.MetReportResponse{
		"absent body":    nil,
		"other runway":   {Wind: dtos.WindRecord{"RWY 20R": {Mid: "{windSpeed=3}"}}},
		"empty position": {Wind: dtos.WindRecord{"RWY 02L": {}}},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			svc := NewWeatherService(&mockFlightData{findMetReportFunc: metReport(body, nil)}, "WSSS", nil)
			report, err := svc.LookupWeather(context.Background(), dtos.WeatherQuery{IncidentTime: incident, Runway: "02L"})
			assert.Nil(t, report)
			assert.ErrorIs(t, err, ErrNoWindData)
		})
	}
}

func TestLookupWeather_Failures(t *testing.T) {
	svc := NewWeatherService(&mockFlightData{findMetReportFunc: metReport(nil, errors.New("502"))}, "WSSS", nil)

	_, err := svc.LookupWeather(context.Background(), dtos.WeatherQuery{IncidentTime: incident, Runway: "02L"})
	assert.ErrorIs(t, err, ErrFetchFailed)

	_, err = svc.LookupWeather(context.Background(), dtos.WeatherQuery{Runway: "02L"})
	assert.ErrorIs(t, err, ErrInvalidQuery)
	assert.Equal(t, "WSSS", svc.HomeAerodrome())
}
