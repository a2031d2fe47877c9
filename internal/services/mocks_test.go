package services

import (
	"context"
	"time"

	"sirms/console/internal/models/dtos"
)

// mockFlightData implements every source interface the services consume
type mockFlightData struct {
	findFlightPlanFunc   func(ctx context.Context, callsign string, instant time.Time) (*dtos.FlightRecord, int, error)
	findDepArrFunc       func(ctx context.Context, gufi string) (*dtos.FlightRecord, int, error)
	getDefaultSchemaFunc func(ctx context.Context) (*dtos.FlightRecord, int, error)
	findMetReportFunc    func(ctx context.Context, q dtos.WeatherQuery) (*dtos.MetReportResponse, int, error)

	primaryCalls   int
	secondaryCalls int
	lastGUFI       string
	lastWeather    dtos.WeatherQuery
}

func (m *mockFlightData) FindFlightPlan(ctx context.Context, callsign string, instant time.Time) (*dtos.FlightRecord, int, error) {
	m.primaryCalls++
	return m.findFlightPlanFunc(ctx, callsign, instant)
}

func (m *mockFlightData) FindDepArr(ctx context.Context, gufi string) (*dtos.FlightRecord, int, error) {
	m.secondaryCalls++
	m.lastGUFI = gufi
	return m.findDepArrFunc(ctx, gufi)
}

func (m *mockFlightData) GetDefaultSchema(ctx context.Context) (*dtos.FlightRecord, int, error) {
	return m.getDefaultSchemaFunc(ctx)
}

func (m *mockFlightData) FindMetReport(ctx context.Context, q dtos.WeatherQuery) (*dtos.MetReportResponse, int, error) {
	m.lastWeather = q
	return m.findMetReportFunc(ctx, q)
}

func plan(gufi string, dep string) func(context.Context, string, time.Time) (*dtos.FlightRecord, int, error) {
	return func(context.Context, string, time.Time) (*dtos.FlightRecord, int, error) {
		return &dtos.FlightRecord{
			GUFI:      dtos.StrPtr(gufi),
			Departure: dtos.Departure{DepartureAerodrome: dtos.StrPtr(dep)},
		}, 200, nil
	}
}

func depArr(rec *dtos.FlightRecord, err error) func(context.Context, string) (*dtos.FlightRecord, int, error) {
	return func(context.Context, string) (*dtos.FlightRecord, int, error) {
		return rec, 200, err
	}
}
