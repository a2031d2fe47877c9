package services

import (
	"context"
	"strings"
	"time"

	"sirms/console/internal/constants"
	"sirms/console/internal/logging"
	"sirms/console/internal/metrics"
	"sirms/console/internal/models/dtos"
)

// FlightPlanSource is the part of the flight data service the aggregator needs
type FlightPlanSource interface {
	FindFlightPlan(ctx context.Context, callsign string, instant time.Time) (*dtos.FlightRecord, int, error)
	FindDepArr(ctx context.Context, gufi string) (*dtos.FlightRecord, int, error)
}

// FlightLookupService aggregates a flight plan with its departure/arrival
// record. It keeps no state between calls.
type FlightLookupService struct {
	source  FlightPlanSource
	metrics *metrics.MetricsRegistry
}

func NewFlightLookupService(source FlightPlanSource, m *metrics.MetricsRegistry) *FlightLookupService {
	return &FlightLookupService{source: source, metrics: m}
}

// Aggregate runs the primary flight-plan lookup and enriches the result with
// the departure/arrival record for its gufi.
//
// When the departure/arrival record is unavailable (ErrPartialData) or its
// fetch failed (ErrFetchFailed at StageSecondary) the returned record is the
// unmodified flight plan and is still valid; see RecordUsable. On any other
// error the record is nil.
func (s *FlightLookupService) Aggregate(ctx context.Context, q dtos.FlightQuery) (*dtos.FlightRecord, error) {
	rec, err := s.aggregate(ctx, q)
	recordLookup(s.metrics, "aggregate", err)
	return rec, err
}

func (s *FlightLookupService) aggregate(ctx context.Context, q dtos.FlightQuery) (*dtos.FlightRecord, error) {
	callsign := strings.TrimSpace(q.Callsign)
	if callsign == "" || q.IncidentTime.IsZero() {
		return nil, lookupErr(constants.ErrCodeInvalidQuery, "", "", nil)
	}

	plan, status, err := s.source.FindFlightPlan(ctx, callsign, q.IncidentTime)
	if err != nil {
		logging.Warn("Primary flight plan fetch failed",
			"callsign", callsign,
			"status", status,
			"error", err.Error(),
		)
		return nil, lookupErr(constants.ErrCodeFetchFailed, constants.StagePrimary, "", err)
	}
	if plan == nil {
		return nil, lookupErr(constants.ErrCodeNotFound, constants.StagePrimary, "", nil)
	}

	gufi := plan.GUFIValue()
	if gufi == "" {
		logging.Warn("Flight plan has no gufi; skipping departure/arrival lookup", "callsign", callsign)
		return plan, lookupErr(constants.ErrCodePartialData, constants.StageSecondary, "flight plan carries no gufi", nil)
	}

	depArr, status, err := s.source.FindDepArr(ctx, gufi)
	if err != nil {
		logging.Warn("Departure/arrival fetch failed",
			"gufi", gufi,
			"status", status,
			"error", err.Error(),
		)
		return plan, lookupErr(constants.ErrCodeFetchFailed, constants.StageSecondary, "", err)
	}
	if depArr == nil {
		return plan, lookupErr(constants.ErrCodePartialData, constants.StageSecondary, "", nil)
	}
	if other := depArr.GUFIValue(); other != "" && other != gufi {
		logging.Warn("Departure/arrival record belongs to another flight",
			"gufi", gufi,
			"other_gufi", other,
		)
		return plan, lookupErr(constants.ErrCodePartialData, constants.StageSecondary, "departure/arrival record gufi mismatch", nil)
	}

	logging.Debug("Merged departure/arrival record", "gufi", gufi)
	return dtos.MergeDepArr(plan, depArr), nil
}

func recordLookup(m *metrics.MetricsRegistry, op string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		if code := ErrorCode(err); code != "" {
			outcome = strings.ToLower(code)
		} else {
			outcome = "error"
		}
	}
	m.LookupsTotal.WithLabelValues(op, outcome).Inc()
}
