package services

import (
	"context"

	"sirms/console/internal/constants"
	"sirms/console/internal/logging"
	"sirms/console/internal/metrics"
	"sirms/console/internal/models/dtos"
)

// SchemaSource serves the canned preview record
type SchemaSource interface {
	GetDefaultSchema(ctx context.Context) (*dtos.FlightRecord, int, error)
}

type SchemaService struct {
	source  SchemaSource
	metrics *metrics.MetricsRegistry
}

func NewSchemaService(source SchemaSource, m *metrics.MetricsRegistry) *SchemaService {
	return &SchemaService{source: source, metrics: m}
}

// LoadDefaultSchema fetches the preview record. No merging is done; the
// caller replaces whatever record it holds.
func (s *SchemaService) LoadDefaultSchema(ctx context.Context) (*dtos.FlightRecord, error) {
	rec, status, err := s.source.GetDefaultSchema(ctx)
	switch {
	case err != nil:
		logging.Warn("Default schema fetch failed", "status", status, "error", err.Error())
		err = lookupErr(constants.ErrCodeFetchFailed, constants.StageSchema, "", err)
		rec = nil
	case rec == nil:
		err = lookupErr(constants.ErrCodeNotFound, constants.StageSchema, "", nil)
	}
	recordLookup(s.metrics, "schema", err)
	return rec, err
}
