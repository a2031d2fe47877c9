package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sirms/console/internal/models/dtos"
)

func TestLoadDefaultSchema(t *testing.T) {
	src := &mockFlightData{
		getDefaultSchemaFunc: func(context.Context) (*dtos.FlightRecord, int, error) {
			return &dtos.FlightRecord{GUFI: dtos.StrPtr(dtos.DefaultSchemaGUFI), LogTimestamp: dtos.StrPtr("Log timestamp. Usage: ...")}, 200, nil
		},
	}

	rec, err := NewSchemaService(src, nil).LoadDefaultSchema(context.Background())
	require.NoError(t, err)
	assert.True(t, rec.IsDefaultSchema())
}

func TestLoadDefaultSchema_Failures(t *testing.T) {
	fail := &mockFlightData{
		getDefaultSchemaFunc: func(context.Context) (*dtos.FlightRecord, int, error) {
			return nil, 0, errors.New("refused")
		},
	}
	rec, err := NewSchemaService(fail, nil).LoadDefaultSchema(context.Background())
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, ErrFetchFailed)

	absent := &mockFlightData{
		getDefaultSchemaFunc: func(context.Context) (*dtos.FlightRecord, int, error) {
			return nil, 200, nil
		},
	}
	rec, err = NewSchemaService(absent, nil).LoadDefaultSchema(context.Background())
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, ErrNotFound)
}
