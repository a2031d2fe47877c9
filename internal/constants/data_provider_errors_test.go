package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetStageErrorMessage(t *testing.T) {
	tests := []struct {
		code, stage, want string
	}{
		{ErrCodeFetchFailed, StagePrimary, "Error fetching flight plan or departure/arrival data."},
		{ErrCodeFetchFailed, StageSchema, "Error fetching default schema."},
		{ErrCodeFetchFailed, StageWeather, "Error fetching runway weather data."},
		{ErrCodeInvalidQuery, "", "Please enter a valid callsign and incident time."},
		{ErrCodeInvalidQuery, StageWeather, MsgInvalidRunwayQuery},
		{ErrCodeNotFound, StagePrimary, "Flight plan not found for given callsign and time. Please try again."},
		{"SOMETHING_ELSE", "", "An unknown error occurred"},
	}
	for _, tt := range tests {
		t.Run(tt.code+"/"+tt.stage, func(t *testing.T) {
			assert.Equal(t, tt.want, GetStageErrorMessage(tt.code, tt.stage))
		})
	}
}
