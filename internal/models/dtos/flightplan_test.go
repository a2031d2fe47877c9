package dtos

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatInstant(t *testing.T) {
	sgt := time.FixedZone("SGT", 8*3600)
	in := time.Date(2024, 1, 1, 8, 0, 0, 0, sgt)

	assert.Equal(t, "2024-01-01T00:00:00.000Z", FormatInstant(in))
}

func TestFlightRecord_Decode(t *testing.T) {
	body := `{
		"gufi": "G1",
		"aircraftIdentification": "SIA321",
		"departure": {"departureAerodrome": "wmkk "},
		"arrival": {"destinationAerodrome": "WSSS", "actualTimeOfArrival": null},
		"aircraft": {
			"registration": "9VSKA",
			"capabilities": {
				"communication": {"communicationCapabilityCode": ["E3", "H"], "selectiveCallingCode": "ABCD"},
				"navigation": {"navigationCapabilityCode": null},
				"surveillance": {"surveillanceCapabilityCode": 7}
			}
		},
		"filed": {"routeInformation": {"routeText": "DCT"}}
	}`

	var r FlightRecord
	require.NoError(t, json.Unmarshal([]byte(body), &r))

	assert.Equal(t, "G1", r.GUFIValue())
	assert.Equal(t, "WMKK", r.DepartureAerodromeValue())
	assert.Equal(t, "WSSS", r.DestinationAerodromeValue())
	assert.Nil(t, r.Arrival.ActualTimeOfArrival)
	require.NotNil(t, r.Aircraft)

	caps := r.Aircraft.Capabilities
	assert.Equal(t, "E3, H", caps.Communication.CommunicationCapabilityCode.String())
	assert.Equal(t, "ABCD", caps.Communication.SelectiveCallingCode.String())
	assert.Empty(t, caps.Navigation.NavigationCapabilityCode)
	assert.Equal(t, "7", caps.Surveillance.SurveillanceCapabilityCode.String())
	assert.Equal(t, "DCT", *r.Filed.RouteInformation.RouteText)
}

func TestFlightRecord_IsDefaultSchema(t *testing.T) {
	var nilRec *FlightRecord
	assert.False(t, nilRec.IsDefaultSchema())
	assert.False(t, (&FlightRecord{GUFI: StrPtr("G1")}).IsDefaultSchema())
	assert.True(t, (&FlightRecord{GUFI: StrPtr(DefaultSchemaGUFI)}).IsDefaultSchema())
}

func TestMetReportResponse_Decode(t *testing.T) {
	body := `{
		"wind": {"RWY 02L": {"mid": "{windDirection=120, windSpeed=10}", "tdz": null, "midVariableWind": {"a": 1}}},
		"visibility": {"rwy 02l": {"tdz": "{visibility=8000, unit=m}"}}
	}`

	var m MetReportResponse
	require.NoError(t, json.Unmarshal([]byte(body), &m))

	wind, ok := m.Wind.ForRunway(RunwayLabel(" 02l"))
	require.True(t, ok)
	assert.Equal(t, RawObservation("{windDirection=120, windSpeed=10}"), wind.Position(PositionMid))
	assert.Equal(t, RawObservation(""), wind.Position(PositionTDZ))
	assert.Equal(t, RawObservation(`{"a": 1}`), wind.MidVariableWind)

	vis, ok := m.Visibility.ForRunway("RWY 02L")
	require.True(t, ok)
	assert.Equal(t, RawObservation("{visibility=8000, unit=m}"), vis.TDZ)
	assert.False(t, vis.Empty())

	_, ok = m.Wind.ForRunway("RWY 20R")
	assert.False(t, ok)
}
