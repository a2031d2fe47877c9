package dtos

import (
	"encoding/json"
	"strings"
	"time"

	"sirms/console/internal/constants"
)

// Observation positions on a runway
const (
	PositionMid             = "mid"
	PositionTDZ             = "tdz"
	PositionMidVariableWind = "midVariableWind"
	PositionTDZVariableWind = "tdzVariableWind"
)

// RunwayLabel builds the "RWY <ID>" key used by met reports
func RunwayLabel(runway string) string {
	return constants.RunwayLabelPrefix + NormalizeRunway(runway)
}

// NormalizeRunway trims and upper-cases a runway designator
func NormalizeRunway(runway string) string {
	return strings.ToUpper(strings.TrimSpace(runway))
}

// RawObservation is one brace-delimited observation string as sent by the
// met-report service, e.g. "{windDirection=120, windSpeed=10}". JSON null
// decodes to "". Values that are not strings keep their raw JSON text.
type RawObservation string

func (o *RawObservation) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*o = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*o = RawObservation(str)
		return nil
	}
	*o = RawObservation(s)
	return nil
}

// RunwayObservations holds the raw observation strings for one runway
type RunwayObservations struct {
	Mid             RawObservation `json:"mid,omitempty"`
	TDZ             RawObservation `json:"tdz,omitempty"`
	MidVariableWind RawObservation `json:"midVariableWind,omitempty"`
	TDZVariableWind RawObservation `json:"tdzVariableWind,omitempty"`
}

// Position returns the raw observation for a position name
func (o RunwayObservations) Position(name string) RawObservation {
	switch name {
	case PositionMid:
		return o.Mid
	case PositionTDZ:
		return o.TDZ
	case PositionMidVariableWind:
		return o.MidVariableWind
	case PositionTDZVariableWind:
		return o.TDZVariableWind
	}
	return ""
}

// Empty reports whether no position carries a value
func (o RunwayObservations) Empty() bool {
	return o.Mid == "" && o.TDZ == "" && o.MidVariableWind == "" && o.TDZVariableWind == ""
}

// RunwayRecord maps runway labels to observations
type RunwayRecord map[string]RunwayObservations

// ForRunway looks up label, falling back to a case-insensitive match
func (r RunwayRecord) ForRunway(label string) (RunwayObservations, bool) {
	if obs, ok := r[label]; ok {
		return obs, true
	}
	for k, obs := range r {
		if strings.EqualFold(strings.TrimSpace(k), label) {
			return obs, true
		}
	}
	return RunwayObservations{}, false
}

type (
	WindRecord       = RunwayRecord
	VisibilityRecord = RunwayRecord
)

// MetReportResponse is the body of /find/met-report
type MetReportResponse struct {
	Wind       WindRecord       `json:"wind"`
	Visibility VisibilityRecord `json:"visibility"`
}

// ParsedObservation is a decoded observation string
type ParsedObservation map[string]string

// WeatherQuery is one runway weather lookup
type WeatherQuery struct {
	IncidentTime         time.Time `json:"incidentTime"`
	Runway               string    `json:"runway"`
	DestinationAerodrome string    `json:"destinationAerodrome"`
	DepartureAerodrome   string    `json:"departureAerodrome"`
}

// Classification records how the flight relates to the home aerodrome
type Classification struct {
	HomeAerodrome string `json:"homeAerodrome"`
	IsArrival     bool   `json:"isArrival"`
	IsDeparture   bool   `json:"isDeparture"`
}

// WeatherReport is the outcome of a runway weather lookup
type WeatherReport struct {
	Runway         string           `json:"runway"`
	Wind           WindRecord       `json:"wind"`
	Visibility     VisibilityRecord `json:"visibility"`
	Classification Classification   `json:"classification"`
}
