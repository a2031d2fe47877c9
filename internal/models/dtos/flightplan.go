package dtos

import (
	"encoding/json"
	"strings"
	"time"
)

// DefaultSchemaGUFI marks the canned preview record served by /schema. Its
// timestamp fields carry display strings rather than instants.
const DefaultSchemaGUFI = "defaultFpl"

// IncidentInstantLayout is the ISO-8601 form the flight data service expects in paths
const IncidentInstantLayout = "2006-01-02T15:04:05.000Z"

// FormatInstant renders t in UTC using IncidentInstantLayout
func FormatInstant(t time.Time) string {
	return t.UTC().Format(IncidentInstantLayout)
}

// FlightQuery is one operator search
type FlightQuery struct {
	Callsign     string    `json:"callsign"`
	IncidentTime time.Time `json:"incidentTime"`
}

// -------- helper types -----------------------------------------------------

// CodeList holds capability codes. The service sends either a single string
// or an array of strings depending on the filing.
type CodeList []string

func (c *CodeList) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*c = nil
		return nil
	}

	var many []string
	if err := json.Unmarshal(b, &many); err == nil {
		*c = CodeList(many)
		return nil
	}

	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		if one == "" {
			*c = nil
		} else {
			*c = CodeList{one}
		}
		return nil
	}

	// anything else is kept verbatim for display
	*c = CodeList{s}
	return nil
}

// String joins the codes for display; empty when no codes are present
func (c CodeList) String() string {
	return strings.Join(c, ", ")
}

// -------- main DTOs --------------------------------------------------------

// FlightRecord is the aggregated flight view
type FlightRecord struct {
	GUFI                   *string   `json:"gufi,omitempty"`
	AircraftIdentification *string   `json:"aircraftIdentification,omitempty"`
	LogTimestamp           *string   `json:"logTimestamp,omitempty"`
	Status                 *string   `json:"status,omitempty"`
	Operator               *string   `json:"operator,omitempty"`
	FlightType             *string   `json:"flightType,omitempty"`
	GUFIOriginator         *string   `json:"gufiOriginator,omitempty"`
	Departure              Departure `json:"departure"`
	Arrival                Arrival   `json:"arrival"`
	Aircraft               *Aircraft `json:"aircraft,omitempty"`
	Filed                  Filed     `json:"filed"`
}

type Departure struct {
	DepartureAerodrome    *string `json:"departureAerodrome,omitempty"`
	EstimatedOffBlockTime *string `json:"estimatedOffBlockTime,omitempty"`
	ActualTimeOfDeparture *string `json:"actualTimeOfDeparture,omitempty"`
}

type Arrival struct {
	DestinationAerodrome          *string `json:"destinationAerodrome,omitempty"`
	DestinationAerodromeAlternate *string `json:"destinationAerodromeAlternate,omitempty"`
	ActualTimeOfArrival           *string `json:"actualTimeOfArrival,omitempty"`
}

type Aircraft struct {
	Registration             *string      `json:"registration,omitempty"`
	AircraftAddress          *string      `json:"aircraftAddress,omitempty"`
	AircraftType             *string      `json:"aircraftType,omitempty"`
	AircraftApproachCategory *string      `json:"aircraftApproachCategory,omitempty"`
	WakeTurbulence           *string      `json:"wakeTurbulence,omitempty"`
	Capabilities             Capabilities `json:"capabilities"`
}

type Capabilities struct {
	Communication CommunicationCapability `json:"communication"`
	Navigation    NavigationCapability    `json:"navigation"`
	Surveillance  SurveillanceCapability  `json:"surveillance"`
}

type CommunicationCapability struct {
	CommunicationCapabilityCode         CodeList `json:"communicationCapabilityCode,omitempty"`
	DatalinkCommunicationCapabilityCode CodeList `json:"datalinkCommunicationCapabilityCode,omitempty"`
	SelectiveCallingCode                CodeList `json:"selectiveCallingCode,omitempty"`
}

type NavigationCapability struct {
	NavigationCapabilityCode CodeList `json:"navigationCapabilityCode,omitempty"`
	PerformanceBasedCode     CodeList `json:"performanceBasedCode,omitempty"`
}

type SurveillanceCapability struct {
	SurveillanceCapabilityCode CodeList `json:"surveillanceCapabilityCode,omitempty"`
}

type Filed struct {
	RouteInformation RouteInformation `json:"routeInformation"`
}

type RouteInformation struct {
	FlightRulesCategory *string `json:"flightRulesCategory,omitempty"`
	RouteText           *string `json:"routeText,omitempty"`
}

// GUFIValue returns the gufi or "" when absent
func (r *FlightRecord) GUFIValue() string {
	if r == nil || r.GUFI == nil {
		return ""
	}
	return *r.GUFI
}

// IsDefaultSchema reports whether r is the canned preview record
func (r *FlightRecord) IsDefaultSchema() bool {
	return r.GUFIValue() == DefaultSchemaGUFI
}

// DepartureAerodromeValue returns the trimmed, upper-cased departure aerodrome
func (r *FlightRecord) DepartureAerodromeValue() string {
	if r == nil {
		return ""
	}
	return normalizeAerodrome(r.Departure.DepartureAerodrome)
}

// DestinationAerodromeValue returns the trimmed, upper-cased destination aerodrome
func (r *FlightRecord) DestinationAerodromeValue() string {
	if r == nil {
		return ""
	}
	return normalizeAerodrome(r.Arrival.DestinationAerodrome)
}

func normalizeAerodrome(p *string) string {
	if p == nil {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(*p))
}

// StrPtr returns a pointer to s
func StrPtr(s string) *string {
	return &s
}
