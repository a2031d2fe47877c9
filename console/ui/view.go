package ui

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"sirms/console/internal/constants"
	"sirms/console/internal/models/dtos"
	"sirms/console/internal/services"
)

// datetime-local input value
const formTimeLayout = "2006-01-02T15:04"

// Table is one of the flight detail tables: a header row and a single data row
type Table struct {
	Title   string
	Headers []string
	Cells   []template.HTML
	Empty   bool
}

// ConsoleView is everything the console template renders
type ConsoleView struct {
	Title         string
	Theme         string
	Phase         Phase
	Notices       []Notice
	Callsign      string
	IncidentTime  string
	Runway        string
	Timezone      string
	HomeAerodrome string
	HasFlight     bool
	DefaultSchema bool
	Tables        []Table
	Weather       *WeatherView
}

type WeatherView struct {
	Runway      string
	IsArrival   bool
	IsDeparture bool
	Panels      []services.ObservationPanel
}

// displayValue renders an optional string, N/A when absent or empty
func displayValue(p *string) string {
	if p == nil || *p == "" {
		return constants.NotAvailable
	}
	return *p
}

// displayText escapes s and breaks the line before any usage note
func displayText(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	return template.HTML(strings.Replace(escaped, "Usage:", "<br/><br/>Usage:", 1))
}

// displayTime renders a timestamp in HTTP date form (RFC 1123, GMT). The
// default schema carries descriptions in its time fields, so those and any
// value that does not parse are shown as-is.
func displayTime(p *string, schema bool) template.HTML {
	v := displayValue(p)
	if schema || v == constants.NotAvailable {
		return displayText(v)
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(v))
	if err != nil {
		return displayText(v)
	}
	return template.HTML(t.UTC().Format(http.TimeFormat))
}

func displayCodes(c dtos.CodeList) template.HTML {
	if len(c) == 0 || c.String() == "" {
		return template.HTML(constants.NotAvailable)
	}
	return displayText(c.String())
}

func cell(p *string) template.HTML {
	return displayText(displayValue(p))
}

// BuildTables lays out rec the way the operator console shows a flight
func BuildTables(rec *dtos.FlightRecord) []Table {
	flightInfo := Table{
		Title:   "Flight Information",
		Headers: []string{"EOBT", "ATD", "Departure Aerodrome", "ATA", "Arrival Aerodrome", "Alternate Arrival Aerodrome"},
	}
	otherInfo := Table{
		Title:   "Other Information",
		Headers: []string{"Callsign", "Message Timestamp", "Status", "Registration", "Operator", "Aircraft Address"},
	}
	aircraftInfo := Table{
		Headers: []string{"Aircraft Type", "Aircraft Approach Category", "Aircraft Wake Turbulence", "Flight Rule", "Flight Type", "Originator"},
	}
	capabilities := Table{
		Headers: []string{"Communication Capability Code", "Datalink Capability Code", "Selective Calling Code", "Navigation Capability Code", "Performance Based Code", "Surveillance Capability Code"},
	}
	route := Table{
		Headers: []string{"Route Information"},
	}
	tables := []*Table{&flightInfo, &otherInfo, &aircraftInfo, &capabilities, &route}

	if rec == nil {
		for _, t := range tables {
			t.Empty = true
		}
		return []Table{flightInfo, otherInfo, aircraftInfo, capabilities, route}
	}

	schema := rec.IsDefaultSchema()
	aircraft := rec.Aircraft
	if aircraft == nil {
		aircraft = &dtos.Aircraft{}
	}
	caps := aircraft.Capabilities
	ri := rec.Filed.RouteInformation

	flightInfo.Cells = []template.HTML{
		displayTime(rec.Departure.EstimatedOffBlockTime, schema),
		displayTime(rec.Departure.ActualTimeOfDeparture, schema),
		cell(rec.Departure.DepartureAerodrome),
		displayTime(rec.Arrival.ActualTimeOfArrival, schema),
		cell(rec.Arrival.DestinationAerodrome),
		cell(rec.Arrival.DestinationAerodromeAlternate),
	}

	// the operator console only fills this table when aircraft details are present
	if rec.Aircraft == nil {
		otherInfo.Empty = true
	} else {
		otherInfo.Cells = []template.HTML{
			cell(rec.AircraftIdentification),
			displayTime(rec.LogTimestamp, schema),
			cell(rec.Status),
			cell(aircraft.Registration),
			cell(rec.Operator),
			cell(aircraft.AircraftAddress),
		}
	}

	aircraftInfo.Cells = []template.HTML{
		cell(aircraft.AircraftType),
		cell(aircraft.AircraftApproachCategory),
		cell(aircraft.WakeTurbulence),
		cell(ri.FlightRulesCategory),
		cell(rec.FlightType),
		cell(rec.GUFIOriginator),
	}

	capabilities.Cells = []template.HTML{
		displayCodes(caps.Communication.CommunicationCapabilityCode),
		displayCodes(caps.Communication.DatalinkCommunicationCapabilityCode),
		displayCodes(caps.Communication.SelectiveCallingCode),
		displayCodes(caps.Navigation.NavigationCapabilityCode),
		displayCodes(caps.Navigation.PerformanceBasedCode),
		displayCodes(caps.Surveillance.SurveillanceCapabilityCode),
	}

	route.Cells = []template.HTML{cell(ri.RouteText)}

	return []Table{flightInfo, otherInfo, aircraftInfo, capabilities, route}
}

// NewConsoleView projects a session's state for rendering
func NewConsoleView(st ConsoleState, theme string, loc *time.Location, home string) ConsoleView {
	v := ConsoleView{
		Title:         "Safety Incident Reporting Management System",
		Theme:         theme,
		Phase:         st.Phase,
		Notices:       st.Notices,
		Callsign:      st.Form.Callsign,
		Runway:        st.Form.Runway,
		Timezone:      loc.String(),
		HomeAerodrome: home,
		HasFlight:     st.Flight != nil,
		DefaultSchema: st.Flight.IsDefaultSchema(),
		Tables:        BuildTables(st.Flight),
	}
	if v.Phase == "" {
		v.Phase = PhaseIdle
	}
	if !st.Form.IncidentTime.IsZero() {
		v.IncidentTime = st.Form.IncidentTime.In(loc).Format(formTimeLayout)
	}
	if st.Weather != nil {
		v.Weather = &WeatherView{
			Runway:      st.Weather.Runway,
			IsArrival:   st.Weather.Classification.IsArrival,
			IsDeparture: st.Weather.Classification.IsDeparture,
			Panels:      services.SelectPanels(st.Weather),
		}
	}
	return v
}

// parseFormTime reads a datetime-local value in loc. Seconds and a full
// RFC 3339 instant are accepted too. Unparseable input yields the zero time.
func parseFormTime(value string, loc *time.Location) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC()
	}
	for _, layout := range []string{formTimeLayout, "2006-01-02T15:04:05"} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
