package ui

import (
	"errors"
	"time"

	"sirms/console/internal/constants"
	"sirms/console/internal/models/dtos"
	"sirms/console/internal/services"
)

// Phase is where the console is in its lookup cycle
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseError   Phase = "error"
)

type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

type Notice struct {
	Level NoticeLevel `json:"level"`
	Text  string      `json:"text"`
}

// SearchForm is what the operator last submitted
type SearchForm struct {
	Callsign     string    `json:"callsign"`
	IncidentTime time.Time `json:"incidentTime"`
	Runway       string    `json:"runway"`
}

// ConsoleState is one operator session's view of the console.
//
// Every action takes a ticket from Seq when it starts. A completion is only
// applied when its ticket is still the pending one for its kind, so a slow
// response can never overwrite the result of a later action.
type ConsoleState struct {
	Phase         Phase               `json:"phase"`
	Seq           uint64              `json:"seq"`
	FlightTicket  uint64              `json:"flightTicket"`
	WeatherTicket uint64              `json:"weatherTicket"`
	Form          SearchForm          `json:"form"`
	Flight        *dtos.FlightRecord  `json:"flight,omitempty"`
	Weather       *dtos.WeatherReport `json:"weather,omitempty"`
	Notices       []Notice            `json:"notices,omitempty"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

func (s *ConsoleState) nextTicket() uint64 {
	s.Seq++
	return s.Seq
}

func (s *ConsoleState) settle() {
	switch {
	case s.Flight != nil:
		s.Phase = PhaseLoaded
	case s.Phase != PhaseError:
		s.Phase = PhaseIdle
	}
}

func (s *ConsoleState) notify(level NoticeLevel, text string) {
	s.Notices = append(s.Notices, Notice{Level: level, Text: text})
}

func (s *ConsoleState) notifyErr(err error) {
	var le *services.LookupError
	if errors.As(err, &le) {
		level := NoticeError
		if le.Code == constants.ErrCodePartialData || le.Code == constants.ErrCodeInvalidQuery {
			level = NoticeWarning
		}
		s.notify(level, le.Notice())
		return
	}
	s.notify(NoticeError, constants.GetErrorMessage(constants.ErrCodeFetchFailed))
}

// BeginFlight starts a flight plan search. Any weather lookup still in
// flight belongs to the old record and is abandoned.
func (s *ConsoleState) BeginFlight(callsign string, incidentTime time.Time, now time.Time) uint64 {
	s.Form.Callsign = callsign
	s.Form.IncidentTime = incidentTime
	s.FlightTicket = s.nextTicket()
	s.WeatherTicket = 0
	s.Phase = PhaseLoading
	s.Notices = nil
	s.UpdatedAt = now
	return s.FlightTicket
}

// CompleteLookup applies the result of Aggregate. It reports false when the
// ticket was superseded and nothing changed. A failed departure/arrival stage
// keeps the flight plan and only adds a notice.
func (s *ConsoleState) CompleteLookup(ticket uint64, rec *dtos.FlightRecord, err error, now time.Time) bool {
	if ticket == 0 || ticket != s.FlightTicket {
		return false
	}
	s.FlightTicket = 0
	s.WeatherTicket = 0
	s.Notices = nil
	s.UpdatedAt = now

	switch {
	case err == nil:
		s.Flight = rec
		s.Weather = nil
		s.Phase = PhaseLoaded
		s.notify(NoticeInfo, constants.MsgFlightLoaded)
	case services.RecordUsable(err) && rec != nil:
		s.Flight = rec
		s.Weather = nil
		s.Phase = PhaseLoaded
		s.notifyErr(err)
	case errors.Is(err, services.ErrInvalidQuery):
		s.notifyErr(err)
		s.settle()
	default:
		s.Flight = nil
		s.Weather = nil
		s.Phase = PhaseError
		s.notifyErr(err)
	}
	return true
}

// BeginSchema starts loading the default schema. It shares the flight
// ticket because the schema replaces the held record.
func (s *ConsoleState) BeginSchema(now time.Time) uint64 {
	s.FlightTicket = s.nextTicket()
	s.WeatherTicket = 0
	s.Phase = PhaseLoading
	s.Notices = nil
	s.notify(NoticeInfo, constants.MsgSchemaLoading)
	s.UpdatedAt = now
	return s.FlightTicket
}

// CompleteSchema replaces the held record with the schema. On failure the
// held record and weather are left as they were.
func (s *ConsoleState) CompleteSchema(ticket uint64, rec *dtos.FlightRecord, err error, now time.Time) bool {
	if ticket == 0 || ticket != s.FlightTicket {
		return false
	}
	s.FlightTicket = 0
	s.Notices = nil
	s.UpdatedAt = now

	if err != nil {
		s.notifyErr(err)
		s.settle()
		return true
	}
	s.Flight = rec
	s.Weather = nil
	s.Phase = PhaseLoaded
	s.notify(NoticeInfo, constants.MsgSchemaLoading)
	return true
}

// BeginWeather validates a runway lookup against the held record and takes
// a weather ticket. When the query is rejected the notice is recorded, no
// ticket is issued and the error is returned.
func (s *ConsoleState) BeginWeather(runway string, incidentTime time.Time, now time.Time) (dtos.WeatherQuery, uint64, error) {
	s.Form.Runway = runway
	if !incidentTime.IsZero() {
		s.Form.IncidentTime = incidentTime
	}
	s.Notices = nil
	s.UpdatedAt = now

	q, err := services.NewWeatherQuery(s.Flight, s.Form.IncidentTime, runway)
	if err != nil {
		s.notifyErr(err)
		return dtos.WeatherQuery{}, 0, err
	}
	s.WeatherTicket = s.nextTicket()
	return q, s.WeatherTicket, nil
}

// CompleteWeather applies a LookupWeather result
func (s *ConsoleState) CompleteWeather(ticket uint64, report *dtos.WeatherReport, err error, now time.Time) bool {
	if ticket == 0 || ticket != s.WeatherTicket {
		return false
	}
	s.WeatherTicket = 0
	s.Notices = nil
	s.UpdatedAt = now

	switch {
	case err == nil:
		s.Weather = report
		s.notify(NoticeInfo, constants.MsgWeatherLoaded)
		if report != nil && !report.Classification.IsArrival && !report.Classification.IsDeparture {
			s.notify(NoticeWarning, constants.MsgNoHomeLeg)
		}
	case errors.Is(err, services.ErrNoWindData), errors.Is(err, services.ErrFetchFailed):
		s.Weather = nil
		s.notifyErr(err)
	default:
		s.notifyErr(err)
	}
	s.settle()
	return true
}

// Reset clears the console. Seq is kept so completions of actions started
// before the reset are still recognised as stale.
func (s *ConsoleState) Reset(now time.Time) {
	*s = ConsoleState{
		Phase:     PhaseIdle,
		Seq:       s.Seq,
		UpdatedAt: now,
	}
	s.notify(NoticeInfo, constants.MsgConsoleReset)
}
