package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"sirms/console/internal/constants"
	"sirms/console/internal/logging"
	"sirms/console/internal/metobs"
	"sirms/console/internal/models/dtos"
	"sirms/console/internal/models/dtos/responses"
	"sirms/console/internal/services"
)

// maximum accepted body for POST /observations/parse
const maxObservationBody = 64 << 10

// statusForLookupError maps a lookup outcome onto an HTTP status
func statusForLookupError(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidQuery):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrNoWindData):
		return http.StatusNotFound
	// only reachable from callers that build the query from a held flight
	case errors.Is(err, services.ErrMissingContext):
		return http.StatusConflict
	case errors.Is(err, services.ErrFetchFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondWithLookupError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForLookupError(err)
	code := services.ErrorCode(err)

	message := lookupNotice(err)
	if status >= http.StatusInternalServerError {
		logging.Error("Lookup failed", "path", r.URL.Path, "code", code, "error", err.Error())
	}
	respondWithError(w, status, code, message)
}

// lookupNotice is the operator-facing text for a lookup error
func lookupNotice(err error) string {
	var le *services.LookupError
	if errors.As(err, &le) {
		return le.Notice()
	}
	return constants.GetErrorMessage(services.ErrorCode(err))
}

// parseInstant accepts any RFC 3339 instant and normalises it to UTC
func parseInstant(value string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// FlightLookupHandler godoc
// @Summary      Aggregate a flight plan
// @Description  Looks up the flight plan for a callsign at an incident time and merges its departure/arrival record.
// @Description  When only the departure/arrival stage fails the flight plan is returned with status 200 and a warning code (PARTIAL_DATA or FETCH_FAILED).
// @Tags         Flights
// @Produce      json
// @Param        callsign  path  string  true  "Aircraft callsign"
// @Param        instant   path  string  true  "Incident time (RFC 3339)"
// @Success      200  {object}  responses.APIResponse[dtos.FlightRecord]
// @Failure      400,404,502  {object}  responses.APIResponse[any]
// @Router       /api/v1/flights/{callsign}/{instant} [get]
func (h *Handlers) FlightLookupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := dtos.FlightQuery{Callsign: chi.URLParam(r, "callsign")}
		if t, ok := parseInstant(chi.URLParam(r, "instant")); ok {
			q.IncidentTime = t
		}

		rec, err := h.deps.Services.Flights.Aggregate(r.Context(), q)
		switch {
		case err == nil:
			respondWithSuccess(w, http.StatusOK, rec)
		case services.RecordUsable(err) && rec != nil:
			respondWithWarning(w, http.StatusOK, rec, services.ErrorCode(err), lookupNotice(err))
		default:
			respondWithLookupError(w, r, err)
		}
	}
}

// DefaultSchemaHandler godoc
// @Summary      Default flight plan schema
// @Tags         Flights
// @Produce      json
// @Success      200  {object}  responses.APIResponse[dtos.FlightRecord]
// @Failure      404,502  {object}  responses.APIResponse[any]
// @Router       /api/v1/flights/schema [get]
func (h *Handlers) DefaultSchemaHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := h.deps.Services.Schema.LoadDefaultSchema(r.Context())
		if err != nil {
			respondWithLookupError(w, r, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, rec)
	}
}

// RunwayWeatherHandler godoc
// @Summary      Runway wind and visibility
// @Description  Returns the met report for a runway and the observation panels selected for the flight's relation to the home aerodrome.
// @Description  Stateless: the aerodromes come from the path rather than a held flight, so no MISSING_CONTEXT (409) is returned here; the console's weather action is the stateful variant.
// @Tags         Weather
// @Produce      json
// @Param        instant      path  string  true  "Incident time (RFC 3339)"
// @Param        runway       path  string  true  "Runway designator, e.g. 02L"
// @Param        destination  path  string  true  "Destination aerodrome"
// @Param        departure    path  string  true  "Departure aerodrome"
// @Success      200  {object}  responses.APIResponse[responses.WeatherResponse]
// @Failure      400,404,502  {object}  responses.APIResponse[any]
// @Router       /api/v1/weather/{instant}/{runway}/{destination}/{departure} [get]
func (h *Handlers) RunwayWeatherHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := dtos.WeatherQuery{
			Runway:               chi.URLParam(r, "runway"),
			DestinationAerodrome: chi.URLParam(r, "destination"),
			DepartureAerodrome:   chi.URLParam(r, "departure"),
		}
		if t, ok := parseInstant(chi.URLParam(r, "instant")); ok {
			q.IncidentTime = t
		}

		report, err := h.deps.Services.Weather.LookupWeather(r.Context(), q)
		if err != nil {
			respondWithLookupError(w, r, err)
			return
		}

		resp := &responses.WeatherResponse{
			Report: report,
			Panels: services.SelectPanels(report),
		}
		respondWithSuccess(w, http.StatusOK, resp)
	}
}

// ParseObservationHandler godoc
// @Summary      Decode an observation string
// @Description  Decodes a brace-delimited observation such as "{windDirection=120, windSpeed=10}". Never fails on malformed input.
// @Tags         Weather
// @Accept       json
// @Produce      json
// @Success      200  {object}  responses.APIResponse[responses.ParseObservationResponse]
// @Failure      400  {object}  responses.APIResponse[any]
// @Router       /api/v1/observations/parse [post]
func (h *Handlers) ParseObservationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req responses.ParseObservationRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxObservationBody)).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, constants.ErrCodeInvalidQuery, "Invalid request body")
			return
		}

		resp := &responses.ParseObservationResponse{
			Parsed: metobs.Parse(req.Raw),
			Fields: metobs.ParseFields(req.Raw),
		}
		respondWithSuccess(w, http.StatusOK, resp)
	}
}
