package ui

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"sirms/console/internal/common"
	"sirms/console/internal/constants"
	ctxpkg "sirms/console/internal/context"
	"sirms/console/internal/logging"
	"sirms/console/internal/models/dtos"
)

type FlightAggregator interface {
	Aggregate(ctx context.Context, q dtos.FlightQuery) (*dtos.FlightRecord, error)
}

type SchemaLoader interface {
	LoadDefaultSchema(ctx context.Context) (*dtos.FlightRecord, error)
}

type WeatherLookup interface {
	LookupWeather(ctx context.Context, q dtos.WeatherQuery) (*dtos.WeatherReport, error)
	HomeAerodrome() string
}

// UIHandler serves the operator console
type UIHandler struct {
	flights  FlightAggregator
	schema   SchemaLoader
	weather  WeatherLookup
	store    common.StateStore[ConsoleState]
	renderer *Renderer
	loc      *time.Location
	now      func() time.Time
}

// NewUIHandler creates a new UI handler. loc is the zone incident times are
// entered in.
func NewUIHandler(
	flights FlightAggregator,
	schema SchemaLoader,
	weather WeatherLookup,
	store common.StateStore[ConsoleState],
	renderer *Renderer,
	loc *time.Location,
) *UIHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &UIHandler{
		flights:  flights,
		schema:   schema,
		weather:  weather,
		store:    store,
		renderer: renderer,
		loc:      loc,
		now:      time.Now,
	}
}

// sessionID returns the operator's session id, issuing a cookie on first visit
func (h *UIHandler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(constants.SessionCookieName); err == nil {
		if id, err := uuid.Parse(cookie.Value); err == nil {
			return id.String()
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (h *UIHandler) withSession(w http.ResponseWriter, r *http.Request) (context.Context, string) {
	return r.Context(), h.sessionID(w, r)
}

// DashboardHandler renders the console for the current session
func (h *UIHandler) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	ctx, sid := h.withSession(w, r)

	state, err := h.store.Load(ctx, sid)
	if err != nil && !errors.Is(err, common.ErrStateNotFound) {
		logging.Error("Failed to load console state", "session_id", sid, "error", err.Error())
		http.Error(w, "Failed to load console state", http.StatusInternalServerError)
		return
	}

	view := NewConsoleView(state, ctxpkg.GetTheme(ctx), h.loc, h.weather.HomeAerodrome())
	h.renderer.RenderTemplate(w, "console.html", view)
}

// LookupHandler runs a flight plan search
func (h *UIHandler) LookupHandler(w http.ResponseWriter, r *http.Request) {
	ctx, sid := h.withSession(w, r)

	callsign := strings.TrimSpace(r.FormValue("callsign"))
	incidentTime := parseFormTime(r.FormValue("incident_time"), h.loc)

	var ticket uint64
	if _, err := h.store.Update(ctx, sid, func(s *ConsoleState) error {
		ticket = s.BeginFlight(callsign, incidentTime, h.now())
		return nil
	}); err != nil {
		h.storeFailed(w, sid, err)
		return
	}

	rec, lookupErr := h.flights.Aggregate(ctx, dtos.FlightQuery{Callsign: callsign, IncidentTime: incidentTime})

	h.complete(ctx, w, r, sid, func(s *ConsoleState) bool {
		return s.CompleteLookup(ticket, rec, lookupErr, h.now())
	})
}

// SchemaHandler loads the default schema into the console
func (h *UIHandler) SchemaHandler(w http.ResponseWriter, r *http.Request) {
	ctx, sid := h.withSession(w, r)

	var ticket uint64
	if _, err := h.store.Update(ctx, sid, func(s *ConsoleState) error {
		ticket = s.BeginSchema(h.now())
		return nil
	}); err != nil {
		h.storeFailed(w, sid, err)
		return
	}

	rec, loadErr := h.schema.LoadDefaultSchema(ctx)

	h.complete(ctx, w, r, sid, func(s *ConsoleState) bool {
		return s.CompleteSchema(ticket, rec, loadErr, h.now())
	})
}

// WeatherHandler looks up runway observations for the held flight
func (h *UIHandler) WeatherHandler(w http.ResponseWriter, r *http.Request) {
	ctx, sid := h.withSession(w, r)

	runway := strings.TrimSpace(r.FormValue("runway"))
	incidentTime := parseFormTime(r.FormValue("incident_time"), h.loc)

	var (
		q      dtos.WeatherQuery
		ticket uint64
	)
	if _, err := h.store.Update(ctx, sid, func(s *ConsoleState) error {
		// a rejected query is recorded as a notice in s; nothing to fetch
		q, ticket, _ = s.BeginWeather(runway, incidentTime, h.now())
		return nil
	}); err != nil {
		h.storeFailed(w, sid, err)
		return
	}
	if ticket == 0 {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	report, lookupErr := h.weather.LookupWeather(ctx, q)

	h.complete(ctx, w, r, sid, func(s *ConsoleState) bool {
		return s.CompleteWeather(ticket, report, lookupErr, h.now())
	})
}

// ResetHandler clears the console
func (h *UIHandler) ResetHandler(w http.ResponseWriter, r *http.Request) {
	ctx, sid := h.withSession(w, r)

	if _, err := h.store.Update(ctx, sid, func(s *ConsoleState) error {
		s.Reset(h.now())
		return nil
	}); err != nil {
		h.storeFailed(w, sid, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *UIHandler) complete(ctx context.Context, w http.ResponseWriter, r *http.Request, sid string, apply func(*ConsoleState) bool) {
	var applied bool
	if _, err := h.store.Update(ctx, sid, func(s *ConsoleState) error {
		applied = apply(s)
		return nil
	}); err != nil {
		h.storeFailed(w, sid, err)
		return
	}
	if !applied {
		logging.Debug("Discarded superseded console result", "session_id", sid, "path", r.URL.Path)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *UIHandler) storeFailed(w http.ResponseWriter, sid string, err error) {
	logging.Error("Failed to update console state", "session_id", sid, "error", err.Error())
	http.Error(w, "Failed to update console state", http.StatusInternalServerError)
}

// SetThemeHandler stores the theme preference cookie and returns to the console
func (h *UIHandler) SetThemeHandler(w http.ResponseWriter, r *http.Request) {
	theme := r.FormValue("theme")
	if !ctxpkg.IsValidTheme(theme) {
		theme = "light"
	}

	// Set theme cookie (HTTP-only, expires in 1 year)
	http.SetCookie(w, &http.Cookie{
		Name:     constants.ThemeCookieName,
		Value:    theme,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
