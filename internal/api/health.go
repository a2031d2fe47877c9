package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"sirms/console/internal/models/dtos/responses"
)

// HealthCheckHandler handles GET /healthCheck
//
// @Summary Health check
// @Description Verifies the server is running, its session store answers and the flight data service was reachable at the last probe.
// @Tags Misc
// @Success 200 {object} responses.HealthCheckResponse
// @Failure 503 {object} responses.HealthCheckResponse
// @Router /healthCheck [get]
func HealthCheckHandler(store StorePinger, upstream UpstreamReporter, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		services := make(map[string]responses.DependencyStatus)

		if store != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			status := "ok"
			details := "Session store (" + store.Backend() + ") reachable"
			start := time.Now()
			if err := store.Ping(ctx); err != nil {
				status = "down"
				details = err.Error()
			}
			services["session_store"] = responses.DependencyStatus{
				Status:    status,
				Details:   details,
				LatencyMs: time.Since(start).Milliseconds(),
			}
		}

		if upstream != nil {
			services["flight_api"] = upstreamStatus(upstream)
		}

		overallStatus := "ok"
		for _, svc := range services {
			if svc.Status != "ok" {
				overallStatus = "down"
				break
			}
		}

		now := time.Now()
		uptime := now.Sub(upSince).Round(time.Second).String()

		resp := responses.HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			UpSince:  upSince.UTC(),
			Uptime:   uptime,
		}
		w.Header().Set("Content-Type", "application/json")
		if overallStatus != "ok" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func upstreamStatus(upstream UpstreamReporter) responses.DependencyStatus {
	probe, ok := upstream.LastProbe()
	if !ok {
		// not probed yet; do not fail the check on startup
		return responses.DependencyStatus{Status: "ok", Details: "Not checked yet"}
	}
	status := "ok"
	if !probe.Up {
		status = "down"
	}
	return responses.DependencyStatus{
		Status:    status,
		Details:   probe.Details,
		LatencyMs: probe.Latency.Milliseconds(),
	}
}
