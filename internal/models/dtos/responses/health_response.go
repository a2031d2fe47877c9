package responses

import "time"

// DependencyStatus is the health of one dependency the console relies on
type DependencyStatus struct {
	Status    string `json:"status"`
	Details   string `json:"details"`
	LatencyMs int64  `json:"latency_ms"`
}

type HealthCheckResponse struct {
	Status   string                      `json:"status"`
	Services map[string]DependencyStatus `json:"services"`
	UpSince  time.Time                   `json:"up_since"`
	Uptime   string                      `json:"uptime"`
}
