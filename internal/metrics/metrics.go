package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the console service
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Upstream flight data service
	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec
	UpstreamUp              prometheus.Gauge

	// Session store
	SessionStoreOpsTotal *prometheus.CounterVec

	// Business Metrics
	LookupsTotal *prometheus.CounterVec
}

// NewMetricsRegistry registers all metrics with reg. The server passes
// prometheus.DefaultRegisterer; tests pass a fresh prometheus.NewRegistry().
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sirms_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sirms_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sirms_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method"},
		),

		UpstreamRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sirms_upstream_requests_total",
				Help: "Requests made to the flight data service by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		UpstreamRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sirms_upstream_request_duration_seconds",
				Help:    "Flight data service latency in seconds",
				Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint"},
		),

		UpstreamUp: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "sirms_upstream_up",
				Help: "1 when the last probe of the flight data service succeeded",
			},
		),

		SessionStoreOpsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sirms_session_store_ops_total",
				Help: "Console session store operations by backend, operation and result",
			},
			[]string{"backend", "op", "result"},
		),

		LookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sirms_lookups_total",
				Help: "Core lookups by operation and outcome code",
			},
			[]string{"operation", "outcome"},
		),
	}
}
