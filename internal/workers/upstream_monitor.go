package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"sirms/console/internal/logging"
	"sirms/console/internal/metrics"
	"sirms/console/internal/models/dtos"
)

// SchemaProbe is the cheapest request the flight data service answers
type SchemaProbe interface {
	GetDefaultSchema(ctx context.Context) (*dtos.FlightRecord, int, error)
}

// ProbeResult is the outcome of the most recent upstream check
type ProbeResult struct {
	Up        bool
	Status    int
	Details   string
	Latency   time.Duration
	CheckedAt time.Time
}

// UpstreamMonitor periodically checks that the flight data service answers.
// It only records reachability; no response is cached.
type UpstreamMonitor struct {
	probe   SchemaProbe
	timeout time.Duration
	metrics *metrics.MetricsRegistry
	log     *zap.SugaredLogger

	mu   sync.RWMutex
	last *ProbeResult
}

// NewUpstreamMonitor creates a new upstream monitor
func NewUpstreamMonitor(probe SchemaProbe, timeout time.Duration, m *metrics.MetricsRegistry) *UpstreamMonitor {
	return &UpstreamMonitor{
		probe:   probe,
		timeout: timeout,
		metrics: m,
		log:     logging.With("worker", "upstream_monitor"),
	}
}

// Start checks the upstream every interval until ctx is cancelled
func (u *UpstreamMonitor) Start(ctx context.Context, interval time.Duration) {
	u.log.Infow("Starting upstream monitor", "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Run immediately on start
	u.Check(ctx)

	for {
		select {
		case <-ctx.Done():
			u.log.Infow("Upstream monitor shutting down")
			return
		case <-ticker.C:
			u.Check(ctx)
		}
	}
}

// Check probes the upstream once and records the result
func (u *UpstreamMonitor) Check(ctx context.Context) ProbeResult {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	start := time.Now()
	_, status, err := u.probe.GetDefaultSchema(ctx)
	res := ProbeResult{
		Up:        err == nil,
		Status:    status,
		Details:   "Flight data service reachable",
		Latency:   time.Since(start),
		CheckedAt: time.Now(),
	}
	if err != nil {
		res.Details = err.Error()
	}

	u.mu.Lock()
	wasUp := u.last == nil || u.last.Up
	u.last = &res
	u.mu.Unlock()

	if wasUp && !res.Up {
		u.log.Warnw("Flight data service unreachable", "status", status, "error", res.Details)
	} else if !wasUp && res.Up {
		u.log.Infow("Flight data service reachable again", "latency_ms", res.Latency.Milliseconds())
	}

	if u.metrics != nil {
		up := 0.0
		if res.Up {
			up = 1
		}
		u.metrics.UpstreamUp.Set(up)
	}
	return res
}

// LastProbe returns the most recent result, false before the first check
func (u *UpstreamMonitor) LastProbe() (ProbeResult, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if u.last == nil {
		return ProbeResult{}, false
	}
	return *u.last, true
}
