package workers

import (
	"context"
	"time"

	"sirms/console/internal/metrics"
)

type WorkersContainer struct {
	Upstream *UpstreamMonitor
}

// InitWorkers starts the background workers. They stop when ctx is done.
// An interval of zero leaves the upstream monitor idle; health checks then
// report the flight data service as unchecked.
func InitWorkers(
	ctx context.Context,
	probe SchemaProbe,
	probeInterval time.Duration,
	probeTimeout time.Duration,
	m *metrics.MetricsRegistry,
) *WorkersContainer {
	monitor := NewUpstreamMonitor(probe, probeTimeout, m)

	if probeInterval > 0 {
		go monitor.Start(ctx, probeInterval)
	}

	return &WorkersContainer{
		Upstream: monitor,
	}
}
