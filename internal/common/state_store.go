package common

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"sirms/console/internal/metrics"
)

// ErrStateNotFound is returned by Load when a session holds no state
var ErrStateNotFound = errors.New("session state not found")

// StateStore keeps one value of T per session id. Update is atomic per
// session: concurrent updates of the same session never interleave.
type StateStore[T any] interface {
	Load(ctx context.Context, sessionID string) (T, error)
	Update(ctx context.Context, sessionID string, fn func(*T) error) (T, error)
	Delete(ctx context.Context, sessionID string) error
	Ping(ctx context.Context) error
	Backend() string
	Close() error
}

// MemoryStateStore is the in-process StateStore backed by go-cache
type MemoryStateStore[T any] struct {
	cache   *cache.Cache
	mu      sync.Mutex
	metrics *metrics.MetricsRegistry
}

var _ StateStore[struct{}] = (*MemoryStateStore[struct{}])(nil)

// NewMemoryStateStore creates a store whose entries expire ttl after their last update
func NewMemoryStateStore[T any](ttl time.Duration, m *metrics.MetricsRegistry) *MemoryStateStore[T] {
	cleanUpInterval := ttl / 2
	if cleanUpInterval < time.Minute {
		cleanUpInterval = time.Minute
	}
	return &MemoryStateStore[T]{
		cache:   cache.New(ttl, cleanUpInterval),
		metrics: m,
	}
}

func (s *MemoryStateStore[T]) Load(_ context.Context, sessionID string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if val, found := s.cache.Get(sessionID); found {
		observeStore(s.metrics, s.Backend(), "load", nil)
		return val.(T), nil
	}
	var zero T
	observeStore(s.metrics, s.Backend(), "load", ErrStateNotFound)
	return zero, ErrStateNotFound
}

func (s *MemoryStateStore[T]) Update(_ context.Context, sessionID string, fn func(*T) error) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var state T
	if val, found := s.cache.Get(sessionID); found {
		state = val.(T)
	}
	if err := fn(&state); err != nil {
		observeStore(s.metrics, s.Backend(), "update", err)
		var zero T
		return zero, err
	}
	s.cache.Set(sessionID, state, cache.DefaultExpiration)
	observeStore(s.metrics, s.Backend(), "update", nil)
	return state, nil
}

func (s *MemoryStateStore[T]) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Delete(sessionID)
	return nil
}

func (s *MemoryStateStore[T]) Ping(context.Context) error { return nil }

func (s *MemoryStateStore[T]) Backend() string { return "memory" }

// Close is a no-op for the in-memory store
func (s *MemoryStateStore[T]) Close() error {
	return nil
}

func observeStore(m *metrics.MetricsRegistry, backend, op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	switch {
	case errors.Is(err, ErrStateNotFound):
		result = "miss"
	case err != nil:
		result = "error"
	}
	m.SessionStoreOpsTotal.WithLabelValues(backend, op, result).Inc()
}
