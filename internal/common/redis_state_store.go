package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"sirms/console/internal/constants"
	"sirms/console/internal/logging"
	"sirms/console/internal/metrics"
)

// maxUpdateAttempts bounds optimistic-lock retries when two requests of the
// same session race on Update
const maxUpdateAttempts = 8

// RedisStateStore keeps session state in Redis so several console replicas
// can serve the same operator
type RedisStateStore[T any] struct {
	redis   *redis.Client
	ttl     time.Duration
	metrics *metrics.MetricsRegistry
}

var _ StateStore[struct{}] = (*RedisStateStore[struct{}])(nil)

func NewRedisStateStore[T any](client *redis.Client, ttl time.Duration, m *metrics.MetricsRegistry) *RedisStateStore[T] {
	return &RedisStateStore[T]{
		redis:   client,
		ttl:     ttl,
		metrics: m,
	}
}

func (s *RedisStateStore[T]) key(sessionID string) string {
	return string(constants.CachePrefixSession) + sessionID
}

// Load retrieves a session's state from Redis
func (s *RedisStateStore[T]) Load(ctx context.Context, sessionID string) (T, error) {
	var state T

	val, err := s.redis.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			observeStore(s.metrics, s.Backend(), "load", ErrStateNotFound)
			return state, ErrStateNotFound
		}
		observeStore(s.metrics, s.Backend(), "load", err)
		return state, fmt.Errorf("failed to get session state: %w", err)
	}

	if err := json.Unmarshal(val, &state); err != nil {
		observeStore(s.metrics, s.Backend(), "load", err)
		return state, fmt.Errorf("failed to unmarshal session state: %w", err)
	}

	observeStore(s.metrics, s.Backend(), "load", nil)
	return state, nil
}

// Update applies fn inside a WATCH/MULTI transaction and refreshes the TTL
func (s *RedisStateStore[T]) Update(ctx context.Context, sessionID string, fn func(*T) error) (T, error) {
	key := s.key(sessionID)
	var result T

	txf := func(tx *redis.Tx) error {
		var state T

		val, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return fmt.Errorf("failed to get session state: %w", err)
		default:
			if err := json.Unmarshal(val, &state); err != nil {
				logging.Warn("Discarding unreadable session state", "session_id", sessionID, "error", err.Error())
				var zero T
				state = zero
			}
		}

		if err := fn(&state); err != nil {
			return err
		}

		data, err := json.Marshal(state)
		if err != nil {
			return fmt.Errorf("failed to marshal session state: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		if err == nil {
			result = state
		}
		return err
	}

	var err error
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err = s.redis.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}

	observeStore(s.metrics, s.Backend(), "update", err)
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// Delete deletes a session's state from Redis
func (s *RedisStateStore[T]) Delete(ctx context.Context, sessionID string) error {
	if err := s.redis.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session state: %w", err)
	}
	return nil
}

func (s *RedisStateStore[T]) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx).Err()
}

func (s *RedisStateStore[T]) Backend() string { return "redis" }

// Close closes the Redis connection
func (s *RedisStateStore[T]) Close() error {
	return s.redis.Close()
}
