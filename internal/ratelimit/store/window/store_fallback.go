package window

import (
	"context"
	"log/slog"
	"time"

	"medmcp/internal/ratelimit/models"
	"medmcp/pkg/platform/circuit"
)

// Backend is a window store as seen by FallbackStore.
type Backend interface {
	Admit(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (*models.Decision, error)
	Count(ctx context.Context, key string, window time.Duration, now time.Time) (int, error)
}

// FallbackStore sends every check to the shared primary and, once the
// breaker opens after repeated primary errors, answers from a local store
// instead. Quotas are per replica while degraded. While open, one check per
// breaker cooldown still goes to the primary so the breaker can close again.
type FallbackStore struct {
	primary  Backend
	fallback Backend
	breaker  *circuit.Breaker
	logger   *slog.Logger
}

func NewFallbackStore(primary, fallback Backend, breaker *circuit.Breaker, logger *slog.Logger) *FallbackStore {
	if breaker == nil {
		breaker = circuit.New("ratelimit_store")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FallbackStore{primary: primary, fallback: fallback, breaker: breaker, logger: logger}
}

func (s *FallbackStore) Admit(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (*models.Decision, error) {
	if !s.breaker.Allow() {
		return s.fallback.Admit(ctx, key, limit, window, now)
	}
	decision, err := s.primary.Admit(ctx, key, limit, window, now)
	if err == nil {
		s.success(ctx)
		return decision, nil
	}
	if !s.failure(ctx, err) {
		return nil, err
	}
	return s.fallback.Admit(ctx, key, limit, window, now)
}

func (s *FallbackStore) Count(ctx context.Context, key string, window time.Duration, now time.Time) (int, error) {
	n, err := s.primary.Count(ctx, key, window, now)
	if err == nil {
		return n, nil
	}
	if s.breaker.IsOpen() {
		return s.fallback.Count(ctx, key, window, now)
	}
	return 0, err
}

// Degraded reports whether checks are currently served by the fallback.
func (s *FallbackStore) Degraded() bool {
	return s.breaker.IsOpen()
}

func (s *FallbackStore) success(ctx context.Context) {
	if _, change := s.breaker.RecordSuccess(); change.Closed {
		s.logger.InfoContext(ctx, "rate limit store recovered", "breaker", s.breaker.Name())
	}
}

func (s *FallbackStore) failure(ctx context.Context, err error) bool {
	useFallback, change := s.breaker.RecordFailure()
	if change.Opened {
		s.logger.WarnContext(ctx, "rate limit store degraded, using local windows",
			"breaker", s.breaker.Name(),
			"error", err,
		)
	}
	return useFallback
}
