// Package service holds the per-client sliding-window limiter injected into
// the request pipeline.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"medmcp/internal/ratelimit/metrics"
	"medmcp/internal/ratelimit/models"
	dErrors "medmcp/pkg/domain-errors"
)

// Store is a sliding-window backend. Admit must be linearizable per key.
type Store interface {
	Admit(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (*models.Decision, error)
	Count(ctx context.Context, key string, window time.Duration, now time.Time) (int, error)
}

type Option func(*Limiter)

func WithLogger(logger *slog.Logger) Option {
	return func(l *Limiter) {
		if logger != nil {
			l.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Limiter) {
		l.metrics = m
	}
}

// Limiter enforces limit requests per window for each client identifier.
type Limiter struct {
	store   Store
	limit   int
	window  time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func New(store Store, limit int, window time.Duration, opts ...Option) (*Limiter, error) {
	if store == nil {
		return nil, errors.New("rate limit store is required")
	}
	if limit <= 0 || window <= 0 {
		return nil, errors.New("rate limit and window must be positive")
	}
	l := &Limiter{
		store:  store,
		limit:  limit,
		window: window,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Admit records a request from clientID at now, or rejects it with a backoff.
// A rejection is a decision, not an error; errors mean the store failed.
func (l *Limiter) Admit(ctx context.Context, clientID string, now time.Time) (*models.Decision, error) {
	decision, err := l.store.Admit(ctx, models.ClientKey(clientID), l.limit, l.window, now)
	if err != nil {
		l.metrics.IncStoreError()
		l.logger.ErrorContext(ctx, "rate limit store failed", "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "rate limit check failed")
	}
	l.metrics.ObserveDecision(decision.Allowed)
	return decision, nil
}

// Count reports how many requests clientID has inside the window ending at now.
func (l *Limiter) Count(ctx context.Context, clientID string, now time.Time) (int, error) {
	return l.store.Count(ctx, models.ClientKey(clientID), l.window, now)
}

func (l *Limiter) Limit() int {
	return l.limit
}

func (l *Limiter) Window() time.Duration {
	return l.window
}
