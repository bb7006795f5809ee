package cleanup

import (
	"context"
	"log/slog"
	"time"

	"medmcp/internal/ratelimit/metrics"
)

// CleanupResult contains the results of a cleanup run.
type CleanupResult struct {
	WindowsEvicted int
	WindowsLeft    int
	Duration       time.Duration
}

// WindowStore is the eviction surface of the in-memory window store.
type WindowStore interface {
	EvictIdle(ctx context.Context, window time.Duration, now time.Time) (int, error)
	Len() int
}

type Option func(*IdleWindowCleaner)

func WithLogger(logger *slog.Logger) Option {
	return func(s *IdleWindowCleaner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithInterval(interval time.Duration) Option {
	return func(s *IdleWindowCleaner) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *IdleWindowCleaner) {
		s.metrics = m
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *IdleWindowCleaner) {
		if now != nil {
			s.now = now
		}
	}
}

// IdleWindowCleaner periodically drops client windows that hold no entries
// inside the rate-limit window, bounding memory for one-off clients.
type IdleWindowCleaner struct {
	store    WindowStore
	window   time.Duration
	logger   *slog.Logger
	interval time.Duration
	metrics  *metrics.Metrics
	now      func() time.Time
}

func New(store WindowStore, window time.Duration, opts ...Option) *IdleWindowCleaner {
	service := &IdleWindowCleaner{
		store:    store,
		window:   window,
		logger:   slog.Default(),
		interval: time.Minute,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Start runs cleanup on every tick until ctx is cancelled.
func (s *IdleWindowCleaner) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			res, err := s.RunOnce(ctx)
			if err != nil {
				s.logger.Error("ratelimit_cleanup_failed", "error", err)
				if s.metrics != nil {
					s.metrics.CleanupRunsTotal.WithLabelValues("error").Inc()
				}
				continue
			}

			s.logger.Debug("ratelimit_cleanup_completed",
				"windows_evicted", res.WindowsEvicted,
				"windows_left", res.WindowsLeft,
				"duration_ms", res.Duration.Milliseconds(),
			)
			if s.metrics != nil {
				s.metrics.CleanupRunsTotal.WithLabelValues("success").Inc()
				s.metrics.CleanupWindowsEvicted.Add(float64(res.WindowsEvicted))
				s.metrics.CleanupDurationSeconds.Observe(res.Duration.Seconds())
				s.metrics.ActiveWindows.Set(float64(res.WindowsLeft))
			}

		case <-ctx.Done():
			s.logger.Info("ratelimit cleanup worker stopping", "reason", ctx.Err())
			return ctx.Err()
		}
	}
}

// RunOnce executes a single cleanup run. Logging is handled by the caller (Start).
func (s *IdleWindowCleaner) RunOnce(ctx context.Context) (*CleanupResult, error) {
	start := time.Now()
	evicted, err := s.store.EvictIdle(ctx, s.window, s.now())
	if err != nil {
		return nil, err
	}
	return &CleanupResult{
		WindowsEvicted: evicted,
		WindowsLeft:    s.store.Len(),
		Duration:       time.Since(start),
	}, nil
}
