package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"medmcp/internal/ratelimit/metrics"
	"medmcp/internal/ratelimit/models"
	"medmcp/internal/ratelimit/store/window"
	dErrors "medmcp/pkg/domain-errors"
)

type brokenStore struct{}

func (brokenStore) Admit(context.Context, string, int, time.Duration, time.Time) (*models.Decision, error) {
	return nil, errors.New("connection reset")
}

func (brokenStore) Count(context.Context, string, time.Duration, time.Time) (int, error) {
	return 0, errors.New("connection reset")
}

type LimiterSuite struct {
	suite.Suite
	metrics *metrics.Metrics
	limiter *Limiter
	t0      time.Time
}

func TestLimiterSuite(t *testing.T) {
	suite.Run(t, new(LimiterSuite))
}

func (s *LimiterSuite) SetupTest() {
	s.metrics = metrics.New(prometheus.NewRegistry())
	l, err := New(window.NewInMemoryStore(), 3, time.Minute,
		WithMetrics(s.metrics),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	s.Require().NoError(err)
	s.limiter = l
	s.t0 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
}

func (s *LimiterSuite) TestAdmitCountsDecisions() {
	for i := 0; i < 4; i++ {
		_, err := s.limiter.Admit(context.Background(), "198.51.100.1", s.t0)
		s.Require().NoError(err)
	}

	s.Equal(3.0, testutil.ToFloat64(s.metrics.Decisions.WithLabelValues("allowed")))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Decisions.WithLabelValues("rejected")))

	count, err := s.limiter.Count(context.Background(), "198.51.100.1", s.t0)
	s.Require().NoError(err)
	s.Equal(3, count)
}

func (s *LimiterSuite) TestStoreFailureIsInternalError() {
	l, err := New(brokenStore{}, 3, time.Minute,
		WithMetrics(s.metrics),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	s.Require().NoError(err)

	d, err := l.Admit(context.Background(), "198.51.100.1", s.t0)

	s.Nil(d)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.StoreErrors))
}

func (s *LimiterSuite) TestNewValidates() {
	_, err := New(nil, 3, time.Minute)
	s.Error(err)
	_, err = New(window.NewInMemoryStore(), 0, time.Minute)
	s.Error(err)
	_, err = New(window.NewInMemoryStore(), 3, 0)
	s.Error(err)
}
