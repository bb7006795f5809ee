package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"medmcp/internal/audit"
	"medmcp/internal/ratelimit/models"
	"medmcp/internal/ratelimit/service"
	"medmcp/internal/ratelimit/store/window"
	dErrors "medmcp/pkg/domain-errors"
	"medmcp/pkg/requestcontext"
	"medmcp/pkg/testutil"
)

type failingSink struct{}

func (failingSink) Append(context.Context, audit.Entry) error {
	return errors.New("disk full")
}

type brokenLimiter struct{}

func (brokenLimiter) Admit(context.Context, string, time.Time) (*models.Decision, error) {
	return nil, dErrors.Wrap(errors.New("redis down"), dErrors.CodeInternal, "rate limit check failed")
}

type PipelineSuite struct {
	suite.Suite
	sink       *audit.InMemorySink
	limiter    *service.Limiter
	dispatched int
	handler    http.Handler
	now        time.Time
}

func TestPipelineSuite(t *testing.T) {
	suite.Run(t, new(PipelineSuite))
}

func (s *PipelineSuite) SetupTest() {
	s.sink = audit.NewInMemorySink()
	limiter, err := service.New(window.NewInMemoryStore(), 3, time.Minute)
	s.Require().NoError(err)
	s.limiter = limiter
	s.dispatched = 0
	s.now = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

	p, err := New(s.limiter, audit.NewPublisher(s.sink))
	s.Require().NoError(err)
	s.handler = p.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.dispatched++
		w.WriteHeader(http.StatusOK)
	}))
}

func (s *PipelineSuite) request(path, ip string, at time.Time) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	ctx := requestcontext.WithClientMetadata(req.Context(), ip, "pytest")
	ctx = requestcontext.WithTime(ctx, at)
	ctx = requestcontext.WithRequestID(ctx, "req-1")
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req.WithContext(ctx))
	return rr
}

func (s *PipelineSuite) TestAdmittedRequestIsDecoratedAuditedAndDispatched() {
	rr := s.request("/scheme/available", "203.0.113.5", s.now)

	s.Equal(http.StatusOK, rr.Code)
	s.Equal(1, s.dispatched)
	s.Equal("default-src 'self'", rr.Header().Get("Content-Security-Policy"))
	s.Equal("3", rr.Header().Get("X-RateLimit-Limit"))
	s.Equal("2", rr.Header().Get("X-RateLimit-Remaining"))
	s.NotEmpty(rr.Header().Get("X-RateLimit-Reset"))

	entries := s.sink.Entries()
	s.Require().Len(entries, 1)
	s.Equal(audit.EventDataAccess, entries[0].EventType)
	s.True(entries[0].Success)
	s.Equal("203.0.113.5", entries[0].IPAddress)
	s.Equal("/scheme/available", *entries[0].ResourceID)
	s.Equal(s.now, entries[0].Timestamp)
	s.Equal("req-1", entries[0].Details["request_id"])
}

func (s *PipelineSuite) TestRejectionIsAuditedAndShortCircuits() {
	for i := 0; i < 3; i++ {
		s.Equal(http.StatusOK, s.request("/analytics/dashboard", "203.0.113.5", s.now.Add(time.Duration(i)*time.Second)).Code)
	}

	rr := s.request("/analytics/dashboard", "203.0.113.5", s.now.Add(10*time.Second))

	s.Equal(http.StatusTooManyRequests, rr.Code)
	s.Equal(3, s.dispatched)
	s.Equal("50", rr.Header().Get("Retry-After"))
	s.Equal("0", rr.Header().Get("X-RateLimit-Remaining"))
	s.Equal("nosniff", rr.Header().Get("X-Content-Type-Options"), "rejections carry security headers")

	var body map[string]any
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &body))
	s.Equal("Rate limit exceeded", body["error"])
	s.EqualValues(50, body["retry_after"])
	s.Equal("/analytics/dashboard", body["path"])

	entries := s.sink.Entries()
	s.Require().Len(entries, 4)
	last := entries[3]
	s.False(last.Success)
	s.Equal(true, last.Details["rate_limited"])
	s.Equal(50, last.Details["retry_after"])
}

func (s *PipelineSuite) TestEntriesCarryNoUser() {
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodGet, "/scheme/available", nil)
		ctx := requestcontext.WithClientMetadata(req.Context(), "203.0.113.9", "pytest")
		ctx = requestcontext.WithTime(ctx, s.now)
		ctx = requestcontext.WithSubject(ctx, "admin")
		s.handler.ServeHTTP(httptest.NewRecorder(), req.WithContext(ctx))
	}

	entries := s.sink.Entries()
	s.Require().Len(entries, 4)
	for _, e := range entries {
		s.Nil(e.UserID)
		s.Equal("203.0.113.9", e.IPAddress)
	}
	s.False(entries[3].Success)
}

func (s *PipelineSuite) TestWindowSlidesAfterSixtySeconds() {
	for i := 0; i < 3; i++ {
		s.request("/", "198.51.100.1", s.now)
	}
	s.Equal(http.StatusTooManyRequests, s.request("/", "198.51.100.1", s.now.Add(59*time.Second)).Code)
	s.Equal(http.StatusOK, s.request("/", "198.51.100.1", s.now.Add(61*time.Second)).Code)
}

func (s *PipelineSuite) TestClientsAreLimitedIndependently() {
	for i := 0; i < 3; i++ {
		s.request("/", "198.51.100.1", s.now)
	}
	s.Equal(http.StatusTooManyRequests, s.request("/", "198.51.100.1", s.now).Code)
	s.Equal(http.StatusOK, s.request("/", "198.51.100.2", s.now).Code)
}

func (s *PipelineSuite) TestHealthChecksAreCountedButNotAudited() {
	rr := s.request("/health", "203.0.113.5", s.now)

	s.Equal(http.StatusOK, rr.Code)
	s.Empty(s.sink.Entries())
	count, err := s.limiter.Count(context.Background(), "203.0.113.5", s.now)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *PipelineSuite) TestDocsRouteGetsRelaxedPolicy() {
	rr := s.request("/docs", "203.0.113.5", s.now)
	s.Contains(rr.Header().Get("Content-Security-Policy"), "https://cdn.jsdelivr.net")
}

func TestPipeline_AuditFailureIsNotFatal(t *testing.T) {
	limiter, err := service.New(window.NewInMemoryStore(), 60, time.Minute)
	require.NoError(t, err)
	p, err := New(limiter, audit.NewPublisher(failingSink{}))
	require.NoError(t, err)

	called := false
	handler := p.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/scheme/available", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestPipeline_LimiterFailureIs500(t *testing.T) {
	sink := audit.NewInMemorySink()
	p, err := New(brokenLimiter{}, audit.NewPublisher(sink))
	require.NoError(t, err)

	called := false
	handler := p.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/scheme/available", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "redis")
	assert.Equal(t, "default-src 'self'", rr.Header().Get("Content-Security-Policy"))
}

func TestPipeline_ConcurrentRequestsFromOneClient(t *testing.T) {
	limiter, err := service.New(window.NewInMemoryStore(), 60, time.Minute)
	require.NoError(t, err)
	p, err := New(limiter, audit.NewPublisher(audit.NewInMemorySink()))
	require.NoError(t, err)
	handler := p.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	now := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

	result := testutil.RunConcurrent(100, func(int) error {
		req := httptest.NewRequest(http.MethodGet, "/scheme/available", nil)
		ctx := requestcontext.WithClientMetadata(req.Context(), "192.0.2.10", "")
		ctx = requestcontext.WithTime(ctx, now)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req.WithContext(ctx))
		switch rr.Code {
		case http.StatusOK:
			return nil
		case http.StatusTooManyRequests:
			return testutil.ErrRejected
		default:
			return errors.New(rr.Body.String())
		}
	})

	assert.EqualValues(t, 60, result.Successes)
	assert.EqualValues(t, 40, result.Rejected)
	assert.EqualValues(t, 0, result.Errors)
}

func TestNew_RequiresDeps(t *testing.T) {
	_, err := New(nil, audit.NewPublisher(audit.NewInMemorySink()))
	assert.Error(t, err)
	_, err = New(brokenLimiter{}, nil)
	assert.Error(t, err)
}
