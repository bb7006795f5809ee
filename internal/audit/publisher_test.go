package audit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medmcp/internal/audit/metrics"
	"medmcp/pkg/requestcontext"
)

type failingSink struct{ err error }

func (f failingSink) Append(context.Context, Entry) error { return f.err }

type ctxCapturingSink struct {
	InMemorySink
	ctxErr error
}

func (c *ctxCapturingSink) Append(ctx context.Context, e Entry) error {
	c.ctxErr = ctx.Err()
	return c.InMemorySink.Append(ctx, e)
}

func requestCtx() context.Context {
	ctx := requestcontext.WithRequestID(context.Background(), "req-123")
	ctx = requestcontext.WithClientMetadata(ctx, "198.51.100.4", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	return requestcontext.WithTime(ctx, time.Date(2025, 5, 5, 10, 0, 0, 0, time.UTC))
}

func TestPublisher_RecordFillsDefaults(t *testing.T) {
	sink := NewInMemorySink()
	p := NewPublisher(sink)

	require.NoError(t, p.Record(requestCtx(), Entry{EventType: EventDataAccess, Action: "GET"}))

	entries := sink.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, time.Date(2025, 5, 5, 10, 0, 0, 0, time.UTC), entries[0].Timestamp)
	assert.Equal(t, "req-123", entries[0].Details["request_id"])
}

func TestPublisher_RecordDoesNotMutateCallerDetails(t *testing.T) {
	p := NewPublisher(NewInMemorySink())
	details := map[string]any{"path": "/health"}

	require.NoError(t, p.Record(requestCtx(), Entry{EventType: EventDataAccess, Details: details}))

	assert.Equal(t, map[string]any{"path": "/health"}, details)
}

func TestPublisher_WriteSurvivesCancellation(t *testing.T) {
	sink := &ctxCapturingSink{}
	p := NewPublisher(sink)

	ctx, cancel := context.WithCancel(requestCtx())
	cancel()

	require.NoError(t, p.Record(ctx, Entry{EventType: EventAuthentication, Action: "login"}))
	assert.NoError(t, sink.ctxErr)
	assert.Len(t, sink.Entries(), 1)
}

func TestPublisher_FailureGoesToFallbackAndMetrics(t *testing.T) {
	var buf bytes.Buffer
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	p := NewPublisher(failingSink{err: errors.New("no space left on device")},
		WithFallbackLogger(slog.New(slog.NewJSONHandler(&buf, nil))),
		WithMetrics(m),
	)

	err := p.Record(requestCtx(), Entry{EventType: EventAuthentication, Action: "login", IPAddress: "198.51.100.4"})

	require.Error(t, err)
	assert.Contains(t, buf.String(), "audit write failed")
	assert.Contains(t, buf.String(), "no space left on device")
	assert.Contains(t, buf.String(), `"action":"login"`)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WriteFailures))
}

func TestPublisher_SuccessCountsByEventType(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	p := NewPublisher(NewInMemorySink(), WithMetrics(m))

	require.NoError(t, p.Record(requestCtx(), Entry{EventType: EventBenefitCheck}))
	require.NoError(t, p.Record(requestCtx(), Entry{EventType: EventBenefitCheck}))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.EntriesWritten.WithLabelValues("benefit_check")))
}

func TestLogAuthentication(t *testing.T) {
	sink := NewInMemorySink()
	p := NewPublisher(sink)

	require.NoError(t, p.LogAuthentication(requestCtx(), "admin", "login", false, "invalid_credentials"))

	got := sink.Filter(EventAuthentication)
	require.Len(t, got, 1)
	assert.False(t, got[0].Success)
	assert.Equal(t, "admin", *got[0].UserID)
	assert.Equal(t, "User", got[0].ResourceType)
	assert.Equal(t, "198.51.100.4", got[0].IPAddress)
	assert.Equal(t, "invalid_credentials", got[0].Details["failure_reason"])
	client := got[0].Details["client"].(map[string]any)
	assert.Contains(t, client["browser"], "Chrome")
	assert.Contains(t, client["os"], "Linux")
}

func TestLogClaimTransaction(t *testing.T) {
	sink := NewInMemorySink()
	p := NewPublisher(sink)
	ctx := requestcontext.WithSubject(requestCtx(), "provider1")

	require.NoError(t, p.LogClaimTransaction(ctx, "gems", "GEMS-CLM-1", "approved", 1000, 900))

	got := sink.Filter(EventClaimSubmission)
	require.Len(t, got, 1)
	assert.True(t, got[0].Success)
	assert.Equal(t, "provider1", *got[0].UserID)
	assert.Equal(t, "GEMS-CLM-1", *got[0].ResourceID)
	assert.Equal(t, 900.0, got[0].Details["amount_approved"])
}

func TestDescribeClient(t *testing.T) {
	assert.Nil(t, DescribeClient(""))

	bot := DescribeClient("Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)")
	assert.Equal(t, true, bot["bot"])
}
