package audit

import (
	"context"
	"log/slog"
	"maps"
	"time"

	"medmcp/internal/audit/metrics"
	"medmcp/pkg/requestcontext"
)

// Publisher records audit entries through a Sink. Writes are synchronous and
// detached from request cancellation; failures go to the fallback logger and
// are returned so callers may choose to ignore them.
type Publisher struct {
	sink     Sink
	fallback *slog.Logger
	metrics  *metrics.Metrics
}

// PublisherOption configures the Publisher.
type PublisherOption func(*Publisher)

// WithFallbackLogger sets the channel that receives entries the sink rejected.
func WithFallbackLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.fallback = logger
	}
}

func WithMetrics(m *metrics.Metrics) PublisherOption {
	return func(p *Publisher) {
		p.metrics = m
	}
}

func NewPublisher(sink Sink, opts ...PublisherOption) *Publisher {
	p := &Publisher{sink: sink}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Record appends entry. A zero timestamp is filled from the request time.
func (p *Publisher) Record(ctx context.Context, entry Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = requestcontext.Now(ctx)
	}
	entry.Timestamp = entry.Timestamp.UTC()
	details := make(map[string]any, len(entry.Details)+1)
	maps.Copy(details, entry.Details)
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		if _, ok := details["request_id"]; !ok {
			details["request_id"] = requestID
		}
	}
	entry.Details = details

	start := time.Now()
	err := p.sink.Append(context.WithoutCancel(ctx), entry)
	if err != nil {
		p.metrics.IncWriteFailure()
		if p.fallback != nil {
			p.fallback.ErrorContext(ctx, "audit write failed",
				"error", err,
				"timestamp", entry.Timestamp,
				"event_type", entry.EventType,
				"action", entry.Action,
				"resource_type", entry.ResourceType,
				"success", entry.Success,
				"ip_address", entry.IPAddress,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		return err
	}
	p.metrics.ObserveWrite(string(entry.EventType), time.Since(start).Seconds())
	return nil
}
