// Package pipeline runs the fixed per-request stages in front of every
// route: security headers, rate admission, audit, then dispatch or 429.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"medmcp/internal/audit"
	"medmcp/internal/ratelimit/models"
	"medmcp/pkg/platform/httputil"
	"medmcp/pkg/platform/middleware/secheaders"
	"medmcp/pkg/requestcontext"
)

// Limiter is the injected rate limiter state.
type Limiter interface {
	Admit(ctx context.Context, clientID string, now time.Time) (*models.Decision, error)
}

type Auditor interface {
	Record(ctx context.Context, entry audit.Entry) error
}

const (
	actionRequest     = "http_request"
	resourceEndpoint  = "Endpoint"
	detailRateLimited = "rate_limited"
	detailRetryAfter  = "retry_after"
)

// defaultUnaudited are health-check paths whose admitted requests would only add
// noise to the trail. Rejections are audited regardless.
var defaultUnaudited = []string{"/health", "/health/live", "/health/ready", "/metrics"}

type Option func(*Pipeline)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithUnauditedPaths replaces the health-check paths skipped by the audit stage.
func WithUnauditedPaths(paths ...string) Option {
	return func(p *Pipeline) {
		p.unaudited = make(map[string]struct{}, len(paths))
		for _, path := range paths {
			p.unaudited[path] = struct{}{}
		}
	}
}

type Pipeline struct {
	limiter   Limiter
	auditor   Auditor
	logger    *slog.Logger
	unaudited map[string]struct{}
}

func New(limiter Limiter, auditor Auditor, opts ...Option) (*Pipeline, error) {
	if limiter == nil {
		return nil, errors.New("rate limiter is required")
	}
	if auditor == nil {
		return nil, errors.New("auditor is required")
	}
	p := &Pipeline{
		limiter: limiter,
		auditor: auditor,
		logger:  slog.Default(),
	}
	WithUnauditedPaths(defaultUnaudited...)(p)
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Handler wraps next with the pipeline. It expects the metadata and
// request time middlewares to have run so client IP and now are in context.
func (p *Pipeline) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		secheaders.Decorate(w.Header(), secheaders.Classify(r.URL.Path))

		now := requestcontext.Now(ctx)
		clientIP := requestcontext.ClientIP(ctx)
		decision, err := p.limiter.Admit(ctx, clientIP, now)
		if err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		setRateLimitHeaders(w.Header(), decision)

		if !decision.Allowed {
			retryAfter := httputil.RetryAfterSeconds(decision.RetryAfter)
			p.logger.WarnContext(ctx, "rate limit exceeded",
				"path", r.URL.Path,
				"retry_after", retryAfter,
				"request_id", requestcontext.RequestID(ctx),
			)
			p.record(ctx, r, false, map[string]any{
				detailRateLimited: true,
				detailRetryAfter:  retryAfter,
			})
			httputil.WriteRateLimited(w, r, decision.RetryAfter)
			return
		}

		if _, skip := p.unaudited[r.URL.Path]; !skip {
			p.record(ctx, r, true, nil)
		}
		next.ServeHTTP(w, r)
	})
}

// record never fails the request. The publisher has already routed the
// entry to the fallback channel when the sink refuses it. Entries carry no
// user: the pipeline runs before RequireAuth, so the caller is not yet known.
func (p *Pipeline) record(ctx context.Context, r *http.Request, admitted bool, details map[string]any) {
	if details == nil {
		details = map[string]any{}
	}
	details["method"] = r.Method
	err := p.auditor.Record(ctx, audit.Entry{
		Timestamp:    requestcontext.Now(ctx),
		EventType:    audit.EventDataAccess,
		Action:       actionRequest,
		ResourceType: resourceEndpoint,
		ResourceID:   audit.StringPtr(r.URL.Path),
		Success:      admitted,
		IPAddress:    requestcontext.ClientIP(ctx),
		Details:      details,
	})
	if err != nil {
		p.logger.WarnContext(ctx, "request audit not persisted",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
}

func setRateLimitHeaders(h http.Header, d *models.Decision) {
	h.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(max(d.Remaining, 0)))
	if !d.ResetAt.IsZero() {
		h.Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))
	}
}
