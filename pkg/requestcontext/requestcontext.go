// Package requestcontext carries request-scoped values (request id, client
// metadata, request time, authenticated subject) through context.Context.
package requestcontext

import (
	"context"
	"time"
)

type (
	contextKeyRequestID struct{}
	contextKeyClientIP  struct{}
	contextKeyUserAgent struct{}
	contextKeyTime      struct{}
	contextKeySubject   struct{}
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID{}, requestID)
}

func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(contextKeyRequestID{}).(string); ok {
		return v
	}
	return ""
}

// WithClientMetadata stores the resolved client IP and raw User-Agent.
func WithClientMetadata(ctx context.Context, ip, userAgent string) context.Context {
	ctx = context.WithValue(ctx, contextKeyClientIP{}, ip)
	return context.WithValue(ctx, contextKeyUserAgent{}, userAgent)
}

// ClientIP returns the client IP resolved by the metadata middleware, or
// "unknown" when the middleware did not run.
func ClientIP(ctx context.Context) string {
	if v, ok := ctx.Value(contextKeyClientIP{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}

func UserAgent(ctx context.Context) string {
	if v, ok := ctx.Value(contextKeyUserAgent{}).(string); ok {
		return v
	}
	return ""
}

// WithTime pins the request-scoped "now". Services read it through Now so a
// single request observes one consistent instant.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, contextKeyTime{}, t)
}

// Now returns the request-scoped time, falling back to time.Now() outside
// HTTP requests (workers, CLI, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(contextKeyTime{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithSubject stores the subject of a verified bearer token.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, contextKeySubject{}, subject)
}

// Subject returns the authenticated subject, or "" for anonymous requests.
func Subject(ctx context.Context) string {
	if v, ok := ctx.Value(contextKeySubject{}).(string); ok {
		return v
	}
	return ""
}
