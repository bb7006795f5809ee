// Package app is the composition root shared by cmd/server and the
// end-to-end tests.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	analytics "medmcp/internal/analytics"
	analyticshandler "medmcp/internal/analytics/handler"
	analyticsmetrics "medmcp/internal/analytics/metrics"
	"medmcp/internal/audit"
	auditmetrics "medmcp/internal/audit/metrics"
	authhandler "medmcp/internal/auth/handler"
	authmetrics "medmcp/internal/auth/metrics"
	authservice "medmcp/internal/auth/service"
	"medmcp/internal/auth/store/credentials"
	fhirclient "medmcp/internal/fhir/client"
	fhirconnector "medmcp/internal/fhir/connector"
	fhirhandler "medmcp/internal/fhir/handler"
	"medmcp/internal/fhir/workflow"
	jwttoken "medmcp/internal/jwt_token"
	mcphandler "medmcp/internal/mcp/handler"
	mcpservice "medmcp/internal/mcp/service"
	"medmcp/internal/openemr"
	"medmcp/internal/pipeline"
	"medmcp/internal/platform/config"
	"medmcp/internal/platform/health"
	"medmcp/internal/platform/logger"
	"medmcp/internal/platform/metrics"
	"medmcp/internal/platform/redis"
	practicehandler "medmcp/internal/practice/handler"
	rlmetrics "medmcp/internal/ratelimit/metrics"
	ratelimit "medmcp/internal/ratelimit/service"
	"medmcp/internal/ratelimit/store/window"
	"medmcp/internal/ratelimit/workers/cleanup"
	rishandler "medmcp/internal/ris/handler"
	risservice "medmcp/internal/ris/service"
	"medmcp/internal/scheme/connectors"
	schemehandler "medmcp/internal/scheme/handler"
	schemeservice "medmcp/internal/scheme/service"
	httptransport "medmcp/internal/transport/http"
	"medmcp/pkg/platform/circuit"
	"medmcp/pkg/platform/middleware/auth"
	"medmcp/pkg/platform/middleware/metadata"
	"medmcp/pkg/platform/middleware/request"
)

const redisStatsInterval = 15 * time.Second

// Worker is a background loop that runs until ctx is cancelled.
type Worker func(ctx context.Context) error

type Option func(*options)

type options struct {
	fhirHTTPClient    *http.Client
	openEMRHTTPClient *http.Client
	fallback          *slog.Logger
	clock             func() time.Time
}

// WithFHIRHTTPClient replaces the instrumented default transport, e.g. with
// a recorder in tests.
func WithFHIRHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.fhirHTTPClient = hc
	}
}

// WithOpenEMRHTTPClient replaces the instrumented default transport of the
// clinic client.
func WithOpenEMRHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.openEMRHTTPClient = hc
	}
}

// WithAuditFallback overrides the stderr channel for rejected audit entries.
func WithAuditFallback(logger *slog.Logger) Option {
	return func(o *options) {
		o.fallback = logger
	}
}

// WithClock overrides the request clock.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}

type App struct {
	Router  http.Handler
	Workers []Worker
	Metrics *metrics.Metrics
	Schemes *schemeservice.Service

	redis   *redis.Client
	closers []io.Closer
}

// New builds every component from cfg. The returned App owns the audit sink
// and the Redis client; call Close when done.
func New(ctx context.Context, cfg *config.Server, log *slog.Logger, opts ...Option) (*App, error) {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.fallback == nil {
		o.fallback = logger.NewFallback()
	}

	a := &App{Metrics: metrics.New(health.Version)}
	reg := a.Metrics.Registry

	sink, err := audit.NewFileSink(cfg.AuditSinkPath, log)
	if err != nil {
		return nil, fmt.Errorf("open audit sink: %w", err)
	}
	a.closers = append(a.closers, sink)
	publisher := audit.NewPublisher(sink,
		audit.WithFallbackLogger(o.fallback),
		audit.WithMetrics(auditmetrics.New(reg)),
	)

	limiter, err := a.buildLimiter(ctx, cfg, log)
	if err != nil {
		a.Close()
		return nil, err
	}
	stages, err := pipeline.New(limiter, publisher, pipeline.WithLogger(log))
	if err != nil {
		a.Close()
		return nil, err
	}

	tokens := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.TokenTTL())
	creds, err := credentials.NewStaticStore(cfg.AuthUsername, cfg.AuthPassword)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("credential store: %w", err)
	}
	authMetrics := authmetrics.New(reg)
	authSvc, err := authservice.New(creds, tokens, publisher,
		authservice.WithLogger(log),
		authservice.WithMetrics(authMetrics),
	)
	if err != nil {
		a.Close()
		return nil, err
	}

	collector := analytics.NewCollector(analytics.WithMetrics(analyticsmetrics.New(reg)))

	fhirOpts := []fhirclient.Option{fhirclient.WithTimeout(cfg.FHIRTimeout()), fhirclient.WithLogger(log)}
	if o.fhirHTTPClient != nil {
		fhirOpts = append(fhirOpts, fhirclient.WithHTTPClient(o.fhirHTTPClient))
	}
	fhir := fhirclient.New(cfg.FHIRBaseURL, fhirOpts...)

	emrOpts := []openemr.Option{
		openemr.WithCredentials(cfg.OpenEMRUsername, cfg.OpenEMRPassword),
		openemr.WithTimeout(cfg.OpenEMRTimeout()),
		openemr.WithLogger(log),
	}
	if o.openEMRHTTPClient != nil {
		emrOpts = append(emrOpts, openemr.WithHTTPClient(o.openEMRHTTPClient))
	}
	clinic := openemr.New(cfg.OpenEMRBaseURL, emrOpts...)

	schemes, err := schemeservice.New([]schemeservice.Connector{
		connectors.NewDiscovery(cfg.DiscoveryAPIKey),
		connectors.NewGEMS(cfg.GEMSAPIKey),
		connectors.NewMedscheme(cfg.MedschemeAPIKey),
		fhirconnector.New(fhir, fhirconnector.WithLogger(log)),
	}, publisher,
		schemeservice.WithLogger(log),
		schemeservice.WithRecorder(collector),
	)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Schemes = schemes
	for _, info := range schemes.Available().Details {
		a.Metrics.SetSchemeConnector(info.Name, info.Mode)
	}

	healthHandler := health.New(cfg.Env, schemes, health.WithConfiguration(map[string]any{
		"rate_limit_per_minute": cfg.RateLimitPerMinute,
		"rate_limit_backend":    cfg.RateLimitBackend,
		"token_ttl_seconds":     cfg.TokenTTLSeconds,
		"tracing_enabled":       cfg.TracingEnabled,
		"fhir_base_url":         cfg.FHIRBaseURL,
		"openemr_base_url":      cfg.OpenEMRBaseURL,
	}))
	healthHandler.RegisterCheck("audit_sink", sink.Health)
	if a.redis != nil {
		healthHandler.RegisterCheck("redis", a.redis.Health)
	}

	tools, err := mcpservice.New(schemes, mcpservice.WithLogger(log))
	if err != nil {
		a.Close()
		return nil, err
	}

	visits, err := workflow.New(clinic, schemes, publisher, workflow.WithLogger(log))
	if err != nil {
		a.Close()
		return nil, err
	}
	studies, err := risservice.New(schemes, publisher, risservice.WithLogger(log))
	if err != nil {
		a.Close()
		return nil, err
	}

	trusted, err := cfg.TrustedProxyPrefixes()
	if err != nil {
		a.Close()
		return nil, err
	}

	authH := authhandler.New(authSvc, log)
	schemeH := schemehandler.New(schemes, log)
	mcpH := mcphandler.New(tools, log)
	practiceH := practicehandler.New(schemes, tools, publisher, log)

	a.Router = httptransport.NewRouter(httptransport.Config{
		Logger:   log,
		Metadata: metadata.NewMiddleware(metadata.Config{TrustedProxies: trusted}),
		Pipeline: stages,
		Verifier: tokens,
		AuthOptions: []auth.Option{
			auth.WithFailureRecorder(publisher),
			auth.WithFailureCounter(authMetrics),
		},
		RequestMetrics: request.NewMetrics(reg),
		Metrics:        a.Metrics.Handler(),
		Clock:          o.clock,
		Timeout:        cfg.RequestTimeout(),
		Public:         []httptransport.PublicRoutes{healthHandler, authH, schemeH, mcpH, practiceH},
		Protected: []httptransport.ProtectedRoutes{
			authH,
			schemeH,
			mcpH,
			fhirhandler.New(fhir, clinic, visits, publisher, log),
			rishandler.New(studies, log),
			practiceH,
			analyticshandler.New(collector),
		},
	})
	return a, nil
}

// buildLimiter picks the window store. The Redis backend degrades to local
// windows through a circuit breaker; the local store always gets the idle
// window cleaner.
func (a *App) buildLimiter(ctx context.Context, cfg *config.Server, log *slog.Logger) (*ratelimit.Limiter, error) {
	m := rlmetrics.New(a.Metrics.Registry)
	local := window.NewInMemoryStore()
	var store ratelimit.Store = local

	if cfg.RateLimitBackend == config.BackendRedis {
		client, err := redis.New(ctx, cfg.RedisAddr, a.Metrics.Registry)
		if err != nil {
			return nil, fmt.Errorf("rate limit backend: %w", err)
		}
		a.closers = append(a.closers, client)
		a.redis = client
		store = window.NewFallbackStore(window.NewRedisStore(client), local, circuit.New("ratelimit_store"), log)
		a.Workers = append(a.Workers, func(ctx context.Context) error {
			client.RunPoolStats(ctx, redisStatsInterval)
			return nil
		})
	}

	cleaner := cleanup.New(local, cfg.RateLimitWindow(),
		cleanup.WithLogger(log),
		cleanup.WithInterval(cfg.CleanupInterval()),
		cleanup.WithMetrics(m),
	)
	a.Workers = append(a.Workers, cleaner.Start)

	return ratelimit.New(store, cfg.RateLimitPerMinute, cfg.RateLimitWindow(),
		ratelimit.WithLogger(log),
		ratelimit.WithMetrics(m),
	)
}

// Close releases the audit sink and the Redis client.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
