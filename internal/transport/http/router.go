// Package httptransport assembles the HTTP surface: the fixed middleware
// pipeline in front of every route, then public and bearer-protected groups.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	dErrors "medmcp/pkg/domain-errors"
	"medmcp/pkg/platform/httputil"
	"medmcp/pkg/platform/middleware/auth"
	"medmcp/pkg/platform/middleware/metadata"
	"medmcp/pkg/platform/middleware/request"
	"medmcp/pkg/platform/middleware/requesttime"
)

const (
	defaultBodyLimit = 1 << 20
	defaultTimeout   = 60 * time.Second
)

// PublicRoutes mount endpoints that need no credentials.
type PublicRoutes interface {
	Register(r chi.Router)
}

// ProtectedRoutes mount endpoints behind RequireAuth.
type ProtectedRoutes interface {
	RegisterProtected(r chi.Router)
}

// Pipeline is the per-request stage chain: headers, rate admission, audit.
type Pipeline interface {
	Handler(next http.Handler) http.Handler
}

type Config struct {
	Logger         *slog.Logger
	Metadata       *metadata.Middleware
	Pipeline       Pipeline
	Verifier       auth.TokenVerifier
	AuthOptions    []auth.Option
	RequestMetrics *request.Metrics
	Metrics        http.Handler
	Clock          func() time.Time
	BodyLimit      int64
	Timeout        time.Duration

	Public    []PublicRoutes
	Protected []ProtectedRoutes
}

// NewRouter wires the middleware stack and every route. Request id, client
// metadata and request time run before the pipeline so rate limiting and
// audit see them.
func NewRouter(cfg Config) http.Handler {
	if cfg.BodyLimit <= 0 {
		cfg.BodyLimit = defaultBodyLimit
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(cfg.Metadata.Handler)
	r.Use(requesttime.MiddlewareWithClock(cfg.Clock))
	r.Use(request.Recovery(cfg.Logger))
	r.Use(request.Logger(cfg.Logger))
	r.Use(request.LatencyMiddleware(cfg.RequestMetrics))
	r.Use(request.BodyLimit(cfg.BodyLimit))
	r.Use(request.Timeout(cfg.Timeout))
	r.Use(cfg.Pipeline.Handler)

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	registerDocs(r)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}
	for _, routes := range cfg.Public {
		routes.Register(r)
	}

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(cfg.Verifier, cfg.Logger, cfg.AuthOptions...))
		for _, routes := range cfg.Protected {
			routes.RegisterProtected(r)
		}
	})

	return otelhttp.NewHandler(r, "medmcp")
}

func notFound(w http.ResponseWriter, r *http.Request) {
	httputil.WriteError(w, r, dErrors.New(dErrors.CodeNotFound, "Not Found"))
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.NewErrorResponse(r, "Method not allowed", "Method not allowed for this route"))
}
