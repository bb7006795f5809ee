// Package health provides the service info, liveness, readiness and status
// endpoints.
package health

import (
	"context"
	"maps"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"medmcp/internal/scheme/models"
	"medmcp/pkg/platform/httputil"
)

const serverName = "Medical Scheme MCP Server"

// Version is set at build time via ldflags.
var Version = "dev"

// CheckFunc reports whether a dependency is usable. nil means healthy.
type CheckFunc func(ctx context.Context) error

// Schemes lists the registered scheme connectors.
type Schemes interface {
	Available() *models.AvailableSchemes
}

type Option func(*Handler)

// WithConfiguration adds non-secret settings to the /status response.
func WithConfiguration(cfg map[string]any) Option {
	return func(h *Handler) {
		h.configuration = cfg
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// Handler provides health check endpoints.
type Handler struct {
	startTime     time.Time
	environment   string
	schemes       Schemes
	configuration map[string]any
	now           func() time.Time

	mu     sync.RWMutex
	checks map[string]CheckFunc
}

func New(environment string, schemes Schemes, opts ...Option) *Handler {
	h := &Handler{
		environment: environment,
		schemes:     schemes,
		now:         time.Now,
		checks:      make(map[string]CheckFunc),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.startTime = h.now()
	return h
}

// RegisterCheck adds a named health check for the readiness check.
func (h *Handler) RegisterCheck(name string, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = check
}

// Register mounts health check routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.HandleRoot)
	r.Get("/health", h.HandleHealth)
	r.Get("/health/live", h.HandleLiveness)
	r.Get("/health/ready", h.HandleReadiness)
	r.Get("/status", h.HandleStatus)
}

type RootResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Endpoints map[string]string `json:"endpoints"`
}

func (h *Handler) HandleRoot(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, RootResponse{
		Message:   serverName,
		Version:   Version,
		Status:    "running",
		Timestamp: h.timestamp(),
		Endpoints: map[string]string{
			"health":    "/health",
			"docs":      "/docs",
			"schemes":   "/scheme/available",
			"login":     "/auth/login",
			"mcp_tools": "/mcp/tools",
			"analytics": "/analytics/dashboard",
		},
	})
}

type HealthResponse struct {
	Status        string            `json:"status"`
	Version       string            `json:"version"`
	Environment   string            `json:"environment"`
	UptimeSeconds int64             `json:"uptime_seconds"`
	Timestamp     string            `json:"timestamp"`
	Services      map[string]string `json:"services"`
}

// HandleHealth reports every registered scheme as available; connector
// failures surface per request, not here.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	services := map[string]string{}
	for _, name := range h.schemes.Available().Schemes {
		services[name] = "available"
	}
	httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:        "healthy",
		Version:       Version,
		Environment:   h.environment,
		UptimeSeconds: h.uptime(),
		Timestamp:     h.timestamp(),
		Services:      services,
	})
}

// LivenessResponse is the response for the liveness check.
type LivenessResponse struct {
	Status string `json:"status"`
}

// HandleLiveness always returns 200 while the process serves requests.
func (h *Handler) HandleLiveness(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, LivenessResponse{
		Status: "alive",
	})
}

// ReadinessResponse is the response for the readiness check.
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HandleReadiness runs every registered check and returns 503 if any fails.
func (h *Handler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	checks := make(map[string]CheckFunc, len(h.checks))
	maps.Copy(checks, h.checks)
	h.mu.RUnlock()

	response := ReadinessResponse{
		Status: "ready",
		Checks: make(map[string]string),
	}

	allHealthy := true
	for name, check := range checks {
		if err := check(r.Context()); err != nil {
			response.Checks[name] = "down: " + err.Error()
			allHealthy = false
		} else {
			response.Checks[name] = "up"
		}
	}

	if !allHealthy {
		response.Status = "not_ready"
		httputil.WriteJSON(w, http.StatusServiceUnavailable, response)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, response)
}

type StatusResponse struct {
	Server           string                   `json:"server"`
	Status           string                   `json:"status"`
	Version          string                   `json:"version"`
	Environment      string                   `json:"environment"`
	UptimeSeconds    int64                    `json:"uptime_seconds"`
	Timestamp        string                   `json:"timestamp"`
	AvailableSchemes *models.AvailableSchemes `json:"available_schemes"`
	Operations       []string                 `json:"scheme_operations"`
	Checks           []string                 `json:"readiness_checks"`
	Configuration    map[string]any           `json:"configuration,omitempty"`
}

func (h *Handler) HandleStatus(w http.ResponseWriter, _ *http.Request) {
	h.mu.RLock()
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	h.mu.RUnlock()
	sort.Strings(names)

	httputil.WriteJSON(w, http.StatusOK, StatusResponse{
		Server:           serverName,
		Status:           "operational",
		Version:          Version,
		Environment:      h.environment,
		UptimeSeconds:    h.uptime(),
		Timestamp:        h.timestamp(),
		AvailableSchemes: h.schemes.Available(),
		Operations:       []string{"benefit_check", "authorization_request", "claim_submission", "status_inquiry"},
		Checks:           names,
		Configuration:    h.configuration,
	})
}

func (h *Handler) uptime() int64 {
	return int64(h.now().Sub(h.startTime).Seconds())
}

func (h *Handler) timestamp() string {
	return h.now().UTC().Format(time.RFC3339)
}
