package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"medmcp/internal/analytics"
	dErrors "medmcp/pkg/domain-errors"
	"medmcp/pkg/platform/httputil"
)

// Reporter serves aggregated analytics.
type Reporter interface {
	Dashboard() analytics.Dashboard
	SchemeStatistics(scheme string) map[string]analytics.SchemeStats
	TopProcedures(limit int) []analytics.ProcedureCount
	DailyTrends(days int) analytics.Trends
	ApprovalRates() analytics.ApprovalRates
	HealthMetrics() analytics.HealthMetrics
}

type Handler struct {
	reporter Reporter
}

func New(reporter Reporter) *Handler {
	return &Handler{reporter: reporter}
}

func (h *Handler) RegisterProtected(r chi.Router) {
	r.Route("/analytics", func(r chi.Router) {
		r.Get("/dashboard", h.HandleDashboard)
		r.Get("/schemes", h.HandleSchemes)
		r.Get("/procedures/top", h.HandleTopProcedures)
		r.Get("/trends/daily", h.HandleDailyTrends)
		r.Get("/approval-rates", h.HandleApprovalRates)
		r.Get("/health-metrics", h.HandleHealthMetrics)
	})
}

func (h *Handler) HandleDashboard(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.reporter.Dashboard())
}

// HandleSchemes implements GET /analytics/schemes?scheme_name=.
func (h *Handler) HandleSchemes(w http.ResponseWriter, r *http.Request) {
	scheme := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("scheme_name")))
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"scheme_statistics": h.reporter.SchemeStatistics(scheme),
	})
}

func (h *Handler) HandleTopProcedures(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit", analytics.DefaultTopProcedures, 1, analytics.MaxTopProcedures)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"top_procedures": h.reporter.TopProcedures(limit),
	})
}

func (h *Handler) HandleDailyTrends(w http.ResponseWriter, r *http.Request) {
	days, err := intQuery(r, "days", analytics.DefaultTrendDays, 1, analytics.MaxTrendDays)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.reporter.DailyTrends(days))
}

func (h *Handler) HandleApprovalRates(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.reporter.ApprovalRates())
}

func (h *Handler) HandleHealthMetrics(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.reporter.HealthMetrics())
}

// intQuery reads an optional bounded integer query parameter.
func intQuery(r *http.Request, name string, def, lo, hi int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < lo || v > hi {
		return 0, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s must be an integer between %d and %d", name, lo, hi))
	}
	return v, nil
}
