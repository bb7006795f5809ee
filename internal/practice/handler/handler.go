// Package handler serves the practice helper routes: the procedure
// catalogue, scheme details, workflow templates and the quick benefit check.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"medmcp/internal/audit"
	"medmcp/internal/practice/models"
	schememodels "medmcp/internal/scheme/models"
	dErrors "medmcp/pkg/domain-errors"
	"medmcp/pkg/platform/httputil"
	"medmcp/pkg/requestcontext"
)

const procedureNote = "These are sample procedures with typical costs. Actual costs may vary by provider and location."

type Schemes interface {
	Available() *schememodels.AvailableSchemes
}

// BenefitChecker checks several procedures at once and returns results in
// code order.
type BenefitChecker interface {
	CheckProcedures(ctx context.Context, scheme, memberID string, codes []string) ([]*schememodels.BenefitResult, error)
}

type Auditor interface {
	LogDataAccess(ctx context.Context, eventType audit.EventType, action, resourceType, resourceID string, success bool, details map[string]any) error
}

type Handler struct {
	schemes Schemes
	checker BenefitChecker
	auditor Auditor
	logger  *slog.Logger
}

func New(schemes Schemes, checker BenefitChecker, auditor Auditor, logger *slog.Logger) *Handler {
	return &Handler{schemes: schemes, checker: checker, auditor: auditor, logger: logger}
}

// Register mounts the reference routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/practice/procedures", h.HandleProcedures)
	r.Get("/practice/schemes", h.HandleSchemes)
	r.Get("/practice/workflow-templates", h.HandleWorkflowTemplates)
}

func (h *Handler) RegisterProtected(r chi.Router) {
	r.Post("/practice/quick-benefit-check", h.HandleQuickBenefitCheck)
}

func (h *Handler) HandleProcedures(w http.ResponseWriter, _ *http.Request) {
	procedures := models.Procedures()
	httputil.WriteJSON(w, http.StatusOK, models.ProcedureList{
		Procedures: procedures,
		Total:      len(procedures),
		Note:       procedureNote,
	})
}

func (h *Handler) HandleSchemes(w http.ResponseWriter, _ *http.Request) {
	available := h.schemes.Available()
	out := models.SchemeList{SupportedSchemes: make([]models.SupportedScheme, 0, len(available.Details))}
	for _, info := range available.Details {
		out.SupportedSchemes = append(out.SupportedSchemes, models.SupportedScheme{
			Code:    info.Name,
			Details: models.Details(info.Name, info.DisplayName, info.Mode),
		})
	}
	out.Total = len(out.SupportedSchemes)
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) HandleWorkflowTemplates(w http.ResponseWriter, _ *http.Request) {
	templates := models.Templates()
	httputil.WriteJSON(w, http.StatusOK, models.TemplateList{
		Templates: templates,
		Total:     len(templates),
		Usage:     "Select a template that matches your scenario and customize the procedures as needed",
	})
}

func (h *Handler) HandleQuickBenefitCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[models.QuickCheckRequest](w, r, h.logger)
	if !ok {
		return
	}

	results, err := h.checker.CheckProcedures(ctx, req.SchemeName, req.MemberID, req.ProcedureCodes)
	if err != nil {
		h.audit(ctx, req, false)
		if httputil.DomainCodeToHTTPStatus(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "quick benefit check failed",
				"scheme", req.SchemeName,
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		httputil.WriteError(w, r, err)
		return
	}

	h.audit(ctx, req, true)
	httputil.WriteJSON(w, http.StatusOK, models.NewQuickCheckResponse(req, results))
}

func (h *Handler) audit(ctx context.Context, req *models.QuickCheckRequest, success bool) {
	err := h.auditor.LogDataAccess(ctx, audit.EventBenefitCheck, "quick_benefit_check", "Member", req.MemberID, success, map[string]any{
		"scheme":     req.SchemeName,
		"procedures": len(req.ProcedureCodes),
	})
	if err != nil {
		h.logger.DebugContext(ctx, "quick check audit not persisted", "error", err)
	}
}
