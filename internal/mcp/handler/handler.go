package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"medmcp/internal/mcp/models"
	dErrors "medmcp/pkg/domain-errors"
	"medmcp/pkg/platform/httputil"
	"medmcp/pkg/requestcontext"
)

// Tools runs the practice-facing tools. Tool failures come back as results
// with IsError set.
type Tools interface {
	Tools() models.ToolList
	CheckPatientBenefits(ctx context.Context, in *models.CheckBenefitsInput) *models.Result
	RequestProcedureAuthorization(ctx context.Context, in *models.AuthorizationInput) *models.Result
	SubmitMedicalClaim(ctx context.Context, in *models.ClaimInput) *models.Result
	CompletePatientWorkflow(ctx context.Context, in *models.WorkflowInput) *models.Result
}

type Handler struct {
	tools  Tools
	logger *slog.Logger
	routes map[string]http.HandlerFunc
}

func New(tools Tools, logger *slog.Logger) *Handler {
	h := &Handler{tools: tools, logger: logger}
	h.routes = map[string]http.HandlerFunc{
		models.ToolCheckPatientBenefits:    runTool(h, tools.CheckPatientBenefits),
		models.ToolRequestAuthorization:    runTool(h, tools.RequestProcedureAuthorization),
		models.ToolSubmitMedicalClaim:      runTool(h, tools.SubmitMedicalClaim),
		models.ToolCompletePatientWorkflow: runTool(h, tools.CompletePatientWorkflow),
	}
	return h
}

// Register mounts the public tool catalogue.
func (h *Handler) Register(r chi.Router) {
	r.Get("/mcp/tools", h.HandleListTools)
}

// RegisterProtected mounts tool execution.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Post("/mcp/tools/{tool}", h.HandleCallTool)
}

func (h *Handler) HandleListTools(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.tools.Tools())
}

func (h *Handler) HandleCallTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "tool")
	run, ok := h.routes[name]
	if !ok {
		httputil.WriteError(w, r, dErrors.New(dErrors.CodeNotFound, "Tool '"+name+"' not found"))
		return
	}
	run(w, r)
}

func runTool[T any](h *Handler, call func(context.Context, *T) *models.Result) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := httputil.DecodeAndPrepare[T](w, r, h.logger)
		if !ok {
			return
		}
		res := call(r.Context(), in)
		if res.IsError {
			h.logger.InfoContext(r.Context(), "mcp tool returned error result",
				"tool", chi.URLParam(r, "tool"),
				"request_id", requestcontext.RequestID(r.Context()),
			)
		}
		httputil.WriteJSON(w, http.StatusOK, res)
	}
}
