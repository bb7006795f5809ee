package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"medmcp/internal/ris/models"
	dErrors "medmcp/pkg/domain-errors"
	"medmcp/pkg/platform/httputil"
	"medmcp/pkg/requestcontext"
)

// Service handles radiology studies and billing exports.
type Service interface {
	AuthorizeStudy(ctx context.Context, study *models.Study) (*models.AuthorizationResponse, error)
	SubmitStudyClaim(ctx context.Context, req *models.ClaimRequest) (*models.ClaimResponse, error)
	SubmitBilling(ctx context.Context, data *models.BillingData) (*models.BillingResponse, error)
	StudyStatus(ctx context.Context, scheme, studyID string) (*models.StudyStatus, error)
}

type Handler struct {
	studies Service
	logger  *slog.Logger
}

func New(studies Service, logger *slog.Logger) *Handler {
	return &Handler{studies: studies, logger: logger}
}

func (h *Handler) RegisterProtected(r chi.Router) {
	r.Route("/ris", func(r chi.Router) {
		r.Post("/study/authorize", h.HandleAuthorizeStudy)
		r.Post("/study/claim", h.HandleSubmitStudyClaim)
		r.Get("/study/{studyID}/status", h.HandleStudyStatus)
		r.Post("/billing/submit", h.HandleSubmitBilling)
	})
}

func (h *Handler) HandleAuthorizeStudy(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndPrepare[models.Study](w, r, h.logger)
	if !ok {
		return
	}
	res, err := h.studies.AuthorizeStudy(r.Context(), req)
	h.respond(w, r, "authorize study", res, err)
}

func (h *Handler) HandleSubmitStudyClaim(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndPrepare[models.ClaimRequest](w, r, h.logger)
	if !ok {
		return
	}
	res, err := h.studies.SubmitStudyClaim(r.Context(), req)
	h.respond(w, r, "submit study claim", res, err)
}

func (h *Handler) HandleSubmitBilling(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndPrepare[models.BillingData](w, r, h.logger)
	if !ok {
		return
	}
	res, err := h.studies.SubmitBilling(r.Context(), req)
	h.respond(w, r, "submit billing", res, err)
}

// HandleStudyStatus implements GET /ris/study/{studyID}/status?scheme_name=.
func (h *Handler) HandleStudyStatus(w http.ResponseWriter, r *http.Request) {
	res, err := h.studies.StudyStatus(r.Context(), r.URL.Query().Get("scheme_name"), chi.URLParam(r, "studyID"))
	h.respond(w, r, "study status", res, err)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, op string, res any, err error) {
	if err != nil {
		if httputil.DomainCodeToHTTPStatus(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
			h.logger.ErrorContext(r.Context(), "ris request failed",
				"operation", op,
				"error", err,
				"request_id", requestcontext.RequestID(r.Context()),
			)
		}
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}
