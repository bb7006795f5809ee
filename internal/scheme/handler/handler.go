package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"medmcp/internal/scheme/models"
	dErrors "medmcp/pkg/domain-errors"
	"medmcp/pkg/platform/httputil"
	"medmcp/pkg/requestcontext"
)

// Service is the scheme operation surface the HTTP layer needs.
type Service interface {
	Available() *models.AvailableSchemes
	CheckBenefits(ctx context.Context, scheme string, req *models.BenefitCheck) (*models.BenefitResult, error)
	RequestAuthorization(ctx context.Context, scheme string, req *models.AuthorizationRequest) (*models.AuthorizationResult, error)
	GetAuthorizationStatus(ctx context.Context, scheme, authorizationID string) (*models.AuthorizationResult, error)
	SubmitClaim(ctx context.Context, scheme string, claim *models.Claim) (*models.ClaimResult, error)
	GetClaimStatus(ctx context.Context, scheme, claimID string) (*models.ClaimResult, error)
}

type Handler struct {
	schemes Service
	logger  *slog.Logger
}

func New(schemes Service, logger *slog.Logger) *Handler {
	return &Handler{schemes: schemes, logger: logger}
}

// Register mounts the public scheme routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/scheme/available", h.HandleAvailable)
}

// RegisterProtected mounts the per-scheme operations.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Route("/scheme/{scheme}", func(r chi.Router) {
		r.Post("/benefits/check", h.HandleCheckBenefits)
		r.Post("/authorization/request", h.HandleRequestAuthorization)
		r.Get("/authorization/{authorizationID}", h.HandleGetAuthorization)
		r.Post("/claim/submit", h.HandleSubmitClaim)
		r.Get("/claim/{claimID}", h.HandleGetClaim)
	})
}

func (h *Handler) HandleAvailable(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.schemes.Available())
}

func (h *Handler) HandleCheckBenefits(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndPrepare[models.BenefitCheck](w, r, h.logger)
	if !ok {
		return
	}
	res, err := h.schemes.CheckBenefits(r.Context(), chi.URLParam(r, "scheme"), req)
	h.respond(w, r, "check benefits", res, err)
}

func (h *Handler) HandleRequestAuthorization(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndPrepare[models.AuthorizationRequest](w, r, h.logger)
	if !ok {
		return
	}
	res, err := h.schemes.RequestAuthorization(r.Context(), chi.URLParam(r, "scheme"), req)
	h.respond(w, r, "request authorization", res, err)
}

func (h *Handler) HandleGetAuthorization(w http.ResponseWriter, r *http.Request) {
	res, err := h.schemes.GetAuthorizationStatus(r.Context(), chi.URLParam(r, "scheme"), chi.URLParam(r, "authorizationID"))
	h.respond(w, r, "get authorization status", res, err)
}

func (h *Handler) HandleSubmitClaim(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndPrepare[models.Claim](w, r, h.logger)
	if !ok {
		return
	}
	res, err := h.schemes.SubmitClaim(r.Context(), chi.URLParam(r, "scheme"), req)
	h.respond(w, r, "submit claim", res, err)
}

func (h *Handler) HandleGetClaim(w http.ResponseWriter, r *http.Request) {
	res, err := h.schemes.GetClaimStatus(r.Context(), chi.URLParam(r, "scheme"), chi.URLParam(r, "claimID"))
	h.respond(w, r, "get claim status", res, err)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, op string, res any, err error) {
	if err != nil {
		if httputil.DomainCodeToHTTPStatus(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
			h.logger.ErrorContext(r.Context(), "scheme request failed",
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
