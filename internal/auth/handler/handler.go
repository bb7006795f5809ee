package handler

import (
	"context"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"medmcp/internal/auth/models"
	dErrors "medmcp/pkg/domain-errors"
	"medmcp/pkg/platform/httputil"
	"medmcp/pkg/requestcontext"
)

// Service defines the interface for login.
type Service interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResult, error)
}

// Handler serves the login and identity endpoints.
type Handler struct {
	auth   Service
	logger *slog.Logger
}

func New(auth Service, logger *slog.Logger) *Handler {
	return &Handler{auth: auth, logger: logger}
}

// Register mounts the public routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
}

// RegisterProtected mounts routes that expect a verified subject in context.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Get("/auth/me", h.HandleMe)
}

// HandleLogin implements POST /auth/login. The body is JSON
// {"username","password"}; form-encoded bodies are accepted too so password
// grant clients work unchanged.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := h.decodeLogin(w, r)
	if !ok {
		return
	}

	res, err := h.auth.Login(ctx, req)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeUnauthorized) {
			h.logger.ErrorContext(ctx, "login failed",
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		httputil.WriteError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	httputil.WriteJSON(w, http.StatusOK, res)
}

// HandleMe implements GET /auth/me.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	subject := requestcontext.Subject(r.Context())
	if subject == "" {
		httputil.WriteError(w, r, dErrors.New(dErrors.CodeUnauthorized, "Not authenticated"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.CurrentUser{
		Username:      subject,
		Authenticated: true,
	})
}

func (h *Handler) decodeLogin(w http.ResponseWriter, r *http.Request) (*models.LoginRequest, bool) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/x-www-form-urlencoded" {
		return httputil.DecodeAndPrepare[models.LoginRequest](w, r, h.logger)
	}

	if err := r.ParseForm(); err != nil {
		httputil.WriteError(w, r, dErrors.New(dErrors.CodeBadRequest, "invalid form body"))
		return nil, false
	}
	req := &models.LoginRequest{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}
	if err := httputil.PrepareRequest(req); err != nil {
		httputil.WriteError(w, r, err)
		return nil, false
	}
	return req, true
}
