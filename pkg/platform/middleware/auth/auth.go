package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	dErrors "medmcp/pkg/domain-errors"
	"medmcp/pkg/platform/httputil"
	"medmcp/pkg/requestcontext"
)

// TokenVerifier returns the subject of a valid bearer token. Failures carry
// CodeTokenInvalid or CodeTokenExpired.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// FailureRecorder is told about every rejected token. Both hooks are
// optional.
type FailureRecorder interface {
	LogAuthentication(ctx context.Context, userID, action string, success bool, reason string) error
}

type FailureCounter interface {
	IncVerifyFailure(reason string)
}

const (
	reasonMissingToken = "missing_token"
	reasonTokenExpired = "token_expired"
	reasonTokenInvalid = "token_invalid"

	actionVerifyToken = "verify_token"
)

type Option func(*config)

type config struct {
	recorder FailureRecorder
	counter  FailureCounter
}

// WithFailureRecorder sends one authentication audit entry per rejection.
func WithFailureRecorder(r FailureRecorder) Option {
	return func(c *config) {
		c.recorder = r
	}
}

func WithFailureCounter(fc FailureCounter) Option {
	return func(c *config) {
		c.counter = fc
	}
}

// bearerToken extracts the credential from an Authorization header. The
// scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RequireAuth returns middleware that verifies the bearer token and stores
// the subject in context. Every rejection gets the same 401 body; the
// reason is only visible in logs and the audit trail.
func RequireAuth(verifier TokenVerifier, logger *slog.Logger, opts ...Option) func(http.Handler) http.Handler {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	reject := func(w http.ResponseWriter, r *http.Request, reason string, err error) {
		ctx := r.Context()
		logger.WarnContext(ctx, "unauthorized access",
			"reason", reason,
			"error", err,
			"path", r.URL.Path,
			"request_id", requestcontext.RequestID(ctx),
		)
		if cfg.counter != nil {
			cfg.counter.IncVerifyFailure(reason)
		}
		if cfg.recorder != nil {
			_ = cfg.recorder.LogAuthentication(ctx, "", actionVerifyToken, false, reason)
		}
		httputil.WriteError(w, r, dErrors.New(dErrors.CodeTokenInvalid, reason))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				reject(w, r, reasonMissingToken, nil)
				return
			}

			subject, err := verifier.Verify(r.Context(), token)
			if err != nil {
				reason := reasonTokenInvalid
				if dErrors.HasCode(err, dErrors.CodeTokenExpired) {
					reason = reasonTokenExpired
				}
				reject(w, r, reason, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithSubject(r.Context(), subject)))
		})
	}
}
