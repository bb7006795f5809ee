// Package service implements the fixed-credential login that issues bearer
// tokens.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"medmcp/internal/auth/metrics"
	"medmcp/internal/auth/models"
	jwttoken "medmcp/internal/jwt_token"
	dErrors "medmcp/pkg/domain-errors"
	"medmcp/pkg/requestcontext"
)

// CredentialStore checks a username/password pair. Today it is backed by a
// single static entry; a real user store can be swapped in behind it.
type CredentialStore interface {
	Verify(ctx context.Context, username, password string) (bool, error)
}

type TokenIssuer interface {
	IssueAccessToken(ctx context.Context, subject string) (*jwttoken.IssuedToken, error)
}

// AuditPublisher receives one authentication entry per login attempt.
type AuditPublisher interface {
	LogAuthentication(ctx context.Context, userID, action string, success bool, reason string) error
}

const (
	actionLogin       = "login"
	reasonBadPassword = "invalid_credentials"
)

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

type Service struct {
	credentials CredentialStore
	tokens      TokenIssuer
	auditor     AuditPublisher
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

func New(credentials CredentialStore, tokens TokenIssuer, auditor AuditPublisher, opts ...Option) (*Service, error) {
	if credentials == nil {
		return nil, errors.New("credential store is required")
	}
	if tokens == nil {
		return nil, errors.New("token issuer is required")
	}
	if auditor == nil {
		return nil, errors.New("audit publisher is required")
	}
	s := &Service{
		credentials: credentials,
		tokens:      tokens,
		auditor:     auditor,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Login verifies the pair and issues a token. Every attempt that reaches the
// credential check produces exactly one authentication audit entry.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResult, error) {
	start := time.Now()

	ok, err := s.credentials.Verify(ctx, req.Username, req.Password)
	if err != nil {
		s.metrics.ObserveLogin("error", time.Since(start).Seconds())
		s.audit(ctx, req.Username, false, "credential_store_error")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "verify credentials")
	}
	if !ok {
		s.metrics.ObserveLogin("rejected", time.Since(start).Seconds())
		s.logger.WarnContext(ctx, "login rejected",
			"request_id", requestcontext.RequestID(ctx),
		)
		s.audit(ctx, req.Username, false, reasonBadPassword)
		return nil, dErrors.New(dErrors.CodeUnauthorized, "Incorrect username or password")
	}

	issued, err := s.tokens.IssueAccessToken(ctx, req.Username)
	if err != nil {
		s.metrics.ObserveLogin("error", time.Since(start).Seconds())
		s.audit(ctx, req.Username, false, "token_issue_error")
		return nil, err
	}

	s.metrics.ObserveLogin("success", time.Since(start).Seconds())
	s.audit(ctx, req.Username, true, "")
	return &models.TokenResult{
		AccessToken:      issued.Token,
		TokenType:        models.TokenTypeBearer,
		ExpiresInSeconds: int(issued.TTL.Seconds()),
	}, nil
}

// audit failures are already routed to the fallback channel by the
// publisher and never fail the login.
func (s *Service) audit(ctx context.Context, username string, success bool, reason string) {
	if err := s.auditor.LogAuthentication(ctx, username, actionLogin, success, reason); err != nil {
		s.logger.DebugContext(ctx, "login audit not persisted", "error", err)
	}
}
