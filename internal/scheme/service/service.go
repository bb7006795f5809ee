// Package service routes scheme operations to the registered connector and
// records each one for audit and analytics.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"medmcp/internal/audit"
	"medmcp/internal/scheme/models"
	dErrors "medmcp/pkg/domain-errors"
	"medmcp/pkg/requestcontext"
)

// Connector talks to one medical scheme.
type Connector interface {
	Name() string
	DisplayName() string
	Mode() string
	CheckBenefits(ctx context.Context, req *models.BenefitCheck) (*models.BenefitResult, error)
	RequestAuthorization(ctx context.Context, req *models.AuthorizationRequest) (*models.AuthorizationResult, error)
	GetAuthorizationStatus(ctx context.Context, authorizationID string) (*models.AuthorizationResult, error)
	SubmitClaim(ctx context.Context, claim *models.Claim) (*models.ClaimResult, error)
	GetClaimStatus(ctx context.Context, claimID string) (*models.ClaimResult, error)
}

type AuditPublisher interface {
	LogDataAccess(ctx context.Context, eventType audit.EventType, action, resourceType, resourceID string, success bool, details map[string]any) error
	LogClaimTransaction(ctx context.Context, scheme, claimID, status string, claimed, approved float64) error
}

// Recorder receives business events for the analytics dashboard.
type Recorder interface {
	RecordBenefitCheck(scheme, procedureCode string, available bool)
	RecordAuthorization(scheme, procedureCode, status string, amount float64)
	RecordClaim(scheme string, amount float64, procedureCodes []string, status, patientID string)
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

type Service struct {
	connectors map[string]Connector
	auditor    AuditPublisher
	recorder   Recorder
	logger     *slog.Logger
}

func New(connectors []Connector, auditor AuditPublisher, opts ...Option) (*Service, error) {
	if auditor == nil {
		return nil, errors.New("audit publisher is required")
	}
	if len(connectors) == 0 {
		return nil, errors.New("at least one scheme connector is required")
	}
	s := &Service{
		connectors: make(map[string]Connector, len(connectors)),
		auditor:    auditor,
		recorder:   noopRecorder{},
		logger:     slog.Default(),
	}
	for _, c := range connectors {
		key := strings.ToLower(c.Name())
		if _, dup := s.connectors[key]; dup {
			return nil, fmt.Errorf("duplicate scheme connector %q", key)
		}
		s.connectors[key] = c
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Available lists registered schemes in name order.
func (s *Service) Available() *models.AvailableSchemes {
	names := make([]string, 0, len(s.connectors))
	for name := range s.connectors {
		names = append(names, name)
	}
	sort.Strings(names)

	details := make([]models.SchemeInfo, 0, len(names))
	for _, name := range names {
		c := s.connectors[name]
		details = append(details, models.SchemeInfo{Name: name, DisplayName: c.DisplayName(), Mode: c.Mode()})
	}
	return &models.AvailableSchemes{Schemes: names, Count: len(names), Details: details}
}

// Connector resolves a scheme name case-insensitively.
func (s *Service) Connector(scheme string) (Connector, error) {
	c, ok := s.connectors[strings.ToLower(strings.TrimSpace(scheme))]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("Scheme '%s' not supported", scheme))
	}
	return c, nil
}

func (s *Service) CheckBenefits(ctx context.Context, scheme string, req *models.BenefitCheck) (*models.BenefitResult, error) {
	c, err := s.Connector(scheme)
	if err != nil {
		return nil, err
	}

	res, err := c.CheckBenefits(ctx, req)
	if err != nil {
		s.audit(ctx, audit.EventBenefitCheck, "check_benefits", "Member", req.MemberID, false, map[string]any{
			"scheme":         c.Name(),
			"procedure_code": req.ProcedureCode,
		})
		return nil, s.connectorError(ctx, c, "check benefits", err)
	}

	s.recorder.RecordBenefitCheck(c.Name(), req.ProcedureCode, res.BenefitAvailable)
	s.audit(ctx, audit.EventBenefitCheck, "check_benefits", "Member", req.MemberID, true, map[string]any{
		"scheme":                 c.Name(),
		"procedure_code":         req.ProcedureCode,
		"benefit_available":      res.BenefitAvailable,
		"authorization_required": res.AuthorizationRequired,
	})
	return res, nil
}

func (s *Service) RequestAuthorization(ctx context.Context, scheme string, req *models.AuthorizationRequest) (*models.AuthorizationResult, error) {
	c, err := s.Connector(scheme)
	if err != nil {
		return nil, err
	}

	res, err := c.RequestAuthorization(ctx, req)
	if err != nil {
		s.audit(ctx, audit.EventAuthorization, "request_authorization", "Authorization", "", false, map[string]any{
			"scheme":         c.Name(),
			"member_id":      req.MemberID,
			"procedure_code": req.ProcedureCode,
		})
		return nil, s.connectorError(ctx, c, "request authorization", err)
	}

	var amount float64
	if res.ApprovedAmount != nil {
		amount = *res.ApprovedAmount
	}
	s.recorder.RecordAuthorization(c.Name(), req.ProcedureCode, res.Status, amount)
	s.audit(ctx, audit.EventAuthorization, "request_authorization", "Authorization", res.AuthorizationID, res.Status != models.StatusRejected, map[string]any{
		"scheme":         c.Name(),
		"member_id":      req.MemberID,
		"procedure_code": req.ProcedureCode,
		"urgency":        req.Urgency,
		"status":         res.Status,
	})
	return res, nil
}

func (s *Service) GetAuthorizationStatus(ctx context.Context, scheme, authorizationID string) (*models.AuthorizationResult, error) {
	c, err := s.Connector(scheme)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(authorizationID) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "authorization id is required")
	}

	res, err := c.GetAuthorizationStatus(ctx, authorizationID)
	s.audit(ctx, audit.EventDataAccess, "get_authorization_status", "Authorization", authorizationID, err == nil, map[string]any{
		"scheme": c.Name(),
	})
	if err != nil {
		return nil, s.connectorError(ctx, c, "get authorization status", err)
	}
	return res, nil
}

func (s *Service) SubmitClaim(ctx context.Context, scheme string, claim *models.Claim) (*models.ClaimResult, error) {
	c, err := s.Connector(scheme)
	if err != nil {
		return nil, err
	}

	res, err := c.SubmitClaim(ctx, claim)
	if err != nil {
		if auditErr := s.auditor.LogClaimTransaction(ctx, c.Name(), claim.ClaimID, models.StatusRejected, claim.TotalClaimAmount, 0); auditErr != nil {
			s.logger.DebugContext(ctx, "claim audit not persisted", "error", auditErr)
		}
		return nil, s.connectorError(ctx, c, "submit claim", err)
	}

	var approved float64
	if res.ApprovedAmount != nil {
		approved = *res.ApprovedAmount
	}
	s.recorder.RecordClaim(c.Name(), claim.TotalClaimAmount, claim.ProcedureCodes(), res.Status, claim.MemberID)
	if err := s.auditor.LogClaimTransaction(ctx, c.Name(), res.ClaimID, res.Status, claim.TotalClaimAmount, approved); err != nil {
		s.logger.DebugContext(ctx, "claim audit not persisted", "error", err)
	}
	return res, nil
}

func (s *Service) GetClaimStatus(ctx context.Context, scheme, claimID string) (*models.ClaimResult, error) {
	c, err := s.Connector(scheme)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(claimID) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "claim id is required")
	}

	res, err := c.GetClaimStatus(ctx, claimID)
	s.audit(ctx, audit.EventDataAccess, "get_claim_status", "Claim", claimID, err == nil, map[string]any{
		"scheme": c.Name(),
	})
	if err != nil {
		return nil, s.connectorError(ctx, c, "get claim status", err)
	}
	return res, nil
}

// connectorError keeps domain errors raised by a connector and hides
// anything else behind an unavailable code.
func (s *Service) connectorError(ctx context.Context, c Connector, op string, err error) error {
	s.logger.ErrorContext(ctx, "scheme connector failed",
		"scheme", c.Name(),
		"operation", op,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, fmt.Sprintf("%s did not respond in time", c.DisplayName()))
	}
	return dErrors.Wrap(err, dErrors.CodeUnavailable, fmt.Sprintf("%s is temporarily unavailable", c.DisplayName()))
}

func (s *Service) audit(ctx context.Context, eventType audit.EventType, action, resourceType, resourceID string, success bool, details map[string]any) {
	if err := s.auditor.LogDataAccess(ctx, eventType, action, resourceType, resourceID, success, details); err != nil {
		s.logger.DebugContext(ctx, "scheme audit not persisted", "action", action, "error", err)
	}
}

type noopRecorder struct{}

func (noopRecorder) RecordBenefitCheck(string, string, bool) {}
func (noopRecorder) RecordAuthorization(string, string, string, float64) {}
func (noopRecorder) RecordClaim(string, float64, []string, string, string) {}
