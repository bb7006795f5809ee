// Package service maps radiology studies and billing exports onto scheme
// authorizations and claims, and remembers which scheme references belong
// to which study.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"medmcp/internal/audit"
	"medmcp/internal/ris/models"
	schememodels "medmcp/internal/scheme/models"
	dErrors "medmcp/pkg/domain-errors"
	"medmcp/pkg/requestcontext"
)

// SchemeService is the scheme surface studies are routed through.
type SchemeService interface {
	RequestAuthorization(ctx context.Context, scheme string, req *schememodels.AuthorizationRequest) (*schememodels.AuthorizationResult, error)
	GetAuthorizationStatus(ctx context.Context, scheme, authorizationID string) (*schememodels.AuthorizationResult, error)
	SubmitClaim(ctx context.Context, scheme string, claim *schememodels.Claim) (*schememodels.ClaimResult, error)
	GetClaimStatus(ctx context.Context, scheme, claimID string) (*schememodels.ClaimResult, error)
}

type AuditPublisher interface {
	LogDataAccess(ctx context.Context, eventType audit.EventType, action, resourceType, resourceID string, success bool, details map[string]any) error
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type Service struct {
	schemes SchemeService
	auditor AuditPublisher
	logger  *slog.Logger

	mu      sync.RWMutex
	studies map[string]*models.StudyRecord
}

func New(schemes SchemeService, auditor AuditPublisher, opts ...Option) (*Service, error) {
	if schemes == nil {
		return nil, errors.New("scheme service is required")
	}
	if auditor == nil {
		return nil, errors.New("audit publisher is required")
	}
	s := &Service{
		schemes: schemes,
		auditor: auditor,
		logger:  slog.Default(),
		studies: make(map[string]*models.StudyRecord),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// AuthorizeStudy requests pre-authorization for the study's procedure.
func (s *Service) AuthorizeStudy(ctx context.Context, study *models.Study) (*models.AuthorizationResponse, error) {
	res, err := s.schemes.RequestAuthorization(ctx, study.SchemeName, study.AuthorizationRequest())
	if err != nil {
		s.audit(ctx, audit.EventAuthorization, "ris_authorization", "Study", study.StudyID, false, map[string]any{
			"scheme":   study.SchemeName,
			"modality": study.Modality,
		})
		return nil, err
	}

	s.track(ctx, study, func(rec *models.StudyRecord) { rec.AuthorizationID = res.AuthorizationID })
	s.audit(ctx, audit.EventAuthorization, "ris_authorization", "Study", study.StudyID, res.Status != schememodels.StatusRejected, map[string]any{
		"scheme":           study.SchemeName,
		"modality":         study.Modality,
		"authorization_id": res.AuthorizationID,
		"status":           res.Status,
	})
	return &models.AuthorizationResponse{
		StudyID:       study.StudyID,
		Authorization: res,
		Message:       "Authorization request processed successfully",
	}, nil
}

// SubmitStudyClaim claims the study at its estimated cost.
func (s *Service) SubmitStudyClaim(ctx context.Context, req *models.ClaimRequest) (*models.ClaimResponse, error) {
	study := &req.Study
	res, err := s.schemes.SubmitClaim(ctx, study.SchemeName, study.Claim(req.AuthorizationNumber))
	if err != nil {
		s.audit(ctx, audit.EventClaimSubmission, "ris_claim", "Study", study.StudyID, false, map[string]any{
			"scheme":   study.SchemeName,
			"modality": study.Modality,
			"amount":   study.EstimatedCost,
		})
		return nil, err
	}

	s.track(ctx, study, func(rec *models.StudyRecord) { rec.ClaimID = res.ClaimID })
	s.audit(ctx, audit.EventClaimSubmission, "ris_claim", "Study", study.StudyID, res.Status != schememodels.StatusRejected, map[string]any{
		"scheme":   study.SchemeName,
		"modality": study.Modality,
		"claim_id": res.ClaimID,
		"amount":   study.EstimatedCost,
	})
	return &models.ClaimResponse{
		StudyID: study.StudyID,
		Claim:   res,
		Message: "Claim submitted successfully",
	}, nil
}

// SubmitBilling turns a billing export into one claim.
func (s *Service) SubmitBilling(ctx context.Context, data *models.BillingData) (*models.BillingResponse, error) {
	claim := data.Claim()
	res, err := s.schemes.SubmitClaim(ctx, data.SchemeName, claim)
	if err != nil {
		s.audit(ctx, audit.EventClaimSubmission, "billing_claim", "Patient", data.PatientID, false, map[string]any{
			"scheme":         data.SchemeName,
			"services_count": len(data.Services),
			"amount":         claim.TotalClaimAmount,
		})
		return nil, err
	}

	s.audit(ctx, audit.EventClaimSubmission, "billing_claim", "Patient", data.PatientID, res.Status != schememodels.StatusRejected, map[string]any{
		"scheme":         data.SchemeName,
		"services_count": len(data.Services),
		"claim_id":       res.ClaimID,
		"amount":         claim.TotalClaimAmount,
	})
	return &models.BillingResponse{
		PatientID:         data.PatientID,
		Claim:             res,
		ServicesProcessed: len(claim.ClaimItems),
		Message:           "Billing data processed and claim submitted successfully",
	}, nil
}

// StudyStatus asks the scheme for the current state of every reference
// recorded for the study.
func (s *Service) StudyStatus(ctx context.Context, scheme, studyID string) (*models.StudyStatus, error) {
	scheme = strings.ToLower(strings.TrimSpace(scheme))
	studyID = strings.TrimSpace(studyID)
	if scheme == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "scheme_name is required")
	}

	rec, ok := s.lookup(scheme, studyID)
	if !ok {
		s.audit(ctx, audit.EventDataAccess, "ris_study_status", "Study", studyID, false, map[string]any{"scheme": scheme})
		return nil, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("Study '%s' has no authorization or claim with %s", studyID, scheme))
	}

	status := &models.StudyStatus{
		StudyID:     rec.StudyID,
		SchemeName:  rec.SchemeName,
		Modality:    rec.Modality,
		LastUpdated: rec.UpdatedAt,
	}
	if rec.AuthorizationID != "" {
		auth, err := s.schemes.GetAuthorizationStatus(ctx, scheme, rec.AuthorizationID)
		if err != nil {
			return nil, err
		}
		status.AuthorizationID = &rec.AuthorizationID
		status.AuthorizationStatus = &auth.Status
	}
	if rec.ClaimID != "" {
		claim, err := s.schemes.GetClaimStatus(ctx, scheme, rec.ClaimID)
		if err != nil {
			return nil, err
		}
		status.ClaimID = &rec.ClaimID
		status.ClaimStatus = &claim.Status
	}

	s.audit(ctx, audit.EventDataAccess, "ris_study_status", "Study", studyID, true, map[string]any{"scheme": scheme})
	return status, nil
}

// track updates the record for the study, creating it on first use. The
// stored record is never handed out; readers get a copy.
func (s *Service) track(ctx context.Context, study *models.Study, update func(*models.StudyRecord)) {
	key := studyKey(study.SchemeName, study.StudyID)
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.studies[key]
	if !ok {
		rec = &models.StudyRecord{StudyID: study.StudyID, SchemeName: study.SchemeName}
		s.studies[key] = rec
	}
	rec.Modality = study.Modality
	rec.UpdatedAt = requestcontext.Now(ctx)
	update(rec)
}

func (s *Service) lookup(scheme, studyID string) (models.StudyRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.studies[studyKey(scheme, studyID)]
	if !ok {
		return models.StudyRecord{}, false
	}
	return *rec, true
}

func studyKey(scheme, studyID string) string {
	return scheme + "/" + studyID
}

func (s *Service) audit(ctx context.Context, eventType audit.EventType, action, resourceType, resourceID string, success bool, details map[string]any) {
	if err := s.auditor.LogDataAccess(ctx, eventType, action, resourceType, resourceID, success, details); err != nil {
		s.logger.DebugContext(ctx, "ris audit not persisted", "action", action, "error", err)
	}
}
