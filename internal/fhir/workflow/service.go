// Package workflow joins the clinic's OpenEMR records with scheme benefits,
// authorizations and claims for a patient visit.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"medmcp/internal/audit"
	"medmcp/internal/openemr"
	schememodels "medmcp/internal/scheme/models"
	"medmcp/pkg/requestcontext"
)

// Clinic finds a patient by the member id the clinic stores as the public
// patient id.
type Clinic interface {
	FindByInsuranceID(ctx context.Context, insuranceID string) (*openemr.Patient, error)
}

type Schemes interface {
	CheckBenefits(ctx context.Context, scheme string, req *schememodels.BenefitCheck) (*schememodels.BenefitResult, error)
	RequestAuthorization(ctx context.Context, scheme string, req *schememodels.AuthorizationRequest) (*schememodels.AuthorizationResult, error)
	SubmitClaim(ctx context.Context, scheme string, claim *schememodels.Claim) (*schememodels.ClaimResult, error)
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
	clinic  Clinic
	schemes Schemes
	auditor AuditPublisher
	logger  *slog.Logger
}

func New(clinic Clinic, schemes Schemes, auditor AuditPublisher, opts ...Option) (*Service, error) {
	if clinic == nil {
		return nil, errors.New("clinic client is required")
	}
	if schemes == nil {
		return nil, errors.New("scheme service is required")
	}
	if auditor == nil {
		return nil, errors.New("audit publisher is required")
	}
	s := &Service{clinic: clinic, schemes: schemes, auditor: auditor, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// PatientLookup reads both systems. A failing side is reported inline so
// the other side's answer still reaches the caller.
func (s *Service) PatientLookup(ctx context.Context, req *LookupRequest) *LookupResult {
	res := &LookupResult{MemberID: req.MemberID, SchemeName: req.SchemeName}

	if req.SchemeName == DefaultScheme {
		benefits, err := s.schemes.CheckBenefits(ctx, req.SchemeName, &schememodels.BenefitCheck{
			MemberID:      req.MemberID,
			ProcedureCode: lookupProcedure,
		})
		if err != nil {
			res.FHIRData = &FHIRData{Error: err.Error()}
		} else {
			res.FHIRData = &FHIRData{Benefits: benefits, Source: sourceFHIR}
		}
	}

	patient, err := s.clinic.FindByInsuranceID(ctx, req.MemberID)
	switch {
	case err != nil:
		s.logger.WarnContext(ctx, "clinic lookup failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		res.OpenEMRData = &ClinicData{Error: err.Error()}
	case patient != nil:
		res.OpenEMRData = &ClinicData{Patient: patient, Source: sourceOpenEMR}
	}

	if res.FHIRData != nil && res.FHIRData.Benefits != nil && res.OpenEMRData != nil && res.OpenEMRData.Patient != nil {
		res.IntegratedProfile = &Profile{
			MemberID:          req.MemberID,
			PatientName:       res.OpenEMRData.Patient.Name,
			BenefitsAvailable: res.FHIRData.Benefits.BenefitAvailable,
			RemainingBenefit:  res.FHIRData.Benefits.RemainingBenefit,
			ClinicRecords:     "available",
			IntegrationStatus: "complete",
		}
	}

	s.audit(ctx, audit.EventFHIRAccess, "patient_lookup", req.MemberID, true, map[string]any{
		"scheme":      req.SchemeName,
		"has_fhir":    res.FHIRData != nil && res.FHIRData.Benefits != nil,
		"has_openemr": res.OpenEMRData != nil && res.OpenEMRData.Patient != nil,
	})
	return res
}

// CompleteVisit looks the patient up in the clinic, checks every procedure,
// requests the authorizations the scheme asks for and submits one claim.
// Scheme or clinic failures abort the visit and are returned.
func (s *Service) CompleteVisit(ctx context.Context, req *VisitRequest) (*VisitResult, error) {
	res := &VisitResult{
		MemberID:   req.MemberID,
		ProviderID: req.ProviderID,
		SchemeName: req.SchemeName,
		Procedures: req.Procedures,
	}
	fail := func(stage string, err error) (*VisitResult, error) {
		s.audit(ctx, audit.EventClaimSubmission, "complete_visit", req.MemberID, false, map[string]any{
			"scheme": req.SchemeName,
			"stage":  stage,
		})
		return nil, err
	}

	res.step("Looking up patient in clinic system")
	patient, err := s.clinic.FindByInsuranceID(ctx, req.MemberID)
	if err != nil {
		return fail("clinic_lookup", err)
	}
	if patient == nil {
		res.step("Patient not found in clinic system")
		s.audit(ctx, audit.EventClaimSubmission, "complete_visit", req.MemberID, false, map[string]any{
			"scheme": req.SchemeName,
			"stage":  "clinic_lookup",
			"reason": "patient_not_found",
		})
		return res, nil
	}
	res.Patient = patient
	res.step("Found patient: " + patient.Name)
	patientName := patient.Name
	if patientName == "" {
		patientName = "Unknown"
	}

	res.step("Checking medical scheme benefits")
	res.BenefitResults = make([]VisitBenefit, 0, len(req.Procedures))
	for _, p := range req.Procedures {
		b, err := s.schemes.CheckBenefits(ctx, req.SchemeName, &schememodels.BenefitCheck{MemberID: req.MemberID, ProcedureCode: p.Code})
		if err != nil {
			return fail("benefit_check", err)
		}
		res.BenefitResults = append(res.BenefitResults, VisitBenefit{
			Procedure:             p.Name,
			Code:                  p.Code,
			BenefitAvailable:      b.BenefitAvailable,
			AuthorizationRequired: b.AuthorizationRequired,
		})
	}
	res.step(fmt.Sprintf("Checked benefits for %d procedures", len(req.Procedures)))

	requested := schememodels.NewTimestamp(requestcontext.Now(ctx))
	for i, p := range req.Procedures {
		if !res.BenefitResults[i].AuthorizationRequired {
			continue
		}
		res.step("Requesting authorization for " + p.Name)
		auth, err := s.schemes.RequestAuthorization(ctx, req.SchemeName, &schememodels.AuthorizationRequest{
			MemberID:      req.MemberID,
			ProviderID:    req.ProviderID,
			ProcedureCode: p.Code,
			PatientName:   patientName,
			RequestedDate: requested,
			Urgency:       schememodels.UrgencyRoutine,
		})
		if err != nil {
			return fail("authorization", err)
		}
		res.AuthorizationResults = append(res.AuthorizationResults, VisitAuthorization{
			Procedure:       p.Name,
			AuthorizationID: auth.AuthorizationID,
			Status:          auth.Status,
		})
		res.step(fmt.Sprintf("Authorization %s for %s", auth.Status, p.Name))
	}

	res.step("Submitting claim to medical scheme")
	claim := &schememodels.Claim{
		MemberID:         req.MemberID,
		ProviderID:       req.ProviderID,
		PatientName:      patientName,
		DateOfService:    requested,
		ClaimItems:       make([]schememodels.ClaimItem, 0, len(req.Procedures)),
		TotalClaimAmount: req.total(),
	}
	for _, p := range req.Procedures {
		claim.ClaimItems = append(claim.ClaimItems, schememodels.ClaimItem{
			ProcedureCode: p.Code,
			Description:   p.Name,
			Quantity:      1,
			UnitPrice:     p.Cost,
			TotalAmount:   p.Cost,
		})
	}
	claimRes, err := s.schemes.SubmitClaim(ctx, req.SchemeName, claim)
	if err != nil {
		return fail("claim", err)
	}
	res.ClaimResult = &VisitClaim{
		ClaimID:        claimRes.ClaimID,
		Status:         claimRes.Status,
		ApprovedAmount: claimRes.ApprovedAmount,
	}
	var approved float64
	if claimRes.ApprovedAmount != nil {
		approved = *claimRes.ApprovedAmount
	}
	res.step(fmt.Sprintf("Claim submitted: %s - %s", claimRes.Status, formatRand(approved)))
	res.step("Visit workflow complete")
	res.Completed = true

	s.audit(ctx, audit.EventClaimSubmission, "complete_visit", req.MemberID, true, map[string]any{
		"scheme":         req.SchemeName,
		"procedures":     len(req.Procedures),
		"authorizations": len(res.AuthorizationResults),
		"total_amount":   claim.TotalClaimAmount,
		"claim_id":       claimRes.ClaimID,
	})
	return res, nil
}

func (r *VisitResult) step(msg string) {
	r.Steps = append(r.Steps, msg)
}

func (s *Service) audit(ctx context.Context, eventType audit.EventType, action, memberID string, success bool, details map[string]any) {
	if err := s.auditor.LogDataAccess(ctx, eventType, action, "Member", memberID, success, details); err != nil {
		s.logger.DebugContext(ctx, "workflow audit not persisted", "error", err)
	}
}

// formatRand renders an amount as R12,345.67.
func formatRand(amount float64) string {
	cents := int64(math.Round(math.Abs(amount) * 100))
	whole := strconv.FormatInt(cents/100, 10)
	var b strings.Builder
	if amount < 0 {
		b.WriteByte('-')
	}
	b.WriteByte('R')
	for i, d := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	fmt.Fprintf(&b, ".%02d", cents%100)
	return b.String()
}
