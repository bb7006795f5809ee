// Package service runs the practice-facing tools on top of the scheme
// service. Tool failures are reported inside the result, not as errors.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"medmcp/internal/mcp/models"
	schememodels "medmcp/internal/scheme/models"
	dErrors "medmcp/pkg/domain-errors"
	"medmcp/pkg/requestcontext"
)

const (
	defaultConcurrency = 4
	genericFailure     = "An unexpected error occurred"
)

// SchemeService is the subset of the scheme service the tools call. Every
// call is audited and recorded by the scheme service itself.
type SchemeService interface {
	Available() *schememodels.AvailableSchemes
	CheckBenefits(ctx context.Context, scheme string, req *schememodels.BenefitCheck) (*schememodels.BenefitResult, error)
	RequestAuthorization(ctx context.Context, scheme string, req *schememodels.AuthorizationRequest) (*schememodels.AuthorizationResult, error)
	SubmitClaim(ctx context.Context, scheme string, claim *schememodels.Claim) (*schememodels.ClaimResult, error)
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithConcurrency bounds parallel benefit checks per tool call.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

type Service struct {
	schemes     SchemeService
	logger      *slog.Logger
	concurrency int
}

func New(schemes SchemeService, opts ...Option) (*Service, error) {
	if schemes == nil {
		return nil, errors.New("scheme service is required")
	}
	s := &Service{
		schemes:     schemes,
		logger:      slog.Default(),
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Service) Tools() models.ToolList {
	return Catalogue(s.schemes.Available().Schemes)
}

func (s *Service) CheckPatientBenefits(ctx context.Context, in *models.CheckBenefitsInput) *models.Result {
	results, err := s.CheckProcedures(ctx, in.SchemeName, in.MemberID, in.ProcedureCodes)
	if err != nil {
		return s.fail(ctx, models.ToolCheckPatientBenefits, "Error checking benefits", err)
	}

	resource := models.BenefitsResource{
		PatientName: in.PatientName,
		MemberID:    in.MemberID,
		SchemeName:  in.SchemeName,
		Benefits:    make([]models.BenefitLine, 0, len(results)),
		Summary:     models.BenefitsSummary{TotalProceduresChecked: len(in.ProcedureCodes)},
	}
	for i, res := range results {
		resource.Benefits = append(resource.Benefits, models.BenefitLine{
			ProcedureCode:         in.ProcedureCodes[i],
			BenefitAvailable:      res.BenefitAvailable,
			RemainingBenefit:      res.RemainingBenefit,
			AnnualLimit:           res.AnnualLimit,
			CoPaymentRequired:     res.CoPaymentRequired,
			AuthorizationRequired: res.AuthorizationRequired,
		})
		if res.BenefitAvailable {
			resource.Summary.ProceduresWithBenefits++
		}
		if res.AuthorizationRequired {
			resource.Summary.ProceduresRequiringAuth++
		}
	}

	s.logger.InfoContext(ctx, "mcp tool completed",
		"tool", models.ToolCheckPatientBenefits,
		"scheme", in.SchemeName,
		"procedures", len(in.ProcedureCodes),
		"request_id", requestcontext.RequestID(ctx),
	)
	return models.TextResult(fmt.Sprintf("Benefit check completed for %s (%s)", in.PatientName, in.MemberID), resource)
}

func (s *Service) RequestProcedureAuthorization(ctx context.Context, in *models.AuthorizationInput) *models.Result {
	req := &schememodels.AuthorizationRequest{
		MemberID:      in.MemberID,
		ProviderID:    in.ProviderID,
		ProcedureCode: in.ProcedureCode,
		DiagnosisCode: in.DiagnosisCode,
		PatientName:   in.PatientName,
		RequestedDate: schememodels.NewTimestamp(requestcontext.Now(ctx)),
		Urgency:       in.Urgency,
		ClinicalNotes: in.ClinicalNotes,
	}
	res, err := s.authorize(ctx, in.SchemeName, req)
	if err != nil {
		return s.fail(ctx, models.ToolRequestAuthorization, "Error requesting authorization", err)
	}

	s.logger.InfoContext(ctx, "mcp tool completed",
		"tool", models.ToolRequestAuthorization,
		"scheme", in.SchemeName,
		"authorization_id", res.AuthorizationID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return models.TextResult(fmt.Sprintf("Authorization %s for %s", res.Status, in.PatientName), models.AuthorizationResource{
		PatientName:         in.PatientName,
		ProcedureName:       in.ProcedureName,
		AuthorizationID:     res.AuthorizationID,
		Status:              res.Status,
		AuthorizationNumber: res.AuthorizationNumber,
		ApprovedAmount:      res.ApprovedAmount,
		ValidUntil:          res.ValidUntil,
		ReferenceNumber:     res.ReferenceNumber,
		EstimatedCost:       in.EstimatedCost,
		SchemeName:          in.SchemeName,
	})
}

func (s *Service) SubmitMedicalClaim(ctx context.Context, in *models.ClaimInput) *models.Result {
	serviceDate, err := time.Parse(time.DateOnly, in.ServiceDate)
	if err != nil {
		return s.fail(ctx, models.ToolSubmitMedicalClaim, "Error submitting claim",
			dErrors.New(dErrors.CodeValidation, "service_date must be a date in 2006-01-02 format"))
	}

	items := make([]schememodels.ClaimItem, 0, len(in.Procedures))
	for _, p := range in.Procedures {
		items = append(items, schememodels.ClaimItem{
			ProcedureCode: p.ProcedureCode,
			Description:   p.ProcedureName,
			Quantity:      p.Quantity,
			UnitPrice:     p.UnitPrice,
			TotalAmount:   p.TotalAmount,
		})
	}
	total := in.Total()
	claim := &schememodels.Claim{
		MemberID:            in.MemberID,
		ProviderID:          in.ProviderID,
		PatientName:         in.PatientName,
		DateOfService:       schememodels.NewTimestamp(serviceDate),
		ClaimItems:          items,
		TotalClaimAmount:    total,
		AuthorizationNumber: in.AuthorizationNumber,
	}

	res, err := s.submit(ctx, in.SchemeName, claim)
	if err != nil {
		return s.fail(ctx, models.ToolSubmitMedicalClaim, "Error submitting claim", err)
	}

	var authNumber *string
	if in.AuthorizationNumber != "" {
		authNumber = &in.AuthorizationNumber
	}
	s.logger.InfoContext(ctx, "mcp tool completed",
		"tool", models.ToolSubmitMedicalClaim,
		"scheme", in.SchemeName,
		"claim_id", res.ClaimID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return models.TextResult(fmt.Sprintf("Claim %s for %s - Amount: %s", res.Status, in.PatientName, FormatRand(total)), models.ClaimResource{
		PatientName:         in.PatientName,
		ClaimID:             res.ClaimID,
		Status:              res.Status,
		SubmittedAmount:     total,
		ApprovedAmount:      res.ApprovedAmount,
		ReferenceNumber:     res.ReferenceNumber,
		ProcessedDate:       res.ProcessedDate,
		ProceduresCount:     len(in.Procedures),
		SchemeName:          in.SchemeName,
		AuthorizationNumber: authNumber,
	})
}

// CompletePatientWorkflow checks benefits for every procedure, requests
// authorization for those that need it (unless check_only), and submits one
// claim for full_workflow when a service date is given.
func (s *Service) CompletePatientWorkflow(ctx context.Context, in *models.WorkflowInput) *models.Result {
	const tool = models.ToolCompletePatientWorkflow
	var text strings.Builder
	fmt.Fprintf(&text, "Complete Workflow for %s\n\nStep 1: Checking Benefits\n", in.PatientName)

	codes := make([]string, 0, len(in.Procedures))
	for _, p := range in.Procedures {
		codes = append(codes, p.ProcedureCode)
	}
	results, err := s.CheckProcedures(ctx, in.SchemeName, in.MemberID, codes)
	if err != nil {
		return s.fail(ctx, tool, "Error in workflow", err)
	}

	resource := models.WorkflowResource{
		PatientName:    in.PatientName,
		PracticeName:   in.PracticeName,
		WorkflowType:   in.WorkflowType,
		SchemeName:     in.SchemeName,
		Benefits:       make([]models.WorkflowBenefit, 0, len(results)),
		Authorizations: []models.WorkflowAuthorization{},
	}
	for i, res := range results {
		resource.Benefits = append(resource.Benefits, models.WorkflowBenefit{
			Procedure:             in.Procedures[i].ProcedureName,
			Code:                  in.Procedures[i].ProcedureCode,
			BenefitAvailable:      res.BenefitAvailable,
			AuthorizationRequired: res.AuthorizationRequired,
			RemainingBenefit:      res.RemainingBenefit,
		})
	}
	fmt.Fprintf(&text, "Benefits checked for %d procedures\n", len(in.Procedures))

	if in.WorkflowType == models.WorkflowCheckAndAuth || in.WorkflowType == models.WorkflowFull {
		text.WriteString("\nStep 2: Requesting Authorizations\n")
		for i, p := range in.Procedures {
			if !results[i].AuthorizationRequired {
				fmt.Fprintf(&text, "  %s: No authorization required\n", p.ProcedureName)
				continue
			}
			auth, err := s.authorize(ctx, in.SchemeName, &schememodels.AuthorizationRequest{
				MemberID:      in.MemberID,
				ProviderID:    in.ProviderID,
				ProcedureCode: p.ProcedureCode,
				PatientName:   in.PatientName,
				RequestedDate: schememodels.NewTimestamp(requestcontext.Now(ctx)),
				Urgency:       p.Urgency,
			})
			if err != nil {
				return s.fail(ctx, tool, "Error in workflow", err)
			}
			resource.Authorizations = append(resource.Authorizations, models.WorkflowAuthorization{
				Procedure:           p.ProcedureName,
				AuthorizationID:     auth.AuthorizationID,
				Status:              auth.Status,
				AuthorizationNumber: auth.AuthorizationNumber,
			})
			fmt.Fprintf(&text, "  %s: %s\n", p.ProcedureName, auth.Status)
		}
	}

	if in.WorkflowType == models.WorkflowFull && in.ServiceDate != "" {
		text.WriteString("\nStep 3: Submitting Claim\n")
		serviceDate, err := time.Parse(time.DateOnly, in.ServiceDate)
		if err != nil {
			return s.fail(ctx, tool, "Error in workflow",
				dErrors.New(dErrors.CodeValidation, "service_date must be a date in 2006-01-02 format"))
		}
		claim := &schememodels.Claim{
			MemberID:      in.MemberID,
			ProviderID:    in.ProviderID,
			PatientName:   in.PatientName,
			DateOfService: schememodels.NewTimestamp(serviceDate),
		}
		for _, p := range in.Procedures {
			claim.ClaimItems = append(claim.ClaimItems, schememodels.ClaimItem{
				ProcedureCode: p.ProcedureCode,
				Description:   p.ProcedureName,
				Quantity:      1,
				UnitPrice:     p.EstimatedCost,
				TotalAmount:   p.EstimatedCost,
			})
			claim.TotalClaimAmount += p.EstimatedCost
		}
		res, err := s.submit(ctx, in.SchemeName, claim)
		if err != nil {
			return s.fail(ctx, tool, "Error in workflow", err)
		}
		resource.Claim = &models.WorkflowClaim{ClaimID: res.ClaimID, Status: res.Status, Amount: res.ApprovedAmount}
		fmt.Fprintf(&text, "Claim submitted: %s - %s\n", res.Status, FormatRand(claim.TotalClaimAmount))
	}

	resource.Summary = models.WorkflowSummary{
		ProceduresProcessed:     len(in.Procedures),
		AuthorizationsRequested: len(resource.Authorizations),
		ClaimSubmitted:          resource.Claim != nil,
	}
	s.logger.InfoContext(ctx, "mcp tool completed",
		"tool", tool,
		"scheme", in.SchemeName,
		"workflow_type", in.WorkflowType,
		"procedures", len(in.Procedures),
		"request_id", requestcontext.RequestID(ctx),
	)
	return models.TextResult(strings.TrimRight(text.String(), "\n"), resource)
}

// CheckProcedures runs the benefit checks concurrently and returns results in the
// order of codes. The first failure cancels the rest.
func (s *Service) CheckProcedures(ctx context.Context, scheme, memberID string, codes []string) ([]*schememodels.BenefitResult, error) {
	results := make([]*schememodels.BenefitResult, len(codes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, code := range codes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := s.schemes.CheckBenefits(gctx, scheme, &schememodels.BenefitCheck{MemberID: memberID, ProcedureCode: code})
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) authorize(ctx context.Context, scheme string, req *schememodels.AuthorizationRequest) (*schememodels.AuthorizationResult, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.schemes.RequestAuthorization(ctx, scheme, req)
}

func (s *Service) submit(ctx context.Context, scheme string, claim *schememodels.Claim) (*schememodels.ClaimResult, error) {
	claim.Normalize()
	if err := claim.Validate(); err != nil {
		return nil, err
	}
	return s.schemes.SubmitClaim(ctx, scheme, claim)
}

// fail turns err into an error result. Only messages of client-facing domain
// errors are shown; anything else is logged and replaced.
func (s *Service) fail(ctx context.Context, tool, prefix string, err error) *models.Result {
	message := genericFailure
	var de *dErrors.Error
	if errors.As(err, &de) && de.Code != dErrors.CodeInternal && de.Message != "" {
		message = de.Message
	}
	level := slog.LevelWarn
	if message == genericFailure {
		level = slog.LevelError
	}
	s.logger.Log(ctx, level, "mcp tool failed",
		"tool", tool,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	return models.ErrorResult(prefix + ": " + message)
}

// FormatRand renders an amount as rand with thousands separators, e.g.
// R12,345.60.
func FormatRand(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	cents := int64(math.Round(amount * 100))
	whole := strconv.FormatInt(cents/100, 10)

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return fmt.Sprintf("%sR%s.%02d", sign, b.String(), cents%100)
}
