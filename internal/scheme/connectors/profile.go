package connectors

import (
	"context"
	"fmt"
	"strings"
	"time"

	"medmcp/internal/scheme/models"
	"medmcp/pkg/requestcontext"
)

const idTimeLayout = "20060102150405"

// Profile holds the deterministic answers a sandbox scheme gives. Real scheme
// APIs are not reachable from this service, so every connector answers from
// its profile and stamps ids from the request clock.
type Profile struct {
	Name        string
	DisplayName string
	// IDPrefix starts every authorization, claim and reference id.
	IDPrefix string
	// AuthNumberPrefix starts authorization numbers issued on approval.
	AuthNumberPrefix string

	RemainingBenefit float64
	AnnualLimit      float64
	CoPayment        float64
	// AuthPrefixes lists procedure code prefixes that need pre-authorisation.
	AuthPrefixes []string

	ApprovedAuthAmount float64
	AuthValidity       time.Duration
	// ApproveAuth decides whether an authorization request is approved
	// immediately or left pending review.
	ApproveAuth func(req *models.AuthorizationRequest) bool

	// ClaimRate returns the share of the claimed total the scheme pays.
	ClaimRate func(total float64) float64

	StatusClaimApproved float64
	StatusAuthApproved  float64
	StatusAuthValidity  time.Duration
}

// Connector answers scheme operations from a Profile.
type Connector struct {
	profile Profile
	apiKey  string
}

func New(profile Profile, apiKey string) *Connector {
	return &Connector{profile: profile, apiKey: apiKey}
}

func (c *Connector) Name() string {
	return c.profile.Name
}

func (c *Connector) DisplayName() string {
	return c.profile.DisplayName
}

// Mode reports "mock" until an API key has been configured.
func (c *Connector) Mode() string {
	if c.apiKey == "" {
		return "mock"
	}
	return "live"
}

// RequiresAuthorization reports whether the procedure code starts with one of
// the scheme's pre-authorisation prefixes.
func (c *Connector) RequiresAuthorization(procedureCode string) bool {
	code := strings.ToUpper(procedureCode)
	for _, prefix := range c.profile.AuthPrefixes {
		if strings.HasPrefix(code, prefix) {
			return true
		}
	}
	return false
}

func (c *Connector) CheckBenefits(_ context.Context, req *models.BenefitCheck) (*models.BenefitResult, error) {
	return &models.BenefitResult{
		MemberID:              req.MemberID,
		ProcedureCode:         req.ProcedureCode,
		BenefitAvailable:      c.profile.RemainingBenefit > 0,
		RemainingBenefit:      c.profile.RemainingBenefit,
		AnnualLimit:           c.profile.AnnualLimit,
		CoPaymentRequired:     c.profile.CoPayment,
		AuthorizationRequired: c.RequiresAuthorization(req.ProcedureCode),
	}, nil
}

func (c *Connector) RequestAuthorization(ctx context.Context, req *models.AuthorizationRequest) (*models.AuthorizationResult, error) {
	now := requestcontext.Now(ctx)
	stamp := now.Format(idTimeLayout)

	result := &models.AuthorizationResult{
		AuthorizationID: c.id("AUTH", stamp),
		Status:          models.StatusPending,
		ReferenceNumber: c.id("REF", stamp),
	}
	if c.profile.ApproveAuth == nil || c.profile.ApproveAuth(req) {
		number := c.profile.AuthNumberPrefix + stamp
		amount := c.profile.ApprovedAuthAmount
		validUntil := now.Add(c.profile.AuthValidity)
		result.Status = models.StatusApproved
		result.AuthorizationNumber = &number
		result.ApprovedAmount = &amount
		result.ValidUntil = &validUntil
	}
	return result, nil
}

func (c *Connector) GetAuthorizationStatus(ctx context.Context, authorizationID string) (*models.AuthorizationResult, error) {
	number := c.profile.AuthNumberPrefix + authorizationID
	amount := c.profile.StatusAuthApproved
	validUntil := requestcontext.Now(ctx).Add(c.profile.StatusAuthValidity)
	return &models.AuthorizationResult{
		AuthorizationID:     authorizationID,
		Status:              models.StatusApproved,
		AuthorizationNumber: &number,
		ApprovedAmount:      &amount,
		ValidUntil:          &validUntil,
		ReferenceNumber:     c.id("REF", authorizationID),
	}, nil
}

func (c *Connector) SubmitClaim(ctx context.Context, claim *models.Claim) (*models.ClaimResult, error) {
	now := requestcontext.Now(ctx)
	stamp := now.Format(idTimeLayout)

	rate := 1.0
	if c.profile.ClaimRate != nil {
		rate = c.profile.ClaimRate(claim.TotalClaimAmount)
	}
	approved := roundCents(claim.TotalClaimAmount * rate)

	return &models.ClaimResult{
		ClaimID:         c.id("CLAIM", stamp),
		Status:          models.StatusApproved,
		ApprovedAmount:  &approved,
		ReferenceNumber: c.id("REF", stamp),
		ProcessedDate:   now,
	}, nil
}

func (c *Connector) GetClaimStatus(ctx context.Context, claimID string) (*models.ClaimResult, error) {
	approved := c.profile.StatusClaimApproved
	return &models.ClaimResult{
		ClaimID:         claimID,
		Status:          models.StatusProcessed,
		ApprovedAmount:  &approved,
		ReferenceNumber: c.id("REF", claimID),
		ProcessedDate:   requestcontext.Now(ctx),
	}, nil
}

func (c *Connector) id(kind, suffix string) string {
	return fmt.Sprintf("%s-%s-%s", c.profile.IDPrefix, kind, suffix)
}

func roundCents(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
