package models

import (
	"strings"
	"time"

	"medmcp/pkg/validation"
)

// Decision statuses returned by scheme connectors.
const (
	StatusApproved  = "approved"
	StatusPending   = "pending"
	StatusRejected  = "rejected"
	StatusProcessed = "processed"
)

const (
	UrgencyRoutine   = "routine"
	UrgencyUrgent    = "urgent"
	UrgencyEmergency = "emergency"
)

// BenefitCheck asks whether a member is covered for one procedure.
type BenefitCheck struct {
	MemberID      string `json:"member_id" validate:"notblank,max=64"`
	ProcedureCode string `json:"procedure_code" validate:"procedurecode"`
}

func (r *BenefitCheck) Normalize() {
	r.MemberID = strings.TrimSpace(r.MemberID)
	r.ProcedureCode = strings.ToUpper(strings.TrimSpace(r.ProcedureCode))
}

func (r *BenefitCheck) Validate() error {
	return validation.Validate(r)
}

type BenefitResult struct {
	MemberID              string  `json:"member_id"`
	ProcedureCode         string  `json:"procedure_code"`
	BenefitAvailable      bool    `json:"benefit_available"`
	RemainingBenefit      float64 `json:"remaining_benefit"`
	AnnualLimit           float64 `json:"annual_limit"`
	CoPaymentRequired     float64 `json:"co_payment_required"`
	AuthorizationRequired bool    `json:"authorization_required"`
}

// AuthorizationRequest asks the scheme to pre-authorise a procedure.
type AuthorizationRequest struct {
	MemberID      string    `json:"member_id" validate:"notblank,max=64"`
	ProviderID    string    `json:"provider_id" validate:"notblank,max=64"`
	ProcedureCode string    `json:"procedure_code" validate:"procedurecode"`
	DiagnosisCode string    `json:"diagnosis_code,omitempty" validate:"max=16"`
	PatientName   string    `json:"patient_name" validate:"notblank,max=200"`
	RequestedDate Timestamp `json:"requested_date" validate:"required"`
	Urgency       string    `json:"urgency" validate:"oneof=routine urgent emergency"`
	ClinicalNotes string    `json:"clinical_notes,omitempty" validate:"max=4000"`
}

func (r *AuthorizationRequest) Normalize() {
	r.MemberID = strings.TrimSpace(r.MemberID)
	r.ProviderID = strings.TrimSpace(r.ProviderID)
	r.ProcedureCode = strings.ToUpper(strings.TrimSpace(r.ProcedureCode))
	r.DiagnosisCode = strings.ToUpper(strings.TrimSpace(r.DiagnosisCode))
	r.PatientName = strings.TrimSpace(r.PatientName)
	r.Urgency = strings.ToLower(strings.TrimSpace(r.Urgency))
	if r.Urgency == "" {
		r.Urgency = UrgencyRoutine
	}
}

func (r *AuthorizationRequest) Validate() error {
	return validation.Validate(r)
}

type AuthorizationResult struct {
	AuthorizationID     string     `json:"authorization_id"`
	Status              string     `json:"status"`
	AuthorizationNumber *string    `json:"authorization_number"`
	ApprovedAmount      *float64   `json:"approved_amount"`
	ValidUntil          *time.Time `json:"valid_until"`
	RejectionReason     *string    `json:"rejection_reason"`
	ReferenceNumber     string     `json:"reference_number"`
}

type ClaimItem struct {
	ProcedureCode string  `json:"procedure_code" validate:"procedurecode"`
	Description   string  `json:"description" validate:"notblank,max=500"`
	Quantity      int     `json:"quantity" validate:"gte=1"`
	UnitPrice     float64 `json:"unit_price" validate:"gte=0"`
	TotalAmount   float64 `json:"total_amount" validate:"gte=0"`
}

// Claim is a reimbursement request for services already rendered.
type Claim struct {
	ClaimID             string      `json:"claim_id,omitempty"`
	MemberID            string      `json:"member_id" validate:"notblank,max=64"`
	ProviderID          string      `json:"provider_id" validate:"notblank,max=64"`
	PatientName         string      `json:"patient_name" validate:"notblank,max=200"`
	DateOfService       Timestamp   `json:"date_of_service" validate:"required"`
	ClaimItems          []ClaimItem `json:"claim_items" validate:"required,min=1,max=100,dive"`
	TotalClaimAmount    float64     `json:"total_claim_amount" validate:"gt=0"`
	DiagnosisCode       string      `json:"diagnosis_code,omitempty" validate:"max=16"`
	AuthorizationNumber string      `json:"authorization_number,omitempty" validate:"max=64"`
}

// Normalize defaults item quantity to one and tidies identifiers.
func (c *Claim) Normalize() {
	c.MemberID = strings.TrimSpace(c.MemberID)
	c.ProviderID = strings.TrimSpace(c.ProviderID)
	c.PatientName = strings.TrimSpace(c.PatientName)
	c.DiagnosisCode = strings.ToUpper(strings.TrimSpace(c.DiagnosisCode))
	c.AuthorizationNumber = strings.TrimSpace(c.AuthorizationNumber)
	for i := range c.ClaimItems {
		item := &c.ClaimItems[i]
		item.ProcedureCode = strings.ToUpper(strings.TrimSpace(item.ProcedureCode))
		item.Description = strings.TrimSpace(item.Description)
		if item.Quantity == 0 {
			item.Quantity = 1
		}
	}
}

func (c *Claim) Validate() error {
	return validation.Validate(c)
}

// ProcedureCodes lists the codes of every claimed item in order.
func (c *Claim) ProcedureCodes() []string {
	codes := make([]string, 0, len(c.ClaimItems))
	for _, item := range c.ClaimItems {
		codes = append(codes, item.ProcedureCode)
	}
	return codes
}

type ClaimResult struct {
	ClaimID         string    `json:"claim_id"`
	Status          string    `json:"status"`
	ApprovedAmount  *float64  `json:"approved_amount"`
	RejectionReason *string   `json:"rejection_reason"`
	ReferenceNumber string    `json:"reference_number"`
	ProcessedDate   time.Time `json:"processed_date"`
}

// SchemeInfo describes one registered connector.
type SchemeInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Mode        string `json:"mode"`
}

type AvailableSchemes struct {
	Schemes []string     `json:"schemes"`
	Count   int          `json:"count"`
	Details []SchemeInfo `json:"details"`
}
