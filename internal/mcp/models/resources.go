package models

import "time"

type BenefitLine struct {
	ProcedureCode         string  `json:"procedure_code"`
	BenefitAvailable      bool    `json:"benefit_available"`
	RemainingBenefit      float64 `json:"remaining_benefit"`
	AnnualLimit           float64 `json:"annual_limit"`
	CoPaymentRequired     float64 `json:"co_payment_required"`
	AuthorizationRequired bool    `json:"authorization_required"`
}

type BenefitsSummary struct {
	TotalProceduresChecked  int `json:"total_procedures_checked"`
	ProceduresWithBenefits  int `json:"procedures_with_benefits"`
	ProceduresRequiringAuth int `json:"procedures_requiring_auth"`
}

type BenefitsResource struct {
	PatientName string          `json:"patient_name"`
	MemberID    string          `json:"member_id"`
	SchemeName  string          `json:"scheme_name"`
	Benefits    []BenefitLine   `json:"benefits"`
	Summary     BenefitsSummary `json:"summary"`
}

type AuthorizationResource struct {
	PatientName         string     `json:"patient_name"`
	ProcedureName       string     `json:"procedure_name"`
	AuthorizationID     string     `json:"authorization_id"`
	Status              string     `json:"status"`
	AuthorizationNumber *string    `json:"authorization_number"`
	ApprovedAmount      *float64   `json:"approved_amount"`
	ValidUntil          *time.Time `json:"valid_until"`
	ReferenceNumber     string     `json:"reference_number"`
	EstimatedCost       float64    `json:"estimated_cost"`
	SchemeName          string     `json:"scheme_name"`
}

type ClaimResource struct {
	PatientName         string    `json:"patient_name"`
	ClaimID             string    `json:"claim_id"`
	Status              string    `json:"status"`
	SubmittedAmount     float64   `json:"submitted_amount"`
	ApprovedAmount      *float64  `json:"approved_amount"`
	ReferenceNumber     string    `json:"reference_number"`
	ProcessedDate       time.Time `json:"processed_date"`
	ProceduresCount     int       `json:"procedures_count"`
	SchemeName          string    `json:"scheme_name"`
	AuthorizationNumber *string   `json:"authorization_number"`
}

type WorkflowBenefit struct {
	Procedure             string  `json:"procedure"`
	Code                  string  `json:"code"`
	BenefitAvailable      bool    `json:"benefit_available"`
	AuthorizationRequired bool    `json:"authorization_required"`
	RemainingBenefit      float64 `json:"remaining_benefit"`
}

type WorkflowAuthorization struct {
	Procedure           string  `json:"procedure"`
	AuthorizationID     string  `json:"authorization_id"`
	Status              string  `json:"status"`
	AuthorizationNumber *string `json:"authorization_number"`
}

type WorkflowClaim struct {
	ClaimID string   `json:"claim_id"`
	Status  string   `json:"status"`
	Amount  *float64 `json:"amount"`
}

type WorkflowSummary struct {
	ProceduresProcessed     int  `json:"procedures_processed"`
	AuthorizationsRequested int  `json:"authorizations_requested"`
	ClaimSubmitted          bool `json:"claim_submitted"`
}

type WorkflowResource struct {
	PatientName    string                  `json:"patient_name"`
	PracticeName   string                  `json:"practice_name"`
	WorkflowType   string                  `json:"workflow_type"`
	SchemeName     string                  `json:"scheme_name"`
	Benefits       []WorkflowBenefit       `json:"benefits"`
	Authorizations []WorkflowAuthorization `json:"authorizations"`
	Claim          *WorkflowClaim          `json:"claim"`
	Summary        WorkflowSummary         `json:"summary"`
}
