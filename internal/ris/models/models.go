package models

import (
	"strings"
	"time"

	schememodels "medmcp/internal/scheme/models"
	"medmcp/pkg/validation"
)

const defaultServiceDescription = "Medical Service"

// Study is one radiology study as the RIS sends it.
type Study struct {
	StudyID              string                 `json:"study_id" validate:"notblank,max=64"`
	PatientID            string                 `json:"patient_id" validate:"notblank,max=64"`
	PatientName          string                 `json:"patient_name" validate:"notblank,max=200"`
	MemberID             string                 `json:"member_id" validate:"notblank,max=64"`
	SchemeName           string                 `json:"scheme_name" validate:"notblank,max=32"`
	Modality             string                 `json:"modality" validate:"notblank,max=32"`
	ProcedureCode        string                 `json:"procedure_code" validate:"procedurecode"`
	ProcedureDescription string                 `json:"procedure_description" validate:"notblank,max=500"`
	StudyDate            schememodels.Timestamp `json:"study_date" validate:"required"`
	ReferringPhysician   string                 `json:"referring_physician" validate:"notblank,max=200"`
	ProviderID           string                 `json:"provider_id" validate:"notblank,max=64"`
	EstimatedCost        float64                `json:"estimated_cost" validate:"gt=0"`
	Urgency              string                 `json:"urgency" validate:"oneof=routine urgent emergency"`
	ClinicalIndication   string                 `json:"clinical_indication,omitempty" validate:"max=4000"`
}

func (s *Study) Normalize() {
	s.StudyID = strings.TrimSpace(s.StudyID)
	s.PatientID = strings.TrimSpace(s.PatientID)
	s.PatientName = strings.TrimSpace(s.PatientName)
	s.MemberID = strings.TrimSpace(s.MemberID)
	s.SchemeName = strings.ToLower(strings.TrimSpace(s.SchemeName))
	s.Modality = strings.ToUpper(strings.TrimSpace(s.Modality))
	s.ProcedureCode = strings.ToUpper(strings.TrimSpace(s.ProcedureCode))
	s.ProcedureDescription = strings.TrimSpace(s.ProcedureDescription)
	s.ReferringPhysician = strings.TrimSpace(s.ReferringPhysician)
	s.ProviderID = strings.TrimSpace(s.ProviderID)
	s.Urgency = strings.ToLower(strings.TrimSpace(s.Urgency))
	if s.Urgency == "" {
		s.Urgency = schememodels.UrgencyRoutine
	}
}

func (s *Study) Validate() error {
	return validation.Validate(s)
}

// AuthorizationRequest maps the study onto a scheme pre-authorization.
func (s *Study) AuthorizationRequest() *schememodels.AuthorizationRequest {
	return &schememodels.AuthorizationRequest{
		MemberID:      s.MemberID,
		ProviderID:    s.ProviderID,
		ProcedureCode: s.ProcedureCode,
		PatientName:   s.PatientName,
		RequestedDate: s.StudyDate,
		Urgency:       s.Urgency,
		ClinicalNotes: s.ClinicalIndication,
	}
}

// Claim bills the study as a single item at its estimated cost.
func (s *Study) Claim(authorizationNumber string) *schememodels.Claim {
	return &schememodels.Claim{
		MemberID:      s.MemberID,
		ProviderID:    s.ProviderID,
		PatientName:   s.PatientName,
		DateOfService: s.StudyDate,
		ClaimItems: []schememodels.ClaimItem{{
			ProcedureCode: s.ProcedureCode,
			Description:   s.ProcedureDescription,
			Quantity:      1,
			UnitPrice:     s.EstimatedCost,
			TotalAmount:   s.EstimatedCost,
		}},
		TotalClaimAmount:    s.EstimatedCost,
		AuthorizationNumber: authorizationNumber,
	}
}

// ClaimRequest submits a claim for a completed study.
type ClaimRequest struct {
	Study               Study  `json:"study" validate:"required"`
	AuthorizationNumber string `json:"authorization_number,omitempty" validate:"max=64"`
}

func (r *ClaimRequest) Normalize() {
	r.Study.Normalize()
	r.AuthorizationNumber = strings.TrimSpace(r.AuthorizationNumber)
}

func (r *ClaimRequest) Validate() error {
	return validation.Validate(r)
}

// BilledService is one line of a billing export.
type BilledService struct {
	Code        string  `json:"code" validate:"procedurecode"`
	Description string  `json:"description" validate:"max=500"`
	Quantity    int     `json:"quantity" validate:"gte=0,lte=1000"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
	TotalAmount float64 `json:"total_amount" validate:"gte=0"`
}

// BillingData is a billing export turned into one claim.
type BillingData struct {
	PatientID   string                 `json:"patient_id" validate:"notblank,max=64"`
	PatientName string                 `json:"patient_name" validate:"notblank,max=200"`
	MemberID    string                 `json:"member_id" validate:"notblank,max=64"`
	SchemeName  string                 `json:"scheme_name" validate:"notblank,max=32"`
	ProviderID  string                 `json:"provider_id" validate:"notblank,max=64"`
	Services    []BilledService        `json:"services" validate:"required,min=1,max=100,dive"`
	TotalAmount float64                `json:"total_amount" validate:"gte=0"`
	ServiceDate schememodels.Timestamp `json:"service_date" validate:"required"`
}

// Normalize fills line defaults. A missing line total is quantity times
// unit price.
func (b *BillingData) Normalize() {
	b.PatientID = strings.TrimSpace(b.PatientID)
	b.PatientName = strings.TrimSpace(b.PatientName)
	b.MemberID = strings.TrimSpace(b.MemberID)
	b.SchemeName = strings.ToLower(strings.TrimSpace(b.SchemeName))
	b.ProviderID = strings.TrimSpace(b.ProviderID)
	for i := range b.Services {
		svc := &b.Services[i]
		svc.Code = strings.ToUpper(strings.TrimSpace(svc.Code))
		svc.Description = strings.TrimSpace(svc.Description)
		if svc.Description == "" {
			svc.Description = defaultServiceDescription
		}
		if svc.Quantity == 0 {
			svc.Quantity = 1
		}
		if svc.TotalAmount == 0 {
			svc.TotalAmount = float64(svc.Quantity) * svc.UnitPrice
		}
	}
}

func (b *BillingData) Validate() error {
	return validation.Validate(b)
}

// Claim converts the services to claim items. The claimed total is the sum
// of the line totals; TotalAmount from the export is not trusted.
func (b *BillingData) Claim() *schememodels.Claim {
	claim := &schememodels.Claim{
		MemberID:      b.MemberID,
		ProviderID:    b.ProviderID,
		PatientName:   b.PatientName,
		DateOfService: b.ServiceDate,
		ClaimItems:    make([]schememodels.ClaimItem, 0, len(b.Services)),
	}
	for _, svc := range b.Services {
		claim.ClaimItems = append(claim.ClaimItems, schememodels.ClaimItem{
			ProcedureCode: svc.Code,
			Description:   svc.Description,
			Quantity:      svc.Quantity,
			UnitPrice:     svc.UnitPrice,
			TotalAmount:   svc.TotalAmount,
		})
		claim.TotalClaimAmount += svc.TotalAmount
	}
	return claim
}

type AuthorizationResponse struct {
	StudyID       string                            `json:"study_id"`
	Authorization *schememodels.AuthorizationResult `json:"authorization"`
	Message       string                            `json:"message"`
}

type ClaimResponse struct {
	StudyID string                    `json:"study_id"`
	Claim   *schememodels.ClaimResult `json:"claim"`
	Message string                    `json:"message"`
}

type BillingResponse struct {
	PatientID         string                    `json:"patient_id"`
	Claim             *schememodels.ClaimResult `json:"claim"`
	ServicesProcessed int                       `json:"services_processed"`
	Message           string                    `json:"message"`
}

// StudyRecord links a study to the scheme references issued for it.
type StudyRecord struct {
	StudyID         string
	SchemeName      string
	Modality        string
	AuthorizationID string
	ClaimID         string
	UpdatedAt       time.Time
}

// StudyStatus is the live scheme status of a tracked study. Statuses are
// null when the study has no authorization or claim yet.
type StudyStatus struct {
	StudyID             string    `json:"study_id"`
	SchemeName          string    `json:"scheme_name"`
	Modality            string    `json:"modality,omitempty"`
	AuthorizationID     *string   `json:"authorization_id"`
	AuthorizationStatus *string   `json:"authorization_status"`
	ClaimID             *string   `json:"claim_id"`
	ClaimStatus         *string   `json:"claim_status"`
	LastUpdated         time.Time `json:"last_updated"`
}
