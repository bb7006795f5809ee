package workflow

import (
	"strings"

	"medmcp/internal/openemr"
	schememodels "medmcp/internal/scheme/models"
	"medmcp/pkg/validation"
)

// DefaultScheme is the scheme consulted when a request names none.
const DefaultScheme = "fhir"

const (
	sourceFHIR    = "HAPI FHIR"
	sourceOpenEMR = "OpenEMR"

	lookupProcedure = "CONS001"
)

type LookupRequest struct {
	MemberID   string `json:"member_id" validate:"notblank,max=64"`
	SchemeName string `json:"scheme_name" validate:"max=32"`
}

func (r *LookupRequest) Normalize() {
	r.MemberID = strings.TrimSpace(r.MemberID)
	r.SchemeName = normalizeScheme(r.SchemeName)
}

func (r *LookupRequest) Validate() error {
	return validation.Validate(r)
}

// FHIRData carries the consultation benefit seen by the FHIR scheme, or the
// error that prevented the check.
type FHIRData struct {
	Benefits *schememodels.BenefitResult `json:"benefits,omitempty"`
	Source   string                      `json:"source,omitempty"`
	Error    string                      `json:"error,omitempty"`
}

type ClinicData struct {
	Patient *openemr.Patient `json:"patient,omitempty"`
	Source  string           `json:"source,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// Profile merges the clinic record with scheme benefits. It is only built
// when both sides answered.
type Profile struct {
	MemberID          string  `json:"member_id"`
	PatientName       string  `json:"patient_name"`
	BenefitsAvailable bool    `json:"benefits_available"`
	RemainingBenefit  float64 `json:"remaining_benefit"`
	ClinicRecords     string  `json:"clinic_records"`
	IntegrationStatus string  `json:"integration_status"`
}

type LookupResult struct {
	MemberID          string      `json:"member_id"`
	SchemeName        string      `json:"scheme_name"`
	FHIRData          *FHIRData   `json:"fhir_data"`
	OpenEMRData       *ClinicData `json:"openemr_data"`
	IntegratedProfile *Profile    `json:"integrated_profile"`
}

type Procedure struct {
	Code string  `json:"code" validate:"procedurecode"`
	Name string  `json:"name" validate:"notblank,max=200"`
	Cost float64 `json:"cost" validate:"gt=0"`
}

// VisitRequest bills one clinic visit: every procedure is benefit-checked,
// authorised where the scheme asks for it and then claimed together.
type VisitRequest struct {
	MemberID   string      `json:"member_id" validate:"notblank,max=64"`
	ProviderID string      `json:"provider_id" validate:"notblank,max=64"`
	SchemeName string      `json:"scheme_name" validate:"max=32"`
	Procedures []Procedure `json:"procedures" validate:"required,min=1,max=20,dive"`
}

func (r *VisitRequest) Normalize() {
	r.MemberID = strings.TrimSpace(r.MemberID)
	r.ProviderID = strings.TrimSpace(r.ProviderID)
	r.SchemeName = normalizeScheme(r.SchemeName)
	for i := range r.Procedures {
		p := &r.Procedures[i]
		p.Code = strings.ToUpper(strings.TrimSpace(p.Code))
		p.Name = strings.TrimSpace(p.Name)
	}
}

func (r *VisitRequest) Validate() error {
	return validation.Validate(r)
}

func (r *VisitRequest) total() float64 {
	var total float64
	for _, p := range r.Procedures {
		total += p.Cost
	}
	return total
}

type VisitBenefit struct {
	Procedure             string `json:"procedure"`
	Code                  string `json:"code"`
	BenefitAvailable      bool   `json:"benefit_available"`
	AuthorizationRequired bool   `json:"authorization_required"`
}

type VisitAuthorization struct {
	Procedure       string `json:"procedure"`
	AuthorizationID string `json:"authorization_id"`
	Status          string `json:"status"`
}

type VisitClaim struct {
	ClaimID        string   `json:"claim_id"`
	Status         string   `json:"status"`
	ApprovedAmount *float64 `json:"approved_amount"`
}

// VisitResult records each step taken. A visit for a patient the clinic
// does not know stops after the lookup with Completed false.
type VisitResult struct {
	MemberID             string               `json:"member_id"`
	ProviderID           string               `json:"provider_id"`
	SchemeName           string               `json:"scheme_name"`
	Procedures           []Procedure          `json:"procedures"`
	Steps                []string             `json:"steps"`
	Patient              *openemr.Patient     `json:"patient,omitempty"`
	BenefitResults       []VisitBenefit       `json:"benefit_results,omitempty"`
	AuthorizationResults []VisitAuthorization `json:"authorization_results,omitempty"`
	ClaimResult          *VisitClaim          `json:"claim_result,omitempty"`
	Completed            bool                 `json:"completed"`
}

func normalizeScheme(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultScheme
	}
	return s
}
