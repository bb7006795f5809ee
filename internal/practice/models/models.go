package models

import (
	"strings"

	schememodels "medmcp/internal/scheme/models"
	"medmcp/pkg/validation"
)

// Procedure is a catalogue entry with a typical private-practice cost in rand.
type Procedure struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	TypicalCost float64 `json:"typical_cost"`
}

type ProcedureList struct {
	Procedures []Procedure `json:"procedures"`
	Total      int         `json:"total"`
	Note       string      `json:"note"`
}

type SchemeDetails struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Coverage string   `json:"coverage,omitempty"`
	Features []string `json:"features,omitempty"`
	Mode     string   `json:"mode"`
}

type SupportedScheme struct {
	Code    string        `json:"code"`
	Details SchemeDetails `json:"details"`
}

type SchemeList struct {
	SupportedSchemes []SupportedScheme `json:"supported_schemes"`
	Total            int               `json:"total"`
}

// WorkflowTemplate suggests a workflow type and procedures for a common visit.
type WorkflowTemplate struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Steps             []string `json:"steps"`
	TypicalProcedures []string `json:"typical_procedures"`
	WorkflowType      string   `json:"workflow_type"`
	Urgency           string   `json:"urgency,omitempty"`
}

type TemplateList struct {
	Templates []WorkflowTemplate `json:"templates"`
	Total     int                `json:"total"`
	Usage     string             `json:"usage"`
}

// QuickCheckRequest checks several procedures for one member. An empty
// code list checks the default consultation set.
type QuickCheckRequest struct {
	PatientName    string   `json:"patient_name" validate:"notblank,max=200"`
	MemberID       string   `json:"member_id" validate:"notblank,max=64"`
	SchemeName     string   `json:"scheme_name" validate:"notblank,max=32"`
	ProcedureCodes []string `json:"procedure_codes" validate:"max=20,dive,procedurecode"`
}

func (r *QuickCheckRequest) Normalize() {
	r.PatientName = strings.TrimSpace(r.PatientName)
	r.MemberID = strings.TrimSpace(r.MemberID)
	r.SchemeName = strings.ToLower(strings.TrimSpace(r.SchemeName))
	for i, code := range r.ProcedureCodes {
		r.ProcedureCodes[i] = strings.ToUpper(strings.TrimSpace(code))
	}
	if len(r.ProcedureCodes) == 0 {
		r.ProcedureCodes = append([]string(nil), DefaultQuickCheckCodes...)
	}
}

func (r *QuickCheckRequest) Validate() error {
	return validation.Validate(r)
}

type QuickCheckLine struct {
	ProcedureCode         string  `json:"procedure_code"`
	ProcedureName         string  `json:"procedure_name"`
	BenefitAvailable      bool    `json:"benefit_available"`
	RemainingBenefit      float64 `json:"remaining_benefit"`
	AuthorizationRequired bool    `json:"authorization_required"`
	CoPayment             float64 `json:"co_payment"`
}

type QuickCheckSummary struct {
	TotalChecked            int     `json:"total_checked"`
	WithBenefits            int     `json:"with_benefits"`
	RequiringAuth           int     `json:"requiring_auth"`
	EstimatedTotalRemaining float64 `json:"estimated_total_remaining"`
	EstimatedCoPayments     float64 `json:"estimated_co_payments"`
}

type QuickCheckResponse struct {
	PatientName     string            `json:"patient_name"`
	MemberID        string            `json:"member_id"`
	SchemeName      string            `json:"scheme_name"`
	Benefits        []QuickCheckLine  `json:"benefits"`
	Summary         QuickCheckSummary `json:"summary"`
	Recommendations []string          `json:"recommendations"`
}

// NewQuickCheckResponse pairs results with codes by position and totals them.
func NewQuickCheckResponse(req *QuickCheckRequest, results []*schememodels.BenefitResult) *QuickCheckResponse {
	res := &QuickCheckResponse{
		PatientName: req.PatientName,
		MemberID:    req.MemberID,
		SchemeName:  req.SchemeName,
		Benefits:    make([]QuickCheckLine, 0, len(results)),
	}
	for i, r := range results {
		code := req.ProcedureCodes[i]
		res.Benefits = append(res.Benefits, QuickCheckLine{
			ProcedureCode:         code,
			ProcedureName:         ProcedureName(code),
			BenefitAvailable:      r.BenefitAvailable,
			RemainingBenefit:      r.RemainingBenefit,
			AuthorizationRequired: r.AuthorizationRequired,
			CoPayment:             r.CoPaymentRequired,
		})
		res.Summary.TotalChecked++
		if r.BenefitAvailable {
			res.Summary.WithBenefits++
		}
		if r.AuthorizationRequired {
			res.Summary.RequiringAuth++
		}
		res.Summary.EstimatedTotalRemaining += r.RemainingBenefit
		res.Summary.EstimatedCoPayments += r.CoPaymentRequired
	}
	res.Recommendations = recommendations(res.Summary)
	return res
}

func recommendations(s QuickCheckSummary) []string {
	var out []string
	if s.WithBenefits > 0 {
		out = append(out, "Proceed with procedures that have benefits available")
	}
	if s.WithBenefits < s.TotalChecked {
		out = append(out, "Discuss private payment for procedures without benefits")
	}
	if s.RequiringAuth > 0 {
		out = append(out, "Request authorization for procedures that require it")
	}
	if s.EstimatedCoPayments > 0 {
		out = append(out, "Inform patient of co-payment requirements")
	}
	return out
}
