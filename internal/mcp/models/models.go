package models

import (
	"strings"

	"medmcp/pkg/validation"
)

// Tool names served under /mcp/tools/{name}.
const (
	ToolCheckPatientBenefits    = "check_patient_benefits"
	ToolRequestAuthorization    = "request_procedure_authorization"
	ToolSubmitMedicalClaim      = "submit_medical_claim"
	ToolCompletePatientWorkflow = "complete_patient_workflow"
)

// Workflow types for complete_patient_workflow.
const (
	WorkflowCheckOnly    = "check_only"
	WorkflowCheckAndAuth = "check_and_auth"
	WorkflowFull         = "full_workflow"
)

// Tool describes one callable tool and its JSON Schema input.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

type ToolList struct {
	Tools       []Tool `json:"tools"`
	TotalTools  int    `json:"total_tools"`
	Description string `json:"description"`
}

// Content is one item of a tool result: "text" items carry Text, "resource"
// items carry Resource.
type Content struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Resource any    `json:"resource,omitempty"`
}

type Result struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError"`
}

func TextResult(text string, resource any) *Result {
	return &Result{Content: []Content{
		{Type: "text", Text: text},
		{Type: "resource", Resource: resource},
	}}
}

func ErrorResult(text string) *Result {
	return &Result{Content: []Content{{Type: "text", Text: text}}, IsError: true}
}

// PatientRef identifies the patient and scheme every tool acts on.
type PatientRef struct {
	PatientName string `json:"patient_name" validate:"notblank,max=200"`
	MemberID    string `json:"member_id" validate:"notblank,max=64"`
	SchemeName  string `json:"scheme_name" validate:"notblank,max=32"`
}

func (p *PatientRef) normalize() {
	p.PatientName = strings.TrimSpace(p.PatientName)
	p.MemberID = strings.TrimSpace(p.MemberID)
	p.SchemeName = strings.ToLower(strings.TrimSpace(p.SchemeName))
}

type CheckBenefitsInput struct {
	PatientRef
	ProcedureCodes []string `json:"procedure_codes" validate:"required,min=1,max=50,dive,procedurecode"`
}

func (in *CheckBenefitsInput) Normalize() {
	in.normalize()
	for i, code := range in.ProcedureCodes {
		in.ProcedureCodes[i] = normalizeCode(code)
	}
}

func (in *CheckBenefitsInput) Validate() error {
	return validation.Validate(in)
}

type AuthorizationInput struct {
	PatientRef
	ProviderID    string  `json:"provider_id" validate:"notblank,max=64"`
	ProcedureCode string  `json:"procedure_code" validate:"procedurecode"`
	ProcedureName string  `json:"procedure_name" validate:"notblank,max=500"`
	EstimatedCost float64 `json:"estimated_cost" validate:"gte=0"`
	Urgency       string  `json:"urgency" validate:"oneof=routine urgent emergency"`
	DiagnosisCode string  `json:"diagnosis_code,omitempty" validate:"max=16"`
	ClinicalNotes string  `json:"clinical_notes,omitempty" validate:"max=4000"`
}

func (in *AuthorizationInput) Normalize() {
	in.normalize()
	in.ProviderID = strings.TrimSpace(in.ProviderID)
	in.ProcedureCode = normalizeCode(in.ProcedureCode)
	in.ProcedureName = strings.TrimSpace(in.ProcedureName)
	in.Urgency = normalizeUrgency(in.Urgency)
}

func (in *AuthorizationInput) Validate() error {
	return validation.Validate(in)
}

type ClaimProcedure struct {
	ProcedureCode string  `json:"procedure_code" validate:"procedurecode"`
	ProcedureName string  `json:"procedure_name" validate:"notblank,max=500"`
	Quantity      int     `json:"quantity" validate:"gte=1"`
	UnitPrice     float64 `json:"unit_price" validate:"gte=0"`
	TotalAmount   float64 `json:"total_amount" validate:"gte=0"`
}

type ClaimInput struct {
	PatientRef
	ProviderID          string           `json:"provider_id" validate:"notblank,max=64"`
	ServiceDate         string           `json:"service_date" validate:"required,datetime=2006-01-02"`
	Procedures          []ClaimProcedure `json:"procedures" validate:"required,min=1,max=100,dive"`
	AuthorizationNumber string           `json:"authorization_number,omitempty" validate:"max=64"`
}

func (in *ClaimInput) Normalize() {
	in.normalize()
	in.ProviderID = strings.TrimSpace(in.ProviderID)
	in.ServiceDate = strings.TrimSpace(in.ServiceDate)
	in.AuthorizationNumber = strings.TrimSpace(in.AuthorizationNumber)
	for i := range in.Procedures {
		p := &in.Procedures[i]
		p.ProcedureCode = normalizeCode(p.ProcedureCode)
		p.ProcedureName = strings.TrimSpace(p.ProcedureName)
		if p.Quantity == 0 {
			p.Quantity = 1
		}
	}
}

func (in *ClaimInput) Validate() error {
	return validation.Validate(in)
}

// Total sums the per-procedure totals; the claim total is never taken from
// the caller.
func (in *ClaimInput) Total() float64 {
	var total float64
	for _, p := range in.Procedures {
		total += p.TotalAmount
	}
	return total
}

type WorkflowProcedure struct {
	ProcedureCode string  `json:"procedure_code" validate:"procedurecode"`
	ProcedureName string  `json:"procedure_name" validate:"notblank,max=500"`
	EstimatedCost float64 `json:"estimated_cost" validate:"gte=0"`
	Urgency       string  `json:"urgency" validate:"oneof=routine urgent emergency"`
}

type WorkflowInput struct {
	PatientRef
	ProviderID   string              `json:"provider_id" validate:"notblank,max=64"`
	PracticeName string              `json:"practice_name" validate:"notblank,max=200"`
	Procedures   []WorkflowProcedure `json:"procedures" validate:"required,min=1,max=50,dive"`
	WorkflowType string              `json:"workflow_type" validate:"oneof=check_only check_and_auth full_workflow"`
	ServiceDate  string              `json:"service_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

func (in *WorkflowInput) Normalize() {
	in.normalize()
	in.ProviderID = strings.TrimSpace(in.ProviderID)
	in.PracticeName = strings.TrimSpace(in.PracticeName)
	in.ServiceDate = strings.TrimSpace(in.ServiceDate)
	in.WorkflowType = strings.ToLower(strings.TrimSpace(in.WorkflowType))
	if in.WorkflowType == "" {
		in.WorkflowType = WorkflowCheckAndAuth
	}
	for i := range in.Procedures {
		p := &in.Procedures[i]
		p.ProcedureCode = normalizeCode(p.ProcedureCode)
		p.ProcedureName = strings.TrimSpace(p.ProcedureName)
		p.Urgency = normalizeUrgency(p.Urgency)
	}
}

func (in *WorkflowInput) Validate() error {
	return validation.Validate(in)
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func normalizeUrgency(u string) string {
	u = strings.ToLower(strings.TrimSpace(u))
	if u == "" {
		return "routine"
	}
	return u
}
