package models

// DefaultQuickCheckCodes are checked when a quick check names no procedures.
var DefaultQuickCheckCodes = []string{"CONS001", "BLOOD001", "XRAY001"}

var procedures = []Procedure{
	{Code: "CONS001", Name: "General Consultation", TypicalCost: 500},
	{Code: "MRI001", Name: "Brain MRI with Contrast", TypicalCost: 3500},
	{Code: "CT001", Name: "CT Scan Chest", TypicalCost: 2200},
	{Code: "XRAY001", Name: "Chest X-Ray", TypicalCost: 350},
	{Code: "BLOOD001", Name: "Full Blood Count", TypicalCost: 180},
	{Code: "ECG001", Name: "Electrocardiogram", TypicalCost: 250},
	{Code: "ULTRA001", Name: "Abdominal Ultrasound", TypicalCost: 800},
	{Code: "SURG001", Name: "Minor Surgery", TypicalCost: 1500},
}

// Procedures returns a copy of the sample catalogue.
func Procedures() []Procedure {
	return append([]Procedure(nil), procedures...)
}

// ProcedureName falls back to the code for procedures outside the catalogue.
func ProcedureName(code string) string {
	for _, p := range procedures {
		if p.Code == code {
			return p.Name
		}
	}
	return code
}

var schemeDetails = map[string]SchemeDetails{
	"discovery": {
		Name:     "Discovery Health",
		Type:     "Private Medical Scheme",
		Coverage: "Comprehensive medical coverage",
		Features: []string{"Benefit checks", "Pre-authorizations", "Claims processing", "Real-time status"},
	},
	"gems": {
		Name:     "Government Employees Medical Scheme",
		Type:     "Government Medical Scheme",
		Coverage: "Government employee medical benefits",
		Features: []string{"Higher benefit limits", "Lower co-payments", "Extended authorization validity"},
	},
	"medscheme": {
		Name:     "Medscheme",
		Type:     "Private Medical Scheme Administrator",
		Coverage: "Various medical scheme options",
		Features: []string{"Flexible benefit structures", "Multiple plan options", "Corporate schemes"},
	},
	"fhir": {
		Name:     "HAPI FHIR",
		Type:     "FHIR R4 Server",
		Coverage: "Coverage resources from a public FHIR server",
		Features: []string{"Live coverage lookups", "Patient search"},
	},
}

// Details describes a registered scheme. Schemes without a description get
// their display name and a generic type.
func Details(code, displayName, mode string) SchemeDetails {
	d, ok := schemeDetails[code]
	if !ok {
		d = SchemeDetails{Name: displayName, Type: "Medical Scheme"}
	}
	d.Features = append([]string(nil), d.Features...)
	d.Mode = mode
	return d
}

// Templates returns the workflow templates for common practice scenarios.
// Workflow types match the complete_patient_workflow tool.
func Templates() []WorkflowTemplate {
	return []WorkflowTemplate{
		{
			Name:        "New Patient Consultation",
			Description: "Complete workflow for new patient visit",
			Steps: []string{
				"Check benefits for consultation and basic tests",
				"Request authorization if needed",
				"Submit claim after consultation",
			},
			TypicalProcedures: []string{"CONS001", "BLOOD001", "ECG001"},
			WorkflowType:      "full_workflow",
		},
		{
			Name:        "Radiology Referral",
			Description: "Process radiology referrals with authorization",
			Steps: []string{
				"Check imaging benefits",
				"Request pre-authorization",
				"Schedule procedure once approved",
			},
			TypicalProcedures: []string{"MRI001", "CT001", "ULTRA001"},
			WorkflowType:      "check_and_auth",
		},
		{
			Name:              "Routine Follow-up",
			Description:       "Standard follow-up visit processing",
			Steps:             []string{"Check consultation benefits"},
			TypicalProcedures: []string{"CONS001"},
			WorkflowType:      "check_only",
		},
		{
			Name:        "Emergency Procedure",
			Description: "Fast-track emergency authorization",
			Steps: []string{
				"Request urgent authorization",
				"Proceed with treatment",
				"Submit claim with authorization",
			},
			TypicalProcedures: []string{"SURG001", "CT001"},
			WorkflowType:      "full_workflow",
			Urgency:           "emergency",
		},
	}
}
