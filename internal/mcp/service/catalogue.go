package service

import "medmcp/internal/mcp/models"

const catalogueDescription = "MCP tools to help medical practices with common tasks like benefit checks, authorizations, and claim submissions"

func str(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func num(desc string) map[string]any {
	return map[string]any{"type": "number", "description": desc}
}

func urgencySchema() map[string]any {
	return map[string]any{"type": "string", "enum": []string{"routine", "urgent", "emergency"}, "default": "routine"}
}

func schemeSchema(schemes []string) map[string]any {
	return map[string]any{"type": "string", "enum": schemes, "description": "Medical scheme name"}
}

func object(properties map[string]any, required ...string) map[string]any {
	return map[string]any{"type": "object", "properties": properties, "required": required}
}

// Catalogue lists the tools with input schemas. The scheme_name enum is the
// set of registered schemes.
func Catalogue(schemes []string) models.ToolList {
	patient := func(extra map[string]any) map[string]any {
		props := map[string]any{
			"patient_name": str("Patient's full name"),
			"member_id":    str("Medical scheme member ID"),
			"scheme_name":  schemeSchema(schemes),
		}
		for k, v := range extra {
			props[k] = v
		}
		return props
	}

	tools := []models.Tool{
		{
			Name:        models.ToolCheckPatientBenefits,
			Description: "Check a patient's medical scheme benefits for specific procedures. Use it to verify coverage before treatment.",
			InputSchema: object(patient(map[string]any{
				"procedure_codes": map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "List of procedure codes to check"},
			}), "patient_name", "member_id", "scheme_name", "procedure_codes"),
		},
		{
			Name:        models.ToolRequestAuthorization,
			Description: "Request pre-authorization for a medical procedure. Use this before performing procedures that require approval.",
			InputSchema: object(patient(map[string]any{
				"provider_id":    str("Healthcare provider ID"),
				"procedure_code": str("Medical procedure code"),
				"procedure_name": str("Procedure description"),
				"estimated_cost": num("Estimated procedure cost"),
				"urgency":        urgencySchema(),
				"diagnosis_code": str("ICD-10 diagnosis code (optional)"),
				"clinical_notes": str("Additional clinical information (optional)"),
			}), "patient_name", "member_id", "scheme_name", "provider_id", "procedure_code", "procedure_name", "estimated_cost"),
		},
		{
			Name:        models.ToolSubmitMedicalClaim,
			Description: "Submit a medical claim for procedures that have been completed. Use this after providing treatment to get reimbursement.",
			InputSchema: object(patient(map[string]any{
				"provider_id":  str("Healthcare provider ID"),
				"service_date": map[string]any{"type": "string", "format": "date", "description": "Date services were provided (YYYY-MM-DD)"},
				"procedures": map[string]any{
					"type": "array",
					"items": object(map[string]any{
						"procedure_code": str("Medical procedure code"),
						"procedure_name": str("Procedure description"),
						"quantity":       map[string]any{"type": "integer", "default": 1, "description": "Number of procedures"},
						"unit_price":     num("Price per procedure"),
						"total_amount":   num("Total amount for this procedure"),
					}, "procedure_code", "procedure_name", "unit_price", "total_amount"),
				},
				"authorization_number": str("Pre-authorization number (if applicable)"),
			}), "patient_name", "member_id", "scheme_name", "provider_id", "service_date", "procedures"),
		},
		{
			Name:        models.ToolCompletePatientWorkflow,
			Description: "Complete workflow: check benefits, request authorization if needed, and optionally submit a claim.",
			InputSchema: object(patient(map[string]any{
				"provider_id":   str("Healthcare provider ID"),
				"practice_name": str("Medical practice name"),
				"procedures": map[string]any{
					"type": "array",
					"items": object(map[string]any{
						"procedure_code": str("Medical procedure code"),
						"procedure_name": str("Procedure description"),
						"estimated_cost": num("Estimated procedure cost"),
						"urgency":        urgencySchema(),
					}, "procedure_code", "procedure_name", "estimated_cost"),
				},
				"workflow_type": map[string]any{
					"type":        "string",
					"enum":        []string{models.WorkflowCheckOnly, models.WorkflowCheckAndAuth, models.WorkflowFull},
					"default":     models.WorkflowCheckAndAuth,
					"description": "Type of workflow to execute",
				},
				"service_date": map[string]any{"type": "string", "format": "date", "description": "Date services were/will be provided (YYYY-MM-DD)"},
			}), "patient_name", "member_id", "scheme_name", "provider_id", "practice_name", "procedures"),
		},
	}

	return models.ToolList{Tools: tools, TotalTools: len(tools), Description: catalogueDescription}
}
