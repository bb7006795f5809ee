package mcp

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POSTWithHeaders(path string, body any, headers map[string]string) error
	AuthHeaders() map[string]string
}

// RegisterSteps registers MCP tool step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &mcpSteps{tc: tc}

	ctx.Step(`^I check benefits for member "([^"]*)" on "([^"]*)" for procedures:$`, steps.checkBenefits)
	ctx.Step(`^I run the "([^"]*)" workflow for member "([^"]*)" on "([^"]*)" for procedure "([^"]*)" costing ([\d.]+)$`, steps.runWorkflow)
	ctx.Step(`^I call the tool "([^"]*)" with empty arguments$`, steps.callEmpty)
}

type mcpSteps struct {
	tc TestContext
}

func (s *mcpSteps) call(tool string, args any) error {
	return s.tc.POSTWithHeaders("/mcp/tools/"+tool, args, s.tc.AuthHeaders())
}

func (s *mcpSteps) checkBenefits(ctx context.Context, memberID, scheme string, table *godog.Table) error {
	codes, err := column(table, "procedure_code")
	if err != nil {
		return err
	}
	return s.call("check_patient_benefits", map[string]any{
		"patient_name":    "E2E Patient",
		"member_id":       memberID,
		"scheme_name":     scheme,
		"procedure_codes": codes,
	})
}

func (s *mcpSteps) runWorkflow(ctx context.Context, workflow, memberID, scheme, code string, cost float64) error {
	return s.call("complete_patient_workflow", map[string]any{
		"patient_name":  "E2E Patient",
		"member_id":     memberID,
		"scheme_name":   scheme,
		"provider_id":   "PR-0001",
		"practice_name": "E2E Practice",
		"service_date":  "2025-03-01",
		"workflow_type": workflow,
		"procedures": []map[string]any{{
			"procedure_code": code,
			"procedure_name": "Procedure " + code,
			"estimated_cost": cost,
		}},
	})
}

func (s *mcpSteps) callEmpty(ctx context.Context, tool string) error {
	return s.call(tool, map[string]any{})
}

func column(table *godog.Table, name string) ([]string, error) {
	if len(table.Rows) < 2 {
		return nil, fmt.Errorf("table needs a header and at least one row")
	}
	idx := -1
	for i, cell := range table.Rows[0].Cells {
		if cell.Value == name {
			idx = i
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("table has no %q column", name)
	}
	out := make([]string, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		out = append(out, row.Cells[idx].Value)
	}
	return out, nil
}
