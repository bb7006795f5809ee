package audit

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	trail "medmcp/internal/audit"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	InProcess() bool
	AuditEntries() ([]trail.Entry, error)
}

// RegisterSteps registers audit trail step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &auditSteps{tc: tc}

	ctx.Step(`^the audit trail should contain (\d+) "([^"]*)" entr(?:y|ies)$`, steps.shouldContainCount)
	ctx.Step(`^the audit trail should contain a failed "([^"]*)" entry$`, steps.shouldContainFailure)
	ctx.Step(`^the audit trail should contain a rate limited rejection for "([^"]*)"$`, steps.shouldContainRejection)
}

type auditSteps struct {
	tc TestContext
}

func (s *auditSteps) entries() ([]trail.Entry, error) {
	if !s.tc.InProcess() {
		return nil, godog.ErrSkip
	}
	return s.tc.AuditEntries()
}

func (s *auditSteps) shouldContainCount(ctx context.Context, n int, eventType string) error {
	entries, err := s.entries()
	if err != nil {
		return err
	}
	got := 0
	for _, e := range entries {
		if string(e.EventType) == eventType {
			got++
		}
	}
	if got != n {
		return fmt.Errorf("expected %d %s entries, found %d", n, eventType, got)
	}
	return nil
}

func (s *auditSteps) shouldContainFailure(ctx context.Context, eventType string) error {
	entries, err := s.entries()
	if err != nil {
		return err
	}
	for _, e := range entries {
		if string(e.EventType) == eventType && !e.Success {
			return nil
		}
	}
	return fmt.Errorf("no failed %s entry among %d entries", eventType, len(entries))
}

func (s *auditSteps) shouldContainRejection(ctx context.Context, path string) error {
	entries, err := s.entries()
	if err != nil {
		return err
	}
	for _, e := range entries {
		limited, _ := e.Details["rate_limited"].(bool)
		if limited && !e.Success && e.ResourceID != nil && *e.ResourceID == path {
			return nil
		}
	}
	return fmt.Errorf("no rate limited rejection for %s", path)
}
