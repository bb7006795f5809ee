package ratelimit

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(path string, headers map[string]string) error
	GetLastResponseStatus() int
	InProcess() bool
	Start(rateLimitPerMinute int) error
}

// RegisterSteps registers rate limit step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &rateLimitSteps{tc: tc}

	ctx.Step(`^the server allows (\d+) requests per minute$`, steps.serverAllows)
	ctx.Step(`^I GET "([^"]*)" (\d+) times$`, steps.getTimes)
	ctx.Step(`^all of them should succeed$`, steps.allSucceeded)
}

type rateLimitSteps struct {
	tc       TestContext
	statuses []int
}

// serverAllows restarts the in-process server with a new limit. Against a
// remote server the limit is fixed, so the scenario is skipped.
func (s *rateLimitSteps) serverAllows(ctx context.Context, limit int) error {
	if !s.tc.InProcess() {
		return godog.ErrSkip
	}
	return s.tc.Start(limit)
}

func (s *rateLimitSteps) getTimes(ctx context.Context, path string, n int) error {
	s.statuses = s.statuses[:0]
	for range n {
		if err := s.tc.GET(path, nil); err != nil {
			return err
		}
		s.statuses = append(s.statuses, s.tc.GetLastResponseStatus())
	}
	return nil
}

func (s *rateLimitSteps) allSucceeded(ctx context.Context) error {
	for i, status := range s.statuses {
		if status != 200 {
			return fmt.Errorf("request %d returned %d", i+1, status)
		}
	}
	return nil
}
