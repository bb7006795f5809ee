package auth

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GET(path string, headers map[string]string) error
	GetResponseField(field string) (any, error)
	GetLastResponseStatus() int
	GetAccessToken() string
	SetAccessToken(token string)
	Credentials() (username, password string)
}

// RegisterSteps registers authentication step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &authSteps{tc: tc}

	ctx.Step(`^I log in with the configured credentials$`, steps.loginWithConfigured)
	ctx.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, steps.login)
	ctx.Step(`^I am logged in$`, steps.loggedIn)
	ctx.Step(`^I save the access token$`, steps.saveAccessToken)
	ctx.Step(`^I GET "([^"]*)" with the access token$`, steps.getWithToken)
	ctx.Step(`^I GET "([^"]*)" with token "([^"]*)"$`, steps.getWithGivenToken)
}

type authSteps struct {
	tc TestContext
}

func (s *authSteps) loginWithConfigured(ctx context.Context) error {
	username, password := s.tc.Credentials()
	return s.login(ctx, username, password)
}

func (s *authSteps) login(ctx context.Context, username, password string) error {
	return s.tc.POST("/auth/login", map[string]string{
		"username": username,
		"password": password,
	})
}

func (s *authSteps) loggedIn(ctx context.Context) error {
	if err := s.loginWithConfigured(ctx); err != nil {
		return err
	}
	if status := s.tc.GetLastResponseStatus(); status != 200 {
		return fmt.Errorf("login failed with status %d", status)
	}
	return s.saveAccessToken(ctx)
}

func (s *authSteps) saveAccessToken(ctx context.Context) error {
	token, err := s.tc.GetResponseField("access_token")
	if err != nil {
		return err
	}
	str, ok := token.(string)
	if !ok || str == "" {
		return fmt.Errorf("access_token is not a non-empty string: %v", token)
	}
	s.tc.SetAccessToken(str)
	return nil
}

func (s *authSteps) getWithToken(ctx context.Context, path string) error {
	return s.getWithGivenToken(ctx, path, s.tc.GetAccessToken())
}

func (s *authSteps) getWithGivenToken(ctx context.Context, path, token string) error {
	return s.tc.GET(path, map[string]string{"Authorization": "Bearer " + token})
}
