package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	dErrors "medmcp/pkg/domain-errors"
	"medmcp/pkg/requestcontext"
)

type MockTokenVerifier struct {
	mock.Mock
}

func (m *MockTokenVerifier) Verify(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

type MockFailureRecorder struct {
	mock.Mock
}

func (m *MockFailureRecorder) LogAuthentication(ctx context.Context, userID, action string, success bool, reason string) error {
	args := m.Called(ctx, userID, action, success, reason)
	return args.Error(0)
}

type countingFailures map[string]int

func (c countingFailures) IncVerifyFailure(reason string) { c[reason]++ }

// mockHandler is a test handler that captures if it was called and the context
type mockHandler struct {
	called  bool
	context context.Context
}

func (m *mockHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.called = true
	m.context = r.Context()
	w.WriteHeader(http.StatusOK)
}

type AuthMiddlewareTestSuite struct {
	suite.Suite
	verifier    *MockTokenVerifier
	recorder    *MockFailureRecorder
	failures    countingFailures
	nextHandler *mockHandler
	middleware  func(http.Handler) http.Handler
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	s.verifier = new(MockTokenVerifier)
	s.recorder = new(MockFailureRecorder)
	s.failures = countingFailures{}
	s.nextHandler = &mockHandler{}
	s.middleware = RequireAuth(s.verifier, slog.Default(),
		WithFailureRecorder(s.recorder),
		WithFailureCounter(s.failures),
	)
}

func (s *AuthMiddlewareTestSuite) TearDownTest() {
	s.verifier.AssertExpectations(s.T())
	s.recorder.AssertExpectations(s.T())
}

func (s *AuthMiddlewareTestSuite) makeRequest(authHeader string) *httptest.ResponseRecorder {
	handler := s.middleware(s.nextHandler)
	req := httptest.NewRequest(http.MethodGet, "/scheme/discovery/benefits", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func (s *AuthMiddlewareTestSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (s *AuthMiddlewareTestSuite) TestValidToken() {
	s.verifier.On("Verify", mock.Anything, "valid-token").Return("admin", nil)

	w := s.makeRequest("Bearer valid-token")

	require.True(s.T(), s.nextHandler.called, "next handler should be called")
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "admin", requestcontext.Subject(s.nextHandler.context))
}

func (s *AuthMiddlewareTestSuite) TestSchemeIsCaseInsensitive() {
	s.verifier.On("Verify", mock.Anything, "valid-token").Return("admin", nil)

	w := s.makeRequest("bearer   valid-token ")

	assert.True(s.T(), s.nextHandler.called)
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *AuthMiddlewareTestSuite) TestMissingToken() {
	for _, header := range []string{"", "Basic YWRtaW46cGFzc3dvcmQ=", "Bearer", "Bearer    "} {
		s.SetupTest()
		s.recorder.On("LogAuthentication", mock.Anything, "", "verify_token", false, "missing_token").Return(nil).Once()

		w := s.makeRequest(header)

		assert.False(s.T(), s.nextHandler.called, "header %q", header)
		assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
		assert.Equal(s.T(), "Bearer", w.Header().Get("WWW-Authenticate"))
		body := s.decode(w)
		assert.Equal(s.T(), "Unauthorized", body["error"])
		assert.Equal(s.T(), "/scheme/discovery/benefits", body["path"])
		assert.Equal(s.T(), 1, s.failures["missing_token"])
		s.recorder.AssertExpectations(s.T())
	}
}

func (s *AuthMiddlewareTestSuite) TestExpiredAndInvalidLookIdentical() {
	s.verifier.On("Verify", mock.Anything, "expired").Return("", dErrors.New(dErrors.CodeTokenExpired, "token expired"))
	s.verifier.On("Verify", mock.Anything, "forged").Return("", dErrors.New(dErrors.CodeTokenInvalid, "invalid token"))
	s.recorder.On("LogAuthentication", mock.Anything, "", "verify_token", false, "token_expired").Return(nil).Once()
	s.recorder.On("LogAuthentication", mock.Anything, "", "verify_token", false, "token_invalid").Return(nil).Once()

	expired := s.makeRequest("Bearer expired")
	forged := s.makeRequest("Bearer forged")

	assert.False(s.T(), s.nextHandler.called)
	assert.Equal(s.T(), http.StatusUnauthorized, expired.Code)
	assert.Equal(s.T(), http.StatusUnauthorized, forged.Code)

	expiredBody, forgedBody := s.decode(expired), s.decode(forged)
	assert.Equal(s.T(), expiredBody["message"], forgedBody["message"])
	assert.Equal(s.T(), "Could not validate credentials", forgedBody["message"])
	assert.Equal(s.T(), 1, s.failures["token_expired"])
	assert.Equal(s.T(), 1, s.failures["token_invalid"])
}

func (s *AuthMiddlewareTestSuite) TestWithoutOptionalHooks() {
	s.verifier.On("Verify", mock.Anything, "forged").Return("", dErrors.New(dErrors.CodeTokenInvalid, "invalid token"))
	s.middleware = RequireAuth(s.verifier, slog.Default())

	w := s.makeRequest("Bearer forged")

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}
