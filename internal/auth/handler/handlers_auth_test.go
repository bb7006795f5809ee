package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"medmcp/internal/auth/handler/mocks"
	"medmcp/internal/auth/models"
	dErrors "medmcp/pkg/domain-errors"
	"medmcp/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/auth-mocks.go -package=mocks Service
type AuthHandlerSuite struct {
	suite.Suite
	ctx context.Context
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerSuite))
}

func (s *AuthHandlerSuite) SetupSuite() {
	s.ctx = context.Background()
}

func (s *AuthHandlerSuite) TestHandler_Login() {
	s.T().Run("valid credentials - 200 with bearer token", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		expectedReq := &models.LoginRequest{Username: "admin", Password: "password123"}
		mockService.EXPECT().Login(gomock.Any(), expectedReq).Return(&models.TokenResult{
			AccessToken:      "signed.jwt.token",
			TokenType:        models.TokenTypeBearer,
			ExpiresInSeconds: 86400,
		}, nil)

		status, body, header := s.doLogin(t, router, "application/json", `{"username":"admin","password":"password123"}`)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "signed.jwt.token", body["access_token"])
		assert.Equal(t, "Bearer", body["token_type"])
		assert.EqualValues(t, 86400, body["expires_in_seconds"])
		assert.Equal(t, "no-store", header.Get("Cache-Control"))
	})

	s.T().Run("username is trimmed before the service sees it", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		expectedReq := &models.LoginRequest{Username: "admin", Password: " password123"}
		mockService.EXPECT().Login(gomock.Any(), expectedReq).Return(&models.TokenResult{AccessToken: "t"}, nil)

		status, _, _ := s.doLogin(t, router, "application/json", `{"username":"  admin ","password":" password123"}`)
		assert.Equal(t, http.StatusOK, status)
	})

	s.T().Run("form encoded body is accepted", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		expectedReq := &models.LoginRequest{Username: "admin", Password: "password123"}
		mockService.EXPECT().Login(gomock.Any(), expectedReq).Return(&models.TokenResult{AccessToken: "t"}, nil)

		form := url.Values{"username": {"admin"}, "password": {"password123"}}
		status, _, _ := s.doLogin(t, router, "application/x-www-form-urlencoded", form.Encode())
		assert.Equal(t, http.StatusOK, status)
	})

	s.T().Run("wrong password - 401 with error shape", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		mockService.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeUnauthorized, "Incorrect username or password"))

		status, body, header := s.doLogin(t, router, "application/json", `{"username":"admin","password":"wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Unauthorized", body["error"])
		assert.Equal(t, "Incorrect username or password", body["message"])
		assert.Equal(t, "/auth/login", body["path"])
		assert.NotEmpty(t, body["timestamp"])
		assert.Equal(t, "Bearer", header.Get("WWW-Authenticate"))
	})

	s.T().Run("malformed json - 400 without calling service", func(t *testing.T) {
		_, router := s.newHandler(t)
		status, body, _ := s.doLogin(t, router, "application/json", `{"username":`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Bad request", body["error"])
	})

	s.T().Run("missing password - 400 validation error", func(t *testing.T) {
		_, router := s.newHandler(t)
		status, body, _ := s.doLogin(t, router, "application/json", `{"username":"admin"}`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Validation error", body["error"])
		assert.Equal(t, "password is required", body["message"])
	})

	s.T().Run("internal error never leaks cause", func(t *testing.T) {
		mockService, router := s.newHandler(t)
		mockService.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.Wrap(io.ErrUnexpectedEOF, dErrors.CodeInternal, "verify credentials"))

		status, body, _ := s.doLogin(t, router, "application/json", `{"username":"admin","password":"x"}`)
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "An unexpected error occurred", body["message"])
	})
}

func (s *AuthHandlerSuite) TestHandler_Me() {
	s.T().Run("returns the verified subject", func(t *testing.T) {
		_, router := s.newHandler(t)
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req = req.WithContext(requestcontext.WithSubject(req.Context(), "admin"))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var got models.CurrentUser
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "admin", got.Username)
		assert.True(t, got.Authenticated)
	})

	s.T().Run("no subject - 401", func(t *testing.T) {
		_, router := s.newHandler(t)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func (s *AuthHandlerSuite) newHandler(t *testing.T) (*mocks.MockService, *chi.Mux) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	mockService := mocks.NewMockService(ctrl)
	handler := New(mockService, logger)
	r := chi.NewRouter()
	handler.Register(r)
	handler.RegisterProtected(r)
	return mockService, r
}

func (s *AuthHandlerSuite) doLogin(t *testing.T, router *chi.Mux, contentType, body string) (int, map[string]any, http.Header) {
	t.Helper()
	httpReq := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	httpReq.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, httpReq)

	raw, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	var res map[string]any
	require.NoError(t, json.Unmarshal(raw, &res))
	return rr.Code, res, rr.Header()
}
