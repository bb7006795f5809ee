package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"time"

	"medmcp/internal/app"
	"medmcp/internal/audit"
	"medmcp/internal/platform/config"
)

// TestContext holds state between test steps. Without BASE_URL each
// scenario gets its own in-process server so rate windows and the audit
// trail start empty.
type TestContext struct {
	BaseURL          string
	HTTPClient       *http.Client
	LastResponse     *http.Response
	LastResponseBody []byte
	AccessToken      string
	Username         string
	Password         string

	cfg     *config.Server
	app     *app.App
	server  *httptest.Server
	tempDir string
}

func NewTestContext() *TestContext {
	return &TestContext{
		BaseURL: os.Getenv("BASE_URL"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		Username: envOr("E2E_USERNAME", "admin"),
		Password: envOr("E2E_PASSWORD", "password123"),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// InProcess reports whether the scenario drives a server this process owns.
func (tc *TestContext) InProcess() bool {
	return tc.server != nil
}

// Start boots an in-process server unless BASE_URL points elsewhere.
func (tc *TestContext) Start(rateLimitPerMinute int) error {
	if os.Getenv("BASE_URL") != "" {
		return nil
	}
	tc.Stop()

	dir, err := os.MkdirTemp("", "medmcp-e2e-*")
	if err != nil {
		return err
	}
	tc.tempDir = dir
	tc.cfg = &config.Server{
		Env:                   "test",
		LogLevel:              "error",
		RateLimitPerMinute:    rateLimitPerMinute,
		TokenTTLSeconds:       3600,
		AuditSinkPath:         filepath.Join(dir, "audit.jsonl"),
		RateLimitBackend:      config.BackendMemory,
		JWTSigningKey:         "e2e-signing-key-0123456789abcdef",
		JWTIssuer:             "medmcp",
		AuthUsername:          tc.Username,
		AuthPassword:          tc.Password,
		FHIRBaseURL:           "http://127.0.0.1:1/fhir",
		FHIRTimeoutSeconds:    1,
		OpenEMRBaseURL:        "http://127.0.0.1:1",
		OpenEMRTimeoutSeconds: 1,
		RequestTimeoutSeconds: 10,
	}
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	a, err := app.New(context.Background(), tc.cfg, quiet, app.WithAuditFallback(quiet))
	if err != nil {
		return err
	}
	tc.app = a
	tc.server = httptest.NewServer(a.Router)
	tc.BaseURL = tc.server.URL
	return nil
}

func (tc *TestContext) Stop() {
	if tc.server != nil {
		tc.server.Close()
		tc.server = nil
	}
	if tc.app != nil {
		_ = tc.app.Close()
		tc.app = nil
	}
	if tc.tempDir != "" {
		_ = os.RemoveAll(tc.tempDir)
		tc.tempDir = ""
	}
}

func (tc *TestContext) POST(path string, body any) error {
	return tc.POSTWithHeaders(path, body, nil)
}

func (tc *TestContext) POSTWithHeaders(path string, body any, headers map[string]string) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}
	return tc.do(http.MethodPost, path, bytes.NewReader(data), headers)
}

func (tc *TestContext) GET(path string, headers map[string]string) error {
	return tc.do(http.MethodGet, path, nil, headers)
}

func (tc *TestContext) do(method, path string, body io.Reader, headers map[string]string) error {
	req, err := http.NewRequestWithContext(context.Background(), method, tc.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := tc.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	tc.LastResponse = resp
	tc.LastResponseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

// GetResponseField extracts a dotted path (e.g. "content.0.text") from the
// JSON response.
func (tc *TestContext) GetResponseField(field string) (any, error) {
	var data any
	if err := json.Unmarshal(tc.LastResponseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	for _, part := range strings.Split(field, ".") {
		switch node := data.(type) {
		case map[string]any:
			v, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field %s not found in response", field)
			}
			data = v
		case []any:
			var idx int
			if _, err := fmt.Sscanf(part, "%d", &idx); err != nil || idx < 0 || idx >= len(node) {
				return nil, fmt.Errorf("index %s out of range in %s", part, field)
			}
			data = node[idx]
		default:
			return nil, fmt.Errorf("field %s not found in response", field)
		}
	}
	return data, nil
}

func (tc *TestContext) ResponseContains(text string) bool {
	if strings.Contains(string(tc.LastResponseBody), text) {
		return true
	}
	_, err := tc.GetResponseField(text)
	return err == nil
}

// AuditEntries reads the in-process audit trail.
func (tc *TestContext) AuditEntries() ([]audit.Entry, error) {
	if tc.cfg == nil {
		return nil, fmt.Errorf("audit trail is only readable for an in-process server")
	}
	return audit.ReadEntries(tc.cfg.AuditSinkPath)
}

func (tc *TestContext) GetLastResponseStatus() int {
	if tc.LastResponse == nil {
		return 0
	}
	return tc.LastResponse.StatusCode
}

func (tc *TestContext) GetLastResponseHeader(name string) string {
	if tc.LastResponse == nil {
		return ""
	}
	return tc.LastResponse.Header.Get(name)
}

func (tc *TestContext) GetLastResponseBody() []byte {
	return tc.LastResponseBody
}

func (tc *TestContext) GetAccessToken() string {
	return tc.AccessToken
}

func (tc *TestContext) SetAccessToken(token string) {
	tc.AccessToken = token
}

func (tc *TestContext) Credentials() (string, string) {
	return tc.Username, tc.Password
}

func (tc *TestContext) AuthHeaders() map[string]string {
	if tc.AccessToken == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + tc.AccessToken}
}
