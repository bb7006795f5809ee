// Package openemr reads patients from a clinic's OpenEMR standard REST API.
// Calls go through a circuit breaker and authenticate with a cached
// password-grant token.
package openemr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	dErrors "medmcp/pkg/domain-errors"
	"medmcp/pkg/platform/circuit"
	"medmcp/pkg/requestcontext"
)

const (
	DefaultBaseURL  = "http://localhost:8300"
	DefaultUsername = "admin"
	DefaultPassword = "pass"

	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 4 << 20

	defaultPatientLimit = 10
	maxPatientLimit     = 100

	defaultTokenTTL = time.Hour
	// tokens are refreshed this long before the server expires them
	tokenRefreshMargin = time.Minute
)

// ErrNotFound is wrapped into the domain error returned for a 404.
var ErrNotFound = errors.New("openemr resource not found")

var errCircuitOpen = dErrors.New(dErrors.CodeUnavailable, "OpenEMR is temporarily unavailable")

type Option func(*Client)

// WithHTTPClient replaces the instrumented default client. Tests pass a
// go-vcr recorder here.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithCredentials(username, password string) Option {
	return func(c *Client) {
		if username != "" {
			c.username = username
			c.password = password
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) {
		if b != nil {
			c.breaker = b
		}
	}
}

// WithClock drives token expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

type Client struct {
	baseURL  string
	username string
	password string
	http     *http.Client
	timeout  time.Duration
	logger   *slog.Logger
	tracer   trace.Tracer
	breaker  *circuit.Breaker
	now      func() time.Time

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func New(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: DefaultUsername,
		password: DefaultPassword,
		http:     &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		timeout:  defaultTimeout,
		logger:   slog.Default(),
		tracer:   otel.Tracer("medmcp/openemr"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.breaker == nil {
		c.breaker = circuit.New("openemr")
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Patients lists up to limit patients. Limit defaults to 10 and is capped
// at 100.
func (c *Client) Patients(ctx context.Context, limit int) ([]Patient, error) {
	if limit <= 0 {
		limit = defaultPatientLimit
	}
	if limit > maxPatientLimit {
		limit = maxPatientLimit
	}
	raw, err := c.get(ctx, "Patients", "/patient?_limit="+strconv.Itoa(limit))
	if err != nil {
		return nil, err
	}
	records, err := decodeList[patientRecord](raw)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "OpenEMR returned an unreadable patient list")
	}
	patients := make([]Patient, 0, len(records))
	for _, r := range records {
		patients = append(patients, r.patient())
	}
	return patients, nil
}

func (c *Client) Patient(ctx context.Context, id string) (*Patient, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.ContainsAny(id, "/?#") {
		return nil, dErrors.New(dErrors.CodeBadRequest, "invalid patient id")
	}
	notFound := func(err error) error {
		return dErrors.Wrap(err, dErrors.CodeNotFound, fmt.Sprintf("Patient not found in OpenEMR: %s", id))
	}

	raw, err := c.get(ctx, "Patient", "/patient/"+url.PathEscape(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFound(err)
		}
		return nil, err
	}
	record, ok, err := decodeOne[patientRecord](raw)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "OpenEMR returned an unreadable patient")
	}
	if !ok {
		return nil, notFound(ErrNotFound)
	}
	p := record.patient()
	return &p, nil
}

// FindByInsuranceID scans the first 100 patients for a matching public
// patient id and returns the full record, or nil when none matches. The
// record is fetched by uuid when the list carries one.
func (c *Client) FindByInsuranceID(ctx context.Context, insuranceID string) (*Patient, error) {
	insuranceID = strings.TrimSpace(insuranceID)
	if insuranceID == "" {
		return nil, nil
	}
	patients, err := c.Patients(ctx, maxPatientLimit)
	if err != nil {
		return nil, err
	}
	for i := range patients {
		if patients[i].InsuranceID != insuranceID {
			continue
		}
		key := patients[i].UUID
		if key == "" {
			key = patients[i].ID
		}
		full, err := c.Patient(ctx, key)
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return &patients[i], nil
		}
		return full, err
	}
	return nil, nil
}

// TestConnection authenticates and lists one patient. Failures are reported
// in the status rather than returned.
func (c *Client) TestConnection(ctx context.Context) ConnectionStatus {
	status := ConnectionStatus{BaseURL: c.baseURL}
	if _, err := c.Patients(ctx, 1); err != nil {
		status.Status = StatusError
		status.Message = "Failed to connect to OpenEMR: " + err.Error()
		status.Authenticated = c.hasToken()
		return status
	}
	status.Status = StatusConnected
	status.Message = "Successfully connected to OpenEMR"
	status.Authenticated = true
	return status
}

func (c *Client) hasToken() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token != "" && c.now().Before(c.tokenExpiry)
}

func (c *Client) get(ctx context.Context, op, path string) (json.RawMessage, error) {
	if !c.breaker.Allow() {
		return nil, errCircuitOpen
	}
	raw, err := c.doGet(ctx, op, path)
	c.record(ctx, err)
	return raw, err
}

// record counts only outages against the breaker; a missing patient is a
// healthy answer.
func (c *Client) record(ctx context.Context, err error) {
	if err != nil && (dErrors.HasCode(err, dErrors.CodeUnavailable) || dErrors.HasCode(err, dErrors.CodeTimeout)) {
		if _, change := c.breaker.RecordFailure(); change.Opened {
			c.logger.WarnContext(ctx, "circuit breaker opened", "breaker", c.breaker.Name())
		}
		return
	}
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.logger.InfoContext(ctx, "circuit breaker closed", "breaker", c.breaker.Name())
	}
}

func (c *Client) doGet(ctx context.Context, op, path string) (raw json.RawMessage, err error) {
	endpoint := strings.TrimPrefix(path, "/")
	if i := strings.IndexAny(endpoint, "/?"); i >= 0 {
		endpoint = endpoint[:i]
	}
	ctx, span := c.tracer.Start(ctx, "openemr."+op, trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("openemr.endpoint", endpoint)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/apis/default/api"+path, nil)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "build openemr request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.transportError(ctx, op, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	c.logger.DebugContext(ctx, "openemr request",
		"operation", op,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		c.dropToken()
		return nil, dErrors.New(dErrors.CodeUnavailable, "OpenEMR rejected the access token")
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated:
		return nil, dErrors.New(dErrors.CodeUnavailable, fmt.Sprintf("OpenEMR returned %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, c.transportError(ctx, op, err)
	}
	return body, nil
}

// accessToken returns the cached token, authenticating when it is missing
// or about to expire.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && c.now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	payload, err := json.Marshal(map[string]string{
		"grant_type": "password",
		"username":   c.username,
		"password":   c.password,
		"scope":      "user",
	})
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "encode openemr credentials")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/apis/default/auth", bytes.NewReader(payload))
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "build openemr auth request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", c.transportError(ctx, "Authenticate", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "openemr authentication failed",
			"status", resp.StatusCode,
			"request_id", requestcontext.RequestID(ctx),
		)
		return "", dErrors.New(dErrors.CodeUnavailable, fmt.Sprintf("OpenEMR auth failed: %d", resp.StatusCode))
	}

	var tr tokenResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&tr); err != nil || tr.AccessToken == "" {
		return "", dErrors.Wrap(err, dErrors.CodeUnavailable, "OpenEMR returned an unreadable token")
	}
	ttl := defaultTokenTTL
	if tr.ExpiresIn > 0 {
		ttl = time.Duration(tr.ExpiresIn) * time.Second
	}
	c.token = tr.AccessToken
	c.tokenExpiry = c.now().Add(ttl - tokenRefreshMargin)
	c.logger.DebugContext(ctx, "openemr authenticated", "expires_in_s", int(ttl.Seconds()))
	return c.token, nil
}

func (c *Client) dropToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.tokenExpiry = time.Time{}
}

func (c *Client) transportError(ctx context.Context, op string, err error) error {
	c.logger.WarnContext(ctx, "openemr request failed",
		"operation", op,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	if errors.Is(err, context.DeadlineExceeded) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "OpenEMR did not respond in time")
	}
	return dErrors.Wrap(err, dErrors.CodeUnavailable, "OpenEMR unreachable")
}
