// Package client is a small FHIR R4 REST client for Patient and Coverage
// lookups.
package client

import (
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
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	dErrors "medmcp/pkg/domain-errors"
	"medmcp/pkg/requestcontext"
)

const (
	DefaultBaseURL = "https://hapi.fhir.org/baseR4"
	defaultTimeout = 30 * time.Second
	mediaType      = "application/fhir+json"

	// maxBodyBytes caps how much of a FHIR response is read.
	maxBodyBytes = 4 << 20

	defaultPatientCount = 10
	maxPatientCount     = 100
)

// ErrNotFound is wrapped into the domain error returned for a 404.
var ErrNotFound = errors.New("fhir resource not found")

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

type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	logger  *slog.Logger
	tracer  trace.Tracer
}

func New(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		timeout: defaultTimeout,
		logger:  slog.Default(),
		tracer:  otel.Tracer("medmcp/fhir"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// SearchPatients runs GET Patient?name=&family=&birthdate=&_count=. Count
// defaults to 10 and is capped at 100.
func (c *Client) SearchPatients(ctx context.Context, q PatientQuery) ([]PatientSummary, error) {
	params := url.Values{}
	if q.Name != "" {
		params.Set("name", q.Name)
	}
	if q.Family != "" {
		params.Set("family", q.Family)
	}
	if q.BirthDate != "" {
		params.Set("birthdate", q.BirthDate)
	}
	count := q.Count
	if count <= 0 {
		count = defaultPatientCount
	}
	if count > maxPatientCount {
		count = maxPatientCount
	}
	params.Set("_count", strconv.Itoa(count))

	var b bundle[patientResource]
	if err := c.get(ctx, "SearchPatients", "Patient", params, &b); err != nil {
		return nil, err
	}
	patients := make([]PatientSummary, 0, len(b.Entry))
	for _, e := range b.Entry {
		patients = append(patients, e.Resource.summary())
	}
	return patients, nil
}

// GetPatient returns the raw Patient resource.
func (c *Client) GetPatient(ctx context.Context, id string) (map[string]any, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.ContainsAny(id, "/?#") {
		return nil, dErrors.New(dErrors.CodeBadRequest, "invalid patient id")
	}
	var patient map[string]any
	if err := c.get(ctx, "GetPatient", "Patient/"+url.PathEscape(id), nil, &patient); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, fmt.Sprintf("Patient not found: %s", id))
		}
		return nil, err
	}
	return patient, nil
}

// FindCoverage returns the first Coverage whose beneficiary is memberID, or
// nil when the server has none.
func (c *Client) FindCoverage(ctx context.Context, memberID string) (*Coverage, error) {
	params := url.Values{}
	params.Set("beneficiary", memberID)
	params.Set("_count", "1")

	var b bundle[Coverage]
	if err := c.get(ctx, "FindCoverage", "Coverage", params, &b); err != nil {
		return nil, err
	}
	if b.Total == 0 || len(b.Entry) == 0 {
		return nil, nil
	}
	cov := b.Entry[0].Resource
	return &cov, nil
}

// Metadata fetches the server CapabilityStatement.
func (c *Client) Metadata(ctx context.Context) (*CapabilityStatement, error) {
	var cs CapabilityStatement
	if err := c.get(ctx, "Metadata", "metadata", nil, &cs); err != nil {
		return nil, err
	}
	return &cs, nil
}

func (c *Client) get(ctx context.Context, op, path string, params url.Values, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, "fhir."+op, trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("fhir.resource", strings.SplitN(path, "/", 2)[0])))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + "/" + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "build fhir request")
	}
	req.Header.Set("Accept", mediaType)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "fhir request failed",
			"operation", op,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		if errors.Is(err, context.DeadlineExceeded) {
			return dErrors.Wrap(err, dErrors.CodeTimeout, "FHIR server did not respond in time")
		}
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "FHIR server unreachable")
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	c.logger.DebugContext(ctx, "fhir request",
		"operation", op,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return dErrors.New(dErrors.CodeUnavailable, fmt.Sprintf("FHIR server returned %d", resp.StatusCode))
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "FHIR server returned an unreadable response")
	}
	return nil
}
