package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"medmcp/internal/audit"
	"medmcp/internal/fhir/client"
	"medmcp/internal/fhir/workflow"
	"medmcp/internal/openemr"
	dErrors "medmcp/pkg/domain-errors"
)

type mockDirectory struct {
	mock.Mock
}

func (m *mockDirectory) BaseURL() string {
	return "https://hapi.fhir.org/baseR4"
}

func (m *mockDirectory) SearchPatients(ctx context.Context, q client.PatientQuery) ([]client.PatientSummary, error) {
	args := m.Called(ctx, q)
	patients, _ := args.Get(0).([]client.PatientSummary)
	return patients, args.Error(1)
}

func (m *mockDirectory) GetPatient(ctx context.Context, id string) (map[string]any, error) {
	args := m.Called(ctx, id)
	patient, _ := args.Get(0).(map[string]any)
	return patient, args.Error(1)
}

func (m *mockDirectory) Metadata(ctx context.Context) (*client.CapabilityStatement, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).(*client.CapabilityStatement)
	return cs, args.Error(1)
}

type mockClinic struct {
	mock.Mock
}

func (m *mockClinic) Patients(ctx context.Context, limit int) ([]openemr.Patient, error) {
	args := m.Called(ctx, limit)
	patients, _ := args.Get(0).([]openemr.Patient)
	return patients, args.Error(1)
}

func (m *mockClinic) TestConnection(ctx context.Context) openemr.ConnectionStatus {
	return m.Called(ctx).Get(0).(openemr.ConnectionStatus)
}

type mockVisits struct {
	mock.Mock
}

func (m *mockVisits) PatientLookup(ctx context.Context, req *workflow.LookupRequest) *workflow.LookupResult {
	res, _ := m.Called(ctx, req).Get(0).(*workflow.LookupResult)
	return res
}

func (m *mockVisits) CompleteVisit(ctx context.Context, req *workflow.VisitRequest) (*workflow.VisitResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*workflow.VisitResult)
	return res, args.Error(1)
}

type fixture struct {
	dir    *mockDirectory
	clinic *mockClinic
	visits *mockVisits
	sink   *audit.InMemorySink
	router http.Handler
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{dir: &mockDirectory{}, clinic: &mockClinic{}, visits: &mockVisits{}, sink: audit.NewInMemorySink()}
	h := New(f.dir, f.clinic, f.visits, audit.NewPublisher(f.sink), slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	h.RegisterProtected(r)
	f.router = r
	t.Cleanup(func() {
		f.dir.AssertExpectations(t)
		f.clinic.AssertExpectations(t)
		f.visits.AssertExpectations(t)
	})
	return f
}

func setup(t *testing.T) (*mockDirectory, *audit.InMemorySink, http.Handler) {
	t.Helper()
	f := newFixture(t)
	return f.dir, f.sink, f.router
}

var connected = openemr.ConnectionStatus{
	Status:        openemr.StatusConnected,
	Message:       "Successfully connected to OpenEMR",
	BaseURL:       openemr.DefaultBaseURL,
	Authenticated: true,
}

func get(t *testing.T, h http.Handler, path string) (int, map[string]any) {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return rr.Code, body
}

func post(t *testing.T, h http.Handler, path, payload string) (int, map[string]any) {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rr, req)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return rr.Code, body
}

func TestSearchPatients(t *testing.T) {
	dir, sink, h := setup(t)
	dir.On("SearchPatients", mock.Anything, client.PatientQuery{Name: "smith", Count: 5}).
		Return([]client.PatientSummary{{ID: "1", Name: "John Smith"}}, nil)

	status, body := get(t, h, "/fhir/patients/search?name=smith&limit=5")
	assert.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["total"])
	assert.Equal(t, "smith", body["query"])
	assert.Equal(t, "HAPI FHIR", body["source"])

	entries := sink.Filter(audit.EventFHIRAccess)
	require.Len(t, entries, 1)
	assert.Equal(t, "search_patients", entries[0].Action)
	assert.True(t, entries[0].Success)
}

func TestSearchPatientsRejectsBadLimit(t *testing.T) {
	_, _, h := setup(t)
	status, body := get(t, h, "/fhir/patients/search?limit=0")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "limit must be an integer between 1 and 100", body["message"])
}

func TestGetPatient(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		dir, _, h := setup(t)
		dir.On("GetPatient", mock.Anything, "592912").Return(map[string]any{"resourceType": "Patient", "id": "592912"}, nil)

		status, body := get(t, h, "/fhir/patients/592912")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "592912", body["patient"].(map[string]any)["id"])
	})

	t.Run("missing patient - 404 and failed audit", func(t *testing.T) {
		dir, sink, h := setup(t)
		dir.On("GetPatient", mock.Anything, "nope").Return(nil, dErrors.New(dErrors.CodeNotFound, "Patient not found: nope"))

		status, body := get(t, h, "/fhir/patients/nope")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Patient not found: nope", body["message"])

		entries := sink.Entries()
		require.Len(t, entries, 1)
		assert.False(t, entries[0].Success)
		assert.Equal(t, "nope", *entries[0].ResourceID)
	})

	t.Run("server down - 503", func(t *testing.T) {
		dir, _, h := setup(t)
		dir.On("GetPatient", mock.Anything, "1").Return(nil, dErrors.New(dErrors.CodeUnavailable, "FHIR server unreachable"))

		status, _ := get(t, h, "/fhir/patients/1")
		assert.Equal(t, http.StatusServiceUnavailable, status)
	})
}

func TestIntegrationTest(t *testing.T) {
	t.Run("connected", func(t *testing.T) {
		f := newFixture(t)
		f.dir.On("Metadata", mock.Anything).Return(&client.CapabilityStatement{FHIRVersion: "4.0.1"}, nil)
		f.dir.On("SearchPatients", mock.Anything, client.PatientQuery{Count: 1}).Return([]client.PatientSummary{{ID: "1"}}, nil)
		f.clinic.On("TestConnection", mock.Anything).Return(connected)

		status, body := get(t, f.router, "/fhir/integration/test")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, true, body["integration_ready"])
		fhir := body["fhir"].(map[string]any)
		assert.Equal(t, "connected", fhir["status"])
		assert.Equal(t, "4.0.1", fhir["fhir_version"])
		clinic := body["openemr"].(map[string]any)
		assert.Equal(t, "connected", clinic["status"])
		assert.Equal(t, "http://localhost:8300", clinic["base_url"])
	})

	t.Run("clinic down is not ready", func(t *testing.T) {
		f := newFixture(t)
		f.dir.On("Metadata", mock.Anything).Return(&client.CapabilityStatement{FHIRVersion: "4.0.1"}, nil)
		f.dir.On("SearchPatients", mock.Anything, client.PatientQuery{Count: 1}).Return([]client.PatientSummary{{ID: "1"}}, nil)
		f.clinic.On("TestConnection", mock.Anything).Return(openemr.ConnectionStatus{
			Status:  openemr.StatusError,
			Message: "Failed to connect to OpenEMR: OpenEMR unreachable",
			BaseURL: openemr.DefaultBaseURL,
		})

		_, body := get(t, f.router, "/fhir/integration/test")
		assert.Equal(t, false, body["integration_ready"])
		assert.Equal(t, "connected", body["fhir"].(map[string]any)["status"])
		clinic := body["openemr"].(map[string]any)
		assert.Equal(t, "error", clinic["status"])
		assert.Equal(t, false, clinic["authenticated"])
	})

	t.Run("empty server", func(t *testing.T) {
		f := newFixture(t)
		f.dir.On("Metadata", mock.Anything).Return(&client.CapabilityStatement{FHIRVersion: "4.0.1"}, nil)
		f.dir.On("SearchPatients", mock.Anything, mock.Anything).Return([]client.PatientSummary{}, nil)
		f.clinic.On("TestConnection", mock.Anything).Return(connected)

		_, body := get(t, f.router, "/fhir/integration/test")
		assert.Equal(t, "no_data", body["fhir"].(map[string]any)["status"])
		assert.Equal(t, false, body["integration_ready"])
	})

	t.Run("unreachable", func(t *testing.T) {
		f := newFixture(t)
		f.dir.On("Metadata", mock.Anything).Return(nil, dErrors.New(dErrors.CodeUnavailable, "FHIR server unreachable"))
		f.clinic.On("TestConnection", mock.Anything).Return(connected)

		status, body := get(t, f.router, "/fhir/integration/test")
		assert.Equal(t, http.StatusOK, status)
		fhir := body["fhir"].(map[string]any)
		assert.Equal(t, "error", fhir["status"])
		assert.Equal(t, "FHIR server unreachable", fhir["error"])
		assert.Equal(t, false, body["integration_ready"])
	})
}

func TestPatientLookup(t *testing.T) {
	t.Run("defaults to the fhir scheme", func(t *testing.T) {
		f := newFixture(t)
		f.visits.On("PatientLookup", mock.Anything, &workflow.LookupRequest{MemberID: "DISC123456", SchemeName: "fhir"}).
			Return(&workflow.LookupResult{
				MemberID:    "DISC123456",
				SchemeName:  "fhir",
				OpenEMRData: &workflow.ClinicData{Error: "OpenEMR unreachable"},
			})

		status, body := post(t, f.router, "/fhir/workflow/patient-lookup", `{"member_id":" DISC123456 "}`)
		assert.Equal(t, http.StatusOK, status)
		assert.Nil(t, body["fhir_data"])
		assert.Equal(t, "OpenEMR unreachable", body["openemr_data"].(map[string]any)["error"])
		assert.Nil(t, body["integrated_profile"])
	})

	t.Run("member id required", func(t *testing.T) {
		f := newFixture(t)
		status, _ := post(t, f.router, "/fhir/workflow/patient-lookup", `{"scheme_name":"fhir"}`)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestCompleteVisit(t *testing.T) {
	payload := `{"member_id":"DISC123456","provider_id":"PR-1","procedures":[{"code":"cons001","name":"General Consultation","cost":500}]}`

	t.Run("completed", func(t *testing.T) {
		f := newFixture(t)
		f.visits.On("CompleteVisit", mock.Anything, mock.MatchedBy(func(r *workflow.VisitRequest) bool {
			return r.SchemeName == "fhir" && r.Procedures[0].Code == "CONS001"
		})).Return(&workflow.VisitResult{
			MemberID:  "DISC123456",
			Steps:     []string{"Looking up patient in clinic system", "Visit workflow complete"},
			Completed: true,
		}, nil)

		status, body := post(t, f.router, "/fhir/workflow/complete-visit", payload)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, true, body["completed"])
		assert.Len(t, body["steps"], 2)
	})

	t.Run("clinic unavailable - 503", func(t *testing.T) {
		f := newFixture(t)
		f.visits.On("CompleteVisit", mock.Anything, mock.Anything).
			Return(nil, dErrors.New(dErrors.CodeUnavailable, "OpenEMR is temporarily unavailable"))

		status, body := post(t, f.router, "/fhir/workflow/complete-visit", payload)
		assert.Equal(t, http.StatusServiceUnavailable, status)
		assert.Equal(t, "OpenEMR is temporarily unavailable", body["message"])
	})

	t.Run("procedures required", func(t *testing.T) {
		f := newFixture(t)
		status, body := post(t, f.router, "/fhir/workflow/complete-visit", `{"member_id":"M1","provider_id":"P1","procedures":[]}`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "procedures must be at least 1", body["message"])
	})
}

func TestClinicPatients(t *testing.T) {
	t.Run("listed and audited", func(t *testing.T) {
		f := newFixture(t)
		f.clinic.On("Patients", mock.Anything, 5).
			Return([]openemr.Patient{{ID: "1", Name: "Thandi Mokoena", InsuranceID: "DISC123456"}}, nil)

		status, body := get(t, f.router, "/fhir/openemr/patients?limit=5")
		assert.Equal(t, http.StatusOK, status)
		assert.EqualValues(t, 1, body["total"])
		assert.Equal(t, "OpenEMR Local", body["source"])
		first := body["patients"].([]any)[0].(map[string]any)
		assert.Equal(t, "DISC123456", first["insurance_id"])

		entries := f.sink.Filter(audit.EventFHIRAccess)
		require.Len(t, entries, 1)
		assert.Equal(t, "list_clinic_patients", entries[0].Action)
	})

	t.Run("default limit", func(t *testing.T) {
		f := newFixture(t)
		f.clinic.On("Patients", mock.Anything, 10).Return([]openemr.Patient{}, nil)

		status, body := get(t, f.router, "/fhir/openemr/patients")
		assert.Equal(t, http.StatusOK, status)
		assert.EqualValues(t, 0, body["total"])
	})

	t.Run("outage - 503 and failed audit", func(t *testing.T) {
		f := newFixture(t)
		f.clinic.On("Patients", mock.Anything, 10).Return(nil, dErrors.New(dErrors.CodeUnavailable, "OpenEMR unreachable"))

		status, _ := get(t, f.router, "/fhir/openemr/patients")
		assert.Equal(t, http.StatusServiceUnavailable, status)
		assert.False(t, f.sink.Entries()[0].Success)
	})

	t.Run("bad limit", func(t *testing.T) {
		f := newFixture(t)
		status, _ := get(t, f.router, "/fhir/openemr/patients?limit=101")
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestClinicConnection(t *testing.T) {
	f := newFixture(t)
	f.clinic.On("TestConnection", mock.Anything).Return(connected)

	status, body := get(t, f.router, "/fhir/openemr/test")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "connected", body["status"])
	assert.Equal(t, true, body["authenticated"])
}
