package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"medmcp/internal/audit"
	"medmcp/internal/fhir/client"
	"medmcp/internal/fhir/workflow"
	"medmcp/internal/openemr"
	dErrors "medmcp/pkg/domain-errors"
	"medmcp/pkg/platform/httputil"
	"medmcp/pkg/requestcontext"
)

const (
	source       = "HAPI FHIR"
	clinicSource = "OpenEMR Local"
)

// Directory is the read-only FHIR surface served over HTTP.
type Directory interface {
	BaseURL() string
	SearchPatients(ctx context.Context, q client.PatientQuery) ([]client.PatientSummary, error)
	GetPatient(ctx context.Context, id string) (map[string]any, error)
	Metadata(ctx context.Context) (*client.CapabilityStatement, error)
}

// Clinic is the OpenEMR patient list and connectivity check.
type Clinic interface {
	Patients(ctx context.Context, limit int) ([]openemr.Patient, error)
	TestConnection(ctx context.Context) openemr.ConnectionStatus
}

// Visits runs the workflows that span the clinic and the scheme.
type Visits interface {
	PatientLookup(ctx context.Context, req *workflow.LookupRequest) *workflow.LookupResult
	CompleteVisit(ctx context.Context, req *workflow.VisitRequest) (*workflow.VisitResult, error)
}

type Auditor interface {
	LogDataAccess(ctx context.Context, eventType audit.EventType, action, resourceType, resourceID string, success bool, details map[string]any) error
}

type Handler struct {
	directory Directory
	clinic    Clinic
	visits    Visits
	auditor   Auditor
	logger    *slog.Logger
}

func New(directory Directory, clinic Clinic, visits Visits, auditor Auditor, logger *slog.Logger) *Handler {
	return &Handler{directory: directory, clinic: clinic, visits: visits, auditor: auditor, logger: logger}
}

func (h *Handler) RegisterProtected(r chi.Router) {
	r.Route("/fhir", func(r chi.Router) {
		r.Get("/patients/search", h.HandleSearchPatients)
		r.Get("/patients/{patientID}", h.HandleGetPatient)
		r.Get("/integration/test", h.HandleIntegrationTest)
		r.Post("/workflow/patient-lookup", h.HandlePatientLookup)
		r.Post("/workflow/complete-visit", h.HandleCompleteVisit)
		r.Get("/openemr/patients", h.HandleClinicPatients)
		r.Get("/openemr/test", h.HandleClinicTest)
	})
}

// HandleSearchPatients implements GET /fhir/patients/search?name=&family=&birthdate=&limit=.
func (h *Handler) HandleSearchPatients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}
	query := client.PatientQuery{
		Name:      strings.TrimSpace(q.Get("name")),
		Family:    strings.TrimSpace(q.Get("family")),
		BirthDate: strings.TrimSpace(q.Get("birthdate")),
		Count:     limit,
	}

	patients, err := h.directory.SearchPatients(ctx, query)
	h.audit(ctx, "search_patients", "", err == nil, map[string]any{"results": len(patients)})
	if err != nil {
		h.fail(w, r, "search patients", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"patients": patients,
		"total":    len(patients),
		"query":    query.Name,
		"source":   source,
	})
}

func (h *Handler) HandleGetPatient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "patientID")

	patient, err := h.directory.GetPatient(ctx, id)
	h.audit(ctx, "get_patient", id, err == nil, nil)
	if err != nil {
		h.fail(w, r, "get patient", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"patient": patient,
		"source":  source,
	})
}

// HandleIntegrationTest reports whether the FHIR server answers and holds
// data and whether OpenEMR accepts our credentials. It always returns 200;
// the status fields carry the outcome.
func (h *Handler) HandleIntegrationTest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	fhir := h.fhirStatus(ctx)
	clinic := h.clinic.TestConnection(ctx)

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"fhir":              fhir,
		"openemr":           clinic,
		"integration_ready": fhir["status"] == "connected" && clinic.Status == openemr.StatusConnected,
	})
}

func (h *Handler) fhirStatus(ctx context.Context) map[string]any {
	status := map[string]any{"url": h.directory.BaseURL()}

	meta, err := h.directory.Metadata(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "fhir metadata check failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		status["status"] = "error"
		status["error"] = err.Error()
		return status
	}
	status["fhir_version"] = meta.FHIRVersion
	status["software"] = meta.Software.Name

	patients, err := h.directory.SearchPatients(ctx, client.PatientQuery{Count: 1})
	switch {
	case err != nil:
		status["status"] = "error"
		status["error"] = err.Error()
	case len(patients) == 0:
		status["status"] = "no_data"
	default:
		status["status"] = "connected"
	}
	status["test_patients"] = len(patients)
	return status
}

// HandlePatientLookup implements POST /fhir/workflow/patient-lookup. A side
// that fails is reported in its own field, so the route answers 200 once
// the body is valid.
func (h *Handler) HandlePatientLookup(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndPrepare[workflow.LookupRequest](w, r, h.logger)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.visits.PatientLookup(r.Context(), req))
}

func (h *Handler) HandleCompleteVisit(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndPrepare[workflow.VisitRequest](w, r, h.logger)
	if !ok {
		return
	}
	res, err := h.visits.CompleteVisit(r.Context(), req)
	if err != nil {
		h.fail(w, r, "complete visit", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// HandleClinicPatients implements GET /fhir/openemr/patients?limit=.
func (h *Handler) HandleClinicPatients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	patients, err := h.clinic.Patients(ctx, limit)
	h.audit(ctx, "list_clinic_patients", "", err == nil, map[string]any{"results": len(patients), "source": clinicSource})
	if err != nil {
		h.fail(w, r, "list clinic patients", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"patients": patients,
		"total":    len(patients),
		"source":   clinicSource,
	})
}

// HandleClinicTest always answers 200 with the connection status.
func (h *Handler) HandleClinicTest(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.clinic.TestConnection(r.Context()))
}

// parseLimit reads ?limit=, defaulting to 10 and allowing 1 to 100.
func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return 10, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 || v > 100 {
		httputil.WriteError(w, r, dErrors.New(dErrors.CodeValidation, "limit must be an integer between 1 and 100"))
		return 0, false
	}
	return v, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if !dErrors.HasCode(err, dErrors.CodeNotFound) {
		h.logger.ErrorContext(r.Context(), "fhir request failed",
			"operation", op,
			"error", err,
			"request_id", requestcontext.RequestID(r.Context()),
		)
	}
	httputil.WriteError(w, r, err)
}

func (h *Handler) audit(ctx context.Context, action, patientID string, success bool, details map[string]any) {
	if err := h.auditor.LogDataAccess(ctx, audit.EventFHIRAccess, action, "Patient", patientID, success, details); err != nil {
		h.logger.DebugContext(ctx, "fhir audit not persisted", "error", err)
	}
}
