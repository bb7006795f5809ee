package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"medmcp/internal/analytics"
	"medmcp/internal/analytics/handler/mocks"
)

//go:generate mockgen -source=handler.go -destination=mocks/analytics-mocks.go -package=mocks Reporter

func newRouter(t *testing.T) (*mocks.MockReporter, *chi.Mux) {
	t.Helper()
	reporter := mocks.NewMockReporter(gomock.NewController(t))
	r := chi.NewRouter()
	New(reporter).RegisterProtected(r)
	return reporter, r
}

func get(t *testing.T, router http.Handler, path string) (int, map[string]any) {
	t.Helper()
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return rr.Code, body
}

func TestTopProcedures(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		limit  int
		status int
	}{
		{name: "default limit", query: "", limit: 10, status: http.StatusOK},
		{name: "explicit limit", query: "?limit=3", limit: 3, status: http.StatusOK},
		{name: "upper bound", query: "?limit=100", limit: 100, status: http.StatusOK},
		{name: "zero", query: "?limit=0", status: http.StatusBadRequest},
		{name: "too large", query: "?limit=101", status: http.StatusBadRequest},
		{name: "not a number", query: "?limit=ten", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reporter, router := newRouter(t)
			if tt.status == http.StatusOK {
				reporter.EXPECT().TopProcedures(tt.limit).Return([]analytics.ProcedureCount{{ProcedureCode: "MRI001", Count: 4}})
			}

			status, body := get(t, router, "/analytics/procedures/top"+tt.query)
			assert.Equal(t, tt.status, status)
			if tt.status == http.StatusOK {
				assert.Len(t, body["top_procedures"], 1)
			} else {
				assert.Equal(t, "limit must be an integer between 1 and 100", body["message"])
			}
		})
	}
}

func TestDailyTrends(t *testing.T) {
	reporter, router := newRouter(t)
	reporter.EXPECT().DailyTrends(30).Return(analytics.Trends{PeriodDays: 30, Trends: map[string]analytics.DailyStats{
		"2025-03-14": {Claims: 2},
	}})

	status, body := get(t, router, "/analytics/trends/daily")
	assert.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 30, body["period_days"])
	assert.Contains(t, body["trends"], "2025-03-14")

	status, _ = get(t, router, "/analytics/trends/daily?days=366")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSchemes(t *testing.T) {
	reporter, router := newRouter(t)
	reporter.EXPECT().SchemeStatistics("gems").Return(map[string]analytics.SchemeStats{"gems": {TotalClaims: 1, TotalAmount: 200}})

	status, body := get(t, router, "/analytics/schemes?scheme_name=GEMS")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body["scheme_statistics"], "gems")
}

func TestDashboardAndRates(t *testing.T) {
	reporter, router := newRouter(t)
	reporter.EXPECT().Dashboard().Return(analytics.Dashboard{Overview: analytics.Overview{TotalClaims: 3}})
	reporter.EXPECT().ApprovalRates().Return(analytics.ApprovalRates{Claims: analytics.Rate{Total: 4, Approved: 3, ApprovalRate: 75}})
	reporter.EXPECT().HealthMetrics().Return(analytics.HealthMetrics{PopulationMetrics: analytics.PopulationMetrics{TotalPatientsServed: 2}})

	status, body := get(t, router, "/analytics/dashboard")
	assert.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 3, body["overview"].(map[string]any)["total_claims"])

	status, body = get(t, router, "/analytics/approval-rates")
	assert.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 75, body["claims"].(map[string]any)["approval_rate"])

	status, body = get(t, router, "/analytics/health-metrics")
	assert.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, body["population_metrics"].(map[string]any)["total_patients_served"])
}
