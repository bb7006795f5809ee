package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics mirrors the analytics counters so they can be scraped alongside
// the dashboard.
type Metrics struct {
	BenefitChecks  *prometheus.CounterVec
	Authorizations *prometheus.CounterVec
	Claims         *prometheus.CounterVec
	ClaimedAmount  *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		BenefitChecks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "medmcp_benefit_checks_total",
			Help: "Benefit checks by scheme and availability",
		}, []string{"scheme", "available"}),
		Authorizations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "medmcp_authorizations_total",
			Help: "Pre-authorisation requests by scheme and status",
		}, []string{"scheme", "status"}),
		Claims: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "medmcp_claims_total",
			Help: "Claims submitted by scheme and status",
		}, []string{"scheme", "status"}),
		ClaimedAmount: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "medmcp_claimed_amount_total",
			Help: "Sum of claimed amounts by scheme",
		}, []string{"scheme"}),
	}
}

func (m *Metrics) IncBenefitCheck(scheme string, available bool) {
	if m == nil {
		return
	}
	label := "false"
	if available {
		label = "true"
	}
	m.BenefitChecks.WithLabelValues(scheme, label).Inc()
}

func (m *Metrics) IncAuthorization(scheme, status string) {
	if m == nil {
		return
	}
	m.Authorizations.WithLabelValues(scheme, status).Inc()
}

func (m *Metrics) ObserveClaim(scheme, status string, amount float64) {
	if m == nil {
		return
	}
	m.Claims.WithLabelValues(scheme, status).Inc()
	if amount > 0 {
		m.ClaimedAmount.WithLabelValues(scheme).Add(amount)
	}
}
