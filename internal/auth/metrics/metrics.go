package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for login and token verification.
type Metrics struct {
	LoginAttempts      *prometheus.CounterVec
	TokensIssued       prometheus.Counter
	TokenVerifyFailure *prometheus.CounterVec
	LoginDuration      prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		LoginAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "medmcp_auth_login_attempts_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		TokensIssued: factory.NewCounter(prometheus.CounterOpts{
			Name: "medmcp_auth_tokens_issued_total",
			Help: "Access tokens issued",
		}),
		TokenVerifyFailure: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "medmcp_auth_token_verify_failures_total",
			Help: "Bearer token verification failures by reason",
		}, []string{"reason"}),
		LoginDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "medmcp_auth_login_duration_seconds",
			Help:    "Login latency including the password hash comparison",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) ObserveLogin(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.LoginAttempts.WithLabelValues(outcome).Inc()
	m.LoginDuration.Observe(seconds)
	if outcome == "success" {
		m.TokensIssued.Inc()
	}
}

func (m *Metrics) IncVerifyFailure(reason string) {
	if m == nil {
		return
	}
	m.TokenVerifyFailure.WithLabelValues(reason).Inc()
}
