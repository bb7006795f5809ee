package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Decisions              *prometheus.CounterVec
	StoreErrors            prometheus.Counter
	ActiveWindows          prometheus.Gauge
	CleanupWindowsEvicted  prometheus.Counter
	CleanupRunsTotal       *prometheus.CounterVec
	CleanupDurationSeconds prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "medmcp_ratelimit_decisions_total",
			Help: "Rate limit decisions by outcome",
		}, []string{"outcome"}),
		StoreErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "medmcp_ratelimit_store_errors_total",
			Help: "Admit checks that failed because the window store errored",
		}),
		ActiveWindows: factory.NewGauge(prometheus.GaugeOpts{
			Name: "medmcp_ratelimit_active_windows",
			Help: "Client windows currently held in memory",
		}),
		CleanupWindowsEvicted: factory.NewCounter(prometheus.CounterOpts{
			Name: "medmcp_ratelimit_cleanup_windows_evicted_total",
			Help: "Idle client windows evicted by the cleanup worker",
		}),
		CleanupRunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "medmcp_ratelimit_cleanup_runs_total",
			Help: "Total number of cleanup runs",
		}, []string{"status"}),
		CleanupDurationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name: "medmcp_ratelimit_cleanup_duration_seconds",
			Help: "Duration of cleanup runs in seconds",
		}),
	}
}

func (m *Metrics) ObserveDecision(allowed bool) {
	if m == nil {
		return
	}
	if allowed {
		m.Decisions.WithLabelValues("allowed").Inc()
		return
	}
	m.Decisions.WithLabelValues("rejected").Inc()
}

func (m *Metrics) IncStoreError() {
	if m == nil {
		return
	}
	m.StoreErrors.Inc()
}
