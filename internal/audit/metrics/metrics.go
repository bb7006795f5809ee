package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the audit publisher.
type Metrics struct {
	EntriesWritten  *prometheus.CounterVec
	WriteFailures   prometheus.Counter
	PersistDuration prometheus.Histogram
}

// New registers the audit metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EntriesWritten: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "medmcp_audit_entries_written_total",
			Help: "Audit entries durably appended, by event type",
		}, []string{"event_type"}),
		WriteFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "medmcp_audit_write_failures_total",
			Help: "Audit appends that failed and were routed to the fallback log",
		}),
		PersistDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "medmcp_audit_persist_duration_seconds",
			Help:    "Time taken to append and sync one audit entry",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
	}
}

func (m *Metrics) ObserveWrite(eventType string, seconds float64) {
	if m == nil {
		return
	}
	m.EntriesWritten.WithLabelValues(eventType).Inc()
	m.PersistDuration.Observe(seconds)
}

func (m *Metrics) IncWriteFailure() {
	if m == nil {
		return
	}
	m.WriteFailures.Inc()
}
