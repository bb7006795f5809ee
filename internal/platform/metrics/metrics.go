// Package metrics owns the process Prometheus registry served on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the registry every component registers into, plus the
// process-wide gauges.
type Metrics struct {
	Registry *prometheus.Registry

	BuildInfo        *prometheus.GaugeVec
	SchemeConnectors *prometheus.GaugeVec
}

// New creates a registry with Go runtime and process collectors attached.
func New(version string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		Registry: reg,
		BuildInfo: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "medmcp_build_info",
			Help: "Build information, value is always 1",
		}, []string{"version"}),
		SchemeConnectors: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "medmcp_scheme_connectors",
			Help: "Registered scheme connectors by mode (mock or live)",
		}, []string{"scheme", "mode"}),
	}
	m.BuildInfo.WithLabelValues(version).Set(1)
	return m
}

// SetSchemeConnector marks a connector as registered in the given mode.
func (m *Metrics) SetSchemeConnector(scheme, mode string) {
	m.SchemeConnectors.WithLabelValues(scheme, mode).Set(1)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
