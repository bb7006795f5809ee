package request

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	EndpointLatency *prometheus.HistogramVec
	Responses       *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EndpointLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "medmcp_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds, by route pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		Responses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "medmcp_http_responses_total",
			Help: "HTTP responses by route pattern, method and status",
		}, []string{"endpoint", "method", "status"}),
	}
}

func (m *Metrics) ObserveEndpointLatency(endpoint string, durationSeconds float64) {
	m.EndpointLatency.WithLabelValues(endpoint).Observe(durationSeconds)
}

func (m *Metrics) ObserveResponse(endpoint, method string, status int) {
	m.Responses.WithLabelValues(endpoint, method, strconv.Itoa(status)).Inc()
}
