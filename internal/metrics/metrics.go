package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Export outcomes.
const (
	OutcomeHit               = "hit"
	OutcomeMiss              = "miss"
	OutcomeInvalidMethod     = "invalid_method"
	OutcomeBadWindow         = "bad_window"
	OutcomeCollaboratorError = "collaborator_error"
)

// Metrics holds the Prometheus collectors for the exporter. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration prometheus.Histogram
	Features prometheus.Counter
	registry *prometheus.Registry
}

// New creates the collectors on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "geo_export_requests_total",
				Help: "Export requests by outcome",
			},
			[]string{"outcome"},
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "geo_export_duration_seconds",
				Help:    "Time spent handling an export request",
				Buckets: prometheus.DefBuckets,
			},
		),
		Features: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "geo_export_features_total",
				Help: "Features written into published artifacts",
			},
		),
		registry: registry,
	}

	registry.MustRegister(m.Requests, m.Duration, m.Features)
	return m
}

// Observe records the outcome and latency of one request.
func (m *Metrics) Observe(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(outcome).Inc()
	m.Duration.Observe(seconds)
}

// AddFeatures counts features written to a new artifact.
func (m *Metrics) AddFeatures(n int) {
	if m == nil {
		return
	}
	m.Features.Add(float64(n))
}

// Handler returns the Prometheus exposition handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
