// Package metrics exposes Prometheus instrumentation for the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder holds the service's collectors on its own registry.
type Recorder struct {
	registry      *prometheus.Registry
	optimisations *prometheus.CounterVec
	engineLatency *prometheus.HistogramVec
	httpRequests  *prometheus.CounterVec
}

// New creates a Recorder with a fresh registry that also carries the Go and process collectors.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &Recorder{
		registry: reg,
		optimisations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mpt_optimisations_total",
				Help: "Optimisation requests by mode and outcome",
			},
			[]string{"mode", "outcome"},
		),
		engineLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mpt_engine_request_duration_seconds",
				Help:    "Duration of calls to the optimisation engine",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mpt_http_requests_total",
				Help: "HTTP requests served",
			},
			[]string{"method", "route", "status"},
		),
	}
}

// RecordOptimisation counts one optimisation call.
func (r *Recorder) RecordOptimisation(mode, outcome string) {
	r.optimisations.WithLabelValues(mode, outcome).Inc()
}

// ObserveEngineRequest records the latency of one engine call.
func (r *Recorder) ObserveEngineRequest(outcome string, seconds float64) {
	r.engineLatency.WithLabelValues(outcome).Observe(seconds)
}

// RecordHTTPRequest counts one served request.
func (r *Recorder) RecordHTTPRequest(method, route, status string) {
	r.httpRequests.WithLabelValues(method, route, status).Inc()
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
