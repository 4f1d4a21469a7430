// Package metrics exposes Prometheus instrumentation for the server: an
// HTTP request counter/histogram pair and a conversion counter fed by the
// audit pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the process registry and the collectors wired into it.
type Metrics struct {
	registry *prometheus.Registry

	Requests    *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
	Conversions *prometheus.CounterVec
}

// New creates a Metrics with its own registry so tests can instantiate it
// repeatedly without collector collisions.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relata_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "status"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "relata_http_request_duration_seconds",
				Help: "Duration of HTTP requests",
			},
			[]string{"method"},
		),
		Conversions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relata_conversions_total",
				Help: "Total number of triggered funnel conversions",
			},
			[]string{"from_pipeline", "to_pipeline"},
		),
	}

	m.registry.MustRegister(m.Requests, m.Duration, m.Conversions)
	return m
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// statusRecorder captures the response status code for labelling.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.code = code
	sr.ResponseWriter.WriteHeader(code)
}

// Middleware returns HTTP middleware that records request count and
// duration.
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sr := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
			next.ServeHTTP(sr, r)
			m.Requests.WithLabelValues(r.Method, strconv.Itoa(sr.code)).Inc()
			m.Duration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
		})
	}
}
