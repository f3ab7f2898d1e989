// Package metrics собирает Prometheus метрики HTTP сервера и приема check-in.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Результаты приема check-in
const (
	ResultCreated   = "created"
	ResultDuplicate = "duplicate"
	ResultRejected  = "rejected"
	ResultFailed    = "failed"
)

// Metrics набор метрик сервера на собственном registry
type Metrics struct {
	registry          *prometheus.Registry
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	activeRequests    prometheus.Gauge
	checkinsTotal     *prometheus.CounterVec
	photoBytes        prometheus.Counter
	markerCacheLookup *prometheus.CounterVec
}

// New registers all collectors on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "geocheckin_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "geocheckin_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		activeRequests: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "geocheckin_http_active_requests",
				Help: "Number of in-flight HTTP requests",
			},
		),
		checkinsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "geocheckin_checkins_total",
				Help: "Check-in submissions by result",
			},
			[]string{"result"},
		),
		photoBytes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "geocheckin_photo_bytes_total",
				Help: "Total bytes of accepted photos",
			},
		),
		markerCacheLookup: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "geocheckin_marker_cache_lookups_total",
				Help: "Marker query cache lookups by outcome",
			},
			[]string{"outcome"},
		),
	}

	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.activeRequests,
		m.checkinsTotal,
		m.photoBytes,
		m.markerCacheLookup,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// CheckinResult counts a check-in submission outcome
func (m *Metrics) CheckinResult(result string) {
	m.checkinsTotal.WithLabelValues(result).Inc()
}

// PhotoBytes adds accepted photo bytes
func (m *Metrics) PhotoBytes(n int64) {
	m.photoBytes.Add(float64(n))
}

// MarkerCache counts a marker cache hit or miss
func (m *Metrics) MarkerCache(hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.markerCacheLookup.WithLabelValues(outcome).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and latency. The path label is the
// matched mux pattern, so path parameters do not blow up cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		m.activeRequests.Inc()
		defer m.activeRequests.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		m.requestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}
