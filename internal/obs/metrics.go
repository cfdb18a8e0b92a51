package obs

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Reasons recorded by staffly_access_denied_total.
const (
	DenyNoToken      = "no_token"
	DenyInvalidToken = "invalid_token"
	DenyRole         = "role"
	DenyNotOwner     = "not_owner"
)

// Metrics holds the service collectors in their own registry so several
// servers (and tests) can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	inFlight     prometheus.Gauge
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	tokensIssued prometheus.Counter
	denied       *prometheus.CounterVec
}

// NewMetrics registers the HTTP and domain collectors plus Go runtime stats.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_in_flight_requests",
			Help: "In-flight HTTP requests.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		tokensIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "staffly_tokens_issued_total",
			Help: "Access tokens issued.",
		}),
		denied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "staffly_access_denied_total",
			Help: "Requests refused by authentication or authorization.",
		}, []string{"reason"}),
	}
	m.registry.MustRegister(
		m.inFlight, m.requests, m.duration, m.tokensIssued, m.denied,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) TokenIssued() {
	if m != nil {
		m.tokensIssued.Inc()
	}
}

func (m *Metrics) AccessDenied(reason string) {
	if m != nil {
		m.denied.WithLabelValues(reason).Inc()
	}
}

// Instrument records RPS, latency, and in-flight requests. The route label is
// the matched ServeMux pattern, so path parameters do not explode cardinality.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.inFlight.Inc()
		defer m.inFlight.Dec()
		start := time.Now()

		sw := NewStatusWriter(w)
		next.ServeHTTP(sw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(sw.Status())
		m.duration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
		m.requests.WithLabelValues(r.Method, route, status).Inc()
	})
}

// StatusWriter remembers the status code written through it.
type StatusWriter struct {
	http.ResponseWriter
	code int
}

func NewStatusWriter(w http.ResponseWriter) *StatusWriter {
	return &StatusWriter{ResponseWriter: w, code: http.StatusOK}
}

func (w *StatusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *StatusWriter) Status() int { return w.code }

func (w *StatusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
