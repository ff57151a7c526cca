package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DNS query outcomes.
const (
	OutcomeAnswer   = "answer"
	OutcomeNoRecord = "no_record"
	OutcomeError    = "error"
)

// Metrics exposes application metrics that are safe to scrape via Prometheus.
type Metrics struct {
	registry            *prometheus.Registry
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	dnsQueries          *prometheus.CounterVec
	dnsQueryDuration    *prometheus.HistogramVec
}

// New creates a fresh Metrics registry with HTTP and DNS metrics registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "radiodns",
		Name:      "http_requests_total",
		Help:      "Count of HTTP requests processed by the lookup API",
	}, []string{"method", "path", "status"})

	httpRequestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "radiodns",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests served by the lookup API",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	dnsQueries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "radiodns",
		Name:      "dns_queries_total",
		Help:      "Count of DNS queries issued, by record type and outcome",
	}, []string{"type", "outcome"})

	dnsQueryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "radiodns",
		Name:      "dns_query_duration_seconds",
		Help:      "Duration of DNS queries including retries",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"type"})

	registry.MustRegister(
		httpRequests,
		httpRequestDuration,
		dnsQueries,
		dnsQueryDuration,
	)

	return &Metrics{
		registry:            registry,
		httpRequests:        httpRequests,
		httpRequestDuration: httpRequestDuration,
		dnsQueries:          dnsQueries,
		dnsQueryDuration:    dnsQueryDuration,
	}
}

// ObserveHTTPRequest records a single HTTP request/response cycle.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := prometheus.Labels{
		"method": method,
		"path":   path,
		"status": strconv.Itoa(status),
	}
	m.httpRequests.With(labels).Inc()
	m.httpRequestDuration.With(labels).Observe(duration.Seconds())
}

// ObserveDNSQuery records one DNS query of the given record type ("CNAME", "SRV").
func (m *Metrics) ObserveDNSQuery(qtype, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dnsQueries.WithLabelValues(qtype, outcome).Inc()
	m.dnsQueryDuration.WithLabelValues(qtype).Observe(duration.Seconds())
}

// Handler exposes the Prometheus registry over HTTP.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("metrics unavailable"))
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
