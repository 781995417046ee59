// Package metrics exposes Prometheus collectors for the HTTP API, the KPI
// cache and the ingest pipeline. All methods are safe on a nil *Metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/blaisecz/nightlog/internal/normalizer"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry          *prometheus.Registry
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
	kpiDuration       prometheus.Histogram
	ingestRecords     *prometheus.CounterVec
}

// New registers the collectors on reg, or on a fresh registry when reg is nil.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		registry: reg,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nightlog_http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nightlog_http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nightlog_kpi_cache_hits_total",
			Help: "Total KPI cache hits observed.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nightlog_kpi_cache_misses_total",
			Help: "Total KPI cache misses observed.",
		}),
		kpiDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "nightlog_kpi_compute_duration_seconds",
			Help:    "Histogram of KPI comparison durations, cache misses only.",
			Buckets: prometheus.DefBuckets,
		}),
		ingestRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nightlog_ingest_records_total",
			Help: "Normalized nights stored, by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpDuration,
		m.cacheHits,
		m.cacheMisses,
		m.kpiDuration,
		m.ingestRecords,
	)

	return m
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// Middleware records request counts and latency labelled by chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		if m == nil {
			return
		}
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}

func (m *Metrics) ObserveKPI(duration time.Duration) {
	if m == nil {
		return
	}
	m.kpiDuration.Observe(duration.Seconds())
}

// ObserveIngest counts stored nights by which fields could not be derived.
func (m *Metrics) ObserveIngest(report normalizer.Report) {
	if m == nil {
		return
	}
	m.ingestRecords.WithLabelValues("stored").Add(float64(report.Records))
	m.ingestRecords.WithLabelValues("complete").Add(float64(report.Complete))
	m.ingestRecords.WithLabelValues("duration_unparsed").Add(float64(report.DurationUnparsed))
	m.ingestRecords.WithLabelValues("date_unparsed").Add(float64(report.DateUnparsed))
	m.ingestRecords.WithLabelValues("times_unresolved").Add(float64(report.TimesUnresolved))
}
