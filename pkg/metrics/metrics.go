// Package metrics defines the Prometheus metric collectors used across the
// checker and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the checker.
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	ComparisonsTotal     *prometheus.CounterVec
	ComparisonDuration   *prometheus.HistogramVec
	SimilarityScore      prometheus.Histogram
	VocabularySize       prometheus.Histogram
	CacheHitsTotal       prometheus.Counter
	CacheMissesTotal     prometheus.Counter
	ReportsStoredTotal   *prometheus.CounterVec
	JobsProcessedTotal   *prometheus.CounterVec
}

// New creates all collectors and registers them with the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates all collectors and registers them with reg.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed.",
			},
		),
		ComparisonsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "similarity_comparisons_total",
				Help: "Total document comparisons by source (cli, http, batch, worker).",
			},
			[]string{"source"},
		),
		ComparisonDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "similarity_comparison_duration_seconds",
				Help:    "Time spent tokenizing, vectorizing and scoring one document pair.",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"source"},
		),
		SimilarityScore: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "similarity_score",
				Help:    "Distribution of similarity scores.",
				Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
			},
		),
		VocabularySize: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "similarity_vocabulary_size",
				Help:    "Number of distinct terms per comparison.",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cache_hits_total",
				Help: "Total number of result cache hits.",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cache_misses_total",
				Help: "Total number of result cache misses.",
			},
		),
		ReportsStoredTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reports_stored_total",
				Help: "Total report persistence attempts by status.",
			},
			[]string{"status"},
		),
		JobsProcessedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compare_jobs_processed_total",
				Help: "Total compare jobs consumed from Kafka by status.",
			},
			[]string{"status"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.ComparisonsTotal,
		m.ComparisonDuration,
		m.SimilarityScore,
		m.VocabularySize,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.ReportsStoredTotal,
		m.JobsProcessedTotal,
	)

	return m
}

// ObserveComparison records one finished comparison. A nil receiver is a
// no-op so callers can run without metrics.
func (m *Metrics) ObserveComparison(source string, elapsed time.Duration, score float64, vocabularySize int) {
	if m == nil {
		return
	}
	m.ComparisonsTotal.WithLabelValues(source).Inc()
	m.ComparisonDuration.WithLabelValues(source).Observe(elapsed.Seconds())
	m.SimilarityScore.Observe(score)
	m.VocabularySize.Observe(float64(vocabularySize))
}

// Handler returns the Prometheus scrape HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
