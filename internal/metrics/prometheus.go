// internal/metrics/prometheus.go
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "endpoint", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations.",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)
	importRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_import_runs_total",
			Help: "Import pipeline runs by kind and final status.",
		},
		[]string{"kind", "status"},
	)
	importRecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_import_records_total",
			Help: "Products handled by import pipelines by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)
	importRunDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_import_run_duration_seconds",
			Help:    "Duration of import pipeline runs.",
			Buckets: []float64{0.5, 1, 5, 15, 30, 60, 120, 300},
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(importRunsTotal)
	prometheus.MustRegister(importRecordsTotal)
	prometheus.MustRegister(importRunDuration)
}

// RecordRequest records one served HTTP request.
func RecordRequest(method, endpoint string, statusCode int, duration time.Duration) {
	status := classifyStatus(statusCode)
	httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
}

// RecordImportRun records a finished pipeline run and its per-record counts.
func RecordImportRun(kind, status string, imported, failed int, duration time.Duration) {
	importRunsTotal.WithLabelValues(kind, status).Inc()
	importRunDuration.WithLabelValues(kind).Observe(duration.Seconds())
	if imported > 0 {
		importRecordsTotal.WithLabelValues(kind, "imported").Add(float64(imported))
	}
	if failed > 0 {
		importRecordsTotal.WithLabelValues(kind, "failed").Add(float64(failed))
	}
}

func classifyStatus(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	case statusCode >= 500 && statusCode < 600:
		return "5xx"
	}
	return "unknown"
}

func Handler() http.Handler {
	return promhttp.Handler()
}
