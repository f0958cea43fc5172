package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// importsTotal tracks completed import requests by file format and outcome.
	importsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_imports_total",
		Help: "Total number of catalog import runs by format and status",
	}, []string{"format", "status"}) // status: completed, failed

	// importDuration tracks the time taken for a full import run.
	importDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_import_duration_seconds",
		Help:    "Time taken to process an uploaded catalog file",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
	}, []string{"format"})

	// rowsProcessed tracks per-row outcomes across all imports.
	rowsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_import_rows_total",
		Help: "Total number of catalog rows processed by outcome",
	}, []string{"outcome"}) // outcome: created, skipped, error

	// fileSize tracks the distribution of uploaded file sizes.
	fileSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_import_file_bytes",
		Help:    "Size of uploaded catalog files in bytes",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
	})

	// importsInFlight tracks imports currently being processed.
	importsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_imports_in_flight",
		Help: "Number of catalog imports currently in progress",
	})
)

// Recorder provides methods to record import metrics.
type Recorder struct{}

// NewRecorder creates a new metrics recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// RecordImport records a completed import run.
func (r *Recorder) RecordImport(format string, duration time.Duration, success bool) {
	status := "completed"
	if !success {
		status = "failed"
	}
	importsTotal.WithLabelValues(format, status).Inc()
	importDuration.WithLabelValues(format).Observe(duration.Seconds())
}

// RecordRows records per-row outcomes for an import run.
func (r *Recorder) RecordRows(created, skipped, errors int) {
	rowsProcessed.WithLabelValues("created").Add(float64(created))
	rowsProcessed.WithLabelValues("skipped").Add(float64(skipped))
	rowsProcessed.WithLabelValues("error").Add(float64(errors))
}

// RecordFileSize records the size of an uploaded file.
func (r *Recorder) RecordFileSize(bytes int64) {
	fileSize.Observe(float64(bytes))
}

// IncrementInFlight increments the in-flight import gauge.
func (r *Recorder) IncrementInFlight() {
	importsInFlight.Inc()
}

// DecrementInFlight decrements the in-flight import gauge.
func (r *Recorder) DecrementInFlight() {
	importsInFlight.Dec()
}
