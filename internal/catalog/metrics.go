package catalog

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_fetch_duration_seconds",
		Help:    "Time taken to fetch a supplier collection",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"service_type", "source"})

	fetchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_fetch_errors_total",
		Help: "Total number of failed supplier collection fetches",
	}, []string{"service_type", "source"})

	invalidRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_invalid_records_total",
		Help: "Total number of supplier records skipped because they could not be mapped",
	}, []string{"service_type"})

	itemsListed = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_items_listed_count",
		Help:    "Number of catalog items returned per listing",
		Buckets: []float64{0, 1, 10, 50, 100, 500, 1000},
	}, []string{"service_type"})
)

// MetricsRecorder records catalog metrics.
type MetricsRecorder struct{}

// NewMetricsRecorder creates a new metrics recorder.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{}
}

// RecordFetch records one source fetch.
func (m *MetricsRecorder) RecordFetch(st ServiceType, source string, d time.Duration, success bool) {
	fetchDuration.WithLabelValues(string(st), source).Observe(d.Seconds())
	if !success {
		fetchErrors.WithLabelValues(string(st), source).Inc()
	}
}

// RecordInvalidRecord counts a skipped record.
func (m *MetricsRecorder) RecordInvalidRecord(st ServiceType) {
	invalidRecords.WithLabelValues(string(st)).Inc()
}

// RecordListed records the size of a listing.
func (m *MetricsRecorder) RecordListed(st ServiceType, count int) {
	itemsListed.WithLabelValues(string(st)).Observe(float64(count))
}
