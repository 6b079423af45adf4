package itinerary

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "itinerary_operations_total",
		Help: "Total number of pricing operations by operation",
	}, []string{"operation"})

	operationErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "itinerary_operation_errors_total",
		Help: "Total number of failed pricing operations by operation and error kind",
	}, []string{"operation", "kind"})

	rateLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "itinerary_exchange_rate_lookups_total",
		Help: "Exchange-rate resolutions by outcome (identity, supplied, source, missing)",
	}, []string{"outcome"})
)

// MetricsRecorder records engine metrics.
type MetricsRecorder struct{}

// NewMetricsRecorder creates a new metrics recorder.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{}
}

// RecordOperation counts one operation and, when err is set, its failure kind.
func (m *MetricsRecorder) RecordOperation(op string, err error) {
	operations.WithLabelValues(op).Inc()
	if err != nil {
		operationErrors.WithLabelValues(op, ErrorKind(err)).Inc()
	}
}

// RecordRateLookup counts how an exchange rate was resolved.
func (m *MetricsRecorder) RecordRateLookup(outcome string) {
	rateLookups.WithLabelValues(outcome).Inc()
}

// ErrorKind returns a short label for the engine error types.
func ErrorKind(err error) string {
	var (
		inactive *InactiveItemError
		missing  *MissingExchangeRateError
		notFound *NotFoundError
		quantity *InvalidQuantityError
		date     *DateOutOfRangeError
		amount   *InvalidAmountError
		trip     *InvalidTripError
	)
	switch {
	case errors.As(err, &inactive):
		return "inactive_item"
	case errors.As(err, &missing):
		return "missing_exchange_rate"
	case errors.As(err, &notFound):
		return "not_found"
	case errors.As(err, &quantity):
		return "invalid_quantity"
	case errors.As(err, &date):
		return "date_out_of_range"
	case errors.As(err, &amount):
		return "invalid_amount"
	case errors.As(err, &trip):
		return "invalid_trip"
	default:
		return "internal"
	}
}
