package itinerary

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tourdesk/quote-service/internal/catalog"
)

// InactiveItemError is returned when an inactive catalog item is selected.
type InactiveItemError struct {
	ServiceType catalog.ServiceType
	ItemID      string
}

func (e *InactiveItemError) Error() string {
	return fmt.Sprintf("catalog item %s/%s is inactive", e.ServiceType, e.ItemID)
}

// MissingExchangeRateError is returned when no rate is available for a
// non-base currency. The engine never assumes 1.0.
type MissingExchangeRateError struct {
	From string
	To   string
	Err  error
}

func (e *MissingExchangeRateError) Error() string {
	msg := fmt.Sprintf("no exchange rate from %s to %s", e.From, e.To)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MissingExchangeRateError) Unwrap() error { return e.Err }

// NotFoundError is returned for an unknown selection id.
type NotFoundError struct {
	SelectionID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("selection %s not found", e.SelectionID)
}

// InvalidQuantityError is returned for quantities below 1.
type InvalidQuantityError struct {
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be at least 1, got %d", e.Quantity)
}

// DateOutOfRangeError is returned when a service date falls outside the trip.
type DateOutOfRangeError struct {
	Date  time.Time
	Start time.Time
	End   time.Time
}

func (e *DateOutOfRangeError) Error() string {
	return fmt.Sprintf("service date %s is outside the trip %s..%s",
		e.Date.Format(time.DateOnly), e.Start.Format(time.DateOnly), e.End.Format(time.DateOnly))
}

// InvalidAmountError is returned for negative prices, non-positive rates and
// rates that contradict the currencies they convert.
type InvalidAmountError struct {
	Field  string
	Value  decimal.Decimal
	Reason string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Field, e.Value, e.Reason)
}

// InvalidTripError is returned when a trip context or snapshot is inconsistent.
type InvalidTripError struct {
	Field  string
	Reason string
}

func (e *InvalidTripError) Error() string {
	return fmt.Sprintf("invalid trip %s: %s", e.Field, e.Reason)
}
