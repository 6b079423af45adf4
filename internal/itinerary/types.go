// Package itinerary owns the selected services of a trip, buckets them by
// travel day and rolls cost and selling totals up into the trip base currency.
//
// A Trip is owned by the single session editing it. Nothing here locks or
// performs I/O except Pricer, which may consult an exchange-rate source.
package itinerary

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tourdesk/quote-service/internal/catalog"
	"github.com/tourdesk/quote-service/internal/money"
)

// DayType classifies a travel day.
type DayType string

const (
	DayArrival   DayType = "arrival"
	DayMiddle    DayType = "middle"
	DayDeparture DayType = "departure"
)

// TripContext carries what pricing needs to know about a trip.
type TripContext struct {
	BaseCurrency string
	StartDate    time.Time
	EndDate      time.Time
	Adults       int
	Children     int
	// Per-trip markup; when not valid the configured factor applies.
	MarkupFactor decimal.NullDecimal
}

// Days returns the number of calendar days in the trip, both ends included.
func (c TripContext) Days() int {
	return int(Date(c.EndDate).Sub(Date(c.StartDate)).Hours()/24) + 1
}

// Contains reports whether d falls inside the travel range.
func (c TripContext) Contains(d time.Time) bool {
	d = Date(d)
	return !d.Before(Date(c.StartDate)) && !d.After(Date(c.EndDate))
}

// Headcount is adults plus children, never below 1.
func (c TripContext) Headcount() int {
	return max(c.Adults+c.Children, 1)
}

// Date truncates t to its calendar day in UTC.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}

// CatalogItemRef is a lookup-only reference to the catalog item a selection
// was created from. The item may later change or disappear.
type CatalogItemRef struct {
	ServiceType catalog.ServiceType `json:"serviceType"`
	ItemID      string              `json:"itemId"`
	Name        string              `json:"name"`
}

// ServiceSelection is one line item of a trip.
type ServiceSelection struct {
	ID          string         `json:"id"`
	Item        CatalogItemRef `json:"item"`
	ServiceDate time.Time      `json:"serviceDate"`
	Quantity    int            `json:"quantity"`

	CostAmount         decimal.Decimal `json:"costAmount"`
	CostCurrency       string          `json:"costCurrency"`
	ExchangeRate       decimal.Decimal `json:"exchangeRate"`
	CostInBaseCurrency decimal.Decimal `json:"costInBaseCurrency"`

	SellingPrice    decimal.Decimal `json:"sellingPrice"`
	SellingCurrency string          `json:"sellingCurrency"`
	// Rate from SellingCurrency to the trip base currency.
	SellingRate     decimal.Decimal `json:"sellingRate"`
	PriceOverridden bool            `json:"priceOverridden"`
}

// Cost returns the captured unit cost.
func (s ServiceSelection) Cost() money.Money {
	return money.New(s.CostAmount, s.CostCurrency)
}

// Selling returns the unit selling price.
func (s ServiceSelection) Selling() money.Money {
	return money.New(s.SellingPrice, s.SellingCurrency)
}

// SellingTotal is SellingPrice x Quantity x SellingRate, in base currency.
func (s ServiceSelection) SellingTotal() decimal.Decimal {
	return s.SellingPrice.Mul(decimal.NewFromInt(int64(s.Quantity))).Mul(s.SellingRate)
}

// CostTotal is CostInBaseCurrency x Quantity.
func (s ServiceSelection) CostTotal() decimal.Decimal {
	return s.CostInBaseCurrency.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

func (s *ServiceSelection) recomputeCost() {
	s.CostInBaseCurrency = s.CostAmount.Mul(s.ExchangeRate)
}

// DayBucket groups the selections of one travel day. It is derived and never stored.
type DayBucket struct {
	DayNumber  int                `json:"dayNumber"`
	Date       time.Time          `json:"date"`
	DayType    DayType            `json:"dayType"`
	Selections []ServiceSelection `json:"selections"`
	Total      money.Money        `json:"total"`
	Cost       money.Money        `json:"cost"`
}
