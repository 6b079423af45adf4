package itinerary

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tourdesk/quote-service/internal/catalog"
	"github.com/tourdesk/quote-service/internal/money"
)

// TripSnapshot is the serialisable form of a trip handed to persistence.
type TripSnapshot struct {
	ID           string              `json:"id" jsonschema:"required"`
	Name         string              `json:"name"`
	BaseCurrency string              `json:"baseCurrency" jsonschema:"required,minLength=3,maxLength=3"`
	StartDate    string              `json:"startDate" jsonschema:"required,format=date"`
	EndDate      string              `json:"endDate" jsonschema:"required,format=date"`
	Adults       int                 `json:"adults" jsonschema:"minimum=0"`
	Children     int                 `json:"children" jsonschema:"minimum=0"`
	MarkupFactor decimal.Decimal     `json:"markupFactor"`
	Selections   []SelectionSnapshot `json:"selections"`
}

// SelectionSnapshot is the flat serialisable form of one selection.
type SelectionSnapshot struct {
	ID                 string              `json:"id" jsonschema:"required"`
	ServiceType        catalog.ServiceType `json:"serviceType" jsonschema:"required"`
	ItemID             string              `json:"itemId"`
	ItemName           string              `json:"itemName"`
	ServiceDate        string              `json:"serviceDate" jsonschema:"required,format=date"`
	Quantity           int                 `json:"quantity" jsonschema:"minimum=1"`
	CostAmount         decimal.Decimal     `json:"costAmount"`
	CostCurrency       string              `json:"costCurrency"`
	ExchangeRate       decimal.Decimal     `json:"exchangeRate"`
	CostInBaseCurrency decimal.Decimal     `json:"costInBaseCurrency"`
	SellingPrice       decimal.Decimal     `json:"sellingPrice"`
	SellingCurrency    string              `json:"sellingCurrency"`
	SellingRate        decimal.Decimal     `json:"sellingRate"`
	PriceOverridden    bool                `json:"priceOverridden"`
}

// Snapshot captures the trip state.
func (t *Trip) Snapshot() TripSnapshot {
	snap := TripSnapshot{
		ID:           t.ID,
		Name:         t.Name,
		BaseCurrency: t.ctx.BaseCurrency,
		StartDate:    t.ctx.StartDate.Format(time.DateOnly),
		EndDate:      t.ctx.EndDate.Format(time.DateOnly),
		Adults:       t.ctx.Adults,
		Children:     t.ctx.Children,
		MarkupFactor: t.markup,
		Selections:   make([]SelectionSnapshot, 0, len(t.selections)),
	}
	for _, s := range t.selections {
		snap.Selections = append(snap.Selections, SelectionSnapshot{
			ID:                 s.ID,
			ServiceType:        s.Item.ServiceType,
			ItemID:             s.Item.ItemID,
			ItemName:           s.Item.Name,
			ServiceDate:        s.ServiceDate.Format(time.DateOnly),
			Quantity:           s.Quantity,
			CostAmount:         s.CostAmount,
			CostCurrency:       s.CostCurrency,
			ExchangeRate:       s.ExchangeRate,
			CostInBaseCurrency: s.CostInBaseCurrency,
			SellingPrice:       s.SellingPrice,
			SellingCurrency:    s.SellingCurrency,
			SellingRate:        s.SellingRate,
			PriceOverridden:    s.PriceOverridden,
		})
	}
	return snap
}

// FromSnapshot rebuilds a trip, checking every selection invariant.
// CostInBaseCurrency is recomputed rather than trusted.
func FromSnapshot(snap TripSnapshot) (*Trip, error) {
	start, err := ParseDate(snap.StartDate)
	if err != nil {
		return nil, &InvalidTripError{Field: "startDate", Reason: err.Error()}
	}
	end, err := ParseDate(snap.EndDate)
	if err != nil {
		return nil, &InvalidTripError{Field: "endDate", Reason: err.Error()}
	}

	trip, err := NewTrip(snap.ID, snap.Name, TripContext{
		BaseCurrency: snap.BaseCurrency,
		StartDate:    start,
		EndDate:      end,
		Adults:       snap.Adults,
		Children:     snap.Children,
	}, snap.MarkupFactor)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(snap.Selections))
	for _, ss := range snap.Selections {
		s, err := selectionFromSnapshot(trip, ss)
		if err != nil {
			return nil, err
		}
		if seen[s.ID] {
			return nil, &InvalidTripError{Field: "selections", Reason: "duplicate selection id " + s.ID}
		}
		seen[s.ID] = true
		trip.append(s)
	}
	return trip, nil
}

func selectionFromSnapshot(trip *Trip, ss SelectionSnapshot) (*ServiceSelection, error) {
	if ss.ID == "" {
		return nil, &InvalidTripError{Field: "selections", Reason: "selection id is required"}
	}
	if !catalog.IsValidServiceType(string(ss.ServiceType)) {
		return nil, &InvalidTripError{Field: "selections", Reason: "unknown service type " + string(ss.ServiceType)}
	}
	date, err := ParseDate(ss.ServiceDate)
	if err != nil {
		return nil, &InvalidTripError{Field: "serviceDate", Reason: err.Error()}
	}
	if err := trip.checkDate(date); err != nil {
		return nil, err
	}
	if ss.Quantity < 1 {
		return nil, &InvalidQuantityError{Quantity: ss.Quantity}
	}
	if ss.CostAmount.IsNegative() {
		return nil, &InvalidAmountError{Field: "costAmount", Value: ss.CostAmount, Reason: "must not be negative"}
	}
	if ss.SellingPrice.IsNegative() {
		return nil, &InvalidAmountError{Field: "sellingPrice", Value: ss.SellingPrice, Reason: "must not be negative"}
	}
	if !ss.ExchangeRate.IsPositive() {
		return nil, &InvalidAmountError{Field: "exchangeRate", Value: ss.ExchangeRate, Reason: "must be positive"}
	}
	if !ss.SellingRate.IsPositive() {
		return nil, &InvalidAmountError{Field: "sellingRate", Value: ss.SellingRate, Reason: "must be positive"}
	}
	costCurrency, err := money.ParseCurrency(ss.CostCurrency)
	if err != nil {
		return nil, &InvalidTripError{Field: "costCurrency", Reason: err.Error()}
	}
	sellingCurrency, err := money.ParseCurrency(ss.SellingCurrency)
	if err != nil {
		return nil, &InvalidTripError{Field: "sellingCurrency", Reason: err.Error()}
	}
	one := decimal.NewFromInt(1)
	if costCurrency == trip.ctx.BaseCurrency && !ss.ExchangeRate.Equal(one) {
		return nil, &InvalidAmountError{Field: "exchangeRate", Value: ss.ExchangeRate, Reason: "must be 1 for the base currency"}
	}
	if sellingCurrency == trip.ctx.BaseCurrency && !ss.SellingRate.Equal(one) {
		return nil, &InvalidAmountError{Field: "sellingRate", Value: ss.SellingRate, Reason: "must be 1 for the base currency"}
	}
	if sellingCurrency == costCurrency && !ss.SellingRate.Equal(ss.ExchangeRate) {
		return nil, &InvalidAmountError{Field: "sellingRate", Value: ss.SellingRate, Reason: "must equal exchangeRate when selling in the cost currency"}
	}

	s := &ServiceSelection{
		ID: ss.ID,
		Item: CatalogItemRef{
			ServiceType: ss.ServiceType,
			ItemID:      ss.ItemID,
			Name:        ss.ItemName,
		},
		ServiceDate:     Date(date),
		Quantity:        ss.Quantity,
		CostAmount:      ss.CostAmount,
		CostCurrency:    costCurrency,
		ExchangeRate:    ss.ExchangeRate,
		SellingPrice:    ss.SellingPrice,
		SellingCurrency: sellingCurrency,
		SellingRate:     ss.SellingRate,
		PriceOverridden: ss.PriceOverridden,
	}
	s.recomputeCost()
	return s, nil
}
