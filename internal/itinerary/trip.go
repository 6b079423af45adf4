package itinerary

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tourdesk/quote-service/internal/money"
)

// Trip is the quotation aggregate: a travel context and an ordered list of
// selections. Totals are always derived from the selections.
type Trip struct {
	ID   string
	Name string

	ctx        TripContext
	markup     decimal.Decimal
	selections []*ServiceSelection
}

// NewTrip validates tc and creates an empty trip. The trip markup is
// tc.MarkupFactor when set, otherwise defaultMarkup.
func NewTrip(id, name string, tc TripContext, defaultMarkup decimal.Decimal) (*Trip, error) {
	base, err := money.ParseCurrency(tc.BaseCurrency)
	if err != nil {
		return nil, &InvalidTripError{Field: "baseCurrency", Reason: err.Error()}
	}
	tc.BaseCurrency = base
	if tc.StartDate.IsZero() || tc.EndDate.IsZero() {
		return nil, &InvalidTripError{Field: "dates", Reason: "start and end date are required"}
	}
	tc.StartDate, tc.EndDate = Date(tc.StartDate), Date(tc.EndDate)
	if tc.EndDate.Before(tc.StartDate) {
		return nil, &InvalidTripError{Field: "dates", Reason: "end date is before start date"}
	}
	if tc.Adults < 0 || tc.Children < 0 {
		return nil, &InvalidTripError{Field: "passengers", Reason: "counts must not be negative"}
	}

	markup := defaultMarkup
	if tc.MarkupFactor.Valid {
		markup = tc.MarkupFactor.Decimal
	}
	if !markup.IsPositive() {
		return nil, &InvalidTripError{Field: "markupFactor", Reason: "must be positive"}
	}

	return &Trip{
		ID:         id,
		Name:       name,
		ctx:        tc,
		markup:     markup,
		selections: make([]*ServiceSelection, 0),
	}, nil
}

// Context returns the trip context.
func (t *Trip) Context() TripContext { return t.ctx }

// BaseCurrency returns the currency totals are expressed in.
func (t *Trip) BaseCurrency() string { return t.ctx.BaseCurrency }

// Markup returns the markup factor applied to new and non-overridden selections.
func (t *Trip) Markup() decimal.Decimal { return t.markup }

// Len returns the number of selections.
func (t *Trip) Len() int { return len(t.selections) }

// Selections returns copies of the selections in insertion order.
func (t *Trip) Selections() []ServiceSelection {
	out := make([]ServiceSelection, len(t.selections))
	for i, s := range t.selections {
		out[i] = *s
	}
	return out
}

// Selection returns a copy of one selection.
func (t *Trip) Selection(id string) (ServiceSelection, bool) {
	if s, _ := t.find(id); s != nil {
		return *s, true
	}
	return ServiceSelection{}, false
}

func (t *Trip) find(id string) (*ServiceSelection, int) {
	for i, s := range t.selections {
		if s.ID == id {
			return s, i
		}
	}
	return nil, -1
}

func (t *Trip) mustFind(id string) (*ServiceSelection, error) {
	s, _ := t.find(id)
	if s == nil {
		return nil, &NotFoundError{SelectionID: id}
	}
	return s, nil
}

func (t *Trip) append(s *ServiceSelection) {
	t.selections = append(t.selections, s)
}

func (t *Trip) checkDate(d time.Time) error {
	if !t.ctx.Contains(d) {
		return &DateOutOfRangeError{Date: Date(d), Start: t.ctx.StartDate, End: t.ctx.EndDate}
	}
	return nil
}

func copyOf(s *ServiceSelection) *ServiceSelection {
	c := *s
	return &c
}

// RemoveService deletes a selection. Other selections keep their ids and order.
func (t *Trip) RemoveService(id string) error {
	_, i := t.find(id)
	if i < 0 {
		return &NotFoundError{SelectionID: id}
	}
	t.selections = slices.Delete(t.selections, i, i+1)
	return nil
}

// UpdateQuantity changes the quantity only; unit prices are unaffected.
func (t *Trip) UpdateQuantity(id string, quantity int) (*ServiceSelection, error) {
	if quantity < 1 {
		return nil, &InvalidQuantityError{Quantity: quantity}
	}
	s, err := t.mustFind(id)
	if err != nil {
		return nil, err
	}
	s.Quantity = quantity
	return copyOf(s), nil
}

// UpdateServiceDate moves a selection to another day of the trip.
func (t *Trip) UpdateServiceDate(id string, date time.Time) (*ServiceSelection, error) {
	s, err := t.mustFind(id)
	if err != nil {
		return nil, err
	}
	if err := t.checkDate(date); err != nil {
		return nil, err
	}
	s.ServiceDate = Date(date)
	return copyOf(s), nil
}

// UpdateCost replaces the captured unit cost. A selling price that was not
// overridden follows the new cost through the trip markup.
func (t *Trip) UpdateCost(id string, amount decimal.Decimal) (*ServiceSelection, error) {
	if amount.IsNegative() {
		return nil, &InvalidAmountError{Field: "costAmount", Value: amount, Reason: "must not be negative"}
	}
	s, err := t.mustFind(id)
	if err != nil {
		return nil, err
	}
	s.CostAmount = amount
	s.recomputeCost()
	if !s.PriceOverridden {
		s.SellingPrice = amount.Mul(t.markup)
	}
	return copyOf(s), nil
}

// UpdateExchangeRate replaces the cost-to-base rate. A selling price in the
// cost currency is normalised with the same rate.
func (t *Trip) UpdateExchangeRate(id string, rate decimal.Decimal) (*ServiceSelection, error) {
	if !rate.IsPositive() {
		return nil, &InvalidAmountError{Field: "exchangeRate", Value: rate, Reason: "must be positive"}
	}
	s, err := t.mustFind(id)
	if err != nil {
		return nil, err
	}
	if s.CostCurrency == t.ctx.BaseCurrency && !rate.Equal(decimal.NewFromInt(1)) {
		return nil, &InvalidAmountError{Field: "exchangeRate", Value: rate, Reason: "must be 1 for the base currency"}
	}
	s.ExchangeRate = rate
	s.recomputeCost()
	if s.SellingCurrency == s.CostCurrency {
		s.SellingRate = rate
	}
	return copyOf(s), nil
}

// ClearSellingOverride returns a selection to cost x markup in the cost currency.
func (t *Trip) ClearSellingOverride(id string) (*ServiceSelection, error) {
	s, err := t.mustFind(id)
	if err != nil {
		return nil, err
	}
	s.SellingPrice = s.CostAmount.Mul(t.markup)
	s.SellingCurrency = s.CostCurrency
	s.SellingRate = s.ExchangeRate
	s.PriceOverridden = false
	return copyOf(s), nil
}
