package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tourdesk/quote-service/internal/catalog"
	"github.com/tourdesk/quote-service/internal/itinerary"
)

// SelectionView is one priced service line
type SelectionView struct {
	ID                 string              `json:"id" jsonschema:"required"`
	ServiceType        catalog.ServiceType `json:"serviceType" jsonschema:"required"`
	ItemID             string              `json:"itemId"`
	ItemName           string              `json:"itemName"`
	ServiceDate        string              `json:"serviceDate" jsonschema:"required,format=date"`
	Quantity           int                 `json:"quantity" jsonschema:"required,minimum=1"`
	CostAmount         decimal.Decimal     `json:"costAmount"`
	CostCurrency       string              `json:"costCurrency"`
	ExchangeRate       decimal.Decimal     `json:"exchangeRate"`
	CostInBaseCurrency decimal.Decimal     `json:"costInBaseCurrency"`
	SellingPrice       decimal.Decimal     `json:"sellingPrice"`
	SellingCurrency    string              `json:"sellingCurrency"`
	SellingRate        decimal.Decimal     `json:"sellingRate"`
	PriceOverridden    bool                `json:"priceOverridden"`
	// Line totals in the quotation base currency
	LineTotal decimal.Decimal `json:"lineTotal"`
	LineCost  decimal.Decimal `json:"lineCost"`
}

// DayView is one travel day of the itinerary
type DayView struct {
	DayNumber  int               `json:"dayNumber" jsonschema:"required,minimum=1"`
	Date       string            `json:"date" jsonschema:"required,format=date"`
	DayType    itinerary.DayType `json:"dayType" jsonschema:"required,enum=arrival,enum=middle,enum=departure"`
	Selections []SelectionView   `json:"selections" jsonschema:"required"`
	Total      decimal.Decimal   `json:"total"`
	Cost       decimal.Decimal   `json:"cost"`
}

// QuotationView is the day-by-day itinerary with totals in the base currency
type QuotationView struct {
	ID            string          `json:"id" jsonschema:"required"`
	Name          string          `json:"name"`
	BaseCurrency  string          `json:"baseCurrency" jsonschema:"required"`
	StartDate     string          `json:"startDate" jsonschema:"required,format=date"`
	EndDate       string          `json:"endDate" jsonschema:"required,format=date"`
	Adults        int             `json:"adults"`
	Children      int             `json:"children"`
	MarkupFactor  decimal.Decimal `json:"markupFactor"`
	Services      int             `json:"services"`
	Days          []DayView       `json:"days" jsonschema:"required"`
	Total         decimal.Decimal `json:"total"`
	Cost          decimal.Decimal `json:"cost"`
	Margin        decimal.Decimal `json:"margin"`
	MarginPercent decimal.Decimal `json:"marginPercent"`
}

func newSelectionView(s itinerary.ServiceSelection) SelectionView {
	return SelectionView{
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
		LineTotal:          s.SellingTotal(),
		LineCost:           s.CostTotal(),
	}
}

// NewQuotationView renders trip as its itinerary view
func NewQuotationView(trip *itinerary.Trip) QuotationView {
	tc := trip.Context()
	buckets := itinerary.BucketByDay(trip)

	view := QuotationView{
		ID:            trip.ID,
		Name:          trip.Name,
		BaseCurrency:  tc.BaseCurrency,
		StartDate:     tc.StartDate.Format(time.DateOnly),
		EndDate:       tc.EndDate.Format(time.DateOnly),
		Adults:        tc.Adults,
		Children:      tc.Children,
		MarkupFactor:  trip.Markup(),
		Services:      trip.Len(),
		Days:          make([]DayView, 0, len(buckets)),
		Total:         decimal.Zero,
		Cost:          decimal.Zero,
		MarginPercent: itinerary.MarginPercent(trip),
	}
	for _, b := range buckets {
		day := DayView{
			DayNumber:  b.DayNumber,
			Date:       b.Date.Format(time.DateOnly),
			DayType:    b.DayType,
			Selections: make([]SelectionView, 0, len(b.Selections)),
			Total:      b.Total.Amount,
			Cost:       b.Cost.Amount,
		}
		for _, s := range b.Selections {
			day.Selections = append(day.Selections, newSelectionView(s))
		}
		view.Total = view.Total.Add(b.Total.Amount)
		view.Cost = view.Cost.Add(b.Cost.Amount)
		view.Days = append(view.Days, day)
	}
	view.Margin = view.Total.Sub(view.Cost)
	return view
}
