package database

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuotationSummary is one row of a quotation listing
type QuotationSummary struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	BaseCurrency string          `json:"base_currency"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	Services     int             `json:"services"`
	MarkupFactor decimal.Decimal `json:"markup_factor"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// QuotationFilterOptions contains options for listing quotations
type QuotationFilterOptions struct {
	// Matches quotations whose travel range overlaps the given day
	ActiveOn *time.Time
	Limit    int
	Offset   int
}

// ExchangeRate is one stored rate observation
type ExchangeRate struct {
	ID           int64           `json:"id"`
	FromCurrency string          `json:"from_currency"`
	ToCurrency   string          `json:"to_currency"`
	Rate         decimal.Decimal `json:"rate"`
	Source       string          `json:"source"`
	EffectiveAt  time.Time       `json:"effective_at"`
}
