package itinerary

import (
	"github.com/shopspring/decimal"

	"github.com/tourdesk/quote-service/internal/catalog"
	"github.com/tourdesk/quote-service/internal/money"
)

// Config holds the pricing rules of the engine.
// It is loaded from the "pricing" section of the service configuration.
type Config struct {
	// Multiplier applied to cost to derive the default selling price.
	MarkupFactor decimal.Decimal `mapstructure:"markup_factor"`

	// Currency new trips are priced in when the caller does not choose one.
	BaseCurrency string `mapstructure:"base_currency"`

	// Service types whose default quantity is the passenger count.
	HeadcountServiceTypes []catalog.ServiceType `mapstructure:"headcount_service_types"`

	// Limits
	MaxTripDays   int `mapstructure:"max_trip_days"`
	MaxSelections int `mapstructure:"max_selections"`
}

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		MarkupFactor:          decimal.RequireFromString("1.2"),
		BaseCurrency:          "EUR",
		HeadcountServiceTypes: []catalog.ServiceType{catalog.ServiceEntranceFee, catalog.ServiceRestaurant},
		MaxTripDays:           90,
		MaxSelections:         500,
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if !c.MarkupFactor.IsPositive() {
		return ErrInvalidConfig{Field: "markup_factor", Reason: "must be positive"}
	}
	if _, err := money.ParseCurrency(c.BaseCurrency); err != nil {
		return ErrInvalidConfig{Field: "base_currency", Reason: err.Error()}
	}
	for _, st := range c.HeadcountServiceTypes {
		if !catalog.IsValidServiceType(string(st)) {
			return ErrInvalidConfig{Field: "headcount_service_types", Reason: "unknown service type " + string(st)}
		}
	}
	if c.MaxTripDays < 1 {
		return ErrInvalidConfig{Field: "max_trip_days", Reason: "must be at least 1"}
	}
	if c.MaxSelections < 1 {
		return ErrInvalidConfig{Field: "max_selections", Reason: "must be at least 1"}
	}
	return nil
}

func (c *Config) isHeadcount(st catalog.ServiceType) bool {
	for _, h := range c.HeadcountServiceTypes {
		if h == st {
			return true
		}
	}
	return false
}

// ErrInvalidConfig is returned when the configuration is invalid.
type ErrInvalidConfig struct {
	Field  string
	Reason string
}

func (e ErrInvalidConfig) Error() string {
	return e.Field + ": " + e.Reason
}
