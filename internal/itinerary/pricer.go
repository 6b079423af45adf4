package itinerary

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/tourdesk/quote-service/internal/catalog"
	"github.com/tourdesk/quote-service/internal/fx"
	"github.com/tourdesk/quote-service/internal/money"
	"github.com/tourdesk/quote-service/internal/pkg/cuid2"
)

// Id prefixes.
const (
	SelectionIDPrefix = "sel"
	TripIDPrefix      = "quo"
)

// AddServiceOptions overrides the defaults AddService derives from the item
// and the trip. Nil fields keep the default.
type AddServiceOptions struct {
	ServiceDate  *time.Time
	Quantity     *int
	ExchangeRate *decimal.Decimal
	SellingPrice *money.Money
}

// Pricer turns catalog items into priced selections.
type Pricer struct {
	cfg     *Config
	rates   fx.RateSource
	metrics *MetricsRecorder
	logger  zerolog.Logger
}

// NewPricer creates a pricer. rates may be nil, in which case every foreign
// currency needs an explicit rate.
func NewPricer(cfg *Config, rates fx.RateSource) (*Pricer, error) {
	if cfg == nil {
		cfg = Defaults()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Pricer{
		cfg:     cfg,
		rates:   rates,
		metrics: NewMetricsRecorder(),
		logger:  log.With().Str("component", "pricer").Logger(),
	}, nil
}

// Config returns the pricing configuration.
func (p *Pricer) Config() *Config { return p.cfg }

// NewTrip creates an empty trip with a fresh id. An empty base currency
// falls back to the configured one.
func (p *Pricer) NewTrip(name string, tc TripContext) (*Trip, error) {
	if tc.BaseCurrency == "" {
		tc.BaseCurrency = p.cfg.BaseCurrency
	}
	trip, err := NewTrip(cuid2.New(TripIDPrefix), name, tc, p.cfg.MarkupFactor)
	if err == nil && trip.ctx.Days() > p.cfg.MaxTripDays {
		err = &InvalidTripError{Field: "dates", Reason: "trip is longer than the configured maximum"}
	}
	p.metrics.RecordOperation("new_trip", err)
	if err != nil {
		return nil, err
	}
	return trip, nil
}

// AddService prices item for trip and appends the selection. On any error
// the trip is left untouched.
func (p *Pricer) AddService(ctx context.Context, trip *Trip, item catalog.CatalogItem, opts AddServiceOptions) (*ServiceSelection, error) {
	sel, err := p.buildSelection(ctx, trip, item, opts)
	p.metrics.RecordOperation("add_service", err)
	if err != nil {
		p.logger.Debug().Err(err).Str("trip_id", trip.ID).Str("item_id", item.ID).Msg("Add service rejected")
		return nil, err
	}

	trip.append(sel)
	p.logger.Debug().
		Str("trip_id", trip.ID).
		Str("selection_id", sel.ID).
		Str("service_type", string(item.ServiceType)).
		Str("cost", sel.Cost().String()).
		Str("rate", sel.ExchangeRate.String()).
		Msg("Service added")
	return copyOf(sel), nil
}

func (p *Pricer) buildSelection(ctx context.Context, trip *Trip, item catalog.CatalogItem, opts AddServiceOptions) (*ServiceSelection, error) {
	if !item.IsActive {
		return nil, &InactiveItemError{ServiceType: item.ServiceType, ItemID: item.ID}
	}
	if trip.Len() >= p.cfg.MaxSelections {
		return nil, &InvalidTripError{Field: "selections", Reason: "maximum number of selections reached"}
	}
	if item.UnitPrice.IsNegative() {
		return nil, &InvalidAmountError{Field: "unitPrice", Value: item.UnitPrice, Reason: "must not be negative"}
	}
	costCurrency, err := money.ParseCurrency(item.Currency)
	if err != nil {
		return nil, &InvalidAmountError{Field: "currency", Value: item.UnitPrice, Reason: err.Error()}
	}

	quantity := 1
	if p.cfg.isHeadcount(item.ServiceType) {
		quantity = trip.ctx.Headcount()
	}
	if opts.Quantity != nil {
		if *opts.Quantity < 1 {
			return nil, &InvalidQuantityError{Quantity: *opts.Quantity}
		}
		quantity = *opts.Quantity
	}

	date := trip.ctx.StartDate
	if opts.ServiceDate != nil {
		if err := trip.checkDate(*opts.ServiceDate); err != nil {
			return nil, err
		}
		date = Date(*opts.ServiceDate)
	}

	rate, err := p.resolveRate(ctx, costCurrency, trip.ctx.BaseCurrency, opts.ExchangeRate)
	if err != nil {
		return nil, err
	}

	sel := &ServiceSelection{
		ID: cuid2.New(SelectionIDPrefix),
		Item: CatalogItemRef{
			ServiceType: item.ServiceType,
			ItemID:      item.ID,
			Name:        item.Name,
		},
		ServiceDate:     date,
		Quantity:        quantity,
		CostAmount:      item.UnitPrice,
		CostCurrency:    costCurrency,
		ExchangeRate:    rate,
		SellingPrice:    item.UnitPrice.Mul(trip.markup),
		SellingCurrency: costCurrency,
		SellingRate:     rate,
	}
	sel.recomputeCost()

	if opts.SellingPrice != nil {
		if err := p.applyOverride(ctx, trip, sel, *opts.SellingPrice); err != nil {
			return nil, err
		}
	}
	return sel, nil
}

// OverrideSellingPrice sets a manual selling price. A price in a currency
// other than the cost or base currency needs a rate from the rate source.
func (p *Pricer) OverrideSellingPrice(ctx context.Context, trip *Trip, id string, price money.Money) (*ServiceSelection, error) {
	s, err := trip.mustFind(id)
	if err == nil {
		// Work on a copy so a failed rate lookup leaves the selection as it was.
		c := *s
		if err = p.applyOverride(ctx, trip, &c, price); err == nil {
			*s = c
		}
	}
	p.metrics.RecordOperation("override_selling_price", err)
	if err != nil {
		return nil, err
	}
	return copyOf(s), nil
}

func (p *Pricer) applyOverride(ctx context.Context, trip *Trip, s *ServiceSelection, price money.Money) error {
	if price.Amount.IsNegative() {
		return &InvalidAmountError{Field: "sellingPrice", Value: price.Amount, Reason: "must not be negative"}
	}
	cur := s.CostCurrency
	if price.Currency != "" {
		var err error
		if cur, err = money.ParseCurrency(price.Currency); err != nil {
			return &InvalidAmountError{Field: "sellingCurrency", Value: price.Amount, Reason: err.Error()}
		}
	}

	var rate decimal.Decimal
	switch cur {
	case s.CostCurrency:
		rate = s.ExchangeRate
	default:
		var err error
		if rate, err = p.resolveRate(ctx, cur, trip.ctx.BaseCurrency, nil); err != nil {
			return err
		}
	}

	s.SellingPrice = price.Amount
	s.SellingCurrency = cur
	s.SellingRate = rate
	s.PriceOverridden = true
	return nil
}

// resolveRate returns the from->to rate: 1 for the same currency, the
// supplied rate when given, otherwise the rate source.
func (p *Pricer) resolveRate(ctx context.Context, from, to string, supplied *decimal.Decimal) (decimal.Decimal, error) {
	if from == to {
		p.metrics.RecordRateLookup("identity")
		return decimal.NewFromInt(1), nil
	}
	if supplied != nil {
		if !supplied.IsPositive() {
			return decimal.Decimal{}, &InvalidAmountError{Field: "exchangeRate", Value: *supplied, Reason: "must be positive"}
		}
		p.metrics.RecordRateLookup("supplied")
		return *supplied, nil
	}
	if p.rates == nil {
		p.metrics.RecordRateLookup("missing")
		return decimal.Decimal{}, &MissingExchangeRateError{From: from, To: to}
	}

	rate, err := p.rates.Rate(ctx, from, to)
	if err != nil {
		p.metrics.RecordRateLookup("missing")
		return decimal.Decimal{}, &MissingExchangeRateError{From: from, To: to, Err: err}
	}
	if !rate.IsPositive() {
		p.metrics.RecordRateLookup("missing")
		p.logger.Warn().Str("from", from).Str("to", to).Str("rate", rate.String()).Msg("Rate source returned a non-positive rate")
		return decimal.Decimal{}, &MissingExchangeRateError{From: from, To: to}
	}
	p.metrics.RecordRateLookup("source")
	return rate, nil
}
