package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tourdesk/quote-service/internal/fx"
	"github.com/tourdesk/quote-service/internal/money"
)

// RateStore keeps a history of exchange rates and serves the latest one.
type RateStore struct {
	pool *pgxpool.Pool
}

var _ fx.RateSource = (*RateStore)(nil)

// NewRateStore returns a store backed by pool
func NewRateStore(pool *pgxpool.Pool) *RateStore {
	return &RateStore{pool: pool}
}

// Rate returns the most recent direct rate for the pair.
func (s *RateStore) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	var raw string
	err := s.pool.QueryRow(ctx, `
		SELECT rate::text
		FROM exchange_rates
		WHERE from_currency = $1 AND to_currency = $2
		ORDER BY effective_at DESC, id DESC
		LIMIT 1
	`, from, to).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("%w: %s", fx.ErrRateNotFound, fx.PairKey(from, to))
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("error querying exchange rate: %w", err)
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid stored rate %q: %w", raw, err)
	}
	return rate, nil
}

// Record stores a new rate observation for the pair.
func (s *RateStore) Record(ctx context.Context, from, to string, rate decimal.Decimal, source string) (*ExchangeRate, error) {
	from, err := money.ParseCurrency(from)
	if err != nil {
		return nil, err
	}
	to, err = money.ParseCurrency(to)
	if err != nil {
		return nil, err
	}
	if from == to {
		return nil, fmt.Errorf("exchange rate needs two different currencies, got %s twice", from)
	}
	if !rate.IsPositive() {
		return nil, fmt.Errorf("exchange rate must be positive, got %s", rate)
	}
	if source == "" {
		source = "manual"
	}

	var (
		r   ExchangeRate
		raw string
	)
	err = s.pool.QueryRow(ctx, `
		INSERT INTO exchange_rates (from_currency, to_currency, rate, source, effective_at)
		VALUES ($1, $2, $3::numeric, $4, $5)
		RETURNING id, from_currency, to_currency, rate::text, source, effective_at
	`, from, to, rate.String(), source, time.Now()).Scan(
		&r.ID, &r.FromCurrency, &r.ToCurrency, &raw, &r.Source, &r.EffectiveAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert exchange rate: %w", err)
	}
	r.Rate = rate
	return &r, nil
}

// Latest returns the newest rate of every stored pair.
func (s *RateStore) Latest(ctx context.Context) ([]ExchangeRate, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT DISTINCT ON (from_currency, to_currency)
		       id, from_currency, to_currency, rate::text, source, effective_at
		FROM exchange_rates
		ORDER BY from_currency, to_currency, effective_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("error listing exchange rates: %w", err)
	}
	defer rows.Close()

	out := []ExchangeRate{}
	for rows.Next() {
		var (
			r   ExchangeRate
			raw string
		)
		if err := rows.Scan(&r.ID, &r.FromCurrency, &r.ToCurrency, &raw, &r.Source, &r.EffectiveAt); err != nil {
			return nil, fmt.Errorf("error scanning exchange rate: %w", err)
		}
		if r.Rate, err = decimal.NewFromString(raw); err != nil {
			return nil, fmt.Errorf("invalid stored rate %q: %w", raw, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
