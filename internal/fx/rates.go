// Package fx resolves exchange rates between ISO 4217 currencies.
package fx

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/tourdesk/quote-service/internal/money"
)

// ErrRateNotFound is returned when a source has no rate for a pair.
var ErrRateNotFound = errors.New("exchange rate not found")

// RateSource answers "1 unit of from = rate units of to".
type RateSource interface {
	Rate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

// PairKey is the canonical FROM_TO form used in configuration and caches.
func PairKey(from, to string) string {
	return strings.ToUpper(from) + "_" + strings.ToUpper(to)
}

// Table is an in-memory rate table. A missing pair is answered from its
// inverse when that is present.
type Table struct {
	mu    sync.RWMutex
	rates map[string]decimal.Decimal
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{rates: make(map[string]decimal.Decimal)}
}

// ParseTable builds a table from "TRY_EUR" -> "0.027" entries.
func ParseTable(entries map[string]string) (*Table, error) {
	t := NewTable()
	for key, value := range entries {
		from, to, ok := strings.Cut(strings.TrimSpace(key), "_")
		if !ok {
			return nil, fmt.Errorf("rate key %q must look like FROM_TO", key)
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("rate %s: %w", key, err)
		}
		if err := t.Set(from, to, rate); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Set stores the rate for one direction.
func (t *Table) Set(from, to string, rate decimal.Decimal) error {
	from, err := money.ParseCurrency(from)
	if err != nil {
		return err
	}
	to, err = money.ParseCurrency(to)
	if err != nil {
		return err
	}
	if !rate.IsPositive() {
		return fmt.Errorf("rate %s must be positive, got %s", PairKey(from, to), rate)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.rates[PairKey(from, to)] = rate
	return nil
}

// Len returns the number of stored pairs.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rates)
}

// Rate implements RateSource.
func (t *Table) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	if rate, ok := t.rates[PairKey(from, to)]; ok {
		return rate, nil
	}
	if inverse, ok := t.rates[PairKey(to, from)]; ok {
		return decimal.NewFromInt(1).DivRound(inverse, 10), nil
	}
	return decimal.Decimal{}, fmt.Errorf("%s: %w", PairKey(from, to), ErrRateNotFound)
}

// Chain asks each source in order and returns the first answer. Sources that
// do not know the pair are skipped; any other failure stops the chain.
type Chain []RateSource

// Rate implements RateSource.
func (c Chain) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if strings.EqualFold(from, to) {
		return decimal.NewFromInt(1), nil
	}
	for _, src := range c {
		if src == nil {
			continue
		}
		rate, err := src.Rate(ctx, from, to)
		if err == nil {
			return rate, nil
		}
		if !errors.Is(err, ErrRateNotFound) {
			return decimal.Decimal{}, err
		}
	}
	return decimal.Decimal{}, fmt.Errorf("%s: %w", PairKey(from, to), ErrRateNotFound)
}
