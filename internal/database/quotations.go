package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tourdesk/quote-service/internal/catalog"
	"github.com/tourdesk/quote-service/internal/itinerary"
)

// ErrQuotationNotFound is returned when no stored quotation has the given id.
var ErrQuotationNotFound = errors.New("quotation not found")

// QuotationStore persists trip snapshots.
type QuotationStore struct {
	pool *pgxpool.Pool
}

// NewQuotationStore returns a store backed by pool
func NewQuotationStore(pool *pgxpool.Pool) *QuotationStore {
	return &QuotationStore{pool: pool}
}

// Save writes the snapshot, replacing any previous version of the quotation.
// The snapshot is validated before anything is written.
func (s *QuotationStore) Save(ctx context.Context, snap itinerary.TripSnapshot) error {
	if _, err := itinerary.FromSnapshot(snap); err != nil {
		return fmt.Errorf("invalid quotation %q: %w", snap.ID, err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	_, err = tx.Exec(ctx, `
		INSERT INTO quotations (
			id, name, base_currency, start_date, end_date, adults, children,
			markup_factor, created_at, updated_at
		) VALUES ($1, $2, $3, $4::date, $5::date, $6, $7, $8::numeric, $9, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			base_currency = EXCLUDED.base_currency,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			adults = EXCLUDED.adults,
			children = EXCLUDED.children,
			markup_factor = EXCLUDED.markup_factor,
			updated_at = EXCLUDED.updated_at
	`, snap.ID, snap.Name, snap.BaseCurrency, snap.StartDate, snap.EndDate,
		snap.Adults, snap.Children, snap.MarkupFactor.String(), now)
	if err != nil {
		return fmt.Errorf("failed to upsert quotation: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM quotation_services WHERE quotation_id = $1`, snap.ID); err != nil {
		return fmt.Errorf("failed to clear quotation services: %w", err)
	}

	if len(snap.Selections) > 0 {
		batch := &pgx.Batch{}
		for i, sel := range snap.Selections {
			batch.Queue(`
				INSERT INTO quotation_services (
					row_id, quotation_id, position, selection_id, service_type,
					item_id, item_name, service_date, quantity,
					cost_amount, cost_currency, exchange_rate, cost_in_base,
					selling_price, selling_currency, selling_rate, price_overridden
				) VALUES (
					$1, $2, $3, $4, $5, $6, $7, $8::date, $9,
					$10::numeric, $11, $12::numeric, $13::numeric,
					$14::numeric, $15, $16::numeric, $17
				)
			`, uuid.New(), snap.ID, i, sel.ID, string(sel.ServiceType),
				sel.ItemID, sel.ItemName, sel.ServiceDate, sel.Quantity,
				sel.CostAmount.String(), sel.CostCurrency, sel.ExchangeRate.String(),
				sel.CostInBaseCurrency.String(), sel.SellingPrice.String(),
				sel.SellingCurrency, sel.SellingRate.String(), sel.PriceOverridden)
		}

		results := tx.SendBatch(ctx, batch)
		for range snap.Selections {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return fmt.Errorf("failed to insert quotation service: %w", err)
			}
		}
		if err := results.Close(); err != nil {
			return fmt.Errorf("failed to close batch: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit quotation: %w", err)
	}
	return nil
}

// Get loads a stored quotation with its selections in insertion order.
func (s *QuotationStore) Get(ctx context.Context, id string) (itinerary.TripSnapshot, error) {
	var (
		snap   itinerary.TripSnapshot
		markup string
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, base_currency,
		       to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD'),
		       adults, children, markup_factor::text
		FROM quotations
		WHERE id = $1
	`, id).Scan(&snap.ID, &snap.Name, &snap.BaseCurrency, &snap.StartDate, &snap.EndDate,
		&snap.Adults, &snap.Children, &markup)
	if errors.Is(err, pgx.ErrNoRows) {
		return itinerary.TripSnapshot{}, fmt.Errorf("%w: %s", ErrQuotationNotFound, id)
	}
	if err != nil {
		return itinerary.TripSnapshot{}, fmt.Errorf("error querying quotation: %w", err)
	}
	if snap.MarkupFactor, err = decimal.NewFromString(markup); err != nil {
		return itinerary.TripSnapshot{}, fmt.Errorf("invalid markup_factor %q: %w", markup, err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT selection_id, service_type, item_id, item_name,
		       to_char(service_date, 'YYYY-MM-DD'), quantity,
		       cost_amount::text, cost_currency, exchange_rate::text, cost_in_base::text,
		       selling_price::text, selling_currency, selling_rate::text, price_overridden
		FROM quotation_services
		WHERE quotation_id = $1
		ORDER BY position
	`, id)
	if err != nil {
		return itinerary.TripSnapshot{}, fmt.Errorf("error querying quotation services: %w", err)
	}
	defer rows.Close()

	snap.Selections = []itinerary.SelectionSnapshot{}
	for rows.Next() {
		var (
			sel                                          itinerary.SelectionSnapshot
			serviceType                                  string
			cost, rate, costInBase, selling, sellingRate string
		)
		if err := rows.Scan(&sel.ID, &serviceType, &sel.ItemID, &sel.ItemName,
			&sel.ServiceDate, &sel.Quantity,
			&cost, &sel.CostCurrency, &rate, &costInBase,
			&selling, &sel.SellingCurrency, &sellingRate, &sel.PriceOverridden); err != nil {
			return itinerary.TripSnapshot{}, fmt.Errorf("error scanning quotation service: %w", err)
		}
		sel.ServiceType = catalog.ServiceType(serviceType)
		for _, f := range []struct {
			dst *decimal.Decimal
			src string
		}{
			{&sel.CostAmount, cost},
			{&sel.ExchangeRate, rate},
			{&sel.CostInBaseCurrency, costInBase},
			{&sel.SellingPrice, selling},
			{&sel.SellingRate, sellingRate},
		} {
			v, err := decimal.NewFromString(f.src)
			if err != nil {
				return itinerary.TripSnapshot{}, fmt.Errorf("invalid numeric %q on %s: %w", f.src, sel.ID, err)
			}
			*f.dst = v
		}
		snap.Selections = append(snap.Selections, sel)
	}
	if err := rows.Err(); err != nil {
		return itinerary.TripSnapshot{}, fmt.Errorf("error iterating quotation services: %w", err)
	}
	return snap, nil
}

// List returns quotation summaries, most recently updated first.
func (s *QuotationStore) List(ctx context.Context, opts QuotationFilterOptions) ([]QuotationSummary, error) {
	limit := opts.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var activeOn *string
	if opts.ActiveOn != nil {
		d := opts.ActiveOn.Format(time.DateOnly)
		activeOn = &d
	}

	rows, err := s.pool.Query(ctx, `
		SELECT q.id, q.name, q.base_currency,
		       to_char(q.start_date, 'YYYY-MM-DD'), to_char(q.end_date, 'YYYY-MM-DD'),
		       q.markup_factor::text, q.updated_at,
		       (SELECT count(*) FROM quotation_services qs WHERE qs.quotation_id = q.id)
		FROM quotations q
		WHERE $1::date IS NULL OR $1::date BETWEEN q.start_date AND q.end_date
		ORDER BY q.updated_at DESC, q.id
		LIMIT $2 OFFSET $3
	`, activeOn, limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("error listing quotations: %w", err)
	}
	defer rows.Close()

	out := []QuotationSummary{}
	for rows.Next() {
		var (
			q      QuotationSummary
			markup string
		)
		if err := rows.Scan(&q.ID, &q.Name, &q.BaseCurrency, &q.StartDate, &q.EndDate,
			&markup, &q.UpdatedAt, &q.Services); err != nil {
			return nil, fmt.Errorf("error scanning quotation: %w", err)
		}
		if q.MarkupFactor, err = decimal.NewFromString(markup); err != nil {
			return nil, fmt.Errorf("invalid markup_factor %q: %w", markup, err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// Delete removes a quotation and its selections.
func (s *QuotationStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM quotations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting quotation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrQuotationNotFound, id)
	}
	return nil
}
