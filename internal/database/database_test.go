package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tourdesk/quote-service/internal/catalog"
	"github.com/tourdesk/quote-service/internal/fx"
	"github.com/tourdesk/quote-service/internal/itinerary"
)

// startPostgres runs a throwaway Postgres container and returns its URL
func startPostgres(t *testing.T) (string, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("quotes"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return connStr, func() { _ = testcontainers.TerminateContainer(container) }
}

// setupTestDB starts a Postgres container and applies the schema
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	t.Helper()
	connStr, terminate := startPostgres(t)

	ctx := context.Background()
	config, err := pgxpool.ParseConfig(connStr)
	require.NoError(t, err)

	pool, err := pgxpool.NewWithConfig(ctx, config)
	require.NoError(t, err)

	require.NoError(t, Migrate(ctx, pool))
	// second run must be a no-op
	require.NoError(t, Migrate(ctx, pool))

	cleanup := func() {
		pool.Close()
		terminate()
	}
	return pool, cleanup
}

func TestConnect(t *testing.T) {
	connStr, terminate := startPostgres(t)
	defer terminate()
	ctx := context.Background()

	assert.ErrorIs(t, Status(ctx), ErrNotConnected)
	_, ok := Stats()
	assert.False(t, ok)

	require.NoError(t, Connect(ctx, PoolOptions{URL: connStr, MaxConns: 4, Migrate: true}))
	defer Close()
	first := Pool()
	require.NoError(t, Connect(ctx, PoolOptions{URL: connStr}), "second connect keeps the open pool")
	assert.Same(t, first, Pool())

	require.NoError(t, Status(ctx))
	stats, ok := Stats()
	require.True(t, ok)
	assert.Equal(t, int32(4), stats.Max)
	assert.LessOrEqual(t, stats.Acquired, stats.Total)

	var n int
	require.NoError(t, Pool().QueryRow(ctx, "SELECT count(*) FROM quotations").Scan(&n), "schema applied on connect")
	assert.Zero(t, n)

	Close()
	assert.Nil(t, Pool())
	assert.ErrorIs(t, Status(ctx), ErrNotConnected)
}

func TestConnect_BadURL(t *testing.T) {
	err := Connect(context.Background(), PoolOptions{URL: "postgres://%zz"})
	require.Error(t, err)
	assert.Nil(t, Pool())
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleSnapshot(id string) itinerary.TripSnapshot {
	return itinerary.TripSnapshot{
		ID:           id,
		Name:         "Istanbul Highlights",
		BaseCurrency: "EUR",
		StartDate:    "2025-12-01",
		EndDate:      "2025-12-05",
		Adults:       2,
		MarkupFactor: d("1.2"),
		Selections: []itinerary.SelectionSnapshot{
			{
				ID:                 "sel_1",
				ServiceType:        catalog.ServiceEntranceFee,
				ItemID:             "fee-1",
				ItemName:           "Hagia Sophia",
				ServiceDate:        "2025-12-02",
				Quantity:           2,
				CostAmount:         d("100"),
				CostCurrency:       "TRY",
				ExchangeRate:       d("0.027"),
				CostInBaseCurrency: d("2.7"),
				SellingPrice:       d("120"),
				SellingCurrency:    "TRY",
				SellingRate:        d("0.027"),
			},
			{
				ID:                 "sel_2",
				ServiceType:        catalog.ServiceHotel,
				ItemID:             "hotel-9",
				ItemName:           "Pera Palace",
				ServiceDate:        "2025-12-01",
				Quantity:           1,
				CostAmount:         d("180.50"),
				CostCurrency:       "EUR",
				ExchangeRate:       d("1"),
				CostInBaseCurrency: d("180.5"),
				SellingPrice:       d("250"),
				SellingCurrency:    "EUR",
				SellingRate:        d("1"),
				PriceOverridden:    true,
			},
		},
	}
}

func TestQuotationStore(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewQuotationStore(pool)

	t.Run("save and load keeps order and exact amounts", func(t *testing.T) {
		snap := sampleSnapshot("quo_roundtrip")
		require.NoError(t, store.Save(ctx, snap))

		got, err := store.Get(ctx, snap.ID)
		require.NoError(t, err)
		assert.Equal(t, snap.Name, got.Name)
		assert.Equal(t, "2025-12-01", got.StartDate)
		assert.Equal(t, "2025-12-05", got.EndDate)
		assert.True(t, got.MarkupFactor.Equal(d("1.2")))
		require.Len(t, got.Selections, 2)
		assert.Equal(t, "sel_1", got.Selections[0].ID)
		assert.Equal(t, "sel_2", got.Selections[1].ID)
		assert.True(t, got.Selections[0].ExchangeRate.Equal(d("0.027")))
		assert.True(t, got.Selections[1].CostAmount.Equal(d("180.50")))
		assert.True(t, got.Selections[1].PriceOverridden)

		trip, err := itinerary.FromSnapshot(got)
		require.NoError(t, err)
		total := itinerary.ComputeTripTotal(trip)
		assert.Equal(t, "256.48", total.Amount.StringFixed(2))
	})

	t.Run("save replaces selections", func(t *testing.T) {
		snap := sampleSnapshot("quo_replace")
		require.NoError(t, store.Save(ctx, snap))

		snap.Selections = snap.Selections[:1]
		snap.Name = "Shortened"
		require.NoError(t, store.Save(ctx, snap))

		got, err := store.Get(ctx, snap.ID)
		require.NoError(t, err)
		assert.Equal(t, "Shortened", got.Name)
		assert.Len(t, got.Selections, 1)
	})

	t.Run("invalid snapshot is rejected before writing", func(t *testing.T) {
		snap := sampleSnapshot("quo_invalid")
		snap.Selections[0].Quantity = 0
		err := store.Save(ctx, snap)
		require.Error(t, err)

		var qe *itinerary.InvalidQuantityError
		assert.True(t, errors.As(err, &qe))

		_, err = store.Get(ctx, snap.ID)
		assert.ErrorIs(t, err, ErrQuotationNotFound)
	})

	t.Run("list and delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sampleSnapshot("quo_listed")))

		day := time.Date(2025, 12, 3, 0, 0, 0, 0, time.UTC)
		list, err := store.List(ctx, QuotationFilterOptions{ActiveOn: &day})
		require.NoError(t, err)
		ids := make([]string, 0, len(list))
		for _, q := range list {
			ids = append(ids, q.ID)
		}
		assert.Contains(t, ids, "quo_listed")

		outside := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		list, err = store.List(ctx, QuotationFilterOptions{ActiveOn: &outside})
		require.NoError(t, err)
		assert.Empty(t, list)

		require.NoError(t, store.Delete(ctx, "quo_listed"))
		assert.ErrorIs(t, store.Delete(ctx, "quo_listed"), ErrQuotationNotFound)

		var n int
		require.NoError(t, pool.QueryRow(ctx,
			`SELECT count(*) FROM quotation_services WHERE quotation_id = $1`, "quo_listed").Scan(&n))
		assert.Zero(t, n)
	})
}

func TestRateStore(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewRateStore(pool)

	_, err := store.Rate(ctx, "TRY", "EUR")
	assert.ErrorIs(t, err, fx.ErrRateNotFound)

	_, err = store.Record(ctx, "TRY", "EUR", d("0.026"), "")
	require.NoError(t, err)
	rec, err := store.Record(ctx, "try", "eur", d("0.027"), "ecb")
	require.NoError(t, err)
	assert.Equal(t, "TRY", rec.FromCurrency)
	assert.Equal(t, "ecb", rec.Source)

	rate, err := store.Rate(ctx, "TRY", "EUR")
	require.NoError(t, err)
	assert.True(t, rate.Equal(d("0.027")), "latest observation wins, got %s", rate)

	one, err := store.Rate(ctx, "EUR", "EUR")
	require.NoError(t, err)
	assert.True(t, one.Equal(decimal.NewFromInt(1)))

	_, err = store.Record(ctx, "USD", "EUR", decimal.Zero, "")
	assert.Error(t, err)

	for _, pair := range [][2]string{{"TR", "EUR"}, {"TRY", "EURO"}, {"", "EUR"}, {"EUR", "eur"}} {
		_, err = store.Record(ctx, pair[0], pair[1], d("1.1"), "")
		assert.Error(t, err, "pair %s/%s", pair[0], pair[1])
	}

	latest, err := store.Latest(ctx)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.True(t, latest[0].Rate.Equal(d("0.027")))
}
