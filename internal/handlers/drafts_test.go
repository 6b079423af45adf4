package handlers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourdesk/quote-service/internal/itinerary"
)

func newDraftTrip(t *testing.T, id string) *itinerary.Trip {
	t.Helper()
	trip, err := itinerary.NewTrip(id, "draft", itinerary.TripContext{
		BaseCurrency: "EUR",
		StartDate:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		Adults:       1,
	}, decimal.RequireFromString("1.2"))
	require.NoError(t, err)
	return trip
}

func TestDraftStore(t *testing.T) {
	store := NewDraftStore(time.Hour)
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Put(newDraftTrip(t, "quo_a"))
	store.Put(newDraftTrip(t, "quo_b"))
	assert.Equal(t, 2, store.Len())

	err := store.With("quo_x", func(*itinerary.Trip) error { return nil })
	assert.ErrorIs(t, err, ErrDraftNotFound)

	t.Run("failed update keeps the previous state", func(t *testing.T) {
		boom := errors.New("boom")
		err := store.Update("quo_a", func(trip *itinerary.Trip) error {
			trip.Name = "changed"
			return boom
		})
		assert.ErrorIs(t, err, boom)

		require.NoError(t, store.With("quo_a", func(trip *itinerary.Trip) error {
			assert.Equal(t, "draft", trip.Name)
			return nil
		}))
	})

	t.Run("sweep expires idle drafts", func(t *testing.T) {
		now = now.Add(50 * time.Minute)
		require.NoError(t, store.With("quo_b", func(*itinerary.Trip) error { return nil }))
		now = now.Add(20 * time.Minute)

		removed, err := store.Sweep(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, removed)
		assert.Equal(t, 1, store.Len())
		assert.True(t, store.Remove("quo_b"))
		assert.False(t, store.Remove("quo_b"))
	})
}

func TestDraftStoreWithoutTTL(t *testing.T) {
	store := NewDraftStore(0)
	store.Put(newDraftTrip(t, "quo_a"))
	removed, err := store.Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestDraftStore_RemovedWhileWaiting(t *testing.T) {
	store := NewDraftStore(time.Hour)
	store.Put(newDraftTrip(t, "quo_a"))

	store.mu.Lock()
	held := store.drafts["quo_a"]
	store.mu.Unlock()
	held.mu.Lock()

	var applied atomic.Bool
	done := make(chan error, 1)
	go func() {
		done <- store.Update("quo_a", func(*itinerary.Trip) error {
			applied.Store(true)
			return nil
		})
	}()

	assert.True(t, store.Remove("quo_a"))
	held.mu.Unlock()

	assert.ErrorIs(t, <-done, ErrDraftNotFound)
	assert.False(t, applied.Load(), "edit must not land on a removed draft")
}
