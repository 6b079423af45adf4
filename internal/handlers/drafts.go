package handlers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tourdesk/quote-service/internal/itinerary"
)

// ErrDraftNotFound is returned for an unknown or expired draft id.
var ErrDraftNotFound = errors.New("quotation draft not found")

type draft struct {
	mu       sync.Mutex
	trip     *itinerary.Trip
	lastUsed time.Time
}

// DraftStore keeps the quotations being edited. Each draft is edited by one
// request at a time.
type DraftStore struct {
	mu     sync.Mutex
	drafts map[string]*draft
	ttl    time.Duration
	now    func() time.Time
}

// NewDraftStore creates a store whose drafts expire after ttl of inactivity.
// A zero ttl keeps drafts until they are removed.
func NewDraftStore(ttl time.Duration) *DraftStore {
	return &DraftStore{
		drafts: make(map[string]*draft),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Put adds trip as a draft, replacing any draft with the same id.
func (s *DraftStore) Put(trip *itinerary.Trip) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[trip.ID] = &draft{trip: trip, lastUsed: s.now()}
}

// acquire returns the draft locked. A draft that expired, was removed or was
// replaced while waiting for its lock is reported as not found.
func (s *DraftStore) acquire(id string) (*draft, error) {
	s.mu.Lock()
	d, ok := s.drafts[id]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDraftNotFound, id)
	}

	d.mu.Lock()
	s.mu.Lock()
	current := s.drafts[id] == d
	s.mu.Unlock()
	if !current {
		d.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrDraftNotFound, id)
	}
	d.lastUsed = s.now()
	return d, nil
}

// With runs fn while holding the draft's lock.
func (s *DraftStore) With(id string, fn func(*itinerary.Trip) error) error {
	d, err := s.acquire(id)
	if err != nil {
		return err
	}
	defer d.mu.Unlock()
	return fn(d.trip)
}

// Update runs fn on a copy of the draft and keeps the copy only when fn
// succeeds, so a failed multi-step edit leaves the draft unchanged.
func (s *DraftStore) Update(id string, fn func(*itinerary.Trip) error) error {
	d, err := s.acquire(id)
	if err != nil {
		return err
	}
	defer d.mu.Unlock()

	clone, err := itinerary.FromSnapshot(d.trip.Snapshot())
	if err != nil {
		return fmt.Errorf("copy draft %s: %w", id, err)
	}
	if err := fn(clone); err != nil {
		return err
	}
	d.trip = clone
	return nil
}

// Remove drops a draft and reports whether it existed.
func (s *DraftStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.drafts[id]
	delete(s.drafts, id)
	return ok
}

// Len returns the number of open drafts
func (s *DraftStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}

// Name identifies the store to the sweeper
func (s *DraftStore) Name() string { return "quotation_drafts" }

// Sweep removes drafts idle for longer than the ttl.
func (s *DraftStore) Sweep(context.Context) (int, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, d := range s.drafts {
		// skip drafts in use
		if !d.mu.TryLock() {
			continue
		}
		if d.lastUsed.Before(cutoff) {
			delete(s.drafts, id)
			removed++
		}
		d.mu.Unlock()
	}
	return removed, nil
}
