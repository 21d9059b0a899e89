// Package ledger owns the seat inventory for events. Reserve and
// Release are the only code paths allowed to touch available_seats.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/confawards/confawards/internal/store"
	"github.com/google/uuid"
)

// Outcome is the result of a reservation attempt.
type Outcome int

const (
	Reserved Outcome = iota
	SoldOut
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Reserved:
		return "reserved"
	case SoldOut:
		return "sold_out"
	case NotFound:
		return "not_found"
	}
	return "unknown"
}

// maxAttempts bounds the compare-and-swap retry loop. Losing this many
// races in a row means the event row is heavily contended and the
// caller should retry the whole operation.
const maxAttempts = 5

// Ledger mutates seat counts through versioned compare-and-swap writes
// so unrelated events never contend with each other.
type Ledger struct {
	catalog store.Catalog
}

func New(catalog store.Catalog) *Ledger {
	return &Ledger{catalog: catalog}
}

// Reserve takes one seat from the event if any remain. It is safe under
// concurrent callers: with N seats left, at most N calls return
// Reserved. A SoldOut or NotFound outcome never mutates state.
func (l *Ledger) Reserve(ctx context.Context, eventID uuid.UUID) (Outcome, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		event, err := l.catalog.GetEvent(ctx, eventID)
		if errors.Is(err, store.ErrNotFound) {
			return NotFound, nil
		}
		if err != nil {
			return NotFound, fmt.Errorf("reserve seat: %w", err)
		}

		if event.AvailableSeats <= 0 {
			return SoldOut, nil
		}

		err = l.catalog.CompareAndSwapEvent(ctx, eventID, event.Version, map[string]any{
			"available_seats": event.AvailableSeats - 1,
		})
		if err == nil {
			return Reserved, nil
		}
		if errors.Is(err, store.ErrConflict) {
			continue
		}
		if errors.Is(err, store.ErrNotFound) {
			return NotFound, nil
		}
		return NotFound, fmt.Errorf("reserve seat: %w", err)
	}
	return NotFound, fmt.Errorf("reserve seat for event %s: %w", eventID, store.ErrConflict)
}

// Release returns one seat to the event, clamped at capacity so a
// retried cancellation can never inflate the inventory. Releasing an
// already-full event is a no-op.
func (l *Ledger) Release(ctx context.Context, eventID uuid.UUID) error {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		event, err := l.catalog.GetEvent(ctx, eventID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return store.ErrNotFound
			}
			return fmt.Errorf("release seat: %w", err)
		}

		if event.AvailableSeats >= event.Capacity {
			return nil
		}

		err = l.catalog.CompareAndSwapEvent(ctx, eventID, event.Version, map[string]any{
			"available_seats": event.AvailableSeats + 1,
		})
		if err == nil {
			return nil
		}
		if errors.Is(err, store.ErrConflict) {
			continue
		}
		return fmt.Errorf("release seat: %w", err)
	}
	return fmt.Errorf("release seat for event %s: %w", eventID, store.ErrConflict)
}
