package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/confawards/confawards/internal/models"
	"github.com/confawards/confawards/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEvent(t *testing.T, catalog store.Catalog, capacity, available int) uuid.UUID {
	t.Helper()
	event := &models.Event{
		Title:          "Test Conference",
		EventType:      "conference",
		StartDate:      time.Now().Add(24 * time.Hour),
		EndDate:        time.Now().Add(48 * time.Hour),
		Capacity:       capacity,
		AvailableSeats: available,
		Status:         models.EventStatusUpcoming,
	}
	require.NoError(t, catalog.CreateEvent(context.Background(), event))
	return event.ID
}

func TestReserve(t *testing.T) {
	catalog := store.NewMemory()
	ledger := New(catalog)
	eventID := seedEvent(t, catalog, 2, 2)

	outcome, err := ledger.Reserve(context.Background(), eventID)
	require.NoError(t, err)
	assert.Equal(t, Reserved, outcome)

	event, err := catalog.GetEvent(context.Background(), eventID)
	require.NoError(t, err)
	assert.Equal(t, 1, event.AvailableSeats)
	assert.Equal(t, int64(1), event.Version)
}

func TestReserveSoldOut(t *testing.T) {
	catalog := store.NewMemory()
	ledger := New(catalog)
	eventID := seedEvent(t, catalog, 10, 0)

	outcome, err := ledger.Reserve(context.Background(), eventID)
	require.NoError(t, err)
	assert.Equal(t, SoldOut, outcome)

	// Nothing mutated.
	event, err := catalog.GetEvent(context.Background(), eventID)
	require.NoError(t, err)
	assert.Equal(t, 0, event.AvailableSeats)
	assert.Equal(t, int64(0), event.Version)
}

func TestReserveUnknownEvent(t *testing.T) {
	ledger := New(store.NewMemory())

	outcome, err := ledger.Reserve(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, NotFound, outcome)
}

func TestReserveConcurrent(t *testing.T) {
	const seats = 5
	const callers = 25

	catalog := store.NewMemory()
	ledger := New(catalog)
	eventID := seedEvent(t, catalog, seats, seats)

	var wg sync.WaitGroup
	outcomes := make(chan Outcome, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome, err := ledger.Reserve(context.Background(), eventID)
			if err != nil {
				// Losing the retry budget under heavy contention counts
				// as not reserved; it must never over-reserve.
				outcome = SoldOut
			}
			outcomes <- outcome
		}()
	}
	wg.Wait()
	close(outcomes)

	reserved := 0
	for outcome := range outcomes {
		if outcome == Reserved {
			reserved++
		}
	}
	assert.LessOrEqual(t, reserved, seats)

	event, err := catalog.GetEvent(context.Background(), eventID)
	require.NoError(t, err)
	assert.Equal(t, seats-reserved, event.AvailableSeats)
	assert.GreaterOrEqual(t, event.AvailableSeats, 0)
}

func TestRelease(t *testing.T) {
	catalog := store.NewMemory()
	ledger := New(catalog)
	eventID := seedEvent(t, catalog, 10, 7)

	require.NoError(t, ledger.Release(context.Background(), eventID))

	event, err := catalog.GetEvent(context.Background(), eventID)
	require.NoError(t, err)
	assert.Equal(t, 8, event.AvailableSeats)
}

func TestReleaseClampedAtCapacity(t *testing.T) {
	catalog := store.NewMemory()
	ledger := New(catalog)
	eventID := seedEvent(t, catalog, 3, 3)

	// Releasing a full event is a no-op, however many times it happens.
	require.NoError(t, ledger.Release(context.Background(), eventID))
	require.NoError(t, ledger.Release(context.Background(), eventID))

	event, err := catalog.GetEvent(context.Background(), eventID)
	require.NoError(t, err)
	assert.Equal(t, 3, event.AvailableSeats)
	assert.Equal(t, int64(0), event.Version)
}

func TestReleaseUnknownEvent(t *testing.T) {
	ledger := New(store.NewMemory())
	err := ledger.Release(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
}
