package workflow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/confawards/confawards/internal/models"
	"github.com/confawards/confawards/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService(catalog store.Catalog) *Service {
	svc := New(catalog)
	svc.Now = func() time.Time { return testNow }
	return svc
}

func seedEvent(t *testing.T, catalog store.Catalog, capacity, available int) *models.Event {
	t.Helper()
	event := &models.Event{
		Title:          "Test Conference",
		EventType:      "conference",
		StartDate:      testNow.Add(24 * time.Hour),
		EndDate:        testNow.Add(48 * time.Hour),
		Capacity:       capacity,
		AvailableSeats: available,
		TicketPrice:    150,
		Status:         models.EventStatusUpcoming,
	}
	require.NoError(t, catalog.CreateEvent(context.Background(), event))
	return event
}

func seedAward(t *testing.T, catalog store.Catalog, status string) *models.Award {
	t.Helper()
	award := &models.Award{
		Title:           "Engineer of the Year",
		Category:        "individual",
		Year:            2026,
		NominationStart: testNow.Add(-24 * time.Hour),
		NominationEnd:   testNow.Add(24 * time.Hour),
		Status:          status,
	}
	require.NoError(t, catalog.CreateAward(context.Background(), award))
	return award
}

func testActor() Actor {
	return Actor{
		ID:    uuid.New(),
		Name:  "Dana Attendee",
		Email: "dana@example.com",
		Role:  models.RoleUser,
	}
}

func TestRegisterForEvent(t *testing.T) {
	catalog := store.NewMemory()
	svc := newTestService(catalog)
	event := seedEvent(t, catalog, 10, 10)
	actor := testActor()

	registration, err := svc.RegisterForEvent(context.Background(), event.ID, actor, "vip")
	require.NoError(t, err)

	assert.Equal(t, event.ID, registration.EventID)
	assert.Equal(t, actor.ID, registration.UserID)
	assert.Equal(t, actor.Name, registration.UserName)
	assert.Equal(t, "vip", registration.TicketType)
	assert.Equal(t, event.TicketPrice, registration.PaymentAmount)
	assert.Equal(t, models.PaymentStatusPending, registration.PaymentStatus)
	assert.Equal(t, models.RegistrationStatusActive, registration.Status)

	updated, err := catalog.GetEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, updated.AvailableSeats)
}

func TestRegisterForEventDefaultsTicketType(t *testing.T) {
	catalog := store.NewMemory()
	svc := newTestService(catalog)
	event := seedEvent(t, catalog, 5, 5)

	registration, err := svc.RegisterForEvent(context.Background(), event.ID, testActor(), "")
	require.NoError(t, err)
	assert.Equal(t, "standard", registration.TicketType)
}

func TestRegisterForEventSoldOut(t *testing.T) {
	catalog := store.NewMemory()
	svc := newTestService(catalog)
	event := seedEvent(t, catalog, 10, 0)

	_, err := svc.RegisterForEvent(context.Background(), event.ID, testActor(), "")
	assert.ErrorIs(t, err, ErrSoldOut)
}

func TestRegisterForEventNotFound(t *testing.T) {
	svc := newTestService(store.NewMemory())
	_, err := svc.RegisterForEvent(context.Background(), uuid.New(), testActor(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegisterForEventCompleted(t *testing.T) {
	catalog := store.NewMemory()
	svc := newTestService(catalog)
	event := seedEvent(t, catalog, 10, 10)

	// The stored status still says upcoming; the clock decides.
	svc.Now = func() time.Time { return event.EndDate.Add(time.Hour) }

	_, err := svc.RegisterForEvent(context.Background(), event.ID, testActor(), "")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRegisterForEventDuplicate(t *testing.T) {
	catalog := store.NewMemory()
	svc := newTestService(catalog)
	event := seedEvent(t, catalog, 10, 10)
	actor := testActor()

	_, err := svc.RegisterForEvent(context.Background(), event.ID, actor, "")
	require.NoError(t, err)

	_, err = svc.RegisterForEvent(context.Background(), event.ID, actor, "")
	assert.ErrorIs(t, err, ErrDuplicateRegistration)

	// A different user is unaffected.
	_, err = svc.RegisterForEvent(context.Background(), event.ID, testActor(), "")
	assert.NoError(t, err)
}

func TestRegisterAgainAfterCancel(t *testing.T) {
	catalog := store.NewMemory()
	svc := newTestService(catalog)
	event := seedEvent(t, catalog, 10, 10)
	actor := testActor()

	registration, err := svc.RegisterForEvent(context.Background(), event.ID, actor, "")
	require.NoError(t, err)
	require.NoError(t, svc.CancelRegistration(context.Background(), registration.ID, actor))

	_, err = svc.RegisterForEvent(context.Background(), event.ID, actor, "")
	assert.NoError(t, err)
}

// failingCatalog makes registration persistence fail so the
// compensating seat release can be observed.
type failingCatalog struct {
	store.Catalog
}

var errStorage = errors.New("storage down")

func (f *failingCatalog) CreateRegistration(ctx context.Context, registration *models.Registration) error {
	return errStorage
}

func TestRegisterForEventCompensatesFailedPersist(t *testing.T) {
	catalog := store.NewMemory()
	svc := newTestService(&failingCatalog{Catalog: catalog})
	event := seedEvent(t, catalog, 10, 10)

	_, err := svc.RegisterForEvent(context.Background(), event.ID, testActor(), "")
	require.ErrorIs(t, err, errStorage)

	// The reserved seat was handed back.
	updated, err := catalog.GetEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, updated.AvailableSeats)
}

func TestRegisterForEventConcurrent(t *testing.T) {
	catalog := store.NewMemory()
	svc := newTestService(catalog)
	event := seedEvent(t, catalog, 2, 2)

	var wg sync.WaitGroup
	results := make(chan error, 3)
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RegisterForEvent(context.Background(), event.ID, testActor(), "")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, soldOut int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrSoldOut):
			soldOut++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 2, succeeded)
	assert.Equal(t, 1, soldOut)

	updated, err := catalog.GetEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.AvailableSeats)
}

func TestCancelRegistration(t *testing.T) {
	catalog := store.NewMemory()
	svc := newTestService(catalog)
	event := seedEvent(t, catalog, 10, 10)
	actor := testActor()

	registration, err := svc.RegisterForEvent(context.Background(), event.ID, actor, "")
	require.NoError(t, err)

	require.NoError(t, svc.CancelRegistration(context.Background(), registration.ID, actor))

	stored, err := catalog.GetRegistration(context.Background(), registration.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationStatusCancelled, stored.Status)

	updated, err := catalog.GetEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, updated.AvailableSeats)
}

func TestCancelRegistrationIdempotent(t *testing.T) {
	catalog := store.NewMemory()
	svc := newTestService(catalog)
	event := seedEvent(t, catalog, 10, 10)
	actor := testActor()

	registration, err := svc.RegisterForEvent(context.Background(), event.ID, actor, "")
	require.NoError(t, err)

	// Take another seat so a double release would be visible.
	_, err = svc.RegisterForEvent(context.Background(), event.ID, testActor(), "")
	require.NoError(t, err)

	require.NoError(t, svc.CancelRegistration(context.Background(), registration.ID, actor))
	require.NoError(t, svc.CancelRegistration(context.Background(), registration.ID, actor))

	updated, err := catalog.GetEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, updated.AvailableSeats)
}

func TestCancelRegistrationOwnership(t *testing.T) {
	catalog := store.NewMemory()
	svc := newTestService(catalog)
	event := seedEvent(t, catalog, 10, 10)
	owner := testActor()

	registration, err := svc.RegisterForEvent(context.Background(), event.ID, owner, "")
	require.NoError(t, err)

	stranger := testActor()
	err = svc.CancelRegistration(context.Background(), registration.ID, stranger)
	assert.ErrorIs(t, err, ErrUnauthorized)

	admin := testActor()
	admin.Role = models.RoleAdmin
	assert.NoError(t, svc.CancelRegistration(context.Background(), registration.ID, admin))
}

func TestCancelRegistrationNotFound(t *testing.T) {
	svc := newTestService(store.NewMemory())
	err := svc.CancelRegistration(context.Background(), uuid.New(), testActor())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitNomination(t *testing.T) {
	catalog := store.NewMemory()
	svc := newTestService(catalog)
	award := seedAward(t, catalog, models.AwardStatusOpen)
	actor := testActor()

	nomination, err := svc.SubmitNomination(context.Background(), NominationInput{
		AwardID:             award.ID,
		NomineeName:         "Priya Raman",
		NomineeEmail:        "priya@example.com",
		NomineeOrganization: "Gridline Labs",
		NominationStatement: "Shipped the migration everyone said was impossible.",
	}, actor)
	require.NoError(t, err)

	assert.Equal(t, models.NominationStatusPending, nomination.Status)
	assert.Equal(t, actor.ID, nomination.SubmitterID)
}

func TestSubmitNominationAwardNotOpen(t *testing.T) {
	catalog := store.NewMemory()
	svc := newTestService(catalog)
	award := seedAward(t, catalog, models.AwardStatusUpcoming)

	_, err := svc.SubmitNomination(context.Background(), NominationInput{AwardID: award.ID, NomineeName: "X"}, testActor())
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestSubmitNominationDeadlinePassed(t *testing.T) {
	catalog := store.NewMemory()
	svc := newTestService(catalog)
	award := seedAward(t, catalog, models.AwardStatusOpen)

	// Still stored as open, but the window has elapsed.
	svc.Now = func() time.Time { return award.NominationEnd.Add(time.Minute) }

	_, err := svc.SubmitNomination(context.Background(), NominationInput{AwardID: award.ID, NomineeName: "X"}, testActor())
	assert.ErrorIs(t, err, ErrInvalidState)
}

func submitNomination(t *testing.T, svc *Service, awardID uuid.UUID, nominee string) *models.Nomination {
	t.Helper()
	nomination, err := svc.SubmitNomination(context.Background(), NominationInput{
		AwardID:             awardID,
		NomineeName:         nominee,
		NomineeEmail:        nominee + "@example.com",
		NominationStatement: "statement",
	}, testActor())
	require.NoError(t, err)
	return nomination
}

func TestDecideNominationApproveAndReject(t *testing.T) {
	catalog := store.NewMemory()
	svc := newTestService(catalog)
	award := seedAward(t, catalog, models.AwardStatusOpen)
	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}

	first := submitNomination(t, svc, award.ID, "Priya")
	second := submitNomination(t, svc, award.ID, "Marcus")

	decided, err := svc.DecideNomination(context.Background(), first.ID, DecisionApprove, admin)
	require.NoError(t, err)
	assert.Equal(t, models.NominationStatusApproved, decided.Status)

	decided, err = svc.DecideNomination(context.Background(), second.ID, DecisionReject, admin)
	require.NoError(t, err)
	assert.Equal(t, models.NominationStatusRejected, decided.Status)

	// Rejected is terminal.
	_, err = svc.DecideNomination(context.Background(), second.ID, DecisionApprove, admin)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestDecideNominationDeclareWinner(t *testing.T) {
	catalog := store.NewMemory()
	svc := newTestService(catalog)
	award := seedAward(t, catalog, models.AwardStatusOpen)
	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}

	nomination := submitNomination(t, svc, award.ID, "Priya")
	_, err := svc.DecideNomination(context.Background(), nomination.ID, DecisionApprove, admin)
	require.NoError(t, err)

	decided, err := svc.DecideNomination(context.Background(), nomination.ID, DecisionDeclareWinner, admin)
	require.NoError(t, err)
	assert.Equal(t, models.NominationStatusWinner, decided.Status)

	stored, err := catalog.GetAward(context.Background(), award.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.WinnerName)
	assert.Equal(t, "Priya", *stored.WinnerName)
}

func TestDeclareWinnerDemotesPreviousWinner(t *testing.T) {
	catalog := store.NewMemory()
	svc := newTestService(catalog)
	award := seedAward(t, catalog, models.AwardStatusOpen)
	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}

	first := submitNomination(t, svc, award.ID, "Priya")
	second := submitNomination(t, svc, award.ID, "Marcus")
	for _, nomination := range []*models.Nomination{first, second} {
		_, err := svc.DecideNomination(context.Background(), nomination.ID, DecisionApprove, admin)
		require.NoError(t, err)
	}

	_, err := svc.DecideNomination(context.Background(), first.ID, DecisionDeclareWinner, admin)
	require.NoError(t, err)
	_, err = svc.DecideNomination(context.Background(), second.ID, DecisionDeclareWinner, admin)
	require.NoError(t, err)

	demoted, err := catalog.GetNomination(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.NominationStatusApproved, demoted.Status)

	promoted, err := catalog.GetNomination(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.NominationStatusWinner, promoted.Status)

	stored, err := catalog.GetAward(context.Background(), award.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.WinnerName)
	assert.Equal(t, "Marcus", *stored.WinnerName)
}

func TestDeclareWinnerRequiresApproved(t *testing.T) {
	catalog := store.NewMemory()
	svc := newTestService(catalog)
	award := seedAward(t, catalog, models.AwardStatusOpen)
	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}

	nomination := submitNomination(t, svc, award.ID, "Priya")
	_, err := svc.DecideNomination(context.Background(), nomination.ID, DecisionDeclareWinner, admin)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestDecideNominationUnknownDecision(t *testing.T) {
	catalog := store.NewMemory()
	svc := newTestService(catalog)
	award := seedAward(t, catalog, models.AwardStatusOpen)

	nomination := submitNomination(t, svc, award.ID, "Priya")
	_, err := svc.DecideNomination(context.Background(), nomination.ID, "promote", Actor{Role: models.RoleAdmin})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestAdvanceEvent(t *testing.T) {
	catalog := store.NewMemory()
	svc := newTestService(catalog)
	event := seedEvent(t, catalog, 10, 10)

	advanced, err := svc.AdvanceEvent(context.Background(), event.ID, models.EventStatusOngoing)
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusOngoing, advanced.Status)

	stored, err := catalog.GetEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusOngoing, stored.Status)
	assert.Equal(t, int64(1), stored.Version)
}

func TestAdvanceEventBackwardsRejected(t *testing.T) {
	catalog := store.NewMemory()
	svc := newTestService(catalog)
	event := seedEvent(t, catalog, 10, 10)

	_, err := svc.AdvanceEvent(context.Background(), event.ID, models.EventStatusOngoing)
	require.NoError(t, err)

	_, err = svc.AdvanceEvent(context.Background(), event.ID, models.EventStatusUpcoming)
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = svc.AdvanceEvent(context.Background(), event.ID, models.EventStatusOngoing)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestAdvanceEventFromEffectiveStatus(t *testing.T) {
	catalog := store.NewMemory()
	svc := newTestService(catalog)
	event := seedEvent(t, catalog, 10, 10)

	// The clock already puts the event in ongoing; advancing "to"
	// ongoing is therefore a no-op and rejected, completed still works.
	svc.Now = func() time.Time { return event.StartDate.Add(time.Hour) }

	_, err := svc.AdvanceEvent(context.Background(), event.ID, models.EventStatusOngoing)
	assert.ErrorIs(t, err, ErrInvalidState)

	advanced, err := svc.AdvanceEvent(context.Background(), event.ID, models.EventStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusCompleted, advanced.Status)
}

func TestOpenAndCloseAward(t *testing.T) {
	catalog := store.NewMemory()
	svc := newTestService(catalog)
	award := seedAward(t, catalog, models.AwardStatusUpcoming)

	opened, err := svc.OpenAward(context.Background(), award.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AwardStatusOpen, opened.Status)

	closed, err := svc.CloseAward(context.Background(), award.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AwardStatusClosed, closed.Status)

	// Closed is terminal.
	_, err = svc.OpenAward(context.Background(), award.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCloseAwardRequiresOpen(t *testing.T) {
	catalog := store.NewMemory()
	svc := newTestService(catalog)
	award := seedAward(t, catalog, models.AwardStatusUpcoming)

	_, err := svc.CloseAward(context.Background(), award.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestSetPaymentStatus(t *testing.T) {
	catalog := store.NewMemory()
	svc := newTestService(catalog)
	event := seedEvent(t, catalog, 10, 10)

	registration, err := svc.RegisterForEvent(context.Background(), event.ID, testActor(), "")
	require.NoError(t, err)

	updated, err := svc.SetPaymentStatus(context.Background(), registration.ID, models.PaymentStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, updated.PaymentStatus)

	_, err = svc.SetPaymentStatus(context.Background(), registration.ID, "refunded")
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = svc.SetPaymentStatus(context.Background(), uuid.New(), models.PaymentStatusFailed)
	assert.ErrorIs(t, err, ErrNotFound)
}
