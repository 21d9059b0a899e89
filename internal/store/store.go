// Package store is the persistence boundary for the catalog. The
// lifecycle core only ever talks to the Catalog interface; the GORM
// implementation backs it in production and the in-memory one in tests
// and seeding.
package store

import (
	"context"
	"errors"

	"github.com/confawards/confawards/internal/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when a compare-and-swap lost the race against
// a concurrent writer. Callers should reload and retry the whole
// operation.
var ErrConflict = errors.New("version conflict")

// EventFilter narrows ListEvents. Zero values mean "no filter".
type EventFilter struct {
	Status   string
	Featured *bool
	Page     int
	Limit    int
}

// AwardFilter narrows ListAwards.
type AwardFilter struct {
	Status string
	Year   int
}

// NominationFilter narrows ListNominations.
type NominationFilter struct {
	AwardID     uuid.UUID
	SubmitterID uuid.UUID
	Status      string
}

// RegistrationFilter narrows ListRegistrations.
type RegistrationFilter struct {
	EventID uuid.UUID
	UserID  uuid.UUID
}

// Catalog is the storage contract consumed by the ledger and the
// workflow service. CompareAndSwapEvent and DeclareWinner are the two
// atomic primitives; everything else is plain CRUD.
type Catalog interface {
	GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error)
	ListEvents(ctx context.Context, f EventFilter) ([]models.Event, int64, error)
	CreateEvent(ctx context.Context, event *models.Event) error
	UpdateEvent(ctx context.Context, event *models.Event) error
	DeleteEvent(ctx context.Context, id uuid.UUID) error

	// CompareAndSwapEvent applies fields to the event only if its
	// version still matches expectedVersion, bumping the version in the
	// same write. Returns ErrConflict when the version moved.
	CompareAndSwapEvent(ctx context.Context, id uuid.UUID, expectedVersion int64, fields map[string]any) error

	GetAward(ctx context.Context, id uuid.UUID) (*models.Award, error)
	ListAwards(ctx context.Context, f AwardFilter) ([]models.Award, error)
	CreateAward(ctx context.Context, award *models.Award) error
	UpdateAward(ctx context.Context, award *models.Award) error
	DeleteAward(ctx context.Context, id uuid.UUID) error

	GetNomination(ctx context.Context, id uuid.UUID) (*models.Nomination, error)
	ListNominations(ctx context.Context, f NominationFilter) ([]models.Nomination, error)
	CreateNomination(ctx context.Context, nomination *models.Nomination) error
	UpdateNomination(ctx context.Context, nomination *models.Nomination) error

	// DeclareWinner promotes the nomination to winner, demotes any
	// previous winner of the award to approved and stamps the award's
	// winner name, all in one transaction serialized on the award
	// version. Returns ErrConflict when the award version moved.
	DeclareWinner(ctx context.Context, awardID, nominationID uuid.UUID, awardVersion int64, winnerName string) error

	GetRegistration(ctx context.Context, id uuid.UUID) (*models.Registration, error)
	ListRegistrations(ctx context.Context, f RegistrationFilter) ([]models.Registration, error)
	CreateRegistration(ctx context.Context, registration *models.Registration) error
	UpdateRegistration(ctx context.Context, registration *models.Registration) error

	// ActiveRegistration returns the non-cancelled registration for the
	// (event, user) pair, or ErrNotFound.
	ActiveRegistration(ctx context.Context, eventID, userID uuid.UUID) (*models.Registration, error)
}
