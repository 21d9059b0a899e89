// Package workflow orchestrates the lifecycle operations: event
// registration, cancellation, nomination handling and the admin status
// transitions. It consults the status engine before every mutation and
// the ledger for anything that touches seat inventory.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/confawards/confawards/internal/ledger"
	"github.com/confawards/confawards/internal/models"
	"github.com/confawards/confawards/internal/status"
	"github.com/confawards/confawards/internal/store"
	"github.com/google/uuid"
)

// Decision values accepted by DecideNomination.
const (
	DecisionApprove       = "approve"
	DecisionReject        = "reject"
	DecisionDeclareWinner = "declare_winner"
)

// declareAttempts bounds the winner-promotion retry loop when the award
// version moves under us.
const declareAttempts = 3

// Actor is the authenticated identity attached to a mutating call.
// Role checks for admin-only endpoints happen at the HTTP edge; the
// service only uses the actor for ownership and attribution.
type Actor struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  string
}

// NominationInput carries the nominee fields for a new nomination.
type NominationInput struct {
	AwardID             uuid.UUID
	NomineeName         string
	NomineeEmail        string
	NomineeOrganization string
	NominationStatement string
}

// Service wires the catalog, the ledger and the clock together.
type Service struct {
	catalog store.Catalog
	ledger  *ledger.Ledger

	// Now is the clock used for effective-status decisions. Tests
	// override it.
	Now func() time.Time
}

func New(catalog store.Catalog) *Service {
	return &Service{
		catalog: catalog,
		ledger:  ledger.New(catalog),
		Now:     time.Now,
	}
}

// RegisterForEvent reserves a seat and persists the registration. If
// the registration cannot be persisted after the seat was reserved, the
// reservation is rolled back so no seat is lost.
func (s *Service) RegisterForEvent(ctx context.Context, eventID uuid.UUID, actor Actor, ticketType string) (*models.Registration, error) {
	event, err := s.catalog.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load event: %w", err)
	}

	if st := status.EffectiveEvent(event, s.Now()); st == models.EventStatusCompleted {
		return nil, fmt.Errorf("%w: event is %s", ErrInvalidState, st)
	}

	if _, err := s.catalog.ActiveRegistration(ctx, eventID, actor.ID); err == nil {
		return nil, ErrDuplicateRegistration
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check registration: %w", err)
	}

	outcome, err := s.ledger.Reserve(ctx, eventID)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrConcurrencyConflict
		}
		return nil, err
	}
	switch outcome {
	case ledger.SoldOut:
		return nil, ErrSoldOut
	case ledger.NotFound:
		return nil, ErrNotFound
	}

	if ticketType == "" {
		ticketType = "standard"
	}
	registration := &models.Registration{
		EventID:       eventID,
		UserID:        actor.ID,
		UserName:      actor.Name,
		UserEmail:     actor.Email,
		TicketType:    ticketType,
		PaymentAmount: event.TicketPrice,
		PaymentStatus: models.PaymentStatusPending,
		Status:        models.RegistrationStatusActive,
	}
	if err := s.catalog.CreateRegistration(ctx, registration); err != nil {
		// Compensate: the seat was taken but the registration never
		// existed, so hand the seat back before surfacing the failure.
		if releaseErr := s.ledger.Release(ctx, eventID); releaseErr != nil {
			return nil, fmt.Errorf("persist registration: %w (seat release also failed: %v)", err, releaseErr)
		}
		return nil, fmt.Errorf("persist registration: %w", err)
	}
	return registration, nil
}

// CancelRegistration moves a registration to cancelled and returns its
// seat. Cancelling an already-cancelled registration is a successful
// no-op and does not touch the inventory again.
func (s *Service) CancelRegistration(ctx context.Context, registrationID uuid.UUID, actor Actor) error {
	registration, err := s.catalog.GetRegistration(ctx, registrationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load registration: %w", err)
	}

	if actor.Role != models.RoleAdmin && registration.UserID != actor.ID {
		return ErrUnauthorized
	}

	if registration.Status == models.RegistrationStatusCancelled {
		return nil
	}
	if err := status.StepRegistration(registration.Status, models.RegistrationStatusCancelled); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	registration.Status = models.RegistrationStatusCancelled
	if err := s.catalog.UpdateRegistration(ctx, registration); err != nil {
		return fmt.Errorf("persist cancellation: %w", err)
	}
	return s.ledger.Release(ctx, registration.EventID)
}

// SubmitNomination records a pending nomination for an open award.
func (s *Service) SubmitNomination(ctx context.Context, input NominationInput, actor Actor) (*models.Nomination, error) {
	award, err := s.catalog.GetAward(ctx, input.AwardID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load award: %w", err)
	}

	if st := status.EffectiveAward(award, s.Now()); st != models.AwardStatusOpen {
		return nil, fmt.Errorf("%w: award is %s", ErrInvalidState, st)
	}

	nomination := &models.Nomination{
		AwardID:             input.AwardID,
		NomineeName:         input.NomineeName,
		NomineeEmail:        input.NomineeEmail,
		NomineeOrganization: input.NomineeOrganization,
		NominationStatement: input.NominationStatement,
		SubmitterID:         actor.ID,
		Status:              models.NominationStatusPending,
	}
	if err := s.catalog.CreateNomination(ctx, nomination); err != nil {
		return nil, fmt.Errorf("persist nomination: %w", err)
	}
	return nomination, nil
}

// DecideNomination applies an approve, reject or declare_winner
// decision. Declaring a winner demotes any previous winner of the same
// award in the same logical unit; two nominations can never be observed
// holding winner at once.
func (s *Service) DecideNomination(ctx context.Context, nominationID uuid.UUID, decision string, actor Actor) (*models.Nomination, error) {
	nomination, err := s.catalog.GetNomination(ctx, nominationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load nomination: %w", err)
	}

	switch decision {
	case DecisionApprove, DecisionReject:
		target := models.NominationStatusApproved
		if decision == DecisionReject {
			target = models.NominationStatusRejected
		}
		if err := status.StepNomination(nomination.Status, target); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
		}
		nomination.Status = target
		if err := s.catalog.UpdateNomination(ctx, nomination); err != nil {
			return nil, fmt.Errorf("persist decision: %w", err)
		}
		return nomination, nil

	case DecisionDeclareWinner:
		if err := status.StepNomination(nomination.Status, models.NominationStatusWinner); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
		}
		for attempt := 0; attempt < declareAttempts; attempt++ {
			award, err := s.catalog.GetAward(ctx, nomination.AwardID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return nil, ErrNotFound
				}
				return nil, fmt.Errorf("load award: %w", err)
			}
			err = s.catalog.DeclareWinner(ctx, award.ID, nomination.ID, award.Version, nomination.NomineeName)
			if err == nil {
				nomination.Status = models.NominationStatusWinner
				return nomination, nil
			}
			if errors.Is(err, store.ErrConflict) {
				continue
			}
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("declare winner: %w", err)
		}
		return nil, ErrConcurrencyConflict

	default:
		return nil, fmt.Errorf("%w: unknown decision %q", ErrInvalidState, decision)
	}
}

// AdvanceEvent force-advances an event's stored status. Only forward
// moves are allowed; the clock-derived status is the floor.
func (s *Service) AdvanceEvent(ctx context.Context, eventID uuid.UUID, to string) (*models.Event, error) {
	for attempt := 0; attempt < declareAttempts; attempt++ {
		event, err := s.catalog.GetEvent(ctx, eventID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("load event: %w", err)
		}

		current := status.EffectiveEvent(event, s.Now())
		if err := status.StepEvent(current, to); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
		}

		err = s.catalog.CompareAndSwapEvent(ctx, eventID, event.Version, map[string]any{"status": to})
		if err == nil {
			event.Status = to
			event.Version++
			return event, nil
		}
		if errors.Is(err, store.ErrConflict) {
			continue
		}
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("advance event: %w", err)
	}
	return nil, ErrConcurrencyConflict
}

// OpenAward opens the nomination window of an upcoming award.
func (s *Service) OpenAward(ctx context.Context, awardID uuid.UUID) (*models.Award, error) {
	return s.stepAward(ctx, awardID, models.AwardStatusOpen)
}

// CloseAward closes an open award explicitly, ahead of or after its
// deadline.
func (s *Service) CloseAward(ctx context.Context, awardID uuid.UUID) (*models.Award, error) {
	return s.stepAward(ctx, awardID, models.AwardStatusClosed)
}

func (s *Service) stepAward(ctx context.Context, awardID uuid.UUID, to string) (*models.Award, error) {
	award, err := s.catalog.GetAward(ctx, awardID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load award: %w", err)
	}

	if err := status.StepAward(award.Status, to); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	award.Status = to
	if err := s.catalog.UpdateAward(ctx, award); err != nil {
		return nil, fmt.Errorf("persist award status: %w", err)
	}
	return award, nil
}

// SetPaymentStatus records an externally supplied payment outcome on a
// registration. The service never initiates payment activity itself.
func (s *Service) SetPaymentStatus(ctx context.Context, registrationID uuid.UUID, paymentStatus string) (*models.Registration, error) {
	switch paymentStatus {
	case models.PaymentStatusPending, models.PaymentStatusCompleted, models.PaymentStatusFailed:
	default:
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrInvalidState, paymentStatus)
	}

	registration, err := s.catalog.GetRegistration(ctx, registrationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load registration: %w", err)
	}

	registration.PaymentStatus = paymentStatus
	if err := s.catalog.UpdateRegistration(ctx, registration); err != nil {
		return nil, fmt.Errorf("persist payment status: %w", err)
	}
	return registration, nil
}
