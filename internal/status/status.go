// Package status enforces the lifecycle rules for events, awards,
// nominations and registrations. Every mutating operation validates its
// transition here before anything is persisted.
package status

import (
	"errors"
	"fmt"
	"time"

	"github.com/confawards/confawards/internal/models"
)

// ErrInvalidTransition is returned for any transition the lifecycle
// tables do not allow.
var ErrInvalidTransition = errors.New("invalid status transition")

// Event statuses form a monotonic chain: upcoming → ongoing → completed.
// An admin override may skip ahead but never move backwards.
var eventRank = map[string]int{
	models.EventStatusUpcoming:  0,
	models.EventStatusOngoing:   1,
	models.EventStatusCompleted: 2,
}

// Award transitions are explicit edges; there is no skipping.
var awardEdges = map[string]string{
	models.AwardStatusUpcoming: models.AwardStatusOpen,
	models.AwardStatusOpen:     models.AwardStatusClosed,
}

// Nomination transitions. rejected and winner are terminal for callers;
// the winner→approved demotion only happens inside a winner promotion
// and is not a caller-visible transition.
var nominationEdges = map[string][]string{
	models.NominationStatusPending:  {models.NominationStatusApproved, models.NominationStatusRejected},
	models.NominationStatusApproved: {models.NominationStatusWinner},
}

// StepEvent validates an event status advance. Equal or backwards moves
// fail; skipping ahead is allowed for admin overrides.
func StepEvent(from, to string) error {
	fromRank, ok := eventRank[from]
	if !ok {
		return fmt.Errorf("%w: unknown event status %q", ErrInvalidTransition, from)
	}
	toRank, ok := eventRank[to]
	if !ok {
		return fmt.Errorf("%w: unknown event status %q", ErrInvalidTransition, to)
	}
	if toRank <= fromRank {
		return fmt.Errorf("%w: event %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// StepAward validates an award status change.
func StepAward(from, to string) error {
	if awardEdges[from] != to {
		return fmt.Errorf("%w: award %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// StepNomination validates a nomination status change.
func StepNomination(from, to string) error {
	for _, allowed := range nominationEdges[from] {
		if allowed == to {
			return nil
		}
	}
	return fmt.Errorf("%w: nomination %s -> %s", ErrInvalidTransition, from, to)
}

// StepRegistration validates a registration status change.
func StepRegistration(from, to string) error {
	if from != models.RegistrationStatusActive || to != models.RegistrationStatusCancelled {
		return fmt.Errorf("%w: registration %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// EffectiveEvent derives the event status from the wall clock and
// merges it with the stored status, keeping whichever is further along.
// The stored status can lead the clock (admin force-advance) but the
// clock can never rewind it.
func EffectiveEvent(event *models.Event, now time.Time) string {
	derived := models.EventStatusUpcoming
	switch {
	case !now.Before(event.EndDate):
		derived = models.EventStatusCompleted
	case !now.Before(event.StartDate):
		derived = models.EventStatusOngoing
	}
	if eventRank[event.Status] > eventRank[derived] {
		return event.Status
	}
	return derived
}

// EffectiveAward collapses an open award to closed once its nomination
// deadline has elapsed. All other stored statuses pass through.
func EffectiveAward(award *models.Award, now time.Time) string {
	if award.Status == models.AwardStatusOpen && !award.NominationEnd.IsZero() && now.After(award.NominationEnd) {
		return models.AwardStatusClosed
	}
	return award.Status
}
