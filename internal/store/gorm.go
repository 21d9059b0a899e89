package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/confawards/confawards/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gorm implements Catalog on top of a *gorm.DB.
type Gorm struct {
	db *gorm.DB
}

var _ Catalog = (*Gorm)(nil)

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func translate(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ─── Events ──────────────────────────────────────────────────────────

func (s *Gorm) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		return nil, translate(err, "get event")
	}
	return &event, nil
}

func (s *Gorm) ListEvents(ctx context.Context, f EventFilter) ([]models.Event, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Event{})
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Featured != nil {
		query = query.Where("is_featured = ?", *f.Featured)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	if f.Limit > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * f.Limit).Limit(f.Limit)
	}

	var events []models.Event
	if err := query.Order("start_date DESC").Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	return events, total, nil
}

func (s *Gorm) CreateEvent(ctx context.Context, event *models.Event) error {
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *Gorm) UpdateEvent(ctx context.Context, event *models.Event) error {
	if err := s.db.WithContext(ctx).Save(event).Error; err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

func (s *Gorm) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Event{})
	if result.Error != nil {
		return fmt.Errorf("delete event: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Gorm) CompareAndSwapEvent(ctx context.Context, id uuid.UUID, expectedVersion int64, fields map[string]any) error {
	updates := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		updates[k] = v
	}
	updates["version"] = expectedVersion + 1

	result := s.db.WithContext(ctx).Model(&models.Event{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("cas event: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Event{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("cas event: %w", err)
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrConflict
	}
	return nil
}

// ─── Awards ──────────────────────────────────────────────────────────

func (s *Gorm) GetAward(ctx context.Context, id uuid.UUID) (*models.Award, error) {
	var award models.Award
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&award).Error; err != nil {
		return nil, translate(err, "get award")
	}
	return &award, nil
}

func (s *Gorm) ListAwards(ctx context.Context, f AwardFilter) ([]models.Award, error) {
	query := s.db.WithContext(ctx).Model(&models.Award{})
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Year != 0 {
		query = query.Where("year = ?", f.Year)
	}

	var awards []models.Award
	if err := query.Order("year DESC").Find(&awards).Error; err != nil {
		return nil, fmt.Errorf("list awards: %w", err)
	}
	return awards, nil
}

func (s *Gorm) CreateAward(ctx context.Context, award *models.Award) error {
	if err := s.db.WithContext(ctx).Create(award).Error; err != nil {
		return fmt.Errorf("create award: %w", err)
	}
	return nil
}

func (s *Gorm) UpdateAward(ctx context.Context, award *models.Award) error {
	if err := s.db.WithContext(ctx).Save(award).Error; err != nil {
		return fmt.Errorf("update award: %w", err)
	}
	return nil
}

func (s *Gorm) DeleteAward(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Award{})
	if result.Error != nil {
		return fmt.Errorf("delete award: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ─── Nominations ─────────────────────────────────────────────────────

func (s *Gorm) GetNomination(ctx context.Context, id uuid.UUID) (*models.Nomination, error) {
	var nomination models.Nomination
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&nomination).Error; err != nil {
		return nil, translate(err, "get nomination")
	}
	return &nomination, nil
}

func (s *Gorm) ListNominations(ctx context.Context, f NominationFilter) ([]models.Nomination, error) {
	query := s.db.WithContext(ctx).Model(&models.Nomination{})
	if f.AwardID != uuid.Nil {
		query = query.Where("award_id = ?", f.AwardID)
	}
	if f.SubmitterID != uuid.Nil {
		query = query.Where("submitter_id = ?", f.SubmitterID)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}

	var nominations []models.Nomination
	if err := query.Order("created_at DESC").Find(&nominations).Error; err != nil {
		return nil, fmt.Errorf("list nominations: %w", err)
	}
	return nominations, nil
}

func (s *Gorm) CreateNomination(ctx context.Context, nomination *models.Nomination) error {
	if err := s.db.WithContext(ctx).Create(nomination).Error; err != nil {
		return fmt.Errorf("create nomination: %w", err)
	}
	return nil
}

func (s *Gorm) UpdateNomination(ctx context.Context, nomination *models.Nomination) error {
	if err := s.db.WithContext(ctx).Save(nomination).Error; err != nil {
		return fmt.Errorf("update nomination: %w", err)
	}
	return nil
}

func (s *Gorm) DeclareWinner(ctx context.Context, awardID, nominationID uuid.UUID, awardVersion int64, winnerName string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The award version is the serialization point: a concurrent
		// promotion bumps it first and forces the loser to retry.
		result := tx.Model(&models.Award{}).
			Where("id = ? AND version = ?", awardID, awardVersion).
			Updates(map[string]any{"winner_name": winnerName, "version": awardVersion + 1})
		if result.Error != nil {
			return fmt.Errorf("stamp award winner: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.Award{}).Where("id = ?", awardID).Count(&count).Error; err != nil {
				return fmt.Errorf("stamp award winner: %w", err)
			}
			if count == 0 {
				return ErrNotFound
			}
			return ErrConflict
		}

		if err := tx.Model(&models.Nomination{}).
			Where("award_id = ? AND status = ? AND id <> ?", awardID, models.NominationStatusWinner, nominationID).
			Update("status", models.NominationStatusApproved).Error; err != nil {
			return fmt.Errorf("demote previous winner: %w", err)
		}

		result = tx.Model(&models.Nomination{}).
			Where("id = ? AND award_id = ?", nominationID, awardID).
			Update("status", models.NominationStatusWinner)
		if result.Error != nil {
			return fmt.Errorf("promote winner: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ─── Registrations ───────────────────────────────────────────────────

func (s *Gorm) GetRegistration(ctx context.Context, id uuid.UUID) (*models.Registration, error) {
	var registration models.Registration
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&registration).Error; err != nil {
		return nil, translate(err, "get registration")
	}
	return &registration, nil
}

func (s *Gorm) ListRegistrations(ctx context.Context, f RegistrationFilter) ([]models.Registration, error) {
	query := s.db.WithContext(ctx).Model(&models.Registration{})
	if f.EventID != uuid.Nil {
		query = query.Where("event_id = ?", f.EventID)
	}
	if f.UserID != uuid.Nil {
		query = query.Where("user_id = ?", f.UserID)
	}

	var registrations []models.Registration
	if err := query.Order("created_at DESC").Find(&registrations).Error; err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return registrations, nil
}

func (s *Gorm) CreateRegistration(ctx context.Context, registration *models.Registration) error {
	if err := s.db.WithContext(ctx).Create(registration).Error; err != nil {
		return fmt.Errorf("create registration: %w", err)
	}
	return nil
}

func (s *Gorm) UpdateRegistration(ctx context.Context, registration *models.Registration) error {
	if err := s.db.WithContext(ctx).Save(registration).Error; err != nil {
		return fmt.Errorf("update registration: %w", err)
	}
	return nil
}

func (s *Gorm) ActiveRegistration(ctx context.Context, eventID, userID uuid.UUID) (*models.Registration, error) {
	var registration models.Registration
	err := s.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ? AND status = ?", eventID, userID, models.RegistrationStatusActive).
		First(&registration).Error
	if err != nil {
		return nil, translate(err, "find active registration")
	}
	return &registration, nil
}
