package store

import (
	"context"
	"sort"
	"sync"

	"github.com/confawards/confawards/internal/models"
	"github.com/google/uuid"
)

// Memory is an in-process Catalog used by tests and the demo seeder.
// It honours the same version semantics as the GORM store so the
// ledger's compare-and-swap behaves identically against either.
type Memory struct {
	mu            sync.Mutex
	events        map[uuid.UUID]models.Event
	awards        map[uuid.UUID]models.Award
	nominations   map[uuid.UUID]models.Nomination
	registrations map[uuid.UUID]models.Registration
}

var _ Catalog = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		events:        make(map[uuid.UUID]models.Event),
		awards:        make(map[uuid.UUID]models.Award),
		nominations:   make(map[uuid.UUID]models.Nomination),
		registrations: make(map[uuid.UUID]models.Registration),
	}
}

// ─── Events ──────────────────────────────────────────────────────────

func (m *Memory) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	event, ok := m.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &event, nil
}

func (m *Memory) ListEvents(ctx context.Context, f EventFilter) ([]models.Event, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var events []models.Event
	for _, event := range m.events {
		if f.Status != "" && event.Status != f.Status {
			continue
		}
		if f.Featured != nil && event.IsFeatured != *f.Featured {
			continue
		}
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].StartDate.After(events[j].StartDate) })
	total := int64(len(events))
	if f.Limit > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * f.Limit
		if start > len(events) {
			start = len(events)
		}
		end := start + f.Limit
		if end > len(events) {
			end = len(events)
		}
		events = events[start:end]
	}
	return events, total, nil
}

func (m *Memory) CreateEvent(ctx context.Context, event *models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	m.events[event.ID] = *event
	return nil
}

func (m *Memory) UpdateEvent(ctx context.Context, event *models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[event.ID]; !ok {
		return ErrNotFound
	}
	m.events[event.ID] = *event
	return nil
}

func (m *Memory) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[id]; !ok {
		return ErrNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *Memory) CompareAndSwapEvent(ctx context.Context, id uuid.UUID, expectedVersion int64, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	event, ok := m.events[id]
	if !ok {
		return ErrNotFound
	}
	if event.Version != expectedVersion {
		return ErrConflict
	}
	for field, value := range fields {
		switch field {
		case "available_seats":
			event.AvailableSeats = value.(int)
		case "status":
			event.Status = value.(string)
		}
	}
	event.Version = expectedVersion + 1
	m.events[id] = event
	return nil
}

// ─── Awards ──────────────────────────────────────────────────────────

func (m *Memory) GetAward(ctx context.Context, id uuid.UUID) (*models.Award, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	award, ok := m.awards[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &award, nil
}

func (m *Memory) ListAwards(ctx context.Context, f AwardFilter) ([]models.Award, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var awards []models.Award
	for _, award := range m.awards {
		if f.Status != "" && award.Status != f.Status {
			continue
		}
		if f.Year != 0 && award.Year != f.Year {
			continue
		}
		awards = append(awards, award)
	}
	sort.Slice(awards, func(i, j int) bool { return awards[i].Year > awards[j].Year })
	return awards, nil
}

func (m *Memory) CreateAward(ctx context.Context, award *models.Award) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if award.ID == uuid.Nil {
		award.ID = uuid.New()
	}
	m.awards[award.ID] = *award
	return nil
}

func (m *Memory) UpdateAward(ctx context.Context, award *models.Award) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.awards[award.ID]; !ok {
		return ErrNotFound
	}
	m.awards[award.ID] = *award
	return nil
}

func (m *Memory) DeleteAward(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.awards[id]; !ok {
		return ErrNotFound
	}
	delete(m.awards, id)
	return nil
}

// ─── Nominations ─────────────────────────────────────────────────────

func (m *Memory) GetNomination(ctx context.Context, id uuid.UUID) (*models.Nomination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	nomination, ok := m.nominations[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &nomination, nil
}

func (m *Memory) ListNominations(ctx context.Context, f NominationFilter) ([]models.Nomination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var nominations []models.Nomination
	for _, nomination := range m.nominations {
		if f.AwardID != uuid.Nil && nomination.AwardID != f.AwardID {
			continue
		}
		if f.SubmitterID != uuid.Nil && nomination.SubmitterID != f.SubmitterID {
			continue
		}
		if f.Status != "" && nomination.Status != f.Status {
			continue
		}
		nominations = append(nominations, nomination)
	}
	sort.Slice(nominations, func(i, j int) bool {
		return nominations[i].CreatedAt.After(nominations[j].CreatedAt)
	})
	return nominations, nil
}

func (m *Memory) CreateNomination(ctx context.Context, nomination *models.Nomination) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if nomination.ID == uuid.Nil {
		nomination.ID = uuid.New()
	}
	m.nominations[nomination.ID] = *nomination
	return nil
}

func (m *Memory) UpdateNomination(ctx context.Context, nomination *models.Nomination) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.nominations[nomination.ID]; !ok {
		return ErrNotFound
	}
	m.nominations[nomination.ID] = *nomination
	return nil
}

func (m *Memory) DeclareWinner(ctx context.Context, awardID, nominationID uuid.UUID, awardVersion int64, winnerName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	award, ok := m.awards[awardID]
	if !ok {
		return ErrNotFound
	}
	if award.Version != awardVersion {
		return ErrConflict
	}
	nomination, ok := m.nominations[nominationID]
	if !ok || nomination.AwardID != awardID {
		return ErrNotFound
	}
	for id, other := range m.nominations {
		if other.AwardID == awardID && other.Status == models.NominationStatusWinner && id != nominationID {
			other.Status = models.NominationStatusApproved
			m.nominations[id] = other
		}
	}
	nomination.Status = models.NominationStatusWinner
	m.nominations[nominationID] = nomination
	award.WinnerName = &winnerName
	award.Version = awardVersion + 1
	m.awards[awardID] = award
	return nil
}

// ─── Registrations ───────────────────────────────────────────────────

func (m *Memory) GetRegistration(ctx context.Context, id uuid.UUID) (*models.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	registration, ok := m.registrations[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &registration, nil
}

func (m *Memory) ListRegistrations(ctx context.Context, f RegistrationFilter) ([]models.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var registrations []models.Registration
	for _, registration := range m.registrations {
		if f.EventID != uuid.Nil && registration.EventID != f.EventID {
			continue
		}
		if f.UserID != uuid.Nil && registration.UserID != f.UserID {
			continue
		}
		registrations = append(registrations, registration)
	}
	sort.Slice(registrations, func(i, j int) bool {
		return registrations[i].CreatedAt.After(registrations[j].CreatedAt)
	})
	return registrations, nil
}

func (m *Memory) CreateRegistration(ctx context.Context, registration *models.Registration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if registration.ID == uuid.Nil {
		registration.ID = uuid.New()
	}
	m.registrations[registration.ID] = *registration
	return nil
}

func (m *Memory) UpdateRegistration(ctx context.Context, registration *models.Registration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.registrations[registration.ID]; !ok {
		return ErrNotFound
	}
	m.registrations[registration.ID] = *registration
	return nil
}

func (m *Memory) ActiveRegistration(ctx context.Context, eventID, userID uuid.UUID) (*models.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, registration := range m.registrations {
		if registration.EventID == eventID && registration.UserID == userID &&
			registration.Status == models.RegistrationStatusActive {
			return &registration, nil
		}
	}
	return nil, ErrNotFound
}
