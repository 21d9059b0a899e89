package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EventStatusUpcoming  = "upcoming"
	EventStatusOngoing   = "ongoing"
	EventStatusCompleted = "completed"
)

// Event is a bookable conference, webinar or workshop. Capacity is fixed
// at creation; AvailableSeats is only ever touched by the ledger and is
// guarded by the Version stamp.
type Event struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title          string    `gorm:"not null" json:"title"`
	Description    string    `json:"description"`
	EventType      string    `gorm:"not null" json:"event_type"`
	StartDate      time.Time `gorm:"not null" json:"start_date"`
	EndDate        time.Time `gorm:"not null" json:"end_date"`
	Venue          string    `gorm:"not null" json:"venue"`
	City           string    `gorm:"not null" json:"city"`
	Country        string    `gorm:"not null" json:"country"`
	Capacity       int       `gorm:"not null" json:"capacity"`
	AvailableSeats int       `gorm:"not null" json:"available_seats"`
	TicketPrice    float64   `gorm:"not null;default:0" json:"ticket_price"`
	ImageURL       string    `json:"image_url"`
	Agenda         string    `json:"agenda"`
	IsFeatured     bool      `gorm:"not null;default:false" json:"is_featured"`
	Status         string    `gorm:"not null;default:'upcoming'" json:"status"`
	Version        int64     `gorm:"not null;default:0" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"-"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}
