package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RegistrationStatusActive    = "active"
	RegistrationStatusCancelled = "cancelled"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Registration ties a user to an event seat. Only active registrations
// count against the event's seat inventory. PaymentStatus is set by the
// external payment collaborator, never by this service on its own.
type Registration struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	EventID       uuid.UUID `gorm:"type:uuid;not null;index:idx_registrations_event_user" json:"event_id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index:idx_registrations_event_user" json:"user_id"`
	UserName      string    `gorm:"not null" json:"user_name"`
	UserEmail     string    `gorm:"not null" json:"user_email"`
	TicketType    string    `gorm:"not null;default:'standard'" json:"ticket_type"`
	PaymentAmount float64   `gorm:"not null;default:0" json:"payment_amount"`
	PaymentStatus string    `gorm:"not null;default:'pending'" json:"payment_status"`
	Status        string    `gorm:"not null;default:'active'" json:"status"`
	CreatedAt     time.Time `json:"registration_date"`
	UpdatedAt     time.Time `json:"-"`
}

func (registration *Registration) BeforeCreate(tx *gorm.DB) (err error) {
	if registration.ID == uuid.Nil {
		registration.ID = uuid.New()
	}
	return
}
