package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	InquiryStatusNew        = "new"
	InquiryStatusInProgress = "in_progress"
	InquiryStatusResolved   = "resolved"
)

// Inquiry is a contact-form message handled by staff.
type Inquiry struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Subject   string    `gorm:"not null" json:"subject"`
	Message   string    `gorm:"not null" json:"message"`
	Status    string    `gorm:"not null;default:'new'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (inquiry *Inquiry) BeforeCreate(tx *gorm.DB) (err error) {
	if inquiry.ID == uuid.Nil {
		inquiry.ID = uuid.New()
	}
	return
}
