package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AwardStatusUpcoming = "upcoming"
	AwardStatusOpen     = "open"
	AwardStatusClosed   = "closed"
)

// Award is a yearly award program. Nominations are accepted only while
// the award is open; WinnerName is filled in when a nomination is
// declared winner. Version guards the single-winner promotion.
type Award struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title           string    `gorm:"not null" json:"title"`
	Category        string    `gorm:"not null" json:"category"`
	Description     string    `json:"description"`
	Year            int       `gorm:"not null" json:"year"`
	NominationStart time.Time `json:"nomination_start"`
	NominationEnd   time.Time `json:"nomination_end"`
	WinnerName      *string   `json:"winner_name"`
	Status          string    `gorm:"not null;default:'upcoming'" json:"status"`
	Version         int64     `gorm:"not null;default:0" json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"-"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (award *Award) BeforeCreate(tx *gorm.DB) (err error) {
	if award.ID == uuid.Nil {
		award.ID = uuid.New()
	}
	return
}
