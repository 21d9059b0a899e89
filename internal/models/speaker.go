package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Speaker is a catalog entry managed by administrators.
type Speaker struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Title        string    `gorm:"not null" json:"title"`
	Organization string    `gorm:"not null" json:"organization"`
	Bio          string    `json:"bio"`
	Expertise    []string  `gorm:"serializer:json" json:"expertise"`
	ImageURL     string    `json:"image_url"`
	LinkedinURL  string    `json:"linkedin_url"`
	TwitterURL   string    `json:"twitter_url"`
	IsFeatured   bool      `gorm:"not null;default:false" json:"is_featured"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (speaker *Speaker) BeforeCreate(tx *gorm.DB) (err error) {
	if speaker.ID == uuid.Nil {
		speaker.ID = uuid.New()
	}
	return
}
