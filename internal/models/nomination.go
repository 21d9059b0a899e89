package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NominationStatusPending  = "pending"
	NominationStatusApproved = "approved"
	NominationStatusRejected = "rejected"
	NominationStatusWinner   = "winner"
)

// Nomination is a candidate entry for an award. At most one nomination
// per award holds the winner status at any time.
type Nomination struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AwardID             uuid.UUID `gorm:"type:uuid;not null;index" json:"award_id"`
	NomineeName         string    `gorm:"not null" json:"nominee_name"`
	NomineeEmail        string    `gorm:"not null" json:"nominee_email"`
	NomineeOrganization string    `json:"nominee_organization"`
	NominationStatement string    `gorm:"not null" json:"nomination_statement"`
	SubmitterID         uuid.UUID `gorm:"type:uuid;not null;index" json:"submitted_by"`
	Status              string    `gorm:"not null;default:'pending'" json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"-"`
}

func (nomination *Nomination) BeforeCreate(tx *gorm.DB) (err error) {
	if nomination.ID == uuid.Nil {
		nomination.ID = uuid.New()
	}
	return
}
