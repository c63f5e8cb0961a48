package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewCode is a single-use invitation token that lets one client submit a review.
// IsUsed flips from false to true exactly once and never reverts.
type ReviewCode struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Code       string    `gorm:"column:code;not null;uniqueIndex" json:"code"`
	ClientName string    `gorm:"column:client_name" json:"client_name"`
	IsUsed     bool      `gorm:"column:is_used;not null;default:false" json:"is_used"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

func (ReviewCode) TableName() string {
	return "review_codes"
}

func (r *ReviewCode) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
