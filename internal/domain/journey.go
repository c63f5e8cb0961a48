package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Journey is one career entry. Period is free text ("2021 - Present").
type Journey struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Company     string    `gorm:"column:company;not null" json:"company"`
	Period      string    `gorm:"column:period" json:"period"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Journey) TableName() string {
	return "journeys"
}

func (j *Journey) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}
