package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project is a portfolio entry. Tags and Images keep their insertion order.
type Project struct {
	ID          uuid.UUID                   `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title       string                      `gorm:"column:title;not null" json:"title"`
	Category    string                      `gorm:"column:category;not null" json:"category"`
	Description string                      `gorm:"column:description;type:text;not null" json:"description"`
	Tags        datatypes.JSONSlice[string] `gorm:"column:tags" json:"tags"`
	Images      datatypes.JSONSlice[string] `gorm:"column:images" json:"images"`
	Github      string                      `gorm:"column:github" json:"github"`
	Link        string                      `gorm:"column:link" json:"link"`
	CreatedAt   time.Time                   `gorm:"column:created_at" json:"created_at"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Tags == nil {
		p.Tags = datatypes.JSONSlice[string]{}
	}
	if p.Images == nil {
		p.Images = datatypes.JSONSlice[string]{}
	}
	return nil
}
