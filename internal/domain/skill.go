package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SkillBeginner   = "Beginner"
	SkillFamiliar   = "Familiar"
	SkillProficient = "Proficient"
	SkillExpert     = "Expert"
)

var SkillLevels = []string{SkillBeginner, SkillFamiliar, SkillProficient, SkillExpert}

func IsValidSkillLevel(level string) bool {
	for _, v := range SkillLevels {
		if v == level {
			return true
		}
	}
	return false
}

type Skill struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Level       string    `gorm:"column:level;not null" json:"level"`
	Description string    `gorm:"column:description" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Skill) TableName() string {
	return "skills"
}

func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
