package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PersonalInfo is the site owner's profile. The public site reads the first row only.
type PersonalInfo struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Fullname    string    `gorm:"column:fullname" json:"fullname"`
	Headline    string    `gorm:"column:headline" json:"headline"`
	Email       string    `gorm:"column:email" json:"email"`
	PhoneNumber string    `gorm:"column:phone_number" json:"phone_number"`
	Location    string    `gorm:"column:location" json:"location"`
	BioSidebar  string    `gorm:"column:bio_sidebar;type:text" json:"bio_sidebar"`
	BioHero     string    `gorm:"column:bio_hero;type:text" json:"bio_hero"`
	AboutMe     string    `gorm:"column:about_me;type:text" json:"about_me"`
	AvatarURL   string    `gorm:"column:avatar_url" json:"avatar_url"`
	CVURL       string    `gorm:"column:cv_url" json:"cv_url"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (PersonalInfo) TableName() string {
	return "personal_info"
}

func (p *PersonalInfo) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
