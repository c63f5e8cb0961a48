package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CertificateCompetence  = "Competence"
	CertificateAchievement = "Achievement"
	CertificateGeneral     = "General"
)

// CertificateTypes is the set of accepted certificate types.
var CertificateTypes = []string{CertificateCompetence, CertificateAchievement, CertificateGeneral}

// IsValidCertificateType returns true if t is one of CertificateTypes.
func IsValidCertificateType(t string) bool {
	for _, v := range CertificateTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Certificate is a credential; Image points at an image or a PDF.
type Certificate struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"column:title;not null" json:"title"`
	Issuer    string    `gorm:"column:issuer;not null" json:"issuer"`
	IssuedAt  Date      `gorm:"column:issued_at;type:date" json:"issued_at"`
	Link      string    `gorm:"column:link" json:"link"`
	Image     string    `gorm:"column:image" json:"image"`
	Type      string    `gorm:"column:type;not null;default:'General'" json:"type"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Certificate) TableName() string {
	return "certificates"
}

func (c *Certificate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
