package profile

import (
	"context"
	"errors"

	"portfolio-backend/internal/application/crud"
	"portfolio-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Input is the profile form. ID selects the row to update; absent means a new row.
type Input struct {
	ID          string  `json:"id"`
	Fullname    *string `json:"fullname"`
	Headline    *string `json:"headline"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	Location    *string `json:"location"`
	BioSidebar  *string `json:"bio_sidebar"`
	BioHero     *string `json:"bio_hero"`
	AboutMe     *string `json:"about_me"`
	AvatarURL   *string `json:"avatar_url"`
	CVURL       *string `json:"cv_url"`
}

// Files carries public URLs of files uploaded with the form.
type Files struct {
	AvatarURL string
	CVURL     string
}

type Service struct {
	DB *gorm.DB
}

// Get returns the first profile row, or nil when none has been saved yet.
func (s *Service) Get(ctx context.Context) (*domain.PersonalInfo, error) {
	var p domain.PersonalInfo
	err := s.DB.WithContext(ctx).Order("created_at ASC").Limit(1).Find(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == uuid.Nil {
		return nil, nil
	}
	return &p, nil
}

func (in Input) fields(files Files) crud.Fields {
	f := crud.Fields{}
	f.SetString("fullname", in.Fullname)
	f.SetString("headline", in.Headline)
	f.SetString("email", in.Email)
	f.SetString("phone_number", in.PhoneNumber)
	f.SetString("location", in.Location)
	f.SetString("bio_sidebar", in.BioSidebar)
	f.SetString("bio_hero", in.BioHero)
	f.SetString("about_me", in.AboutMe)
	f.SetString("avatar_url", in.AvatarURL)
	f.SetString("cv_url", in.CVURL)
	if files.AvatarURL != "" {
		f["avatar_url"] = files.AvatarURL
	}
	if files.CVURL != "" {
		f["cv_url"] = files.CVURL
	}
	return f
}

// Upsert updates the row with in.ID, or inserts a new row when the id is
// absent or unknown.
func (s *Service) Upsert(ctx context.Context, in Input, files Files) (*domain.PersonalInfo, error) {
	var id uuid.UUID
	if in.ID != "" {
		parsed, err := uuid.Parse(in.ID)
		if err != nil {
			return nil, domain.Invalid("id must be a uuid")
		}
		id = parsed
	}
	f := in.fields(files)

	if id != uuid.Nil {
		updated, err := crud.Update[domain.PersonalInfo](ctx, s.DB, id.String(), f)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	p := &domain.PersonalInfo{ID: id}
	if err := s.DB.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	if len(f) == 0 {
		return p, nil
	}
	return crud.Update[domain.PersonalInfo](ctx, s.DB, p.ID.String(), f)
}
