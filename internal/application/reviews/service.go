// Package reviews manages testimonials from the admin side. Public submissions
// go through reviewcodes.
package reviews

import (
	"context"

	"portfolio-backend/internal/application/crud"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/pkg/validation"

	"gorm.io/gorm"
)

type Input struct {
	Name   *string `json:"name"`
	Review *string `json:"review"`
	Avatar *string `json:"avatar"`
}

type Service struct {
	DB            *gorm.DB
	DefaultAvatar string
}

func (s *Service) List(ctx context.Context) ([]domain.Review, error) {
	return crud.List[domain.Review](ctx, s.DB, "created_at DESC")
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Review, error) {
	return crud.Get[domain.Review](ctx, s.DB, id)
}

// Create inserts a review. avatarURL, when non-empty, is an uploaded avatar.
func (s *Service) Create(ctx context.Context, in Input, avatarURL string) (*domain.Review, error) {
	r := &domain.Review{}
	if in.Name != nil {
		r.Name = *in.Name
	}
	if in.Review != nil {
		r.Review = *in.Review
	}
	if validation.Blank(r.Name) || validation.Blank(r.Review) {
		return nil, domain.Invalid("Missing required fields")
	}
	if in.Avatar != nil {
		r.Avatar = *in.Avatar
	}
	if avatarURL != "" {
		r.Avatar = avatarURL
	}
	if r.Avatar == "" {
		r.Avatar = s.DefaultAvatar
	}
	if err := crud.Create(ctx, s.DB, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) Update(ctx context.Context, id string, in Input, avatarURL string) (*domain.Review, error) {
	if (in.Name != nil && validation.Blank(*in.Name)) || (in.Review != nil && validation.Blank(*in.Review)) {
		return nil, domain.Invalid("name and review cannot be empty")
	}
	f := crud.Fields{}
	f.SetString("name", in.Name)
	f.SetString("review", in.Review)
	f.SetString("avatar", in.Avatar)
	if avatarURL != "" {
		f["avatar"] = avatarURL
	}
	if v, ok := f["avatar"]; ok && v == "" {
		f["avatar"] = s.DefaultAvatar
	}
	return crud.Update[domain.Review](ctx, s.DB, id, f)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return crud.Delete[domain.Review](ctx, s.DB, id)
}
