package skills

import (
	"context"
	"strings"

	"portfolio-backend/internal/application/crud"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/pkg/validation"

	"gorm.io/gorm"
)

type Input struct {
	Name        *string `json:"name"`
	Level       *string `json:"level"`
	Description *string `json:"description"`
}

type Service struct {
	DB *gorm.DB
}

func (s *Service) List(ctx context.Context) ([]domain.Skill, error) {
	return crud.List[domain.Skill](ctx, s.DB, "created_at DESC")
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Skill, error) {
	return crud.Get[domain.Skill](ctx, s.DB, id)
}

func checkLevel(level *string) error {
	if level != nil && !domain.IsValidSkillLevel(*level) {
		return domain.Invalid("level must be one of " + strings.Join(domain.SkillLevels, ", "))
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Skill, error) {
	sk := &domain.Skill{}
	if in.Name != nil {
		sk.Name = *in.Name
	}
	if in.Level != nil {
		sk.Level = *in.Level
	}
	if in.Description != nil {
		sk.Description = *in.Description
	}
	if missing := validation.MissingFields("name", sk.Name, "level", sk.Level); len(missing) > 0 {
		return nil, domain.Invalid("Missing required fields: " + strings.Join(missing, ", "))
	}
	if err := checkLevel(in.Level); err != nil {
		return nil, err
	}
	if err := crud.Create(ctx, s.DB, sk); err != nil {
		return nil, err
	}
	return sk, nil
}

func (s *Service) Update(ctx context.Context, id string, in Input) (*domain.Skill, error) {
	if in.Name != nil && validation.Blank(*in.Name) {
		return nil, domain.Invalid("name cannot be empty")
	}
	if err := checkLevel(in.Level); err != nil {
		return nil, err
	}
	f := crud.Fields{}
	f.SetString("name", in.Name)
	f.SetString("level", in.Level)
	f.SetString("description", in.Description)
	return crud.Update[domain.Skill](ctx, s.DB, id, f)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return crud.Delete[domain.Skill](ctx, s.DB, id)
}
