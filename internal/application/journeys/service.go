package journeys

import (
	"context"
	"strings"

	"portfolio-backend/internal/application/crud"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/pkg/validation"

	"gorm.io/gorm"
)

type Input struct {
	Title       *string `json:"title"`
	Company     *string `json:"company"`
	Period      *string `json:"period"`
	Description *string `json:"description"`
}

type Service struct {
	DB *gorm.DB
}

func (s *Service) List(ctx context.Context) ([]domain.Journey, error) {
	return crud.List[domain.Journey](ctx, s.DB, "created_at DESC")
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Journey, error) {
	return crud.Get[domain.Journey](ctx, s.DB, id)
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Journey, error) {
	j := &domain.Journey{
		Title:       deref(in.Title),
		Company:     deref(in.Company),
		Period:      deref(in.Period),
		Description: deref(in.Description),
	}
	if missing := validation.MissingFields("title", j.Title, "company", j.Company); len(missing) > 0 {
		return nil, domain.Invalid("Missing required fields: " + strings.Join(missing, ", "))
	}
	if err := crud.Create(ctx, s.DB, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *Service) Update(ctx context.Context, id string, in Input) (*domain.Journey, error) {
	if (in.Title != nil && validation.Blank(*in.Title)) || (in.Company != nil && validation.Blank(*in.Company)) {
		return nil, domain.Invalid("title and company cannot be empty")
	}
	f := crud.Fields{}
	f.SetString("title", in.Title)
	f.SetString("company", in.Company)
	f.SetString("period", in.Period)
	f.SetString("description", in.Description)
	return crud.Update[domain.Journey](ctx, s.DB, id, f)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return crud.Delete[domain.Journey](ctx, s.DB, id)
}
