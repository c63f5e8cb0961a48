package projects

import (
	"context"
	"strings"

	"portfolio-backend/internal/application/crud"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/pkg/validation"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const listOrder = "created_at DESC"

// Input is a create or partial update payload. Nil fields are left unchanged on update.
type Input struct {
	Title       *string   `json:"title"`
	Category    *string   `json:"category"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
	Images      *[]string `json:"images"`
	Github      *string   `json:"github"`
	Link        *string   `json:"link"`
}

type Service struct {
	DB *gorm.DB
}

func (s *Service) List(ctx context.Context) ([]domain.Project, error) {
	return crud.List[domain.Project](ctx, s.DB, listOrder)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Project, error) {
	return crud.Get[domain.Project](ctx, s.DB, id)
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func list(p *[]string) []string {
	if p == nil {
		return []string{}
	}
	return append([]string{}, (*p)...)
}

// Create inserts a project. uploaded holds public URLs of freshly uploaded images,
// appended after any URLs in the payload.
func (s *Service) Create(ctx context.Context, in Input, uploaded []string) (*domain.Project, error) {
	if missing := validation.MissingFields("title", str(in.Title), "category", str(in.Category), "description", str(in.Description)); len(missing) > 0 {
		return nil, domain.Invalid("Missing required fields: " + strings.Join(missing, ", "))
	}
	p := &domain.Project{
		Title:       str(in.Title),
		Category:    str(in.Category),
		Description: str(in.Description),
		Tags:        datatypes.JSONSlice[string](list(in.Tags)),
		Images:      datatypes.JSONSlice[string](append(list(in.Images), uploaded...)),
		Github:      str(in.Github),
		Link:        str(in.Link),
	}
	if err := crud.Create(ctx, s.DB, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update changes the provided fields. Uploaded images are appended to the
// payload's image list, or to the stored list when the payload has none.
func (s *Service) Update(ctx context.Context, id string, in Input, uploaded []string) (*domain.Project, error) {
	for name, v := range map[string]*string{"title": in.Title, "category": in.Category, "description": in.Description} {
		if v != nil && validation.Blank(*v) {
			return nil, domain.Invalid(name + " cannot be empty")
		}
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	f := crud.Fields{}
	f.SetString("title", in.Title)
	f.SetString("category", in.Category)
	f.SetString("description", in.Description)
	f.SetString("github", in.Github)
	f.SetString("link", in.Link)
	if in.Tags != nil {
		f["tags"] = datatypes.JSONSlice[string](list(in.Tags))
	}
	if in.Images != nil || len(uploaded) > 0 {
		images := []string(current.Images)
		if in.Images != nil {
			images = list(in.Images)
		}
		f["images"] = datatypes.JSONSlice[string](append(append([]string{}, images...), uploaded...))
	}
	return crud.Update[domain.Project](ctx, s.DB, id, f)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return crud.Delete[domain.Project](ctx, s.DB, id)
}
