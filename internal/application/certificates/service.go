package certificates

import (
	"context"
	"strings"

	"portfolio-backend/internal/application/crud"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/pkg/validation"

	"gorm.io/gorm"
)

// Input is a create or partial update payload.
type Input struct {
	Title    *string `json:"title"`
	Issuer   *string `json:"issuer"`
	IssuedAt *string `json:"issued_at"`
	Link     *string `json:"link"`
	Image    *string `json:"image"`
	Type     *string `json:"type"`
}

type Service struct {
	DB *gorm.DB
}

func (s *Service) List(ctx context.Context) ([]domain.Certificate, error) {
	return crud.List[domain.Certificate](ctx, s.DB, "issued_at DESC, created_at DESC")
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Certificate, error) {
	return crud.Get[domain.Certificate](ctx, s.DB, id)
}

func checkType(t *string) error {
	if t != nil && !domain.IsValidCertificateType(*t) {
		return domain.Invalid("type must be one of " + strings.Join(domain.CertificateTypes, ", "))
	}
	return nil
}

func parseIssuedAt(v *string) (domain.Date, error) {
	if v == nil || *v == "" {
		return "", nil
	}
	d, err := domain.ParseDate(*v)
	if err != nil {
		return "", domain.Invalid("issued_at must be a date (YYYY-MM-DD)")
	}
	return d, nil
}

// Create inserts a certificate. imageURL, when non-empty, replaces the payload image.
func (s *Service) Create(ctx context.Context, in Input, imageURL string) (*domain.Certificate, error) {
	var title, issuer string
	if in.Title != nil {
		title = *in.Title
	}
	if in.Issuer != nil {
		issuer = *in.Issuer
	}
	if missing := validation.MissingFields("title", title, "issuer", issuer); len(missing) > 0 {
		return nil, domain.Invalid("Missing required fields: " + strings.Join(missing, ", "))
	}
	if err := checkType(in.Type); err != nil {
		return nil, err
	}
	issuedAt, err := parseIssuedAt(in.IssuedAt)
	if err != nil {
		return nil, err
	}
	c := &domain.Certificate{
		Title:    title,
		Issuer:   issuer,
		IssuedAt: issuedAt,
		Type:     domain.CertificateGeneral,
	}
	if in.Type != nil {
		c.Type = *in.Type
	}
	if in.Link != nil {
		c.Link = *in.Link
	}
	if in.Image != nil {
		c.Image = *in.Image
	}
	if imageURL != "" {
		c.Image = imageURL
	}
	if err := crud.Create(ctx, s.DB, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update applies the provided fields. imageURL, when non-empty, replaces the image.
func (s *Service) Update(ctx context.Context, id string, in Input, imageURL string) (*domain.Certificate, error) {
	if in.Title != nil && validation.Blank(*in.Title) {
		return nil, domain.Invalid("title cannot be empty")
	}
	if in.Issuer != nil && validation.Blank(*in.Issuer) {
		return nil, domain.Invalid("issuer cannot be empty")
	}
	if err := checkType(in.Type); err != nil {
		return nil, err
	}
	f := crud.Fields{}
	if in.IssuedAt != nil {
		issuedAt, err := parseIssuedAt(in.IssuedAt)
		if err != nil {
			return nil, err
		}
		f["issued_at"] = issuedAt
	}
	f.SetString("title", in.Title)
	f.SetString("issuer", in.Issuer)
	f.SetString("link", in.Link)
	f.SetString("image", in.Image)
	f.SetString("type", in.Type)
	if imageURL != "" {
		f["image"] = imageURL
	}
	return crud.Update[domain.Certificate](ctx, s.DB, id, f)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return crud.Delete[domain.Certificate](ctx, s.DB, id)
}
