package reviewcodes

import (
	"context"
	"crypto/rand"
	"errors"
	"strings"

	"portfolio-backend/internal/application/crud"
	"portfolio-backend/internal/application/emails"
	"portfolio-backend/internal/domain"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	CodePrefix        = "REV-"
	codeLength        = 6
	maxGenerateTries  = 5
	defaultClientName = "Unknown Client"
	base36            = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Service owns the invitation code lifecycle: generation, validation and redemption.
type Service struct {
	DB            *gorm.DB
	DefaultAvatar string

	// Mailer, when set, receives a notice for every redeemed code.
	Mailer   emails.Sender
	MailFrom string
	SiteName string

	// NewCode overrides code generation in tests.
	NewCode func() (string, error)
}

// RedeemInput is a public review submission.
type RedeemInput struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Review string `json:"review"`
	Avatar string `json:"avatar"`
}

// RandomCode returns "REV-" followed by six random base-36 characters.
func RandomCode() (string, error) {
	b := make([]byte, codeLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	out := make([]byte, codeLength)
	for i, v := range b {
		out[i] = base36[int(v)%len(base36)]
	}
	return CodePrefix + string(out), nil
}

// Validate returns the active code matching code exactly.
func (s *Service) Validate(ctx context.Context, code string) (*domain.ReviewCode, error) {
	rc, err := findCode(s.DB.WithContext(ctx), code)
	if err != nil {
		return nil, err
	}
	if rc.IsUsed {
		return nil, ErrCodeAlreadyUsed
	}
	return rc, nil
}

func findCode(db *gorm.DB, code string) (*domain.ReviewCode, error) {
	if code == "" {
		return nil, ErrInvalidCode
	}
	var rc domain.ReviewCode
	if err := db.Where("code = ?", code).First(&rc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, err
	}
	return &rc, nil
}

// Redeem consumes an active code and stores the review in one transaction.
// The conditional update guarantees a code yields at most one review even
// under concurrent submissions.
func (s *Service) Redeem(ctx context.Context, in RedeemInput) (*domain.Review, error) {
	in.Code = strings.TrimSpace(in.Code)
	if in.Code == "" || strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Review) == "" {
		return nil, domain.Invalid("Missing required fields")
	}
	review := &domain.Review{
		Name:   in.Name,
		Review: in.Review,
		Avatar: in.Avatar,
	}
	if review.Avatar == "" {
		review.Avatar = s.DefaultAvatar
	}

	var clientName string
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.ReviewCode{}).
			Where("code = ? AND is_used = ?", in.Code, false).
			Update("is_used", true)
		if res.Error != nil {
			return res.Error
		}
		rc, err := findCode(tx, in.Code)
		if err != nil {
			return err
		}
		if res.RowsAffected == 0 {
			return ErrCodeAlreadyUsed
		}
		clientName = rc.ClientName
		return tx.Create(review).Error
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, in.Code, clientName, review)
	return review, nil
}

func (s *Service) notify(ctx context.Context, code, clientName string, review *domain.Review) {
	if s.Mailer == nil || s.MailFrom == "" {
		return
	}
	msg := emails.Message{
		From:    emails.Address{Name: s.SiteName, Email: s.MailFrom},
		To:      []emails.Address{{Email: s.MailFrom}},
		Subject: "New review from " + review.Name,
		HTML:    emails.EmailLayout("New Review Submitted", s.SiteName, emails.ReviewNoticeContent(code, clientName, review.Name, review.Review)),
	}
	if err := s.Mailer.Send(ctx, msg); err != nil {
		log.Error().Err(err).Str("code", code).Msg("review notice email failed")
	}
}

// Generate creates a new active code for clientName, retrying on collisions.
func (s *Service) Generate(ctx context.Context, clientName string) (*domain.ReviewCode, error) {
	clientName = strings.TrimSpace(clientName)
	if clientName == "" {
		clientName = defaultClientName
	}
	newCode := s.NewCode
	if newCode == nil {
		newCode = RandomCode
	}
	for attempt := 1; attempt <= maxGenerateTries; attempt++ {
		code, err := newCode()
		if err != nil {
			return nil, err
		}
		rc := &domain.ReviewCode{Code: strings.ToUpper(code), ClientName: clientName}
		err = s.DB.WithContext(ctx).Create(rc).Error
		if err == nil {
			return rc, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
		log.Warn().Str("code", rc.Code).Int("attempt", attempt).Msg("review code collision, regenerating")
	}
	return nil, ErrCodeSpaceExhausted
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "unique") || strings.Contains(s, "duplicate key")
}

// List returns every code, newest first.
func (s *Service) List(ctx context.Context) ([]domain.ReviewCode, error) {
	return crud.List[domain.ReviewCode](ctx, s.DB, "created_at DESC")
}

// Delete removes a code by id. Missing ids are ignored.
func (s *Service) Delete(ctx context.Context, id string) error {
	return crud.Delete[domain.ReviewCode](ctx, s.DB, id)
}
