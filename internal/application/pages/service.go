// Package pages assembles the payloads of the public pages behind the
// read-through cache. Each page has its own key, so the same row may be cached
// under several keys, and writes do not invalidate anything: a page catches up
// once its entry is older than the TTL.
package pages

import (
	"context"
	"time"

	"portfolio-backend/internal/application/journeys"
	"portfolio-backend/internal/application/profile"
	"portfolio-backend/internal/application/reviews"
	"portfolio-backend/internal/application/skills"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/pkg/cache"

	"golang.org/x/sync/errgroup"
)

const (
	KeyHome    = "profile_home_data"
	KeySidebar = "profile_sidebar_cache"
	KeyAbout   = "about_page_data"
	KeyContact = "profile_contact_info"
	KeyReviews = "reviews_data_cache"

	DefaultTTL = time.Hour
)

type Service struct {
	Cache *cache.Cache
	TTL   time.Duration

	Profile  *profile.Service
	Journeys *journeys.Service
	Skills   *skills.Service
	Reviews  *reviews.Service
}

// About is the about page payload.
type About struct {
	Profile  *domain.PersonalInfo `json:"profile"`
	Journeys []domain.Journey     `json:"journeys"`
	Skills   []domain.Skill       `json:"skills"`
}

// Contact is the subset of the profile shown on the contact page.
type Contact struct {
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Location    string `json:"location"`
}

func (s *Service) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultTTL
	}
	return s.TTL
}

// Home returns the profile for the landing page; nil when no profile exists.
func (s *Service) Home(ctx context.Context) (*domain.PersonalInfo, error) {
	return cache.LoadWithCache(ctx, s.Cache, KeyHome, s.ttl(), s.Profile.Get)
}

// Sidebar returns the profile shown in the site sidebar.
func (s *Service) Sidebar(ctx context.Context) (*domain.PersonalInfo, error) {
	return cache.LoadWithCache(ctx, s.Cache, KeySidebar, s.ttl(), s.Profile.Get)
}

// About loads profile, journeys and skills in parallel.
func (s *Service) About(ctx context.Context) (*About, error) {
	return cache.LoadWithCache(ctx, s.Cache, KeyAbout, s.ttl(), func(ctx context.Context) (*About, error) {
		out := &About{}
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			p, err := s.Profile.Get(gctx)
			out.Profile = p
			return err
		})
		g.Go(func() error {
			j, err := s.Journeys.List(gctx)
			out.Journeys = j
			return err
		})
		g.Go(func() error {
			sk, err := s.Skills.List(gctx)
			out.Skills = sk
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return out, nil
	})
}

func (s *Service) Contact(ctx context.Context) (*Contact, error) {
	return cache.LoadWithCache(ctx, s.Cache, KeyContact, s.ttl(), func(ctx context.Context) (*Contact, error) {
		p, err := s.Profile.Get(ctx)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return &Contact{}, nil
		}
		return &Contact{Email: p.Email, PhoneNumber: p.PhoneNumber, Location: p.Location}, nil
	})
}

func (s *Service) ReviewList(ctx context.Context) ([]domain.Review, error) {
	return cache.LoadWithCache(ctx, s.Cache, KeyReviews, s.ttl(), s.Reviews.List)
}
