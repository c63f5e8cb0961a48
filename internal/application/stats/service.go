package stats

import (
	"context"

	"portfolio-backend/internal/application/crud"
	"portfolio-backend/internal/domain"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Stats are the admin dashboard counters.
type Stats struct {
	Projects     int64 `json:"projects"`
	Reviews      int64 `json:"reviews"`
	Certificates int64 `json:"certificates"`
	Skills       int64 `json:"skills"`
	Journeys     int64 `json:"journeys"`
	ActiveCodes  int64 `json:"active_codes"`
}

type Service struct {
	DB *gorm.DB
}

// Get counts every resource concurrently.
func (s *Service) Get(ctx context.Context) (*Stats, error) {
	var st Stats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		st.Projects, err = crud.Count[domain.Project](ctx, s.DB, nil)
		return
	})
	g.Go(func() (err error) {
		st.Reviews, err = crud.Count[domain.Review](ctx, s.DB, nil)
		return
	})
	g.Go(func() (err error) {
		st.Certificates, err = crud.Count[domain.Certificate](ctx, s.DB, nil)
		return
	})
	g.Go(func() (err error) {
		st.Skills, err = crud.Count[domain.Skill](ctx, s.DB, nil)
		return
	})
	g.Go(func() (err error) {
		st.Journeys, err = crud.Count[domain.Journey](ctx, s.DB, nil)
		return
	})
	g.Go(func() (err error) {
		st.ActiveCodes, err = crud.Count[domain.ReviewCode](ctx, s.DB, "is_used = ?", false)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &st, nil
}
