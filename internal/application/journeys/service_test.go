package journeys

import (
	"context"
	"testing"

	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestJourneyLifecycle(t *testing.T) {
	svc := &Service{DB: testutil.DB(t)}
	ctx := context.Background()

	_, err := svc.Create(ctx, Input{Title: ptr("Engineer")})
	assert.Error(t, err)

	j, err := svc.Create(ctx, Input{Title: ptr("Engineer"), Company: ptr("Acme"), Period: ptr("2021 - Present")})
	require.NoError(t, err)
	assert.Equal(t, "2021 - Present", j.Period)

	got, err := svc.Update(ctx, j.ID.String(), Input{Description: ptr("Built things")})
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Company)
	assert.Equal(t, "Built things", got.Description)

	require.NoError(t, svc.Delete(ctx, j.ID.String()))
	require.NoError(t, svc.Delete(ctx, j.ID.String()))
	_, err = svc.Get(ctx, j.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
