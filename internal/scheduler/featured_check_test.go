package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/storefront/internal/config"
	"github.com/mrlokans/storefront/internal/entities"
)

type stubLister struct {
	rows []entities.FeaturedBook
	err  error
}

func (s *stubLister) ListFeatured(ctx context.Context) ([]entities.FeaturedBook, error) {
	return s.rows, s.err
}

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, ValidateSchedule("*/30 * * * *"))
	assert.NoError(t, ValidateSchedule("0 3 * * 1"))
	assert.Error(t, ValidateSchedule("every minute"))
	assert.Error(t, ValidateSchedule("0 0 3 * * *"), "six fields are rejected")
}

func TestCheckFeaturedOrder(t *testing.T) {
	t.Run("consistent", func(t *testing.T) {
		lister := &stubLister{rows: []entities.FeaturedBook{
			{ID: "f1", BookID: "b1", DisplayOrder: 0},
			{ID: "f2", BookID: "b2", DisplayOrder: 1},
		}}
		problems, err := CheckFeaturedOrder(context.Background(), lister)
		require.NoError(t, err)
		assert.Empty(t, problems)
	})

	t.Run("gap after delete", func(t *testing.T) {
		lister := &stubLister{rows: []entities.FeaturedBook{
			{ID: "f1", BookID: "b1", DisplayOrder: 0},
			{ID: "f3", BookID: "b3", DisplayOrder: 2},
		}}
		problems, err := CheckFeaturedOrder(context.Background(), lister)
		require.NoError(t, err)
		assert.Len(t, problems, 1)
	})

	t.Run("load error", func(t *testing.T) {
		_, err := CheckFeaturedOrder(context.Background(), &stubLister{err: errors.New("db down")})
		assert.Error(t, err)
	})
}

func TestFeaturedCheckScheduler_StartStop(t *testing.T) {
	s := NewFeaturedCheckScheduler(&stubLister{}, config.Featured{CheckSchedule: "*/30 * * * *"})
	assert.Nil(t, s.NextRun())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	assert.True(t, s.IsRunning())
	require.NotNil(t, s.NextRun())

	require.NoError(t, s.Start(ctx), "second start is a no-op")

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.NextRun())
}

func TestFeaturedCheckScheduler_InvalidSchedule(t *testing.T) {
	s := NewFeaturedCheckScheduler(&stubLister{}, config.Featured{CheckSchedule: "nope"})
	assert.Error(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
}
