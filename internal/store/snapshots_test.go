package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/tripbudget/internal/budget"
	"github.com/theirongolddev/tripbudget/internal/model"
)

func testTrip(students int) model.TripConfig {
	return model.TripConfig{
		Group:           model.Group{Students: students, Mentors: 2},
		Trip:            model.Trip{Days: 9},
		SelectedLodging: "h",
		Lodgings:        []model.Lodging{{ID: "h", Name: "Dorsett", PairPrice: 8903, IncludesBreakfast: true}},
		Transport:       model.Transport{Included: true, PerPersonCost: 298},
		Financial:       model.Financial{PricePerStudent: 8000},
		Stakeholders:    budget.EqualShares("a", "b"),
	}
}

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "sub", "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	trip := testTrip(24)
	res := budget.Compute(trip)
	saved, err := s.Save(ctx, "baseline", trip, res)
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	got, err := s.Get(ctx, "baseline")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "Dorsett", got.Lodging)
	assert.Equal(t, res.TotalCost, got.TotalCost)
	assert.Equal(t, res.NetProfit, got.NetProfit)
	assert.True(t, saved.CreatedAt.Equal(got.CreatedAt))
	require.Len(t, got.Lines, len(res.Costs.Lines()))
	assert.Equal(t, model.CategoryHotel, got.Lines[0].Category)

	// the stored trip recomputes to the same result
	assert.Equal(t, res, budget.Compute(got.Trip))

	byID, err := s.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "baseline", byID.Name)
}

func TestSaveReplacesByName(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	_, err := s.Save(ctx, "plan", testTrip(24), budget.Compute(testTrip(24)))
	require.NoError(t, err)
	second, err := s.Save(ctx, "plan", testTrip(30), budget.Compute(testTrip(30)))
	require.NoError(t, err)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := s.Get(ctx, "plan")
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
	assert.Equal(t, 30, got.Students)
}

func TestListAndDelete(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	for _, name := range []string{"a", "b", "c"} {
		_, err := s.Save(ctx, name, testTrip(10), budget.Compute(testTrip(10)))
		require.NoError(t, err)
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, snap := range list {
		assert.Empty(t, snap.Lines)
		assert.False(t, snap.CreatedAt.IsZero())
	}

	require.NoError(t, s.Delete(ctx, "b"))
	err = s.Delete(ctx, "b")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = s.Get(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
