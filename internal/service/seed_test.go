package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
	domainerrors "github.com/aivladyslavai/MarketingKreis-sub000/internal/errors"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/jobs"
)

func TestSeedGatedByFlag(t *testing.T) {
	s := setupStore(t)
	seed := NewSeedService(s, jobs.NewRegistry(testLogger()), nil, testLogger())

	// Demo seeding ships disabled.
	_, err := seed.Seed(context.Background())
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestSeedFillsEmptyWorkspace(t *testing.T) {
	s := setupStore(t)
	registry := jobs.NewRegistry(testLogger())
	seed := NewSeedService(s, registry, nil, testLogger())
	ctx := context.Background()

	_, err := s.SetFlag(ctx, domain.FlagDemoSeed, true)
	require.NoError(t, err)

	result, err := seed.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, result.Items)
	assert.Equal(t, 5, result.Tasks)
	assert.Equal(t, 3, result.Templates)

	items, err := s.ListItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 8)

	runs := registry.List()
	require.Len(t, runs, 1)
	assert.Equal(t, "seed:demo", runs[0].Name)
	assert.Equal(t, jobs.StateCompleted, runs[0].State)

	// A workspace with content refuses to seed again.
	_, err = seed.Seed(ctx)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}
