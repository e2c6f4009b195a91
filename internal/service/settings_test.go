package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/content"
	domainerrors "github.com/aivladyslavai/MarketingKreis-sub000/internal/errors"
)

func TestSettingsDefaults(t *testing.T) {
	s := setupStore(t)
	settings := NewSettingsService(s, testLogger())

	got, err := settings.Get(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, got.WorkspaceName)
	assert.Equal(t, content.SortUpdatedDesc, got.DefaultSort)
}

func TestUpdateSettings(t *testing.T) {
	s := setupStore(t)
	settings := NewSettingsService(s, testLogger())
	ctx := context.Background()

	updated, err := settings.Update(ctx, UpdateSettingsRequest{
		WorkspaceName: "MarketingKreis Nord",
		DefaultSort:   content.SortDueAsc,
	})
	require.NoError(t, err)
	assert.Equal(t, "MarketingKreis Nord", updated.WorkspaceName)

	got, err := settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, content.SortDueAsc, got.DefaultSort)
}

func TestUpdateSettingsRejectsUnknownSort(t *testing.T) {
	s := setupStore(t)
	settings := NewSettingsService(s, testLogger())

	_, err := settings.Update(context.Background(), UpdateSettingsRequest{
		WorkspaceName: "MarketingKreis",
		DefaultSort:   "by_vibes",
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}
