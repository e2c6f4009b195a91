package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/taxonomy"
)

func TestTaxonomyDerivedFromLiveData(t *testing.T) {
	s := setupStore(t)
	items := setupItemService(t, s)
	tasks := NewTaskService(s, testLogger())
	taxonomyService := NewTaxonomyService(s, testLogger())
	ctx := context.Background()

	_, err := items.CreateItem(ctx, CreateItemRequest{Title: "Interview Folge 12", Channel: "Podcast", Format: "Interview"})
	require.NoError(t, err)
	_, err = items.CreateItem(ctx, CreateItemRequest{Title: "Sonder-Newsletter", Channel: "e-mail", Format: "Sonderausgabe"})
	require.NoError(t, err)
	_, err = tasks.CreateTask(ctx, CreateTaskRequest{Title: "Folge schneiden", Channel: "podcast", Format: "interview"})
	require.NoError(t, err)

	tax, err := taxonomyService.Current(ctx)
	require.NoError(t, err)

	// Presets plus the one genuinely new channel.
	assert.Len(t, tax.Channels, taxonomy.PresetChannelCount()+1)
	assert.Contains(t, tax.Channels, "Podcast")

	// Case-insensitive merge: "e-mail" folds into the preset channel.
	assert.NotContains(t, tax.Channels, "e-mail")
	assert.Contains(t, tax.FormatsByChannel["E-Mail"], "Sonderausgabe")

	// First-seen casing wins for new channels and formats.
	assert.Equal(t, []string{"Interview"}, tax.FormatsByChannel["Podcast"])

	// The most-used observed pair ranks first among the quick combos.
	require.NotEmpty(t, tax.QuickCombos)
	assert.Equal(t, taxonomy.Combo{Channel: "Podcast", Format: "Interview"}, tax.QuickCombos[0])
}
