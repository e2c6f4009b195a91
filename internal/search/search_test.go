package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
)

// setupTestIndex creates a temporary search index for testing.
func setupTestIndex(t *testing.T) *ItemIndex {
	t.Helper()

	index, err := NewItemIndex(Options{
		DataPath: t.TempDir(),
		Logger:   nil,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = index.Close()
	})

	return index
}

func seedTestDocs(t *testing.T, index *ItemIndex) {
	t.Helper()

	due := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	docs := []*ItemDocument{
		{
			ID: "itm_1", Title: "Kampagnen-Newsletter September",
			Channel: "E-Mail", Format: "Newsletter", Status: "draft",
			OwnerID: "usr_mara", Tags: []string{"q3"},
			DueAt: due.UnixMilli(),
		},
		{
			ID: "itm_2", Title: "Landingpage Relaunch",
			Channel: "Website", Format: "Landing Page", Status: "review",
			OwnerID: "usr_jonas",
		},
		{
			ID: "itm_3", Title: "LinkedIn Karussell Produktlaunch",
			Channel: "LinkedIn", Format: "Karussell", Status: "draft",
			OwnerID: "usr_mara", Tags: []string{"launch", "q3"},
		},
	}

	require.NoError(t, index.IndexDocuments(docs))
}

func TestNewItemIndex(t *testing.T) {
	index := setupTestIndex(t)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestItemIndex_IndexAndDelete(t *testing.T) {
	index := setupTestIndex(t)

	item := domain.NewContentItem("itm_1", "Blogartikel zur Messe")
	item.Channel = "Website"
	item.Format = "Blogartikel"

	require.NoError(t, index.IndexDocument(ItemToDocument(item)))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)

	require.NoError(t, index.DeleteDocument("itm_1"))

	count, err = index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestSearch_TitleMatch(t *testing.T) {
	index := setupTestIndex(t)
	seedTestDocs(t, index)

	params := DefaultParams()
	params.Query = "Newsletter"

	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "itm_1", result.Hits[0].ID)
}

func TestSearch_ChannelFilter(t *testing.T) {
	index := setupTestIndex(t)
	seedTestDocs(t, index)

	params := DefaultParams()
	params.Channel = "LinkedIn"

	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "itm_3", result.Hits[0].ID)
}

func TestSearch_StatusAndOwnerFilter(t *testing.T) {
	index := setupTestIndex(t)
	seedTestDocs(t, index)

	params := DefaultParams()
	params.Status = "draft"
	params.OwnerID = "usr_mara"

	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), result.Total)
}

func TestSearch_TagFilter(t *testing.T) {
	index := setupTestIndex(t)
	seedTestDocs(t, index)

	params := DefaultParams()
	params.Tags = []string{"launch"}

	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "itm_3", result.Hits[0].ID)
}

func TestSearch_MatchAllWithFacets(t *testing.T) {
	index := setupTestIndex(t)
	seedTestDocs(t, index)

	result, err := index.Search(context.Background(), DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, uint64(3), result.Total)
	assert.NotEmpty(t, result.Facets.Channels)
	assert.NotEmpty(t, result.Facets.Statuses)
}

func TestSearch_DueRangeFilter(t *testing.T) {
	index := setupTestIndex(t)
	seedTestDocs(t, index)

	params := DefaultParams()
	params.DueAfter = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC).UnixMilli()

	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "itm_1", result.Hits[0].ID)
}

func TestRebuildEmptiesIndex(t *testing.T) {
	index := setupTestIndex(t)
	seedTestDocs(t, index)

	require.NoError(t, index.Rebuild())

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}
