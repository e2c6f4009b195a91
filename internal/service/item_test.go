package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/content"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
	domainerrors "github.com/aivladyslavai/MarketingKreis-sub000/internal/errors"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/search"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/store"
)

func setupItemService(t *testing.T, s *store.Store) *ItemService {
	t.Helper()
	bulk := content.NewBulkRunner(nil, testLogger())
	return NewItemService(s, nil, bulk, testLogger())
}

func TestCreateAndGetItem(t *testing.T) {
	s := setupStore(t)
	items := setupItemService(t, s)
	ctx := context.Background()

	created, err := items.CreateItem(ctx, CreateItemRequest{
		Title:   "Kampagnen-Newsletter September",
		Channel: "E-Mail",
		Format:  "Newsletter",
		Tags:    []string{"kampagne"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusIdea, created.Status, "new items start as ideas")

	got, err := items.GetItem(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)

	_, err = items.GetItem(ctx, "item_missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCreateItemRejectsUnknownStatus(t *testing.T) {
	s := setupStore(t)
	items := setupItemService(t, s)

	_, err := items.CreateItem(context.Background(), CreateItemRequest{
		Title:  "Test",
		Status: "IN_LIMBO",
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestCreateItemFromTemplate(t *testing.T) {
	s := setupStore(t)
	items := setupItemService(t, s)
	templates := NewTemplateService(s, testLogger())
	ctx := context.Background()

	tmpl, err := templates.CreateTemplate(ctx, TemplateRequest{
		Name:    "Newsletter Standard",
		Channel: "E-Mail",
		Format:  "Newsletter",
		Body:    "Betreff:\n\nTeaser:",
	})
	require.NoError(t, err)

	item, err := items.CreateItem(ctx, CreateItemRequest{
		Title:      "Oktober-Ausgabe",
		TemplateID: tmpl.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "E-Mail", item.Channel)
	assert.Equal(t, "Newsletter", item.Format)
	assert.Equal(t, tmpl.Body, item.Notes)
	assert.Equal(t, tmpl.ID, item.TemplateID)
}

func TestUpdateItemPartial(t *testing.T) {
	s := setupStore(t)
	items := setupItemService(t, s)
	ctx := context.Background()

	created, err := items.CreateItem(ctx, CreateItemRequest{Title: "Entwurf", Channel: "Website"})
	require.NoError(t, err)

	newStatus := string(domain.StatusReview)
	updated, err := items.UpdateItem(ctx, created.ID, UpdateItemRequest{Status: &newStatus})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReview, updated.Status)
	assert.Equal(t, "Website", updated.Channel, "unset fields stay unchanged")
}

func TestListItemsFiltersAndDefaultSort(t *testing.T) {
	s := setupStore(t)
	items := setupItemService(t, s)
	ctx := context.Background()

	for _, spec := range []struct {
		title   string
		channel string
	}{
		{"Alpha", "E-Mail"},
		{"Beta", "LinkedIn"},
		{"Gamma", "e-mail"},
	} {
		_, err := items.CreateItem(ctx, CreateItemRequest{Title: spec.title, Channel: spec.channel})
		require.NoError(t, err)
	}

	// Channel filtering is case-insensitive.
	filtered, err := items.ListItems(ctx, content.Query{Channel: "E-MAIL"})
	require.NoError(t, err)
	assert.Len(t, filtered, 2)

	all, err := items.ListItems(ctx, content.Query{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestBulkSetStatus(t *testing.T) {
	s := setupStore(t)
	items := setupItemService(t, s)
	ctx := context.Background()

	a, err := items.CreateItem(ctx, CreateItemRequest{Title: "A"})
	require.NoError(t, err)
	b, err := items.CreateItem(ctx, CreateItemRequest{Title: "B"})
	require.NoError(t, err)

	result, err := items.Bulk(ctx, BulkRequest{
		Action: BulkSetStatus,
		IDs:    []string{a.ID, "item_missing", b.ID},
		Status: string(domain.StatusApproved),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.OK)
	assert.Equal(t, 1, result.Failed)
	assert.Contains(t, result.Errors, "item_missing")

	got, err := items.GetItem(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status, "failure in the middle does not stop the batch")
}

func TestBulkRequiresFlag(t *testing.T) {
	s := setupStore(t)
	items := setupItemService(t, s)
	ctx := context.Background()

	_, err := s.SetFlag(ctx, domain.FlagBulkActions, false)
	require.NoError(t, err)

	_, err = items.Bulk(ctx, BulkRequest{Action: BulkSetStatus, IDs: []string{"x"}, Status: "DRAFT"})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestBulkRequestReviewNotifiesOwner(t *testing.T) {
	s := setupStore(t)
	items := setupItemService(t, s)
	notifications := NewNotificationService(s, testLogger())
	ctx := context.Background()

	item, err := items.CreateItem(ctx, CreateItemRequest{Title: "Case Study", OwnerID: "usr_anna"})
	require.NoError(t, err)

	result, err := items.Bulk(ctx, BulkRequest{Action: BulkRequestReview, IDs: []string{item.ID}})
	require.NoError(t, err)
	assert.Equal(t, 1, result.OK)

	got, err := items.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReview, got.Status)

	list, err := notifications.List(ctx, "usr_anna")
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	assert.Equal(t, domain.NotificationReviewRequested, list.Notifications[0].Kind)
	assert.Equal(t, 1, list.Unread)
}

func TestBulkSetDueDate(t *testing.T) {
	s := setupStore(t)
	items := setupItemService(t, s)
	ctx := context.Background()

	item, err := items.CreateItem(ctx, CreateItemRequest{Title: "Flyer"})
	require.NoError(t, err)

	due := time.Now().AddDate(0, 0, 7).Truncate(time.Second)
	result, err := items.Bulk(ctx, BulkRequest{
		Action: BulkSetDueDate,
		IDs:    []string{item.ID},
		DueAt:  &due,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.OK)

	got, err := items.GetItem(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DueAt)
	assert.True(t, got.DueAt.Equal(due))
}

func TestExportCSV(t *testing.T) {
	s := setupStore(t)
	items := setupItemService(t, s)
	ctx := context.Background()

	_, err := items.CreateItem(ctx, CreateItemRequest{Title: `Q4, "Launch"`, Channel: "E-Mail"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, items.ExportCSV(ctx, &buf, content.Query{}))

	out := buf.String()
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, out, `"Q4, ""Launch"""`)
}

func TestSearchRequiresFlag(t *testing.T) {
	s := setupStore(t)
	items := setupItemService(t, s)
	ctx := context.Background()

	_, err := s.SetFlag(ctx, domain.FlagItemSearch, false)
	require.NoError(t, err)

	_, err = items.Search(ctx, search.DefaultParams())
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestCreateItemNormalizesTags(t *testing.T) {
	s := setupStore(t)
	items := setupItemService(t, s)

	created, err := items.CreateItem(context.Background(), CreateItemRequest{
		Title: "Frühjahrsaktion",
		Tags:  []string{"Q4 Kampagne", "q4-kampagne", "Qualität"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"q4-kampagne", "qualitaet"}, created.Tags)
}

func TestQueryItemsNarrowsByText(t *testing.T) {
	s := setupStore(t)
	items := setupItemService(t, s)
	ctx := context.Background()

	_, err := items.CreateItem(ctx, CreateItemRequest{Title: "Newsletter September"})
	require.NoError(t, err)
	_, err = items.CreateItem(ctx, CreateItemRequest{Title: "Instagram Reel", Notes: "Launch-Video"})
	require.NoError(t, err)

	// Without an index the text match falls back to a substring scan.
	got, err := items.QueryItems(ctx, content.Query{}, "newsletter")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Newsletter September", got[0].Title)

	// Notes are searched too.
	got, err = items.QueryItems(ctx, content.Query{}, "launch")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Instagram Reel", got[0].Title)

	// Empty query returns the full filtered list.
	got, err = items.QueryItems(ctx, content.Query{}, "  ")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestExportCSVKeepsUnknownOwnerID(t *testing.T) {
	s := setupStore(t)
	items := setupItemService(t, s)
	ctx := context.Background()

	_, err := items.CreateItem(ctx, CreateItemRequest{
		Title:   "Verwaiste Kampagne",
		OwnerID: "usr_departed",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, items.ExportCSV(ctx, &buf, content.Query{}))

	// No matching user: the export keeps the raw ID instead of a blank cell.
	assert.Contains(t, buf.String(), "usr_departed")
}
