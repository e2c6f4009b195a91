package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/aivladyslavai/MarketingKreis-sub000/internal/errors"
)

func TestCalendarFeed(t *testing.T) {
	s := setupStore(t)
	items := setupItemService(t, s)
	tasks := NewTaskService(s, testLogger())
	calendar := NewCalendarService(s, testLogger())
	ctx := context.Background()

	monday := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
	wednesday := time.Date(2026, 9, 9, 14, 0, 0, 0, time.UTC)

	scheduled, err := items.CreateItem(ctx, CreateItemRequest{
		Title:       "Newsletter September",
		ScheduledAt: &monday,
	})
	require.NoError(t, err)

	dueOnly, err := items.CreateItem(ctx, CreateItemRequest{
		Title: "Blogpost Entwurf",
		DueAt: &wednesday,
	})
	require.NoError(t, err)

	task, err := tasks.CreateTask(ctx, CreateTaskRequest{
		Title: "Bilder auswählen",
		DueAt: &monday,
	})
	require.NoError(t, err)

	// Outside the requested range.
	october := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	_, err = items.CreateItem(ctx, CreateItemRequest{Title: "Herbstaktion", ScheduledAt: &october})
	require.NoError(t, err)

	from := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 13, 23, 59, 59, 0, time.UTC)
	feed, err := calendar.Feed(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, feed.Days, 2)

	mondayEntries := feed.Days["2026-09-07"]
	require.Len(t, mondayEntries, 2)
	// Same time: items sort before tasks.
	assert.Equal(t, scheduled.ID, mondayEntries[0].ID)
	assert.False(t, mondayEntries[0].IsDue)
	assert.Equal(t, task.ID, mondayEntries[1].ID)
	assert.True(t, mondayEntries[1].IsDue)

	wednesdayEntries := feed.Days["2026-09-09"]
	require.Len(t, wednesdayEntries, 1)
	assert.Equal(t, dueOnly.ID, wednesdayEntries[0].ID)
	assert.True(t, wednesdayEntries[0].IsDue, "items without a schedule fall back to their due date")
}

func TestCalendarFeedValidatesRange(t *testing.T) {
	s := setupStore(t)
	calendar := NewCalendarService(s, testLogger())
	ctx := context.Background()

	from := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	_, err := calendar.Feed(ctx, from, from.Add(-time.Hour))
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = calendar.Feed(ctx, from, from.AddDate(2, 0, 0))
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}
