package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/aivladyslavai/MarketingKreis-sub000/internal/errors"
)

func TestMarkReadEnforcesOwnership(t *testing.T) {
	s := setupStore(t)
	tasks := NewTaskService(s, testLogger())
	notifications := NewNotificationService(s, testLogger())
	ctx := context.Background()

	_, err := tasks.CreateTask(ctx, CreateTaskRequest{Title: "Review", OwnerID: "usr_anna"})
	require.NoError(t, err)

	list, err := notifications.List(ctx, "usr_anna")
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	notifID := list.Notifications[0].ID

	err = notifications.MarkRead(ctx, "usr_bernd", notifID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	require.NoError(t, notifications.MarkRead(ctx, "usr_anna", notifID))

	list, err = notifications.List(ctx, "usr_anna")
	require.NoError(t, err)
	assert.Equal(t, 0, list.Unread)
}

func TestMarkAllRead(t *testing.T) {
	s := setupStore(t)
	tasks := NewTaskService(s, testLogger())
	notifications := NewNotificationService(s, testLogger())
	ctx := context.Background()

	for _, title := range []string{"Eins", "Zwei", "Drei"} {
		_, err := tasks.CreateTask(ctx, CreateTaskRequest{Title: title, OwnerID: "usr_anna"})
		require.NoError(t, err)
	}
	_, err := tasks.CreateTask(ctx, CreateTaskRequest{Title: "Fremd", OwnerID: "usr_bernd"})
	require.NoError(t, err)

	count, err := notifications.MarkAllRead(ctx, "usr_anna")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// Other users' notifications stay unread.
	berndList, err := notifications.List(ctx, "usr_bernd")
	require.NoError(t, err)
	assert.Equal(t, 1, berndList.Unread)
}
