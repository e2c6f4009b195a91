package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
	domainerrors "github.com/aivladyslavai/MarketingKreis-sub000/internal/errors"
)

func TestCreateTaskNotifiesAssignee(t *testing.T) {
	s := setupStore(t)
	tasks := NewTaskService(s, testLogger())
	notifications := NewNotificationService(s, testLogger())
	ctx := context.Background()

	task, err := tasks.CreateTask(ctx, CreateTaskRequest{
		Title:   "Posting für LinkedIn vorbereiten",
		Channel: "LinkedIn",
		OwnerID: "usr_anna",
	})
	require.NoError(t, err)
	assert.False(t, task.Done)

	list, err := notifications.List(ctx, "usr_anna")
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	assert.Equal(t, domain.NotificationTaskAssigned, list.Notifications[0].Kind)
	assert.Contains(t, list.Notifications[0].Message, task.Title)
}

func TestCreateTaskValidatesItemLink(t *testing.T) {
	s := setupStore(t)
	tasks := NewTaskService(s, testLogger())

	_, err := tasks.CreateTask(context.Background(), CreateTaskRequest{
		Title:  "Verwaiste Aufgabe",
		ItemID: "item_missing",
	})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestListTasksFiltersAndOrder(t *testing.T) {
	s := setupStore(t)
	tasks := NewTaskService(s, testLogger())
	ctx := context.Background()

	soon := time.Now().Add(24 * time.Hour)
	later := time.Now().Add(72 * time.Hour)
	past := time.Now().Add(-24 * time.Hour)

	undated, err := tasks.CreateTask(ctx, CreateTaskRequest{Title: "Ohne Termin"})
	require.NoError(t, err)
	dueSoon, err := tasks.CreateTask(ctx, CreateTaskRequest{Title: "Bald fällig", DueAt: &soon})
	require.NoError(t, err)
	dueLater, err := tasks.CreateTask(ctx, CreateTaskRequest{Title: "Später fällig", DueAt: &later})
	require.NoError(t, err)
	overdue, err := tasks.CreateTask(ctx, CreateTaskRequest{Title: "Überfällig", DueAt: &past})
	require.NoError(t, err)

	done, err := tasks.CreateTask(ctx, CreateTaskRequest{Title: "Erledigt", DueAt: &soon})
	require.NoError(t, err)
	isDone := true
	_, err = tasks.UpdateTask(ctx, done.ID, UpdateTaskRequest{Done: &isDone})
	require.NoError(t, err)

	all, err := tasks.ListTasks(ctx, TaskQuery{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	// Open before done, due dates ascending, undated last.
	assert.Equal(t, overdue.ID, all[0].ID)
	assert.Equal(t, dueSoon.ID, all[1].ID)
	assert.Equal(t, dueLater.ID, all[2].ID)
	assert.Equal(t, undated.ID, all[3].ID)
	assert.Equal(t, done.ID, all[4].ID)

	open, err := tasks.ListTasks(ctx, TaskQuery{Open: true})
	require.NoError(t, err)
	assert.Len(t, open, 4)

	overdueOnly, err := tasks.ListTasks(ctx, TaskQuery{Overdue: true})
	require.NoError(t, err)
	require.Len(t, overdueOnly, 1)
	assert.Equal(t, overdue.ID, overdueOnly[0].ID)
}

func TestUpdateTaskReassignmentNotifies(t *testing.T) {
	s := setupStore(t)
	tasks := NewTaskService(s, testLogger())
	notifications := NewNotificationService(s, testLogger())
	ctx := context.Background()

	task, err := tasks.CreateTask(ctx, CreateTaskRequest{Title: "Korrekturlesen", OwnerID: "usr_anna"})
	require.NoError(t, err)

	newOwner := "usr_bernd"
	_, err = tasks.UpdateTask(ctx, task.ID, UpdateTaskRequest{OwnerID: &newOwner})
	require.NoError(t, err)

	berndList, err := notifications.List(ctx, "usr_bernd")
	require.NoError(t, err)
	assert.Len(t, berndList.Notifications, 1)

	// Touching other fields does not re-notify the unchanged owner.
	note := "bitte bis Freitag"
	_, err = tasks.UpdateTask(ctx, task.ID, UpdateTaskRequest{Notes: &note})
	require.NoError(t, err)

	berndList, err = notifications.List(ctx, "usr_bernd")
	require.NoError(t, err)
	assert.Len(t, berndList.Notifications, 1)
}

func TestDeleteTask(t *testing.T) {
	s := setupStore(t)
	tasks := NewTaskService(s, testLogger())
	ctx := context.Background()

	task, err := tasks.CreateTask(ctx, CreateTaskRequest{Title: "Wegwerfen"})
	require.NoError(t, err)

	require.NoError(t, tasks.DeleteTask(ctx, task.ID))
	err = tasks.DeleteTask(ctx, task.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
