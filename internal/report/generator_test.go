package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
)

func reportUser(id, email, displayName string, active bool) *domain.User {
	u := &domain.User{
		Email:       email,
		Role:        domain.RoleEditor,
		Active:      active,
		DisplayName: displayName,
	}
	u.ID = id
	u.InitTimestamps()
	return u
}

func reportItem(id, title, channel string, status domain.Status, ownerID string) *domain.ContentItem {
	item := &domain.ContentItem{
		Title:   title,
		Channel: channel,
		Format:  "post",
		Status:  status,
		OwnerID: ownerID,
	}
	item.ID = id
	item.InitTimestamps()
	return item
}

func reportTask(id string, ownerID string, done bool, due *time.Time) *domain.ContentTask {
	task := &domain.ContentTask{
		Title:   "Task " + id,
		Status:  domain.StatusIdea,
		OwnerID: ownerID,
		DueAt:   due,
		Done:    done,
	}
	task.ID = id
	task.InitTimestamps()
	return task
}

func testInput() Input {
	now := time.Now()
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	return Input{
		Items: []*domain.ContentItem{
			reportItem("item_1", "Newsletter September", "email", domain.StatusPublished, "usr_anna"),
			reportItem("item_2", "Landingpage Relaunch", "web", domain.StatusDraft, "usr_anna"),
			reportItem("item_3", "Produktlaunch Teaser", "email", domain.StatusPublished, "usr_ben"),
			reportItem("item_4", "Messe Recap", "blog", domain.StatusIdea, ""),
		},
		Tasks: []*domain.ContentTask{
			reportTask("task_1", "usr_anna", false, &past),
			reportTask("task_2", "usr_anna", false, &future),
			reportTask("task_3", "usr_ben", true, &past),
		},
		Users: []*domain.User{
			reportUser("usr_anna", "anna@example.com", "Anna Albrecht", true),
			reportUser("usr_ben", "ben@example.com", "Ben Berger", true),
			reportUser("usr_carla", "carla@example.com", "Carla Conrad", false),
		},
	}
}

func TestNewRunStartsPending(t *testing.T) {
	run := NewRun(domain.ReportContentOverview, "usr_anna")

	assert.NotEmpty(t, run.ID)
	assert.Equal(t, domain.ReportContentOverview, run.Kind)
	assert.Equal(t, domain.RunPending, run.State)
	assert.Equal(t, "usr_anna", run.RequestedBy)
	assert.False(t, run.StartedAt.IsZero())
}

func TestGenerateContentOverview(t *testing.T) {
	summary, csvText, err := Generate(domain.ReportContentOverview, testInput(), time.Now())
	require.NoError(t, err)

	assert.Contains(t, summary, "4 Inhalte gesamt")
	assert.True(t, strings.HasPrefix(csvText, string(utf8BOM)), "CSV should start with a UTF-8 BOM")
	assert.Contains(t, csvText, "Newsletter September")
	assert.Contains(t, csvText, "Anna Albrecht")
}

func TestGenerateChannelBreakdown(t *testing.T) {
	_, csvText, err := Generate(domain.ReportChannelBreakdown, testInput(), time.Now())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(csvText), "\n")
	// Header plus one row per channel/format pair.
	require.Greater(t, len(lines), 1)
	assert.Contains(t, csvText, "email")
	assert.Contains(t, csvText, "web")
	assert.Contains(t, csvText, "blog")
}

func TestGenerateTeamActivity(t *testing.T) {
	_, csvText, err := Generate(domain.ReportTeamActivity, testInput(), time.Now())
	require.NoError(t, err)

	assert.Contains(t, csvText, "Anna Albrecht")
	assert.Contains(t, csvText, "Ben Berger")
}

func TestGenerateUnknownKind(t *testing.T) {
	_, _, err := Generate(domain.ReportKind("bogus"), testInput(), time.Now())
	assert.Error(t, err)
}

func TestCaptureSnapshot(t *testing.T) {
	now := time.Now()
	snap := CaptureSnapshot(testInput(), now)

	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, now, snap.CapturedAt)
	assert.Equal(t, 2, snap.ItemsByStatus[string(domain.StatusPublished)])
	assert.Equal(t, 1, snap.ItemsByStatus[string(domain.StatusDraft)])
	assert.Equal(t, 2, snap.PublishedByChannel["email"])
	assert.Equal(t, 2, snap.TasksOpen, "done tasks are not open")
	assert.Equal(t, 1, snap.TasksOverdue)
	assert.Equal(t, 2, snap.ActiveUsers)
}
