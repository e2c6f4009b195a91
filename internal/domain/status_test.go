package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Rank(t *testing.T) {
	// Rank order is fixed: IDEA < DRAFT < REVIEW < APPROVED < SCHEDULED < PUBLISHED < BLOCKED < ARCHIVED.
	ordered := AllStatuses()
	for i := 1; i < len(ordered); i++ {
		assert.Less(t, ordered[i-1].Rank(), ordered[i].Rank(),
			"%s should rank before %s", ordered[i-1], ordered[i])
	}
}

func TestStatus_Rank_UnknownLast(t *testing.T) {
	unknown := Status("LIMBO")
	for _, s := range AllStatuses() {
		assert.Greater(t, unknown.Rank(), s.Rank())
	}
	assert.False(t, unknown.IsValid())
	assert.True(t, StatusDraft.IsValid())
}

func TestContentItem_IsOverdue(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	item := NewContentItem("item-1", "Landing Page")
	assert.False(t, item.IsOverdue(now), "no due date means never overdue")

	item.DueAt = &past
	assert.True(t, item.IsOverdue(now))

	item.DueAt = &future
	assert.False(t, item.IsOverdue(now))

	item.DueAt = &past
	item.Status = StatusPublished
	assert.False(t, item.IsOverdue(now), "published items are not overdue")
}

func TestContentTask_IsOverdue(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)

	task := NewContentTask("task-1", "Write copy")
	task.DueAt = &past
	assert.True(t, task.IsOverdue(now))

	task.Done = true
	assert.False(t, task.IsOverdue(now), "done tasks are not overdue")
}

func TestTemplate_ApplyTo(t *testing.T) {
	tmpl := &Template{
		Trackable: Trackable{ID: "tmpl-1"},
		Name:      "Newsletter",
		Channel:   "Email",
		Format:    "Newsletter",
		Body:      "Intro\nCTA",
	}

	item := NewContentItem("item-1", "August Newsletter")
	tmpl.ApplyTo(item)

	assert.Equal(t, "Email", item.Channel)
	assert.Equal(t, "Newsletter", item.Format)
	assert.Equal(t, "Intro\nCTA", item.Notes)
	assert.Equal(t, "tmpl-1", item.TemplateID)

	// Existing notes are not overwritten.
	item2 := NewContentItem("item-2", "September Newsletter")
	item2.Notes = "keep me"
	tmpl.ApplyTo(item2)
	assert.Equal(t, "keep me", item2.Notes)
}

func TestReportSchedule_Advance(t *testing.T) {
	ranAt := time.Date(2026, 8, 31, 6, 0, 0, 0, time.UTC)

	daily := &ReportSchedule{Interval: IntervalDaily, Enabled: true}
	daily.Advance(ranAt)
	assert.Equal(t, ranAt.Add(24*time.Hour), daily.NextRunAt)
	assert.Equal(t, ranAt, *daily.LastRunAt)

	weekly := &ReportSchedule{Interval: IntervalWeekly, Enabled: true}
	weekly.Advance(ranAt)
	assert.Equal(t, ranAt.Add(7*24*time.Hour), weekly.NextRunAt)
}

func TestReportSchedule_IsDue(t *testing.T) {
	now := time.Now()
	s := &ReportSchedule{Enabled: true, NextRunAt: now.Add(-time.Minute)}
	assert.True(t, s.IsDue(now))

	s.Enabled = false
	assert.False(t, s.IsDue(now))

	s.Enabled = true
	s.NextRunAt = now.Add(time.Minute)
	assert.False(t, s.IsDue(now))
}
