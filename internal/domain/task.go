package domain

import "time"

// ContentTask is a unit of work on the content board. Tasks carry the same
// free-text channel/format pair as items and feed the taxonomy builder.
type ContentTask struct {
	Trackable
	Title    string     `json:"title"`
	Channel  string     `json:"channel,omitempty"`
	Format   string     `json:"format,omitempty"`
	Status   Status     `json:"status"`
	Priority Priority   `json:"priority,omitempty"`
	OwnerID  string     `json:"owner_id,omitempty"`
	Notes    string     `json:"notes,omitempty"`
	DueAt    *time.Time `json:"due_at,omitempty"`
	ItemID   string     `json:"item_id,omitempty"` // Optional link to a content item
	Done     bool       `json:"done"`
}

// NewContentTask creates a task with the given ID and title in the IDEA stage.
func NewContentTask(id, title string) *ContentTask {
	task := &ContentTask{
		Trackable: Trackable{ID: id},
		Title:     title,
		Status:    StatusIdea,
		Priority:  PriorityMedium,
	}
	task.InitTimestamps()
	return task
}

// IsOpen reports whether the task still needs work.
func (t *ContentTask) IsOpen() bool {
	return !t.Done
}

// IsOverdue reports whether an open task has a due date in the past.
func (t *ContentTask) IsOverdue(now time.Time) bool {
	return t.IsOpen() && t.DueAt != nil && t.DueAt.Before(now)
}
