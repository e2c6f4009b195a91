package domain

import "time"

// ContentItem is a planned or published piece of marketing content.
// Channel and Format are free-text fields curated by the taxonomy builder.
type ContentItem struct {
	Trackable
	Title       string     `json:"title"`
	Channel     string     `json:"channel"`
	Format      string     `json:"format"`
	Status      Status     `json:"status"`
	OwnerID     string     `json:"owner_id,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	TemplateID  string     `json:"template_id,omitempty"`
}

// NewContentItem creates an item with the given ID and title in the IDEA stage.
func NewContentItem(id, title string) *ContentItem {
	item := &ContentItem{
		Trackable: Trackable{ID: id},
		Title:     title,
		Status:    StatusIdea,
	}
	item.InitTimestamps()
	return item
}

// IsOverdue reports whether the item has a due date in the past and is not yet published.
func (i *ContentItem) IsOverdue(now time.Time) bool {
	if i.DueAt == nil {
		return false
	}
	if i.Status == StatusPublished || i.Status == StatusArchived {
		return false
	}
	return i.DueAt.Before(now)
}
