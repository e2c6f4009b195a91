package domain

import "time"

// NotificationKind categorizes dashboard notifications.
type NotificationKind string

// Notification kinds.
const (
	NotificationReviewRequested NotificationKind = "review_requested"
	NotificationTaskAssigned    NotificationKind = "task_assigned"
	NotificationItemPublished   NotificationKind = "item_published"
	NotificationReportReady     NotificationKind = "report_ready"
	NotificationSystem          NotificationKind = "system"
)

// Notification is a per-user dashboard message.
type Notification struct {
	Trackable
	UserID   string           `json:"user_id"`
	Kind     NotificationKind `json:"kind"`
	Message  string           `json:"message"`
	EntityID string           `json:"entity_id,omitempty"` // Item, task, or report run the message refers to
	ReadAt   *time.Time       `json:"read_at,omitempty"`
}

// IsRead reports whether the notification has been read.
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}

// MarkRead sets the read timestamp if not already set.
func (n *Notification) MarkRead() {
	if n.ReadAt == nil {
		now := time.Now()
		n.ReadAt = &now
		n.UpdatedAt = now
	}
}
