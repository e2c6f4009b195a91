// Package sse implements Server-Sent Events for real-time dashboard updates
// and event broadcasting.
package sse

import (
	"time"
)

// The dashboard uses SSE for server-to-client pushes only; every mutation
// still goes through the regular request/response API.

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventItemCreated represents a content item creation event.
	EventItemCreated EventType = "item.created"
	// EventItemUpdated represents a content item update event.
	EventItemUpdated EventType = "item.updated"
	// EventItemDeleted represents a content item deletion event.
	EventItemDeleted EventType = "item.deleted"

	// EventTaskCreated represents a task creation event.
	EventTaskCreated EventType = "task.created"
	// EventTaskUpdated represents a task update event.
	EventTaskUpdated EventType = "task.updated"
	// EventTaskDeleted represents a task deletion event.
	EventTaskDeleted EventType = "task.deleted"

	// EventTemplateCreated represents a template creation event.
	EventTemplateCreated EventType = "template.created"
	// EventTemplateUpdated represents a template update event.
	EventTemplateUpdated EventType = "template.updated"
	// EventTemplateDeleted represents a template deletion event.
	EventTemplateDeleted EventType = "template.deleted"

	// EventBulkCompleted represents a finished bulk action run.
	EventBulkCompleted EventType = "bulk.completed"

	// EventRefresh asks clients to reload a named scope (items, tasks, ...).
	EventRefresh EventType = "refresh"

	// EventNotificationCreated represents a new notification for one user.
	EventNotificationCreated EventType = "notification.created"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"

	// EventReportCompleted represents a finished report run.
	// Only sent to admin users.
	EventReportCompleted EventType = "report.completed"
	// EventReportFailed represents a failed report run.
	// Only sent to admin users.
	EventReportFailed EventType = "report.failed"

	// EventUserCreated represents a new workspace member.
	// Only sent to admin users.
	EventUserCreated EventType = "user.created"
	// EventUserUpdated represents a member role or status change.
	// Only sent to admin users.
	EventUserUpdated EventType = "user.updated"
	// EventSessionRevoked represents a revoked login session.
	// Only sent to admin users.
	EventSessionRevoked EventType = "session.revoked"
	// EventSeedCompleted represents a finished demo seed run.
	// Only sent to admin users.
	EventSeedCompleted EventType = "seed.completed"

	// EventFlagUpdated represents a feature flag change. Broadcast to all
	// clients so the UI can toggle affected surfaces without a reload.
	EventFlagUpdated EventType = "flag.updated"
)

// Event represents an SSE event to be sent to clients.
// The Data field contains the event payload as a JSON object for direct deserialization.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`

	// When UserID is set the event is only delivered to that user's clients.
	// Empty string means "broadcast to all".
	UserID string `json:"-"`
}

// EntityEventData is the data payload for item/task/template CRUD events.
type EntityEventData struct {
	Entity any    `json:"entity,omitempty"`
	ID     string `json:"id"`
}

// BulkCompletedEventData is the data payload for bulk run completion events.
type BulkCompletedEventData struct {
	CompletedAt time.Time `json:"completed_at"`
	Label       string    `json:"label"`
	OK          int       `json:"ok"`
	Failed      int       `json:"failed"`
}

// RefreshEventData is the data payload for refresh events.
type RefreshEventData struct {
	Scope string `json:"scope"`
}

// ReportEventData is the data payload for report run events.
type ReportEventData struct {
	FinishedAt time.Time `json:"finished_at"`
	RunID      string    `json:"run_id"`
	Kind       string    `json:"kind"`
	Error      string    `json:"error,omitempty"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"server_time"`
}

// NewEvent creates an event with the current timestamp.
func NewEvent(eventType EventType, data any) Event {
	return Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// NewUserEvent creates an event delivered only to the given user.
func NewUserEvent(eventType EventType, userID string, data any) Event {
	evt := NewEvent(eventType, data)
	evt.UserID = userID
	return evt
}

// NewEntityEvent creates a CRUD event for an item, task or template.
func NewEntityEvent(eventType EventType, entityID string, entity any) Event {
	return NewEvent(eventType, EntityEventData{ID: entityID, Entity: entity})
}

// NewBulkCompletedEvent creates a bulk run completion event with the counts.
func NewBulkCompletedEvent(label string, ok, failed int) Event {
	return NewEvent(EventBulkCompleted, BulkCompletedEventData{
		CompletedAt: time.Now(),
		Label:       label,
		OK:          ok,
		Failed:      failed,
	})
}

// NewRefreshEvent creates a refresh event for a named scope.
func NewRefreshEvent(scope string) Event {
	return NewEvent(EventRefresh, RefreshEventData{Scope: scope})
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	return NewEvent(EventHeartbeat, HeartbeatEventData{ServerTime: time.Now()})
}
