// Package domain defines the core entities of the MarketingKreis content hub,
// admin console, and reporting module.
package domain

import "time"

// Trackable provides common identity and timestamp fields for stored entities.
// It gets embedded in any domain type that is persisted and surfaced to clients.
type Trackable struct {
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	ID        string     `json:"id"`
}

// Touch updates the UpdatedAt timestamp to the current time.
// Call this whenever the underlying entity changes.
func (t *Trackable) Touch() {
	t.UpdatedAt = time.Now()
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
// Call this when creating a new entity.
func (t *Trackable) InitTimestamps() {
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
}

// IsDeleted returns true if this entity has been soft-deleted.
func (t *Trackable) IsDeleted() bool {
	return t.DeletedAt != nil
}

// MarkDeleted marks this entity as soft-deleted by setting DeletedAt to now.
// This also updates UpdatedAt so the deletion shows up in refresh queries.
func (t *Trackable) MarkDeleted() {
	now := time.Now()
	t.DeletedAt = &now
	t.UpdatedAt = now
}
