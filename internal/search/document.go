// Package search provides full-text search over content items using Bleve,
// with faceted filtering on channel, format and status.
package search

import (
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
)

// ItemDocument is the document structure for the Bleve index.
// Channel, format, status and owner are indexed as keywords so the UI can
// facet on them; title, notes and tags are full-text searchable.
type ItemDocument struct {
	// Identity
	ID string `json:"id"`

	// Full-text fields
	Title string   `json:"title"`
	Notes string   `json:"notes,omitempty"`
	Tags  []string `json:"tags,omitempty"`

	// Keyword fields for exact filtering and faceting
	Channel string `json:"channel,omitempty"`
	Format  string `json:"format,omitempty"`
	Status  string `json:"status"`
	OwnerID string `json:"owner_id,omitempty"`

	// Timestamps for sorting. Unix millis.
	DueAt     int64 `json:"due_at,omitempty"`
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *ItemDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"title":      d.Title,
		"status":     d.Status,
		"created_at": d.CreatedAt,
		"updated_at": d.UpdatedAt,
	}

	// Optional fields - only add if non-empty
	if d.Notes != "" {
		m["notes"] = d.Notes
	}
	if len(d.Tags) > 0 {
		m["tags"] = d.Tags
	}
	if d.Channel != "" {
		m["channel"] = d.Channel
	}
	if d.Format != "" {
		m["format"] = d.Format
	}
	if d.OwnerID != "" {
		m["owner_id"] = d.OwnerID
	}
	if d.DueAt > 0 {
		m["due_at"] = d.DueAt
	}

	return m
}

// ItemToDocument converts a domain ContentItem to an ItemDocument.
func ItemToDocument(item *domain.ContentItem) *ItemDocument {
	doc := &ItemDocument{
		ID:        item.ID,
		Title:     item.Title,
		Notes:     item.Notes,
		Tags:      item.Tags,
		Channel:   item.Channel,
		Format:    item.Format,
		Status:    string(item.Status),
		OwnerID:   item.OwnerID,
		CreatedAt: item.CreatedAt.UnixMilli(),
		UpdatedAt: item.UpdatedAt.UnixMilli(),
	}

	if item.DueAt != nil {
		doc.DueAt = item.DueAt.UnixMilli()
	}

	return doc
}
