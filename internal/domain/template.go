package domain

// Template is a reusable content blueprint. Applying a template to an item
// copies its channel/format pair and seeds the item notes with the body.
type Template struct {
	Trackable
	Name    string `json:"name"`
	Channel string `json:"channel,omitempty"`
	Format  string `json:"format,omitempty"`
	Body    string `json:"body,omitempty"`
}

// ApplyTo copies the template's channel, format, and body onto the item.
// Existing item notes are preserved; the body only fills empty notes.
func (t *Template) ApplyTo(item *ContentItem) {
	if t.Channel != "" {
		item.Channel = t.Channel
	}
	if t.Format != "" {
		item.Format = t.Format
	}
	if item.Notes == "" {
		item.Notes = t.Body
	}
	item.TemplateID = t.ID
	item.Touch()
}
