package domain

// ViewScope selects which board the saved view applies to.
type ViewScope string

// View scopes.
const (
	ScopeItems    ViewScope = "items"
	ScopeTasks    ViewScope = "tasks"
	ScopeCalendar ViewScope = "calendar"
)

// SavedView is a named, persisted combination of search/filter/sort settings
// for the content list. Views are owned by the user who saved them and are
// applied verbatim - a round-trip restores exactly the values present at save time.
type SavedView struct {
	Trackable
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Query       string    `json:"q,omitempty"`
	Status      string    `json:"status,omitempty"`
	Sort        string    `json:"sort,omitempty"`
	Scope       ViewScope `json:"scope,omitempty"`
	OwnerFilter string    `json:"owner_filter,omitempty"`
	Channel     string    `json:"channel,omitempty"`
	Format      string    `json:"format,omitempty"`
}
