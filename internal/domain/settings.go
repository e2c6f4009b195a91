package domain

// WorkspaceSettings holds workspace-wide preferences.
// Stored as a singleton in the settings repository.
type WorkspaceSettings struct {
	WorkspaceName string `json:"workspace_name"`
	// DefaultSort is applied when a client requests a listing without a sort.
	DefaultSort string `json:"default_sort"`
	// Locale drives collation for alphabetical sorting. Only "de" is
	// currently shipped; the field exists so the choice is explicit.
	Locale string `json:"locale"`
}

// NewWorkspaceSettings returns settings with defaults applied.
func NewWorkspaceSettings() *WorkspaceSettings {
	return &WorkspaceSettings{
		WorkspaceName: "MarketingKreis",
		DefaultSort:   "updated_desc",
		Locale:        "de",
	}
}
