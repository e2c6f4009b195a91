package domain

// FeatureFlag toggles a dashboard capability at runtime.
// Flags are keyed by a stable slug and evaluated per request.
type FeatureFlag struct {
	Trackable
	Key         string `json:"key"`
	Description string `json:"description,omitempty"`
	Enabled     bool   `json:"enabled"`
}

// Default feature flag keys.
const (
	FlagDemoSeed     = "admin.demo_seed"     // Allow seeding demo data via the admin API
	FlagReportEmail  = "reports.email"       // Enable scheduled report email delivery
	FlagBulkActions  = "content.bulk"        // Enable bulk actions on the item list
	FlagItemSearch   = "content.search"      // Enable full-text item search
	FlagKPISnapshots = "reports.kpi_capture" // Enable periodic KPI snapshot capture
)

// DefaultFeatureFlags returns the flags every workspace starts with.
func DefaultFeatureFlags() []*FeatureFlag {
	defaults := []struct {
		key     string
		desc    string
		enabled bool
	}{
		{FlagDemoSeed, "Allow seeding demo data via the admin API", false},
		{FlagReportEmail, "Enable scheduled report email delivery", true},
		{FlagBulkActions, "Enable bulk actions on the item list", true},
		{FlagItemSearch, "Enable full-text item search", true},
		{FlagKPISnapshots, "Enable periodic KPI snapshot capture", true},
	}

	flags := make([]*FeatureFlag, 0, len(defaults))
	for _, d := range defaults {
		f := &FeatureFlag{
			Trackable:   Trackable{ID: "flag-" + d.key},
			Key:         d.key,
			Description: d.desc,
			Enabled:     d.enabled,
		}
		f.InitTimestamps()
		flags = append(flags, f)
	}
	return flags
}
