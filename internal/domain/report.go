package domain

import "time"

// KPISnapshot captures workspace health numbers at a point in time.
// Snapshots are append-only and stored in the reporting database.
type KPISnapshot struct {
	ID                 string         `json:"id"`
	CapturedAt         time.Time      `json:"captured_at"`
	ItemsByStatus      map[string]int `json:"items_by_status"`
	TasksOpen          int            `json:"tasks_open"`
	TasksOverdue       int            `json:"tasks_overdue"`
	PublishedByChannel map[string]int `json:"published_by_channel"`
	ActiveUsers        int            `json:"active_users"`
}

// ReportKind identifies a report template.
type ReportKind string

// Built-in report kinds.
const (
	ReportContentOverview  ReportKind = "content_overview"
	ReportChannelBreakdown ReportKind = "channel_breakdown"
	ReportTeamActivity     ReportKind = "team_activity"
)

// RunState tracks the lifecycle of a report generation run.
type RunState string

// Run states.
const (
	RunPending   RunState = "pending"
	RunRunning   RunState = "running"
	RunCompleted RunState = "completed"
	RunFailed    RunState = "failed"
)

// ReportRun records one execution of a report, including its CSV artifact.
type ReportRun struct {
	ID          string     `json:"id"`
	Kind        ReportKind `json:"kind"`
	State       RunState   `json:"state"`
	RequestedBy string     `json:"requested_by,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
	Summary     string     `json:"summary,omitempty"`
	CSV         string     `json:"csv,omitempty"` // Generated artifact, UTF-8 with BOM
	Error       string     `json:"error,omitempty"`
}

// ScheduleInterval selects how often a scheduled report is delivered.
type ScheduleInterval string

// Schedule intervals.
const (
	IntervalDaily  ScheduleInterval = "daily"
	IntervalWeekly ScheduleInterval = "weekly"
)

// ReportSchedule delivers a report by email on a recurring interval.
type ReportSchedule struct {
	Trackable
	Kind       ReportKind       `json:"kind"`
	Interval   ScheduleInterval `json:"interval"`
	Recipients []string         `json:"recipients"`
	Enabled    bool             `json:"enabled"`
	LastRunAt  *time.Time       `json:"last_run_at,omitempty"`
	NextRunAt  time.Time        `json:"next_run_at"`
}

// Advance moves the schedule forward from the given run time.
func (s *ReportSchedule) Advance(ranAt time.Time) {
	s.LastRunAt = &ranAt
	switch s.Interval {
	case IntervalWeekly:
		s.NextRunAt = ranAt.Add(7 * 24 * time.Hour)
	default:
		s.NextRunAt = ranAt.Add(24 * time.Hour)
	}
	s.Touch()
}

// IsDue reports whether the schedule should run at the given time.
func (s *ReportSchedule) IsDue(now time.Time) bool {
	return s.Enabled && !now.Before(s.NextRunAt)
}
