package domain

// Status represents the lifecycle stage of a content item or task.
type Status string

// Lifecycle stages, in order.
const (
	StatusIdea      Status = "IDEA"
	StatusDraft     Status = "DRAFT"
	StatusReview    Status = "REVIEW"
	StatusApproved  Status = "APPROVED"
	StatusScheduled Status = "SCHEDULED"
	StatusPublished Status = "PUBLISHED"
	StatusBlocked   Status = "BLOCKED"
	StatusArchived  Status = "ARCHIVED"
)

// statusRank fixes the ordering used by status-based sorting.
// Unknown statuses sort after all known ones.
var statusRank = map[Status]int{
	StatusIdea:      0,
	StatusDraft:     1,
	StatusReview:    2,
	StatusApproved:  3,
	StatusScheduled: 4,
	StatusPublished: 5,
	StatusBlocked:   6,
	StatusArchived:  7,
}

// Rank returns the lifecycle position of the status.
// Unknown statuses rank last.
func (s Status) Rank() int {
	if r, ok := statusRank[s]; ok {
		return r
	}
	return len(statusRank)
}

// IsValid reports whether the status is one of the known lifecycle stages.
func (s Status) IsValid() bool {
	_, ok := statusRank[s]
	return ok
}

// AllStatuses returns the known lifecycle stages in rank order.
func AllStatuses() []Status {
	return []Status{
		StatusIdea,
		StatusDraft,
		StatusReview,
		StatusApproved,
		StatusScheduled,
		StatusPublished,
		StatusBlocked,
		StatusArchived,
	}
}

// Priority represents the urgency of a content task.
type Priority string

// Task priorities.
const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)
