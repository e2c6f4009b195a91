// Package jobs tracks background job runs and drives the report scheduler.
package jobs

import (
	"log/slog"
	"sync"
	"time"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/id"
)

// maxRetainedJobs bounds the registry; the oldest finished jobs are evicted.
const maxRetainedJobs = 100

// State is the lifecycle state of a background job.
type State string

// Job states.
const (
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

// Job is one tracked background job run, surfaced on the admin console.
type Job struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	State      State      `json:"state"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Current    int        `json:"current,omitempty"`
	Total      int        `json:"total,omitempty"`
	Message    string     `json:"message,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// Registry tracks background job runs in memory.
type Registry struct {
	mu     sync.RWMutex
	jobs   map[string]*Job
	order  []string // insertion order, oldest first
	logger *slog.Logger
}

// NewRegistry creates an empty job registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		jobs:   make(map[string]*Job),
		logger: logger,
	}
}

// Start records a new running job and returns its ID.
func (r *Registry) Start(name string) string {
	job := &Job{
		ID:        id.MustGenerate("job"),
		Name:      name,
		State:     StateRunning,
		StartedAt: time.Now(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.jobs[job.ID] = job
	r.order = append(r.order, job.ID)
	r.evictLocked()

	return job.ID
}

// Progress updates the progress counters of a running job.
func (r *Registry) Progress(jobID string, current, total int, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[jobID]
	if !ok || job.State != StateRunning {
		return
	}
	job.Current = current
	job.Total = total
	job.Message = message
}

// Complete marks a job as finished successfully.
func (r *Registry) Complete(jobID string) {
	r.finish(jobID, StateCompleted, "")
}

// Fail marks a job as failed with the given error.
func (r *Registry) Fail(jobID string, err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	r.finish(jobID, StateFailed, msg)
}

func (r *Registry) finish(jobID string, state State, errMsg string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[jobID]
	if !ok {
		return
	}
	now := time.Now()
	job.State = state
	job.FinishedAt = &now
	job.Error = errMsg

	if state == StateFailed && r.logger != nil {
		r.logger.Warn("background job failed", "job", job.Name, "job_id", jobID, "error", errMsg)
	}
}

// Get returns a copy of the job with the given ID.
func (r *Registry) Get(jobID string) (Job, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[jobID]
	if !ok {
		return Job{}, false
	}
	return *job, true
}

// List returns all tracked jobs, newest first.
func (r *Registry) List() []Job {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Job, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		if job, ok := r.jobs[r.order[i]]; ok {
			out = append(out, *job)
		}
	}
	return out
}

// evictLocked drops the oldest finished jobs once the registry is full.
// Running jobs are never evicted. Caller must hold the write lock.
func (r *Registry) evictLocked() {
	for len(r.order) > maxRetainedJobs {
		evicted := false
		for i, jobID := range r.order {
			job := r.jobs[jobID]
			if job == nil || job.State != StateRunning {
				delete(r.jobs, jobID)
				r.order = append(r.order[:i], r.order[i+1:]...)
				evicted = true
				break
			}
		}
		if !evicted {
			return
		}
	}
}
