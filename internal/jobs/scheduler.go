package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/report"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/sse"
)

// snapshotInterval is how often workspace KPIs are captured.
const snapshotInterval = time.Hour

// DataSource assembles the workspace data reports are generated from.
type DataSource interface {
	ReportInput(ctx context.Context) (report.Input, error)
}

// FlagChecker evaluates feature flags. Satisfied by the badger store.
type FlagChecker interface {
	FlagEnabled(ctx context.Context, key string) bool
}

// EventEmitter publishes events to connected dashboards.
type EventEmitter interface {
	Emit(event any)
}

// Scheduler runs due report schedules and periodic KPI captures.
type Scheduler struct {
	interval time.Duration
	reports  *report.Store
	mailer   *report.Mailer
	data     DataSource
	flags    FlagChecker
	registry *Registry
	emitter  EventEmitter
	logger   *slog.Logger
}

// NewScheduler wires the report scheduler.
func NewScheduler(
	interval time.Duration,
	reports *report.Store,
	mailer *report.Mailer,
	data DataSource,
	flags FlagChecker,
	registry *Registry,
	emitter EventEmitter,
	logger *slog.Logger,
) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		interval: interval,
		reports:  reports,
		mailer:   mailer,
		data:     data,
		flags:    flags,
		registry: registry,
		emitter:  emitter,
		logger:   logger,
	}
}

// Run ticks until the context is cancelled, executing due schedules and
// capturing KPI snapshots.
func (s *Scheduler) Run(ctx context.Context) {
	scheduleTicker := time.NewTicker(s.interval)
	defer scheduleTicker.Stop()

	snapshotTicker := time.NewTicker(snapshotInterval)
	defer snapshotTicker.Stop()

	s.logger.Info("report scheduler started", "interval", s.interval)

	// Capture a snapshot at startup so dashboards have a baseline.
	s.captureSnapshot(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("report scheduler stopped")
			return
		case <-scheduleTicker.C:
			s.runDueSchedules(ctx)
		case <-snapshotTicker.C:
			s.captureSnapshot(ctx)
		}
	}
}

// runDueSchedules executes every schedule whose next run time has passed.
func (s *Scheduler) runDueSchedules(ctx context.Context) {
	now := time.Now()
	due, err := s.reports.ListDueSchedules(ctx, now)
	if err != nil {
		s.logger.Error("failed to list due schedules", "error", err)
		return
	}

	for _, sched := range due {
		s.runSchedule(ctx, sched, now)
	}
}

func (s *Scheduler) runSchedule(ctx context.Context, sched *domain.ReportSchedule, now time.Time) {
	run, err := s.Execute(ctx, sched.Kind, "")
	if err != nil {
		s.logger.Error("scheduled report failed",
			"schedule_id", sched.ID, "kind", sched.Kind, "error", err)
	} else if s.flags.FlagEnabled(ctx, domain.FlagReportEmail) {
		if err := s.deliver(run, sched.Recipients); err != nil {
			s.logger.Error("report delivery failed",
				"schedule_id", sched.ID, "run_id", run.ID, "error", err)
		}
	}

	// Advance even after a failure to avoid retry storms; the run record
	// keeps the error for the admin console.
	sched.Advance(now)
	if err := s.reports.UpdateSchedule(ctx, sched); err != nil {
		s.logger.Error("failed to advance schedule", "schedule_id", sched.ID, "error", err)
	}
}

// Execute generates a report of the given kind, persisting the run record
// through its lifecycle and emitting completion events. It is the shared
// path for scheduled and on-demand report generation.
func (s *Scheduler) Execute(ctx context.Context, kind domain.ReportKind, requestedBy string) (*domain.ReportRun, error) {
	jobID := s.registry.Start("report:" + string(kind))

	run := report.NewRun(kind, requestedBy)
	run.State = domain.RunRunning
	if err := s.reports.CreateRun(ctx, run); err != nil {
		s.registry.Fail(jobID, err)
		return nil, fmt.Errorf("create report run: %w", err)
	}

	in, err := s.data.ReportInput(ctx)
	if err != nil {
		return nil, s.failRun(ctx, run, jobID, fmt.Errorf("assemble report input: %w", err))
	}

	summary, csvText, err := report.Generate(kind, in, time.Now())
	if err != nil {
		return nil, s.failRun(ctx, run, jobID, err)
	}

	finished := time.Now()
	run.State = domain.RunCompleted
	run.Summary = summary
	run.CSV = csvText
	run.FinishedAt = &finished
	if err := s.reports.UpdateRun(ctx, run); err != nil {
		s.registry.Fail(jobID, err)
		return nil, fmt.Errorf("persist report run: %w", err)
	}

	s.registry.Complete(jobID)
	s.emitter.Emit(sse.NewEvent(sse.EventReportCompleted, sse.ReportEventData{
		FinishedAt: finished,
		RunID:      run.ID,
		Kind:       string(run.Kind),
	}))

	s.logger.Info("report generated", "run_id", run.ID, "kind", kind)
	return run, nil
}

// failRun marks the run and job as failed and emits the failure event.
func (s *Scheduler) failRun(ctx context.Context, run *domain.ReportRun, jobID string, cause error) error {
	finished := time.Now()
	run.State = domain.RunFailed
	run.Error = cause.Error()
	run.FinishedAt = &finished

	if err := s.reports.UpdateRun(ctx, run); err != nil {
		s.logger.Error("failed to persist failed run", "run_id", run.ID, "error", err)
	}

	s.registry.Fail(jobID, cause)
	s.emitter.Emit(sse.NewEvent(sse.EventReportFailed, sse.ReportEventData{
		FinishedAt: finished,
		RunID:      run.ID,
		Kind:       string(run.Kind),
		Error:      cause.Error(),
	}))

	return cause
}

// deliver emails a completed run to the schedule's recipients.
func (s *Scheduler) deliver(run *domain.ReportRun, recipients []string) error {
	if !s.mailer.IsConfigured() {
		s.logger.Debug("email delivery not configured, skipping", "run_id", run.ID)
		return nil
	}
	return s.mailer.SendReport(run, recipients)
}

// captureSnapshot computes and stores workspace KPIs if the flag allows it.
func (s *Scheduler) captureSnapshot(ctx context.Context) {
	if !s.flags.FlagEnabled(ctx, domain.FlagKPISnapshots) {
		return
	}

	in, err := s.data.ReportInput(ctx)
	if err != nil {
		s.logger.Error("failed to assemble snapshot input", "error", err)
		return
	}

	snap := report.CaptureSnapshot(in, time.Now())
	if err := s.reports.CreateSnapshot(ctx, snap); err != nil {
		s.logger.Error("failed to store KPI snapshot", "error", err)
		return
	}

	s.logger.Debug("KPI snapshot captured", "snapshot_id", snap.ID)
}
