package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
	domainerrors "github.com/aivladyslavai/MarketingKreis-sub000/internal/errors"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/id"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/jobs"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/report"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/store"
)

// reportKinds are the built-in templates offered to clients.
var reportKinds = []domain.ReportKind{
	domain.ReportContentOverview,
	domain.ReportChannelBreakdown,
	domain.ReportTeamActivity,
}

// ReportData assembles workspace data for report generation. It is the
// scheduler's data source and is constructed before the scheduler so the
// two do not depend on each other.
type ReportData struct {
	store *store.Store
}

// NewReportData creates the report data source.
func NewReportData(st *store.Store) *ReportData {
	return &ReportData{store: st}
}

// ReportInput loads the items, tasks, and users reports are computed from.
func (d *ReportData) ReportInput(ctx context.Context) (report.Input, error) {
	items, err := d.store.ListItems(ctx)
	if err != nil {
		return report.Input{}, fmt.Errorf("list items: %w", err)
	}
	tasks, err := d.store.ListTasks(ctx)
	if err != nil {
		return report.Input{}, fmt.Errorf("list tasks: %w", err)
	}
	users, err := d.store.ListUsers(ctx)
	if err != nil {
		return report.Input{}, fmt.Errorf("list users: %w", err)
	}
	return report.Input{Items: items, Tasks: tasks, Users: users}, nil
}

// ReportService exposes report generation, run history, KPI snapshots, and
// schedule management. Generation itself is delegated to the scheduler so
// on-demand and scheduled runs share one code path.
type ReportService struct {
	data      *ReportData
	reports   *report.Store
	scheduler *jobs.Scheduler
	logger    *slog.Logger
}

// NewReportService creates a report service.
func NewReportService(data *ReportData, reports *report.Store, scheduler *jobs.Scheduler, logger *slog.Logger) *ReportService {
	return &ReportService{data: data, reports: reports, scheduler: scheduler, logger: logger}
}

// Kinds returns the available report kinds.
func (s *ReportService) Kinds() []domain.ReportKind {
	return reportKinds
}

// GenerateRequest selects the report to generate.
type GenerateRequest struct {
	Kind string `json:"kind" validate:"required"`
}

// Generate runs one report on demand.
func (s *ReportService) Generate(ctx context.Context, req GenerateRequest, requestedBy string) (*domain.ReportRun, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	kind := domain.ReportKind(req.Kind)
	if !validReportKind(kind) {
		return nil, domainerrors.Validation(fmt.Sprintf("unknown report kind %q", req.Kind))
	}

	run, err := s.scheduler.Execute(ctx, kind, requestedBy)
	if err != nil {
		return nil, domainerrors.InternalWithCause("report generation failed", err)
	}
	return run, nil
}

// GetRun returns one report run including its CSV artifact.
func (s *ReportService) GetRun(ctx context.Context, runID string) (*domain.ReportRun, error) {
	run, err := s.reports.GetRun(ctx, runID)
	if err != nil {
		if errors.Is(err, report.ErrNotFound) {
			return nil, domainerrors.NotFound("report run not found")
		}
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent report runs.
func (s *ReportService) ListRuns(ctx context.Context, limit int) ([]*domain.ReportRun, error) {
	runs, err := s.reports.ListRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// ListSnapshots returns recent KPI snapshots, newest first.
func (s *ReportService) ListSnapshots(ctx context.Context, limit int) ([]*domain.KPISnapshot, error) {
	snaps, err := s.reports.ListSnapshots(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return snaps, nil
}

// LatestSnapshot returns the newest KPI snapshot, or a fresh uncommitted
// one when none has been captured yet.
func (s *ReportService) LatestSnapshot(ctx context.Context) (*domain.KPISnapshot, error) {
	snap, err := s.reports.LatestSnapshot(ctx)
	if err == nil {
		return snap, nil
	}
	if !errors.Is(err, report.ErrNotFound) {
		return nil, fmt.Errorf("latest snapshot: %w", err)
	}

	in, err := s.data.ReportInput(ctx)
	if err != nil {
		return nil, err
	}
	return report.CaptureSnapshot(in, time.Now()), nil
}

// ScheduleRequest contains the fields for creating or updating a schedule.
type ScheduleRequest struct {
	Kind       string   `json:"kind" validate:"required"`
	Interval   string   `json:"interval" validate:"required,oneof=daily weekly"`
	Recipients []string `json:"recipients" validate:"required,min=1,dive,email"`
	Enabled    *bool    `json:"enabled,omitempty"`
}

// CreateSchedule stores a new report schedule. The first run is a full
// interval away; use Generate for an immediate report.
func (s *ReportService) CreateSchedule(ctx context.Context, req ScheduleRequest) (*domain.ReportSchedule, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}
	kind := domain.ReportKind(req.Kind)
	if !validReportKind(kind) {
		return nil, domainerrors.Validation(fmt.Sprintf("unknown report kind %q", req.Kind))
	}

	schedID, err := id.Generate("sched")
	if err != nil {
		return nil, fmt.Errorf("generate schedule ID: %w", err)
	}

	interval := domain.ScheduleInterval(req.Interval)
	now := time.Now()
	sched := &domain.ReportSchedule{
		Kind:       kind,
		Interval:   interval,
		Recipients: req.Recipients,
		Enabled:    true,
		NextRunAt:  nextRunAfter(now, interval),
	}
	if req.Enabled != nil {
		sched.Enabled = *req.Enabled
	}
	sched.ID = schedID
	sched.InitTimestamps()

	if err := s.reports.CreateSchedule(ctx, sched); err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}

	return sched, nil
}

// GetSchedule returns one schedule.
func (s *ReportService) GetSchedule(ctx context.Context, schedID string) (*domain.ReportSchedule, error) {
	sched, err := s.reports.GetSchedule(ctx, schedID)
	if err != nil {
		if errors.Is(err, report.ErrNotFound) {
			return nil, domainerrors.NotFound("schedule not found")
		}
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	return sched, nil
}

// ListSchedules returns all report schedules.
func (s *ReportService) ListSchedules(ctx context.Context) ([]*domain.ReportSchedule, error) {
	scheds, err := s.reports.ListSchedules(ctx)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return scheds, nil
}

// UpdateSchedule replaces a schedule's settings. Changing the interval
// recomputes the next run from now.
func (s *ReportService) UpdateSchedule(ctx context.Context, schedID string, req ScheduleRequest) (*domain.ReportSchedule, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}
	kind := domain.ReportKind(req.Kind)
	if !validReportKind(kind) {
		return nil, domainerrors.Validation(fmt.Sprintf("unknown report kind %q", req.Kind))
	}

	sched, err := s.GetSchedule(ctx, schedID)
	if err != nil {
		return nil, err
	}

	interval := domain.ScheduleInterval(req.Interval)
	if interval != sched.Interval {
		sched.NextRunAt = nextRunAfter(time.Now(), interval)
	}
	sched.Kind = kind
	sched.Interval = interval
	sched.Recipients = req.Recipients
	if req.Enabled != nil {
		sched.Enabled = *req.Enabled
	}
	sched.Touch()

	if err := s.reports.UpdateSchedule(ctx, sched); err != nil {
		return nil, fmt.Errorf("update schedule: %w", err)
	}

	return sched, nil
}

// DeleteSchedule removes a schedule.
func (s *ReportService) DeleteSchedule(ctx context.Context, schedID string) error {
	if _, err := s.GetSchedule(ctx, schedID); err != nil {
		return err
	}
	if err := s.reports.DeleteSchedule(ctx, schedID); err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}

func validReportKind(kind domain.ReportKind) bool {
	for _, k := range reportKinds {
		if k == kind {
			return true
		}
	}
	return false
}

func nextRunAfter(now time.Time, interval domain.ScheduleInterval) time.Time {
	if interval == domain.IntervalWeekly {
		return now.Add(7 * 24 * time.Hour)
	}
	return now.Add(24 * time.Hour)
}
