package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/service"
)

func (s *Server) registerReportRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listReportKinds",
		Method:      http.MethodGet,
		Path:        "/api/v1/reports/kinds",
		Summary:     "Available report kinds",
		Tags:        []string{"Reports"},
	}, s.handleListReportKinds)

	huma.Register(s.api, huma.Operation{
		OperationID: "generateReport",
		Method:      http.MethodPost,
		Path:        "/api/v1/reports/generate",
		Summary:     "Generate report",
		Description: "Runs one report immediately and returns the finished run.",
		Tags:        []string{"Reports"},
	}, s.handleGenerateReport)

	huma.Register(s.api, huma.Operation{
		OperationID: "listReportRuns",
		Method:      http.MethodGet,
		Path:        "/api/v1/reports/runs",
		Summary:     "List report runs",
		Tags:        []string{"Reports"},
	}, s.handleListReportRuns)

	huma.Register(s.api, huma.Operation{
		OperationID: "getReportRun",
		Method:      http.MethodGet,
		Path:        "/api/v1/reports/runs/{id}",
		Summary:     "Get report run",
		Tags:        []string{"Reports"},
	}, s.handleGetReportRun)

	huma.Register(s.api, huma.Operation{
		OperationID: "listKPISnapshots",
		Method:      http.MethodGet,
		Path:        "/api/v1/reports/snapshots",
		Summary:     "List KPI snapshots",
		Tags:        []string{"Reports"},
	}, s.handleListSnapshots)

	huma.Register(s.api, huma.Operation{
		OperationID: "latestKPISnapshot",
		Method:      http.MethodGet,
		Path:        "/api/v1/reports/snapshots/latest",
		Summary:     "Latest KPI snapshot",
		Description: "The newest captured snapshot; computed fresh when none exists yet.",
		Tags:        []string{"Reports"},
	}, s.handleLatestSnapshot)

	huma.Register(s.api, huma.Operation{
		OperationID: "listReportSchedules",
		Method:      http.MethodGet,
		Path:        "/api/v1/reports/schedules",
		Summary:     "List report schedules",
		Tags:        []string{"Reports"},
	}, s.handleListSchedules)

	huma.Register(s.api, huma.Operation{
		OperationID: "createReportSchedule",
		Method:      http.MethodPost,
		Path:        "/api/v1/reports/schedules",
		Summary:     "Create report schedule",
		Description: "Admin only. The first run is one full interval away.",
		Tags:        []string{"Reports"},
	}, s.handleCreateSchedule)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateReportSchedule",
		Method:      http.MethodPut,
		Path:        "/api/v1/reports/schedules/{id}",
		Summary:     "Update report schedule",
		Description: "Admin only. Changing the interval recomputes the next run.",
		Tags:        []string{"Reports"},
	}, s.handleUpdateSchedule)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteReportSchedule",
		Method:      http.MethodDelete,
		Path:        "/api/v1/reports/schedules/{id}",
		Summary:     "Delete report schedule",
		Description: "Admin only.",
		Tags:        []string{"Reports"},
	}, s.handleDeleteSchedule)
}

// ReportKindsOutput wraps the kind list for Huma.
type ReportKindsOutput struct {
	Body []domain.ReportKind
}

// GenerateReportInput wraps the generate request for Huma.
type GenerateReportInput struct {
	Body service.GenerateRequest
}

// ReportRunOutput wraps one report run for Huma.
type ReportRunOutput struct {
	Body *domain.ReportRun
}

// ReportRunListInput carries the run list paging parameter.
type ReportRunListInput struct {
	Limit int `query:"limit" minimum:"1" maximum:"200" doc:"Max runs (default 50)"`
}

// ReportRunListOutput wraps a run list for Huma.
type ReportRunListOutput struct {
	Body []*domain.ReportRun
}

// RunIDInput identifies one report run.
type RunIDInput struct {
	ID string `path:"id" doc:"Report run ID"`
}

// SnapshotListInput carries the snapshot list paging parameter.
type SnapshotListInput struct {
	Limit int `query:"limit" minimum:"1" maximum:"200" doc:"Max snapshots (default 30)"`
}

// SnapshotListOutput wraps a snapshot list for Huma.
type SnapshotListOutput struct {
	Body []*domain.KPISnapshot
}

// SnapshotOutput wraps one snapshot for Huma.
type SnapshotOutput struct {
	Body *domain.KPISnapshot
}

// ScheduleInput wraps the schedule create request for Huma.
type ScheduleInput struct {
	Body service.ScheduleRequest
}

// ScheduleUpdateInput wraps the schedule update request for Huma.
type ScheduleUpdateInput struct {
	ID   string `path:"id" doc:"Schedule ID"`
	Body service.ScheduleRequest
}

// ScheduleIDInput identifies one schedule.
type ScheduleIDInput struct {
	ID string `path:"id" doc:"Schedule ID"`
}

// ScheduleOutput wraps one schedule for Huma.
type ScheduleOutput struct {
	Body *domain.ReportSchedule
}

// ScheduleListOutput wraps a schedule list for Huma.
type ScheduleListOutput struct {
	Body []*domain.ReportSchedule
}

func (s *Server) handleListReportKinds(ctx context.Context, _ *struct{}) (*ReportKindsOutput, error) {
	if _, err := s.RequireUser(ctx); err != nil {
		return nil, err
	}
	return &ReportKindsOutput{Body: s.services.Reports.Kinds()}, nil
}

func (s *Server) handleGenerateReport(ctx context.Context, input *GenerateReportInput) (*ReportRunOutput, error) {
	user, err := s.RequireCanEdit(ctx)
	if err != nil {
		return nil, err
	}

	run, err := s.services.Reports.Generate(ctx, input.Body, user.ID)
	if err != nil {
		return nil, err
	}

	return &ReportRunOutput{Body: run}, nil
}

func (s *Server) handleListReportRuns(ctx context.Context, input *ReportRunListInput) (*ReportRunListOutput, error) {
	if _, err := s.RequireUser(ctx); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 50
	}

	runs, err := s.services.Reports.ListRuns(ctx, limit)
	if err != nil {
		return nil, err
	}

	return &ReportRunListOutput{Body: runs}, nil
}

func (s *Server) handleGetReportRun(ctx context.Context, input *RunIDInput) (*ReportRunOutput, error) {
	if _, err := s.RequireUser(ctx); err != nil {
		return nil, err
	}

	run, err := s.services.Reports.GetRun(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &ReportRunOutput{Body: run}, nil
}

func (s *Server) handleListSnapshots(ctx context.Context, input *SnapshotListInput) (*SnapshotListOutput, error) {
	if _, err := s.RequireUser(ctx); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 30
	}

	snaps, err := s.services.Reports.ListSnapshots(ctx, limit)
	if err != nil {
		return nil, err
	}

	return &SnapshotListOutput{Body: snaps}, nil
}

func (s *Server) handleLatestSnapshot(ctx context.Context, _ *struct{}) (*SnapshotOutput, error) {
	if _, err := s.RequireUser(ctx); err != nil {
		return nil, err
	}

	snap, err := s.services.Reports.LatestSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	return &SnapshotOutput{Body: snap}, nil
}

func (s *Server) handleListSchedules(ctx context.Context, _ *struct{}) (*ScheduleListOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	scheds, err := s.services.Reports.ListSchedules(ctx)
	if err != nil {
		return nil, err
	}

	return &ScheduleListOutput{Body: scheds}, nil
}

func (s *Server) handleCreateSchedule(ctx context.Context, input *ScheduleInput) (*ScheduleOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	sched, err := s.services.Reports.CreateSchedule(ctx, input.Body)
	if err != nil {
		return nil, err
	}

	return &ScheduleOutput{Body: sched}, nil
}

func (s *Server) handleUpdateSchedule(ctx context.Context, input *ScheduleUpdateInput) (*ScheduleOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	sched, err := s.services.Reports.UpdateSchedule(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}

	return &ScheduleOutput{Body: sched}, nil
}

func (s *Server) handleDeleteSchedule(ctx context.Context, input *ScheduleIDInput) (*MessageOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	if err := s.services.Reports.DeleteSchedule(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Schedule deleted"}}, nil
}
