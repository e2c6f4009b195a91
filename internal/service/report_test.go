package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/config"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
	domainerrors "github.com/aivladyslavai/MarketingKreis-sub000/internal/errors"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/jobs"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/report"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/store"
)

type discardEmitter struct{}

func (discardEmitter) Emit(any) {}

func setupReports(t *testing.T, s *store.Store) *ReportService {
	t.Helper()

	reports, err := report.Open(filepath.Join(t.TempDir(), "reports.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { reports.Close() })

	templates, err := report.NewTemplates("", testLogger())
	require.NoError(t, err)
	mailer := report.NewMailer(config.ReportConfig{}, templates)

	data := NewReportData(s)
	scheduler := jobs.NewScheduler(
		time.Minute,
		reports,
		mailer,
		data,
		s,
		jobs.NewRegistry(testLogger()),
		discardEmitter{},
		testLogger(),
	)
	return NewReportService(data, reports, scheduler, testLogger())
}

func TestGenerateReport(t *testing.T) {
	s := setupStore(t)
	items := setupItemService(t, s)
	reports := setupReports(t, s)
	ctx := context.Background()

	_, err := items.CreateItem(ctx, CreateItemRequest{Title: "Newsletter", Channel: "E-Mail"})
	require.NoError(t, err)
	_, err = items.CreateItem(ctx, CreateItemRequest{Title: "Blogpost", Channel: "Website"})
	require.NoError(t, err)

	run, err := reports.Generate(ctx, GenerateRequest{Kind: "content_overview"}, "usr_root")
	require.NoError(t, err)
	assert.Equal(t, domain.RunCompleted, run.State)
	assert.Contains(t, run.Summary, "2 Inhalte gesamt")
	assert.NotEmpty(t, run.CSV)

	got, err := reports.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)

	runs, err := reports.ListRuns(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestGenerateRejectsUnknownKind(t *testing.T) {
	s := setupStore(t)
	reports := setupReports(t, s)

	_, err := reports.Generate(context.Background(), GenerateRequest{Kind: "profit_forecast"}, "usr_root")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestLatestSnapshotComputesFreshWhenEmpty(t *testing.T) {
	s := setupStore(t)
	items := setupItemService(t, s)
	reports := setupReports(t, s)
	ctx := context.Background()

	pub := string(domain.StatusPublished)
	created, err := items.CreateItem(ctx, CreateItemRequest{Title: "Live", Channel: "Website"})
	require.NoError(t, err)
	_, err = items.UpdateItem(ctx, created.ID, UpdateItemRequest{Status: &pub})
	require.NoError(t, err)

	snap, err := reports.LatestSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.ItemsByStatus[string(domain.StatusPublished)])
	assert.Equal(t, 1, snap.PublishedByChannel["Website"])

	// Nothing was persisted for the ad-hoc computation.
	snaps, err := reports.ListSnapshots(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, snaps)
}

func TestScheduleLifecycle(t *testing.T) {
	s := setupStore(t)
	reports := setupReports(t, s)
	ctx := context.Background()

	created, err := reports.CreateSchedule(ctx, ScheduleRequest{
		Kind:       "channel_breakdown",
		Interval:   "daily",
		Recipients: []string{"marketing@example.com"},
	})
	require.NoError(t, err)
	assert.True(t, created.Enabled)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), created.NextRunAt, time.Minute)

	updated, err := reports.UpdateSchedule(ctx, created.ID, ScheduleRequest{
		Kind:       "channel_breakdown",
		Interval:   "weekly",
		Recipients: []string{"marketing@example.com", "cmo@example.com"},
	})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), updated.NextRunAt, time.Minute)
	assert.Len(t, updated.Recipients, 2)

	scheds, err := reports.ListSchedules(ctx)
	require.NoError(t, err)
	assert.Len(t, scheds, 1)

	require.NoError(t, reports.DeleteSchedule(ctx, created.ID))
	_, err = reports.GetSchedule(ctx, created.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCreateScheduleValidatesRecipients(t *testing.T) {
	s := setupStore(t)
	reports := setupReports(t, s)

	_, err := reports.CreateSchedule(context.Background(), ScheduleRequest{
		Kind:       "team_activity",
		Interval:   "daily",
		Recipients: []string{"not-an-email"},
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}
