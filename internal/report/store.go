// Package report implements the reporting subsystem: KPI snapshots, report
// generation runs and scheduled email delivery, persisted in SQLite.
package report

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned when a reporting row does not exist.
var ErrNotFound = errors.New("report record not found")

// Store provides SQLite-backed persistence for the reporting subsystem.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open creates a new reporting store at the given path.
// It configures WAL mode, sets pragmas, and runs schema migrations.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable. Used by the readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// formatTime formats a time.Time to RFC3339Nano for storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime parses a RFC3339Nano string back to time.Time.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// parseNullableTime parses an optional time string.
func parseNullableTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// nullString returns a sql.NullString, treating "" as NULL.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// nullableTime returns a sql.NullString from a *time.Time.
func nullableTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

// --- KPI snapshots ---

// CreateSnapshot inserts a KPI snapshot. Snapshots are append-only.
func (s *Store) CreateSnapshot(ctx context.Context, snap *domain.KPISnapshot) error {
	itemsJSON, err := json.Marshal(snap.ItemsByStatus)
	if err != nil {
		return fmt.Errorf("marshal items_by_status: %w", err)
	}
	channelJSON, err := json.Marshal(snap.PublishedByChannel)
	if err != nil {
		return fmt.Errorf("marshal published_by_channel: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kpi_snapshots (
			id, captured_at, items_by_status, tasks_open, tasks_overdue,
			published_by_channel, active_users
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		snap.ID,
		formatTime(snap.CapturedAt),
		string(itemsJSON),
		snap.TasksOpen,
		snap.TasksOverdue,
		string(channelJSON),
		snap.ActiveUsers,
	)
	if err != nil {
		return fmt.Errorf("insert kpi snapshot: %w", err)
	}
	return nil
}

// scanSnapshot scans a row into a domain.KPISnapshot.
func scanSnapshot(scanner interface{ Scan(dest ...any) error }) (*domain.KPISnapshot, error) {
	var snap domain.KPISnapshot
	var capturedAt, itemsJSON, channelJSON string

	err := scanner.Scan(
		&snap.ID,
		&capturedAt,
		&itemsJSON,
		&snap.TasksOpen,
		&snap.TasksOverdue,
		&channelJSON,
		&snap.ActiveUsers,
	)
	if err != nil {
		return nil, err
	}

	snap.CapturedAt, err = parseTime(capturedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(itemsJSON), &snap.ItemsByStatus); err != nil {
		return nil, fmt.Errorf("unmarshal items_by_status: %w", err)
	}
	if err := json.Unmarshal([]byte(channelJSON), &snap.PublishedByChannel); err != nil {
		return nil, fmt.Errorf("unmarshal published_by_channel: %w", err)
	}

	return &snap, nil
}

const snapshotColumns = `id, captured_at, items_by_status, tasks_open, tasks_overdue,
	published_by_channel, active_users`

// ListSnapshots returns the most recent snapshots, newest first.
func (s *Store) ListSnapshots(ctx context.Context, limit int) ([]*domain.KPISnapshot, error) {
	if limit <= 0 {
		limit = 30
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+snapshotColumns+`
		FROM kpi_snapshots
		ORDER BY captured_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []*domain.KPISnapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// LatestSnapshot returns the newest snapshot, or ErrNotFound if none exist.
func (s *Store) LatestSnapshot(ctx context.Context) (*domain.KPISnapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+snapshotColumns+`
		FROM kpi_snapshots
		ORDER BY captured_at DESC
		LIMIT 1`)

	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// --- Report runs ---

const runColumns = `id, kind, state, requested_by, started_at, finished_at, summary, csv, error`

// CreateRun inserts a new report run record.
func (s *Store) CreateRun(ctx context.Context, run *domain.ReportRun) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO report_runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		string(run.Kind),
		string(run.State),
		nullString(run.RequestedBy),
		formatTime(run.StartedAt),
		nullableTime(run.FinishedAt),
		nullString(run.Summary),
		nullString(run.CSV),
		nullString(run.Error),
	)
	if err != nil {
		return fmt.Errorf("insert report run: %w", err)
	}
	return nil
}

// UpdateRun updates an existing report run record.
func (s *Store) UpdateRun(ctx context.Context, run *domain.ReportRun) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE report_runs
		SET state = ?, finished_at = ?, summary = ?, csv = ?, error = ?
		WHERE id = ?`,
		string(run.State),
		nullableTime(run.FinishedAt),
		nullString(run.Summary),
		nullString(run.CSV),
		nullString(run.Error),
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("update report run: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// scanRun scans a row into a domain.ReportRun.
func scanRun(scanner interface{ Scan(dest ...any) error }) (*domain.ReportRun, error) {
	var run domain.ReportRun
	var kind, state, startedAt string
	var requestedBy, finishedAt, summary, csvText, errText sql.NullString

	err := scanner.Scan(
		&run.ID,
		&kind,
		&state,
		&requestedBy,
		&startedAt,
		&finishedAt,
		&summary,
		&csvText,
		&errText,
	)
	if err != nil {
		return nil, err
	}

	run.Kind = domain.ReportKind(kind)
	run.State = domain.RunState(state)
	run.RequestedBy = requestedBy.String
	run.Summary = summary.String
	run.CSV = csvText.String
	run.Error = errText.String

	run.StartedAt, err = parseTime(startedAt)
	if err != nil {
		return nil, err
	}
	run.FinishedAt, err = parseNullableTime(finishedAt)
	if err != nil {
		return nil, err
	}

	return &run, nil
}

// GetRun returns a report run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (*domain.ReportRun, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+runColumns+` FROM report_runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns the most recent report runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*domain.ReportRun, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+runColumns+`
		FROM report_runs
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query report runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.ReportRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// --- Report schedules ---

const scheduleColumns = `id, kind, interval, recipients, enabled, last_run_at, next_run_at, created_at, updated_at`

// CreateSchedule inserts a new report schedule.
func (s *Store) CreateSchedule(ctx context.Context, sched *domain.ReportSchedule) error {
	recipientsJSON, err := json.Marshal(sched.Recipients)
	if err != nil {
		return fmt.Errorf("marshal recipients: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO report_schedules (`+scheduleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sched.ID,
		string(sched.Kind),
		string(sched.Interval),
		string(recipientsJSON),
		sched.Enabled,
		nullableTime(sched.LastRunAt),
		formatTime(sched.NextRunAt),
		formatTime(sched.CreatedAt),
		formatTime(sched.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert report schedule: %w", err)
	}
	return nil
}

// UpdateSchedule updates an existing report schedule.
func (s *Store) UpdateSchedule(ctx context.Context, sched *domain.ReportSchedule) error {
	recipientsJSON, err := json.Marshal(sched.Recipients)
	if err != nil {
		return fmt.Errorf("marshal recipients: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE report_schedules
		SET kind = ?, interval = ?, recipients = ?, enabled = ?,
			last_run_at = ?, next_run_at = ?, updated_at = ?
		WHERE id = ?`,
		string(sched.Kind),
		string(sched.Interval),
		string(recipientsJSON),
		sched.Enabled,
		nullableTime(sched.LastRunAt),
		formatTime(sched.NextRunAt),
		formatTime(time.Now()),
		sched.ID,
	)
	if err != nil {
		return fmt.Errorf("update report schedule: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSchedule removes a report schedule. Idempotent.
func (s *Store) DeleteSchedule(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM report_schedules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete report schedule: %w", err)
	}
	return nil
}

// scanSchedule scans a row into a domain.ReportSchedule.
func scanSchedule(scanner interface{ Scan(dest ...any) error }) (*domain.ReportSchedule, error) {
	var sched domain.ReportSchedule
	var kind, interval, recipientsJSON, nextRunAt, createdAt, updatedAt string
	var lastRunAt sql.NullString

	err := scanner.Scan(
		&sched.ID,
		&kind,
		&interval,
		&recipientsJSON,
		&sched.Enabled,
		&lastRunAt,
		&nextRunAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	sched.Kind = domain.ReportKind(kind)
	sched.Interval = domain.ScheduleInterval(interval)

	if err := json.Unmarshal([]byte(recipientsJSON), &sched.Recipients); err != nil {
		return nil, fmt.Errorf("unmarshal recipients: %w", err)
	}

	sched.LastRunAt, err = parseNullableTime(lastRunAt)
	if err != nil {
		return nil, err
	}
	sched.NextRunAt, err = parseTime(nextRunAt)
	if err != nil {
		return nil, err
	}
	sched.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	sched.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &sched, nil
}

// GetSchedule returns a report schedule by ID.
func (s *Store) GetSchedule(ctx context.Context, id string) (*domain.ReportSchedule, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+scheduleColumns+` FROM report_schedules WHERE id = ?`, id)

	sched, err := scanSchedule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sched, nil
}

// ListSchedules returns all report schedules.
func (s *Store) ListSchedules(ctx context.Context) ([]*domain.ReportSchedule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+scheduleColumns+`
		FROM report_schedules
		ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("query report schedules: %w", err)
	}
	defer rows.Close()

	var scheds []*domain.ReportSchedule
	for rows.Next() {
		sched, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		scheds = append(scheds, sched)
	}
	return scheds, rows.Err()
}

// ListDueSchedules returns enabled schedules whose next run is at or before now.
func (s *Store) ListDueSchedules(ctx context.Context, now time.Time) ([]*domain.ReportSchedule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+scheduleColumns+`
		FROM report_schedules
		WHERE enabled = 1 AND next_run_at <= ?
		ORDER BY next_run_at`, formatTime(now))
	if err != nil {
		return nil, fmt.Errorf("query due schedules: %w", err)
	}
	defer rows.Close()

	var scheds []*domain.ReportSchedule
	for rows.Next() {
		sched, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		scheds = append(scheds, sched)
	}
	return scheds, rows.Err()
}
