package report

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
)

func testRun(kind domain.ReportKind) *domain.ReportRun {
	return &domain.ReportRun{
		ID:        "run_test",
		Kind:      kind,
		State:     domain.RunCompleted,
		StartedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Summary:   "12 Inhalte gesamt",
		CSV:       "id,title\r\n",
	}
}

func TestBuiltinTemplateFallback(t *testing.T) {
	templates, err := NewTemplates("", slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	body, err := templates.Render(testRun(domain.ReportContentOverview))
	require.NoError(t, err)

	assert.Contains(t, body, "content_overview")
	assert.Contains(t, body, "12 Inhalte gesamt")
	assert.Contains(t, body, "14.03.2026 09:30")
	assert.False(t, templates.HasCustom(domain.ReportContentOverview))
}

func TestCustomTemplateLoadedFromDir(t *testing.T) {
	dir := t.TempDir()
	custom := "Wochenreport {{.Kind}}: {{.Summary}}"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "team_activity.tmpl"), []byte(custom), 0o644))

	templates, err := NewTemplates(dir, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	assert.True(t, templates.HasCustom(domain.ReportTeamActivity))
	assert.False(t, templates.HasCustom(domain.ReportContentOverview))

	body, err := templates.Render(testRun(domain.ReportTeamActivity))
	require.NoError(t, err)
	assert.Equal(t, "Wochenreport team_activity: 12 Inhalte gesamt", body)
}

func TestMissingTemplateDirIsNotAnError(t *testing.T) {
	templates, err := NewTemplates(filepath.Join(t.TempDir(), "does-not-exist"), slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	_, err = templates.Render(testRun(domain.ReportChannelBreakdown))
	assert.NoError(t, err)
}

func TestInvalidTemplateFileRejected(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "content_overview.tmpl"), []byte("{{.Broken"), 0o644))

	_, err := NewTemplates(dir, slog.New(slog.DiscardHandler))
	assert.Error(t, err)
}
