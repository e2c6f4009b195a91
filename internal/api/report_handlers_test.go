package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
)

func TestReportKinds(t *testing.T) {
	ts := newTestServer(t)
	token := ts.setupWorkspace(t)

	resp := ts.api.Get("/api/v1/reports/kinds", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var kinds testEnvelope[[]domain.ReportKind]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &kinds))
	assert.Contains(t, kinds.Data, domain.ReportContentOverview)
}

func TestGenerateReportViaAPI(t *testing.T) {
	ts := newTestServer(t)
	token := ts.setupWorkspace(t)

	ts.createItem(t, token, map[string]any{"title": "Blogpost", "channel": "Website"})

	resp := ts.api.Post("/api/v1/reports/generate",
		map[string]any{"kind": string(domain.ReportContentOverview)},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var run testEnvelope[*domain.ReportRun]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &run))
	assert.Equal(t, domain.RunCompleted, run.Data.State)
	assert.NotEmpty(t, run.Data.Summary)

	// The run is retrievable afterwards.
	resp = ts.api.Get("/api/v1/reports/runs/"+run.Data.ID, "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/reports/runs", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var runs testEnvelope[[]*domain.ReportRun]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &runs))
	assert.Len(t, runs.Data, 1)
}

func TestGenerateReportUnknownKind(t *testing.T) {
	ts := newTestServer(t)
	token := ts.setupWorkspace(t)

	resp := ts.api.Post("/api/v1/reports/generate",
		map[string]any{"kind": "gewinn_prognose"},
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestLatestSnapshotViaAPI(t *testing.T) {
	ts := newTestServer(t)
	token := ts.setupWorkspace(t)

	ts.createItem(t, token, map[string]any{"title": "Ideensammlung"})

	resp := ts.api.Get("/api/v1/reports/snapshots/latest", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var snap testEnvelope[*domain.KPISnapshot]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &snap))
	assert.Equal(t, 1, snap.Data.ItemsByStatus[string(domain.StatusIdea)])
}

func TestScheduleCRUDViaAPI(t *testing.T) {
	ts := newTestServer(t)
	adminToken := ts.setupWorkspace(t)

	resp := ts.api.Post("/api/v1/reports/schedules",
		map[string]any{
			"kind":       string(domain.ReportContentOverview),
			"interval":   "weekly",
			"recipients": []string{"team@marketingkreis.de"},
		},
		"Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var sched testEnvelope[*domain.ReportSchedule]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &sched))
	require.NotEmpty(t, sched.Data.ID)

	resp = ts.api.Get("/api/v1/reports/schedules", "Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var scheds testEnvelope[[]*domain.ReportSchedule]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &scheds))
	assert.Len(t, scheds.Data, 1)

	resp = ts.api.Delete("/api/v1/reports/schedules/"+sched.Data.ID, "Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Delete("/api/v1/reports/schedules/"+sched.Data.ID, "Authorization: Bearer "+adminToken)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestScheduleRequiresAdmin(t *testing.T) {
	ts := newTestServer(t)
	adminToken := ts.setupWorkspace(t)
	editorToken := ts.createMember(t, adminToken, "redaktion@marketingkreis.de", "editor")

	resp := ts.api.Post("/api/v1/reports/schedules",
		map[string]any{
			"kind":       string(domain.ReportContentOverview),
			"interval":   "daily",
			"recipients": []string{"team@marketingkreis.de"},
		},
		"Authorization: Bearer "+editorToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}
