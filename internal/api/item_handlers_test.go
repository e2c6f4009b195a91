package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/content"
)

func (ts *testServer) createItem(t *testing.T, token string, body map[string]any) ItemResponse {
	t.Helper()

	resp := ts.api.Post("/api/v1/items", body, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, "create item failed: %s", resp.Body.String())

	var envelope testEnvelope[ItemResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestItemLifecycle(t *testing.T) {
	ts := newTestServer(t)
	token := ts.setupWorkspace(t)

	item := ts.createItem(t, token, map[string]any{
		"title":   "Sommerkampagne Teaser",
		"channel": "Instagram",
		"format":  "Reel",
	})
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "IDEA", item.Status)

	resp := ts.api.Patch("/api/v1/items/"+item.ID,
		map[string]any{"status": "DRAFT", "notes": "Erster Entwurf steht"},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var updated testEnvelope[ItemResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &updated))
	assert.Equal(t, "DRAFT", updated.Data.Status)
	assert.Equal(t, "Erster Entwurf steht", updated.Data.Notes)
	// Untouched fields survive a partial update.
	assert.Equal(t, "Sommerkampagne Teaser", updated.Data.Title)

	resp = ts.api.Delete("/api/v1/items/"+item.ID, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/items/"+item.ID, "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListItemsFiltered(t *testing.T) {
	ts := newTestServer(t)
	token := ts.setupWorkspace(t)

	ts.createItem(t, token, map[string]any{"title": "Reel A", "channel": "Instagram"})
	ts.createItem(t, token, map[string]any{"title": "Newsletter", "channel": "E-Mail"})
	ts.createItem(t, token, map[string]any{"title": "Reel B", "channel": "instagram"})

	resp := ts.api.Get("/api/v1/items?channel=Instagram", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[[]ItemResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	// Channel matching is case-insensitive.
	assert.Len(t, envelope.Data, 2)
}

func TestViewerCannotMutate(t *testing.T) {
	ts := newTestServer(t)
	adminToken := ts.setupWorkspace(t)
	viewerToken := ts.createMember(t, adminToken, "leser@marketingkreis.de", "viewer")

	resp := ts.api.Post("/api/v1/items",
		map[string]any{"title": "Nicht erlaubt"},
		"Authorization: Bearer "+viewerToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	// Reading is fine.
	resp = ts.api.Get("/api/v1/items", "Authorization: Bearer "+viewerToken)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestBulkSetStatus(t *testing.T) {
	ts := newTestServer(t)
	token := ts.setupWorkspace(t)

	a := ts.createItem(t, token, map[string]any{"title": "Post A"})
	b := ts.createItem(t, token, map[string]any{"title": "Post B"})

	resp := ts.api.Post("/api/v1/items/bulk",
		map[string]any{
			"action": "set_status",
			"ids":    []string{a.ID, b.ID, "itm_fehlt"},
			"status": "APPROVED",
		},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[content.BulkResult]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, 2, envelope.Data.OK)
	assert.Equal(t, 1, envelope.Data.Failed)
	assert.Contains(t, envelope.Data.Errors, "itm_fehlt")
}

func TestExportCSV(t *testing.T) {
	ts := newTestServer(t)
	token := ts.setupWorkspace(t)

	ts.createItem(t, token, map[string]any{"title": "Export mich", "channel": "Website"})

	resp := ts.api.Get("/api/v1/items/export", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	assert.Contains(t, resp.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header().Get("Content-Disposition"), "attachment")

	body := resp.Body.String()
	// Excel needs the UTF-8 BOM.
	assert.True(t, strings.HasPrefix(body, "\xef\xbb\xbf"))
	assert.Contains(t, body, "Export mich")
}

func TestExportCSVRequiresAuth(t *testing.T) {
	ts := newTestServer(t)
	ts.setupWorkspace(t)

	resp := ts.api.Get("/api/v1/items/export")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
