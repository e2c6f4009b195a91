package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.api.Get("/health")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[HealthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.True(t, envelope.Success)
	assert.Equal(t, "healthy", envelope.Data.Status)
	assert.Equal(t, Version, envelope.Data.Version)
}

func TestReadyFailsWhenCheckFails(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.api.Get("/readyz")
	assert.Equal(t, http.StatusOK, resp.Code)

	ts.AddReadyCheck(func() error { return errors.New("backend down") })

	resp = ts.api.Get("/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}

func TestInstanceReportsSetupState(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.api.Get("/api/v1/instance")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[InstanceResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.True(t, envelope.Data.SetupRequired)
	assert.NotEmpty(t, envelope.Data.WorkspaceName)

	ts.setupWorkspace(t)

	resp = ts.api.Get("/api/v1/instance")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.False(t, envelope.Data.SetupRequired)
	assert.Equal(t, "MarketingKreis Test", envelope.Data.WorkspaceName)
}
