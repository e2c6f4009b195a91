package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeTransformer_Success(t *testing.T) {
	result, err := EnvelopeTransformer(nil, "200", map[string]string{"id": "itm_1"})
	require.NoError(t, err)

	envelope, ok := result.(APIEnvelope)
	require.True(t, ok)
	assert.Equal(t, EnvelopeVersion, envelope.Version)
	assert.True(t, envelope.Success)
	assert.NotNil(t, envelope.Data)
}

func TestEnvelopeTransformer_Error(t *testing.T) {
	result, err := EnvelopeTransformer(nil, "404", &APIError{
		Code:    "NOT_FOUND",
		Message: "item not found",
	})
	require.NoError(t, err)

	envelope, ok := result.(APIErrorEnvelope)
	require.True(t, ok)
	assert.Equal(t, EnvelopeVersion, envelope.Version)
	assert.False(t, envelope.Success)
	assert.Equal(t, "NOT_FOUND", envelope.Code)
	assert.Equal(t, "item not found", envelope.Message)
}

func TestEnvelopeOnWire_Success(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &raw))
	assert.Equal(t, float64(EnvelopeVersion), raw["v"])
	assert.Equal(t, true, raw["success"])
	assert.Contains(t, raw, "data")
}

func TestEnvelopeOnWire_DomainError(t *testing.T) {
	ts := newTestServer(t)
	token := ts.setupWorkspace(t)

	resp := ts.api.Get("/api/v1/items/itm_missing", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusNotFound, resp.Code)

	var envelope testErrorEnvelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, EnvelopeVersion, envelope.V)
	assert.False(t, envelope.Success)
	assert.Equal(t, "NOT_FOUND", envelope.Code)
	assert.NotEmpty(t, envelope.Message)
}

func TestEnvelopeOnWire_ValidationError(t *testing.T) {
	ts := newTestServer(t)
	token := ts.setupWorkspace(t)

	// Title is required.
	resp := ts.api.Post("/api/v1/items",
		map[string]any{"channel": "Website"},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	var envelope testErrorEnvelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "VALIDATION", envelope.Code)
}

func TestAnonymousRequestRejected(t *testing.T) {
	ts := newTestServer(t)
	ts.setupWorkspace(t)

	resp := ts.api.Get("/api/v1/items")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Get("/api/v1/items", "Authorization: Bearer kein-echtes-token")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
