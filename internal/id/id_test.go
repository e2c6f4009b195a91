package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Format(t *testing.T) {
	id, err := Generate("item")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(id, "item-"))
	// NanoID default length is 21.
	assert.Len(t, strings.TrimPrefix(id, "item-"), 21)
}

func TestGenerate_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for range 1000 {
		id, err := Generate("task")
		require.NoError(t, err)
		assert.False(t, seen[id], "ID should be unique: %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, 1000)
}

func TestMustGenerate(t *testing.T) {
	assert.NotPanics(t, func() {
		id := MustGenerate("view")
		assert.True(t, strings.HasPrefix(id, "view-"))
	})
}
