package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/auth"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/store"
)

// testLogger discards all output.
func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// setupStore creates a badger store backed by a temp directory.
func setupStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"), nil, store.NewNoopEmitter())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.EnsureDefaultFlags(context.Background()))
	return s
}

// setupAuth creates the auth service stack on a fresh store.
func setupAuth(t *testing.T, s *store.Store) (*AuthService, *SessionService) {
	t.Helper()

	keyHex, err := auth.LoadOrGenerateKey(t.TempDir())
	require.NoError(t, err)

	tokens, err := auth.NewTokenService(keyHex, 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)

	sessions := NewSessionService(s, tokens, testLogger())
	return NewAuthService(s, tokens, sessions, nil, testLogger()), sessions
}

// setupRootUser runs Setup and returns the auth response.
func setupRootUser(t *testing.T, authService *AuthService) *AuthResponse {
	t.Helper()

	resp, err := authService.Setup(context.Background(), SetupRequest{
		Email:       "root@example.com",
		Password:    "super-secret-pw",
		DisplayName: "Root Admin",
	})
	require.NoError(t, err)
	return resp
}
