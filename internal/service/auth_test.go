package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
	domainerrors "github.com/aivladyslavai/MarketingKreis-sub000/internal/errors"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/ratelimit"
)

func TestSetupCreatesRootAdmin(t *testing.T) {
	s := setupStore(t)
	authService, _ := setupAuth(t, s)

	resp := setupRootUser(t, authService)

	assert.True(t, resp.User.IsRoot)
	assert.Equal(t, domain.RoleAdmin, resp.User.Role)
	assert.True(t, resp.User.Active)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)

	required, err := authService.IsSetupRequired(context.Background())
	require.NoError(t, err)
	assert.False(t, required)
}

func TestSetupOnlyOnce(t *testing.T) {
	s := setupStore(t)
	authService, _ := setupAuth(t, s)
	setupRootUser(t, authService)

	_, err := authService.Setup(context.Background(), SetupRequest{
		Email:       "second@example.com",
		Password:    "another-password",
		DisplayName: "Second",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestLoginSuccessAndFailure(t *testing.T) {
	s := setupStore(t)
	authService, _ := setupAuth(t, s)
	setupRootUser(t, authService)
	ctx := context.Background()

	resp, err := authService.Login(ctx, LoginRequest{
		Email:    "root@example.com",
		Password: "super-secret-pw",
	})
	require.NoError(t, err)
	assert.Equal(t, "root@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = authService.Login(ctx, LoginRequest{
		Email:    "root@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	// Unknown email gets the same error as a wrong password.
	_, err = authService.Login(ctx, LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever-pw",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestLoginEmailIsCaseInsensitive(t *testing.T) {
	s := setupStore(t)
	authService, _ := setupAuth(t, s)
	setupRootUser(t, authService)

	resp, err := authService.Login(context.Background(), LoginRequest{
		Email:    "Root@Example.COM",
		Password: "super-secret-pw",
	})
	require.NoError(t, err)
	assert.Equal(t, "root@example.com", resp.User.Email)
}

func TestLoginRateLimited(t *testing.T) {
	s := setupStore(t)
	authService, _ := setupAuth(t, s)
	setupRootUser(t, authService)

	limiter := ratelimit.New(0.01, 2)
	t.Cleanup(limiter.Stop)
	authService.loginLimiter = limiter

	ctx := context.Background()
	req := LoginRequest{Email: "root@example.com", Password: "wrong-password", IPAddress: "10.0.0.1"}

	for range 2 {
		_, err := authService.Login(ctx, req)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	}

	_, err := authService.Login(ctx, req)
	assert.ErrorIs(t, err, domainerrors.ErrRateLimited)
}

func TestRefreshRotatesTokens(t *testing.T) {
	s := setupStore(t)
	authService, _ := setupAuth(t, s)
	resp := setupRootUser(t, authService)
	ctx := context.Background()

	refreshed, err := authService.Refresh(ctx, RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, refreshed.RefreshToken)
	assert.Equal(t, resp.SessionID, refreshed.SessionID)

	// The old token is dead after rotation.
	_, err = authService.Refresh(ctx, RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, domainerrors.ErrTokenExpired)
}

func TestLogoutEndsSession(t *testing.T) {
	s := setupStore(t)
	authService, _ := setupAuth(t, s)
	resp := setupRootUser(t, authService)
	ctx := context.Background()

	require.NoError(t, authService.Logout(ctx, resp.SessionID))

	_, err := authService.Refresh(ctx, RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, domainerrors.ErrTokenExpired)
}

func TestVerifyAccessToken(t *testing.T) {
	s := setupStore(t)
	authService, _ := setupAuth(t, s)
	resp := setupRootUser(t, authService)

	claims, err := authService.VerifyAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.True(t, claims.IsRoot)

	_, err = authService.VerifyAccessToken("v4.local.garbage")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}
