package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
	domainerrors "github.com/aivladyslavai/MarketingKreis-sub000/internal/errors"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/jobs"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/store"
)

func setupAdmin(t *testing.T, s *store.Store) *AdminService {
	t.Helper()
	return NewAdminService(s, jobs.NewRegistry(testLogger()), testLogger())
}

func TestCreateUser(t *testing.T) {
	s := setupStore(t)
	admin := setupAdmin(t, s)
	ctx := context.Background()

	user, err := admin.CreateUser(ctx, CreateUserRequest{
		Email:       "Anna@Example.com",
		Password:    "ein-sicheres-passwort",
		DisplayName: "Anna Schmidt",
		Role:        "editor",
	})
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", user.Email, "emails are normalized to lowercase")
	assert.Equal(t, domain.RoleEditor, user.Role)
	assert.True(t, user.Active)
	assert.False(t, user.IsRoot)

	_, err = admin.CreateUser(ctx, CreateUserRequest{
		Email:       "anna@example.com",
		Password:    "anderes-passwort",
		DisplayName: "Doppelgänger",
		Role:        "viewer",
	})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	s := setupStore(t)
	admin := setupAdmin(t, s)

	_, err := admin.CreateUser(context.Background(), CreateUserRequest{
		Email:       "bernd@example.com",
		Password:    "ein-sicheres-passwort",
		DisplayName: "Bernd",
		Role:        "superuser",
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestUpdateUserRoleAndName(t *testing.T) {
	s := setupStore(t)
	admin := setupAdmin(t, s)
	ctx := context.Background()

	user, err := admin.CreateUser(ctx, CreateUserRequest{
		Email:       "clara@example.com",
		Password:    "ein-sicheres-passwort",
		DisplayName: "Clara",
		Role:        "viewer",
	})
	require.NoError(t, err)

	newRole := "admin"
	newName := "Clara Weber"
	updated, err := admin.UpdateUser(ctx, user.ID, UpdateUserRequest{
		Role:        &newRole,
		DisplayName: &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
	assert.Equal(t, "Clara Weber", updated.DisplayName)
}

func TestRootUserIsProtected(t *testing.T) {
	s := setupStore(t)
	admin := setupAdmin(t, s)
	authService, _ := setupAuth(t, s)
	ctx := context.Background()

	root := setupRootUser(t, authService).User

	demote := "viewer"
	_, err := admin.UpdateUser(ctx, root.ID, UpdateUserRequest{Role: &demote})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	inactive := false
	_, err = admin.UpdateUser(ctx, root.ID, UpdateUserRequest{Active: &inactive})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestDeactivationRevokesSessions(t *testing.T) {
	s := setupStore(t)
	admin := setupAdmin(t, s)
	authService, sessionService := setupAuth(t, s)
	ctx := context.Background()

	setupRootUser(t, authService)

	user, err := admin.CreateUser(ctx, CreateUserRequest{
		Email:       "dora@example.com",
		Password:    "ein-sicheres-passwort",
		DisplayName: "Dora",
		Role:        "editor",
	})
	require.NoError(t, err)

	_, err = authService.Login(ctx, LoginRequest{
		Email:    "dora@example.com",
		Password: "ein-sicheres-passwort",
	})
	require.NoError(t, err)

	sessions, err := sessionService.ListUserSessions(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	inactive := false
	_, err = admin.UpdateUser(ctx, user.ID, UpdateUserRequest{Active: &inactive})
	require.NoError(t, err)

	sessions, err = sessionService.ListUserSessions(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, sessions, "deactivation ends all sessions")
}

func TestFlagToggle(t *testing.T) {
	s := setupStore(t)
	admin := setupAdmin(t, s)
	ctx := context.Background()

	flags, err := admin.EvaluatedFlags(ctx)
	require.NoError(t, err)
	assert.True(t, flags[domain.FlagBulkActions])
	assert.False(t, flags[domain.FlagDemoSeed], "demo seeding is off by default")

	flag, err := admin.SetFlag(ctx, domain.FlagBulkActions, false)
	require.NoError(t, err)
	assert.False(t, flag.Enabled)

	flags, err = admin.EvaluatedFlags(ctx)
	require.NoError(t, err)
	assert.False(t, flags[domain.FlagBulkActions])

	_, err = admin.SetFlag(ctx, "no.such.flag", true)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAdminListSessions(t *testing.T) {
	s := setupStore(t)
	admin := setupAdmin(t, s)
	authService, _ := setupAuth(t, s)
	ctx := context.Background()

	setupRootUser(t, authService)
	_, err := authService.Login(ctx, LoginRequest{
		Email:    "root@example.com",
		Password: "super-secret-pw",
	})
	require.NoError(t, err)

	sessions, err := admin.ListSessions(ctx)
	require.NoError(t, err)
	// Setup creates one session, the login a second.
	require.Len(t, sessions, 2)

	require.NoError(t, admin.RevokeSession(ctx, sessions[0].ID))

	sessions, err = admin.ListSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}
