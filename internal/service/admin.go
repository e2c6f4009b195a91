package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/auth"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
	domainerrors "github.com/aivladyslavai/MarketingKreis-sub000/internal/errors"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/id"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/jobs"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/store"
)

// AdminService implements the admin console: user management, session
// revocation, feature flags, demo seeding, and job monitoring.
type AdminService struct {
	store    *store.Store
	registry *jobs.Registry
	logger   *slog.Logger
}

// NewAdminService creates an admin service.
func NewAdminService(st *store.Store, registry *jobs.Registry, logger *slog.Logger) *AdminService {
	return &AdminService{store: st, registry: registry, logger: logger}
}

// CreateUserRequest contains the fields for inviting a workspace member.
type CreateUserRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=1024"`
	DisplayName string `json:"display_name" validate:"required"`
	Role        string `json:"role" validate:"required,oneof=admin editor viewer"`
}

// UpdateUserRequest contains partial user updates. Nil fields are unchanged.
type UpdateUserRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	Role        *string `json:"role,omitempty" validate:"omitempty,oneof=admin editor viewer"`
	Active      *bool   `json:"active,omitempty"`
}

// CreateUser creates a workspace member with the given role.
func (s *AdminService) CreateUser(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate("user")
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	user := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: passwordHash,
		Role:         domain.Role(req.Role),
		Active:       true,
		DisplayName:  req.DisplayName,
	}
	user.ID = userID
	user.InitTimestamps()

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("email already in use")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user created", "user_id", userID, "role", user.Role)
	return user, nil
}

// ListUsers returns all workspace members.
func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdateUser changes a member's display name, role, or active state.
// The root user cannot be demoted or deactivated.
func (s *AdminService) UpdateUser(ctx context.Context, userID string, req UpdateUserRequest) (*domain.User, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if user.IsRoot {
		if req.Role != nil && domain.Role(*req.Role) != domain.RoleAdmin {
			return nil, domainerrors.Forbidden("the root user cannot be demoted")
		}
		if req.Active != nil && !*req.Active {
			return nil, domainerrors.Forbidden("the root user cannot be deactivated")
		}
	}

	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.Role != nil {
		user.Role = domain.Role(*req.Role)
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	user.Touch()

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	// Deactivation kills all sessions immediately.
	if req.Active != nil && !*req.Active {
		if err := s.store.DeleteAllUserSessions(ctx, userID); err != nil {
			s.logger.Warn("failed to revoke sessions of deactivated user",
				"user_id", userID, "error", err)
		}
	}

	return user, nil
}

// ListSessions returns all active sessions across the workspace.
func (s *AdminService) ListSessions(ctx context.Context) ([]*domain.Session, error) {
	sessions, err := s.store.ListAllSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// RevokeSession force-ends one session.
func (s *AdminService) RevokeSession(ctx context.Context, sessionID string) error {
	if err := s.store.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	s.logger.Info("session revoked by admin", "session_id", sessionID)
	return nil
}

// ListFlags returns all feature flags with their descriptions.
func (s *AdminService) ListFlags(ctx context.Context) ([]*domain.FeatureFlag, error) {
	flags, err := s.store.ListFlags(ctx)
	if err != nil {
		return nil, fmt.Errorf("list flags: %w", err)
	}
	return flags, nil
}

// EvaluatedFlags returns the flag map clients use to gate UI features.
func (s *AdminService) EvaluatedFlags(ctx context.Context) (map[string]bool, error) {
	flags, err := s.store.ListFlags(ctx)
	if err != nil {
		return nil, fmt.Errorf("list flags: %w", err)
	}

	out := make(map[string]bool, len(flags))
	for _, flag := range flags {
		out[flag.Key] = flag.Enabled
	}
	return out, nil
}

// SetFlag toggles a feature flag.
func (s *AdminService) SetFlag(ctx context.Context, key string, enabled bool) (*domain.FeatureFlag, error) {
	flag, err := s.store.SetFlag(ctx, key, enabled)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound(fmt.Sprintf("unknown flag %q", key))
		}
		return nil, fmt.Errorf("set flag: %w", err)
	}

	s.logger.Info("feature flag changed", "flag", key, "enabled", enabled)
	return flag, nil
}

// ListJobs returns the tracked background job runs, newest first.
func (s *AdminService) ListJobs(ctx context.Context) []jobs.Job {
	return s.registry.List()
}
