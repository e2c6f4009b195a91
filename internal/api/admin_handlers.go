package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/jobs"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/service"
)

func (s *Server) registerAdminRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "adminListUsers",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/users",
		Summary:     "List workspace members",
		Tags:        []string{"Admin"},
	}, s.handleAdminListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminCreateUser",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/users",
		Summary:     "Create workspace member",
		Tags:        []string{"Admin"},
	}, s.handleAdminCreateUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminUpdateUser",
		Method:      http.MethodPatch,
		Path:        "/api/v1/admin/users/{id}",
		Summary:     "Update workspace member",
		Description: "Change display name, role, or active state. Deactivation revokes all sessions. The root user cannot be demoted or deactivated.",
		Tags:        []string{"Admin"},
	}, s.handleAdminUpdateUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminListSessions",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/sessions",
		Summary:     "List active sessions",
		Tags:        []string{"Admin"},
	}, s.handleAdminListSessions)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminRevokeSession",
		Method:      http.MethodDelete,
		Path:        "/api/v1/admin/sessions/{id}",
		Summary:     "Revoke session",
		Tags:        []string{"Admin"},
	}, s.handleAdminRevokeSession)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminListFlags",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/flags",
		Summary:     "List feature flags",
		Tags:        []string{"Admin"},
	}, s.handleAdminListFlags)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminSetFlag",
		Method:      http.MethodPut,
		Path:        "/api/v1/admin/flags/{key}",
		Summary:     "Toggle feature flag",
		Tags:        []string{"Admin"},
	}, s.handleAdminSetFlag)

	huma.Register(s.api, huma.Operation{
		OperationID: "listFlags",
		Method:      http.MethodGet,
		Path:        "/api/v1/flags",
		Summary:     "Evaluated feature flags",
		Description: "Flat key-to-enabled map for feature gating in clients. Available to every signed-in user.",
		Tags:        []string{"Admin"},
	}, s.handleEvaluatedFlags)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminListJobs",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/jobs",
		Summary:     "List background jobs",
		Description: "Recent background jobs, newest first.",
		Tags:        []string{"Admin"},
	}, s.handleAdminListJobs)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminSeedDemo",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/seed",
		Summary:     "Seed demo content",
		Description: "Fills an empty workspace with demo items, tasks, and templates. Gated by the demo seed flag; refuses if content already exists.",
		Tags:        []string{"Admin"},
	}, s.handleAdminSeedDemo)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminReindex",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/reindex",
		Summary:     "Rebuild the search index",
		Tags:        []string{"Admin"},
	}, s.handleAdminReindex)
}

// AdminCreateUserInput wraps the member create request for Huma.
type AdminCreateUserInput struct {
	Body service.CreateUserRequest
}

// AdminUpdateUserInput wraps the member update request for Huma.
type AdminUpdateUserInput struct {
	ID   string `path:"id" doc:"User ID"`
	Body service.UpdateUserRequest
}

// UserListOutput wraps a user list for Huma.
type UserListOutput struct {
	Body []UserResponse
}

// SessionIDInput identifies one session.
type SessionIDInput struct {
	ID string `path:"id" doc:"Session ID"`
}

// FlagListOutput wraps the full flag list for Huma.
type FlagListOutput struct {
	Body []*domain.FeatureFlag
}

// SetFlagInput wraps a flag toggle for Huma.
type SetFlagInput struct {
	Key  string `path:"key" doc:"Flag key"`
	Body struct {
		Enabled bool `json:"enabled" doc:"New flag state"`
	}
}

// FlagOutput wraps one flag for Huma.
type FlagOutput struct {
	Body *domain.FeatureFlag
}

// EvaluatedFlagsOutput wraps the evaluated flag map for Huma.
type EvaluatedFlagsOutput struct {
	Body map[string]bool
}

// JobListOutput wraps the background job list for Huma.
type JobListOutput struct {
	Body []jobs.Job
}

// SeedOutput wraps the seed result for Huma.
type SeedOutput struct {
	Body *service.SeedResult
}

// ReindexResponse reports how many items were indexed.
type ReindexResponse struct {
	Indexed int `json:"indexed" doc:"Number of items written to the index"`
}

// ReindexOutput wraps the reindex result for Huma.
type ReindexOutput struct {
	Body ReindexResponse
}

func (s *Server) handleAdminListUsers(ctx context.Context, _ *struct{}) (*UserListOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	users, err := s.services.Admin.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]UserResponse, len(users))
	for i, user := range users {
		out[i] = mapUser(user)
	}
	return &UserListOutput{Body: out}, nil
}

func (s *Server) handleAdminCreateUser(ctx context.Context, input *AdminCreateUserInput) (*UserOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	user, err := s.services.Admin.CreateUser(ctx, input.Body)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: mapUser(user)}, nil
}

func (s *Server) handleAdminUpdateUser(ctx context.Context, input *AdminUpdateUserInput) (*UserOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	user, err := s.services.Admin.UpdateUser(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: mapUser(user)}, nil
}

func (s *Server) handleAdminListSessions(ctx context.Context, _ *struct{}) (*SessionListOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	sessions, err := s.services.Admin.ListSessions(ctx)
	if err != nil {
		return nil, err
	}

	return &SessionListOutput{Body: mapSessions(sessions)}, nil
}

func (s *Server) handleAdminRevokeSession(ctx context.Context, input *SessionIDInput) (*MessageOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	if err := s.services.Admin.RevokeSession(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Session revoked"}}, nil
}

func (s *Server) handleAdminListFlags(ctx context.Context, _ *struct{}) (*FlagListOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	flags, err := s.services.Admin.ListFlags(ctx)
	if err != nil {
		return nil, err
	}

	return &FlagListOutput{Body: flags}, nil
}

func (s *Server) handleAdminSetFlag(ctx context.Context, input *SetFlagInput) (*FlagOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	flag, err := s.services.Admin.SetFlag(ctx, input.Key, input.Body.Enabled)
	if err != nil {
		return nil, err
	}

	return &FlagOutput{Body: flag}, nil
}

func (s *Server) handleEvaluatedFlags(ctx context.Context, _ *struct{}) (*EvaluatedFlagsOutput, error) {
	if _, err := s.RequireUser(ctx); err != nil {
		return nil, err
	}

	flags, err := s.services.Admin.EvaluatedFlags(ctx)
	if err != nil {
		return nil, err
	}

	return &EvaluatedFlagsOutput{Body: flags}, nil
}

func (s *Server) handleAdminListJobs(ctx context.Context, _ *struct{}) (*JobListOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	return &JobListOutput{Body: s.services.Admin.ListJobs(ctx)}, nil
}

func (s *Server) handleAdminSeedDemo(ctx context.Context, _ *struct{}) (*SeedOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	result, err := s.services.Seed.Seed(ctx)
	if err != nil {
		return nil, err
	}

	return &SeedOutput{Body: result}, nil
}

func (s *Server) handleAdminReindex(ctx context.Context, _ *struct{}) (*ReindexOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	indexed, err := s.services.Items.ReindexAll(ctx)
	if err != nil {
		return nil, err
	}

	return &ReindexOutput{Body: ReindexResponse{Indexed: indexed}}, nil
}
