package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/content"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
	domainerrors "github.com/aivladyslavai/MarketingKreis-sub000/internal/errors"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/store"
)

// SettingsService manages workspace-wide preferences.
type SettingsService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewSettingsService creates a settings service.
func NewSettingsService(st *store.Store, logger *slog.Logger) *SettingsService {
	return &SettingsService{store: st, logger: logger}
}

// UpdateSettingsRequest contains the editable workspace settings.
type UpdateSettingsRequest struct {
	WorkspaceName string `json:"workspace_name" validate:"required,max=200"`
	DefaultSort   string `json:"default_sort" validate:"required"`
}

// validSorts are the accepted default sort modes.
var validSorts = map[string]bool{
	content.SortUpdatedDesc: true,
	content.SortUpdatedAsc:  true,
	content.SortDueAsc:      true,
	content.SortDueDesc:     true,
	content.SortPublishAsc:  true,
	content.SortPublishDesc: true,
	content.SortTitleAsc:    true,
	content.SortStatusAsc:   true,
}

// Get returns the workspace settings, defaults if never saved.
func (s *SettingsService) Get(ctx context.Context) (*domain.WorkspaceSettings, error) {
	settings, err := s.store.GetWorkspaceSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("get workspace settings: %w", err)
	}
	return settings, nil
}

// Update replaces the editable workspace settings.
func (s *SettingsService) Update(ctx context.Context, req UpdateSettingsRequest) (*domain.WorkspaceSettings, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}
	if !validSorts[req.DefaultSort] {
		return nil, domainerrors.Validation(fmt.Sprintf("unknown sort mode %q", req.DefaultSort))
	}

	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	settings.WorkspaceName = req.WorkspaceName
	settings.DefaultSort = req.DefaultSort

	if err := s.store.UpdateWorkspaceSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("update workspace settings: %w", err)
	}

	s.logger.Info("workspace settings updated", "default_sort", settings.DefaultSort)
	return settings, nil
}
