package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
	domainerrors "github.com/aivladyslavai/MarketingKreis-sub000/internal/errors"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/id"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/store"
)

// ViewService manages per-user saved views. Saved values round-trip
// verbatim: applying a view restores exactly what was stored.
type ViewService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewViewService creates a saved-view service.
func NewViewService(st *store.Store, logger *slog.Logger) *ViewService {
	return &ViewService{store: st, logger: logger}
}

// ViewRequest contains the fields for creating or updating a saved view.
type ViewRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Query       string `json:"q,omitempty"`
	Status      string `json:"status,omitempty"`
	Sort        string `json:"sort,omitempty"`
	Scope       string `json:"scope,omitempty"`
	OwnerFilter string `json:"owner_filter,omitempty"`
	Channel     string `json:"channel,omitempty"`
	Format      string `json:"format,omitempty"`
}

// CreateView stores a new saved view for the user.
func (s *ViewService) CreateView(ctx context.Context, userID string, req ViewRequest) (*domain.SavedView, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	viewID, err := id.Generate("view")
	if err != nil {
		return nil, fmt.Errorf("generate view ID: %w", err)
	}

	view := &domain.SavedView{
		UserID:      userID,
		Name:        req.Name,
		Query:       req.Query,
		Status:      req.Status,
		Sort:        req.Sort,
		Scope:       domain.ViewScope(req.Scope),
		OwnerFilter: req.OwnerFilter,
		Channel:     req.Channel,
		Format:      req.Format,
	}
	view.ID = viewID
	view.InitTimestamps()

	if err := s.store.CreateView(ctx, view); err != nil {
		return nil, fmt.Errorf("create view: %w", err)
	}

	return view, nil
}

// GetView returns one saved view, checking ownership.
func (s *ViewService) GetView(ctx context.Context, userID, viewID string) (*domain.SavedView, error) {
	view, err := s.store.GetView(ctx, viewID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("view not found")
		}
		return nil, fmt.Errorf("get view: %w", err)
	}
	if view.UserID != userID {
		return nil, domainerrors.Forbidden("view belongs to another user")
	}
	return view, nil
}

// ListViews returns the user's saved views.
func (s *ViewService) ListViews(ctx context.Context, userID string) ([]*domain.SavedView, error) {
	views, err := s.store.ListUserViews(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list views: %w", err)
	}
	return views, nil
}

// UpdateView replaces a saved view's settings.
func (s *ViewService) UpdateView(ctx context.Context, userID, viewID string, req ViewRequest) (*domain.SavedView, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	view, err := s.GetView(ctx, userID, viewID)
	if err != nil {
		return nil, err
	}

	view.Name = req.Name
	view.Query = req.Query
	view.Status = req.Status
	view.Sort = req.Sort
	view.Scope = domain.ViewScope(req.Scope)
	view.OwnerFilter = req.OwnerFilter
	view.Channel = req.Channel
	view.Format = req.Format
	view.Touch()

	if err := s.store.UpdateView(ctx, view); err != nil {
		return nil, fmt.Errorf("update view: %w", err)
	}

	return view, nil
}

// DeleteView removes a saved view, checking ownership.
func (s *ViewService) DeleteView(ctx context.Context, userID, viewID string) error {
	if _, err := s.GetView(ctx, userID, viewID); err != nil {
		return err
	}
	if err := s.store.DeleteView(ctx, viewID); err != nil {
		return fmt.Errorf("delete view: %w", err)
	}
	return nil
}
