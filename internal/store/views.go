package store

import (
	"context"
	"fmt"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
)

// CreateView stores a new saved view.
func (s *Store) CreateView(ctx context.Context, view *domain.SavedView) error {
	if err := s.Views.Create(ctx, view.ID, view); err != nil {
		return fmt.Errorf("create view: %w", err)
	}
	return nil
}

// GetView retrieves a saved view by ID.
func (s *Store) GetView(ctx context.Context, id string) (*domain.SavedView, error) {
	return s.Views.Get(ctx, id)
}

// ListUserViews returns all saved views belonging to one user.
func (s *Store) ListUserViews(ctx context.Context, userID string) ([]*domain.SavedView, error) {
	return s.Views.ListByIndexPrefix(ctx, "user", userID+":")
}

// UpdateView persists changes to a saved view.
func (s *Store) UpdateView(ctx context.Context, view *domain.SavedView) error {
	if err := s.Views.Update(ctx, view.ID, view); err != nil {
		return fmt.Errorf("update view: %w", err)
	}
	return nil
}

// DeleteView removes a saved view.
func (s *Store) DeleteView(ctx context.Context, id string) error {
	if err := s.Views.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete view: %w", err)
	}
	return nil
}
