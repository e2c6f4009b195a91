package store

import (
	"context"
	"fmt"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/sse"
)

// CreateTemplate stores a new template and broadcasts the creation.
func (s *Store) CreateTemplate(ctx context.Context, tmpl *domain.Template) error {
	if err := s.Templates.Create(ctx, tmpl.ID, tmpl); err != nil {
		return fmt.Errorf("create template: %w", err)
	}
	s.eventEmitter.Emit(sse.NewEntityEvent(sse.EventTemplateCreated, tmpl.ID, tmpl))
	return nil
}

// GetTemplate retrieves a template by ID.
func (s *Store) GetTemplate(ctx context.Context, id string) (*domain.Template, error) {
	return s.Templates.Get(ctx, id)
}

// ListTemplates returns all templates.
func (s *Store) ListTemplates(ctx context.Context) ([]*domain.Template, error) {
	return s.Templates.ListAll(ctx)
}

// UpdateTemplate persists changes to a template and broadcasts the update.
func (s *Store) UpdateTemplate(ctx context.Context, tmpl *domain.Template) error {
	if err := s.Templates.Update(ctx, tmpl.ID, tmpl); err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	s.eventEmitter.Emit(sse.NewEntityEvent(sse.EventTemplateUpdated, tmpl.ID, tmpl))
	return nil
}

// DeleteTemplate removes a template and broadcasts the deletion.
func (s *Store) DeleteTemplate(ctx context.Context, id string) error {
	if err := s.Templates.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	s.eventEmitter.Emit(sse.NewEntityEvent(sse.EventTemplateDeleted, id, nil))
	return nil
}
