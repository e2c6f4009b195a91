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

// TemplateService manages reusable content templates.
type TemplateService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewTemplateService creates a template service.
func NewTemplateService(st *store.Store, logger *slog.Logger) *TemplateService {
	return &TemplateService{store: st, logger: logger}
}

// TemplateRequest contains the fields for creating or updating a template.
type TemplateRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Channel string `json:"channel,omitempty" validate:"max=100"`
	Format  string `json:"format,omitempty" validate:"max=100"`
	Body    string `json:"body,omitempty"`
}

// CreateTemplate validates and stores a new template.
func (s *TemplateService) CreateTemplate(ctx context.Context, req TemplateRequest) (*domain.Template, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	tmplID, err := id.Generate("tmpl")
	if err != nil {
		return nil, fmt.Errorf("generate template ID: %w", err)
	}

	tmpl := &domain.Template{
		Name:    req.Name,
		Channel: req.Channel,
		Format:  req.Format,
		Body:    req.Body,
	}
	tmpl.ID = tmplID
	tmpl.InitTimestamps()

	if err := s.store.CreateTemplate(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}

	return tmpl, nil
}

// GetTemplate returns one template by ID.
func (s *TemplateService) GetTemplate(ctx context.Context, tmplID string) (*domain.Template, error) {
	tmpl, err := s.store.GetTemplate(ctx, tmplID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("template not found")
		}
		return nil, fmt.Errorf("get template: %w", err)
	}
	return tmpl, nil
}

// ListTemplates returns all templates.
func (s *TemplateService) ListTemplates(ctx context.Context) ([]*domain.Template, error) {
	templates, err := s.store.ListTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

// UpdateTemplate replaces a template's fields.
func (s *TemplateService) UpdateTemplate(ctx context.Context, tmplID string, req TemplateRequest) (*domain.Template, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	tmpl, err := s.GetTemplate(ctx, tmplID)
	if err != nil {
		return nil, err
	}

	tmpl.Name = req.Name
	tmpl.Channel = req.Channel
	tmpl.Format = req.Format
	tmpl.Body = req.Body
	tmpl.Touch()

	if err := s.store.UpdateTemplate(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("update template: %w", err)
	}

	return tmpl, nil
}

// DeleteTemplate removes a template. Items that referenced it keep their
// copied fields; only the blueprint disappears.
func (s *TemplateService) DeleteTemplate(ctx context.Context, tmplID string) error {
	if _, err := s.GetTemplate(ctx, tmplID); err != nil {
		return err
	}
	if err := s.store.DeleteTemplate(ctx, tmplID); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}
