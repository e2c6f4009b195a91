package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/service"
)

func (s *Server) registerTemplateRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTemplates",
		Method:      http.MethodGet,
		Path:        "/api/v1/templates",
		Summary:     "List templates",
		Tags:        []string{"Templates"},
	}, s.handleListTemplates)

	huma.Register(s.api, huma.Operation{
		OperationID: "createTemplate",
		Method:      http.MethodPost,
		Path:        "/api/v1/templates",
		Summary:     "Create template",
		Tags:        []string{"Templates"},
	}, s.handleCreateTemplate)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTemplate",
		Method:      http.MethodGet,
		Path:        "/api/v1/templates/{id}",
		Summary:     "Get template",
		Tags:        []string{"Templates"},
	}, s.handleGetTemplate)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateTemplate",
		Method:      http.MethodPut,
		Path:        "/api/v1/templates/{id}",
		Summary:     "Update template",
		Tags:        []string{"Templates"},
	}, s.handleUpdateTemplate)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteTemplate",
		Method:      http.MethodDelete,
		Path:        "/api/v1/templates/{id}",
		Summary:     "Delete template",
		Description: "Items created from the template keep their content; only the template itself is removed.",
		Tags:        []string{"Templates"},
	}, s.handleDeleteTemplate)
}

// TemplateOutput wraps a single template for Huma.
type TemplateOutput struct {
	Body *domain.Template
}

// TemplateListOutput wraps a template list for Huma.
type TemplateListOutput struct {
	Body []*domain.Template
}

// TemplateInput wraps the create request for Huma.
type TemplateInput struct {
	Body service.TemplateRequest
}

// TemplateUpdateInput wraps the update request for Huma.
type TemplateUpdateInput struct {
	ID   string `path:"id" doc:"Template ID"`
	Body service.TemplateRequest
}

// TemplateIDInput identifies one template.
type TemplateIDInput struct {
	ID string `path:"id" doc:"Template ID"`
}

func (s *Server) handleListTemplates(ctx context.Context, _ *struct{}) (*TemplateListOutput, error) {
	if _, err := s.RequireUser(ctx); err != nil {
		return nil, err
	}

	templates, err := s.services.Templates.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}

	return &TemplateListOutput{Body: templates}, nil
}

func (s *Server) handleCreateTemplate(ctx context.Context, input *TemplateInput) (*TemplateOutput, error) {
	if _, err := s.RequireCanEdit(ctx); err != nil {
		return nil, err
	}

	tmpl, err := s.services.Templates.CreateTemplate(ctx, input.Body)
	if err != nil {
		return nil, err
	}

	return &TemplateOutput{Body: tmpl}, nil
}

func (s *Server) handleGetTemplate(ctx context.Context, input *TemplateIDInput) (*TemplateOutput, error) {
	if _, err := s.RequireUser(ctx); err != nil {
		return nil, err
	}

	tmpl, err := s.services.Templates.GetTemplate(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &TemplateOutput{Body: tmpl}, nil
}

func (s *Server) handleUpdateTemplate(ctx context.Context, input *TemplateUpdateInput) (*TemplateOutput, error) {
	if _, err := s.RequireCanEdit(ctx); err != nil {
		return nil, err
	}

	tmpl, err := s.services.Templates.UpdateTemplate(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}

	return &TemplateOutput{Body: tmpl}, nil
}

func (s *Server) handleDeleteTemplate(ctx context.Context, input *TemplateIDInput) (*MessageOutput, error) {
	if _, err := s.RequireCanEdit(ctx); err != nil {
		return nil, err
	}

	if err := s.services.Templates.DeleteTemplate(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Template deleted"}}, nil
}
