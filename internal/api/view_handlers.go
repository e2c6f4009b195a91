package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/service"
)

func (s *Server) registerViewRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listViews",
		Method:      http.MethodGet,
		Path:        "/api/v1/views",
		Summary:     "List saved views",
		Description: "Only the caller's own views are returned.",
		Tags:        []string{"Views"},
	}, s.handleListViews)

	huma.Register(s.api, huma.Operation{
		OperationID: "createView",
		Method:      http.MethodPost,
		Path:        "/api/v1/views",
		Summary:     "Save view",
		Tags:        []string{"Views"},
	}, s.handleCreateView)

	huma.Register(s.api, huma.Operation{
		OperationID: "getView",
		Method:      http.MethodGet,
		Path:        "/api/v1/views/{id}",
		Summary:     "Get saved view",
		Tags:        []string{"Views"},
	}, s.handleGetView)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateView",
		Method:      http.MethodPut,
		Path:        "/api/v1/views/{id}",
		Summary:     "Update saved view",
		Description: "Replaces the stored settings with the request body.",
		Tags:        []string{"Views"},
	}, s.handleUpdateView)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteView",
		Method:      http.MethodDelete,
		Path:        "/api/v1/views/{id}",
		Summary:     "Delete saved view",
		Tags:        []string{"Views"},
	}, s.handleDeleteView)
}

// ViewOutput wraps a single saved view for Huma.
type ViewOutput struct {
	Body *domain.SavedView
}

// ViewListOutput wraps a view list for Huma.
type ViewListOutput struct {
	Body []*domain.SavedView
}

// ViewInput wraps the create request for Huma.
type ViewInput struct {
	Body service.ViewRequest
}

// ViewUpdateInput wraps the update request for Huma.
type ViewUpdateInput struct {
	ID   string `path:"id" doc:"View ID"`
	Body service.ViewRequest
}

// ViewIDInput identifies one saved view.
type ViewIDInput struct {
	ID string `path:"id" doc:"View ID"`
}

func (s *Server) handleListViews(ctx context.Context, _ *struct{}) (*ViewListOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	views, err := s.services.Views.ListViews(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ViewListOutput{Body: views}, nil
}

func (s *Server) handleCreateView(ctx context.Context, input *ViewInput) (*ViewOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	view, err := s.services.Views.CreateView(ctx, userID, input.Body)
	if err != nil {
		return nil, err
	}

	return &ViewOutput{Body: view}, nil
}

func (s *Server) handleGetView(ctx context.Context, input *ViewIDInput) (*ViewOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	view, err := s.services.Views.GetView(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &ViewOutput{Body: view}, nil
}

func (s *Server) handleUpdateView(ctx context.Context, input *ViewUpdateInput) (*ViewOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	view, err := s.services.Views.UpdateView(ctx, userID, input.ID, input.Body)
	if err != nil {
		return nil, err
	}

	return &ViewOutput{Body: view}, nil
}

func (s *Server) handleDeleteView(ctx context.Context, input *ViewIDInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Views.DeleteView(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "View deleted"}}, nil
}
