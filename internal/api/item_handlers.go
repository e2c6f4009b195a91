package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/content"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/http/response"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/search"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/service"
)

func (s *Server) registerItemRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listItems",
		Method:      http.MethodGet,
		Path:        "/api/v1/items",
		Summary:     "List content items",
		Description: "Returns items filtered and sorted by the query. An empty sort falls back to the workspace default.",
		Tags:        []string{"Content"},
	}, s.handleListItems)

	huma.Register(s.api, huma.Operation{
		OperationID: "createItem",
		Method:      http.MethodPost,
		Path:        "/api/v1/items",
		Summary:     "Create content item",
		Tags:        []string{"Content"},
	}, s.handleCreateItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "getItem",
		Method:      http.MethodGet,
		Path:        "/api/v1/items/{id}",
		Summary:     "Get content item",
		Tags:        []string{"Content"},
	}, s.handleGetItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateItem",
		Method:      http.MethodPatch,
		Path:        "/api/v1/items/{id}",
		Summary:     "Update content item",
		Description: "Applies a partial update. Omitted fields are left unchanged.",
		Tags:        []string{"Content"},
	}, s.handleUpdateItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteItem",
		Method:      http.MethodDelete,
		Path:        "/api/v1/items/{id}",
		Summary:     "Delete content item",
		Tags:        []string{"Content"},
	}, s.handleDeleteItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "bulkItems",
		Method:      http.MethodPost,
		Path:        "/api/v1/items/bulk",
		Summary:     "Bulk item action",
		Description: "Applies one action to a selection of items. Failures are isolated per item.",
		Tags:        []string{"Content"},
	}, s.handleBulkItems)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchItems",
		Method:      http.MethodGet,
		Path:        "/api/v1/items/search",
		Summary:     "Full-text item search",
		Tags:        []string{"Content"},
	}, s.handleSearchItems)
}

// === DTOs ===

// ItemResponse is the wire form of a content item.
type ItemResponse struct {
	ID          string     `json:"id" doc:"Item ID"`
	Title       string     `json:"title" doc:"Item title"`
	Channel     string     `json:"channel,omitempty" doc:"Marketing channel"`
	Format      string     `json:"format,omitempty" doc:"Content format"`
	Status      string     `json:"status" doc:"Workflow status"`
	OwnerID     string     `json:"owner_id,omitempty" doc:"Responsible user"`
	Tags        []string   `json:"tags,omitempty" doc:"Free-text tags"`
	Notes       string     `json:"notes,omitempty" doc:"Working notes"`
	DueAt       *time.Time `json:"due_at,omitempty" doc:"Internal deadline"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty" doc:"Planned publish time"`
	TemplateID  string     `json:"template_id,omitempty" doc:"Source template"`
	CreatedAt   time.Time  `json:"created_at" doc:"Creation timestamp"`
	UpdatedAt   time.Time  `json:"updated_at" doc:"Last update timestamp"`
}

// ItemOutput wraps a single item for Huma.
type ItemOutput struct {
	Body ItemResponse
}

// ItemListInput carries the list query parameters.
type ItemListInput struct {
	Q       string `query:"q" doc:"Full-text query over title, notes, and tags"`
	Channel string `query:"channel" doc:"Filter by channel (case-insensitive)"`
	Format  string `query:"format" doc:"Filter by format (case-insensitive)"`
	Status  string `query:"status" doc:"Filter by workflow status"`
	Owner   string `query:"owner" doc:"Filter by owner user ID"`
	Sort    string `query:"sort" doc:"Sort mode; empty uses the workspace default"`
}

// ItemListOutput wraps an item list for Huma.
type ItemListOutput struct {
	Body []ItemResponse
}

// CreateItemInput wraps the create request for Huma.
type CreateItemInput struct {
	Body service.CreateItemRequest
}

// UpdateItemInput wraps the partial update for Huma.
type UpdateItemInput struct {
	ID   string `path:"id" doc:"Item ID"`
	Body service.UpdateItemRequest
}

// ItemIDInput identifies one item.
type ItemIDInput struct {
	ID string `path:"id" doc:"Item ID"`
}

// BulkInput wraps the bulk request for Huma.
type BulkInput struct {
	Body service.BulkRequest
}

// BulkOutput wraps the bulk result for Huma.
type BulkOutput struct {
	Body content.BulkResult
}

// SearchInput carries the full-text search query parameters.
type SearchInput struct {
	Query   string `query:"q" doc:"Search query"`
	Channel string `query:"channel" doc:"Filter by channel"`
	Format  string `query:"format" doc:"Filter by format"`
	Status  string `query:"status" doc:"Filter by status"`
	Limit   int    `query:"limit" minimum:"1" maximum:"100" doc:"Max hits (default 20)"`
	Offset  int    `query:"offset" minimum:"0" doc:"Hit offset for paging"`
}

// SearchOutput wraps the search result for Huma.
type SearchOutput struct {
	Body *search.Result
}

// === Handlers ===

func (s *Server) handleListItems(ctx context.Context, input *ItemListInput) (*ItemListOutput, error) {
	if _, err := s.RequireUser(ctx); err != nil {
		return nil, err
	}

	items, err := s.services.Items.QueryItems(ctx, content.Query{
		Channel: input.Channel,
		Format:  input.Format,
		Status:  input.Status,
		Owner:   input.Owner,
		Sort:    input.Sort,
	}, input.Q)
	if err != nil {
		return nil, err
	}

	return &ItemListOutput{Body: mapItems(items)}, nil
}

func (s *Server) handleCreateItem(ctx context.Context, input *CreateItemInput) (*ItemOutput, error) {
	if _, err := s.RequireCanEdit(ctx); err != nil {
		return nil, err
	}

	item, err := s.services.Items.CreateItem(ctx, input.Body)
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: mapItem(item)}, nil
}

func (s *Server) handleGetItem(ctx context.Context, input *ItemIDInput) (*ItemOutput, error) {
	if _, err := s.RequireUser(ctx); err != nil {
		return nil, err
	}

	item, err := s.services.Items.GetItem(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: mapItem(item)}, nil
}

func (s *Server) handleUpdateItem(ctx context.Context, input *UpdateItemInput) (*ItemOutput, error) {
	if _, err := s.RequireCanEdit(ctx); err != nil {
		return nil, err
	}

	item, err := s.services.Items.UpdateItem(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: mapItem(item)}, nil
}

func (s *Server) handleDeleteItem(ctx context.Context, input *ItemIDInput) (*MessageOutput, error) {
	if _, err := s.RequireCanEdit(ctx); err != nil {
		return nil, err
	}

	if err := s.services.Items.DeleteItem(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Item deleted"}}, nil
}

func (s *Server) handleBulkItems(ctx context.Context, input *BulkInput) (*BulkOutput, error) {
	if _, err := s.RequireCanEdit(ctx); err != nil {
		return nil, err
	}

	result, err := s.services.Items.Bulk(ctx, input.Body)
	if err != nil {
		return nil, err
	}

	return &BulkOutput{Body: result}, nil
}

func (s *Server) handleSearchItems(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	if _, err := s.RequireUser(ctx); err != nil {
		return nil, err
	}

	params := search.DefaultParams()
	params.Query = input.Query
	params.Channel = input.Channel
	params.Format = input.Format
	params.Status = input.Status
	if input.Limit > 0 {
		params.Limit = input.Limit
	}
	params.Offset = input.Offset

	result, err := s.services.Items.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	return &SearchOutput{Body: result}, nil
}

// handleExportCSV streams the filtered item list as a BOM-prefixed CSV
// download. Plain chi handler: huma buffers bodies, a download should not be.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, err := GetUserID(ctx); err != nil {
		response.Unauthorized(w, "Authentication required", s.logger)
		return
	}

	q := content.Query{
		Channel: r.URL.Query().Get("channel"),
		Format:  r.URL.Query().Get("format"),
		Status:  r.URL.Query().Get("status"),
		Owner:   r.URL.Query().Get("owner"),
		Sort:    r.URL.Query().Get("sort"),
	}

	filename := fmt.Sprintf("inhalte-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := s.services.Items.ExportCSV(ctx, w, q); err != nil {
		s.logger.Error("CSV export failed", "error", err)
		// Headers are out already; the client sees a truncated file.
	}
}

// === Helpers ===

func mapItem(item *domain.ContentItem) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		Title:       item.Title,
		Channel:     item.Channel,
		Format:      item.Format,
		Status:      string(item.Status),
		OwnerID:     item.OwnerID,
		Tags:        item.Tags,
		Notes:       item.Notes,
		DueAt:       item.DueAt,
		ScheduledAt: item.ScheduledAt,
		TemplateID:  item.TemplateID,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func mapItems(items []*domain.ContentItem) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = mapItem(item)
	}
	return out
}
