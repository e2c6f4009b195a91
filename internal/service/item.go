package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/content"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
	domainerrors "github.com/aivladyslavai/MarketingKreis-sub000/internal/errors"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/id"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/search"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/store"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/util"
)

// Bulk actions accepted by BulkRequest.
const (
	BulkSetStatus     = "set_status"
	BulkApplyTemplate = "apply_template"
	BulkSetDueDate    = "set_due_date"
	BulkRequestReview = "request_review"
)

// ItemService manages content items: CRUD, listing, bulk actions, search,
// and CSV export.
type ItemService struct {
	store  *store.Store
	index  *search.ItemIndex
	bulk   *content.BulkRunner
	logger *slog.Logger
}

// NewItemService creates an item service. The search index may be nil, in
// which case full-text search is unavailable.
func NewItemService(st *store.Store, index *search.ItemIndex, bulk *content.BulkRunner, logger *slog.Logger) *ItemService {
	return &ItemService{store: st, index: index, bulk: bulk, logger: logger}
}

// CreateItemRequest contains the fields for a new content item.
type CreateItemRequest struct {
	Title       string     `json:"title" validate:"required,max=300"`
	Channel     string     `json:"channel,omitempty" validate:"max=100"`
	Format      string     `json:"format,omitempty" validate:"max=100"`
	Status      string     `json:"status,omitempty"`
	OwnerID     string     `json:"owner_id,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	TemplateID  string     `json:"template_id,omitempty"`
}

// UpdateItemRequest contains partial updates. Nil fields are left unchanged.
type UpdateItemRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,max=300"`
	Channel     *string    `json:"channel,omitempty"`
	Format      *string    `json:"format,omitempty"`
	Status      *string    `json:"status,omitempty"`
	OwnerID     *string    `json:"owner_id,omitempty"`
	Tags        *[]string  `json:"tags,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	ClearDue    bool       `json:"clear_due,omitempty"`
}

// BulkRequest selects items and the action to apply to them.
type BulkRequest struct {
	Action     string     `json:"action" validate:"required"`
	IDs        []string   `json:"ids" validate:"required,min=1"`
	Status     string     `json:"status,omitempty"`
	TemplateID string     `json:"template_id,omitempty"`
	DueAt      *time.Time `json:"due_at,omitempty"`
}

// CreateItem validates and stores a new content item.
func (s *ItemService) CreateItem(ctx context.Context, req CreateItemRequest) (*domain.ContentItem, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	status := domain.Status(req.Status)
	if req.Status == "" {
		status = domain.StatusIdea
	}
	if !status.IsValid() {
		return nil, domainerrors.Validation(fmt.Sprintf("unknown status %q", req.Status))
	}

	itemID, err := id.Generate("item")
	if err != nil {
		return nil, fmt.Errorf("generate item ID: %w", err)
	}

	item := &domain.ContentItem{
		Title:       req.Title,
		Channel:     req.Channel,
		Format:      req.Format,
		Status:      status,
		OwnerID:     req.OwnerID,
		Tags:        util.NormalizeTags(req.Tags),
		Notes:       req.Notes,
		DueAt:       req.DueAt,
		ScheduledAt: req.ScheduledAt,
	}
	item.ID = itemID
	item.InitTimestamps()

	if req.TemplateID != "" {
		tmpl, err := s.store.GetTemplate(ctx, req.TemplateID)
		if err != nil {
			return nil, domainerrors.NotFound("template not found").WithCause(err)
		}
		tmpl.ApplyTo(item)
	}

	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	return item, nil
}

// GetItem returns one item by ID.
func (s *ItemService) GetItem(ctx context.Context, itemID string) (*domain.ContentItem, error) {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("item not found")
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// ListItems returns items filtered and sorted by the query. An empty sort
// falls back to the workspace default.
func (s *ItemService) ListItems(ctx context.Context, q content.Query) ([]*domain.ContentItem, error) {
	if q.Sort == "" {
		if settings, err := s.store.GetWorkspaceSettings(ctx); err == nil {
			q.Sort = settings.DefaultSort
		}
	}

	items, err := s.store.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	return content.Apply(items, q), nil
}

// QueryItems lists items narrowed by an optional full-text query. With the
// search index available the text matches via bleve; otherwise it falls back
// to a substring scan over title, notes, and tags so the q dimension of saved
// views keeps working.
func (s *ItemService) QueryItems(ctx context.Context, q content.Query, text string) ([]*domain.ContentItem, error) {
	items, err := s.ListItems(ctx, q)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" || len(items) == 0 {
		return items, nil
	}

	if s.index != nil && s.store.FlagEnabled(ctx, domain.FlagItemSearch) {
		params := search.DefaultParams()
		params.Query = text
		params.Limit = len(items)
		params.IncludeFacets = false
		params.Highlight = false

		result, err := s.index.Search(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("search items: %w", err)
		}

		matched := make(map[string]struct{}, len(result.Hits))
		for _, hit := range result.Hits {
			matched[hit.ID] = struct{}{}
		}

		out := items[:0:0]
		for _, item := range items {
			if _, ok := matched[item.ID]; ok {
				out = append(out, item)
			}
		}
		return out, nil
	}

	needle := strings.ToLower(text)
	out := items[:0:0]
	for _, item := range items {
		if itemMatchesText(item, needle) {
			out = append(out, item)
		}
	}
	return out, nil
}

func itemMatchesText(item *domain.ContentItem, needle string) bool {
	if strings.Contains(strings.ToLower(item.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(item.Notes), needle) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// UpdateItem applies a partial update to an item.
func (s *ItemService) UpdateItem(ctx context.Context, itemID string, req UpdateItemRequest) (*domain.ContentItem, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	item, err := s.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Channel != nil {
		item.Channel = *req.Channel
	}
	if req.Format != nil {
		item.Format = *req.Format
	}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		if !status.IsValid() {
			return nil, domainerrors.Validation(fmt.Sprintf("unknown status %q", *req.Status))
		}
		item.Status = status
	}
	if req.OwnerID != nil {
		item.OwnerID = *req.OwnerID
	}
	if req.Tags != nil {
		item.Tags = util.NormalizeTags(*req.Tags)
	}
	if req.Notes != nil {
		item.Notes = *req.Notes
	}
	if req.DueAt != nil {
		item.DueAt = req.DueAt
	}
	if req.ScheduledAt != nil {
		item.ScheduledAt = req.ScheduledAt
	}
	if req.ClearDue {
		item.DueAt = nil
	}
	item.Touch()

	if err := s.store.UpdateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	return item, nil
}

// DeleteItem removes an item.
func (s *ItemService) DeleteItem(ctx context.Context, itemID string) error {
	if _, err := s.GetItem(ctx, itemID); err != nil {
		return err
	}
	if err := s.store.DeleteItem(ctx, itemID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// Bulk applies an action to the selected items. Gated by the bulk actions
// feature flag; failures are isolated per item.
func (s *ItemService) Bulk(ctx context.Context, req BulkRequest) (content.BulkResult, error) {
	if err := validate.Validate(req); err != nil {
		return content.BulkResult{}, err
	}

	if !s.store.FlagEnabled(ctx, domain.FlagBulkActions) {
		return content.BulkResult{}, domainerrors.Forbidden("bulk actions are disabled")
	}

	action, err := s.bulkAction(ctx, req)
	if err != nil {
		return content.BulkResult{}, err
	}

	return s.bulk.Run(ctx, req.Action, req.IDs, action), nil
}

// bulkAction resolves the per-item function for a bulk request.
func (s *ItemService) bulkAction(ctx context.Context, req BulkRequest) (content.BulkAction, error) {
	switch req.Action {
	case BulkSetStatus:
		status := domain.Status(req.Status)
		if !status.IsValid() {
			return nil, domainerrors.Validation(fmt.Sprintf("unknown status %q", req.Status))
		}
		return func(ctx context.Context, itemID string) error {
			return s.setStatus(ctx, itemID, status)
		}, nil

	case BulkApplyTemplate:
		tmpl, err := s.store.GetTemplate(ctx, req.TemplateID)
		if err != nil {
			return nil, domainerrors.NotFound("template not found").WithCause(err)
		}
		return func(ctx context.Context, itemID string) error {
			item, err := s.store.GetItem(ctx, itemID)
			if err != nil {
				return err
			}
			tmpl.ApplyTo(item)
			return s.store.UpdateItem(ctx, item)
		}, nil

	case BulkSetDueDate:
		if req.DueAt == nil {
			return nil, domainerrors.Validation("due_at is required for set_due_date")
		}
		return func(ctx context.Context, itemID string) error {
			item, err := s.store.GetItem(ctx, itemID)
			if err != nil {
				return err
			}
			item.DueAt = req.DueAt
			item.Touch()
			return s.store.UpdateItem(ctx, item)
		}, nil

	case BulkRequestReview:
		return func(ctx context.Context, itemID string) error {
			if err := s.setStatus(ctx, itemID, domain.StatusReview); err != nil {
				return err
			}
			return s.notifyReview(ctx, itemID)
		}, nil

	default:
		return nil, domainerrors.Validation(fmt.Sprintf("unknown bulk action %q", req.Action))
	}
}

func (s *ItemService) setStatus(ctx context.Context, itemID string, status domain.Status) error {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	item.Status = status
	item.Touch()
	return s.store.UpdateItem(ctx, item)
}

// notifyReview tells the item's owner that a review was requested.
func (s *ItemService) notifyReview(ctx context.Context, itemID string) error {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item.OwnerID == "" {
		return nil
	}

	notifID, err := id.Generate("notif")
	if err != nil {
		return fmt.Errorf("generate notification ID: %w", err)
	}

	notif := &domain.Notification{
		UserID:   item.OwnerID,
		Kind:     domain.NotificationReviewRequested,
		Message:  fmt.Sprintf("Review angefragt: %s", item.Title),
		EntityID: item.ID,
	}
	notif.ID = notifID
	notif.InitTimestamps()

	return s.store.CreateNotification(ctx, notif)
}

// ExportCSV writes the filtered item list as BOM-prefixed CSV.
func (s *ItemService) ExportCSV(ctx context.Context, w io.Writer, q content.Query) error {
	items, err := s.ListItems(ctx, q)
	if err != nil {
		return err
	}

	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	byID := make(map[string]string, len(users))
	for _, u := range users {
		byID[u.ID] = u.Name()
	}

	return content.WriteCSV(w, items, func(ownerID string) string {
		if name, ok := byID[ownerID]; ok {
			return name
		}
		// Departed owners keep their raw ID in the export.
		return ownerID
	})
}

// Search runs a full-text query against the item index. Gated by the item
// search feature flag.
func (s *ItemService) Search(ctx context.Context, params search.Params) (*search.Result, error) {
	if !s.store.FlagEnabled(ctx, domain.FlagItemSearch) {
		return nil, domainerrors.Forbidden("item search is disabled")
	}
	if s.index == nil {
		return nil, domainerrors.Internal("search index is not available")
	}
	return s.index.Search(ctx, params)
}

// ReindexAll rebuilds the search index from the store. Used at startup and
// from the admin console.
func (s *ItemService) ReindexAll(ctx context.Context) (int, error) {
	if s.index == nil {
		return 0, domainerrors.Internal("search index is not available")
	}

	items, err := s.store.ListItems(ctx)
	if err != nil {
		return 0, fmt.Errorf("list items: %w", err)
	}

	if err := s.index.Rebuild(); err != nil {
		return 0, fmt.Errorf("rebuild index: %w", err)
	}

	docs := make([]*search.ItemDocument, len(items))
	for i, item := range items {
		docs[i] = search.ItemToDocument(item)
	}
	if err := s.index.IndexDocuments(docs); err != nil {
		return 0, fmt.Errorf("index items: %w", err)
	}

	s.logger.Info("search index rebuilt", "items", len(items))
	return len(items), nil
}
