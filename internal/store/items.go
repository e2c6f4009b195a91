package store

import (
	"context"
	"fmt"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/sse"
)

// CreateItem stores a new content item, broadcasts the creation and feeds
// the search index.
func (s *Store) CreateItem(ctx context.Context, item *domain.ContentItem) error {
	if err := s.Items.Create(ctx, item.ID, item); err != nil {
		return fmt.Errorf("create item: %w", err)
	}

	s.eventEmitter.Emit(sse.NewEntityEvent(sse.EventItemCreated, item.ID, item))
	s.indexItemAsync(item)
	return nil
}

// GetItem retrieves a content item by ID.
func (s *Store) GetItem(ctx context.Context, id string) (*domain.ContentItem, error) {
	return s.Items.Get(ctx, id)
}

// ListItems returns all content items.
func (s *Store) ListItems(ctx context.Context) ([]*domain.ContentItem, error) {
	return s.Items.ListAll(ctx)
}

// ListItemsByOwner returns all content items owned by one user.
func (s *Store) ListItemsByOwner(ctx context.Context, ownerID string) ([]*domain.ContentItem, error) {
	return s.Items.ListByIndexPrefix(ctx, "owner", ownerID+":")
}

// UpdateItem persists changes to a content item, broadcasts the update and
// refreshes the search index.
func (s *Store) UpdateItem(ctx context.Context, item *domain.ContentItem) error {
	if err := s.Items.Update(ctx, item.ID, item); err != nil {
		return fmt.Errorf("update item: %w", err)
	}

	s.eventEmitter.Emit(sse.NewEntityEvent(sse.EventItemUpdated, item.ID, item))
	s.indexItemAsync(item)
	return nil
}

// DeleteItem removes a content item, broadcasts the deletion and drops it
// from the search index.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	if err := s.Items.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	s.eventEmitter.Emit(sse.NewEntityEvent(sse.EventItemDeleted, id, nil))

	if s.searchIndexer != nil {
		go func() {
			if err := s.searchIndexer.DeleteItem(context.Background(), id); err != nil {
				if s.logger != nil {
					s.logger.Warn("failed to remove item from search index", "item_id", id, "error", err)
				}
			}
		}()
	}
	return nil
}

// indexItemAsync feeds the search index without blocking the write path.
func (s *Store) indexItemAsync(item *domain.ContentItem) {
	if s.searchIndexer == nil {
		return
	}
	go func() {
		if err := s.searchIndexer.IndexItem(context.Background(), item); err != nil {
			if s.logger != nil {
				s.logger.Warn("failed to index item for search", "item_id", item.ID, "error", err)
			}
		}
	}()
}
