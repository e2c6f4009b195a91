// Package store persists workspace entities in a Badger key-value database.
package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
)

// EventEmitter is the interface for emitting SSE events.
// Store uses this to broadcast changes without depending on SSE implementation details.
type EventEmitter interface {
	Emit(event any)
}

// NoopEmitter is a no-op implementation of EventEmitter for testing.
type NoopEmitter struct{}

// Emit implements EventEmitter.Emit as a no-op.
func (NoopEmitter) Emit(_ any) {}

// NewNoopEmitter creates a new no-op emitter for testing.
func NewNoopEmitter() EventEmitter {
	return NoopEmitter{}
}

// SearchIndexer is the interface for updating the content search index.
// Store uses this to keep search in sync without depending on search implementation.
// Index updates are performed asynchronously to not block store operations.
type SearchIndexer interface {
	IndexItem(ctx context.Context, item *domain.ContentItem) error
	DeleteItem(ctx context.Context, itemID string) error
}

// NoopSearchIndexer is a no-op implementation for testing.
type NoopSearchIndexer struct{}

// IndexItem is a no-op.
func (NoopSearchIndexer) IndexItem(context.Context, *domain.ContentItem) error { return nil }

// DeleteItem is a no-op.
func (NoopSearchIndexer) DeleteItem(context.Context, string) error { return nil }

// NewNoopSearchIndexer creates a new no-op search indexer for testing.
func NewNoopSearchIndexer() SearchIndexer {
	return NoopSearchIndexer{}
}

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	// SSE event emitter for broadcasting changes.
	eventEmitter EventEmitter

	// Search indexer for keeping item search in sync with store changes.
	// Set via SetSearchIndexer after store creation to avoid circular dependencies.
	searchIndexer SearchIndexer

	// Generic entities
	Items         *Entity[domain.ContentItem]
	Tasks         *Entity[domain.ContentTask]
	Templates     *Entity[domain.Template]
	Users         *Entity[domain.User]
	Views         *Entity[domain.SavedView]
	Notifications *Entity[domain.Notification]
	Flags         *Entity[domain.FeatureFlag]
}

// New creates a new Store instance with the given database path and event emitter.
// The emitter is required and used to broadcast store changes via SSE.
func New(path string, logger *slog.Logger, emitter EventEmitter) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	store := &Store{
		db:           db,
		logger:       logger,
		eventEmitter: emitter,
	}

	// Initialize generic entities
	store.initItems()
	store.initTasks()
	store.initTemplates()
	store.initUsers()
	store.initViews()
	store.initNotifications()
	store.initFlags()

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return store, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// Ping verifies the database is reachable. Used by the readiness probe.
func (s *Store) Ping() error {
	return s.db.View(func(_ *badger.Txn) error { return nil })
}

// SetSearchIndexer sets the search indexer for keeping search in sync.
// This is set after store creation to avoid circular dependencies
// (store needs to exist before search service can be created).
func (s *Store) SetSearchIndexer(indexer SearchIndexer) {
	s.searchIndexer = indexer
}

// Helper methods for database operations.

// get retrieves a value by key.
func (s *Store) get(key []byte, dest any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})
}

// exists checks if a key exists.
func (s *Store) exists(key []byte) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// normalizeEmail lowercases and trims an email for case-insensitive lookups.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// initItems initializes the Items entity on the store.
// Indexed by owner and status for the dashboard's common list queries;
// the filter pipeline still does its matching in memory.
func (s *Store) initItems() {
	s.Items = NewEntity[domain.ContentItem](s, "item:").
		WithIndex("owner", func(it *domain.ContentItem) []string {
			if it.OwnerID == "" {
				return nil
			}
			return []string{it.OwnerID + ":" + it.ID}
		}).
		WithIndex("status", func(it *domain.ContentItem) []string {
			return []string{string(it.Status) + ":" + it.ID}
		})
}

// initTasks initializes the Tasks entity on the store.
func (s *Store) initTasks() {
	s.Tasks = NewEntity[domain.ContentTask](s, "task:").
		WithIndex("owner", func(t *domain.ContentTask) []string {
			if t.OwnerID == "" {
				return nil
			}
			return []string{t.OwnerID + ":" + t.ID}
		})
}

// initTemplates initializes the Templates entity on the store.
func (s *Store) initTemplates() {
	s.Templates = NewEntity[domain.Template](s, "template:")
}

// initUsers initializes the Users entity on the store.
// Uses case-insensitive email indexing via normalizeEmail transformation.
func (s *Store) initUsers() {
	s.Users = NewEntity[domain.User](s, "user:").
		WithIndexTransform("email",
			func(u *domain.User) []string {
				return []string{normalizeEmail(u.Email)}
			},
			normalizeEmail, // Transform lookups to be case-insensitive
		)
}

// initViews initializes the Views entity on the store.
// Indexed by user so each member only sees their own saved views.
func (s *Store) initViews() {
	s.Views = NewEntity[domain.SavedView](s, "view:").
		WithIndex("user", func(v *domain.SavedView) []string {
			return []string{v.UserID + ":" + v.ID}
		})
}

// initNotifications initializes the Notifications entity on the store.
func (s *Store) initNotifications() {
	s.Notifications = NewEntity[domain.Notification](s, "notification:").
		WithIndex("user", func(n *domain.Notification) []string {
			return []string{n.UserID + ":" + n.ID}
		})
}

// initFlags initializes the feature flag entity on the store.
// Flags are keyed by their flag key, not a generated ID.
func (s *Store) initFlags() {
	s.Flags = NewEntity[domain.FeatureFlag](s, "flag:")
}
