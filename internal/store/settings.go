package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
)

const keyWorkspaceSettings = "settings:workspace"

// GetWorkspaceSettings retrieves workspace-wide settings.
// Returns default settings if none exist.
func (s *Store) GetWorkspaceSettings(ctx context.Context) (*domain.WorkspaceSettings, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var settings domain.WorkspaceSettings

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyWorkspaceSettings))
		if errors.Is(err, badger.ErrKeyNotFound) {
			// Return defaults if not set
			settings = *domain.NewWorkspaceSettings()
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &settings)
		})
	})

	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateWorkspaceSettings updates workspace-wide settings.
func (s *Store) UpdateWorkspaceSettings(ctx context.Context, settings *domain.WorkspaceSettings) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal workspace settings: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyWorkspaceSettings), data)
	})
}
