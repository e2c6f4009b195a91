package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/store"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/taxonomy"
)

// TaxonomyService derives the channel/format catalog from live data.
type TaxonomyService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewTaxonomyService creates a taxonomy service.
func NewTaxonomyService(st *store.Store, logger *slog.Logger) *TaxonomyService {
	return &TaxonomyService{store: st, logger: logger}
}

// Current recomputes the taxonomy from all items and tasks. The derivation
// is cheap enough to run per request; there is no cached copy to invalidate.
func (s *TaxonomyService) Current(ctx context.Context) (*taxonomy.Taxonomy, error) {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	usages := make([]taxonomy.Usage, 0, len(items)+len(tasks))
	for _, item := range items {
		usages = append(usages, taxonomy.Usage{Channel: item.Channel, Format: item.Format})
	}
	for _, task := range tasks {
		usages = append(usages, taxonomy.Usage{Channel: task.Channel, Format: task.Format})
	}

	return taxonomy.Build(usages), nil
}
