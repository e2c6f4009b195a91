package providers

import (
	"context"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/config"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/logger"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/search"
)

// SearchIndexHandle wraps the bleve index with Shutdownable.
type SearchIndexHandle struct {
	Index *search.ItemIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Index.Close()
}

// storeIndexer adapts ItemIndex to the store.SearchIndexer interface.
type storeIndexer struct {
	index *search.ItemIndex
}

func (a *storeIndexer) IndexItem(_ context.Context, item *domain.ContentItem) error {
	return a.index.IndexDocument(search.ItemToDocument(item))
}

func (a *storeIndexer) DeleteItem(_ context.Context, itemID string) error {
	return a.index.DeleteDocument(itemID)
}

// ProvideSearchIndex opens the item search index and hooks it into the
// store so writes keep the index current.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	index, err := search.NewItemIndex(search.Options{
		DataPath: filepath.Join(cfg.Storage.BasePath, "search"),
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	storeHandle.SetSearchIndexer(&storeIndexer{index: index})

	return &SearchIndexHandle{Index: index}, nil
}
