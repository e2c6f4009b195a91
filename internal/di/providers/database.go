package providers

import (
	"context"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/config"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/logger"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/sse"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/store"
)

// SSEManagerHandle wraps the SSE manager with lifecycle management.
type SSEManagerHandle struct {
	Manager *sse.Manager
	cancel  context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *SSEManagerHandle) Shutdown() error {
	h.cancel()
	return nil
}

// ProvideSSEManager provides the running SSE broadcast manager.
func ProvideSSEManager(i do.Injector) (*SSEManagerHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	manager := sse.NewManager(log.Logger)
	ctx, cancel := context.WithCancel(context.Background())
	go manager.Start(ctx)

	return &SSEManagerHandle{Manager: manager, cancel: cancel}, nil
}

// StoreHandle wraps the store with Shutdownable.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Store.Close()
}

// ProvideStore provides the badger-backed store. Changes are broadcast
// through the SSE manager.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)

	st, err := store.New(filepath.Join(cfg.Storage.BasePath, "badger"), log.Logger, sseHandle.Manager)
	if err != nil {
		return nil, err
	}

	return &StoreHandle{Store: st}, nil
}
