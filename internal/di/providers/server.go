package providers

import (
	"context"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/api"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/config"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/logger"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/service"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/sse"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Auth:          do.MustInvoke[*service.AuthService](i),
		Sessions:      do.MustInvoke[*service.SessionService](i),
		Items:         do.MustInvoke[*service.ItemService](i),
		Tasks:         do.MustInvoke[*service.TaskService](i),
		Templates:     do.MustInvoke[*service.TemplateService](i),
		Calendar:      do.MustInvoke[*service.CalendarService](i),
		Notifications: do.MustInvoke[*service.NotificationService](i),
		Views:         do.MustInvoke[*service.ViewService](i),
		Taxonomy:      do.MustInvoke[*service.TaxonomyService](i),
		Settings:      do.MustInvoke[*service.SettingsService](i),
		Admin:         do.MustInvoke[*service.AdminService](i),
		Seed:          do.MustInvoke[*service.SeedService](i),
		Reports:       do.MustInvoke[*service.ReportService](i),
	}

	sseHandler := sse.NewHandler(sseHandle.Manager, api.IdentityFromRequest(services), log.Logger)

	server := api.NewServer(cfg.Server, storeHandle.Store, services, sseHandler, log.Logger)

	reportHandle := do.MustInvoke[*ReportStoreHandle](i)
	searchHandle := do.MustInvoke[*SearchIndexHandle](i)
	server.AddReadyCheck(storeHandle.Ping)
	server.AddReadyCheck(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return reportHandle.Ping(ctx)
	})
	server.AddReadyCheck(func() error {
		_, err := searchHandle.Index.DocumentCount()
		return err
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      server,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
