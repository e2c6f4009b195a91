package providers

import (
	"context"
	"time"

	"github.com/samber/do/v2"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/jobs"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/logger"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/report"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/service"
)

// SchedulerHandle runs the report scheduler loop in the background.
type SchedulerHandle struct {
	*jobs.Scheduler
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *SchedulerHandle) Shutdown() error {
	h.cancel()
	return nil
}

// ProvideSchedulerRunner starts the report scheduler loop.
func ProvideSchedulerRunner(i do.Injector) (*SchedulerHandle, error) {
	scheduler := do.MustInvoke[*jobs.Scheduler](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx, cancel := context.WithCancel(context.Background())

	go scheduler.Run(ctx)

	log.Info("Report scheduler started")

	return &SchedulerHandle{Scheduler: scheduler, cancel: cancel}, nil
}

// TemplateWatcherHandle reloads report templates when their files change.
type TemplateWatcherHandle struct {
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *TemplateWatcherHandle) Shutdown() error {
	h.cancel()
	return nil
}

// ProvideTemplateWatcher provides the report template hot-reload watcher.
func ProvideTemplateWatcher(i do.Injector) (*TemplateWatcherHandle, error) {
	templates := do.MustInvoke[*report.Templates](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		if err := templates.Watch(ctx); err != nil {
			log.Warn("Template watcher stopped", "error", err)
		}
	}()

	return &TemplateWatcherHandle{cancel: cancel}, nil
}

// SessionCleanupJob runs periodic session cleanup.
type SessionCleanupJob struct {
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (j *SessionCleanupJob) Shutdown() error {
	j.cancel()
	return nil
}

// ProvideSessionCleanupJob provides the periodic session cleanup job.
func ProvideSessionCleanupJob(i do.Injector) (*SessionCleanupJob, error) {
	sessions := do.MustInvoke[*service.SessionService](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		// Initial cleanup on startup
		if count, err := sessions.DeleteExpiredSessions(ctx); err != nil {
			log.Warn("Initial session cleanup failed", "error", err)
		} else if count > 0 {
			log.Info("Initial session cleanup completed", "deleted", count)
		}

		for {
			select {
			case <-ticker.C:
				if count, err := sessions.DeleteExpiredSessions(ctx); err != nil {
					log.Warn("Session cleanup failed", "error", err)
				} else if count > 0 {
					log.Info("Session cleanup completed", "deleted", count)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Info("Session cleanup job started")

	return &SessionCleanupJob{cancel: cancel}, nil
}
