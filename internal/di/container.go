// Package di provides dependency injection configuration for the MarketingKreis server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/auth"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/config"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/di/providers"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/jobs"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/logger"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/ratelimit"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/report"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideSSEManager)
	do.Provide(injector, providers.ProvideStore)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)
	do.Provide(injector, providers.ProvideLoginRateLimiter)

	// Reporting layer
	do.Provide(injector, providers.ProvideReportStore)
	do.Provide(injector, providers.ProvideReportTemplates)
	do.Provide(injector, providers.ProvideMailer)
	do.Provide(injector, providers.ProvideJobRegistry)
	do.Provide(injector, providers.ProvideScheduler)

	// Business services
	do.Provide(injector, providers.ProvideSessionService)
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideItemService)
	do.Provide(injector, providers.ProvideTaskService)
	do.Provide(injector, providers.ProvideTemplateService)
	do.Provide(injector, providers.ProvideCalendarService)
	do.Provide(injector, providers.ProvideNotificationService)
	do.Provide(injector, providers.ProvideViewService)
	do.Provide(injector, providers.ProvideTaxonomyService)
	do.Provide(injector, providers.ProvideSettingsService)
	do.Provide(injector, providers.ProvideAdminService)
	do.Provide(injector, providers.ProvideSeedService)
	do.Provide(injector, providers.ProvideReportData)
	do.Provide(injector, providers.ProvideReportService)

	// Workers
	do.Provide(injector, providers.ProvideSchedulerRunner)
	do.Provide(injector, providers.ProvideTemplateWatcher)
	do.Provide(injector, providers.ProvideSessionCleanupJob)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)
	_ = do.MustInvoke[*ratelimit.KeyedRateLimiter](injector)

	// Reporting
	_ = do.MustInvoke[*providers.ReportStoreHandle](injector)
	_ = do.MustInvoke[*report.Templates](injector)
	_ = do.MustInvoke[*report.Mailer](injector)
	_ = do.MustInvoke[*jobs.Registry](injector)
	_ = do.MustInvoke[*jobs.Scheduler](injector)

	// Business services
	_ = do.MustInvoke[*service.SessionService](injector)
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.ItemService](injector)
	_ = do.MustInvoke[*service.TaskService](injector)
	_ = do.MustInvoke[*service.TemplateService](injector)
	_ = do.MustInvoke[*service.CalendarService](injector)
	_ = do.MustInvoke[*service.NotificationService](injector)
	_ = do.MustInvoke[*service.ViewService](injector)
	_ = do.MustInvoke[*service.TaxonomyService](injector)
	_ = do.MustInvoke[*service.SettingsService](injector)
	_ = do.MustInvoke[*service.AdminService](injector)
	_ = do.MustInvoke[*service.SeedService](injector)
	_ = do.MustInvoke[*service.ReportService](injector)

	// Workers
	_ = do.MustInvoke[*providers.SchedulerHandle](injector)
	_ = do.MustInvoke[*providers.TemplateWatcherHandle](injector)
	_ = do.MustInvoke[*providers.SessionCleanupJob](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
