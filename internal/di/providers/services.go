package providers

import (
	"github.com/samber/do/v2"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/auth"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/content"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/jobs"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/logger"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/ratelimit"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/service"
)

// ProvideSessionService provides session management.
func ProvideSessionService(i do.Injector) (*service.SessionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSessionService(storeHandle.Store, tokens, log.Logger), nil
}

// ProvideAuthService provides authentication.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	sessions := do.MustInvoke[*service.SessionService](i)
	limiter := do.MustInvoke[*ratelimit.KeyedRateLimiter](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokens, sessions, limiter, log.Logger), nil
}

// ProvideItemService provides content item management with search and
// bulk actions.
func ProvideItemService(i do.Injector) (*service.ItemService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	searchHandle := do.MustInvoke[*SearchIndexHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	bulk := content.NewBulkRunner(sseHandle.Manager, log.Logger)
	return service.NewItemService(storeHandle.Store, searchHandle.Index, bulk, log.Logger), nil
}

// ProvideTaskService provides task management.
func ProvideTaskService(i do.Injector) (*service.TaskService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTaskService(storeHandle.Store, log.Logger), nil
}

// ProvideTemplateService provides content templates.
func ProvideTemplateService(i do.Injector) (*service.TemplateService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTemplateService(storeHandle.Store, log.Logger), nil
}

// ProvideCalendarService provides the calendar feed.
func ProvideCalendarService(i do.Injector) (*service.CalendarService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCalendarService(storeHandle.Store, log.Logger), nil
}

// ProvideNotificationService provides user notifications.
func ProvideNotificationService(i do.Injector) (*service.NotificationService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewNotificationService(storeHandle.Store, log.Logger), nil
}

// ProvideViewService provides saved views.
func ProvideViewService(i do.Injector) (*service.ViewService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewViewService(storeHandle.Store, log.Logger), nil
}

// ProvideTaxonomyService provides the channel and format taxonomy.
func ProvideTaxonomyService(i do.Injector) (*service.TaxonomyService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTaxonomyService(storeHandle.Store, log.Logger), nil
}

// ProvideSettingsService provides workspace settings.
func ProvideSettingsService(i do.Injector) (*service.SettingsService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSettingsService(storeHandle.Store, log.Logger), nil
}

// ProvideAdminService provides the admin console backend.
func ProvideAdminService(i do.Injector) (*service.AdminService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	registry := do.MustInvoke[*jobs.Registry](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAdminService(storeHandle.Store, registry, log.Logger), nil
}

// ProvideSeedService provides demo data seeding.
func ProvideSeedService(i do.Injector) (*service.SeedService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	registry := do.MustInvoke[*jobs.Registry](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSeedService(storeHandle.Store, registry, sseHandle.Manager, log.Logger), nil
}

// ProvideReportData provides the data source reports are computed from.
func ProvideReportData(i do.Injector) (*service.ReportData, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	return service.NewReportData(storeHandle.Store), nil
}

// ProvideReportService provides reporting.
func ProvideReportService(i do.Injector) (*service.ReportService, error) {
	data := do.MustInvoke[*service.ReportData](i)
	reports := do.MustInvoke[*ReportStoreHandle](i)
	scheduler := do.MustInvoke[*jobs.Scheduler](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewReportService(data, reports.Store, scheduler, log.Logger), nil
}
