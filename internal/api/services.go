package api

import (
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Auth          *service.AuthService
	Sessions      *service.SessionService
	Items         *service.ItemService
	Tasks         *service.TaskService
	Templates     *service.TemplateService
	Calendar      *service.CalendarService
	Notifications *service.NotificationService
	Views         *service.ViewService
	Taxonomy      *service.TaxonomyService
	Settings      *service.SettingsService
	Admin         *service.AdminService
	Seed          *service.SeedService
	Reports       *service.ReportService
}
