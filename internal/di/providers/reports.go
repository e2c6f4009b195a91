package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/config"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/jobs"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/logger"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/report"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/service"
)

// ReportStoreHandle wraps the sqlite report store with Shutdownable.
type ReportStoreHandle struct {
	*report.Store
}

// Shutdown implements do.Shutdownable.
func (h *ReportStoreHandle) Shutdown() error {
	return h.Store.Close()
}

// ProvideReportStore opens the sqlite database holding report runs,
// schedules, and KPI snapshots.
func ProvideReportStore(i do.Injector) (*ReportStoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	st, err := report.Open(filepath.Join(cfg.Storage.BasePath, "reports.db"), log.Logger)
	if err != nil {
		return nil, err
	}
	return &ReportStoreHandle{Store: st}, nil
}

// ProvideReportTemplates loads the email templates, falling back to the
// embedded defaults when the template directory is empty.
func ProvideReportTemplates(i do.Injector) (*report.Templates, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return report.NewTemplates(cfg.Report.TemplatePath, log.Logger)
}

// ProvideMailer provides the SMTP report mailer.
func ProvideMailer(i do.Injector) (*report.Mailer, error) {
	cfg := do.MustInvoke[*config.Config](i)
	templates := do.MustInvoke[*report.Templates](i)

	return report.NewMailer(cfg.Report, templates), nil
}

// ProvideJobRegistry provides the in-memory background job registry.
func ProvideJobRegistry(i do.Injector) (*jobs.Registry, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return jobs.NewRegistry(log.Logger), nil
}

// ProvideScheduler provides the report scheduler. Run is started by the
// worker provider.
func ProvideScheduler(i do.Injector) (*jobs.Scheduler, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	reports := do.MustInvoke[*ReportStoreHandle](i)
	mailer := do.MustInvoke[*report.Mailer](i)
	data := do.MustInvoke[*service.ReportData](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	registry := do.MustInvoke[*jobs.Registry](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)

	return jobs.NewScheduler(
		cfg.Report.SchedulerInterval,
		reports.Store,
		mailer,
		data,
		storeHandle.Store,
		registry,
		sseHandle.Manager,
		log.Logger,
	), nil
}
