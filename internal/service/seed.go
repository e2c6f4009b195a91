package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
	domainerrors "github.com/aivladyslavai/MarketingKreis-sub000/internal/errors"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/id"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/jobs"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/sse"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/store"
)

// SeedService fills an empty workspace with demo data for evaluation.
type SeedService struct {
	store    *store.Store
	registry *jobs.Registry
	emitter  jobs.EventEmitter
	logger   *slog.Logger
}

// NewSeedService creates a seed service.
func NewSeedService(st *store.Store, registry *jobs.Registry, emitter jobs.EventEmitter, logger *slog.Logger) *SeedService {
	return &SeedService{store: st, registry: registry, emitter: emitter, logger: logger}
}

// SeedResult reports what the seeder created.
type SeedResult struct {
	Items     int `json:"items"`
	Tasks     int `json:"tasks"`
	Templates int `json:"templates"`
}

type demoItem struct {
	title   string
	channel string
	format  string
	status  domain.Status
	tags    []string
	dueIn   int // Days from now; 0 means no due date
}

var demoItems = []demoItem{
	{"Kampagnen-Newsletter September", "E-Mail", "Newsletter", domain.StatusPublished, []string{"kampagne"}, 0},
	{"Landingpage Relaunch", "Website", "Landing Page", domain.StatusDraft, []string{"relaunch", "web"}, 14},
	{"LinkedIn Karussell Produktlaunch", "LinkedIn", "Karussell", domain.StatusDraft, []string{"launch"}, 7},
	{"Case Study Automotive", "Website", "Case Study", domain.StatusReview, []string{"referenz"}, 10},
	{"Instagram Reel Messe-Recap", "Instagram", "Reel", domain.StatusIdea, []string{"messe"}, 21},
	{"YouTube Short Produktdemo", "YouTube", "Short", domain.StatusScheduled, []string{"produkt"}, 5},
	{"Broschüre Herbstkatalog", "Print", "Broschüre", domain.StatusApproved, []string{"katalog"}, 30},
	{"Blogartikel SEO-Grundlagen", "Website", "Blogartikel", domain.StatusDraft, []string{"seo"}, 12},
}

type demoTask struct {
	title   string
	channel string
	dueIn   int
}

var demoTasks = []demoTask{
	{"Texte für Newsletter freigeben", "E-Mail", 2},
	{"Bildmaterial Karussell briefen", "LinkedIn", 4},
	{"Landingpage-Copy reviewen", "Website", 6},
	{"Druckdaten Broschüre prüfen", "Print", 20},
	{"Redaktionsplan Oktober abstimmen", "", 9},
}

type demoTemplate struct {
	name    string
	channel string
	format  string
	body    string
}

var demoTemplates = []demoTemplate{
	{"Newsletter Standard", "E-Mail", "Newsletter", "Betreff:\n\nTeaser:\n\nHauptteil:\n\nCall-to-Action:"},
	{"LinkedIn Post", "LinkedIn", "Post", "Hook:\n\nKernaussage:\n\nHashtags:"},
	{"Case Study Gerüst", "Website", "Case Study", "Ausgangslage:\n\nLösung:\n\nErgebnis:"},
}

// Seed creates the demo dataset. Gated by the demo seed feature flag and
// refused on a workspace that already has items.
func (s *SeedService) Seed(ctx context.Context) (*SeedResult, error) {
	if !s.store.FlagEnabled(ctx, domain.FlagDemoSeed) {
		return nil, domainerrors.Forbidden("demo seeding is disabled")
	}

	existing, err := s.store.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	if len(existing) > 0 {
		return nil, domainerrors.Conflict("workspace already has content, refusing to seed")
	}

	jobID := s.registry.Start("seed:demo")
	total := len(demoItems) + len(demoTasks) + len(demoTemplates)
	created := 0
	now := time.Now()

	result := &SeedResult{}

	for _, d := range demoTemplates {
		tmplID, err := id.Generate("tmpl")
		if err != nil {
			s.registry.Fail(jobID, err)
			return nil, fmt.Errorf("generate template ID: %w", err)
		}
		tmpl := &domain.Template{Name: d.name, Channel: d.channel, Format: d.format, Body: d.body}
		tmpl.ID = tmplID
		tmpl.InitTimestamps()
		if err := s.store.CreateTemplate(ctx, tmpl); err != nil {
			s.registry.Fail(jobID, err)
			return nil, fmt.Errorf("seed template: %w", err)
		}
		result.Templates++
		created++
		s.registry.Progress(jobID, created, total, tmpl.Name)
	}

	for _, d := range demoItems {
		itemID, err := id.Generate("item")
		if err != nil {
			s.registry.Fail(jobID, err)
			return nil, fmt.Errorf("generate item ID: %w", err)
		}
		item := &domain.ContentItem{
			Title:   d.title,
			Channel: d.channel,
			Format:  d.format,
			Status:  d.status,
			Tags:    d.tags,
		}
		if d.dueIn > 0 {
			due := now.AddDate(0, 0, d.dueIn)
			item.DueAt = &due
		}
		item.ID = itemID
		item.InitTimestamps()
		if err := s.store.CreateItem(ctx, item); err != nil {
			s.registry.Fail(jobID, err)
			return nil, fmt.Errorf("seed item: %w", err)
		}
		result.Items++
		created++
		s.registry.Progress(jobID, created, total, item.Title)
	}

	for _, d := range demoTasks {
		taskID, err := id.Generate("task")
		if err != nil {
			s.registry.Fail(jobID, err)
			return nil, fmt.Errorf("generate task ID: %w", err)
		}
		task := domain.NewContentTask(taskID, d.title)
		task.Channel = d.channel
		due := now.AddDate(0, 0, d.dueIn)
		task.DueAt = &due
		if err := s.store.CreateTask(ctx, task); err != nil {
			s.registry.Fail(jobID, err)
			return nil, fmt.Errorf("seed task: %w", err)
		}
		result.Tasks++
		created++
		s.registry.Progress(jobID, created, total, task.Title)
	}

	s.registry.Complete(jobID)
	if s.emitter != nil {
		s.emitter.Emit(sse.NewEvent(sse.EventSeedCompleted, result))
	}

	s.logger.Info("demo data seeded",
		"items", result.Items, "tasks", result.Tasks, "templates", result.Templates)
	return result, nil
}
