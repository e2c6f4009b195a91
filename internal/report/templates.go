package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
)

// reloadSettleDelay debounces rapid successive writes to a template file
// (editors tend to emit several events per save).
const reloadSettleDelay = 250 * time.Millisecond

// builtinTemplate is used for report kinds without a template file on disk.
const builtinTemplate = `Report: {{.Kind}}
Erstellt am {{.StartedAt.Format "02.01.2006 15:04"}}

{{.Summary}}

Der vollständige Report ist als CSV-Datei angehängt.
`

// Templates loads report email templates from a directory and hot-reloads
// them when the files change on disk. Template files are named after the
// report kind, e.g. content_overview.tmpl.
type Templates struct {
	dir    string
	logger *slog.Logger

	mu     sync.RWMutex
	byKind map[domain.ReportKind]*template.Template

	builtin *template.Template
	watcher *fsnotify.Watcher
	timers  map[string]*time.Timer
	timerMu sync.Mutex
}

// NewTemplates loads all templates from dir. A missing or empty directory
// is not an error; the built-in template covers all kinds in that case.
func NewTemplates(dir string, logger *slog.Logger) (*Templates, error) {
	builtin, err := template.New("builtin").Parse(builtinTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse builtin template: %w", err)
	}

	t := &Templates{
		dir:     dir,
		logger:  logger,
		byKind:  make(map[domain.ReportKind]*template.Template),
		builtin: builtin,
		timers:  make(map[string]*time.Timer),
	}

	if dir != "" {
		if err := t.loadAll(); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Watch starts watching the template directory for changes and reloads
// templates as files are written. It blocks until the context is cancelled.
// Watch is a no-op when no template directory is configured.
func (t *Templates) Watch(ctx context.Context) error {
	if t.dir == "" {
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create template watcher: %w", err)
	}
	t.watcher = watcher
	defer watcher.Close()

	if err := watcher.Add(t.dir); err != nil {
		return fmt.Errorf("watch template dir: %w", err)
	}

	t.logger.Info("watching report templates", "dir", t.dir)

	for {
		select {
		case <-ctx.Done():
			t.stopTimers()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			t.handleEvent(event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			t.logger.Warn("template watcher error", "error", err)
		}
	}
}

// Render renders the email body for a report run, falling back to the
// built-in template when no file exists for the run's kind.
func (t *Templates) Render(run *domain.ReportRun) (string, error) {
	t.mu.RLock()
	tmpl, ok := t.byKind[run.Kind]
	t.mu.RUnlock()

	if !ok {
		tmpl = t.builtin
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, run); err != nil {
		return "", fmt.Errorf("execute template for %s: %w", run.Kind, err)
	}
	return buf.String(), nil
}

// HasCustom reports whether a custom template file is loaded for the kind.
func (t *Templates) HasCustom(kind domain.ReportKind) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.byKind[kind]
	return ok
}

func (t *Templates) loadAll() error {
	entries, err := os.ReadDir(t.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read template dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".tmpl") {
			continue
		}
		if err := t.loadFile(filepath.Join(t.dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (t *Templates) loadFile(path string) error {
	kind := domain.ReportKind(strings.TrimSuffix(filepath.Base(path), ".tmpl"))

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read template %s: %w", path, err)
	}

	tmpl, err := template.New(string(kind)).Parse(string(data))
	if err != nil {
		return fmt.Errorf("parse template %s: %w", path, err)
	}

	t.mu.Lock()
	t.byKind[kind] = tmpl
	t.mu.Unlock()

	return nil
}

func (t *Templates) handleEvent(event fsnotify.Event) {
	if !strings.HasSuffix(event.Name, ".tmpl") {
		return
	}

	if event.Op&fsnotify.Remove != 0 {
		kind := domain.ReportKind(strings.TrimSuffix(filepath.Base(event.Name), ".tmpl"))
		t.mu.Lock()
		delete(t.byKind, kind)
		t.mu.Unlock()
		t.logger.Info("report template removed, using builtin", "kind", kind)
		return
	}

	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}

	// Debounce: editors fire multiple events per save.
	t.timerMu.Lock()
	defer t.timerMu.Unlock()

	if timer, exists := t.timers[event.Name]; exists {
		timer.Stop()
	}
	path := event.Name
	t.timers[path] = time.AfterFunc(reloadSettleDelay, func() {
		t.timerMu.Lock()
		delete(t.timers, path)
		t.timerMu.Unlock()

		if err := t.loadFile(path); err != nil {
			t.logger.Warn("failed to reload report template", "path", path, "error", err)
			return
		}
		t.logger.Info("report template reloaded", "path", path)
	})
}

func (t *Templates) stopTimers() {
	t.timerMu.Lock()
	defer t.timerMu.Unlock()
	for _, timer := range t.timers {
		timer.Stop()
	}
	clear(t.timers)
}
