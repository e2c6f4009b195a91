package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/content"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
)

// utf8BOM lets spreadsheet applications detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Input carries the workspace data a report is generated from.
// The caller assembles it so the generator stays free of store dependencies.
type Input struct {
	Items []*domain.ContentItem
	Tasks []*domain.ContentTask
	Users []*domain.User
}

// ownerName resolves a user ID to a display name for report rows.
func (in Input) ownerName(ownerID string) string {
	for _, u := range in.Users {
		if u.ID == ownerID {
			return u.Name()
		}
	}
	return ""
}

// NewRun creates a pending run record for the given report kind.
func NewRun(kind domain.ReportKind, requestedBy string) *domain.ReportRun {
	return &domain.ReportRun{
		ID:          uuid.NewString(),
		Kind:        kind,
		State:       domain.RunPending,
		RequestedBy: requestedBy,
		StartedAt:   time.Now(),
	}
}

// Generate produces the summary text and CSV artifact for a report kind.
func Generate(kind domain.ReportKind, in Input, now time.Time) (summary, csvText string, err error) {
	switch kind {
	case domain.ReportContentOverview:
		return contentOverview(in)
	case domain.ReportChannelBreakdown:
		return channelBreakdown(in)
	case domain.ReportTeamActivity:
		return teamActivity(in, now)
	default:
		return "", "", fmt.Errorf("unknown report kind: %s", kind)
	}
}

// CaptureSnapshot computes the current workspace KPIs.
func CaptureSnapshot(in Input, now time.Time) *domain.KPISnapshot {
	snap := &domain.KPISnapshot{
		ID:                 uuid.NewString(),
		CapturedAt:         now,
		ItemsByStatus:      make(map[string]int),
		PublishedByChannel: make(map[string]int),
	}

	for _, item := range in.Items {
		snap.ItemsByStatus[string(item.Status)]++
		if item.Status == domain.StatusPublished && item.Channel != "" {
			snap.PublishedByChannel[item.Channel]++
		}
	}

	for _, task := range in.Tasks {
		if task.IsOpen() {
			snap.TasksOpen++
			if task.IsOverdue(now) {
				snap.TasksOverdue++
			}
		}
	}

	for _, user := range in.Users {
		if user.Active {
			snap.ActiveUsers++
		}
	}

	return snap
}

// contentOverview renders the full item list as CSV plus a status summary.
func contentOverview(in Input) (string, string, error) {
	var buf bytes.Buffer
	if err := content.WriteCSV(&buf, in.Items, in.ownerName); err != nil {
		return "", "", fmt.Errorf("write content overview: %w", err)
	}

	byStatus := make(map[string]int)
	for _, item := range in.Items {
		byStatus[string(item.Status)]++
	}

	summary := fmt.Sprintf("%d Inhalte gesamt", len(in.Items))
	for _, status := range domain.AllStatuses() {
		if n := byStatus[string(status)]; n > 0 {
			summary += fmt.Sprintf(", %d %s", n, status)
		}
	}

	return summary, buf.String(), nil
}

// channelBreakdown renders per channel/format item counts.
func channelBreakdown(in Input) (string, string, error) {
	type key struct{ channel, format string }
	counts := make(map[key]int)
	published := make(map[key]int)

	for _, item := range in.Items {
		k := key{item.Channel, item.Format}
		counts[k]++
		if item.Status == domain.StatusPublished {
			published[k]++
		}
	}

	keys := make([]key, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].channel != keys[j].channel {
			return keys[i].channel < keys[j].channel
		}
		return keys[i].format < keys[j].format
	})

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{
			k.channel,
			k.format,
			strconv.Itoa(counts[k]),
			strconv.Itoa(published[k]),
		})
	}

	csvText, err := renderCSV([]string{"channel", "format", "items", "published"}, rows)
	if err != nil {
		return "", "", err
	}

	summary := fmt.Sprintf("%d Kanal/Format-Kombinationen über %d Inhalte", len(keys), len(in.Items))
	return summary, csvText, nil
}

// teamActivity renders per-member workload counts.
func teamActivity(in Input, now time.Time) (string, string, error) {
	type stats struct {
		items, published, tasksOpen, tasksOverdue int
	}
	byUser := make(map[string]*stats)
	for _, u := range in.Users {
		byUser[u.ID] = &stats{}
	}

	get := func(id string) *stats {
		s, ok := byUser[id]
		if !ok {
			s = &stats{}
			byUser[id] = s
		}
		return s
	}

	for _, item := range in.Items {
		if item.OwnerID == "" {
			continue
		}
		s := get(item.OwnerID)
		s.items++
		if item.Status == domain.StatusPublished {
			s.published++
		}
	}

	for _, task := range in.Tasks {
		if task.OwnerID == "" || !task.IsOpen() {
			continue
		}
		s := get(task.OwnerID)
		s.tasksOpen++
		if task.IsOverdue(now) {
			s.tasksOverdue++
		}
	}

	rows := make([][]string, 0, len(in.Users))
	active := 0
	for _, u := range in.Users {
		s := byUser[u.ID]
		if u.Active {
			active++
		}
		rows = append(rows, []string{
			u.Name(),
			string(u.Role),
			strconv.Itoa(s.items),
			strconv.Itoa(s.published),
			strconv.Itoa(s.tasksOpen),
			strconv.Itoa(s.tasksOverdue),
		})
	}

	csvText, err := renderCSV([]string{"member", "role", "items", "published", "open_tasks", "overdue_tasks"}, rows)
	if err != nil {
		return "", "", err
	}

	summary := fmt.Sprintf("%d Mitglieder, davon %d aktiv", len(in.Users), active)
	return summary, csvText, nil
}

// renderCSV writes a BOM-prefixed CSV with the given header and rows.
func renderCSV(header []string, rows [][]string) (string, error) {
	var buf bytes.Buffer
	if _, err := buf.Write(utf8BOM); err != nil {
		return "", err
	}

	cw := csv.NewWriter(&buf)
	if err := cw.Write(header); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", err
	}

	return buf.String(), nil
}
