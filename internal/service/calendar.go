package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	domainerrors "github.com/aivladyslavai/MarketingKreis-sub000/internal/errors"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/store"
)

// CalendarService buckets items and tasks by date for the planning view.
type CalendarService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewCalendarService creates a calendar service.
func NewCalendarService(st *store.Store, logger *slog.Logger) *CalendarService {
	return &CalendarService{store: st, logger: logger}
}

// CalendarEntry is one dated entry in the feed.
type CalendarEntry struct {
	Date     string     `json:"date"` // YYYY-MM-DD
	Kind     string     `json:"kind"` // "item" or "task"
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Channel  string     `json:"channel,omitempty"`
	Status   string     `json:"status"`
	At       *time.Time `json:"at,omitempty"`
	IsDue    bool       `json:"is_due,omitempty"`    // Entry comes from a due date
	ItemID   string     `json:"item_id,omitempty"`   // For tasks linked to an item
	OwnerID  string     `json:"owner_id,omitempty"`
}

// CalendarFeed groups entries by day over the requested range.
type CalendarFeed struct {
	From time.Time                  `json:"from"`
	To   time.Time                  `json:"to"`
	Days map[string][]CalendarEntry `json:"days"`
}

// Feed returns items (scheduled or due) and tasks (due) between from and to,
// bucketed by calendar day. Items scheduled for a day appear under that day;
// an item with only a due date appears under its due day flagged as due.
func (s *CalendarService) Feed(ctx context.Context, from, to time.Time) (*CalendarFeed, error) {
	if to.Before(from) {
		return nil, domainerrors.Validation("to must not be before from")
	}
	if to.Sub(from) > 366*24*time.Hour {
		return nil, domainerrors.Validation("range must not exceed one year")
	}

	items, err := s.store.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	feed := &CalendarFeed{
		From: from,
		To:   to,
		Days: make(map[string][]CalendarEntry),
	}

	inRange := func(t *time.Time) bool {
		return t != nil && !t.Before(from) && !t.After(to)
	}

	for _, item := range items {
		switch {
		case inRange(item.ScheduledAt):
			feed.add(CalendarEntry{
				Date:    item.ScheduledAt.Format(time.DateOnly),
				Kind:    "item",
				ID:      item.ID,
				Title:   item.Title,
				Channel: item.Channel,
				Status:  string(item.Status),
				At:      item.ScheduledAt,
				OwnerID: item.OwnerID,
			})
		case inRange(item.DueAt):
			feed.add(CalendarEntry{
				Date:    item.DueAt.Format(time.DateOnly),
				Kind:    "item",
				ID:      item.ID,
				Title:   item.Title,
				Channel: item.Channel,
				Status:  string(item.Status),
				At:      item.DueAt,
				IsDue:   true,
				OwnerID: item.OwnerID,
			})
		}
	}

	for _, task := range tasks {
		if !inRange(task.DueAt) {
			continue
		}
		feed.add(CalendarEntry{
			Date:    task.DueAt.Format(time.DateOnly),
			Kind:    "task",
			ID:      task.ID,
			Title:   task.Title,
			Channel: task.Channel,
			Status:  string(task.Status),
			At:      task.DueAt,
			IsDue:   true,
			ItemID:  task.ItemID,
			OwnerID: task.OwnerID,
		})
	}

	feed.sortDays()
	return feed, nil
}

func (f *CalendarFeed) add(entry CalendarEntry) {
	f.Days[entry.Date] = append(f.Days[entry.Date], entry)
}

// sortDays orders each day's entries by time, items before tasks on ties.
func (f *CalendarFeed) sortDays() {
	for _, entries := range f.Days {
		sort.SliceStable(entries, func(i, j int) bool {
			a, b := entries[i], entries[j]
			if a.At != nil && b.At != nil && !a.At.Equal(*b.At) {
				return a.At.Before(*b.At)
			}
			if a.Kind != b.Kind {
				return a.Kind == "item"
			}
			return a.Title < b.Title
		})
	}
}
