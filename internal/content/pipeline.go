// Package content implements the derivation pipeline for the content item
// list: filtering, sorting, bulk actions, and CSV export.
package content

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
)

// FilterAll disables a filter dimension.
const FilterAll = "all"

// Sort modes for the item list.
const (
	SortUpdatedDesc = "updated_desc"
	SortUpdatedAsc  = "updated_asc"
	SortDueAsc      = "due_asc"
	SortDueDesc     = "due_desc"
	SortPublishAsc  = "publish_asc"
	SortPublishDesc = "publish_desc"
	SortTitleAsc    = "title_asc"
	SortStatusAsc   = "status_asc"
)

// Query holds the filter and sort state for one listing request.
// Zero values (and FilterAll) disable the corresponding dimension.
type Query struct {
	Channel string
	Format  string
	Status  string
	Owner   string
	Sort    string
}

// Apply filters and sorts the given items. It is a pure function of its
// inputs: the input slice is not modified, and the result is recomputed
// from scratch on every call.
func Apply(items []*domain.ContentItem, q Query) []*domain.ContentItem {
	out := make([]*domain.ContentItem, 0, len(items))
	for _, item := range items {
		if matches(item, q) {
			out = append(out, item)
		}
	}
	sortItems(out, q.Sort)
	return out
}

func matches(item *domain.ContentItem, q Query) bool {
	if active(q.Channel) && !strings.EqualFold(item.Channel, q.Channel) {
		return false
	}
	if active(q.Format) && !strings.EqualFold(item.Format, q.Format) {
		return false
	}
	if active(q.Status) && !strings.EqualFold(string(item.Status), q.Status) {
		return false
	}
	if active(q.Owner) && item.OwnerID != q.Owner {
		return false
	}
	return true
}

func active(filter string) bool {
	return filter != "" && filter != FilterAll
}

// sortItems sorts in place. Unknown or empty modes fall back to updated_desc.
func sortItems(items []*domain.ContentItem, mode string) {
	switch mode {
	case SortUpdatedAsc:
		slices.SortStableFunc(items, func(a, b *domain.ContentItem) int {
			return a.UpdatedAt.Compare(b.UpdatedAt)
		})
	case SortDueAsc:
		slices.SortStableFunc(items, func(a, b *domain.ContentItem) int {
			return compareDates(a.DueAt, b.DueAt, true)
		})
	case SortDueDesc:
		slices.SortStableFunc(items, func(a, b *domain.ContentItem) int {
			return compareDates(a.DueAt, b.DueAt, false)
		})
	case SortPublishAsc:
		slices.SortStableFunc(items, func(a, b *domain.ContentItem) int {
			return compareDates(a.ScheduledAt, b.ScheduledAt, true)
		})
	case SortPublishDesc:
		slices.SortStableFunc(items, func(a, b *domain.ContentItem) int {
			return compareDates(a.ScheduledAt, b.ScheduledAt, false)
		})
	case SortTitleAsc:
		c := collate.New(language.German)
		slices.SortStableFunc(items, func(a, b *domain.ContentItem) int {
			return c.CompareString(a.Title, b.Title)
		})
	case SortStatusAsc:
		slices.SortStableFunc(items, func(a, b *domain.ContentItem) int {
			return a.Status.Rank() - b.Status.Rank()
		})
	default:
		// SortUpdatedDesc and anything unrecognized.
		slices.SortStableFunc(items, func(a, b *domain.ContentItem) int {
			return b.UpdatedAt.Compare(a.UpdatedAt)
		})
	}
}

// compareDates orders two optional dates. A missing date always sorts last,
// regardless of direction.
func compareDates(a, b *time.Time, asc bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case asc:
		return a.Compare(*b)
	default:
		return b.Compare(*a)
	}
}
