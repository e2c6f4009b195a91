package content

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
)

// csvHeader fixes the export column order.
var csvHeader = []string{"id", "title", "status", "channel", "format", "due_at", "scheduled_at", "owner", "tags"}

// utf8BOM lets spreadsheet applications detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// OwnerResolver maps an owner ID to a display name. A nil resolver leaves
// the raw ID in the owner column.
type OwnerResolver func(ownerID string) string

// WriteCSV writes the item list as a UTF-8, BOM-prefixed CSV document.
// Fields containing commas, quotes, or newlines are quoted with doubled
// internal quotes per RFC 4180.
func WriteCSV(w io.Writer, items []*domain.ContentItem, resolve OwnerResolver) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, item := range items {
		owner := item.OwnerID
		if resolve != nil && owner != "" {
			owner = resolve(owner)
		}

		record := []string{
			item.ID,
			item.Title,
			string(item.Status),
			item.Channel,
			item.Format,
			formatDate(item.DueAt),
			formatDate(item.ScheduledAt),
			owner,
			strings.Join(item.Tags, ","),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record %s: %w", item.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
