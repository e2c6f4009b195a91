package content

import (
	"context"
	"log/slog"
)

// BulkAction mutates a single item by ID. Implementations delegate to the
// item service (status change, template apply, date set, review request).
type BulkAction func(ctx context.Context, id string) error

// BulkEmitter pushes bulk run outcomes to connected dashboards: a
// bulk.completed event carrying the counts, then a refresh so lists re-fetch.
type BulkEmitter interface {
	EmitBulkCompleted(label string, ok, failed int)
	EmitRefresh(scope string)
}

// BulkResult aggregates the outcome of one bulk run.
type BulkResult struct {
	Label  string            `json:"label"`
	OK     int               `json:"ok"`
	Failed int               `json:"failed"`
	Errors map[string]string `json:"errors,omitempty"` // Per-ID error messages for diagnostics
}

// BulkRunner applies an action to a set of selected item IDs, one at a time.
//
// Items are processed strictly sequentially, not concurrently: batches are
// small (tens of items) and sequential execution keeps error accounting
// predictable. One item's failure never aborts the remaining items.
type BulkRunner struct {
	emitter BulkEmitter
	logger  *slog.Logger
}

// NewBulkRunner creates a bulk runner. The emitter may be nil, in which case
// no events are sent after a run.
func NewBulkRunner(emitter BulkEmitter, logger *slog.Logger) *BulkRunner {
	return &BulkRunner{emitter: emitter, logger: logger}
}

// Run applies the action to every ID in order and returns aggregate counts.
// Failures are recorded per ID and do not stop the batch. After the batch
// settles, a bulk.completed event with the counts and a refresh signal are
// emitted so open dashboards re-fetch.
func (r *BulkRunner) Run(ctx context.Context, label string, ids []string, action BulkAction) BulkResult {
	result := BulkResult{Label: label}

	for _, itemID := range ids {
		if err := action(ctx, itemID); err != nil {
			result.Failed++
			if result.Errors == nil {
				result.Errors = make(map[string]string)
			}
			result.Errors[itemID] = err.Error()
			if r.logger != nil {
				r.logger.Warn("bulk action failed for item",
					"label", label,
					"item_id", itemID,
					"error", err,
				)
			}
			continue
		}
		result.OK++
	}

	if r.emitter != nil {
		r.emitter.EmitBulkCompleted(result.Label, result.OK, result.Failed)
		r.emitter.EmitRefresh("items")
	}

	if r.logger != nil {
		r.logger.Info("bulk action settled",
			"label", label,
			"ok", result.OK,
			"failed", result.Failed,
		)
	}

	return result
}
