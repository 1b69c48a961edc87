package records

import (
	"context"
	"fmt"

	"github.com/leanh1541989-hash/taphoa39/internal/shared/apperror"

	"go.uber.org/zap"
)

// BatchResult reports a batch save. The batch as a whole succeeds as
// long as it ran to completion; partial failure is a normal outcome
// communicated through SavedCount versus Total and the per-item errors.
type BatchResult struct {
	Total      int      `json:"total"`
	SavedCount int      `json:"savedCount"`
	Errors     []string `json:"errors,omitempty"`
}

func (r BatchResult) Message() string {
	return fmt.Sprintf("Saved %d/%d records", r.SavedCount, r.Total)
}

// BatchItemFunc validates one raw record and derives its identifier and
// storage-ready form. A returned error is recorded against the item and
// the batch moves on.
type BatchItemFunc func(rec Record) (id string, prepared Record, err error)

// SaveBatch upserts every item independently, never aborting on a
// failed one. Items are N independent store writes: a store error mid
// batch leaves the earlier items durably committed, which the result
// reports. The collection snapshot is invalidated exactly once at the
// end rather than once per item.
func (c *Collection) SaveBatch(ctx context.Context, items []Record, prep BatchItemFunc) (BatchResult, error) {
	if len(items) == 0 {
		return BatchResult{}, apperror.Validation("records must be a non-empty list")
	}

	res := BatchResult{Total: len(items)}
	for _, item := range items {
		id, prepared, err := prep(item)
		if err != nil {
			res.Errors = append(res.Errors, err.Error())
			continue
		}

		if _, err := c.mergeWrite(ctx, id, prepared); err != nil {
			res.Errors = append(res.Errors, err.Error())
			continue
		}
		res.SavedCount++
	}

	c.cache.Invalidate(c.AllKey())
	c.log(ctx).Info("batch saved",
		zap.Int("total", res.Total),
		zap.Int("saved", res.SavedCount),
		zap.Int("failed", len(res.Errors)),
	)
	return res, nil
}
