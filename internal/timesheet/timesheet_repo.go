package timesheet

import (
	"context"
	"time"

	"github.com/leanh1541989-hash/taphoa39/internal/cache"
	"github.com/leanh1541989-hash/taphoa39/internal/docstore"
	"github.com/leanh1541989-hash/taphoa39/internal/records"

	"go.uber.org/zap"
)

const (
	CollectionName = "timeSheet"
	kind           = "time_sheets"
)

// Repository owns the time-sheet collection. Time sheets have no
// natural key: every save creates a new document under a
// store-generated identifier, so the collection is append-only from
// this layer's perspective.
type Repository struct {
	col *records.Collection
}

func NewRepository(store docstore.Store, snapshots cache.Cache, logger ...*zap.Logger) *Repository {
	return &Repository{
		col: records.NewCollection(store, snapshots, records.Config{
			Kind:       kind,
			Collection: CollectionName,
			Label:      "Time sheet",
		}, logger...),
	}
}

func (r *Repository) GetAll(ctx context.Context) ([]records.Record, error) {
	return r.col.GetAll(ctx)
}

func (r *Repository) Append(ctx context.Context, rec records.Record) (records.Record, error) {
	stamped := make(records.Record, len(rec)+1)
	for k, v := range rec {
		stamped[k] = v
	}
	stamped["createdAt"] = time.Now()

	return r.col.Append(ctx, stamped)
}
