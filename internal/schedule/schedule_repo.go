package schedule

import (
	"context"
	"time"

	"github.com/leanh1541989-hash/taphoa39/internal/cache"
	"github.com/leanh1541989-hash/taphoa39/internal/docstore"
	"github.com/leanh1541989-hash/taphoa39/internal/records"
	"github.com/leanh1541989-hash/taphoa39/internal/shared/apperror"

	"go.uber.org/zap"
)

const (
	CollectionName = "workSchedule"
	kind           = "work_schedules"

	FieldWeekStartDate = "weekStartDate"
	FieldWeekEndDate   = "weekEndDate"
)

var dateFields = []string{FieldWeekStartDate, FieldWeekEndDate}

// Repository owns the weekly work-schedule collection, keyed by the
// week-start date. Saving the same week twice merges rather than
// duplicates.
type Repository struct {
	col *records.Collection
}

func NewRepository(store docstore.Store, snapshots cache.Cache, logger ...*zap.Logger) *Repository {
	return &Repository{
		col: records.NewCollection(store, snapshots, records.Config{
			Kind:       kind,
			Collection: CollectionName,
			Label:      "Work schedule",
			DateFields: dateFields,
			RangeField: FieldWeekStartDate,
		}, logger...),
	}
}

func (r *Repository) GetAll(ctx context.Context) ([]records.Record, error) {
	return r.col.GetAll(ctx)
}

func (r *Repository) QueryRange(ctx context.Context, fromDate, toDate string) ([]records.Record, error) {
	return r.col.QueryRange(ctx, fromDate, toDate)
}

// Save upserts the week document at its start date. The week-end date
// is always recomputed as start + 6 days, never caller-supplied.
func (r *Repository) Save(ctx context.Context, rec records.Record) (records.Record, error) {
	raw, ok := rec[FieldWeekStartDate]
	if !ok || raw == "" {
		return nil, apperror.RequiredField(FieldWeekStartDate)
	}
	start, ok := records.ParseDay(raw)
	if !ok {
		return nil, apperror.Validation("weekStartDate must be a YYYY-MM-DD date")
	}

	id := start.Format(records.DayLayout)

	weekNumber := rec["weekNumber"]
	if weekNumber == nil {
		weekNumber = 1
	}
	days := rec["days"]
	if days == nil {
		days = map[string]any{}
	}

	prepared := records.Record{
		"weekNumber":       weekNumber,
		FieldWeekStartDate: start,
		FieldWeekEndDate:   start.AddDate(0, 0, 6),
		"days":             days,
		"updatedAt":        time.Now(),
	}
	return r.col.Upsert(ctx, id, prepared)
}
