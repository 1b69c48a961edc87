package attendance

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/leanh1541989-hash/taphoa39/internal/cache"
	"github.com/leanh1541989-hash/taphoa39/internal/docstore"
	"github.com/leanh1541989-hash/taphoa39/internal/records"
	"github.com/leanh1541989-hash/taphoa39/internal/shared/apperror"

	"go.uber.org/zap"
)

const (
	CollectionName = "attendance"
	kind           = "attendance"

	FieldWorkerID = "workerId"
	FieldDate     = "date"
)

// Repository owns the attendance collection. One document per worker
// per day, keyed "<workerId>_<YYYY-MM-DD>", so a check-in re-submitted
// for the same day lands on the same record.
type Repository struct {
	col *records.Collection
}

func NewRepository(store docstore.Store, snapshots cache.Cache, logger ...*zap.Logger) *Repository {
	return &Repository{
		col: records.NewCollection(store, snapshots, records.Config{
			Kind:          kind,
			Collection:    CollectionName,
			Label:         "Attendance record",
			DateFields:    []string{FieldDate},
			RangeField:    FieldDate,
			RangeEndOfDay: true,
		}, logger...),
	}
}

func (r *Repository) GetAll(ctx context.Context) ([]records.Record, error) {
	return r.col.GetAll(ctx)
}

// QueryRange lists attendance with dates inside [fromDate, toDate],
// both bounds inclusive of the whole day.
func (r *Repository) QueryRange(ctx context.Context, fromDate, toDate string) ([]records.Record, error) {
	return r.col.QueryRange(ctx, fromDate, toDate)
}

// Add creates one attendance record under its derived worker-day
// identifier. Re-adding the same worker and day is a duplicate, not a
// silent overwrite.
func (r *Repository) Add(ctx context.Context, rec records.Record) (records.Record, error) {
	id, err := deriveID(rec)
	if err != nil {
		return nil, err
	}

	stamped := make(records.Record, len(rec)+1)
	for k, v := range rec {
		stamped[k] = v
	}
	stamped["createdAt"] = time.Now()

	return r.col.Add(ctx, id, stamped)
}

// Update merge-patches one attendance record in place. The identifier
// is never re-derived: changing workerId or date moves nothing.
func (r *Repository) Update(ctx context.Context, id string, updates records.Record) (records.Record, error) {
	stamped := make(records.Record, len(updates)+1)
	for k, v := range updates {
		stamped[k] = v
	}
	if len(updates) > 0 {
		stamped["updatedAt"] = time.Now()
	}

	return r.col.Update(ctx, id, stamped)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.col.Delete(ctx, id)
}

// SaveBatch upserts each attendance record independently: a malformed
// item is reported, not fatal, and valid items around it still commit.
func (r *Repository) SaveBatch(ctx context.Context, items []records.Record) (records.BatchResult, error) {
	return r.col.SaveBatch(ctx, items, func(rec records.Record) (string, records.Record, error) {
		if strings.TrimSpace(records.StringField(rec, FieldWorkerID)) == "" {
			return "", nil, errors.New("missing workerId in record")
		}
		// an empty date counts as missing, not as a malformed identifier
		if v, ok := rec[FieldDate]; !ok || v == nil || v == "" {
			return "", nil, errors.New("missing date in record")
		}

		id, err := deriveID(rec)
		if err != nil {
			return "", nil, err
		}

		prepared := make(records.Record, len(rec)+2)
		for k, v := range rec {
			prepared[k] = v
		}
		prepared["updatedAt"] = time.Now()
		if _, ok := rec["createdAt"]; !ok {
			prepared["createdAt"] = time.Now()
		}
		return id, prepared, nil
	})
}

// deriveID builds "<workerId>_<YYYY-MM-DD>". A native time and its
// string rendering derive the same identifier.
func deriveID(rec records.Record) (string, error) {
	worker := strings.TrimSpace(records.StringField(rec, FieldWorkerID))
	if worker == "" {
		return "", apperror.RequiredField(FieldWorkerID)
	}

	raw, ok := rec[FieldDate]
	if !ok {
		return "", apperror.RequiredField(FieldDate)
	}
	day := records.DayString(raw)
	if day == "" {
		return "", apperror.InvalidField(FieldDate)
	}

	key := records.NewCompositeKey(worker, day)
	if err := key.Validate(); err != nil {
		return "", err
	}
	return key.String(), nil
}
