package payroll

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
	CollectionName = "payroll"
	kind           = "payrolls"

	FieldEmployeeCode = "employeeCode"
	FieldPeriod       = "period"

	// PeriodLayout is the month a payroll settles, e.g. "2024-01".
	PeriodLayout = "2006-01"
)

// Repository owns the payroll collection. One document per employee per
// period, keyed "<employeeCode>_<period>", so re-saving the same month
// converges onto a single record instead of accumulating duplicates.
type Repository struct {
	col *records.Collection
}

func NewRepository(store docstore.Store, snapshots cache.Cache, logger ...*zap.Logger) *Repository {
	return &Repository{
		col: records.NewCollection(store, snapshots, records.Config{
			Kind:       kind,
			Collection: CollectionName,
			Label:      "Payroll",
		}, logger...),
	}
}

func (r *Repository) GetAll(ctx context.Context) ([]records.Record, error) {
	return r.col.GetAll(ctx)
}

// GetByPeriod lists every payroll settled in one month. Filtered reads
// always hit the store.
func (r *Repository) GetByPeriod(ctx context.Context, period string) ([]records.Record, error) {
	period = strings.TrimSpace(period)
	if period == "" {
		return nil, apperror.RequiredField(FieldPeriod)
	}
	return r.col.QueryEqual(ctx, FieldPeriod, period)
}

// Save upserts one payroll. The period defaults to the current month
// when the caller omits it.
func (r *Repository) Save(ctx context.Context, rec records.Record) (records.Record, error) {
	id, prepared, err := prepare(rec)
	if err != nil {
		return nil, err
	}
	return r.col.Upsert(ctx, id, prepared)
}

// SaveBatch upserts each payroll independently and reports per-item
// failures without aborting the rest.
func (r *Repository) SaveBatch(ctx context.Context, items []records.Record) (records.BatchResult, error) {
	return r.col.SaveBatch(ctx, items, func(rec records.Record) (string, records.Record, error) {
		if strings.TrimSpace(records.StringField(rec, FieldEmployeeCode)) == "" {
			return "", nil, errors.New("missing employeeCode in record")
		}
		return prepare(rec)
	})
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.col.Delete(ctx, id)
}

// prepare derives the composite identifier and stamps the audit fields:
// updatedAt on every save, createdAt only when the incoming payload does
// not already carry one.
func prepare(rec records.Record) (string, records.Record, error) {
	code := strings.TrimSpace(records.StringField(rec, FieldEmployeeCode))
	if code == "" {
		return "", nil, apperror.RequiredField(FieldEmployeeCode)
	}

	period := strings.TrimSpace(records.StringField(rec, FieldPeriod))
	if period == "" {
		period = time.Now().Format(PeriodLayout)
	}

	key := records.NewCompositeKey(code, period)
	if err := key.Validate(); err != nil {
		return "", nil, err
	}

	prepared := make(records.Record, len(rec)+4)
	for k, v := range rec {
		prepared[k] = v
	}
	prepared[FieldEmployeeCode] = code
	prepared[FieldPeriod] = period
	prepared["updatedAt"] = time.Now()
	if _, ok := rec["createdAt"]; !ok {
		prepared["createdAt"] = time.Now()
	}

	return key.String(), prepared, nil
}
