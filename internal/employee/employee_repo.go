package employee

import (
	"context"
	"strings"

	"github.com/leanh1541989-hash/taphoa39/internal/cache"
	"github.com/leanh1541989-hash/taphoa39/internal/docstore"
	"github.com/leanh1541989-hash/taphoa39/internal/records"
	"github.com/leanh1541989-hash/taphoa39/internal/shared/apperror"

	"go.uber.org/zap"
)

const (
	CollectionName = "employeeList"
	kind           = "employees"

	FieldEmployeeCode = "employeeCode"
	FieldFullName     = "fullName"
)

// birthDate, startDate and endDate arrive as strings from the form and
// are stored as temporal values.
var dateFields = []string{"birthDate", "startDate", "endDate"}

// Repository owns the employee master-data collection. The employee
// code is the document identifier, supplied by the caller and used
// verbatim after trimming.
type Repository struct {
	col *records.Collection
}

func NewRepository(store docstore.Store, snapshots cache.Cache, logger ...*zap.Logger) *Repository {
	return &Repository{
		col: records.NewCollection(store, snapshots, records.Config{
			Kind:       kind,
			Collection: CollectionName,
			Label:      "Employee",
			DateFields: dateFields,
		}, logger...),
	}
}

func (r *Repository) GetAll(ctx context.Context) ([]records.Record, error) {
	return r.col.GetAll(ctx)
}

func (r *Repository) GetByID(ctx context.Context, id string) (records.Record, error) {
	return r.col.GetByID(ctx, id)
}

// Add creates a new employee. The identifier is never regenerated:
// creation against an existing code is a terminal duplicate, not an
// upsert.
func (r *Repository) Add(ctx context.Context, rec records.Record) (records.Record, error) {
	code := strings.TrimSpace(records.StringField(rec, FieldEmployeeCode))
	if code == "" {
		return nil, apperror.RequiredField(FieldEmployeeCode)
	}
	if records.StringField(rec, FieldFullName) == "" {
		return nil, apperror.RequiredField(FieldFullName)
	}

	return r.col.Add(ctx, code, rec)
}

func (r *Repository) Update(ctx context.Context, id string, updates records.Record) (records.Record, error) {
	return r.col.Update(ctx, id, updates)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.col.Delete(ctx, id)
}
