package payroll_test

import (
	"context"
	"testing"
	"time"

	"github.com/leanh1541989-hash/taphoa39/internal/cache"
	"github.com/leanh1541989-hash/taphoa39/internal/docstore/docstoretest"
	"github.com/leanh1541989-hash/taphoa39/internal/payroll"
	"github.com/leanh1541989-hash/taphoa39/internal/records"
	"github.com/leanh1541989-hash/taphoa39/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func setupRepo(t *testing.T) (*docstoretest.Store, *payroll.Repository) {
	t.Helper()
	store := docstoretest.New()
	repo := payroll.NewRepository(store, cache.New(cache.SnapshotTTL), zap.NewNop())
	return store, repo
}

func errorCode(t *testing.T, err error) string {
	t.Helper()
	appErr, ok := err.(*apperror.AppError)
	if !ok {
		t.Fatalf("expected *apperror.AppError, got %T", err)
	}
	return appErr.Code
}

func TestPayrollRepository_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("identifier is code and period", func(t *testing.T) {
		store, repo := setupRepo(t)

		rec, err := repo.Save(ctx, records.Record{
			"employeeCode": " NV001 ",
			"period":       "2024-01",
			"baseSalary":   12_000_000,
		})
		assert.NoError(t, err)
		assert.Equal(t, "NV001_2024-01", rec["id"])

		_, found := store.Snapshot(payroll.CollectionName, "NV001_2024-01")
		assert.True(t, found)
	})

	t.Run("period defaults to the current month", func(t *testing.T) {
		_, repo := setupRepo(t)

		rec, err := repo.Save(ctx, records.Record{"employeeCode": "NV002"})
		assert.NoError(t, err)

		want := time.Now().Format(payroll.PeriodLayout)
		assert.Equal(t, want, rec["period"])
		assert.Equal(t, "NV002_"+want, rec["id"])
	})

	t.Run("re-saving a period merges onto one document", func(t *testing.T) {
		store, repo := setupRepo(t)

		_, err := repo.Save(ctx, records.Record{
			"employeeCode": "NV001",
			"period":       "2024-01",
			"baseSalary":   10,
			"bonus":        1,
		})
		assert.NoError(t, err)

		_, err = repo.Save(ctx, records.Record{
			"employeeCode": "NV001",
			"period":       "2024-01",
			"baseSalary":   20,
		})
		assert.NoError(t, err)

		assert.Equal(t, 1, store.Len(payroll.CollectionName))
		snap, _ := store.Snapshot(payroll.CollectionName, "NV001_2024-01")
		assert.Equal(t, 20, snap["baseSalary"])
		assert.Equal(t, 1, snap["bonus"], "absent fields survive the merge")
	})

	t.Run("audit fields", func(t *testing.T) {
		store, repo := setupRepo(t)

		_, err := repo.Save(ctx, records.Record{
			"employeeCode": "NV003",
			"period":       "2024-01",
		})
		assert.NoError(t, err)

		snap, _ := store.Snapshot(payroll.CollectionName, "NV003_2024-01")
		first, ok := snap["createdAt"].(time.Time)
		assert.True(t, ok)
		_, ok = snap["updatedAt"].(time.Time)
		assert.True(t, ok)

		// a payload carrying its own createdAt keeps it
		kept := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
		_, err = repo.Save(ctx, records.Record{
			"employeeCode": "NV003",
			"period":       "2024-01",
			"createdAt":    kept,
		})
		assert.NoError(t, err)

		snap, _ = store.Snapshot(payroll.CollectionName, "NV003_2024-01")
		assert.Equal(t, kept, snap["createdAt"])
		assert.NotEqual(t, first, kept)
	})

	t.Run("missing employee code rejected", func(t *testing.T) {
		_, repo := setupRepo(t)

		_, err := repo.Save(ctx, records.Record{"period": "2024-01"})
		assert.Error(t, err)
		assert.Equal(t, apperror.CodeValidation, errorCode(t, err))
	})

	t.Run("code containing the separator rejected", func(t *testing.T) {
		store, repo := setupRepo(t)

		_, err := repo.Save(ctx, records.Record{
			"employeeCode": "NV_001",
			"period":       "2024-01",
		})
		assert.Error(t, err)
		assert.Equal(t, apperror.CodeValidation, errorCode(t, err))
		assert.Equal(t, 0, store.Len(payroll.CollectionName))
	})
}

func TestPayrollRepository_SaveBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("partial failure saves the rest", func(t *testing.T) {
		store, repo := setupRepo(t)

		res, err := repo.SaveBatch(ctx, []records.Record{
			{"employeeCode": "NV001", "period": "2024-01"},
			{"period": "2024-01"},
			{"employeeCode": "NV002", "period": "2024-01"},
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, res.Total)
		assert.Equal(t, 2, res.SavedCount)
		assert.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], "employeeCode")
		assert.Equal(t, 2, store.Len(payroll.CollectionName))
	})

	t.Run("empty batch rejected", func(t *testing.T) {
		_, repo := setupRepo(t)

		_, err := repo.SaveBatch(ctx, nil)
		assert.Error(t, err)
		assert.Equal(t, apperror.CodeValidation, errorCode(t, err))
	})

	t.Run("batch refreshes the snapshot once done", func(t *testing.T) {
		store, repo := setupRepo(t)

		_, err := repo.GetAll(ctx)
		assert.NoError(t, err)

		_, err = repo.SaveBatch(ctx, []records.Record{
			{"employeeCode": "NV001", "period": "2024-02"},
			{"employeeCode": "NV002", "period": "2024-02"},
		})
		assert.NoError(t, err)

		scans := store.StreamCalls(payroll.CollectionName)
		list, err := repo.GetAll(ctx)
		assert.NoError(t, err)
		assert.Len(t, list, 2)
		assert.Equal(t, scans+1, store.StreamCalls(payroll.CollectionName))
	})
}

func TestPayrollRepository_GetByPeriod(t *testing.T) {
	ctx := context.Background()
	_, repo := setupRepo(t)

	for _, r := range []records.Record{
		{"employeeCode": "NV001", "period": "2024-01"},
		{"employeeCode": "NV002", "period": "2024-01"},
		{"employeeCode": "NV001", "period": "2024-02"},
	} {
		_, err := repo.Save(ctx, r)
		assert.NoError(t, err)
	}

	out, err := repo.GetByPeriod(ctx, "2024-01")
	assert.NoError(t, err)
	assert.Len(t, out, 2)

	_, err = repo.GetByPeriod(ctx, "  ")
	assert.Error(t, err)
	assert.Equal(t, apperror.CodeValidation, errorCode(t, err))
}
