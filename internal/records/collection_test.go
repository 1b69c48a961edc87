package records_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/leanh1541989-hash/taphoa39/internal/cache"
	"github.com/leanh1541989-hash/taphoa39/internal/docstore/docstoretest"
	"github.com/leanh1541989-hash/taphoa39/internal/records"
	"github.com/leanh1541989-hash/taphoa39/internal/shared/apperror"
	"github.com/leanh1541989-hash/taphoa39/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type collectionDeps struct {
	store *docstoretest.Store
	cache cache.Cache
	col   *records.Collection
}

func setupCollection(t *testing.T, cfg records.Config) *collectionDeps {
	t.Helper()
	store := docstoretest.New()
	c := cache.New(cache.SnapshotTTL)
	return &collectionDeps{
		store: store,
		cache: c,
		col:   records.NewCollection(store, c, cfg, zap.NewNop()),
	}
}

func employeeConfig() records.Config {
	return records.Config{
		Kind:       "employees",
		Collection: "employeeList",
		Label:      "Employee",
		DateFields: []string{"birthDate", "startDate", "endDate"},
	}
}

func errorCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %v", err)
	}
	return appErr.Code
}

func TestCollection_GetAll(t *testing.T) {
	ctx := context.Background()
	deps := setupCollection(t, employeeConfig())
	deps.store.Seed("employeeList", "NV001", map[string]any{"fullName": "A"})
	deps.store.Seed("employeeList", "NV002", map[string]any{"fullName": "B"})

	t.Run("miss scans once, hit scans zero times", func(t *testing.T) {
		first, err := deps.col.GetAll(ctx)
		assert.NoError(t, err)
		assert.Len(t, first, 2)
		assert.Equal(t, 1, deps.store.StreamCalls("employeeList"))

		second, err := deps.col.GetAll(ctx)
		assert.NoError(t, err)
		assert.Len(t, second, 2)
		assert.Equal(t, 1, deps.store.StreamCalls("employeeList"),
			"cached snapshot must not touch the store")
	})

	t.Run("documents carry their id", func(t *testing.T) {
		all, err := deps.col.GetAll(ctx)
		assert.NoError(t, err)
		ids := map[any]bool{}
		for _, rec := range all {
			ids[rec["id"]] = true
		}
		assert.True(t, ids["NV001"])
		assert.True(t, ids["NV002"])
	})

	t.Run("store failure surfaces as store error", func(t *testing.T) {
		failing := setupCollection(t, employeeConfig())
		failing.store.FailReads = errors.New("deadline exceeded")
		_, err := failing.col.GetAll(ctx)
		assert.Equal(t, apperror.CodeStoreFailure, errorCode(t, err))
		assert.Contains(t, err.Error(), "deadline exceeded")
	})
}

func TestCollection_GetByID(t *testing.T) {
	ctx := context.Background()
	deps := setupCollection(t, employeeConfig())
	deps.store.Seed("employeeList", "NV001", map[string]any{"fullName": "A"})

	t.Run("blank id reads as not found", func(t *testing.T) {
		_, err := deps.col.GetByID(ctx, "  ")
		assert.Equal(t, apperror.CodeNotFound, errorCode(t, err))
	})

	t.Run("found result is cached", func(t *testing.T) {
		rec, err := deps.col.GetByID(ctx, "NV001")
		assert.NoError(t, err)
		assert.Equal(t, "NV001", rec["id"])
		assert.True(t, deps.cache.Has("employees:NV001"))
	})

	t.Run("not found is never cached", func(t *testing.T) {
		_, err := deps.col.GetByID(ctx, "NV999")
		assert.Equal(t, apperror.CodeNotFound, errorCode(t, err))
		assert.False(t, deps.cache.Has("employees:NV999"))
	})
}

func TestCollection_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("create never overwrites", func(t *testing.T) {
		deps := setupCollection(t, employeeConfig())
		deps.store.Seed("employeeList", "NV001", map[string]any{"fullName": "A"})

		_, err := deps.col.Add(ctx, "NV001", records.Record{"fullName": "B"})
		assert.Equal(t, apperror.CodeDuplicate, errorCode(t, err))

		snap, _ := deps.store.Snapshot("employeeList", "NV001")
		assert.Equal(t, "A", snap["fullName"], "failed create must perform no write")
	})

	t.Run("success invalidates both snapshots", func(t *testing.T) {
		deps := setupCollection(t, employeeConfig())

		// warm the collection snapshot
		_, err := deps.col.GetAll(ctx)
		assert.NoError(t, err)

		rec, err := deps.col.Add(ctx, "NV001", records.Record{"fullName": "A", "phone": ""})
		assert.NoError(t, err)
		assert.Equal(t, "NV001", rec["id"])

		all, err := deps.col.GetAll(ctx)
		assert.NoError(t, err)
		assert.Len(t, all, 1, "post-write read must not see the pre-write snapshot")
	})

	t.Run("normalization drops empties before persisting", func(t *testing.T) {
		deps := setupCollection(t, employeeConfig())
		_, err := deps.col.Add(ctx, "NV002", records.Record{"fullName": "B", "email": ""})
		assert.NoError(t, err)

		snap, _ := deps.store.Snapshot("employeeList", "NV002")
		_, hasEmail := snap["email"]
		assert.False(t, hasEmail)
	})
}

func TestCollection_Update(t *testing.T) {
	ctx := context.Background()
	deps := setupCollection(t, employeeConfig())
	deps.store.Seed("employeeList", "NV001", map[string]any{"fullName": "A", "phone": "0123"})

	t.Run("rejects empty id and empty updates", func(t *testing.T) {
		_, err := deps.col.Update(ctx, "", records.Record{"x": 1})
		assert.Equal(t, apperror.CodeValidation, errorCode(t, err))

		_, err = deps.col.Update(ctx, "NV001", records.Record{})
		assert.Equal(t, apperror.CodeValidation, errorCode(t, err))
	})

	t.Run("never creates implicitly", func(t *testing.T) {
		_, err := deps.col.Update(ctx, "NV999", records.Record{"fullName": "X"})
		assert.Equal(t, apperror.CodeNotFound, errorCode(t, err))
	})

	t.Run("partial update leaves other fields untouched", func(t *testing.T) {
		// warm both snapshots
		_, _ = deps.col.GetAll(ctx)
		_, _ = deps.col.GetByID(ctx, "NV001")

		applied, err := deps.col.Update(ctx, "NV001", records.Record{"fullName": "A2"})
		assert.NoError(t, err)
		assert.Equal(t, records.Record{"fullName": "A2"}, applied)

		snap, _ := deps.store.Snapshot("employeeList", "NV001")
		assert.Equal(t, "A2", snap["fullName"])
		assert.Equal(t, "0123", snap["phone"])

		assert.False(t, deps.cache.Has("all_employees"))
		assert.False(t, deps.cache.Has("employees:NV001"))
	})
}

func TestCollection_Delete(t *testing.T) {
	ctx := context.Background()
	deps := setupCollection(t, employeeConfig())
	deps.store.Seed("employeeList", "NV001", map[string]any{"fullName": "A"})

	assert.Equal(t, apperror.CodeValidation, errorCode(t, deps.col.Delete(ctx, " ")))
	assert.Equal(t, apperror.CodeNotFound, errorCode(t, deps.col.Delete(ctx, "NV999")))

	_, _ = deps.col.GetByID(ctx, "NV001")
	assert.NoError(t, deps.col.Delete(ctx, "NV001"))
	assert.False(t, deps.cache.Has("employees:NV001"))
	assert.Equal(t, 0, deps.store.Len("employeeList"))
}

func TestCollection_Upsert(t *testing.T) {
	ctx := context.Background()
	cfg := records.Config{
		Kind:       "payrolls",
		Collection: "payroll",
		Label:      "Payroll record",
	}
	deps := setupCollection(t, cfg)

	t.Run("repeated saves converge to one document", func(t *testing.T) {
		_, err := deps.col.Upsert(ctx, "NV001_2024-01", records.Record{"baseSalary": 100, "bonus": 5})
		assert.NoError(t, err)
		_, err = deps.col.Upsert(ctx, "NV001_2024-01", records.Record{"baseSalary": 120})
		assert.NoError(t, err)

		assert.Equal(t, 1, deps.store.Len("payroll"))
		snap, _ := deps.store.Snapshot("payroll", "NV001_2024-01")
		assert.Equal(t, 120, snap["baseSalary"])
		assert.Equal(t, 5, snap["bonus"], "merge keeps fields absent from the new payload")
	})

	t.Run("invalidates collection snapshot", func(t *testing.T) {
		_, _ = deps.col.GetAll(ctx)
		assert.True(t, deps.cache.Has("all_payrolls"))

		_, err := deps.col.Upsert(ctx, "NV002_2024-01", records.Record{"baseSalary": 90})
		assert.NoError(t, err)
		assert.False(t, deps.cache.Has("all_payrolls"))
	})
}

func TestCollection_QueryRange(t *testing.T) {
	ctx := context.Background()
	cfg := records.Config{
		Kind:          "attendance",
		Collection:    "attendance",
		Label:         "Attendance record",
		DateFields:    []string{"date"},
		RangeField:    "date",
		RangeEndOfDay: true,
	}
	deps := setupCollection(t, cfg)

	for i, day := range []string{"2024-01-01", "2024-01-02", "2024-02-01"} {
		rec := records.Normalize(records.Record{"date": day, "workerId": "NV001"}, cfg.DateFields)
		deps.store.Seed("attendance", fmt.Sprintf("NV001_%s", day), rec)
		_ = i
	}

	t.Run("invalid bounds rejected", func(t *testing.T) {
		_, err := deps.col.QueryRange(ctx, "01/01/2024", "2024-01-02")
		assert.Equal(t, apperror.CodeValidation, errorCode(t, err))
	})

	t.Run("inclusive bounds, end of day upper bound", func(t *testing.T) {
		out, err := deps.col.QueryRange(ctx, "2024-01-01", "2024-01-02")
		assert.NoError(t, err)
		assert.Len(t, out, 2)
	})

	t.Run("always bypasses the cache", func(t *testing.T) {
		before := deps.store.RangeCalls("attendance")
		_, err := deps.col.QueryRange(ctx, "2024-01-01", "2024-01-31")
		assert.NoError(t, err)
		_, err = deps.col.QueryRange(ctx, "2024-01-01", "2024-01-31")
		assert.NoError(t, err)
		assert.Equal(t, before+2, deps.store.RangeCalls("attendance"),
			"identical bounds must each issue a fresh store query")
	})
}

func TestCollection_SaveBatch(t *testing.T) {
	ctx := context.Background()
	cfg := records.Config{
		Kind:       "attendance",
		Collection: "attendance",
		Label:      "Attendance record",
		DateFields: []string{"date"},
	}
	deps := setupCollection(t, cfg)

	prep := func(rec records.Record) (string, records.Record, error) {
		workerID, _ := rec["workerId"].(string)
		if workerID == "" {
			return "", nil, errors.New("missing workerId in record")
		}
		return workerID + "_" + records.DayString(rec["date"]), rec, nil
	}

	t.Run("empty batch rejected", func(t *testing.T) {
		_, err := deps.col.SaveBatch(ctx, nil, prep)
		assert.Equal(t, apperror.CodeValidation, errorCode(t, err))
	})

	t.Run("partial failure is a normal outcome", func(t *testing.T) {
		_, _ = deps.col.GetAll(ctx)
		assert.True(t, deps.cache.Has("all_attendance"))

		res, err := deps.col.SaveBatch(ctx, []records.Record{
			{"workerId": "NV001", "date": "2024-01-01"},
			{"date": "2024-01-01"},
			{"workerId": "NV003", "date": "2024-01-01"},
		}, prep)

		assert.NoError(t, err, "batch reports success when it ran to completion")
		assert.Equal(t, 3, res.Total)
		assert.Equal(t, 2, res.SavedCount)
		assert.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], "workerId")

		assert.False(t, deps.cache.Has("all_attendance"))
		assert.Equal(t, 2, deps.store.Len("attendance"))
	})

	t.Run("store error on one item does not abort the rest", func(t *testing.T) {
		failing := setupCollection(t, cfg)
		failing.store.FailWrites = errors.New("unavailable")

		res, err := failing.col.SaveBatch(ctx, []records.Record{
			{"workerId": "NV001", "date": "2024-01-01"},
			{"workerId": "NV002", "date": "2024-01-01"},
		}, prep)

		assert.NoError(t, err)
		assert.Equal(t, 0, res.SavedCount)
		assert.Len(t, res.Errors, 2)
	})
}

func TestCollection_ContextLogger(t *testing.T) {
	deps := setupCollection(t, employeeConfig())

	core, logs := observer.New(zap.InfoLevel)
	scoped := zap.New(core).With(zap.String("request_id", "req-9"))
	ctx := contextutil.WithLogger(context.Background(), scoped)

	_, err := deps.col.Add(ctx, "NV001", records.Record{"fullName": "A"})
	assert.NoError(t, err)

	entries := logs.All()
	assert.NotEmpty(t, entries, "writes log through the logger carried in ctx")
	last := entries[len(entries)-1]
	assert.Equal(t, "added", last.Message)
	assert.Equal(t, "req-9", last.ContextMap()["request_id"])
}
