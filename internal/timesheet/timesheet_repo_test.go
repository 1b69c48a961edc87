package timesheet_test

import (
	"context"
	"testing"
	"time"

	"github.com/leanh1541989-hash/taphoa39/internal/cache"
	"github.com/leanh1541989-hash/taphoa39/internal/docstore/docstoretest"
	"github.com/leanh1541989-hash/taphoa39/internal/records"
	"github.com/leanh1541989-hash/taphoa39/internal/timesheet"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestTimesheetRepository_Append(t *testing.T) {
	ctx := context.Background()
	store := docstoretest.New()
	repo := timesheet.NewRepository(store, cache.New(cache.SnapshotTTL), zap.NewNop())

	t.Run("every save creates a new document", func(t *testing.T) {
		first, err := repo.Append(ctx, records.Record{"month": "2024-01"})
		assert.NoError(t, err)
		second, err := repo.Append(ctx, records.Record{"month": "2024-01"})
		assert.NoError(t, err)

		assert.NotEmpty(t, first["id"])
		assert.NotEqual(t, first["id"], second["id"])
		assert.Equal(t, 2, store.Len(timesheet.CollectionName))
	})

	t.Run("creation timestamp is stamped", func(t *testing.T) {
		rec, err := repo.Append(ctx, records.Record{"month": "2024-02"})
		assert.NoError(t, err)

		_, ok := rec["createdAt"].(time.Time)
		assert.True(t, ok)
	})

	t.Run("append invalidates the collection snapshot", func(t *testing.T) {
		before, err := repo.GetAll(ctx)
		assert.NoError(t, err)

		_, err = repo.Append(ctx, records.Record{"month": "2024-03"})
		assert.NoError(t, err)

		after, err := repo.GetAll(ctx)
		assert.NoError(t, err)
		assert.Len(t, after, len(before)+1)
	})
}
