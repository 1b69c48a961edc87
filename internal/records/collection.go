package records

import (
	"context"
	"strings"
	"time"

	"github.com/leanh1541989-hash/taphoa39/internal/cache"
	"github.com/leanh1541989-hash/taphoa39/internal/docstore"
	"github.com/leanh1541989-hash/taphoa39/internal/shared/apperror"
	"github.com/leanh1541989-hash/taphoa39/internal/shared/contextutil"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Config describes one record kind.
type Config struct {
	// Kind is the cache-key segment ("employees" -> "all_employees",
	// "employees:<id>"). Each kind owns its own namespace; no two kinds
	// share cache keys.
	Kind string
	// Collection is the backing store collection name.
	Collection string
	// Label is the human name used in error messages ("Employee").
	Label string
	// DateFields are parsed into temporal values on every write.
	DateFields []string
	// RangeField is the timestamp field range queries filter on.
	RangeField string
	// RangeEndOfDay widens the upper bound to 23:59:59 of that day so a
	// same-day range is inclusive of the whole day.
	RangeEndOfDay bool
}

// Collection owns read/write access to one logical collection. It
// composes the field normalizer, the shared snapshot cache and the store
// driver. Writes invalidate before returning, so a successful write is
// never followed by a stale cached read; two concurrent writers can
// still interleave with a reader repopulating the cache, which is the
// documented best-effort (eventual, not linearizable) model.
type Collection struct {
	store  docstore.Store
	cache  cache.Cache
	cfg    Config
	sf     singleflight.Group
	logger *zap.Logger
}

func NewCollection(store docstore.Store, c cache.Cache, cfg Config, logger ...*zap.Logger) *Collection {
	l := zap.L().Named("records." + cfg.Kind)
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("records." + cfg.Kind)
	}
	return &Collection{
		store:  store,
		cache:  c,
		cfg:    cfg,
		logger: l,
	}
}

func (c *Collection) Kind() string { return c.cfg.Kind }

// log prefers the request-scoped logger carried in ctx (it already has
// the request id attached) over the collection's own.
func (c *Collection) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, c.logger)
}

func (c *Collection) AllKey() string { return "all_" + c.cfg.Kind }

func (c *Collection) EntryKey(id string) string { return c.cfg.Kind + ":" + id }

// GetAll returns the full collection snapshot, read through the cache.
// A hit touches the store zero times. Concurrent misses are coalesced
// into a single scan. Ordering is whatever the store enumeration yields.
func (c *Collection) GetAll(ctx context.Context) ([]Record, error) {
	if v, ok := c.cache.Get(c.AllKey()); ok {
		return v.([]Record), nil
	}

	v, err, _ := c.sf.Do(c.AllKey(), func() (any, error) {
		docs, err := c.store.StreamCollection(ctx, c.cfg.Collection)
		if err != nil {
			c.log(ctx).Error("collection scan failed", zap.Error(err))
			return nil, apperror.Store(err)
		}

		out := make([]Record, 0, len(docs))
		for _, d := range docs {
			rec := d.Data
			rec["id"] = d.ID
			out = append(out, rec)
		}

		c.cache.Set(c.AllKey(), out)
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Record), nil
}

// GetByID returns one entity snapshot. A blank id reads as not found,
// not as a validation failure. "Not found" results are never cached;
// only existing-entity snapshots are.
func (c *Collection) GetByID(ctx context.Context, id string) (Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.NotFound(c.cfg.Label + " not found")
	}

	key := c.EntryKey(id)
	if v, ok := c.cache.Get(key); ok {
		return v.(Record), nil
	}

	data, found, err := c.store.GetDocument(ctx, c.cfg.Collection, id)
	if err != nil {
		c.log(ctx).Error("get document failed", zap.String("id", id), zap.Error(err))
		return nil, apperror.Store(err)
	}
	if !found {
		return nil, apperror.NotFound(c.cfg.Label + " not found")
	}

	data["id"] = id
	c.cache.Set(key, Record(data))
	return data, nil
}

// Add creates the document at id and fails with a duplicate error if it
// already exists. Create never overwrites.
func (c *Collection) Add(ctx context.Context, id string, rec Record) (Record, error) {
	_, exists, err := c.store.GetDocument(ctx, c.cfg.Collection, id)
	if err != nil {
		return nil, apperror.Store(err)
	}
	if exists {
		c.log(ctx).Warn("create collision", zap.String("id", id))
		return nil, apperror.Duplicate(c.cfg.Label + " with this identifier already exists")
	}

	normalized := Normalize(rec, c.cfg.DateFields)
	if err := c.store.SetDocument(ctx, c.cfg.Collection, id, normalized, false); err != nil {
		c.log(ctx).Error("add persist failed", zap.String("id", id), zap.Error(err))
		return nil, apperror.Store(err)
	}

	c.invalidate(id)
	c.log(ctx).Info("added", zap.String("id", id))

	normalized["id"] = id
	return normalized, nil
}

// Update applies a partial merge-update: fields absent from updates stay
// untouched in storage. It never creates implicitly.
func (c *Collection) Update(ctx context.Context, id string, updates Record) (Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.RequiredField("id")
	}
	if len(updates) == 0 {
		return nil, apperror.Validation("updates must be a non-empty object")
	}

	_, exists, err := c.store.GetDocument(ctx, c.cfg.Collection, id)
	if err != nil {
		return nil, apperror.Store(err)
	}
	if !exists {
		return nil, apperror.NotFound(c.cfg.Label + " not found")
	}

	normalized := Normalize(updates, c.cfg.DateFields)
	if err := c.store.UpdateDocument(ctx, c.cfg.Collection, id, normalized); err != nil {
		c.log(ctx).Error("update persist failed", zap.String("id", id), zap.Error(err))
		return nil, apperror.Store(err)
	}

	c.invalidate(id)
	c.log(ctx).Info("updated", zap.String("id", id))
	return normalized, nil
}

func (c *Collection) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.RequiredField("id")
	}

	_, exists, err := c.store.GetDocument(ctx, c.cfg.Collection, id)
	if err != nil {
		return apperror.Store(err)
	}
	if !exists {
		return apperror.NotFound(c.cfg.Label + " not found")
	}

	if err := c.store.DeleteDocument(ctx, c.cfg.Collection, id); err != nil {
		c.log(ctx).Error("delete failed", zap.String("id", id), zap.Error(err))
		return apperror.Store(err)
	}

	c.invalidate(id)
	c.log(ctx).Info("deleted", zap.String("id", id))
	return nil
}

// Upsert merge-writes the document at id: fields present overwrite,
// fields absent are left untouched if the document already exists.
// Only the collection snapshot is invalidated; upsert-keyed kinds are
// never read by single-id lookup through this layer.
func (c *Collection) Upsert(ctx context.Context, id string, rec Record) (Record, error) {
	normalized, err := c.mergeWrite(ctx, id, rec)
	if err != nil {
		return nil, err
	}

	c.cache.Invalidate(c.AllKey())
	c.log(ctx).Info("upserted", zap.String("id", id))

	normalized["id"] = id
	return normalized, nil
}

// Append writes a new document under a store-generated identifier. Used
// by kinds without a natural key; every save creates a new document.
func (c *Collection) Append(ctx context.Context, rec Record) (Record, error) {
	id := c.store.NewGeneratedID(c.cfg.Collection)

	normalized := Normalize(rec, c.cfg.DateFields)
	if err := c.store.SetDocument(ctx, c.cfg.Collection, id, normalized, false); err != nil {
		c.log(ctx).Error("append persist failed", zap.Error(err))
		return nil, apperror.Store(err)
	}

	c.cache.Invalidate(c.AllKey())
	c.log(ctx).Info("appended", zap.String("id", id))

	normalized["id"] = id
	return normalized, nil
}

// QueryRange filters on the configured timestamp field with inclusive
// bounds. Filtered result sets are never memoized: the space of ranges
// is unbounded and caching them would never hit, so every call issues a
// fresh store query.
func (c *Collection) QueryRange(ctx context.Context, fromDate, toDate string) ([]Record, error) {
	from, err := time.Parse(DayLayout, fromDate)
	if err != nil {
		return nil, apperror.Validation("from_date must be a YYYY-MM-DD date")
	}
	to, err := time.Parse(DayLayout, toDate)
	if err != nil {
		return nil, apperror.Validation("to_date must be a YYYY-MM-DD date")
	}
	if c.cfg.RangeEndOfDay {
		// last instant of the day, so a same-day upper bound covers it
		to = to.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	}

	docs, err := c.store.QueryRange(ctx, c.cfg.Collection, c.cfg.RangeField, from, to)
	if err != nil {
		c.log(ctx).Error("range query failed", zap.Error(err))
		return nil, apperror.Store(err)
	}
	return attachIDs(docs), nil
}

// QueryEqual filters on field equality, bypassing the cache like every
// filtered read.
func (c *Collection) QueryEqual(ctx context.Context, field string, value any) ([]Record, error) {
	docs, err := c.store.QueryEqual(ctx, c.cfg.Collection, field, value)
	if err != nil {
		c.log(ctx).Error("equality query failed", zap.String("field", field), zap.Error(err))
		return nil, apperror.Store(err)
	}
	return attachIDs(docs), nil
}

// mergeWrite is the shared upsert write path. It does not invalidate, so
// batch writes can defer the single trailing invalidation.
func (c *Collection) mergeWrite(ctx context.Context, id string, rec Record) (Record, error) {
	normalized := Normalize(rec, c.cfg.DateFields)
	if err := c.store.SetDocument(ctx, c.cfg.Collection, id, normalized, true); err != nil {
		c.log(ctx).Error("merge write failed", zap.String("id", id), zap.Error(err))
		return nil, apperror.Store(err)
	}
	return normalized, nil
}

func (c *Collection) invalidate(id string) {
	c.cache.Invalidate(c.AllKey())
	c.cache.Invalidate(c.EntryKey(id))
}

func attachIDs(docs []docstore.Document) []Record {
	out := make([]Record, 0, len(docs))
	for _, d := range docs {
		rec := d.Data
		rec["id"] = d.ID
		out = append(out, rec)
	}
	return out
}
