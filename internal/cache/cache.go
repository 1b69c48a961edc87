package cache

import (
	"time"

	"github.com/viccon/sturdyc"
)

// SnapshotTTL is how long collection and per-entity snapshots stay valid.
// Every cached entry shares this TTL; there is no second TTL class.
const SnapshotTTL = 300 * time.Second

// Sizing follows the bounded collection counts of this system: five
// collections plus one entry per employee id, so capacity is generous.
const (
	defaultCapacity           = 10_000
	defaultNumShards          = 64
	defaultEvictionPercentage = 10
)

// Cache is the process-local snapshot cache shared by every repository.
// It is constructed once and injected; repositories never reach for a
// global instance. Expired entries are treated as absent, and Get is
// atomic with respect to expiration, so Has followed by Get can never
// disagree within one access.
type Cache interface {
	Has(key string) bool
	Get(key string) (any, bool)
	Set(key string, value any)
	Invalidate(key string)
}

type snapshotCache struct {
	client *sturdyc.Client[any]
}

// New builds a Cache whose entries expire after ttl.
func New(ttl time.Duration) Cache {
	return &snapshotCache{
		client: sturdyc.New[any](
			defaultCapacity,
			defaultNumShards,
			ttl,
			defaultEvictionPercentage,
		),
	}
}

func (c *snapshotCache) Has(key string) bool {
	_, ok := c.client.Get(key)
	return ok
}

func (c *snapshotCache) Get(key string) (any, bool) {
	return c.client.Get(key)
}

func (c *snapshotCache) Set(key string, value any) {
	c.client.Set(key, value)
}

// Invalidate removes the key unconditionally. Invalidating an absent key
// is a no-op, not an error.
func (c *snapshotCache) Invalidate(key string) {
	c.client.Delete(key)
}
