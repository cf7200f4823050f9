package httpapi

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"stakeScope/internal/model"
)

type cacheEntry struct {
	value    model.Snapshot
	storedAt time.Time
}

// snapshotCache is a size-bounded LRU of snapshots keyed by pool address.
// Entries older than ttl are treated as missing.
type snapshotCache struct {
	ttl   time.Duration
	now   func() time.Time
	mu    sync.Mutex
	store *lru.Cache[string, cacheEntry]
}

func newSnapshotCache(maxEntries int, ttl time.Duration) *snapshotCache {
	if maxEntries <= 0 || ttl <= 0 {
		return nil
	}
	store, _ := lru.New[string, cacheEntry](maxEntries)
	return &snapshotCache{
		ttl:   ttl,
		now:   time.Now,
		store: store,
	}
}

func (c *snapshotCache) Get(key string) (model.Snapshot, bool) {
	if c == nil || key == "" {
		return model.Snapshot{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.store.Get(key)
	if !ok {
		return model.Snapshot{}, false
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		c.store.Remove(key)
		return model.Snapshot{}, false
	}
	return entry.value, true
}

func (c *snapshotCache) Add(key string, value model.Snapshot) {
	if c == nil || key == "" {
		return
	}
	c.mu.Lock()
	c.store.Add(key, cacheEntry{value: value, storedAt: c.now()})
	c.mu.Unlock()
}
