package gateway

import (
	"sync"
	"time"

	"github.com/golang/groupcache/lru"
)

// responseCache holds recently decoded query results keyed by address and
// query kind, so a burst of requests for the same server (e.g. a browser
// polling /info every few seconds) doesn't each open a new UDP round trip.
// lru.Cache is not safe for concurrent use on its own, hence the mutex.
type responseCache struct {
	mu  sync.Mutex
	ttl time.Duration
	c   *lru.Cache
}

type cacheEntry struct {
	value     interface{}
	expiresAt time.Time
}

func newResponseCache(maxEntries int, ttl time.Duration) *responseCache {
	return &responseCache{
		ttl: ttl,
		c:   lru.New(maxEntries),
	}
}

func (rc *responseCache) get(key string) (interface{}, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	v, ok := rc.c.Get(key)
	if !ok {
		return nil, false
	}
	entry := v.(cacheEntry)
	if time.Now().After(entry.expiresAt) {
		rc.c.Remove(key)
		return nil, false
	}
	return entry.value, true
}

func (rc *responseCache) put(key string, value interface{}) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	rc.c.Add(key, cacheEntry{value: value, expiresAt: time.Now().Add(rc.ttl)})
}
