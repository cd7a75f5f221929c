package common

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache keys for the navigation sidebar data. Both entries are derived from
// the articles table and are rebuildable at any time, so they are stored
// without expiry and replaced wholesale on recompute.
const (
	CacheKeyNavItems = "navitems"
	CacheKeyArchives = "archives"
)

type Cache struct {
	*cache.Cache
}

// NewCache returns a process-wide in-memory cache. A zero expiration time
// means entries live until explicitly evicted.
func NewCache(expirationTime, cleanupTime time.Duration) *Cache {
	return &Cache{cache.New(expirationTime, cleanupTime)}
}

func (c *Cache) Set(key string, value interface{}, expiration ...time.Duration) {
	if len(expiration) > 0 {
		c.Cache.Set(key, value, expiration[0])
		return
	}
	c.Cache.Set(key, value, cache.DefaultExpiration)
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.Cache.Get(key)
}

func (c *Cache) Flush() {
	c.Cache.Flush()
}
