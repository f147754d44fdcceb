package cache

import (
	"sync"
	"time"
)

// Cache is a thread-safe in-process key-value store with TTL and tag
// invalidation. Used as the fallback metrics cache when Redis is not
// configured.
type Cache struct {
	m sync.Map
	// tagIndex maps tag string to a set of keys
	tagIndex sync.Map // map[string]map[string]struct{}
}

var (
	once     sync.Once
	instance *Cache
)

func GetInstance() *Cache {
	once.Do(func() {
		instance = NewCache()
	})
	return instance
}

// NewCache creates a new Cache instance.
func NewCache() *Cache {
	return &Cache{}
}

// cacheItem holds a value and its expiration time.
type cacheItem struct {
	Value     interface{}
	ExpiresAt int64 // Unix nanoseconds; 0 means no expiration
}

// Set stores a value with an optional TTL (in seconds; 0 = no expiry)
// and optional tags for group invalidation.
func (c *Cache) Set(key string, value interface{}, ttl int64, tags []string) {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().Add(time.Duration(ttl) * time.Second).UnixNano()
	}
	c.m.Store(key, cacheItem{Value: value, ExpiresAt: expiresAt})
	for _, tag := range tags {
		keys, _ := c.tagIndex.LoadOrStore(tag, &sync.Map{})
		keys.(*sync.Map).Store(key, struct{}{})
	}
}

// Get returns (value, true) if the key is present and not expired.
func (c *Cache) Get(key string) (interface{}, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		return nil, false
	}
	item := v.(cacheItem)
	if item.ExpiresAt > 0 && time.Now().UnixNano() > item.ExpiresAt {
		c.m.Delete(key)
		return nil, false
	}
	return item.Value, true
}

// Delete removes a key from the cache.
func (c *Cache) Delete(key string) {
	c.m.Delete(key)
}

// InvalidateTag removes every key recorded under the tag.
func (c *Cache) InvalidateTag(tag string) {
	v, ok := c.tagIndex.Load(tag)
	if !ok {
		return
	}
	keys := v.(*sync.Map)
	keys.Range(func(key, _ interface{}) bool {
		c.m.Delete(key.(string))
		keys.Delete(key)
		return true
	})
}

// Flush drops all entries and tag mappings.
func (c *Cache) Flush() {
	c.m.Range(func(key, _ interface{}) bool {
		c.m.Delete(key)
		return true
	})
	c.tagIndex.Range(func(key, _ interface{}) bool {
		c.tagIndex.Delete(key)
		return true
	})
}
