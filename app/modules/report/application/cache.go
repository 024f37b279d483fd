package reportservice

import "sync"

const defaultCacheEntries = 32

// reportCache keeps generated reports per window until the next invalidation.
// When full it starts over rather than tracking recency; the set of windows in use is small.
type reportCache struct {
	mu      sync.RWMutex
	max     int
	gen     uint64
	entries map[string]*ReportView
}

func newReportCache(max int) *reportCache {
	return &reportCache{max: max, entries: make(map[string]*ReportView)}
}

func (c *reportCache) get(key string) (*ReportView, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// generation changes on every clear. Take it before reading the store.
func (c *reportCache) generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// put stores v unless the cache was cleared after gen was taken. It reports whether v was kept.
func (c *reportCache) put(key string, v *ReportView, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	if len(c.entries) >= c.max {
		c.entries = make(map[string]*ReportView)
	}
	c.entries[key] = v
	return true
}

func (c *reportCache) clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.entries)
	c.gen++
	c.entries = make(map[string]*ReportView)
	return n
}
