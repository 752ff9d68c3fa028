package router

import (
	"regexp"
	"strings"
	"sync"

	"github.com/hupe1980/payrouter/core"
)

const (
	defaultCacheCapacity = 100
	// cacheKeyMaxLen bounds the normalized key length.
	cacheKeyMaxLen = 100
)

var (
	nonWordRe    = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// cacheKey normalizes a query for cache lookup: lowercase, punctuation
// stripped, whitespace collapsed, truncated to a fixed number of
// characters. Queries differing only in casing or punctuation share a
// decision.
func cacheKey(query string) string {
	key := strings.ToLower(query)
	key = nonWordRe.ReplaceAllString(key, "")
	key = whitespaceRe.ReplaceAllString(key, " ")
	key = strings.TrimSpace(key)
	if runes := []rune(key); len(runes) > cacheKeyMaxLen {
		key = string(runes[:cacheKeyMaxLen])
	}
	return key
}

// decisionCache is a bounded insertion-ordered cache. When full it evicts
// the oldest fifth in one sweep so steady-state inserts stay cheap.
type decisionCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]core.RoutingDecision
	order    []string
}

func newDecisionCache(capacity int) *decisionCache {
	if capacity <= 0 {
		capacity = defaultCacheCapacity
	}
	return &decisionCache{
		capacity: capacity,
		entries:  make(map[string]core.RoutingDecision, capacity),
	}
}

func (c *decisionCache) get(key string) (core.RoutingDecision, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.entries[key]
	if !ok {
		return core.RoutingDecision{}, false
	}
	return d.Clone(), true
}

func (c *decisionCache) put(key string, d core.RoutingDecision) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = d.Clone()
		return
	}

	if len(c.entries) >= c.capacity {
		evict := c.capacity / 5
		if evict < 1 {
			evict = 1
		}
		for _, old := range c.order[:evict] {
			delete(c.entries, old)
		}
		c.order = c.order[evict:]
	}

	c.entries[key] = d.Clone()
	c.order = append(c.order, key)
}

func (c *decisionCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
