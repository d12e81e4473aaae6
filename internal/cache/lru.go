// Package cache implements the response fingerprint cache.
//
// Servers that answer every missing path with the same templated page
// produce near-identical responses for whole families of candidate
// URLs. The cache remembers the verdict for a (path shape, status)
// fingerprint so later responses with the same shape skip the full
// classification pass.
package cache

import (
	"container/list"
	"strings"
	"sync"
)

// DefaultCapacity is the fingerprint cache size used when none is configured.
const DefaultCapacity = 512

// Fingerprint keys a cached verdict. PathShape is the candidate path
// with its basename reduced to a shape token so sibling candidates
// (backup.zip, backup.tar, site.zip) share entries when the server
// treats them alike.
type Fingerprint struct {
	PathShape string
	Status    int
}

// Verdict is the cached classification outcome for a fingerprint.
type Verdict struct {
	BaselineMatch bool   // response matched the target's not-found signature
	ContentHash   string // sample hash of the response that set the entry
	Size          int64
}

// LRU is a concurrency-safe fixed-capacity fingerprint cache.
type LRU struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	entries  map[Fingerprint]*list.Element

	hits   int64
	misses int64
}

type lruEntry struct {
	key     Fingerprint
	verdict Verdict
}

// NewLRU creates a cache holding at most capacity fingerprints. A
// non-positive capacity falls back to DefaultCapacity.
func NewLRU(capacity int) *LRU {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &LRU{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[Fingerprint]*list.Element, capacity),
	}
}

// Get returns the cached verdict for a fingerprint and refreshes its
// recency. The second return reports whether the entry was present.
func (c *LRU) Get(key Fingerprint) (Verdict, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		c.misses++
		return Verdict{}, false
	}
	c.hits++
	c.order.MoveToFront(elem)
	return elem.Value.(*lruEntry).verdict, true
}

// Put stores a verdict, evicting the least recently used entry when
// the cache is full.
func (c *LRU) Put(key Fingerprint, verdict Verdict) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		elem.Value.(*lruEntry).verdict = verdict
		c.order.MoveToFront(elem)
		return
	}

	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*lruEntry).key)
		}
	}

	c.entries[key] = c.order.PushFront(&lruEntry{key: key, verdict: verdict})
}

// Len returns the number of cached fingerprints.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns hit and miss counts since creation.
func (c *LRU) Stats() (hits, misses int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Clear drops all entries, keeping the configured capacity.
func (c *LRU) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.entries = make(map[Fingerprint]*list.Element, c.capacity)
}

// PathShape normalizes a candidate path for fingerprinting. The
// directory is kept as-is and the basename is reduced to a coarse
// token: its extension when present, otherwise "name". Query strings
// never reach the scanner so only the path participates.
func PathShape(path string) string {
	path = strings.TrimPrefix(path, "/")

	dir := ""
	base := path
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		dir = path[:idx+1]
		base = path[idx+1:]
	}

	token := "name"
	if dot := strings.LastIndex(base, "."); dot > 0 && dot < len(base)-1 {
		token = "*" + strings.ToLower(base[dot:])
	} else if strings.HasPrefix(base, ".") {
		token = strings.ToLower(base)
	}

	return "/" + dir + token
}
