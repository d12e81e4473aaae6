// Package state tracks which URLs a scan has probed, deduplicates
// findings, and persists scan progress so interrupted scans can resume.
package state

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Deduplicator remembers probed URLs. A Bloom filter answers the common
// "never seen" case without touching the exact set.
type Deduplicator struct {
	mu     sync.RWMutex
	filter *bloom.BloomFilter
	exact  map[string]struct{}
	count  int
}

// NewDeduplicator sizes the Bloom filter for the expected number of
// candidate URLs. Deep scan levels generate tens of thousands per target.
func NewDeduplicator(estimatedItems int) *Deduplicator {
	if estimatedItems < 1000 {
		estimatedItems = 1000
	}

	return &Deduplicator{
		filter: bloom.NewWithEstimates(uint(estimatedItems), 0.001),
		exact:  make(map[string]struct{}),
	}
}

// MarkProbed records a URL and reports whether it was new. Returning
// false means the scanner already probed it and should skip.
func (d *Deduplicator) MarkProbed(url string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.exact[url]; exists {
		return false
	}
	d.filter.AddString(url)
	d.exact[url] = struct{}{}
	d.count++
	return true
}

// HasProbed checks whether a URL was already probed.
func (d *Deduplicator) HasProbed(url string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.filter.TestString(url) {
		return false
	}
	_, exists := d.exact[url]
	return exists
}

// Count returns the number of unique URLs probed.
func (d *Deduplicator) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.count
}

// Snapshot returns all probed URLs, for persisting scan progress.
func (d *Deduplicator) Snapshot() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	urls := make([]string, 0, len(d.exact))
	for url := range d.exact {
		urls = append(urls, url)
	}
	return urls
}

// Restore seeds the deduplicator from a previous scan's snapshot.
func (d *Deduplicator) Restore(urls []string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, url := range urls {
		if _, exists := d.exact[url]; exists {
			continue
		}
		d.filter.AddString(url)
		d.exact[url] = struct{}{}
		d.count++
	}
}

// Reset clears all tracked URLs.
func (d *Deduplicator) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.filter.ClearAll()
	d.exact = make(map[string]struct{})
	d.count = 0
}
