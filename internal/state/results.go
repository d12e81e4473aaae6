package state

import "sync"

type resultKey struct {
	url    string
	status int
	size   int64
}

// ResultSet deduplicates findings by (URL, status, size). The same path
// can surface through several generator tiers; only the first occurrence
// of a given response identity is reported.
type ResultSet struct {
	mu   sync.Mutex
	seen map[resultKey]struct{}
}

// NewResultSet creates an empty result set.
func NewResultSet() *ResultSet {
	return &ResultSet{seen: make(map[resultKey]struct{})}
}

// Add records a finding identity and reports whether it was new.
func (r *ResultSet) Add(url string, status int, size int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := resultKey{url: url, status: status, size: size}
	if _, exists := r.seen[key]; exists {
		return false
	}
	r.seen[key] = struct{}{}
	return true
}

// Contains checks whether a finding identity was already recorded.
func (r *ResultSet) Contains(url string, status int, size int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.seen[resultKey{url: url, status: status, size: size}]
	return exists
}

// Count returns the number of distinct findings recorded.
func (r *ResultSet) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seen)
}
