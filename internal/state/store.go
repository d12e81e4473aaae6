package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketScans = []byte("scans")

// Store persists scan state keyed by target URL, so one state file can
// track a multi-target run.
type Store interface {
	Save(state *ScanState) error
	Load(target string) (*ScanState, error)
	Close() error
}

// BoltStore implements Store using BoltDB.
type BoltStore struct {
	db   *bolt.DB
	path string
}

// NewBoltStore opens or creates a BoltDB-backed state store.
func NewBoltStore(path string) (*BoltStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{
		Timeout: 5 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open state file: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketScans)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &BoltStore{db: db, path: path}, nil
}

// Save persists the state under its target URL.
func (s *BoltStore) Save(state *ScanState) error {
	state.UpdatedAt = time.Now()

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketScans)
		if b == nil {
			return fmt.Errorf("bucket not found")
		}
		return b.Put([]byte(state.Target), data)
	})
}

// Load returns the saved state for a target, or nil if none exists.
func (s *BoltStore) Load(target string) (*ScanState, error) {
	var state ScanState
	var found bool

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketScans)
		if b == nil {
			return fmt.Errorf("bucket not found")
		}

		data := b.Get([]byte(target))
		if data == nil {
			return nil
		}

		found = true
		return json.Unmarshal(data, &state)
	})
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, nil
	}
	return &state, nil
}

// Targets lists all targets with saved state.
func (s *BoltStore) Targets() ([]string, error) {
	var targets []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketScans)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			targets = append(targets, string(k))
			return nil
		})
	})
	return targets, err
}

// Delete removes the saved state for a target.
func (s *BoltStore) Delete(target string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketScans)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(target))
	})
}

// Close closes the database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// MemoryStore implements Store in memory, for scans run without a
// state file and for tests.
type MemoryStore struct {
	states map[string]*ScanState
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]*ScanState)}
}

// Save stores the state in memory.
func (s *MemoryStore) Save(state *ScanState) error {
	state.UpdatedAt = time.Now()
	s.states[state.Target] = state
	return nil
}

// Load returns the stored state for a target, or nil.
func (s *MemoryStore) Load(target string) (*ScanState, error) {
	return s.states[target], nil
}

// Close is a no-op for MemoryStore.
func (s *MemoryStore) Close() error {
	return nil
}
