// Package store holds the normalized working set for the session.
package store

import (
	"sync"

	"claydir/internal/models"
)

// Store is the single source of truth queried by filtering and rendering.
// A load replaces the whole set; there is no partial update path. Reads are
// concurrent (HTTP handlers), writes happen once per ingestion run.
type Store struct {
	mu      sync.RWMutex
	records []models.BusinessRecord
	bySlug  map[string]int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		bySlug: make(map[string]int),
	}
}

// Load replaces the working set with the given records, preserving their
// order. Duplicate names are not deduplicated; slug lookup resolves to the
// first record in insertion order.
func (s *Store) Load(records []models.BusinessRecord) {
	snapshot := make([]models.BusinessRecord, len(records))
	copy(snapshot, records)

	bySlug := make(map[string]int, len(snapshot))

	for i, rec := range snapshot {
		if _, seen := bySlug[rec.Slug]; !seen {
			bySlug[rec.Slug] = i
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = snapshot
	s.bySlug = bySlug
}

// All returns the working set in insertion order. The returned slice must
// not be mutated by callers.
func (s *Store) All() []models.BusinessRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.records
}

// Len returns the number of loaded records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

// FindBySlug looks up a record by its canonical identity. Returns false
// when no record matches.
func (s *Store) FindBySlug(slug string) (models.BusinessRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.bySlug[slug]
	if !ok {
		return models.BusinessRecord{}, false
	}

	return s.records[idx], true
}
