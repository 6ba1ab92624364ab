package session

import (
	"sync"

	"datasense/domain/dataset"
)

// Store caches datasets in memory for the lifetime of a session. Each
// entry is immutable once stored; a new upload simply adds a new
// independent entry.
type Store struct {
	mu       sync.RWMutex
	datasets map[string]*dataset.Dataset
}

// NewStore creates an empty dataset store
func NewStore() *Store {
	return &Store{datasets: make(map[string]*dataset.Dataset)}
}

// Put caches a dataset by its ID
func (s *Store) Put(ds *dataset.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.datasets[ds.ID] = ds
}

// Get returns a cached dataset
func (s *Store) Get(id string) (*dataset.Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ds, ok := s.datasets[id]
	return ds, ok
}

// Delete discards a cached dataset
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.datasets, id)
}

// Len reports how many datasets are cached
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.datasets)
}
