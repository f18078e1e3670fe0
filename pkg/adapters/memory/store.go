package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/exprgen/pkg/domain"
)

// Store implements ports.DatasetStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]map[domain.Set][]domain.Row
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]map[domain.Set][]domain.Row),
	}
}

// Save persists a copy of rows in memory.
func (s *Store) Save(ctx context.Context, runID string, set domain.Set, rows []domain.Row) error {
	copied := make([]domain.Row, len(rows))
	copy(copied, rows)

	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.data[runID]
	if !ok {
		run = make(map[domain.Set][]domain.Row)
		s.data[runID] = run
	}
	run[set] = copied
	return nil
}

// Load retrieves a copy of the rows so callers can't mutate the store.
func (s *Store) Load(ctx context.Context, runID string, set domain.Set) ([]domain.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, ok := s.data[runID][set]
	if !ok {
		return nil, domain.ErrDatasetNotFound
	}
	ret := make([]domain.Row, len(rows))
	copy(ret, rows)
	return ret, nil
}

// Delete removes every set of a run.
func (s *Store) Delete(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, runID)
	return nil
}

// List returns stored run IDs in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]string, 0, len(s.data))
	for id := range s.data {
		runs = append(runs, id)
	}
	sort.Strings(runs)
	return runs, nil
}
