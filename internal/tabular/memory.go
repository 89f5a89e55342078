package tabular

import (
	"fmt"
	"sync"
)

// MemoryStore is an in-memory Store used by tests and ephemeral setups.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[Entity][]Row
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[Entity][]Row)}
}

func (s *MemoryStore) Read(entity Entity) ([]Row, error) {
	if !entity.Valid() {
		return nil, fmt.Errorf("unknown entity %q", entity)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, ok := s.data[entity]
	if !ok {
		return nil, nil
	}
	return copyRows(rows), nil
}

func (s *MemoryStore) Write(entity Entity, rows []Row) error {
	if !entity.Valid() {
		return fmt.Errorf("unknown entity %q", entity)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[entity] = copyRows(Normalize(entity, rows))
	return nil
}

func copyRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, row := range rows {
		dup := make(Row, len(row))
		for k, v := range row {
			dup[k] = v
		}
		out[i] = dup
	}
	return out
}
