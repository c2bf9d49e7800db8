package store

import (
	"context"
	"maps"
	"sync"

	"github.com/archmap-dev/archmap/pkg/layout"
)

// MemoryStore is an in-process position store for development and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string]layout.PositionMap
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{projects: make(map[string]layout.PositionMap)}
}

// Get loads the saved positions of a project. The returned map is a copy.
func (s *MemoryStore) Get(ctx context.Context, project string) (layout.PositionMap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	positions, ok := s.projects[project]
	if !ok {
		return nil, nil
	}
	return maps.Clone(positions), nil
}

// Set replaces the saved positions of a project.
func (s *MemoryStore) Set(ctx context.Context, project string, positions layout.PositionMap) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[project] = maps.Clone(positions)
	return nil
}

// Clear discards the saved positions of a project.
func (s *MemoryStore) Clear(ctx context.Context, project string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.projects, project)
	return nil
}

// Close does nothing.
func (s *MemoryStore) Close() error { return nil }

var _ PositionStore = (*MemoryStore)(nil)
