package store

import (
	"context"

	"github.com/archmap-dev/archmap/pkg/layout"
)

// NullStore is a no-op position store. Every layout starts from freshly
// computed geometry; nothing is ever persisted.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() PositionStore {
	return &NullStore{}
}

// Get always returns no saved positions.
func (NullStore) Get(ctx context.Context, project string) (layout.PositionMap, error) {
	return nil, nil
}

// Set does nothing.
func (NullStore) Set(ctx context.Context, project string, positions layout.PositionMap) error {
	return nil
}

// Clear does nothing.
func (NullStore) Clear(ctx context.Context, project string) error { return nil }

// Close does nothing.
func (NullStore) Close() error { return nil }

var _ PositionStore = NullStore{}
