// Package store persists per-project position overrides for the layout
// pipeline.
//
// The layout core is a pure function; manual node drags survive re-layouts
// only because the caller hands the previously saved positions back in as
// overrides. This package defines that seam as an explicit, injected
// key-value store with get/set/clear semantics, with implementations for
// different deployments:
//   - memory: in-process storage for development and testing
//   - file: JSON files under a directory, for the CLI
//   - redis: multi-instance deployments
//   - mongo: document-store deployments
//   - null: persistence disabled
package store

import (
	"context"
	"errors"

	"github.com/archmap-dev/archmap/pkg/layout"
)

// ErrUnavailable is returned when a backend cannot be reached.
var ErrUnavailable = errors.New("position store unavailable")

// PositionStore persists componentId → position maps keyed by project.
//
// Get returns an empty (possibly nil) map when the project has no saved
// positions; absence is not an error. Implementations must be safe for
// concurrent use.
type PositionStore interface {
	// Get loads the saved positions of a project.
	Get(ctx context.Context, project string) (layout.PositionMap, error)

	// Set replaces the saved positions of a project wholesale.
	Set(ctx context.Context, project string, positions layout.PositionMap) error

	// Clear discards the saved positions of a project. Clearing a project
	// with no saved positions is not an error.
	Clear(ctx context.Context, project string) error

	// Close releases backend resources.
	Close() error
}
