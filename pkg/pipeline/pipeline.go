// Package pipeline orchestrates the full layout run for archmap.
//
// This package implements the group → layout → synthesize pipeline shared
// by the CLI and the HTTP API. Centralizing it keeps the two entry points
// consistent: both read position overrides from the injected store, run the
// pure layout computation, and persist the resulting positions map.
//
// # Architecture
//
// A run has three stages:
//
//  1. Group: partition components into feature clusters
//  2. Layout: tier assignment, intra-tier sequencing, cluster composition
//  3. Synthesize: build renderer-facing nodes and deduplicated styled edges
//
// The stages are pure; all persistence flows through the injected
// [store.PositionStore].
//
// # Usage
//
//	runner := pipeline.NewRunner(positionStore, logger)
//	result, err := runner.Execute(ctx, components, pipeline.Options{
//	    Project: "my-project",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	graph := result.Graph
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/archmap-dev/archmap/pkg/flow"
	"github.com/archmap-dev/archmap/pkg/layout"
)

// DefaultProject is the store key used when no project name is given.
const DefaultProject = "default"

// Options configures one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Project keys the position store entry for this layout.
	Project string `json:"project,omitempty"`

	// Layout tunes the geometry. Zero fields use the defaults.
	Layout layout.Options `json:"layout,omitempty"`

	// Reset discards saved position overrides before the run
	// (the "auto-layout" request).
	Reset bool `json:"reset,omitempty"`

	// SkipSave leaves the position store untouched after the run.
	SkipSave bool `json:"skip_save,omitempty"`

	// Now overrides the instant used for derived flags. Zero means
	// time.Now at execution. Not serialized; used by tests.
	Now time.Time `json:"-"`

	// Logger receives progress events. Not serialized.
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the positioned node/edge output.
	Graph flow.Graph

	// Overrides is the position override map that was applied, if any.
	Overrides layout.PositionMap

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ComponentCount int
	ClusterCount   int
	NodeCount      int
	EdgeCount      int
	LayoutTime     time.Duration
	SynthesizeTime time.Duration
}

// normalize applies defaults in place.
func (o *Options) normalize() {
	if o.Project == "" {
		o.Project = DefaultProject
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
}
