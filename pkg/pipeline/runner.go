package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/archmap-dev/archmap/pkg/component"
	"github.com/archmap-dev/archmap/pkg/flow"
	"github.com/archmap-dev/archmap/pkg/layout"
	"github.com/archmap-dev/archmap/pkg/observability"
	"github.com/archmap-dev/archmap/pkg/store"
)

// Runner executes layout runs against an injected position store.
//
// The Runner is stateless apart from the store and logger; it holds no
// pipeline results. Multiple goroutines can safely share one Runner with
// different options.
type Runner struct {
	Store  store.PositionStore
	Logger *log.Logger
}

// NewRunner creates a runner. A nil store disables persistence (NullStore);
// a nil logger falls back to the default logger.
func NewRunner(s store.PositionStore, logger *log.Logger) *Runner {
	if s == nil {
		s = store.NewNullStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Store: s, Logger: logger}
}

// Execute runs the complete group → layout → synthesize pipeline.
//
// Saved position overrides are loaded first (or cleared, when opts.Reset is
// set) and applied after all geometry is finalized, so manual drags beat
// computed coordinates. Unless opts.SkipSave is set, the resulting
// positions map is written back to the store for the next invocation.
func (r *Runner) Execute(ctx context.Context, components []component.Component, opts Options) (*Result, error) {
	opts.normalize()
	logger := r.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	}

	observability.Layout().OnLayoutStart(ctx, opts.Project, len(components))
	start := time.Now()

	overrides, err := r.loadOverrides(ctx, opts)
	if err != nil {
		observability.Layout().OnLayoutComplete(ctx, opts.Project, 0, 0, time.Since(start), err)
		return nil, err
	}

	result := &Result{Overrides: overrides}

	layoutStart := time.Now()
	layouts := layout.Layout(components, opts.Layout)
	nodes := layout.Nodes(layouts)
	layout.ApplyOverrides(nodes, overrides)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.ComponentCount = len(components)
	result.Stats.ClusterCount = len(layouts)

	logger.Info("computed layout",
		"project", opts.Project,
		"components", len(components),
		"clusters", len(layouts),
		"duration", result.Stats.LayoutTime)

	synthStart := time.Now()
	result.Graph = flow.Build(nodes, opts.Now)
	result.Stats.SynthesizeTime = time.Since(synthStart)
	result.Stats.NodeCount = len(result.Graph.Nodes)
	result.Stats.EdgeCount = len(result.Graph.Edges)

	logger.Info("synthesized graph",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.SynthesizeTime)

	if !opts.SkipSave {
		if err := r.SavePositions(ctx, opts.Project, result.Graph.Positions); err != nil {
			observability.Layout().OnLayoutComplete(ctx, opts.Project,
				result.Stats.NodeCount, result.Stats.EdgeCount, time.Since(start), err)
			return nil, err
		}
	}

	observability.Layout().OnLayoutComplete(ctx, opts.Project,
		result.Stats.NodeCount, result.Stats.EdgeCount, time.Since(start), nil)
	return result, nil
}

// SavePositions persists a positions map for a project.
func (r *Runner) SavePositions(ctx context.Context, project string, positions layout.PositionMap) error {
	err := r.Store.Set(ctx, project, positions)
	observability.Store().OnPositionsSave(ctx, project, len(positions), err)
	if err != nil {
		return fmt.Errorf("save positions: %w", err)
	}
	return nil
}

// loadOverrides fetches saved positions, or clears them on a reset run.
func (r *Runner) loadOverrides(ctx context.Context, opts Options) (layout.PositionMap, error) {
	if opts.Reset {
		err := r.Store.Clear(ctx, opts.Project)
		observability.Store().OnPositionsClear(ctx, opts.Project, err)
		if err != nil {
			return nil, fmt.Errorf("clear positions: %w", err)
		}
		return nil, nil
	}

	overrides, err := r.Store.Get(ctx, opts.Project)
	observability.Store().OnPositionsLoad(ctx, opts.Project, len(overrides), err)
	if err != nil {
		return nil, fmt.Errorf("load positions: %w", err)
	}
	return overrides, nil
}
