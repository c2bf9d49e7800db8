package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/archmap-dev/archmap/pkg/component"
	"github.com/archmap-dev/archmap/pkg/flow"
	"github.com/archmap-dev/archmap/pkg/pipeline"
)

// layoutCommand creates the layout command for computing graph layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		project string
		reset   bool
		noSave  bool
	)

	cmd := &cobra.Command{
		Use:   "layout [components.json]",
		Short: "Compute a positioned graph from a component set",
		Long: `Compute a positioned graph from a component set.

The layout command takes a components.json file (an array of components with
relationships) and computes the tiered, clustered layout. The output is a
layout.json file with positioned nodes, styled edges, and the positions map.

Saved position overrides for the project are applied on top of the computed
geometry; pass --reset to discard them and re-run the automatic layout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, project, reset, noSave)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVarP(&project, "project", "p", "", "project key for the position store (default: input filename)")
	cmd.Flags().BoolVar(&reset, "reset", false, "discard saved position overrides before laying out")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not write positions back to the store")

	return cmd
}

// runLayout loads components, runs the pipeline, and writes the layout file.
func (c *CLI) runLayout(ctx context.Context, input, output, project string, reset, noSave bool) error {
	comps, err := component.ReadFile(input)
	if err != nil {
		return err
	}

	if project == "" {
		project = projectNameFromPath(input)
	}

	cfg, err := c.Config()
	if err != nil {
		return err
	}

	st, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	prog := newProgress(c.Logger)
	runner := pipeline.NewRunner(st, c.Logger)
	result, err := runner.Execute(ctx, comps, pipeline.Options{
		Project:  project,
		Layout:   cfg.Layout,
		Reset:    reset,
		SkipSave: noSave,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Laid out %d components", len(comps)))

	data, err := flow.MarshalGraph(result.Graph)
	if err != nil {
		return fmt.Errorf("marshal layout: %w", err)
	}

	if output == "" {
		output = strings.TrimSuffix(input, ".json") + ".layout.json"
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write layout %s: %w", output, err)
	}

	printSuccess("Layout written")
	printFile(output)
	printStats(result.Stats.ClusterCount, result.Stats.NodeCount, result.Stats.EdgeCount)
	return nil
}

// projectNameFromPath derives a store key from an input path: the base name
// without its extension.
func projectNameFromPath(path string) string {
	base := path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	if base == "" {
		return pipeline.DefaultProject
	}
	return base
}
