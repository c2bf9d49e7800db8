package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/archmap-dev/archmap/pkg/flow"
	"github.com/archmap-dev/archmap/pkg/render"
)

// Output formats accepted by the render command.
const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
)

// renderCommand creates the render command for exporting layouts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Export a computed layout as DOT, SVG, or PNG",
		Long: `Export a computed layout as DOT, SVG, or PNG.

The render command takes a layout.json file (produced by 'layout') and
exports it for viewing. Feature clusters become dashed subgraph boxes;
edges keep their relation labels and colors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], format, output, detailed)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatSVG, "output format: dot, svg, png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include category, tier and flags in node labels")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input, format, output string, detailed bool) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read layout %s: %w", input, err)
	}
	graph, err := flow.UnmarshalGraph(data)
	if err != nil {
		return fmt.Errorf("parse layout %s: %w", input, err)
	}

	dot := render.ToDOT(graph, render.Options{Detailed: detailed})

	var out []byte
	switch format {
	case formatDOT:
		out = []byte(dot)
	case formatSVG:
		out, err = render.SVG(ctx, dot)
	case formatPNG:
		out, err = render.PNG(ctx, dot)
	default:
		return fmt.Errorf("invalid format: %q (must be one of: dot, svg, png)", format)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}

	if output == "" {
		output = strings.TrimSuffix(input, ".json") + "." + format
	}
	if err := os.WriteFile(output, out, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Rendered %s", format)
	printFile(output)
	return nil
}
