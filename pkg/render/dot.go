// Package render exports positioned component graphs as Graphviz DOT and
// rasterizes them to SVG or PNG. Rendering is a convenience surface for the
// CLI; the authoritative output of the pipeline is the flow graph itself.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/archmap-dev/archmap/pkg/flow"
)

// Options configures DOT export.
type Options struct {
	// Detailed includes category, tier and flags in node labels.
	// When false, only the component title is shown.
	Detailed bool
}

// ToDOT converts a flow graph to Graphviz DOT. Feature clusters become DOT
// subgraph clusters; edges keep their relation labels and stroke colors.
// The result can be rasterized with [SVG] or [PNG].
func ToDOT(g flow.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph components {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=1.0;\n")
	buf.WriteString("  nodesep=0.5;\n")

	for i, cluster := range clusterOrder(g) {
		fmt.Fprintf(&buf, "\n  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", cluster)
		buf.WriteString("    style=dashed;\n")
		for _, n := range g.Nodes {
			if n.Data.Cluster != cluster {
				continue
			}
			label := fmtLabel(n, opts.Detailed)
			attrs := fmtAttrs(n, label)
			fmt.Fprintf(&buf, "    %q [%s];\n", n.ID, strings.Join(attrs, ", "))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q, color=%q];\n", e.Source, e.Target, e.Label, e.Style.Stroke)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// clusterOrder returns the distinct cluster names in node order.
func clusterOrder(g flow.Graph) []string {
	var order []string
	seen := make(map[string]bool)
	for _, n := range g.Nodes {
		if !seen[n.Data.Cluster] {
			seen[n.Data.Cluster] = true
			order = append(order, n.Data.Cluster)
		}
	}
	return order
}

func fmtLabel(n flow.Node, detailed bool) string {
	label := n.Data.Component.DisplayLabel()
	if !detailed {
		return label
	}

	parts := []string{
		fmt.Sprintf("category: %s", n.Data.Component.Category),
		fmt.Sprintf("tier: %d", n.Data.Tier),
	}
	if n.Data.Flags.Stale {
		parts = append(parts, "stale")
	}
	if n.Data.Flags.Incomplete {
		parts = append(parts, "incomplete")
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n flow.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.Type == flow.NodeTypeHeader {
		attrs = append(attrs, "style=\"rounded,filled,bold\"", "fillcolor=lightyellow")
	}
	return attrs
}

// SVG renders a DOT graph to SVG using Graphviz.
func SVG(ctx context.Context, dot string) ([]byte, error) {
	return rasterize(ctx, dot, graphviz.SVG)
}

// PNG renders a DOT graph to PNG using Graphviz.
func PNG(ctx context.Context, dot string) ([]byte, error) {
	return rasterize(ctx, dot, graphviz.PNG)
}

func rasterize(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, format, &buf); err != nil {
		return nil, fmt.Errorf("render graph: %w", err)
	}
	return buf.Bytes(), nil
}
