// Package layout computes positions for component relationship graphs.
//
// The pipeline is a pure function of the full component list: group by
// feature, assign vertical tiers from categories, order each tier by
// relationship connectivity, run a hierarchical layering pass per cluster,
// then compose the clusters side by side on one canvas. Previously cached
// positions can be applied as overrides after all geometry is finalized.
//
// Malformed input degrades by omission: relationships with dangling targets
// contribute no edges, and an empty component list yields an empty layout.
package layout

import (
	"github.com/archmap-dev/archmap/pkg/component"
	"github.com/archmap-dev/archmap/pkg/dag"
)

// hierarchicalMinLen is the minimum tier span for strongly hierarchical
// relation types, forcing extra vertical separation in the layering pass.
const hierarchicalMinLen = 2

// Node is one positioned component in the final layout.
type Node struct {
	Component *component.Component
	Cluster   string // feature key of the owning cluster
	Header    bool   // cluster header, pinned above the category tiers
	Tier      int    // final tier after the combining offset (header = 0)
	Size      component.Size
	Pos       Point
}

// ClusterLayout is the positioned sub-layout of one feature cluster.
type ClusterLayout struct {
	Feature string
	Nodes   []*Node

	// ProvisionalTiers holds the layering pass's rank output, kept for
	// diagnostics. Final Y always comes from Node.Tier.
	ProvisionalTiers map[string]int
}

// Layout runs the full geometry pipeline and returns the positioned
// clusters in feature-encounter order. The input slice is not mutated.
func Layout(components []component.Component, opts Options) []*ClusterLayout {
	opts = opts.withDefaults()

	clusters := component.GroupByFeature(components)
	layouts := make([]*ClusterLayout, 0, len(clusters))
	for _, cl := range clusters {
		layouts = append(layouts, layoutCluster(cl, opts))
	}

	Compose(layouts, opts)
	return layouts
}

// Nodes flattens cluster layouts into one node list, preserving cluster
// order and intra-cluster order.
func Nodes(layouts []*ClusterLayout) []*Node {
	var nodes []*Node
	for _, cl := range layouts {
		nodes = append(nodes, cl.Nodes...)
	}
	return nodes
}

// Positions extracts the componentId → position map from a node list, for
// external caching.
func Positions(nodes []*Node) PositionMap {
	positions := make(PositionMap, len(nodes))
	for _, n := range nodes {
		positions[n.Component.ID] = n.Pos
	}
	return positions
}

// ApplyOverrides replaces computed positions with externally cached ones.
// Overrides win wholesale per node; nodes without an override keep their
// computed position. Call after Compose so manual drags survive re-layouts.
func ApplyOverrides(nodes []*Node, overrides PositionMap) {
	if len(overrides) == 0 {
		return
	}
	for _, n := range nodes {
		if p, ok := overrides[n.Component.ID]; ok {
			n.Pos = p
		}
	}
}

// layoutCluster positions one feature cluster in isolation: tier bands on
// the Y axis, sequencer order on the X axis. The cluster's origin is
// arbitrary here; Compose normalizes and tiles clusters afterwards.
func layoutCluster(cl *component.Cluster, opts Options) *ClusterLayout {
	header := cl.Header()

	nodes := make([]*Node, 0, len(cl.Components))
	byTier := make(map[int][]*component.Component)
	for _, c := range cl.Components {
		isHeader := header != nil && c.ID == header.ID
		tier := component.TierFor(c, isHeader) + component.TierOffset
		nodes = append(nodes, &Node{
			Component: c,
			Cluster:   cl.Feature,
			Header:    isHeader,
			Tier:      tier,
			Size:      component.SizeFor(c, isHeader),
		})
		byTier[tier] = append(byTier[tier], c)
	}

	provisional := provisionalTiers(cl, nodes)

	nodeByID := make(map[string]*Node, len(nodes))
	for _, n := range nodes {
		nodeByID[n.Component.ID] = n
	}

	// Left-to-right placement per tier, in sequencer order. Y is derived
	// from the tier number rather than the layering output so tier bands
	// stay aligned with category semantics even when ranks compact.
	for tier, members := range byTier {
		inTier := make(map[string]bool, len(members))
		for _, c := range members {
			inTier[c.ID] = true
		}

		x := opts.Margin
		for _, c := range sequenceTier(members, inTier) {
			n := nodeByID[c.ID]
			n.Pos = Point{X: x, Y: float64(tier) * opts.TierHeight}
			x += n.Size.Width + opts.NodeGap
		}
	}

	return &ClusterLayout{
		Feature:          cl.Feature,
		Nodes:            nodes,
		ProvisionalTiers: provisional,
	}
}

// provisionalTiers feeds the cluster's sized, ranked nodes and weighted
// edges into the hierarchical layering pass. Edges with dangling targets
// are dropped silently.
func provisionalTiers(cl *component.Cluster, nodes []*Node) map[string]int {
	g := dag.New()
	present := make(map[string]bool, len(cl.Components))
	for _, n := range nodes {
		present[n.Component.ID] = true
		// AddNode cannot fail here: ids are non-empty and unique per cluster.
		_ = g.AddNode(dag.Node{
			ID:   n.Component.ID,
			Tier: n.Tier,
			W:    n.Size.Width,
			H:    n.Size.Height,
		})
	}

	for _, c := range cl.Components {
		for _, r := range c.Relationships {
			if !present[r.TargetID] || r.TargetID == c.ID {
				continue
			}
			_ = g.AddEdge(dag.Edge{
				From:   c.ID,
				To:     r.TargetID,
				Weight: r.Weight(),
				MinLen: minLenFor(r.RelationType),
			})
		}
	}

	return dag.AssignLayers(g)
}

// minLenFor returns the minimum tier span for a relation type. Strongly
// hierarchical types (contains, extends, depends_on) span at least two
// tiers.
func minLenFor(t component.RelationType) int {
	switch t {
	case component.RelationContains, component.RelationExtends, component.RelationDependsOn:
		return hierarchicalMinLen
	default:
		return 1
	}
}
