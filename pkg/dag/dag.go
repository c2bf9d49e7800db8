// Package dag implements the layered graph underlying each feature cluster's
// layout: tiered nodes connected by weighted edges with minimum rank
// separation. It provides the hierarchical layering pass whose provisional
// ranks seed the layout engine before tier semantics override the Y axis.
package dag

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")
)

// Node is a vertex with a tier (layer) assignment.
// Tier 0 is the topmost layer; tiers increase downward.
type Node struct {
	ID   string  // unique identifier
	Tier int     // layer assignment
	W, H float64 // rendered extent, used for horizontal placement
}

// Edge is a directed, weighted connection between two nodes.
// MinLen is the minimum number of tiers the edge must span; strongly
// hierarchical relations use 2 to force extra vertical separation.
type Edge struct {
	From   string
	To     string
	Weight int
	MinLen int
}

// Graph is a directed graph organized into horizontal tiers.
// The zero value is not usable; use New. Graph is not safe for concurrent
// use without external synchronization.
type Graph struct {
	nodes    map[string]*Node
	edges    []Edge
	outgoing map[string][]int // nodeID -> indices into edges
	incoming map[string][]int
	order    []string // node IDs in insertion order
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]int),
		incoming: make(map[string][]int),
	}
}

// AddNode adds a node. Returns ErrInvalidNodeID for an empty ID or
// ErrDuplicateNodeID when the ID is already present.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := n
	g.nodes[node.ID] = &node
	g.order = append(g.order, node.ID)
	return nil
}

// AddEdge adds a directed edge between two existing nodes. A MinLen below 1
// is raised to 1. Returns ErrUnknownSourceNode or ErrUnknownTargetNode when
// an endpoint is missing.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	if e.MinLen < 1 {
		e.MinLen = 1
	}
	idx := len(g.edges)
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], idx)
	g.incoming[e.To] = append(g.incoming[e.To], idx)
	return nil
}

// Node returns the node with the given ID and true, or nil and false.
// The pointer refers to the stored node; tier updates through it are visible
// to the graph.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// OutEdges returns the edges leaving the node, in insertion order.
func (g *Graph) OutEdges(id string) []Edge {
	return g.edgesAt(g.outgoing[id])
}

// InEdges returns the edges entering the node, in insertion order.
func (g *Graph) InEdges(id string) []Edge {
	return g.edgesAt(g.incoming[id])
}

func (g *Graph) edgesAt(indices []int) []Edge {
	if len(indices) == 0 {
		return nil
	}
	out := make([]Edge, len(indices))
	for i, idx := range indices {
		out[i] = g.edges[idx]
	}
	return out
}

// InDegree returns the number of incoming edges of the node.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// TiersInUse returns the distinct tier values in ascending order.
func (g *Graph) TiersInUse() []int {
	tiers := make(map[int]struct{})
	for _, n := range g.nodes {
		tiers[n.Tier] = struct{}{}
	}
	return slices.Sorted(maps.Keys(tiers))
}

// NodesInTier returns the nodes assigned to the given tier, in insertion
// order.
func (g *Graph) NodesInTier(tier int) []*Node {
	var out []*Node
	for _, id := range g.order {
		if n := g.nodes[id]; n.Tier == tier {
			out = append(out, n)
		}
	}
	return out
}

// HasCycle reports whether the graph contains a directed cycle.
// Detection uses depth-first search with white/gray/black coloring.
func (g *Graph) HasCycle() bool {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.nodes))
	var found bool

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, idx := range g.outgoing[id] {
			switch color[g.edges[idx].To] {
			case white:
				dfs(g.edges[idx].To)
			case gray:
				found = true
				return
			}
		}
		color[id] = black
	}

	for _, id := range g.order {
		if color[id] == white {
			dfs(id)
			if found {
				return true
			}
		}
	}
	return false
}
