// Package flow synthesizes the renderer-facing output of the layout
// pipeline: positioned, sized, typed nodes and deduplicated, styled edges
// with face-anchored connection handles. The types serialize to the JSON
// shape a graph-rendering front end consumes directly.
package flow

import (
	"encoding/json"
	"time"

	"github.com/archmap-dev/archmap/pkg/component"
	"github.com/archmap-dev/archmap/pkg/layout"
)

// Node type discriminators for the rendering layer.
const (
	NodeTypeComponent = "component"
	NodeTypeHeader    = "header"
)

// Node is one positioned graph node ready for rendering.
type Node struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Position layout.Point `json:"position"`
	Width    float64      `json:"width"`
	Height   float64      `json:"height"`
	Data     NodeData     `json:"data"`
}

// NodeData carries the source component plus layout-derived annotations.
type NodeData struct {
	Component component.Component `json:"component"`
	Cluster   string              `json:"cluster"`
	Tier      int                 `json:"tier"`
	Flags     component.Flags     `json:"flags"`
}

// CenterX returns the horizontal center of the node.
func (n *Node) CenterX() float64 { return n.Position.X + n.Width/2 }

// CenterY returns the vertical center of the node.
func (n *Node) CenterY() float64 { return n.Position.Y + n.Height/2 }

// Graph is the complete output of one layout invocation.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`

	// Positions is the componentId → position map for external caching.
	// It mirrors the node positions exactly.
	Positions layout.PositionMap `json:"positions"`
}

// Build assembles the output graph from positioned layout nodes. Flags are
// derived at the given instant. Edges are synthesized with bidirectional
// deduplication; relationships whose target is not among the laid-out nodes
// are dropped silently.
func Build(nodes []*layout.Node, now time.Time) Graph {
	g := Graph{
		Nodes:     make([]Node, 0, len(nodes)),
		Positions: layout.Positions(nodes),
	}

	for _, n := range nodes {
		typ := NodeTypeComponent
		if n.Header {
			typ = NodeTypeHeader
		}
		g.Nodes = append(g.Nodes, Node{
			ID:       n.Component.ID,
			Type:     typ,
			Position: n.Pos,
			Width:    n.Size.Width,
			Height:   n.Size.Height,
			Data: NodeData{
				Component: *n.Component,
				Cluster:   n.Cluster,
				Tier:      n.Tier,
				Flags:     component.FlagsFor(n.Component, now),
			},
		})
	}

	g.Edges = synthesizeEdges(g.Nodes)
	return g
}

// MoveNode updates one node's position and the positions map, then
// recomputes edge handles so edges stay anchored to the nearest face. This
// is the drag path: no re-layout happens.
func (g *Graph) MoveNode(id string, pos layout.Point) bool {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			g.Nodes[i].Position = pos
			g.Positions[id] = pos
			g.RecomputeHandles()
			return true
		}
	}
	return false
}

// RecomputeHandles refreshes every edge's handle pair from the current node
// positions.
func (g *Graph) RecomputeHandles() {
	byID := make(map[string]*Node, len(g.Nodes))
	for i := range g.Nodes {
		byID[g.Nodes[i].ID] = &g.Nodes[i]
	}
	for i := range g.Edges {
		src, okS := byID[g.Edges[i].Source]
		tgt, okT := byID[g.Edges[i].Target]
		if okS && okT {
			g.Edges[i].SourceHandle, g.Edges[i].TargetHandle = HandlesFor(src, tgt)
		}
	}
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}

// MarshalGraph serializes a Graph to indented JSON.
func MarshalGraph(g Graph) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}
