package flow

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/archmap-dev/archmap/pkg/component"
)

// Handle positions on a node's bounding box.
const (
	HandleLeft   = "left"
	HandleRight  = "right"
	HandleTop    = "top"
	HandleBottom = "bottom"
)

// EdgeStyle is the stroke styling of an edge.
type EdgeStyle struct {
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
	DashArray   string  `json:"strokeDasharray,omitempty"`
}

// Edge is one styled, labeled connection between two laid-out nodes.
type Edge struct {
	ID           string    `json:"id"`
	Source       string    `json:"source"`
	Target       string    `json:"target"`
	SourceHandle string    `json:"sourceHandle"`
	TargetHandle string    `json:"targetHandle"`
	Style        EdgeStyle `json:"style"`
	Label        string    `json:"label"`
}

// edgeStyles is the fixed per-relation-type stroke lookup.
var edgeStyles = map[component.RelationType]EdgeStyle{
	component.RelationContains:   {Stroke: "#0ea5e9", StrokeWidth: 2.5},
	component.RelationExtends:    {Stroke: "#10b981", StrokeWidth: 2},
	component.RelationDependsOn:  {Stroke: "#f59e0b", StrokeWidth: 2},
	component.RelationImplements: {Stroke: "#8b5cf6", StrokeWidth: 1.5, DashArray: "6 3"},
	component.RelationCalls:      {Stroke: "#3b82f6", StrokeWidth: 1.5, DashArray: "4 2"},
	component.RelationUses:       {Stroke: "#94a3b8", StrokeWidth: 1.5},
}

// defaultEdgeStyle covers unrecognized relation types.
var defaultEdgeStyle = EdgeStyle{Stroke: "#64748b", StrokeWidth: 1}

// StyleFor returns the stroke style of a relation type.
func StyleFor(t component.RelationType) EdgeStyle {
	if s, ok := edgeStyles[t]; ok {
		return s
	}
	return defaultEdgeStyle
}

// HandlesFor picks the source and target handle by comparing the two node
// centers: the axis with the larger delta magnitude decides horizontal
// (left/right) versus vertical (top/bottom) anchoring, and the delta sign
// picks the face on each side. Recompute whenever positions change so edges
// stay anchored to the nearest face.
func HandlesFor(src, tgt *Node) (sourceHandle, targetHandle string) {
	dx := tgt.CenterX() - src.CenterX()
	dy := tgt.CenterY() - src.CenterY()

	if math.Abs(dx) > math.Abs(dy) {
		if dx >= 0 {
			return HandleRight, HandleLeft
		}
		return HandleLeft, HandleRight
	}
	if dy >= 0 {
		return HandleBottom, HandleTop
	}
	return HandleTop, HandleBottom
}

// synthesizeEdges emits one edge per logical relationship among the laid-out
// nodes. The relationship ID is the deduplication key across both directions
// of a bidirectional pair; relationships missing an ID get a deterministic
// fallback derived from their endpoints and type. Dangling targets are
// skipped silently.
func synthesizeEdges(nodes []Node) []Edge {
	byID := make(map[string]*Node, len(nodes))
	for i := range nodes {
		byID[nodes[i].ID] = &nodes[i]
	}

	var edges []Edge
	seen := make(map[string]bool)

	for i := range nodes {
		src := &nodes[i]
		for _, r := range src.Data.Component.Relationships {
			id := r.ID
			if id == "" {
				id = fallbackEdgeID(src.ID, r)
			}
			if seen[id] {
				continue
			}
			tgt, ok := byID[r.TargetID]
			if !ok {
				continue
			}
			seen[id] = true

			sh, th := HandlesFor(src, tgt)
			edges = append(edges, Edge{
				ID:           id,
				Source:       src.ID,
				Target:       tgt.ID,
				SourceHandle: sh,
				TargetHandle: th,
				Style:        StyleFor(r.RelationType),
				Label:        string(r.RelationType),
			})
		}
	}

	return edges
}

// fallbackEdgeID derives a stable edge ID for relationships without one.
// Name-based UUIDs keep layout output idempotent across invocations.
func fallbackEdgeID(sourceID string, r component.Relationship) string {
	name := fmt.Sprintf("%s|%s|%s", sourceID, r.TargetID, r.RelationType)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}
