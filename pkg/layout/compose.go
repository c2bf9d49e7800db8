package layout

import "math"

// Compose normalizes each cluster sub-layout and tiles the clusters
// left-to-right on one canvas:
//
//  1. Translate each cluster horizontally so its leftmost node sits at X=0.
//     Y is left untouched to preserve the tier gaps.
//  2. Center every tier row within the cluster's widest row, so narrower
//     tiers appear centered under or over the widest one.
//  3. Shift the whole cluster by a running cursor, leaving the cluster gap
//     between neighbors.
//
// Compose mutates node positions in place. Position overrides are applied
// separately, after composition, via ApplyOverrides.
func Compose(layouts []*ClusterLayout, opts Options) {
	opts = opts.withDefaults()

	cursor := 0.0
	for _, cl := range layouts {
		if len(cl.Nodes) == 0 {
			continue
		}

		normalizeX(cl)
		width := centerRows(cl)

		for _, n := range cl.Nodes {
			n.Pos.X += cursor
		}
		cursor += width + opts.ClusterGap
	}
}

// normalizeX shifts the cluster so its leftmost node edge is at X=0.
func normalizeX(cl *ClusterLayout) {
	minX := math.Inf(1)
	for _, n := range cl.Nodes {
		minX = math.Min(minX, n.Pos.X)
	}
	for _, n := range cl.Nodes {
		n.Pos.X -= minX
	}
}

// centerRows centers each tier row against the cluster's widest row and
// returns that widest row's width, which is the cluster's final width.
func centerRows(cl *ClusterLayout) float64 {
	type rowExtent struct {
		min, max float64
	}
	rows := make(map[int]*rowExtent)

	for _, n := range cl.Nodes {
		ext, ok := rows[n.Tier]
		if !ok {
			ext = &rowExtent{min: math.Inf(1), max: math.Inf(-1)}
			rows[n.Tier] = ext
		}
		ext.min = math.Min(ext.min, n.Pos.X)
		ext.max = math.Max(ext.max, n.Pos.X+n.Size.Width)
	}

	widest := 0.0
	for _, ext := range rows {
		widest = math.Max(widest, ext.max-ext.min)
	}

	for _, n := range cl.Nodes {
		ext := rows[n.Tier]
		shift := (widest-(ext.max-ext.min))/2 - ext.min
		n.Pos.X += shift
	}

	return widest
}
