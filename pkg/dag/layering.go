package dag

// AssignLayers computes provisional tier assignments via longest-path
// layering over a topological traversal (Kahn's algorithm), honoring each
// edge's MinLen: a node is placed at least MinLen tiers below every parent.
//
// The returned map holds one entry per node reachable through the
// traversal. Source nodes (in-degree 0) land at tier 0. The graph's own
// tier assignments are not modified; the layout engine overrides tiers
// with category semantics after consulting this provisional result.
//
// AssignLayers tolerates cycles: nodes on a cycle never reach zero
// in-degree and keep their default tier 0 in the result. Relationship data
// is user-authored and may legitimately contain cycles, so no cycle
// breaking is attempted here.
//
// Runs in O(V + E) time.
func AssignLayers(g *Graph) map[string]int {
	nodes := g.Nodes()
	inDegree := make(map[string]int, len(nodes))
	tiers := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))

	for _, n := range nodes {
		degree := g.InDegree(n.ID)
		inDegree[n.ID] = degree
		tiers[n.ID] = 0
		if degree == 0 {
			queue = append(queue, n.ID)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, e := range g.OutEdges(curr) {
			if tier := tiers[curr] + e.MinLen; tier > tiers[e.To] {
				tiers[e.To] = tier
			}
			inDegree[e.To]--
			if inDegree[e.To] == 0 {
				queue = append(queue, e.To)
			}
		}
	}

	return tiers
}
