package layout

import "github.com/archmap-dev/archmap/pkg/component"

// sequenceTier orders the components of one tier within one cluster so that
// mutually connected components sit adjacently. The algorithm is a greedy
// nearest-neighbor walk with deterministic tie-breaks:
//
//  1. The seed is the member with the most relationships whose target also
//     lies in this tier; ties keep the earliest member (strict > comparison).
//  2. Each following slot goes to the unplaced member with the highest
//     cumulative relationship weight to or from the already-placed set.
//     Candidates are evaluated in original input order, a strictly greater
//     score replaces the running best, and an unset running best is beaten
//     by the first candidate evaluated.
//  3. When no remaining member has any qualifying connection to the placed
//     set, the remaining members are appended in their original relative
//     order and the walk ends.
//
// The ordering only drives left-to-right placement; it never changes tier
// assignments. Identical inputs always produce identical orderings.
func sequenceTier(members []*component.Component, inTier map[string]bool) []*component.Component {
	if len(members) <= 1 {
		return members
	}

	seedIdx := 0
	seedCount := -1
	for i, c := range members {
		count := 0
		for _, r := range c.Relationships {
			if inTier[r.TargetID] {
				count++
			}
		}
		if count > seedCount {
			seedIdx, seedCount = i, count
		}
	}

	ordered := make([]*component.Component, 0, len(members))
	placed := make(map[string]bool, len(members))
	remaining := make([]*component.Component, 0, len(members)-1)

	ordered = append(ordered, members[seedIdx])
	placed[members[seedIdx].ID] = true
	for i, c := range members {
		if i != seedIdx {
			remaining = append(remaining, c)
		}
	}

	for len(remaining) > 0 {
		bestIdx := -1
		bestScore := -1
		for i, c := range remaining {
			score := connectionScore(c, ordered, placed)
			if score > bestScore || bestIdx == -1 {
				bestIdx, bestScore = i, score
			}
		}

		if bestScore <= 0 {
			// Nothing left connects to the placed set; keep original order.
			ordered = append(ordered, remaining...)
			break
		}

		ordered = append(ordered, remaining[bestIdx])
		placed[remaining[bestIdx].ID] = true
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return ordered
}

// connectionScore sums relationship weights between a candidate and the
// already-placed components, counting both directions.
func connectionScore(c *component.Component, placedList []*component.Component, placed map[string]bool) int {
	score := 0
	for _, r := range c.Relationships {
		if placed[r.TargetID] {
			score += r.Weight()
		}
	}
	for _, p := range placedList {
		for _, r := range p.Relationships {
			if r.TargetID == c.ID {
				score += r.Weight()
			}
		}
	}
	return score
}
