package layout

import (
	"testing"

	"github.com/archmap-dev/archmap/pkg/component"
)

func tierOf(comps ...*component.Component) map[string]bool {
	inTier := make(map[string]bool, len(comps))
	for _, c := range comps {
		inTier[c.ID] = true
	}
	return inTier
}

func orderOf(comps []*component.Component) []string {
	ids := make([]string, len(comps))
	for i, c := range comps {
		ids[i] = c.ID
	}
	return ids
}

func assertOrder(t *testing.T, got []*component.Component, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d components, got %v", len(want), orderOf(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: expected %s, got %v", i, id, orderOf(got))
			return
		}
	}
}

func TestSequenceTierSeed(t *testing.T) {
	// The member with the most in-tier targets seeds the walk.
	x := &component.Component{ID: "x"}
	y := &component.Component{ID: "y"}
	z := &component.Component{ID: "z", Relationships: []component.Relationship{
		{TargetID: "x", RelationType: component.RelationContains},
		{TargetID: "w", RelationType: component.RelationUses},
	}}
	w := &component.Component{ID: "w"}

	members := []*component.Component{x, y, z, w}
	got := sequenceTier(members, tierOf(members...))

	// z seeds, then x (weight 10) beats w (weight 4); y never connects and
	// trails in original order.
	assertOrder(t, got, "z", "x", "w", "y")
}

func TestSequenceTierSeedTie(t *testing.T) {
	// Equal target counts keep the earliest member as seed.
	a := &component.Component{ID: "a", Relationships: []component.Relationship{
		{TargetID: "b", RelationType: component.RelationUses},
	}}
	b := &component.Component{ID: "b", Relationships: []component.Relationship{
		{TargetID: "a", RelationType: component.RelationUses},
	}}

	got := sequenceTier([]*component.Component{a, b}, tierOf(a, b))
	assertOrder(t, got, "a", "b")
}

func TestSequenceTierIncomingConnections(t *testing.T) {
	// Connections count in both directions: a placed member's relationship
	// toward a candidate pulls the candidate in.
	m1 := &component.Component{ID: "m1"}
	m2 := &component.Component{ID: "m2", Relationships: []component.Relationship{
		{TargetID: "m1", RelationType: component.RelationDependsOn},
	}}
	m3 := &component.Component{ID: "m3"}

	got := sequenceTier([]*component.Component{m1, m2, m3}, tierOf(m1, m2, m3))
	assertOrder(t, got, "m2", "m1", "m3")
}

func TestSequenceTierNoConnections(t *testing.T) {
	// A tier without any in-tier relationships keeps the input order.
	a := &component.Component{ID: "a"}
	b := &component.Component{ID: "b"}
	c := &component.Component{ID: "c"}

	got := sequenceTier([]*component.Component{a, b, c}, tierOf(a, b, c))
	assertOrder(t, got, "a", "b", "c")
}

func TestSequenceTierIgnoresOutOfTierTargets(t *testing.T) {
	// Relationships whose target lies outside the tier contribute nothing.
	a := &component.Component{ID: "a"}
	b := &component.Component{ID: "b", Relationships: []component.Relationship{
		{TargetID: "elsewhere", RelationType: component.RelationContains},
	}}

	got := sequenceTier([]*component.Component{a, b}, tierOf(a, b))
	assertOrder(t, got, "a", "b")
}

func TestSequenceTierSingleton(t *testing.T) {
	a := &component.Component{ID: "a"}
	got := sequenceTier([]*component.Component{a}, tierOf(a))
	assertOrder(t, got, "a")
}

func TestSequenceTierDeterministic(t *testing.T) {
	members := []*component.Component{
		{ID: "a", Relationships: []component.Relationship{
			{TargetID: "c", RelationType: component.RelationUses},
		}},
		{ID: "b", Relationships: []component.Relationship{
			{TargetID: "a", RelationType: component.RelationCalls},
		}},
		{ID: "c"},
		{ID: "d", Relationships: []component.Relationship{
			{TargetID: "b", RelationType: component.RelationExtends},
		}},
	}

	first := orderOf(sequenceTier(append([]*component.Component{}, members...), tierOf(members...)))
	for run := 0; run < 20; run++ {
		again := orderOf(sequenceTier(append([]*component.Component{}, members...), tierOf(members...)))
		for i := range first {
			if again[i] != first[i] {
				t.Fatalf("run %d diverged: %v vs %v", run, again, first)
			}
		}
	}
}
