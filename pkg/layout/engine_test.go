package layout

import (
	"testing"

	"github.com/archmap-dev/archmap/pkg/component"
)

func nodeByID(t *testing.T, layouts []*ClusterLayout, id string) *Node {
	t.Helper()
	for _, n := range Nodes(layouts) {
		if n.Component.ID == id {
			return n
		}
	}
	t.Fatalf("node %s not found", id)
	return nil
}

func TestLayoutTierBands(t *testing.T) {
	comps := []component.Component{
		{ID: "web", Category: component.CategoryFrontend, Feature: "Auth",
			Relationships: []component.Relationship{
				{ID: "r1", TargetID: "auth", RelationType: component.RelationDependsOn},
			}},
		{ID: "auth", Category: component.CategoryBackend, Feature: "Auth"},
	}

	layouts := Layout(comps, Options{})

	web := nodeByID(t, layouts, "web")
	auth := nodeByID(t, layouts, "auth")

	// Frontend sits on tier 3 (2+1), backend on tier 5 (4+1); Y is the tier
	// number times the tier height regardless of the relationship between
	// them.
	if web.Tier != 3 {
		t.Errorf("expected web on tier 3, got %d", web.Tier)
	}
	if auth.Tier != 5 {
		t.Errorf("expected auth on tier 5, got %d", auth.Tier)
	}
	if web.Pos.Y != 3*DefaultTierHeight {
		t.Errorf("expected web Y %v, got %v", 3*DefaultTierHeight, web.Pos.Y)
	}
	if auth.Pos.Y != 5*DefaultTierHeight {
		t.Errorf("expected auth Y %v, got %v", 5*DefaultTierHeight, auth.Pos.Y)
	}
}

func TestLayoutHeaderPinned(t *testing.T) {
	comps := []component.Component{
		{ID: "svc", Category: component.CategoryBackend, Feature: "Auth"},
		{ID: "docs", Category: component.CategoryDocumentation, Feature: "Auth"},
	}

	layouts := Layout(comps, Options{})
	docs := nodeByID(t, layouts, "docs")

	if !docs.Header {
		t.Fatal("expected docs to be the cluster header")
	}
	if docs.Tier != 0 {
		t.Errorf("expected header on tier 0, got %d", docs.Tier)
	}
	if docs.Pos.Y != 0 {
		t.Errorf("expected header Y 0, got %v", docs.Pos.Y)
	}
	if docs.Size.Width != component.HeaderBaseWidth || docs.Size.Height != component.HeaderBaseHeight {
		t.Errorf("expected header base size, got %+v", docs.Size)
	}
}

func TestLayoutSecondDocNotHeader(t *testing.T) {
	comps := []component.Component{
		{ID: "docs1", Category: component.CategoryDocumentation, Feature: "Auth"},
		{ID: "docs2", Category: component.CategoryDocumentation, Feature: "Auth"},
	}

	layouts := Layout(comps, Options{})

	if n := nodeByID(t, layouts, "docs1"); !n.Header || n.Tier != 0 {
		t.Errorf("expected docs1 as header on tier 0, got header=%v tier=%d", n.Header, n.Tier)
	}
	// The second documentation node stays on the ordinary documentation
	// tier below the header.
	if n := nodeByID(t, layouts, "docs2"); n.Header || n.Tier != 1 {
		t.Errorf("expected docs2 as ordinary node on tier 1, got header=%v tier=%d", n.Header, n.Tier)
	}
}

func TestLayoutUnknownCategory(t *testing.T) {
	comps := []component.Component{
		{ID: "odd", Category: component.Category("experimental"), Feature: "X"},
	}

	layouts := Layout(comps, Options{})
	if n := nodeByID(t, layouts, "odd"); n.Tier != 4 {
		t.Errorf("expected unknown category on the api tier 4, got %d", n.Tier)
	}
}

func TestLayoutRowSpacing(t *testing.T) {
	comps := []component.Component{
		{ID: "a", Category: component.CategoryBackend, Feature: "X"},
		{ID: "b", Category: component.CategoryBackend, Feature: "X"},
		{ID: "c", Category: component.CategoryBackend, Feature: "X"},
	}

	layouts := Layout(comps, Options{})

	a := nodeByID(t, layouts, "a")
	b := nodeByID(t, layouts, "b")
	c := nodeByID(t, layouts, "c")

	// With no relationships the sequencer keeps input order; after
	// composition the row starts at X=0 with a node gap between neighbors.
	if a.Pos.X != 0 {
		t.Errorf("expected a at X=0, got %v", a.Pos.X)
	}
	if want := a.Size.Width + DefaultNodeGap; b.Pos.X != want {
		t.Errorf("expected b at X=%v, got %v", want, b.Pos.X)
	}
	if want := b.Pos.X + b.Size.Width + DefaultNodeGap; c.Pos.X != want {
		t.Errorf("expected c at X=%v, got %v", want, c.Pos.X)
	}
}

func TestLayoutDanglingRelationship(t *testing.T) {
	comps := []component.Component{
		{ID: "a", Category: component.CategoryBackend, Feature: "X",
			Relationships: []component.Relationship{
				{ID: "r1", TargetID: "missing", RelationType: component.RelationContains},
				{ID: "r2", TargetID: "a", RelationType: component.RelationUses},
			}},
	}

	// Dangling and self targets are dropped; the layout still succeeds.
	layouts := Layout(comps, Options{})
	if len(Nodes(layouts)) != 1 {
		t.Fatalf("expected 1 node, got %d", len(Nodes(layouts)))
	}
}

func TestLayoutProvisionalTiers(t *testing.T) {
	comps := []component.Component{
		{ID: "parent", Category: component.CategoryBackend, Feature: "X",
			Relationships: []component.Relationship{
				{ID: "r1", TargetID: "child", RelationType: component.RelationContains},
				{ID: "r2", TargetID: "peer", RelationType: component.RelationCalls},
			}},
		{ID: "child", Category: component.CategoryDatabase, Feature: "X"},
		{ID: "peer", Category: component.CategoryBackend, Feature: "X"},
	}

	layouts := Layout(comps, Options{})
	prov := layouts[0].ProvisionalTiers

	// Strongly hierarchical relations span two provisional ranks, weaker
	// ones span one.
	if prov["parent"] != 0 || prov["child"] != 2 || prov["peer"] != 1 {
		t.Errorf("unexpected provisional tiers: %v", prov)
	}
}

func TestLayoutEmpty(t *testing.T) {
	layouts := Layout(nil, Options{})
	if len(layouts) != 0 {
		t.Errorf("expected no cluster layouts, got %d", len(layouts))
	}
	if nodes := Nodes(layouts); len(nodes) != 0 {
		t.Errorf("expected no nodes, got %d", len(nodes))
	}
}

func TestLayoutIdempotent(t *testing.T) {
	comps := []component.Component{
		{ID: "docs", Category: component.CategoryDocumentation, Feature: "Auth"},
		{ID: "web", Category: component.CategoryFrontend, Feature: "Auth",
			Relationships: []component.Relationship{
				{ID: "r1", TargetID: "api", RelationType: component.RelationCalls},
			}},
		{ID: "api", Category: component.CategoryAPI, Feature: "Auth",
			Relationships: []component.Relationship{
				{ID: "r2", TargetID: "db", RelationType: component.RelationDependsOn},
			}},
		{ID: "db", Category: component.CategoryDatabase, Feature: "Auth"},
		{ID: "cdn", Category: component.CategoryInfrastructure, Feature: "Assets"},
		{ID: "loose", Category: component.CategoryBackend},
	}

	first := Positions(Nodes(Layout(comps, Options{})))
	for run := 0; run < 10; run++ {
		again := Positions(Nodes(Layout(comps, Options{})))
		if len(again) != len(first) {
			t.Fatalf("run %d: expected %d positions, got %d", run, len(first), len(again))
		}
		for id, p := range first {
			if again[id] != p {
				t.Fatalf("run %d: position of %s diverged: %v vs %v", run, id, again[id], p)
			}
		}
	}
}

func TestApplyOverrides(t *testing.T) {
	comps := []component.Component{
		{ID: "a", Category: component.CategoryBackend, Feature: "X"},
		{ID: "b", Category: component.CategoryBackend, Feature: "X"},
	}

	layouts := Layout(comps, Options{})
	nodes := Nodes(layouts)

	computed := nodeByID(t, layouts, "b").Pos
	ApplyOverrides(nodes, PositionMap{
		"a":     {X: -120, Y: 999},
		"ghost": {X: 1, Y: 1},
	})

	if got := nodeByID(t, layouts, "a").Pos; got != (Point{X: -120, Y: 999}) {
		t.Errorf("expected override to win for a, got %v", got)
	}
	if got := nodeByID(t, layouts, "b").Pos; got != computed {
		t.Errorf("expected b to keep its computed position, got %v", got)
	}
}
