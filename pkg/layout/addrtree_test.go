package layout

import (
	"testing"

	"github.com/CRONUS-Security/DeepNetVisibility/pkg/topo"
)

func cidr(id, block string) topo.Node {
	return topo.Node{ID: id, Type: topo.TypeCIDR, Data: topo.NodeData{Label: id, Address: block}}
}

func host(id, addr string) topo.Node {
	return topo.Node{ID: id, Type: topo.TypeServer, Data: topo.NodeData{Label: id, Address: addr}}
}

func TestAddrTree_ThreeLevelChain(t *testing.T) {
	nodes := []topo.Node{
		cidr("A", "10.0.0.0/8"),
		cidr("B", "10.0.0.0/16"),
		host("C", "10.0.5.5"),
	}

	out, edges := AddrTree(nodes, nil)
	pos := positionsByID(out)

	// Three distinct vertical levels, each centered under its parent.
	if !(pos["A"].Y < pos["B"].Y && pos["B"].Y < pos["C"].Y) {
		t.Errorf("levels not increasing: A=%v B=%v C=%v", pos["A"].Y, pos["B"].Y, pos["C"].Y)
	}
	if pos["A"].X != pos["B"].X || pos["B"].X != pos["C"].X {
		t.Errorf("chain not centered: A=%v B=%v C=%v", pos["A"].X, pos["B"].X, pos["C"].X)
	}

	// Inferred B→A and C→B containment edges come back merged.
	if len(edges) != 2 {
		t.Fatalf("got %d edges, want 2 inferred", len(edges))
	}
	for _, e := range edges {
		if !e.Data.Inferred || e.Data.Kind != topo.EdgeKindContains {
			t.Errorf("edge %s not tagged as inferred containment: %+v", e.ID, e.Data)
		}
	}
}

func TestAddrTree_ParentCenteredBetweenExtremes(t *testing.T) {
	nodes := []topo.Node{
		cidr("root", "10.0.0.0/8"),
		host("h1", "10.0.0.1"),
		host("h2", "10.0.0.2"),
		host("h3", "10.0.0.3"),
	}

	out, _ := AddrTree(nodes, nil)
	pos := positionsByID(out)

	// Midway between the extreme children, not the average of all three.
	wantX := (pos["h1"].X + pos["h3"].X) / 2
	if pos["root"].X != wantX {
		t.Errorf("root x = %v, want midpoint of extremes %v", pos["root"].X, wantX)
	}
	if pos["h1"].X >= pos["h2"].X || pos["h2"].X >= pos["h3"].X {
		t.Errorf("children not spread left to right: %v %v %v", pos["h1"].X, pos["h2"].X, pos["h3"].X)
	}
}

func TestAddrTree_ChildOrdering(t *testing.T) {
	// CIDR children first, ascending prefix; hosts after, by label.
	nodes := []topo.Node{
		host("zeta", "10.0.0.200"),
		host("alpha", "10.0.0.100"),
		cidr("narrow", "10.0.1.0/24"),
		cidr("mid", "10.0.0.0/16"),
		cidr("root", "10.0.0.0/8"),
	}

	out, _ := AddrTree(nodes, nil)
	pos := positionsByID(out)

	if !(pos["mid"].Y > pos["root"].Y) {
		t.Errorf("mid should be below root")
	}
	if !(pos["narrow"].Y > pos["mid"].Y) {
		t.Errorf("narrow should be below mid")
	}
	// alpha and zeta parent to mid (most specific match), ordered by label
	// after the CIDR child narrow.
	if !(pos["narrow"].X < pos["alpha"].X && pos["alpha"].X < pos["zeta"].X) {
		t.Errorf("children of mid out of order: narrow=%v alpha=%v zeta=%v",
			pos["narrow"].X, pos["alpha"].X, pos["zeta"].X)
	}
}

func TestAddrTree_OrphansInExtraRow(t *testing.T) {
	nodes := []topo.Node{
		cidr("A", "10.0.0.0/8"),
		host("in", "10.0.0.1"),
		host("lost", ""),         // no address at all
		host("alien", "8.8.8.8"), // address outside every block
	}

	out, _ := AddrTree(nodes, nil)
	pos := positionsByID(out)

	deepest := pos["in"].Y
	if pos["lost"].Y <= deepest || pos["alien"].Y <= deepest {
		t.Errorf("orphans should sit below the deepest placed row: lost=%v alien=%v deepest=%v",
			pos["lost"].Y, pos["alien"].Y, deepest)
	}
	if pos["lost"].Y != pos["alien"].Y {
		t.Errorf("orphans should share one row: %v vs %v", pos["lost"].Y, pos["alien"].Y)
	}
	if pos["lost"].X == pos["alien"].X {
		t.Error("orphans should be spaced apart")
	}
}

func TestAddrTree_KeepsUserEdges(t *testing.T) {
	nodes := []topo.Node{
		cidr("A", "10.0.0.0/8"),
		host("C", "10.0.5.5"),
	}
	user := []topo.Edge{
		{ID: "manual", Source: "C", Target: "A", Data: topo.EdgeData{Kind: topo.EdgeKindDefault}},
		{ID: "stale", Source: "A", Target: "C", Data: topo.EdgeData{Inferred: true}},
	}

	_, edges := AddrTree(nodes, user)

	// The stale inference is dropped and the fresh one is suppressed by the
	// user edge covering the same pair; only "manual" survives.
	if len(edges) != 1 || edges[0].ID != "manual" {
		t.Errorf("got %+v, want only the manual edge", edges)
	}
}

func TestAddrTree_EmptyInput(t *testing.T) {
	out, edges := AddrTree(nil, nil)
	if len(out) != 0 || len(edges) != 0 {
		t.Errorf("empty input should produce empty output, got %d nodes %d edges", len(out), len(edges))
	}
}
