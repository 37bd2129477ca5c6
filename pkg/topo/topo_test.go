package topo

import (
	"testing"
)

func TestPairKeyUndirected(t *testing.T) {
	ab := Edge{ID: "1", Source: "a", Target: "b"}
	ba := Edge{ID: "2", Source: "b", Target: "a"}

	if ab.PairKey() != ba.PairKey() {
		t.Errorf("PairKey(a->b) = %q, PairKey(b->a) = %q, want equal", ab.PairKey(), ba.PairKey())
	}

	ac := Edge{ID: "3", Source: "a", Target: "c"}
	if ab.PairKey() == ac.PairKey() {
		t.Error("edges on different pairs should have different keys")
	}
}

func TestDisplayLabel(t *testing.T) {
	labeled := Node{ID: "n1", Data: NodeData{Label: "web-01"}}
	if got := labeled.DisplayLabel(); got != "web-01" {
		t.Errorf("DisplayLabel() = %q, want %q", got, "web-01")
	}

	unlabeled := Node{ID: "n2"}
	if got := unlabeled.DisplayLabel(); got != "n2" {
		t.Errorf("DisplayLabel() = %q, want node ID %q", got, "n2")
	}
}

func TestCloneNodesIsolatesPositions(t *testing.T) {
	nodes := []Node{{ID: "a"}, {ID: "b"}}
	clone := CloneNodes(nodes)
	clone[0].Position = Position{X: 10, Y: 20}

	if nodes[0].Position.X != 0 || nodes[0].Position.Y != 0 {
		t.Error("mutating clone positions should not affect the input")
	}
}

func TestEnsureIDs(t *testing.T) {
	doc := NewDocument(
		[]Node{{ID: "keep"}, {}},
		[]Edge{{Source: "keep", Target: "keep"}},
	)
	doc.EnsureIDs()

	if doc.Nodes[0].ID != "keep" {
		t.Errorf("existing node ID changed to %q", doc.Nodes[0].ID)
	}
	if doc.Nodes[1].ID == "" {
		t.Error("empty node ID should be assigned")
	}
	if doc.Edges[0].ID == "" {
		t.Error("empty edge ID should be assigned")
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	doc := NewDocument(
		[]Node{
			{
				ID:       "net",
				Type:     TypeCIDR,
				Position: Position{X: 60, Y: 60},
				Data:     NodeData{Label: "10.0.0.0/8", Description: "corp"},
			},
			{
				ID:   "srv",
				Type: TypeServer,
				Data: NodeData{
					Label:   "web",
					Address: "10.0.5.5",
					SubType: "rack",
					Tags:    map[string][]string{"env": {"prod"}},
				},
			},
		},
		[]Edge{
			{
				ID:     "e1",
				Source: "net",
				Target: "srv",
				Data:   EdgeData{Kind: EdgeKindContains, Inferred: true},
			},
		},
	)

	data, err := MarshalDocument(doc)
	if err != nil {
		t.Fatalf("MarshalDocument error: %v", err)
	}

	got, err := UnmarshalDocument(data)
	if err != nil {
		t.Fatalf("UnmarshalDocument error: %v", err)
	}

	if got.Version != DocumentVersion {
		t.Errorf("Version = %q, want %q", got.Version, DocumentVersion)
	}
	if len(got.Nodes) != 2 || len(got.Edges) != 1 {
		t.Fatalf("got %d nodes, %d edges, want 2 and 1", len(got.Nodes), len(got.Edges))
	}
	if got.Nodes[0].Position != doc.Nodes[0].Position {
		t.Errorf("Position = %+v, want %+v", got.Nodes[0].Position, doc.Nodes[0].Position)
	}
	if got.Nodes[1].Data.Tags["env"][0] != "prod" {
		t.Error("tags should survive the round trip")
	}
	if !got.Edges[0].Data.Inferred {
		t.Error("inferred flag should survive the round trip")
	}
}

func TestDocumentFileRoundTrip(t *testing.T) {
	path := t.TempDir() + "/topo.json"

	doc := NewDocument([]Node{{ID: "a", Type: TypePC}}, nil)
	if err := WriteDocumentFile(doc, path); err != nil {
		t.Fatalf("WriteDocumentFile error: %v", err)
	}

	got, err := ReadDocumentFile(path)
	if err != nil {
		t.Fatalf("ReadDocumentFile error: %v", err)
	}
	if len(got.Nodes) != 1 || got.Nodes[0].ID != "a" {
		t.Errorf("unexpected document: %+v", got)
	}
}

func TestReadDocumentDefaultsVersion(t *testing.T) {
	got, err := UnmarshalDocument([]byte(`{"nodes": [], "edges": []}`))
	if err != nil {
		t.Fatalf("UnmarshalDocument error: %v", err)
	}
	if got.Version != DocumentVersion {
		t.Errorf("Version = %q, want default %q", got.Version, DocumentVersion)
	}
}
