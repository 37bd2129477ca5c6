package pipeline

import (
	"context"
	"testing"

	"github.com/CRONUS-Security/DeepNetVisibility/pkg/cache"
	"github.com/CRONUS-Security/DeepNetVisibility/pkg/layout"
	"github.com/CRONUS-Security/DeepNetVisibility/pkg/topo"
)

func TestValidateStrategy(t *testing.T) {
	tests := []struct {
		strategy string
		wantErr  bool
	}{
		{"layered", false},
		{"force", false},
		{"grid", false},
		{"radial", false},
		{"addrtree", false},
		{"invalid", true},
		{"Layered", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateStrategy(tt.strategy)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStrategy(%q) error = %v, wantErr %v", tt.strategy, err, tt.wantErr)
		}
	}
}

func TestValidateDirection(t *testing.T) {
	tests := []struct {
		direction string
		wantErr   bool
	}{
		{"vertical", false},
		{"horizontal", false},
		{"diagonal", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateDirection(tt.direction)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateDirection(%q) error = %v, wantErr %v", tt.direction, err, tt.wantErr)
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("zero options should validate: %v", err)
	}

	if opts.Strategy != DefaultStrategy {
		t.Errorf("Strategy = %q, want %q", opts.Strategy, DefaultStrategy)
	}
	if opts.Direction != DefaultDirection {
		t.Errorf("Direction = %q, want %q", opts.Direction, DefaultDirection)
	}
	if opts.Iterations != DefaultIterations {
		t.Errorf("Iterations = %d, want %d", opts.Iterations, DefaultIterations)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call should succeed: %v", err)
	}

	// Bad strategy rejected
	bad := Options{Strategy: "nope"}
	if err := bad.ValidateAndSetDefaults(); err == nil {
		t.Error("invalid strategy should fail validation")
	}
}

func TestHashTopology(t *testing.T) {
	nodes := []topo.Node{{ID: "a", Type: topo.TypeServer}}
	edges := []topo.Edge{{ID: "e1", Source: "a", Target: "a"}}

	h1 := HashTopology(nodes, edges)
	h2 := HashTopology(nodes, edges)
	if h1 != h2 {
		t.Error("hash should be deterministic")
	}

	h3 := HashTopology([]topo.Node{{ID: "b", Type: topo.TypeServer}}, edges)
	if h1 == h3 {
		t.Error("different nodes should produce a different hash")
	}
}

func testDocument() topo.Document {
	return topo.NewDocument(
		[]topo.Node{
			{ID: "net", Type: topo.TypeCIDR, Data: topo.NodeData{Label: "10.0.0.0/8"}},
			{ID: "srv", Type: topo.TypeServer, Data: topo.NodeData{Label: "web", Address: "10.0.5.5"}},
			{ID: "pc", Type: topo.TypePC, Data: topo.NodeData{Label: "desk", Address: "192.168.1.10"}},
		},
		nil,
	)
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(cache.NewNullCache(), nil)
	defer r.Close()

	result, err := r.Execute(ctx, testDocument(), Options{Strategy: layout.StrategyGrid})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if result.CacheInfo.LayoutHit {
		t.Error("null cache should never report a hit")
	}
	if result.Stats.NodeCount != 3 {
		t.Errorf("NodeCount = %d, want 3", result.Stats.NodeCount)
	}
	if result.DocumentHash == "" {
		t.Error("DocumentHash should be set")
	}

	// Grid runs inference before placement: the host inside 10.0.0.0/8
	// gains a containment edge, the out-of-range pc does not.
	if result.Stats.InferredCount != 1 {
		t.Errorf("InferredCount = %d, want 1", result.Stats.InferredCount)
	}
	if len(result.Document.Edges) != 1 {
		t.Fatalf("edges = %d, want 1", len(result.Document.Edges))
	}
	e := result.Document.Edges[0]
	if e.Source != "net" || e.Target != "srv" || !e.Data.Inferred {
		t.Errorf("unexpected edge %+v", e)
	}
}

func TestRunnerExecuteSkipInfer(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil)
	defer r.Close()

	result, err := r.Execute(ctx, testDocument(), Options{
		Strategy:  layout.StrategyGrid,
		SkipInfer: true,
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(result.Document.Edges) != 0 {
		t.Errorf("edges = %d, want 0 with inference skipped", len(result.Document.Edges))
	}
}

func TestRunnerExecuteCaching(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	r := NewRunner(c, nil)
	defer r.Close()

	doc := testDocument()

	first, err := r.Execute(ctx, doc, Options{Strategy: layout.StrategyGrid})
	if err != nil {
		t.Fatalf("first Execute error: %v", err)
	}
	if first.CacheInfo.LayoutHit {
		t.Error("first run should be a cache miss")
	}

	second, err := r.Execute(ctx, doc, Options{Strategy: layout.StrategyGrid})
	if err != nil {
		t.Fatalf("second Execute error: %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run with identical input should hit the cache")
	}
	if len(second.Document.Nodes) != len(first.Document.Nodes) {
		t.Errorf("cached node count = %d, want %d",
			len(second.Document.Nodes), len(first.Document.Nodes))
	}

	// Refresh bypasses the cache
	third, err := r.Execute(ctx, doc, Options{Strategy: layout.StrategyGrid, Refresh: true})
	if err != nil {
		t.Fatalf("third Execute error: %v", err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("refresh run should bypass the cache")
	}

	// A different strategy is a different cache key
	fourth, err := r.Execute(ctx, doc, Options{Strategy: layout.StrategyRadial})
	if err != nil {
		t.Fatalf("fourth Execute error: %v", err)
	}
	if fourth.CacheInfo.LayoutHit {
		t.Error("different strategy should miss the cache")
	}
}

func TestRunnerExecuteDoesNotMutateInput(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil)
	defer r.Close()

	doc := testDocument()
	if _, err := r.Execute(ctx, doc, Options{Strategy: layout.StrategyAddrTree}); err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if len(doc.Edges) != 0 {
		t.Errorf("input edges grew to %d, want 0", len(doc.Edges))
	}
	for _, n := range doc.Nodes {
		if n.Position.X != 0 || n.Position.Y != 0 {
			t.Errorf("input node %s moved to (%g, %g)", n.ID, n.Position.X, n.Position.Y)
		}
	}
}
