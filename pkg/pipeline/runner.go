package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/CRONUS-Security/DeepNetVisibility/pkg/cache"
	"github.com/CRONUS-Security/DeepNetVisibility/pkg/hierarchy"
	"github.com/CRONUS-Security/DeepNetVisibility/pkg/layout"
	"github.com/CRONUS-Security/DeepNetVisibility/pkg/topo"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Logger: logger,
	}
}

// Execute runs the complete infer → layout pipeline with caching.
//
// The input document is not modified; the returned result carries a fresh
// document with positioned nodes and the reconciled edge set.
func (r *Runner) Execute(ctx context.Context, doc topo.Document, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		DocumentHash: HashTopology(doc.Nodes, doc.Edges),
	}
	cacheKey := cache.LayoutKey(result.DocumentHash, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := topo.UnmarshalDocument(data)
			if err == nil {
				result.Document = cached
				result.Stats.NodeCount = len(cached.Nodes)
				result.Stats.EdgeCount = len(cached.Edges)
				result.CacheInfo.LayoutHit = true
				r.Logger.Debug("layout cache hit", "key", cacheKey)
				return result, nil
			}
			// If deserialization fails, fall through to recompute
		}
	}

	layoutStart := time.Now()

	nodes := doc.Nodes
	edges := doc.Edges

	// Stage 1: Infer containment. The addrtree strategy reconciles edges
	// itself as part of placement, so the stage is skipped there to avoid
	// running inference twice.
	if !opts.SkipInfer && opts.Strategy != layout.StrategyAddrTree {
		inferred := r.Infer(nodes, edges)
		result.Stats.InferredCount = countInferred(inferred) - countInferred(edges)
		edges = inferred
	}

	// Stage 2: Layout
	nodes, edges = layout.Apply(opts.Strategy, nodes, edges, opts.LayoutOptions())
	if opts.Strategy == layout.StrategyAddrTree {
		result.Stats.InferredCount = countInferred(edges) - countInferred(doc.Edges)
	}

	result.Document = topo.NewDocument(nodes, edges)
	result.Stats.NodeCount = len(nodes)
	result.Stats.EdgeCount = len(edges)
	result.Stats.LayoutTime = time.Since(layoutStart)

	r.Logger.Info("computed layout",
		"strategy", opts.Strategy,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.LayoutTime)

	// Cache the result
	if data, err := topo.MarshalDocument(result.Document); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.DefaultTTL)
	}

	return result, nil
}

// Infer derives containment edges from node addresses and reconciles them
// with the existing edge set. User-drawn edges survive verbatim; previously
// inferred edges are replaced by the fresh inference.
func (r *Runner) Infer(nodes []topo.Node, edges []topo.Edge) []topo.Edge {
	inferred, _ := hierarchy.Build(nodes)
	merged := hierarchy.Reconcile(edges, inferred)
	r.Logger.Debug("inferred containment",
		"candidates", len(inferred),
		"merged", len(merged))
	return merged
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func countInferred(edges []topo.Edge) int {
	n := 0
	for _, e := range edges {
		if e.Data.Inferred {
			n++
		}
	}
	return n
}
