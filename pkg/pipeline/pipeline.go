// Package pipeline provides the core layout pipeline for DeepNetVisibility.
//
// This package implements the infer → layout flow that can be used by CLI and
// API components. By centralizing this logic, we ensure consistent behavior
// across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Infer: Derive CIDR containment edges from node addresses and reconcile
//     them with the user-drawn edge set
//  2. Layout: Compute node positions using the selected strategy
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    Strategy:  "addrtree",
//	    Direction: "vertical",
//	}
//	result, err := runner.Execute(ctx, doc, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	positioned := result.Document
//
// Run individual stages:
//
//	// Inference only
//	edges := runner.Infer(doc.Nodes, doc.Edges)
//
//	// Layout without caching
//	nodes, edges := layout.Apply(opts.Strategy, doc.Nodes, doc.Edges, opts.LayoutOptions())
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/CRONUS-Security/DeepNetVisibility/pkg/cache"
	"github.com/CRONUS-Security/DeepNetVisibility/pkg/layout"
	"github.com/CRONUS-Security/DeepNetVisibility/pkg/topo"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultStrategy is the layout strategy used when none is requested.
	DefaultStrategy = layout.StrategyAddrTree

	// DefaultDirection is the default layered strategy orientation.
	DefaultDirection = layout.DirectionVertical

	// DefaultIterations is the default force simulation budget.
	DefaultIterations = layout.DefaultIterations
)

// ValidDirections is the set of supported layered directions.
var ValidDirections = map[string]bool{
	layout.DirectionVertical:   true,
	layout.DirectionHorizontal: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Strategy   string `json:"strategy,omitempty"`
	Direction  string `json:"direction,omitempty"`
	Iterations int    `json:"iterations,omitempty"`
	Columns    int    `json:"columns,omitempty"`

	// SkipInfer disables the containment inference stage. User edges pass
	// through untouched and previously inferred edges are kept as-is.
	SkipInfer bool `json:"skip_infer,omitempty"`

	// Refresh bypasses the cache and recomputes the layout.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document holds the positioned nodes and the reconciled edge set.
	Document topo.Document

	// DocumentHash is the content hash of the input topology.
	DocumentHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the layout came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount     int
	EdgeCount     int
	InferredCount int
	LayoutTime    time.Duration
}

// CacheInfo tracks cache hits for the pipeline.
type CacheInfo struct {
	LayoutHit bool // Whether the layout result came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateStrategy checks that a strategy name is recognized.
// The layout dispatcher itself treats unknown names as an identity no-op;
// this stricter check exists for surfaces that want to reject typos early.
func ValidateStrategy(strategy string) error {
	if !layout.ValidStrategies[strategy] {
		return fmt.Errorf("invalid strategy: %q (must be one of: layered, force, grid, radial, addrtree)", strategy)
	}
	return nil
}

// ValidateDirection checks that a layered direction is valid.
func ValidateDirection(direction string) error {
	if !ValidDirections[direction] {
		return fmt.Errorf("invalid direction: %q (must be one of: vertical, horizontal)", direction)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks option values and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	if err := ValidateStrategy(o.Strategy); err != nil {
		return err
	}

	if o.Direction == "" {
		o.Direction = DefaultDirection
	}
	if err := ValidateDirection(o.Direction); err != nil {
		return err
	}

	if o.Iterations <= 0 {
		o.Iterations = DefaultIterations
	}
	if o.Columns < 0 {
		return fmt.Errorf("invalid columns: %d (must be non-negative)", o.Columns)
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// LayoutOptions converts pipeline options to layout strategy parameters.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{
		Direction:  o.Direction,
		Iterations: o.Iterations,
		Columns:    o.Columns,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Strategy:   o.Strategy,
		Direction:  o.Direction,
		Iterations: o.Iterations,
		Columns:    o.Columns,
	}
}

// =============================================================================
// Content Hashing
// =============================================================================

// HashTopology computes a content hash over nodes and edges only. Document
// metadata (version tag, save timestamp) is excluded so that re-saving an
// unchanged topology still hits the cache.
func HashTopology(nodes []topo.Node, edges []topo.Edge) string {
	payload := struct {
		Nodes []topo.Node `json:"nodes"`
		Edges []topo.Edge `json:"edges"`
	}{Nodes: nodes, Edges: edges}
	data, _ := json.Marshal(payload)
	return cache.Hash(data)
}
