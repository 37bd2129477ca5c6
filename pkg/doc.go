// Package pkg provides the core libraries for DeepNetVisibility topology layout.
//
// # Overview
//
// DeepNetVisibility arranges network asset topologies on a 2-D plane and
// infers subnet containment from IP addresses and CIDR blocks. The pkg
// directory is organized into four main areas:
//
//  1. [topo] - Topology data model (nodes, edges, documents)
//  2. [ipaddr] / [hierarchy] - IPv4 parsing and containment inference
//  3. [layout] - Interchangeable positioning strategies
//  4. [pipeline] - Orchestration (infer → layout) with caching
//
// # Architecture
//
// The typical data flow:
//
//	Topology Document (JSON)
//	         ↓
//	    [hierarchy] package (derive containment from [ipaddr])
//	         ↓
//	    [layout] package (position nodes by strategy)
//	         ↓
//	    Positioned Document (JSON)
//
// # Quick Start
//
// Infer containment and lay out a topology:
//
//	import (
//	    "github.com/CRONUS-Security/DeepNetVisibility/pkg/hierarchy"
//	    "github.com/CRONUS-Security/DeepNetVisibility/pkg/layout"
//	    "github.com/CRONUS-Security/DeepNetVisibility/pkg/topo"
//	)
//
//	// 1. Load the document
//	doc, _ := topo.ReadDocumentFile("topology.json")
//	doc.EnsureIDs()
//
//	// 2. Infer containment edges
//	inferred, _ := hierarchy.Build(doc.Nodes)
//	edges := hierarchy.Reconcile(doc.Edges, inferred)
//
//	// 3. Position the nodes
//	nodes, edges := layout.Apply(layout.StrategyAddrTree, doc.Nodes, edges, layout.Options{})
//
//	// 4. Save the result
//	_ = topo.WriteDocumentFile(topo.NewDocument(nodes, edges), "topology.layout.json")
//
// # Main Packages
//
// [topo] - Node and edge types shared by every layer, plus the versioned JSON
// document format used by the CLI and API.
//
// [ipaddr] - IPv4 address and CIDR block parsing on uint32 arithmetic.
// Containment checks (block in block, address in block) are single mask
// operations.
//
// [hierarchy] - Containment forest construction. Every node is attached to
// its most specific enclosing CIDR block; reconciliation merges fresh
// inferences with user-drawn edges without ever touching the latter.
//
// [layout] - Five positioning strategies behind one dispatcher: layered
// (rank-based), force (physical simulation), grid, radial (BFS rings), and
// addrtree (containment-hierarchy tree). All strategies are deterministic
// pure functions.
//
// [pipeline] - Complete layout pipeline (infer → layout) used by CLI and
// API. Ensures consistent behavior across all entry points and caches
// results by content hash.
//
// [cache] - File-based and null cache implementations for layout results.
//
// [errors] - Coded errors for the CLI and API boundary. The engine itself
// treats malformed input as "no information", never as a failure.
//
// [buildinfo] - Build-time version information injected via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/layout/...     # Specific package
//
// [topo]: https://pkg.go.dev/github.com/CRONUS-Security/DeepNetVisibility/pkg/topo
// [ipaddr]: https://pkg.go.dev/github.com/CRONUS-Security/DeepNetVisibility/pkg/ipaddr
// [hierarchy]: https://pkg.go.dev/github.com/CRONUS-Security/DeepNetVisibility/pkg/hierarchy
// [layout]: https://pkg.go.dev/github.com/CRONUS-Security/DeepNetVisibility/pkg/layout
// [pipeline]: https://pkg.go.dev/github.com/CRONUS-Security/DeepNetVisibility/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/CRONUS-Security/DeepNetVisibility/pkg/cache
// [errors]: https://pkg.go.dev/github.com/CRONUS-Security/DeepNetVisibility/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/CRONUS-Security/DeepNetVisibility/pkg/buildinfo
package pkg
