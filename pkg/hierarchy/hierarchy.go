// Package hierarchy infers containment relationships among topology nodes
// from address arithmetic.
//
// The builder consumes the full node set and produces "contains" edges plus a
// parent map (a forest: at most one parent per node, the most specific
// containing block winning). The reconciler merges those inferred edges into
// a user-authored edge list without ever touching a user edge.
//
// A node with no parseable address simply contributes nothing; absence of
// hierarchy placement is a normal, silent outcome, never an error.
package hierarchy

import (
	"fmt"

	"github.com/CRONUS-Security/DeepNetVisibility/pkg/ipaddr"
	"github.com/CRONUS-Security/DeepNetVisibility/pkg/topo"
)

// blockNode pairs a CIDR-type node with its parsed block.
type blockNode struct {
	id    string
	block ipaddr.Block
}

// Build scans all nodes and derives the containment forest.
//
// Two passes run over the input, both resolved by longest prefix, mirroring
// longest-prefix-match routing semantics:
//
//   - block→block: each CIDR node is parented to the most specific other
//     block that strictly contains it. Strict means larger prefix length, so
//     a block can never parent itself or a same-size sibling.
//   - host→block: each non-CIDR node is parented to the most specific block
//     containing its first listed address. Later addresses are deliberately
//     ignored for hierarchy purposes.
//
// Ties on prefix length go to the first-encountered candidate in input
// order, so repeated builds on identical input are identical.
//
// The returned edges all carry Kind "contains", Inferred true, and an ID
// derived from the endpoint pair so rebuilds produce stable IDs.
func Build(nodes []topo.Node) ([]topo.Edge, map[string]string) {
	var blocks []blockNode
	var hosts []topo.Node
	for _, n := range nodes {
		if n.IsCIDR() {
			if b, ok := blockOf(n); ok {
				blocks = append(blocks, blockNode{id: n.ID, block: b})
			}
			// CIDR nodes without a parseable block drop out of the
			// hierarchy entirely; they are still laid out as orphans.
			continue
		}
		hosts = append(hosts, n)
	}

	parentOf := make(map[string]string)
	var edges []topo.Edge

	// Block-to-block pass.
	for _, child := range blocks {
		bestPrefix := -1
		bestID := ""
		for _, cand := range blocks {
			if cand.id == child.id {
				continue
			}
			if !ipaddr.BlockContains(child.block, cand.block) {
				continue
			}
			if cand.block.Prefix > bestPrefix {
				bestPrefix = cand.block.Prefix
				bestID = cand.id
			}
		}
		if bestID != "" {
			parentOf[child.id] = bestID
			edges = append(edges, containsEdge(bestID, child.id))
		}
	}

	// Host-to-block pass. Only the first address of a multi-address node
	// participates in parent selection.
	for _, h := range hosts {
		addrs := ipaddr.SplitAddrList(h.Data.Address)
		if len(addrs) == 0 {
			continue
		}
		addr, _ := ipaddr.ParseAddr(addrs[0])

		bestPrefix := -1
		bestID := ""
		for _, cand := range blocks {
			if !ipaddr.AddrInBlock(addr, cand.block) {
				continue
			}
			if cand.block.Prefix > bestPrefix {
				bestPrefix = cand.block.Prefix
				bestID = cand.id
			}
		}
		if bestID != "" {
			parentOf[h.ID] = bestID
			edges = append(edges, containsEdge(bestID, h.ID))
		}
	}

	return edges, parentOf
}

// blockOf extracts a node's CIDR block, trying the address field first and
// the label second. The first field that parses as a block wins.
func blockOf(n topo.Node) (ipaddr.Block, bool) {
	if b, ok := ipaddr.ParseBlock(n.Data.Address); ok {
		return b, true
	}
	return ipaddr.ParseBlock(n.Data.Label)
}

// containsEdge creates an inferred containment edge parent→child with a
// deterministic ID.
func containsEdge(parentID, childID string) topo.Edge {
	return topo.Edge{
		ID:     fmt.Sprintf("contains-%s-%s", parentID, childID),
		Source: parentID,
		Target: childID,
		Data: topo.EdgeData{
			Kind:     topo.EdgeKindContains,
			Inferred: true,
		},
	}
}
