package layout

import (
	"sort"

	"github.com/CRONUS-Security/DeepNetVisibility/pkg/hierarchy"
	"github.com/CRONUS-Security/DeepNetVisibility/pkg/ipaddr"
	"github.com/CRONUS-Security/DeepNetVisibility/pkg/topo"
)

// Address-tree layout parameters.
const (
	addrTreeLeafSpan = NodeWidth + 40.0 // horizontal span allotted per leaf
	addrTreeLevelGap = 130.0            // vertical distance per tree level
)

// AddrTree lays the graph out as a containment tree.
//
// The hierarchy builder and edge reconciler run first, so AddrTree is the
// one strategy that returns an updated edge set: the merged list with fresh
// inferred containment edges tagged for distinct rendering.
//
// The resulting containment forest is drawn top-down. Every node is given a
// leaf-width (descendant leaf count, never zero) and a horizontal span
// proportional to it; leaves center within their span while internal nodes
// center exactly midway between their first and last child's centers, which
// keeps branch fan-out symmetric. Depth maps linearly to the vertical axis.
// Nodes with no containment relation to anything land in one extra row below
// the deepest placed row.
//
// Both tree passes use explicit stacks; deep hierarchies must not be limited
// by call-stack depth.
func AddrTree(nodes []topo.Node, edges []topo.Edge) ([]topo.Node, []topo.Edge) {
	out := topo.CloneNodes(nodes)
	inferred, parentOf := hierarchy.Build(out)
	merged := hierarchy.Reconcile(edges, inferred)
	if len(out) == 0 {
		return out, merged
	}

	idx := topo.NodeIndex(out)

	// Forest membership: anything with a parent or at least one child.
	children := make(map[string][]string, len(parentOf))
	inForest := make(map[string]bool, len(parentOf)*2)
	for child, parent := range parentOf {
		children[parent] = append(children[parent], child)
		inForest[child] = true
		inForest[parent] = true
	}

	var roots []string
	for _, n := range out {
		if inForest[n.ID] {
			if _, hasParent := parentOf[n.ID]; !hasParent {
				roots = append(roots, n.ID)
			}
		}
	}
	sortRoots(out, idx, roots)
	for id := range children {
		sortChildren(out, idx, children[id])
	}

	// Pre-order over the forest with an explicit stack. Parents always
	// precede their children in the resulting order, so a reverse sweep
	// visits children first.
	order := make([]string, 0, len(inForest))
	for _, root := range roots {
		stack := []string{root}
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			order = append(order, id)
			kids := children[id]
			for i := len(kids) - 1; i >= 0; i-- {
				stack = append(stack, kids[i])
			}
		}
	}

	// Bottom-up: leaf-widths (leaves count 1, parents sum their children).
	width := make(map[string]int, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		w := 0
		for _, kid := range children[id] {
			w += width[kid]
		}
		if w == 0 {
			w = 1
		}
		width[id] = w
	}

	// Top-down: spans and depths. Each node's children split its span in
	// proportion to their leaf-widths, left to right.
	spanStart := make(map[string]float64, len(order))
	depth := make(map[string]int, len(order))
	cursor := Margin
	for _, root := range roots {
		spanStart[root] = cursor
		cursor += float64(width[root]) * addrTreeLeafSpan
	}
	for _, id := range order {
		start := spanStart[id]
		for _, kid := range children[id] {
			spanStart[kid] = start
			depth[kid] = depth[id] + 1
			start += float64(width[kid]) * addrTreeLeafSpan
		}
	}

	// Bottom-up again: centers. Internal nodes sit midway between their
	// extreme children, not at the average of all of them.
	x := make(map[string]float64, len(order))
	maxDepth := 0
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		kids := children[id]
		if len(kids) == 0 {
			x[id] = spanStart[id] + float64(width[id])*addrTreeLeafSpan/2
		} else {
			x[id] = (x[kids[0]] + x[kids[len(kids)-1]]) / 2
		}
		if depth[id] > maxDepth {
			maxDepth = depth[id]
		}
	}

	for _, id := range order {
		i := idx[id]
		out[i].Position = topo.Position{
			X: x[id],
			Y: Margin + float64(depth[id])*addrTreeLevelGap,
		}
	}

	// Orphan row below the deepest placed row, evenly spaced.
	orphanY := Margin + float64(maxDepth+1)*addrTreeLevelGap
	if len(order) == 0 {
		orphanY = Margin
	}
	pos := 0
	for i := range out {
		if inForest[out[i].ID] {
			continue
		}
		out[i].Position = topo.Position{
			X: Margin + float64(pos)*addrTreeLeafSpan,
			Y: orphanY,
		}
		pos++
	}

	return out, merged
}

// nodeBlock extracts a node's CIDR block for ordering purposes, matching the
// hierarchy builder's extraction order: address field first, then label.
func nodeBlock(n topo.Node) (ipaddr.Block, bool) {
	if b, ok := ipaddr.ParseBlock(n.Data.Address); ok {
		return b, true
	}
	return ipaddr.ParseBlock(n.Data.Label)
}

// sortRoots orders root nodes for drawing: CIDR-type roots first, wider
// blocks (smaller prefix) before narrower ones, everything else after in
// input order. The sort is stable so ties keep their relative order.
func sortRoots(nodes []topo.Node, idx map[string]int, roots []string) {
	sort.SliceStable(roots, func(i, j int) bool {
		a, b := nodes[idx[roots[i]]], nodes[idx[roots[j]]]
		if a.IsCIDR() != b.IsCIDR() {
			return a.IsCIDR()
		}
		if a.IsCIDR() {
			ba, okA := nodeBlock(a)
			bb, okB := nodeBlock(b)
			if okA && okB && ba.Prefix != bb.Prefix {
				return ba.Prefix < bb.Prefix
			}
		}
		return false
	})
}

// sortChildren orders a node's children: CIDR children first by ascending
// prefix length, then the rest lexicographically by label.
func sortChildren(nodes []topo.Node, idx map[string]int, kids []string) {
	sort.SliceStable(kids, func(i, j int) bool {
		a, b := nodes[idx[kids[i]]], nodes[idx[kids[j]]]
		if a.IsCIDR() != b.IsCIDR() {
			return a.IsCIDR()
		}
		if a.IsCIDR() {
			ba, okA := nodeBlock(a)
			bb, okB := nodeBlock(b)
			if okA && okB && ba.Prefix != bb.Prefix {
				return ba.Prefix < bb.Prefix
			}
		}
		return a.DisplayLabel() < b.DisplayLabel()
	})
}
