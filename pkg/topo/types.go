// Package topo defines the node/edge data model shared by the hierarchy and
// layout engines.
//
// The types here are the engine's only boundary with the outside world: a UI
// or API collaborator hands in a plain node/edge collection, the engine hands
// back the same collection with updated positions (and, for the address-tree
// strategy, a merged edge set). Nothing in this package or its consumers
// touches a rendering surface or a persistent store.
package topo

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Node types.
const (
	TypeCIDR      = "cidr"      // An address block (e.g. 10.0.0.0/8)
	TypeServer    = "server"    // A server host
	TypePC        = "pc"        // A personal computer / workstation
	TypeNetDevice = "netdevice" // A router, switch, firewall, ...
)

// Edge kinds.
const (
	EdgeKindDefault  = "default"
	EdgeKindContains = "contains"
)

// =============================================================================
// Node
// =============================================================================

// Position is a point on the abstract layout plane.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData carries the user-editable payload of a node.
//
// Address holds free text: a single dotted-quad address, a CIDR block, a
// separator-delimited list of addresses, or nothing at all. Consumers must
// classify it themselves (see pkg/ipaddr) and treat anything unparseable as
// "no information".
type NodeData struct {
	Label       string              `json:"label,omitempty"`
	Description string              `json:"description,omitempty"`
	Address     string              `json:"address,omitempty"`
	SubType     string              `json:"sub_type,omitempty"`
	Tags        map[string][]string `json:"tags,omitempty"`
}

// Node is a typed vertex of the topology graph. Identity is the ID; Type is
// immutable after creation. Position is the only field the layout strategies
// ever change.
type Node struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
}

// IsCIDR reports whether the node represents an address block.
func (n *Node) IsCIDR() bool { return n.Type == TypeCIDR }

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Data.Label != "" {
		return n.Data.Label
	}
	return n.ID
}

// =============================================================================
// Edge
// =============================================================================

// EdgeData carries the payload of an edge. Inferred marks edges produced by
// the hierarchy builder; such edges are regenerated on every rebuild and are
// never authored by a user.
type EdgeData struct {
	Label    string `json:"label,omitempty"`
	Kind     string `json:"kind,omitempty"`
	Inferred bool   `json:"inferred,omitempty"`
}

// Edge is a relationship between two nodes. For de-duplication purposes edges
// are undirected: a→b and b→a identify the same edge.
type Edge struct {
	ID     string   `json:"id"`
	Source string   `json:"source"`
	Target string   `json:"target"`
	Data   EdgeData `json:"data"`
}

// PairKey returns the undirected endpoint key of the edge. Two edges with the
// same key connect the same pair of nodes regardless of direction.
func (e *Edge) PairKey() string {
	if e.Source <= e.Target {
		return e.Source + "\x00" + e.Target
	}
	return e.Target + "\x00" + e.Source
}

// =============================================================================
// Collection Helpers
// =============================================================================

// NodeIndex builds an ID → index lookup for a node slice.
func NodeIndex(nodes []Node) map[string]int {
	m := make(map[string]int, len(nodes))
	for i, n := range nodes {
		m[n.ID] = i
	}
	return m
}

// CloneNodes returns a copy of the node slice. Node structs are copied by
// value, so callers can assign positions without mutating the input. Tags
// maps are shared; layout code never writes to Data.
func CloneNodes(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	copy(out, nodes)
	return out
}

// CloneEdges returns a copy of the edge slice.
func CloneEdges(edges []Edge) []Edge {
	out := make([]Edge, len(edges))
	copy(out, edges)
	return out
}
