// Package layout positions topology nodes on a 2-D plane.
//
// Five interchangeable strategies are provided, selected by name through
// [Apply]: layered (rank-based), force (physical simulation), grid, radial
// (BFS rings), and addrtree (containment-hierarchy tree). Every strategy is a
// deterministic pure function of its inputs: nodes are cloned before
// positions are assigned, nothing is read from or written to shared state,
// and repeated calls on identical input produce identical output.
//
// Position units are abstract plane coordinates. A fixed node footprint
// (NodeWidth × NodeHeight) is used uniformly for spacing math; actual node
// dimensions are the renderer's business.
package layout

import "github.com/CRONUS-Security/DeepNetVisibility/pkg/topo"

// Strategy names accepted by Apply.
const (
	StrategyLayered  = "layered"
	StrategyForce    = "force"
	StrategyGrid     = "grid"
	StrategyRadial   = "radial"
	StrategyAddrTree = "addrtree"
)

// Directions for the layered strategy.
const (
	DirectionVertical   = "vertical"   // ranks top-to-bottom
	DirectionHorizontal = "horizontal" // ranks left-to-right
)

// Fixed node footprint shared by all strategies.
const (
	NodeWidth  = 150.0
	NodeHeight = 50.0
)

// Margin is the distance from the plane origin to the nearest node in
// layouts that normalize their result.
const Margin = 60.0

// Options carries the strategy-specific numeric parameters. The zero value
// selects the documented defaults everywhere.
type Options struct {
	// Direction selects the layered strategy's axis orientation.
	// Defaults to DirectionVertical.
	Direction string

	// Iterations is the force simulation budget. Defaults to
	// DefaultIterations when zero or negative.
	Iterations int

	// Columns overrides the grid column count. When zero the grid uses
	// ceil(sqrt(n)) columns.
	Columns int
}

// ValidStrategies is the set of recognized strategy names.
var ValidStrategies = map[string]bool{
	StrategyLayered:  true,
	StrategyForce:    true,
	StrategyGrid:     true,
	StrategyRadial:   true,
	StrategyAddrTree: true,
}

// Apply runs the named strategy over the node/edge collection and returns
// the repositioned nodes. Only the addrtree strategy changes the edge set
// (it merges freshly inferred containment edges); every other strategy
// returns the input edges untouched.
//
// An unrecognized strategy name is an identity no-op, not an error: the
// inputs come back unchanged.
func Apply(strategy string, nodes []topo.Node, edges []topo.Edge, opts Options) ([]topo.Node, []topo.Edge) {
	switch strategy {
	case StrategyLayered:
		return Layered(nodes, edges, opts.Direction), edges
	case StrategyForce:
		return Force(nodes, edges, opts.Iterations), edges
	case StrategyGrid:
		return Grid(nodes, opts.Columns), edges
	case StrategyRadial:
		return Radial(nodes, edges), edges
	case StrategyAddrTree:
		return AddrTree(nodes, edges)
	default:
		return nodes, edges
	}
}

// undirectedAdjacency builds an undirected neighbor map from the edge list.
// Edges whose endpoints are not both present in the node set are ignored;
// the UI may delete a node while its edges are still in flight.
func undirectedAdjacency(nodes []topo.Node, edges []topo.Edge) map[string][]string {
	idx := topo.NodeIndex(nodes)
	adj := make(map[string][]string, len(nodes))
	for _, e := range edges {
		if _, ok := idx[e.Source]; !ok {
			continue
		}
		if _, ok := idx[e.Target]; !ok {
			continue
		}
		adj[e.Source] = append(adj[e.Source], e.Target)
		adj[e.Target] = append(adj[e.Target], e.Source)
	}
	return adj
}
