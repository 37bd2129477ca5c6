package layout

import "github.com/CRONUS-Security/DeepNetVisibility/pkg/topo"

// Spacing for the layered strategy.
const (
	layeredRankGap = 140.0 // distance between consecutive ranks
	layeredNodeGap = 40.0  // gap between node footprints within a rank
)

// Layered assigns each node a rank by longest-path topological leveling over
// the edge set and places nodes within each rank left-to-right with fixed
// spacing. Sources and disconnected nodes land in rank 0.
//
// Direction selects the axis orientation: DirectionVertical maps ranks to
// rows (top-to-bottom), DirectionHorizontal maps ranks to columns
// (left-to-right). Anything else falls back to vertical.
func Layered(nodes []topo.Node, edges []topo.Edge, direction string) []topo.Node {
	out := topo.CloneNodes(nodes)
	if len(out) == 0 {
		return out
	}

	ranks := assignRanks(out, edges)

	maxRank := 0
	for _, r := range ranks {
		if r > maxRank {
			maxRank = r
		}
	}

	// Group nodes per rank in input order.
	byRank := make([][]int, maxRank+1)
	for i := range out {
		r := ranks[out[i].ID]
		byRank[r] = append(byRank[r], i)
	}

	horizontal := direction == DirectionHorizontal
	for r, members := range byRank {
		for pos, i := range members {
			along := Margin + float64(pos)*(NodeWidth+layeredNodeGap)
			across := Margin + float64(r)*layeredRankGap
			if horizontal {
				out[i].Position = topo.Position{X: across, Y: along}
			} else {
				out[i].Position = topo.Position{X: along, Y: across}
			}
		}
	}

	return out
}

// assignRanks computes longest-path levels with Kahn's algorithm. Each node
// ends up at one plus the maximum rank of its parents; in-degree-zero nodes
// sit at rank 0. Edges referencing missing nodes are skipped. Nodes trapped
// in a cycle never reach in-degree zero and keep their default rank 0.
func assignRanks(nodes []topo.Node, edges []topo.Edge) map[string]int {
	idx := topo.NodeIndex(nodes)

	children := make(map[string][]string, len(nodes))
	inDegree := make(map[string]int, len(nodes))
	for _, n := range nodes {
		inDegree[n.ID] = 0
	}
	for _, e := range edges {
		if _, ok := idx[e.Source]; !ok {
			continue
		}
		if _, ok := idx[e.Target]; !ok {
			continue
		}
		children[e.Source] = append(children[e.Source], e.Target)
		inDegree[e.Target]++
	}

	ranks := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if inDegree[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range children[curr] {
			if r := ranks[curr] + 1; r > ranks[child] {
				ranks[child] = r
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	return ranks
}
