package layout

import (
	"math"

	"github.com/CRONUS-Security/DeepNetVisibility/pkg/topo"
)

// Radial layout parameters.
const (
	radialCenterX = 600.0
	radialCenterY = 400.0
	radialStep    = 220.0 // radius increment per ring
)

// Radial arranges nodes in concentric rings around a chosen center node.
//
// The center is the first CIDR-type node, else the first network device,
// else the first node in input order. This precedence is deliberately simple
// and is part of the contract. A breadth-first traversal over the undirected
// adjacency assigns every reachable node a ring equal to its BFS distance;
// unreachable nodes are placed one ring beyond the furthest reachable one.
// Nodes within a ring are spread at equal angular steps starting at the top.
func Radial(nodes []topo.Node, edges []topo.Edge) []topo.Node {
	out := topo.CloneNodes(nodes)
	if len(out) == 0 {
		return out
	}
	if len(out) == 1 {
		out[0].Position = topo.Position{X: radialCenterX, Y: radialCenterY}
		return out
	}

	center := pickCenter(out)
	adj := undirectedAdjacency(out, edges)

	// BFS ring assignment from the center.
	level := map[string]int{center: 0}
	queue := []string{center}
	maxLevel := 0
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, next := range adj[curr] {
			if _, seen := level[next]; seen {
				continue
			}
			level[next] = level[curr] + 1
			if level[next] > maxLevel {
				maxLevel = level[next]
			}
			queue = append(queue, next)
		}
	}

	// Everything BFS never reached goes on one outer ring.
	orphanLevel := maxLevel + 1
	byLevel := make(map[int][]int)
	for i := range out {
		l, ok := level[out[i].ID]
		if !ok {
			l = orphanLevel
		}
		byLevel[l] = append(byLevel[l], i)
	}

	for l, members := range byLevel {
		radius := float64(l) * radialStep
		step := 2 * math.Pi / float64(len(members))
		for pos, i := range members {
			angle := -math.Pi/2 + float64(pos)*step
			out[i].Position = topo.Position{
				X: radialCenterX + radius*math.Cos(angle),
				Y: radialCenterY + radius*math.Sin(angle),
			}
		}
	}

	return out
}

// pickCenter implements the documented center precedence: first CIDR node,
// else first network device, else the first node.
func pickCenter(nodes []topo.Node) string {
	for _, n := range nodes {
		if n.Type == topo.TypeCIDR {
			return n.ID
		}
	}
	for _, n := range nodes {
		if n.Type == topo.TypeNetDevice {
			return n.ID
		}
	}
	return nodes[0].ID
}
