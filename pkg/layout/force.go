package layout

import (
	"math"

	"github.com/CRONUS-Security/DeepNetVisibility/pkg/topo"
)

// Force simulation parameters.
const (
	// DefaultIterations is the simulation budget when none is given.
	DefaultIterations = 100

	forceInitRadius = 300.0 // radius of the initial placement circle
	forceRepulsion  = 6000.0
	forceSpring     = 0.1   // spring stiffness toward the ideal edge length
	forceIdealDist  = 200.0 // ideal edge length
	forceDamping    = 0.85
	forceMinDist    = 1.0 // distance floor to keep 1/d² finite
)

// Force runs a fixed-budget force-directed simulation and returns the
// repositioned nodes.
//
// Unpositioned nodes (position exactly at the origin) are initialized on a
// circle of fixed radius, evenly spaced by angle; already-positioned nodes
// keep their coordinates as the starting point. Each iteration applies an
// inverse-square repulsion between every unordered node pair and a linear
// spring along every edge, accumulates the forces into per-node velocities,
// damps the velocities, and integrates them into positions. After the last
// iteration the whole layout is translated so its minimum x and y sit at the
// margin.
//
// The velocity and position arrays live only for the duration of the call;
// separate invocations share nothing.
func Force(nodes []topo.Node, edges []topo.Edge, iterations int) []topo.Node {
	out := topo.CloneNodes(nodes)
	n := len(out)
	if n == 0 {
		return out
	}
	if iterations <= 0 {
		iterations = DefaultIterations
	}

	idx := topo.NodeIndex(out)

	// Local simulation arena, discarded on return.
	px := make([]float64, n)
	py := make([]float64, n)
	vx := make([]float64, n)
	vy := make([]float64, n)

	for i, node := range out {
		if node.Position.X == 0 && node.Position.Y == 0 {
			angle := 2 * math.Pi * float64(i) / float64(n)
			px[i] = forceInitRadius * math.Cos(angle)
			py[i] = forceInitRadius * math.Sin(angle)
		} else {
			px[i] = node.Position.X
			py[i] = node.Position.Y
		}
	}

	// Resolve edges to index pairs once, dropping dangling endpoints.
	type spring struct{ a, b int }
	springs := make([]spring, 0, len(edges))
	for _, e := range edges {
		a, okA := idx[e.Source]
		b, okB := idx[e.Target]
		if !okA || !okB || a == b {
			continue
		}
		springs = append(springs, spring{a, b})
	}

	fx := make([]float64, n)
	fy := make([]float64, n)

	for iter := 0; iter < iterations; iter++ {
		for i := range fx {
			fx[i] = 0
			fy[i] = 0
		}

		// Pairwise repulsion: strength / d², along the connecting line.
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx := px[j] - px[i]
				dy := py[j] - py[i]
				dist := math.Hypot(dx, dy)
				if dist < forceMinDist {
					dist = forceMinDist
				}
				f := forceRepulsion / (dist * dist)
				ux := dx / dist
				uy := dy / dist
				fx[i] -= f * ux
				fy[i] -= f * uy
				fx[j] += f * ux
				fy[j] += f * uy
			}
		}

		// Springs: linear in the deviation from the ideal length.
		// A stretched edge pulls its endpoints together, a compressed
		// one pushes them apart.
		for _, s := range springs {
			dx := px[s.b] - px[s.a]
			dy := py[s.b] - py[s.a]
			dist := math.Hypot(dx, dy)
			if dist < forceMinDist {
				dist = forceMinDist
			}
			f := forceSpring * (dist - forceIdealDist)
			ux := dx / dist
			uy := dy / dist
			fx[s.a] += f * ux
			fy[s.a] += f * uy
			fx[s.b] -= f * ux
			fy[s.b] -= f * uy
		}

		for i := 0; i < n; i++ {
			vx[i] = (vx[i] + fx[i]) * forceDamping
			vy[i] = (vy[i] + fy[i]) * forceDamping
			px[i] += vx[i]
			py[i] += vy[i]
		}
	}

	// Translate so the layout starts at the margin.
	minX, minY := px[0], py[0]
	for i := 1; i < n; i++ {
		minX = math.Min(minX, px[i])
		minY = math.Min(minY, py[i])
	}
	for i := range out {
		out[i].Position = topo.Position{
			X: px[i] - minX + Margin,
			Y: py[i] - minY + Margin,
		}
	}

	return out
}
