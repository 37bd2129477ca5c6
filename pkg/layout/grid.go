package layout

import (
	"math"

	"github.com/CRONUS-Security/DeepNetVisibility/pkg/topo"
)

// gridPadding is the gap between cell footprints.
const gridPadding = 40.0

// Grid places nodes row-major into a grid. The column count defaults to
// ceil(sqrt(n)) so the grid stays roughly square; pass columns > 0 to
// override. Cell size is the node footprint plus fixed padding.
func Grid(nodes []topo.Node, columns int) []topo.Node {
	out := topo.CloneNodes(nodes)
	if len(out) == 0 {
		return out
	}

	if columns <= 0 {
		columns = int(math.Ceil(math.Sqrt(float64(len(out)))))
	}

	cellW := NodeWidth + gridPadding
	cellH := NodeHeight + gridPadding
	for i := range out {
		col := i % columns
		row := i / columns
		out[i].Position = topo.Position{
			X: Margin + float64(col)*cellW,
			Y: Margin + float64(row)*cellH,
		}
	}
	return out
}
