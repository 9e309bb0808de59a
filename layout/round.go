package layout

import (
	"math"

	"github.com/cyrup-ai/blitz-sub000/common"
	"github.com/cyrup-ai/blitz-sub000/document"
)

// RoundLayout performs a post-order pass over id's subtree snapping each
// node's unrounded layout to integer device pixels. UnroundedLayout already
// holds each node's position in absolute (root-relative) coordinates, so
// rounding each node's edges independently still keeps edges shared between
// adjacent siblings or between a box and its containing block aligned: the
// same absolute float value always rounds to the same integer wherever it
// appears.
func (e *Engine) RoundLayout(id document.NodeID) {
	n, ok := e.Doc.GetNodeMut(id)
	if !ok {
		return
	}

	for _, c := range n.LayoutChildren {
		e.RoundLayout(c)
	}

	local := n.UnroundedLayout
	n.FinalLayout = common.IntRect{
		X:      roundHalfUp(local.X),
		Y:      roundHalfUp(local.Y),
		Width:  roundHalfUp(local.Right()) - roundHalfUp(local.X),
		Height: roundHalfUp(local.Bottom()) - roundHalfUp(local.Y),
	}
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
