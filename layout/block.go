package layout

import (
	"github.com/cyrup-ai/blitz-sub000/common"
	"github.com/cyrup-ai/blitz-sub000/document"
)

// computeBlock lays out n's layout children top to bottom in normal flow:
// each child takes the container's available width (minus nothing, since
// margin/padding/border resolution lives in the style layer feeding this
// package) and stacks below the previous child.
func (e *Engine) computeBlock(id document.NodeID, n *document.Node, cs Constraints) Result {
	width := resolveDefiniteOr(cs.KnownWidth, cs.AvailableWidth, e.Doc.Viewport.Size.Width)

	var y float64
	var children []ChildPlacement
	for _, c := range n.LayoutChildren {
		cn, ok := e.Doc.GetNode(c)
		if !ok {
			continue
		}
		childHeight := intrinsicBlockHeight(e, cn)
		children = append(children, ChildPlacement{
			NodeID: c,
			Rect:   common.Rect{X: 0, Y: y, Width: width, Height: childHeight},
		})
		y += childHeight
	}

	height := y
	if cs.KnownHeight != nil {
		height = *cs.KnownHeight
	}

	return Result{Size: common.Size{Width: width, Height: height}, Children: children}
}

// intrinsicBlockHeight estimates a child's height before it has been
// computed, for the purposes of stacking siblings. Replaced elements with
// role data report their natural size; everything else falls back to a
// single line height. The estimate is final: the child's own compute call
// receives it as a known height.
func intrinsicBlockHeight(e *Engine, n *document.Node) float64 {
	switch data := n.RoleData.(type) {
	case document.ImageData:
		if data.Height > 0 {
			return float64(data.Height)
		}
	case document.CanvasData:
		if data.Height > 0 {
			return float64(data.Height)
		}
	}
	if n.Flags.Has(document.FlagIsInlineRoot) {
		return defaultLineHeight
	}
	return defaultLineHeight
}

const defaultLineHeight = 16.0

func resolveDefiniteOr(known *float64, avail AvailableSpace, fallback float64) float64 {
	if known != nil {
		return *known
	}
	if avail.Definite {
		return avail.Value
	}
	return fallback
}
