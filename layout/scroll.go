package layout

import (
	"github.com/cyrup-ai/blitz-sub000/document"
)

// ScrollNodeBy attempts to scroll id by (dx, dy), clamping to the node's
// scroll extent (its content's bottom-right bound minus its own box size,
// derived from its children's FinalLayout). Any remainder that would exceed
// the node's extent bubbles up to its ancestors, and finally to the
// document viewport, matching how an unconsumed wheel delta keeps walking
// up the containing-block chain in a browser.
func (e *Engine) ScrollNodeBy(id document.NodeID, dx, dy float64) {
	e.scrollBubble(id, dx, dy)
}

func (e *Engine) scrollBubble(id document.NodeID, dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	if id == document.NoNode {
		e.scrollViewport(dx, dy)
		return
	}

	n, ok := e.Doc.GetNodeMut(id)
	if !ok {
		return
	}

	maxX, maxY := scrollExtent(e, n)

	newX := clamp(n.ScrollX+dx, 0, maxX)
	newY := clamp(n.ScrollY+dy, 0, maxY)
	consumedX := newX - n.ScrollX
	consumedY := newY - n.ScrollY
	n.ScrollX = newX
	n.ScrollY = newY

	remDX := dx - consumedX
	remDY := dy - consumedY
	if remDX == 0 && remDY == 0 {
		return
	}
	e.scrollBubble(n.Parent, remDX, remDY)
}

func (e *Engine) scrollViewport(dx, dy float64) {
	root, ok := e.Doc.GetNodeMut(e.Doc.Root)
	if !ok {
		return
	}
	maxX, maxY := scrollExtent(e, root)
	root.ScrollX = clamp(root.ScrollX+dx, 0, maxX)
	root.ScrollY = clamp(root.ScrollY+dy, 0, maxY)
}

// scrollExtent returns how far n's content overflows its own box on each
// axis, i.e. the maximum meaningful ScrollX/ScrollY for n.
func scrollExtent(e *Engine, n *document.Node) (maxX, maxY float64) {
	contentRight := float64(n.FinalLayout.X + n.FinalLayout.Width)
	contentBottom := float64(n.FinalLayout.Y + n.FinalLayout.Height)
	for _, cid := range n.LayoutChildren {
		cn, ok := e.Doc.GetNode(cid)
		if !ok {
			continue
		}
		if right := float64(cn.FinalLayout.X + cn.FinalLayout.Width); right > contentRight {
			contentRight = right
		}
		if bottom := float64(cn.FinalLayout.Y + cn.FinalLayout.Height); bottom > contentBottom {
			contentBottom = bottom
		}
	}
	maxX = contentRight - float64(n.FinalLayout.X+n.FinalLayout.Width)
	maxY = contentBottom - float64(n.FinalLayout.Y+n.FinalLayout.Height)
	if maxX < 0 {
		maxX = 0
	}
	if maxY < 0 {
		maxY = 0
	}
	return maxX, maxY
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
