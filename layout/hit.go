package layout

import (
	"github.com/cyrup-ai/blitz-sub000/document"
)

// HitResult identifies the deepest paint-order node whose box contains the
// tested point, along with the point translated into that node's local
// coordinate space.
type HitResult struct {
	NodeID document.NodeID
	LocalX float64
	LocalY float64
}

// Hit descends the layout tree in paint order (front-to-back among
// overlapping siblings, so later PaintChildren entries win ties) looking for
// the deepest node whose FinalLayout box contains (x, y) in viewport
// coordinates.
func (e *Engine) Hit(x, y float64) (HitResult, bool) {
	if e.Doc == nil {
		return HitResult{}, false
	}
	root, ok := e.Doc.GetNode(e.Doc.Root)
	if !ok {
		return HitResult{}, false
	}
	return e.hitSubtree(root, x, y)
}

func (e *Engine) hitSubtree(n *document.Node, x, y float64) (HitResult, bool) {
	box := n.FinalLayout
	inside := x >= float64(box.X) && x < float64(box.X+box.Width) &&
		y >= float64(box.Y) && y < float64(box.Y+box.Height)

	// FinalLayout boxes are absolute (root-relative) coordinates, so a child
	// is tested against the same (x, y) as its parent; still descend into
	// children even when the parent box itself doesn't contain the point
	// (e.g. negative margins), but only report a hit within this node's own
	// box if no deeper child claims it first.
	for i := len(n.PaintChildren) - 1; i >= 0; i-- {
		cid := n.PaintChildren[i]
		cn, ok := e.Doc.GetNode(cid)
		if !ok {
			continue
		}
		if res, hit := e.hitSubtree(cn, x, y); hit {
			return res, true
		}
	}

	if inside {
		return HitResult{
			NodeID: n.ID,
			LocalX: x - float64(box.X),
			LocalY: y - float64(box.Y),
		}, true
	}
	return HitResult{}, false
}
