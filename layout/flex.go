package layout

import (
	"github.com/cyrup-ai/blitz-sub000/common"
	"github.com/cyrup-ai/blitz-sub000/document"
)

// FlexItemStyle is the subset of an item's flex properties the algorithm
// needs; the style resolver supplies concrete values, defaulting to the
// CSS initial values when a node carries no ComputedValues yet.
type FlexItemStyle struct {
	Basis       *float64 // nil = "auto": use the item's natural main-axis size
	Grow        float64
	Shrink      float64
	CrossAlign  CrossAlign
}

// CrossAlign mirrors align-items/align-self for one flex item.
type CrossAlign int

const (
	CrossStretch CrossAlign = iota
	CrossStart
	CrossEnd
	CrossCenter
)

// FlexItemStyleResolver lets layout query an item's flex properties
// without depending on the style-cascade package directly.
type FlexItemStyleResolver interface {
	FlexItemStyle(id document.NodeID) FlexItemStyle
}

// computeFlex lays out n's layout children along the main axis (row,
// left-to-right) using the standard grow/shrink distribution: items are
// given their flex-basis (or natural size) as a starting main size, then
// the leftover space (positive or negative) is distributed proportionally
// to grow or shrink factors, clamped to zero.
func (e *Engine) computeFlex(id document.NodeID, n *document.Node, cs Constraints) Result {
	mainSize := resolveDefiniteOr(cs.KnownWidth, cs.AvailableWidth, e.Doc.Viewport.Size.Width)
	crossSize := resolveDefiniteOr(cs.KnownHeight, cs.AvailableHeight, defaultLineHeight*2)

	resolver, _ := e.Style.(FlexItemStyleResolver)

	type item struct {
		id         document.NodeID
		style      FlexItemStyle
		basis      float64
		mainSize   float64
	}

	items := make([]item, 0, len(n.LayoutChildren))
	var totalBasis, totalGrow, totalShrink float64
	for _, c := range n.LayoutChildren {
		var style FlexItemStyle
		if resolver != nil {
			style = resolver.FlexItemStyle(c)
		}
		cn, _ := e.Doc.GetNode(c)
		basis := defaultLineHeight * 4
		if style.Basis != nil {
			basis = *style.Basis
		} else if cn != nil {
			basis = intrinsicBlockHeight(e, cn) * 4
		}
		items = append(items, item{id: c, style: style, basis: basis, mainSize: basis})
		totalBasis += basis
		totalGrow += style.Grow
		totalShrink += style.Shrink
	}

	leftover := mainSize - totalBasis
	for i := range items {
		switch {
		case leftover > 0 && totalGrow > 0:
			items[i].mainSize = items[i].basis + leftover*(items[i].style.Grow/totalGrow)
		case leftover < 0 && totalShrink > 0:
			items[i].mainSize = items[i].basis + leftover*(items[i].style.Shrink/totalShrink)
		}
		if items[i].mainSize < 0 {
			items[i].mainSize = 0
		}
	}

	var x float64
	children := make([]ChildPlacement, 0, len(items))
	for _, it := range items {
		h := crossSize
		if it.style.CrossAlign != CrossStretch {
			h = defaultLineHeight
		}
		children = append(children, ChildPlacement{
			NodeID: it.id,
			Rect:   common.Rect{X: x, Y: crossOffset(it.style.CrossAlign, crossSize, h), Width: it.mainSize, Height: h},
		})
		x += it.mainSize
	}

	height := crossSize
	if cs.KnownHeight == nil && !cs.AvailableHeight.Definite {
		height = crossSize
	}

	return Result{Size: common.Size{Width: mainSize, Height: height}, Children: children}
}

func crossOffset(align CrossAlign, containerCross, itemCross float64) float64 {
	switch align {
	case CrossEnd:
		return containerCross - itemCross
	case CrossCenter:
		return (containerCross - itemCross) / 2
	default:
		return 0
	}
}
