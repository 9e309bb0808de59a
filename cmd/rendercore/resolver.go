package main

import (
	"github.com/cyrup-ai/blitz-sub000/common"
	"github.com/cyrup-ai/blitz-sub000/document"
	"github.com/cyrup-ai/blitz-sub000/layout"
	"github.com/cyrup-ai/blitz-sub000/paint"
	"github.com/cyrup-ai/blitz-sub000/styloadapt"
)

// boxStyle is the tiny per-node style record the demo page builder attaches
// directly, standing in for a real CSS cascade: rendercore has no stylo
// binding to compute ComputedValues from, so it drives layout and paint off
// values it already knows when it builds the tree.
type boxStyle struct {
	display    layout.Display
	background common.Color
	color      common.Color
	grow       float64
	border     common.Color
	borderW    float64
}

// domResolver answers layout.StyleResolver, layout.FlexItemStyleResolver and
// paint.StyleResolver from the boxStyle table the page builder populated,
// so one small type wires all three packages instead of a real cascade.
type domResolver struct {
	styles map[document.NodeID]boxStyle
}

func newDomResolver() *domResolver {
	return &domResolver{styles: make(map[document.NodeID]boxStyle)}
}

func (r *domResolver) set(id document.NodeID, s boxStyle) {
	r.styles[id] = s
}

func (r *domResolver) Display(id document.NodeID) layout.Display {
	if s, ok := r.styles[id]; ok {
		return s.display
	}
	return layout.DisplayBlock
}

// Style reports no TaffyStyloStyle: the demo builder never fills in
// grid-template declarations, so there is nothing for the grid/subgrid
// machinery to read.
func (r *domResolver) Style(document.NodeID) *styloadapt.TaffyStyloStyle {
	return nil
}

func (r *domResolver) FlexItemStyle(id document.NodeID) layout.FlexItemStyle {
	s, ok := r.styles[id]
	if !ok {
		return layout.FlexItemStyle{Grow: 0, Shrink: 1, CrossAlign: layout.CrossStretch}
	}
	return layout.FlexItemStyle{Grow: s.grow, Shrink: 1, CrossAlign: layout.CrossStretch}
}

func (r *domResolver) PaintStyle(id document.NodeID) paint.ElementPaintStyle {
	style := paint.DefaultElementPaintStyle()
	s, ok := r.styles[id]
	if !ok {
		return style
	}
	style.Background = s.background
	style.TextColor = s.color
	if s.borderW > 0 {
		for i := range style.BorderWidth {
			style.BorderWidth[i] = s.borderW
			style.BorderColor[i] = s.border
		}
	}
	return style
}
