package layout

import (
	"github.com/cyrup-ai/blitz-sub000/common"
	"github.com/cyrup-ai/blitz-sub000/document"
)

// buildTableContext derives a table's column/row-group/caption structure
// from its layout children, installing it as the table node's role data.
func (e *Engine) buildTableContext(id document.NodeID, n *document.Node) document.TableContext {
	var ctx document.TableContext
	maxCols := 0

	for _, c := range n.LayoutChildren {
		cn, ok := e.Doc.GetNode(c)
		if !ok {
			continue
		}
		switch cn.LocalName {
		case "caption":
			ctx.Captions = append(ctx.Captions, c)
		case "thead", "tbody", "tfoot":
			ctx.RowGroups = append(ctx.RowGroups, c)
			for _, row := range cn.Children {
				if rn, ok := e.Doc.GetNode(row); ok {
					if n := len(rn.Children); n > maxCols {
						maxCols = n
					}
				}
			}
		case "tr":
			ctx.RowGroups = append(ctx.RowGroups, c)
			if n := len(cn.Children); n > maxCols {
				maxCols = n
			}
		}
	}

	if maxCols == 0 {
		maxCols = 1
	}
	ctx.Columns = make([]document.TableColumn, maxCols)

	if nm, ok := e.Doc.GetNodeMut(id); ok {
		nm.RoleData = ctx
	}
	return ctx
}

// computeTable lays out a table's row groups as stacked blocks and divides
// each row's children evenly across the derived column count.
func (e *Engine) computeTable(id document.NodeID, n *document.Node, cs Constraints) Result {
	width := resolveDefiniteOr(cs.KnownWidth, cs.AvailableWidth, e.Doc.Viewport.Size.Width)
	ctx := e.buildTableContext(id, n)
	colWidth := width / float64(max(1, len(ctx.Columns)))

	var y float64
	var children []ChildPlacement
	for _, group := range ctx.RowGroups {
		gn, ok := e.Doc.GetNode(group)
		if !ok {
			continue
		}
		rows := gn.Children
		if gn.LocalName == "tr" {
			rows = []document.NodeID{group}
		}
		for _, row := range rows {
			rn, ok := e.Doc.GetNode(row)
			if !ok {
				continue
			}
			var x float64
			rowHeight := defaultLineHeight * 1.5
			for _, cell := range rn.Children {
				children = append(children, ChildPlacement{
					NodeID: cell,
					Rect:   common.Rect{X: x, Y: y, Width: colWidth, Height: rowHeight},
				})
				x += colWidth
			}
			y += rowHeight
		}
	}

	height := y
	if cs.KnownHeight != nil {
		height = *cs.KnownHeight
	}

	return Result{Size: common.Size{Width: width, Height: height}, Children: children}
}
