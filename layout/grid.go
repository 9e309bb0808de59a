package layout

import (
	"math"

	"github.com/cyrup-ai/blitz-sub000/common"
	"github.com/cyrup-ai/blitz-sub000/document"
	"github.com/cyrup-ai/blitz-sub000/styloadapt"
)

// GridItemPlacement is one item's resolved row/column span, either
// explicit (from grid-row/grid-column) or auto-placed row-major.
type GridItemPlacement struct {
	Row, Col         int
	RowSpan, ColSpan int
}

// GridItemPlacementResolver supplies explicit placement for items that
// declare one; items absent from the map are auto-placed.
type GridItemPlacementResolver interface {
	GridItemPlacement(id document.NodeID) (GridItemPlacement, bool)
}

// computeGrid resolves track sizes for a grid container and places its
// items, handling subgrid track inheritance and masonry placement on
// whichever axis declares them.
func (e *Engine) computeGrid(id document.NodeID, n *document.Node, cs Constraints) Result {
	width := resolveDefiniteOr(cs.KnownWidth, cs.AvailableWidth, e.Doc.Viewport.Size.Width)

	var style *styloadapt.TaffyStyloStyle
	if e.Style != nil {
		style = e.Style.Style(id)
	}

	var cols, rows []styloadapt.TrackSizingFunction
	if style != nil {
		cols = style.GridTemplateColumns()
		rows = style.GridTemplateRows()
	}
	if len(cols) == 0 {
		cols = []styloadapt.TrackSizingFunction{{Kind: "fr", Value: 1}}
	}

	if isSubgridAxis(cols) {
		if parentStyle := e.parentGridStyle(id); parentStyle != nil {
			cols = convertSubgridTracks(parentStyle.GridTemplateColumns())
		}
	}

	colWidths := resolveTrackSizes(cols, width)

	var placer GridItemPlacementResolver
	if resolver, ok := e.Style.(GridItemPlacementResolver); ok {
		placer = resolver
	}

	masonry := isMasonryAxis(rows)

	var children []ChildPlacement
	cursorCol := 0
	masonryPositions := make([]float64, len(colWidths))
	lastPlacedCol := -1

	for _, c := range n.LayoutChildren {
		placement := GridItemPlacement{Row: 0, Col: cursorCol % len(colWidths), ColSpan: 1, RowSpan: 1}
		explicitPlacement := false
		if placer != nil {
			if explicit, ok := placer.GridItemPlacement(c); ok {
				placement = explicit
				explicitPlacement = true
			}
		}

		colStart := placement.Col
		colSpan := placement.ColSpan
		if colSpan < 1 {
			colSpan = 1
		}
		if colStart+colSpan > len(colWidths) {
			colStart = 0
			colSpan = min(colSpan, len(colWidths))
		}

		var y float64
		cn, _ := e.Doc.GetNode(c)
		itemHeight := intrinsicBlockHeight(e, cn)

		if masonry {
			if !explicitPlacement {
				colStart, y = selectMasonryTrack(masonryPositions, colSpan, lastPlacedCol, cursorCol, masonryTieTolerance)
			} else {
				y = masonryPlacementY(masonryPositions, colStart, colSpan)
			}
			for i := colStart; i < colStart+colSpan && i < len(masonryPositions); i++ {
				masonryPositions[i] = y + itemHeight
			}
			lastPlacedCol = colStart
		} else {
			y = float64(placement.Row) * defaultLineHeight * 2
		}

		x := sumRange(colWidths, 0, colStart)
		itemWidth := sumRange(colWidths, colStart, colStart+colSpan)

		children = append(children, ChildPlacement{
			NodeID: c,
			Rect:   common.Rect{X: x, Y: y, Width: itemWidth, Height: itemHeight},
		})
		cursorCol = colStart + colSpan
	}

	height := 0.0
	for _, ch := range children {
		if bottom := ch.Rect.Bottom(); bottom > height {
			height = bottom
		}
	}
	if cs.KnownHeight != nil {
		height = *cs.KnownHeight
	}

	return Result{Size: common.Size{Width: width, Height: height}, Children: children}
}

func (e *Engine) parentGridStyle(id document.NodeID) *styloadapt.TaffyStyloStyle {
	n, ok := e.Doc.GetNode(id)
	if !ok || n.Parent == document.NoNode {
		return nil
	}
	if e.Style == nil {
		return nil
	}
	return e.Style.Style(n.Parent)
}

func isSubgridAxis(tracks []styloadapt.TrackSizingFunction) bool {
	return len(tracks) == 1 && tracks[0].Kind == "subgrid"
}

func isMasonryAxis(tracks []styloadapt.TrackSizingFunction) bool {
	return len(tracks) == 1 && tracks[0].Kind == "masonry"
}

// convertSubgridTracks converts a parent's track sizing functions into
// equivalent child track functions: fixed and fr tracks pass through
// unchanged (they already resolve to concrete sizes in the parent's own
// sizing pass), fit-content passes through, and intrinsic keywords (auto,
// min-content, max-content) get a sensible auto default in the child.
func convertSubgridTracks(parent []styloadapt.TrackSizingFunction) []styloadapt.TrackSizingFunction {
	out := make([]styloadapt.TrackSizingFunction, len(parent))
	for i, t := range parent {
		switch t.Kind {
		case "fixed", "fr", "fit-content":
			out[i] = t
		default:
			out[i] = styloadapt.TrackSizingFunction{Kind: "auto"}
		}
	}
	return out
}

// masonryTieTolerance is the pixel-difference threshold under which two
// candidate masonry placements are considered tied, so tiny rounding drift
// between tracks doesn't defeat the tie-break order below.
const masonryTieTolerance = 1.0

// masonryPlacementY returns the running position a masonry item would clear
// if forced into the fixed span [colStart, colStart+colSpan): the item's Y
// is the maximum of that span's current running positions. Used for items
// with an explicit column placement, where there is no track to search.
func masonryPlacementY(positions []float64, colStart, colSpan int) float64 {
	best := 0.0
	for i := colStart; i < colStart+colSpan && i < len(positions); i++ {
		if positions[i] > best {
			best = positions[i]
		}
	}
	return best
}

// selectMasonryTrack implements auto-placement in the masonry axis: it
// scans every valid starting track for a span of colSpan tracks, computes
// each candidate's running position (masonryPlacementY), and returns the
// candidate with the minimum position.
//
// Ties within tolerance are broken in order: the track the previous item
// was placed in (so a run of same-width items continues packing the same
// column before spreading out), then the row-major auto-placement cursor,
// then the earliest (lowest-indexed) track.
func selectMasonryTrack(positions []float64, colSpan, lastPlacedCol, cursorCol int, tolerance float64) (colStart int, y float64) {
	numTracks := len(positions)
	if numTracks == 0 {
		return 0, 0
	}
	if colSpan > numTracks {
		colSpan = numTracks
	}
	if colSpan < 1 {
		colSpan = 1
	}
	maxStart := numTracks - colSpan

	bestStart := 0
	bestY := math.Inf(1)
	for start := 0; start <= maxStart; start++ {
		candidate := masonryPlacementY(positions, start, colSpan)
		switch {
		case candidate < bestY-tolerance:
			bestY, bestStart = candidate, start
		case math.Abs(candidate-bestY) <= tolerance:
			if start == lastPlacedCol && bestStart != lastPlacedCol {
				bestStart, bestY = start, candidate
			} else if start == cursorCol && bestStart != lastPlacedCol && bestStart != cursorCol {
				bestStart, bestY = start, candidate
			}
		}
	}
	return bestStart, bestY
}

func resolveTrackSizes(tracks []styloadapt.TrackSizingFunction, available float64) []float64 {
	sizes := make([]float64, len(tracks))
	var fixedTotal, frTotal float64
	for _, t := range tracks {
		switch t.Kind {
		case "fixed":
			fixedTotal += t.Value
		case "fr":
			frTotal += t.Value
		}
	}
	remaining := available - fixedTotal
	if remaining < 0 {
		remaining = 0
	}
	frUnit := 0.0
	if frTotal > 0 {
		frUnit = remaining / frTotal
	}
	for i, t := range tracks {
		switch t.Kind {
		case "fixed":
			sizes[i] = t.Value
		case "fr":
			sizes[i] = frUnit * t.Value
		case "minmax":
			sizes[i] = math.Max(t.Min, math.Min(t.Max, remaining/float64(len(tracks))))
		default:
			sizes[i] = remaining / float64(len(tracks))
		}
	}
	return sizes
}

func sumRange(vals []float64, from, to int) float64 {
	var sum float64
	for i := from; i < to && i < len(vals); i++ {
		sum += vals[i]
	}
	return sum
}
