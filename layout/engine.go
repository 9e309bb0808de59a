// Package layout computes box sizes and positions from a styled document
// tree: per-display-type layout algorithms (block, flex, grid, table,
// inline, replaced), a layout cache keyed by input parameters, an
// edge-preserving integer rounding pass, and the hit-testing and scroll
// operations the host drives interaction through.
package layout

import (
	"math"

	"go.uber.org/zap"

	"github.com/cyrup-ai/blitz-sub000/common"
	"github.com/cyrup-ai/blitz-sub000/document"
	"github.com/cyrup-ai/blitz-sub000/styloadapt"
)

// Display is the resolved CSS display value driving layout dispatch.
type Display int

const (
	DisplayBlock Display = iota
	DisplayInline
	DisplayFlex
	DisplayGrid
	DisplayTable
	DisplayNone
	DisplayContents
)

// AvailableSpace is one axis of the space a node is being laid out into:
// either a definite length, or a min/max-content request.
type AvailableSpace struct {
	Definite bool
	Value    float64
	MaxContent bool // when !Definite: MaxContent selects max-content, else min-content
}

// Constraints bundles the two axes of input a Compute call receives.
type Constraints struct {
	KnownWidth, KnownHeight   *float64
	AvailableWidth, AvailableHeight AvailableSpace
	RunMode                   common.RunMode
}

// Result is the output of computing one node's layout: its border-box size
// and the positioned rectangles of its layout children, in the node's own
// coordinate space.
type Result struct {
	Size     common.Size
	Children []ChildPlacement
}

// ChildPlacement positions one layout child relative to its parent's
// border box.
type ChildPlacement struct {
	NodeID document.NodeID
	Rect   common.Rect
}

// StyleResolver produces the resolved display and style-derived inputs a
// layout computation needs for a node. The style cascade itself lives
// outside this package; Engine only consumes its output through this
// narrow interface.
type StyleResolver interface {
	Display(id document.NodeID) Display
	Style(id document.NodeID) *styloadapt.TaffyStyloStyle
}

// Engine ties a document to a style resolver and runs layout over it.
type Engine struct {
	Doc   *document.Document
	Style StyleResolver
	Fonts *styloadapt.FontMetricsProvider

	log *zap.Logger
}

// NewEngine constructs a layout engine over doc, resolving styles via style
// and font metrics via fonts.
func NewEngine(doc *document.Document, style StyleResolver, fonts *styloadapt.FontMetricsProvider, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{Doc: doc, Style: style, Fonts: fonts, log: log}
}

// Resolve runs a full layout pass: construct layout children from the
// current DOM/style state, compute layout from the root, then round it.
// It returns an error only for the fatal case of a document with no root
// element; anything else is recovered locally per node.
func (e *Engine) Resolve() error {
	root := e.Doc.Root
	if _, ok := e.Doc.GetNode(root); !ok {
		return errNoRoot
	}

	e.ConstructLayoutChildren(root)

	vw := e.Doc.Viewport.Size.Width
	vh := e.Doc.Viewport.Size.Height

	e.compute(root, Constraints{
		KnownWidth:      nil,
		KnownHeight:     nil,
		AvailableWidth:  AvailableSpace{Definite: true, Value: vw},
		AvailableHeight: AvailableSpace{Definite: true, Value: vh},
		RunMode:         common.RunModePerformLayout,
	}, 0, 0)

	e.RoundLayout(root)
	return nil
}

var errNoRoot = documentStructuralError{}

type documentStructuralError struct{}

func (documentStructuralError) Error() string { return "layout: document has no root element" }

// compute dispatches to the per-display algorithm for id, placing the
// result at (originX, originY) in the parent's coordinate space, storing it
// on the node (unrounded layout + cache), and recursing into children.
func (e *Engine) compute(id document.NodeID, cs Constraints, originX, originY float64) Result {
	n, ok := e.Doc.GetNode(id)
	if !ok {
		return Result{}
	}

	key := cacheKeyFor(cs)
	if n.Cache != nil && n.Cache.Key == key {
		if res, ok := n.Cache.Result.(Result); ok {
			e.place(id, res, originX, originY)
			return res
		}
	}

	display := DisplayBlock
	if e.Style != nil {
		display = e.Style.Display(id)
	}

	var res Result
	switch display {
	case DisplayNone:
		res = Result{}
	case DisplayFlex:
		res = e.computeFlex(id, n, cs)
	case DisplayGrid:
		res = e.computeGrid(id, n, cs)
	case DisplayTable:
		res = e.computeTable(id, n, cs)
	default:
		if isLeaf(n) {
			res = e.computeReplaced(id, n, cs)
		} else {
			res = e.computeBlock(id, n, cs)
		}
	}

	if nm, ok := e.Doc.GetNodeMut(id); ok {
		nm.Cache = &document.LayoutCacheEntry{Key: key, Result: res}
	}

	e.place(id, res, originX, originY)
	return res
}

func (e *Engine) place(id document.NodeID, res Result, originX, originY float64) {
	n, ok := e.Doc.GetNodeMut(id)
	if !ok {
		return
	}
	n.UnroundedLayout = common.Rect{X: originX, Y: originY, Width: res.Size.Width, Height: res.Size.Height}
	for _, c := range res.Children {
		e.compute(c.NodeID, childConstraints(c.Rect), originX+c.Rect.X, originY+c.Rect.Y)
	}
}

func childConstraints(r common.Rect) Constraints {
	w, h := r.Width, r.Height
	return Constraints{
		KnownWidth:      &w,
		KnownHeight:     &h,
		AvailableWidth:  AvailableSpace{Definite: true, Value: r.Width},
		AvailableHeight: AvailableSpace{Definite: true, Value: r.Height},
		RunMode:         common.RunModePerformLayout,
	}
}

func cacheKeyFor(cs Constraints) document.LayoutCacheKey {
	k := document.LayoutCacheKey{
		KnownWidth:  cs.KnownWidth,
		KnownHeight: cs.KnownHeight,
		RunMode:     cs.RunMode,
	}
	if cs.AvailableWidth.Definite {
		k.AvailWidth = cs.AvailableWidth.Value
		k.AvailWidthDef = true
	} else if cs.AvailableWidth.MaxContent {
		k.AvailWidth = math.Inf(1)
	}
	if cs.AvailableHeight.Definite {
		k.AvailHeight = cs.AvailableHeight.Value
		k.AvailHeightDef = true
	} else if cs.AvailableHeight.MaxContent {
		k.AvailHeight = math.Inf(1)
	}
	return k
}

func isLeaf(n *document.Node) bool {
	switch n.RoleData.(type) {
	case document.ImageData, document.CanvasData, document.TextInputState, document.CheckboxState:
		return true
	}
	return n.IsElement("img") || n.IsElement("canvas") || n.IsElement("input") || n.IsElement("svg")
}
