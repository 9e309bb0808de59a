package paint

import (
	"github.com/cyrup-ai/blitz-sub000/common"
	"github.com/cyrup-ai/blitz-sub000/document"
)

// Edge indexes the four box edges in top, right, bottom, left order,
// matching CSS shorthand property order.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeRight
	EdgeBottom
	EdgeLeft
)

// BoxShadow is one resolved box-shadow layer.
type BoxShadow struct {
	OffsetX, OffsetY, Blur, Spread float64
	Color                          common.Color
	Inset                          bool
}

// GradientStop is one color stop in a linear/radial/conic gradient, Position
// along the gradient's length (not necessarily clamped to [0, 1]: a
// repeating gradient's first and last stop positions define its repeat
// period). Hint, when non-nil, is this stop's CSS color-interpolation-hint
// relative to the previous stop: a percentage in (previous.Position,
// Position) where the interpolation midpoint sits, producing the
// non-linear easing a plain stop list can't express.
type GradientStop struct {
	Color    common.Color
	Position float64
	Hint     *float64
}

// GradientKind selects how a Gradient's stops are swept across a box.
type GradientKind int

const (
	GradientLinear GradientKind = iota
	GradientRadial
	GradientConic
)

// Gradient is a resolved CSS gradient: a direction/center plus color stops.
type Gradient struct {
	Kind      GradientKind
	AngleRad  float64 // linear: sweep angle; conic: starting angle
	Stops     []GradientStop
	Repeating bool
}

// TextDecorationLine selects which text-decoration lines are drawn.
type TextDecorationLine uint8

const (
	TextDecorationUnderline TextDecorationLine = 1 << iota
	TextDecorationOverline
	TextDecorationLineThrough
)

// TextDecorationStyle selects the line's stroke pattern.
type TextDecorationStyle int

const (
	TextDecorationSolid TextDecorationStyle = iota
	TextDecorationDotted
	TextDecorationDashed
	TextDecorationWavy
	TextDecorationDouble
)

// TextShadow is one resolved text-shadow layer, applied back-to-front.
type TextShadow struct {
	OffsetX, OffsetY, Blur float64
	Color                  common.Color
}

// ElementPaintStyle is the resolved paint-relevant subset of a node's
// computed style. The style cascade lives outside this package; paint only
// ever sees this narrow, already-resolved view of it.
type ElementPaintStyle struct {
	Background       common.Color
	BackgroundImage  *Gradient
	BorderColor      [4]common.Color
	BorderWidth      [4]float64
	OutlineColor     common.Color
	OutlineWidth     float64
	Opacity          float64
	Transform        common.Affine2D
	TransformOrigin  common.Point
	ClipChildren     bool
	Hidden           bool // display:none or visibility:hidden
	BoxShadows       []BoxShadow
	TextColor        common.Color
	TextDecoration   TextDecorationLine
	DecorationStyle  TextDecorationStyle
	DecorationColor  common.Color
	TextShadows      []TextShadow
}

// DefaultElementPaintStyle is the CSS-initial paint style: transparent
// background, no borders, fully opaque, identity transform, visible.
func DefaultElementPaintStyle() ElementPaintStyle {
	return ElementPaintStyle{Opacity: 1, Transform: common.Identity2D(), TextColor: common.Opaque(0, 0, 0)}
}

// StyleResolver supplies the resolved paint style for a node. Implementors
// typically adapt a styloadapt.ComputedValues lookup into this shape.
type StyleResolver interface {
	PaintStyle(id document.NodeID) ElementPaintStyle
}
