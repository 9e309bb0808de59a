// Package styloadapt adapts a computed-style representation to the shape
// the layout engine expects: font metrics lookups with proportional
// fallbacks, a lazily-caching wrapper around grid-template data, and device
// construction from a viewport description.
package styloadapt

import "github.com/cyrup-ai/blitz-sub000/common"

// ComputedValues is the external collaborator type produced by whatever
// style cascade resolves a node's declared properties into used values.
// The layout and paint packages consume it as an opaque handle stored on
// document.Node.Style; styloadapt is the only package that interprets it.
type ComputedValues interface {
	// Property returns the resolved value for a CSS property name, or
	// (nil, false) if the property was not set.
	Property(name string) (any, bool)
}

// Device is the layout engine's view of the rendering surface: viewport
// size in CSS pixels, device-pixel-ratio, and color scheme, derived once
// from the host-supplied viewport description.
type Device struct {
	ViewportSize common.Size
	DPR          float64
	ColorScheme  common.ColorScheme
}

// ViewportInput is the raw viewport description a host passes in: physical
// pixel size and the scale factor between physical and CSS pixels.
type ViewportInput struct {
	PhysicalSize common.Size
	Scale        float64
	ColorScheme  common.ColorScheme
}

// NewDevice builds a Device from a viewport input. Viewport size in CSS
// pixels is physical size divided by scale; a zero or negative scale is
// treated as 1.0 to avoid dividing by zero.
func NewDevice(in ViewportInput) Device {
	scale := in.Scale
	if scale <= 0 {
		scale = 1.0
	}
	return Device{
		ViewportSize: common.Size{
			Width:  in.PhysicalSize.Width / scale,
			Height: in.PhysicalSize.Height / scale,
		},
		DPR:         scale,
		ColorScheme: in.ColorScheme,
	}
}
