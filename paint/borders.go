package paint

import "github.com/cyrup-ai/blitz-sub000/common"

// paintBorders draws each of the four border edges as its own solid strip,
// matching how a browser paints mismatched per-edge widths/colors/styles
// independently rather than as one stroked outline.
func (e *Engine) paintBorders(scene *Scene, box common.IntRect, style ElementPaintStyle) {
	top := int(style.BorderWidth[EdgeTop])
	right := int(style.BorderWidth[EdgeRight])
	bottom := int(style.BorderWidth[EdgeBottom])
	left := int(style.BorderWidth[EdgeLeft])

	if top > 0 {
		scene.fillRect(common.IntRect{X: box.X, Y: box.Y, Width: box.Width, Height: top}, style.BorderColor[EdgeTop])
	}
	if bottom > 0 {
		scene.fillRect(common.IntRect{X: box.X, Y: box.Y + box.Height - bottom, Width: box.Width, Height: bottom}, style.BorderColor[EdgeBottom])
	}
	if left > 0 {
		scene.fillRect(common.IntRect{X: box.X, Y: box.Y + top, Width: left, Height: box.Height - top - bottom}, style.BorderColor[EdgeLeft])
	}
	if right > 0 {
		scene.fillRect(common.IntRect{X: box.X + box.Width - right, Y: box.Y + top, Width: right, Height: box.Height - top - bottom}, style.BorderColor[EdgeRight])
	}
}

// paintOutline draws a uniform outline strip just outside box, unlike
// borders which are part of the box model proper.
func (e *Engine) paintOutline(scene *Scene, box common.IntRect, style ElementPaintStyle) {
	w := int(style.OutlineWidth)
	outer := common.IntRect{X: box.X - w, Y: box.Y - w, Width: box.Width + 2*w, Height: box.Height + 2*w}
	scene.fillRect(common.IntRect{X: outer.X, Y: outer.Y, Width: outer.Width, Height: w}, style.OutlineColor)
	scene.fillRect(common.IntRect{X: outer.X, Y: outer.Y + outer.Height - w, Width: outer.Width, Height: w}, style.OutlineColor)
	scene.fillRect(common.IntRect{X: outer.X, Y: outer.Y, Width: w, Height: outer.Height}, style.OutlineColor)
	scene.fillRect(common.IntRect{X: outer.X + outer.Width - w, Y: outer.Y, Width: w, Height: outer.Height}, style.OutlineColor)
}
