package paint

import "github.com/cyrup-ai/blitz-sub000/common"

// paintBoxShadow approximates a shadow as a single solid (for Blur == 0) or
// soft-edged (for Blur > 0) rect offset and expanded by Spread: a flat-fill
// scene has no real blur kernel, so a blurred shadow is rendered as a
// sequence of decreasing-alpha rings expanding outward from the sharp core,
// which reads as a soft edge at typical shadow radii without a true
// Gaussian pass.
func (e *Engine) paintBoxShadow(scene *Scene, box common.IntRect, sh BoxShadow) {
	spread := int(sh.Spread)
	core := common.IntRect{
		X:      box.X - spread + int(sh.OffsetX),
		Y:      box.Y - spread + int(sh.OffsetY),
		Width:  box.Width + 2*spread,
		Height: box.Height + 2*spread,
	}

	blur := int(sh.Blur)
	if blur <= 0 {
		scene.fillRect(core, sh.Color)
		return
	}

	rings := 4
	for i := rings; i >= 0; i-- {
		grow := blur * i / rings
		alpha := sh.Color.A * (1 - float64(i)/float64(rings+1))
		ring := common.IntRect{X: core.X - grow, Y: core.Y - grow, Width: core.Width + 2*grow, Height: core.Height + 2*grow}
		scene.fillRect(ring, sh.Color.WithAlpha(alpha))
	}
}

// paintTextShadows draws each shadow back-to-front (first-declared on top)
// behind the glyph fill, so callers must invoke this before painting the
// actual text color.
func (e *Engine) paintTextShadows(scene *Scene, box common.IntRect, shadows []TextShadow) {
	for i := len(shadows) - 1; i >= 0; i-- {
		sh := shadows[i]
		offset := common.IntRect{X: box.X + int(sh.OffsetX), Y: box.Y + int(sh.OffsetY), Width: box.Width, Height: box.Height}
		if sh.Blur > 0 {
			e.paintBoxShadow(scene, offset, BoxShadow{Blur: sh.Blur, Color: sh.Color})
		} else {
			scene.fillRect(offset, sh.Color)
		}
	}
}
