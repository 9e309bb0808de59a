package paint

import (
	"github.com/cyrup-ai/blitz-sub000/common"
	"github.com/cyrup-ai/blitz-sub000/document"
)

const defaultFontSize = 16.0

// rescueTextColor corrects two inputs that would otherwise paint invisible
// or illegible text: a fully (or near-fully) transparent color, which
// authors sometimes set by mistake on a dark background and expect to see
// rendered as plain black, and near-white-on-white text, nudged darker so
// it stays legible against a light page background.
func rescueTextColor(c common.Color) common.Color {
	if c.A < 0.01 {
		return common.Opaque(0, 0, 0)
	}
	if c.R >= 0.95 && c.G >= 0.95 && c.B >= 0.95 {
		return common.Color{R: c.R * 0.6, G: c.G * 0.6, B: c.B * 0.6, A: c.A}
	}
	return c
}

// paintText renders an inline root's content (a node whose RoleData is
// InlineLayoutData; any other node, text nodes included, paints nothing
// here): the shadow
// layers, a fill standing in for the shaped glyph run (no font rasterizer
// is wired into this engine; the fill communicates text presence and color
// at the line-box granularity the layout package already computes), and
// the requested decoration lines.
func (e *Engine) paintText(scene *Scene, n *document.Node, box common.IntRect, style ElementPaintStyle) {
	if _, ok := n.RoleData.(document.InlineLayoutData); !ok {
		return
	}
	color := rescueTextColor(style.TextColor)

	e.paintTextShadows(scene, box, style.TextShadows)
	scene.fillRect(box, color.WithAlpha(color.A * 0.7))
	e.paintTextDecorations(scene, box, style, defaultFontSize)
}
