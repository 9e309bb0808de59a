// Package paint rasterizes a laid-out document tree into a pixel buffer:
// background and border compositing, box shadows, gradients, simple text
// decoration geometry, and the clip/opacity layering a CSS stacking context
// needs, all driven by each node's FinalLayout and PaintChildren.
package paint

import (
	"image"
	"image/draw"

	"github.com/cyrup-ai/blitz-sub000/common"
)

// Scene owns the raster target a paint pass draws into, plus the stack of
// active clip rects and opacity accumulated while descending into stacking
// contexts.
type Scene struct {
	Canvas *image.NRGBA
	clips  []common.IntRect
	alphas []float64
}

// NewScene allocates a scene sized to the viewport, ready to paint into.
func NewScene(width, height int) *Scene {
	return &Scene{Canvas: image.NewNRGBA(image.Rect(0, 0, width, height))}
}

// Clear fills the entire canvas with c, the step PaintScene takes before
// painting the document so stale pixels from a previous frame never show
// through transparent regions.
func (s *Scene) Clear(c common.Color) {
	draw.Draw(s.Canvas, s.Canvas.Bounds(), &image.Uniform{C: c.ToNRGBA()}, image.Point{}, draw.Src)
}

// currentClip returns the active clip rect, defaulting to the whole canvas
// when no layer has pushed a narrower one.
func (s *Scene) currentClip() common.IntRect {
	if len(s.clips) == 0 {
		b := s.Canvas.Bounds()
		return common.IntRect{X: b.Min.X, Y: b.Min.Y, Width: b.Dx(), Height: b.Dy()}
	}
	return s.clips[len(s.clips)-1]
}

// currentAlpha returns the accumulated opacity of all active layers.
func (s *Scene) currentAlpha() float64 {
	a := 1.0
	for _, v := range s.alphas {
		a *= v
	}
	return a
}

// pushLayer enters a stacking context clipped to clip (intersected with the
// current clip) and multiplied by opacity.
func (s *Scene) pushLayer(clip common.IntRect, opacity float64) {
	s.clips = append(s.clips, intersectIntRect(s.currentClip(), clip))
	s.alphas = append(s.alphas, opacity)
}

func (s *Scene) popLayer() {
	if len(s.clips) > 0 {
		s.clips = s.clips[:len(s.clips)-1]
	}
	if len(s.alphas) > 0 {
		s.alphas = s.alphas[:len(s.alphas)-1]
	}
}

// fillRect composites c over every pixel of r that falls within the current
// clip, at the current accumulated opacity.
func (s *Scene) fillRect(r common.IntRect, c common.Color) {
	if c.IsTransparent() {
		return
	}
	clip := intersectIntRect(s.currentClip(), r)
	if clip.Area() <= 0 {
		return
	}
	alpha := s.currentAlpha()
	src := c
	if alpha < 1 {
		src = src.WithAlpha(src.A * alpha)
	}
	for y := clip.Y; y < clip.Y+clip.Height; y++ {
		for x := clip.X; x < clip.X+clip.Width; x++ {
			s.blendPixel(x, y, src)
		}
	}
}

// fillCircle composites c over every pixel within radius of (cx, cy) that
// falls within the current clip, at the current accumulated opacity. Used
// for dotted text-decoration rendering, where each dot is a disc rather
// than a square.
func (s *Scene) fillCircle(cx, cy int, radius float64, c common.Color) {
	if c.IsTransparent() || radius <= 0 {
		return
	}
	bounds := common.IntRect{
		X: cx - int(radius) - 1, Y: cy - int(radius) - 1,
		Width: 2*int(radius) + 2, Height: 2*int(radius) + 2,
	}
	clip := intersectIntRect(s.currentClip(), bounds)
	if clip.Area() <= 0 {
		return
	}
	alpha := s.currentAlpha()
	src := c
	if alpha < 1 {
		src = src.WithAlpha(src.A * alpha)
	}
	r2 := radius * radius
	for y := clip.Y; y < clip.Y+clip.Height; y++ {
		dy := float64(y) - float64(cy)
		for x := clip.X; x < clip.X+clip.Width; x++ {
			dx := float64(x) - float64(cx)
			if dx*dx+dy*dy <= r2 {
				s.blendPixel(x, y, src)
			}
		}
	}
}

func (s *Scene) blendPixel(x, y int, src common.Color) {
	b := s.Canvas.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return
	}
	existing := s.Canvas.NRGBAAt(x, y)
	dst := common.Color{
		R: float64(existing.R) / 255, G: float64(existing.G) / 255,
		B: float64(existing.B) / 255, A: float64(existing.A) / 255,
	}
	out := src.Over(dst)
	s.Canvas.SetNRGBA(x, y, out.ToNRGBA())
}

func intersectIntRect(a, b common.IntRect) common.IntRect {
	x0, y0 := max(a.X, b.X), max(a.Y, b.Y)
	x1, y1 := min(a.X+a.Width, b.X+b.Width), min(a.Y+a.Height, b.Y+b.Height)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return common.IntRect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
