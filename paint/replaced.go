package paint

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/cyrup-ai/blitz-sub000/common"
	"github.com/cyrup-ai/blitz-sub000/document"
)

// paintReplacedContent blits a decoded image's RGBA bytes into box,
// resampling with golang.org/x/image/draw's Catmull-Rom scaler rather than
// nearest-neighbor so downscaled thumbnails don't alias. Canvas/SVG/form-
// control replaced content has no decoded-pixel source at this layer (a
// canvas's pixels live in its own host-driven backing store, SVG is
// rasterized by the image pipeline before it ever reaches here as
// ImageData) so only ImageData is handled.
func (e *Engine) paintReplacedContent(scene *Scene, n *document.Node, box common.IntRect) {
	img, ok := n.RoleData.(document.ImageData)
	if !ok || img.Error || img.IsSVG || len(img.Bytes) < img.Width*img.Height*4 {
		return
	}
	if img.Width <= 0 || img.Height <= 0 || box.Width <= 0 || box.Height <= 0 {
		return
	}

	src := &image.RGBA{
		Pix:    img.Bytes,
		Stride: img.Width * 4,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}
	scaled := image.NewRGBA(image.Rect(0, 0, box.Width, box.Height))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, src.Bounds(), draw.Src, nil)

	clip := intersectIntRect(scene.currentClip(), box)
	alpha := scene.currentAlpha()
	for py := clip.Y; py < clip.Y+clip.Height; py++ {
		srcY := py - box.Y
		for px := clip.X; px < clip.X+clip.Width; px++ {
			srcX := px - box.X
			off := scaled.PixOffset(srcX, srcY)
			c := common.Color{
				R: float64(scaled.Pix[off]) / 255,
				G: float64(scaled.Pix[off+1]) / 255,
				B: float64(scaled.Pix[off+2]) / 255,
				A: float64(scaled.Pix[off+3]) / 255 * alpha,
			}
			scene.blendPixel(px, py, c)
		}
	}
}
