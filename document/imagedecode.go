package document

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"

	"github.com/cyrup-ai/blitz-sub000/utils/images"
)

// DecodeImageResource turns raw fetched bytes into a Resource ready for
// LoadResource, the way fb2's binary-object pipeline turns a raw archive
// entry into a BookImage before layout ever sees it: sniff the payload,
// rasterize SVG for intrinsic sizing while keeping the source markup, and
// decode everything else to tightly packed RGBA.
func DecodeImageResource(id NodeID, raw []byte) (Resource, error) {
	if looksLikeSVG(raw) {
		img, err := images.RasterizeSVGToImage(raw, 0, 0, 0)
		if err != nil {
			return Resource{}, fmt.Errorf("rasterize svg for intrinsic size: %w", err)
		}
		b := img.Bounds()
		return Resource{
			Kind:        ResourceSVG,
			NodeID:      id,
			ImageWidth:  b.Dx(),
			ImageHeight: b.Dy(),
			ImageBytes:  raw,
			IsSVG:       true,
		}, nil
	}

	kind, err := filetype.Match(raw)
	if err != nil || kind == filetype.Unknown {
		return Resource{}, fmt.Errorf("unrecognized image payload")
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return Resource{}, fmt.Errorf("decode %s image: %w", kind.Extension, err)
	}
	rgba := toTightRGBA(img)
	b := rgba.Bounds()

	return Resource{
		Kind:        ResourceImage,
		NodeID:      id,
		ImageWidth:  b.Dx(),
		ImageHeight: b.Dy(),
		ImageBytes:  rgba.Pix,
	}, nil
}

// looksLikeSVG sniffs for SVG source: SVG is XML text, not a binary format
// filetype.Match can identify by magic bytes, so after leading whitespace
// the data must start with "<?xml" or "<svg".
func looksLikeSVG(raw []byte) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return bytes.HasPrefix(trimmed, []byte("<?xml")) || bytes.HasPrefix(trimmed, []byte("<svg"))
}

// toTightRGBA converts img to a tightly packed (no stride padding) RGBA
// buffer, the format ImageData.Bytes and the paint package's replaced-image
// blitter expect.
func toTightRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == rgba.Bounds().Dx()*4 {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.Set(x, y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out
}
