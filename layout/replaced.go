package layout

import (
	"github.com/cyrup-ai/blitz-sub000/common"
	"github.com/cyrup-ai/blitz-sub000/document"
)

// defaultReplacedWidth and defaultReplacedHeight are the CSS 2.1 fallback
// intrinsic size for a replaced element with no usable size information
// from any other source (explicit attributes, intrinsic image size,
// object-fit).
const (
	defaultReplacedWidth  = 300.0
	defaultReplacedHeight = 150.0
)

// computeReplaced measures a leaf replaced element (image, canvas, SVG
// root, form control): explicit attributes first, then intrinsic size,
// then the CSS fallback box.
func (e *Engine) computeReplaced(id document.NodeID, n *document.Node, cs Constraints) Result {
	w, h := defaultReplacedWidth, defaultReplacedHeight

	switch data := n.RoleData.(type) {
	case document.ImageData:
		if data.Error {
			w, h = 0, 0
		} else if data.Width > 0 && data.Height > 0 {
			w, h = float64(data.Width), float64(data.Height)
		}
	case document.CanvasData:
		if data.Width > 0 && data.Height > 0 {
			w, h = float64(data.Width), float64(data.Height)
		}
	case document.TextInputState, document.CheckboxState:
		w, h = defaultControlWidth, defaultLineHeight*1.4
	}

	if attr, ok := n.GetAttr("width"); ok {
		if v, ok := parsePixelAttr(attr); ok {
			w = v
		}
	}
	if attr, ok := n.GetAttr("height"); ok {
		if v, ok := parsePixelAttr(attr); ok {
			h = v
		}
	}

	if cs.KnownWidth != nil {
		w = *cs.KnownWidth
	}
	if cs.KnownHeight != nil {
		h = *cs.KnownHeight
	}

	return Result{Size: common.Size{Width: w, Height: h}}
}

const defaultControlWidth = 150.0

func parsePixelAttr(s string) (float64, bool) {
	var v float64
	var any bool
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		v = v*10 + float64(r-'0')
		any = true
	}
	return v, any
}
