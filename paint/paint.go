package paint

import (
	"go.uber.org/zap"

	"github.com/cyrup-ai/blitz-sub000/common"
	"github.com/cyrup-ai/blitz-sub000/document"
)

// Engine ties a document to a style resolver and paints it into a Scene.
type Engine struct {
	Doc   *document.Document
	Style StyleResolver
	log   *zap.Logger
}

// NewEngine constructs a paint engine over doc, resolving per-node paint
// style via style.
func NewEngine(doc *document.Document, style StyleResolver, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{Doc: doc, Style: style, log: log}
}

type visitKey struct {
	id   document.NodeID
	x, y int
}

// PaintScene clears scene to the document's root/body background (falling
// back to white when no element supplies one) then paints the tree from the
// root. The visited set guards against a malformed PaintChildren cycle
// turning into infinite recursion; it is keyed on (node, rounded position)
// since the same node legitimately repaints at different offsets under
// position:fixed/sticky scroll compensation.
func (e *Engine) PaintScene(scene *Scene) {
	scene.Clear(e.rootBackground())

	root, ok := e.Doc.GetNode(e.Doc.Root)
	if !ok {
		return
	}
	visited := map[visitKey]bool{}
	e.renderElement(scene, root, 0, 0, visited)
}

func (e *Engine) rootBackground() common.Color {
	root, ok := e.Doc.GetNode(e.Doc.Root)
	if !ok || e.Style == nil {
		return common.Opaque(255, 255, 255)
	}
	if s := e.Style.PaintStyle(root.ID); !s.Background.IsTransparent() {
		return s.Background
	}
	for _, c := range root.Children {
		if cn, ok := e.Doc.GetNode(c); ok && cn.LocalName == "body" {
			if s := e.Style.PaintStyle(cn.ID); !s.Background.IsTransparent() {
				return s.Background
			}
		}
	}
	return common.Opaque(255, 255, 255)
}

// renderElement runs the per-element paint sequence for n at (x, y)
// (already scroll-adjusted absolute device pixels): early-outs, outline,
// outset shadows, background, borders, a clip/opacity layer when the style
// calls for one, inset shadows, text, then children.
func (e *Engine) renderElement(scene *Scene, n *document.Node, x, y int, visited map[visitKey]bool) {
	key := visitKey{id: n.ID, x: x, y: y}
	if visited[key] {
		return
	}
	visited[key] = true

	style := DefaultElementPaintStyle()
	if e.Style != nil {
		style = e.Style.PaintStyle(n.ID)
	}
	if style.Hidden {
		return
	}
	if style.Opacity <= 0 {
		return
	}

	box := common.IntRect{X: x, Y: y, Width: n.FinalLayout.Width, Height: n.FinalLayout.Height}
	if box.Area() <= 0 && len(n.PaintChildren) == 0 {
		return
	}

	transformed := applyTransform(style, box)

	if style.OutlineWidth > 0 {
		e.paintOutline(scene, transformed, style)
	}

	for _, sh := range style.BoxShadows {
		if !sh.Inset {
			e.paintBoxShadow(scene, transformed, sh)
		}
	}

	if !style.Background.IsTransparent() {
		scene.fillRect(transformed, style.Background)
	}
	if style.BackgroundImage != nil {
		e.paintGradient(scene, transformed, *style.BackgroundImage)
	}

	e.paintBorders(scene, transformed, style)

	pushedLayer := style.ClipChildren || style.Opacity < 1
	if pushedLayer {
		scene.pushLayer(transformed, style.Opacity)
	}

	for _, sh := range style.BoxShadows {
		if sh.Inset {
			e.paintBoxShadow(scene, transformed, sh)
		}
	}

	e.paintReplacedContent(scene, n, transformed)
	e.paintText(scene, n, transformed, style)

	for _, c := range n.PaintChildren {
		cn, ok := e.Doc.GetNode(c)
		if !ok {
			continue
		}
		cx := x + cn.FinalLayout.X - n.FinalLayout.X - int(n.ScrollX)
		cy := y + cn.FinalLayout.Y - n.FinalLayout.Y - int(n.ScrollY)
		e.renderElement(scene, cn, cx, cy, visited)
	}

	if pushedLayer {
		scene.popLayer()
	}
}

// applyTransform composes the style's transform around its origin with the
// node's untransformed box, then rounds the result back to device pixels.
// Non-axis-aligned results still report their bounding box since Scene only
// rasterizes axis-aligned fills; full skew/rotation rasterization is out of
// scope for this engine's flat-fill paint model.
func applyTransform(style ElementPaintStyle, box common.IntRect) common.IntRect {
	if style.Transform == common.Identity2D() {
		return box
	}
	origin := common.Point{X: float64(box.X) + style.TransformOrigin.X, Y: float64(box.Y) + style.TransformOrigin.Y}
	m := common.Translation2D(origin.X, origin.Y).Mul(style.Transform).Mul(common.Translation2D(-origin.X, -origin.Y))

	corners := []common.Point{
		{X: float64(box.X), Y: float64(box.Y)},
		{X: float64(box.X + box.Width), Y: float64(box.Y)},
		{X: float64(box.X), Y: float64(box.Y + box.Height)},
		{X: float64(box.X + box.Width), Y: float64(box.Y + box.Height)},
	}
	minX, minY := corners[0].X, corners[0].Y
	maxX, maxY := minX, minY
	for _, c := range corners {
		p := m.Apply(c)
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return common.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}.Round()
}
