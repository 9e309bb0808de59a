package main

import (
	"go.uber.org/zap"

	"github.com/cyrup-ai/blitz-sub000/common"
	"github.com/cyrup-ai/blitz-sub000/config"
	"github.com/cyrup-ai/blitz-sub000/document"
	"github.com/cyrup-ai/blitz-sub000/layout"
)

// PageOptions controls the demonstration page buildPage assembles: it
// stands in for whatever upstream markup/CSS pipeline a host would normally
// parse into a Document, since no HTML parser lives in this module.
type PageOptions struct {
	Title      string
	Background common.Color
	BodyColor  common.Color
	Paragraphs []string
}

// DefaultPageOptions returns the page rendered when no --title/--text flags
// are given.
func DefaultPageOptions() PageOptions {
	return PageOptions{
		Title:      "rendercore",
		Background: common.Opaque(0xff, 0xff, 0xff),
		BodyColor:  common.Opaque(0x20, 0x20, 0x20),
		Paragraphs: []string{"Hello from rendercore."},
	}
}

// buildPage constructs a small html > body > (header, two flex panels,
// paragraphs) tree and fills resolver with the style each node paints and
// lays out with.
func buildPage(doc *document.Document, resolver *domResolver, opts PageOptions) {
	html := appendElement(doc, doc.Root, "html")
	resolver.set(html, boxStyle{display: layout.DisplayBlock, background: common.Transparent})

	body := appendElement(doc, html, "body")
	resolver.set(body, boxStyle{display: layout.DisplayBlock, background: opts.Background, color: opts.BodyColor})

	header := appendElement(doc, body, "header")
	resolver.set(header, boxStyle{
		display:    layout.DisplayBlock,
		background: common.Opaque(0x33, 0x66, 0x99),
		color:      common.Opaque(0xff, 0xff, 0xff),
	})
	appendText(doc, header, opts.Title)

	row := appendElement(doc, body, "div")
	resolver.set(row, boxStyle{display: layout.DisplayFlex, background: common.Transparent})

	left := appendElement(doc, row, "div")
	resolver.set(left, boxStyle{display: layout.DisplayBlock, background: common.Opaque(0xee, 0xee, 0xee), grow: 1, border: common.Opaque(0x99, 0x99, 0x99), borderW: 1})
	appendText(doc, left, "left panel")

	right := appendElement(doc, row, "div")
	resolver.set(right, boxStyle{display: layout.DisplayBlock, background: common.Opaque(0xdd, 0xdd, 0xdd), grow: 2, border: common.Opaque(0x99, 0x99, 0x99), borderW: 1})
	appendText(doc, right, "right panel")

	for _, p := range opts.Paragraphs {
		para := appendElement(doc, body, "p")
		resolver.set(para, boxStyle{display: layout.DisplayBlock, background: common.Transparent, color: opts.BodyColor})
		appendText(doc, para, p)
	}
}

func appendElement(doc *document.Document, parent document.NodeID, localName string) document.NodeID {
	id := doc.CreateNode(&document.Node{
		Kind:      document.KindElement,
		LocalName: localName,
		Parent:    parent,
		Before:    document.NoNode,
		After:     document.NoNode,
		Flags:     document.FlagIsInDocument,
	})
	attachChild(doc, parent, id)
	return id
}

func appendText(doc *document.Document, parent document.NodeID, text string) document.NodeID {
	id := doc.CreateNode(&document.Node{
		Kind:   document.KindText,
		Text:   text,
		Parent: parent,
		Before: document.NoNode,
		After:  document.NoNode,
		Flags:  document.FlagIsInDocument,
	})
	attachChild(doc, parent, id)
	return id
}

func attachChild(doc *document.Document, parent, child document.NodeID) {
	n, ok := doc.GetNodeMut(parent)
	if !ok {
		return
	}
	n.Children = append(n.Children, child)
}

// newDemoDocument builds the Document, style resolver and layout engine for
// one render pass at the given viewport.
func newDemoDocument(opts PageOptions, vw, vh, scale float64, log *zap.Logger) (*document.Document, *domResolver, error) {
	viewport := common.Size{Width: vw, Height: vh}
	doc, err := document.NewDocument(document.Config{
		Viewport: document.Viewport{
			Size:  viewport,
			Scale: scale,
		},
		Log: config.WithRenderContext(log, viewport, scale),
	})
	if err != nil {
		return nil, nil, err
	}

	resolver := newDomResolver()
	buildPage(doc, resolver, opts)
	return doc, resolver, nil
}
