package document

import (
	"fmt"
	"net/url"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/cyrup-ai/blitz-sub000/common"
	"github.com/cyrup-ai/blitz-sub000/css"
)

// NetProvider resolves a resource URL into bytes. A real application backs
// this with an HTTP client and a disk/memory cache; tests use a fake.
type NetProvider interface {
	Fetch(url string) ([]byte, error)
}

// NavigationProvider is notified when form submission or link activation
// wants to leave the current document.
type NavigationProvider interface {
	Navigate(method, url string, body []byte, contentType string) error
}

// ShellProvider receives host-level requests the document cannot satisfy on
// its own, such as a cursor-icon change on hover.
type ShellProvider interface {
	SetCursor(name string)
}

// Viewport describes the rendering surface a Document is built for.
type Viewport struct {
	Size        common.Size
	Scale       float64
	ColorScheme common.ColorScheme
}

// attachedStylesheet pairs a parsed stylesheet with the node that owns it
// (a <style> element or a synthetic node representing a loaded <link>).
type attachedStylesheet struct {
	owner NodeID
	sheet *css.Stylesheet
}

// Document owns the node arena plus the document-level state that sits atop
// it: attached stylesheets in DOM order, pending style-invalidation
// snapshots, the hover ancestor chain, and the currently focused node.
type Document struct {
	arena *Arena
	Root  NodeID

	BaseURL  *url.URL
	Viewport Viewport

	stylesheets []*attachedStylesheet

	snapshots map[NodeID]*Snapshot

	hoverChain []NodeID
	focus      NodeID

	Net ShellProvider
	Nav NavigationProvider

	parser *css.Parser
	log    *zap.Logger
}

// Config supplies the inputs needed to construct a new Document.
type Config struct {
	BaseURL  string
	Viewport Viewport
	Log      *zap.Logger
}

// NewDocument creates a Document whose root is a synthetic document node
// occupying arena slot zero.
func NewDocument(cfg Config) (*Document, error) {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}

	d := &Document{
		arena:     NewArena(),
		Viewport:  cfg.Viewport,
		snapshots: make(map[NodeID]*Snapshot),
		focus:     NoNode,
		parser:    css.NewParser(log),
		log:       log,
	}

	root := d.arena.CreateNode(&Node{
		Kind:   KindDocument,
		Parent: NoNode,
		Before: NoNode,
		After:  NoNode,
		Flags:  FlagIsInDocument,
	})
	d.Root = root

	if cfg.BaseURL != "" {
		d.SetBaseURL(cfg.BaseURL)
	}

	return d, nil
}

// SetBaseURL parses raw as the document's base URL. A parse failure is
// logged and leaves the previous base URL (nil, on first call) in place
// rather than failing document construction outright.
func (d *Document) SetBaseURL(raw string) {
	u, err := url.Parse(raw)
	if err != nil {
		d.log.Warn("invalid base URL, ignoring", zap.String("url", raw), zap.Error(err))
		return
	}
	d.BaseURL = u
}

// GetNode returns the node for id.
func (d *Document) GetNode(id NodeID) (*Node, bool) {
	return d.arena.GetNode(id)
}

// GetNodeMut returns the node for id for in-place mutation.
func (d *Document) GetNodeMut(id NodeID) (*Node, bool) {
	return d.arena.GetNodeMut(id)
}

// CreateNode inserts a new node into the document's arena without linking it
// into the tree; callers attach it via a subsequent child-list mutation.
func (d *Document) CreateNode(n *Node) NodeID {
	return d.arena.CreateNode(n)
}

// DeepCloneNode clones id's entire subtree into fresh, detached node slots.
func (d *Document) DeepCloneNode(id NodeID) (NodeID, error) {
	return d.arena.DeepCloneNode(id)
}

// RemoveAndDropPE detaches id from its parent and frees its subtree and
// pseudo-elements. Pending snapshots and hover/focus state referencing
// removed nodes are left to the next style-invalidation pass to discard.
func (d *Document) RemoveAndDropPE(id NodeID) {
	d.arena.RemoveAndDropPE(id)
}

// ancestorChain walks id up to (and including) the root, nearest-first.
func (d *Document) ancestorChain(id NodeID) []NodeID {
	var chain []NodeID
	for cur := id; cur != NoNode; {
		chain = append(chain, cur)
		n, ok := d.arena.GetNode(cur)
		if !ok {
			break
		}
		cur = n.Parent
	}
	return chain
}

// commonAncestorDepth returns how many entries at the start of a and b
// (both nearest-first ancestor chains, as returned by ancestorChain) are
// shared once reversed to root-first order; equivalently, the number of
// trailing entries the two chains have in common.
func commonAncestorDepth(a, b []NodeID) int {
	i, j := len(a)-1, len(b)-1
	n := 0
	for i >= 0 && j >= 0 && a[i] == b[j] {
		n++
		i--
		j--
	}
	return n
}

// Hover updates the hovered node to id (NoNode to clear hover entirely),
// flipping Hovered on exactly the nodes that entered or left the ancestor
// chain and dirtying each via SnapshotNode so the style engine recomputes
// only the affected subtrees.
func (d *Document) Hover(id NodeID) {
	newChain := d.ancestorChain(id)
	oldChain := d.hoverChain
	shared := commonAncestorDepth(oldChain, newChain)

	for i := 0; i < len(oldChain)-shared; i++ {
		nid := oldChain[i]
		d.SnapshotNode(nid)
		if n, ok := d.arena.GetNodeMut(nid); ok {
			n.Hovered = false
		}
	}
	for i := 0; i < len(newChain)-shared; i++ {
		nid := newChain[i]
		d.SnapshotNode(nid)
		if n, ok := d.arena.GetNodeMut(nid); ok {
			n.Hovered = true
		}
	}

	d.hoverChain = newChain
}

// Focus moves keyboard focus to id, blurring the previously focused node
// first. Passing NoNode clears focus.
func (d *Document) Focus(id NodeID) {
	if d.focus == id {
		return
	}
	if d.focus != NoNode {
		d.SnapshotNode(d.focus)
		if n, ok := d.arena.GetNodeMut(d.focus); ok {
			n.Focused = false
		}
	}
	if id != NoNode {
		d.SnapshotNode(id)
		if n, ok := d.arena.GetNodeMut(id); ok {
			n.Focused = true
		}
	}
	d.focus = id
}

// FocusedNode returns the currently focused node, or NoNode.
func (d *Document) FocusedNode() NodeID {
	return d.focus
}

// metaCharsetLabels walks the tree rooted at id looking for
// <meta charset="..."> or <meta http-equiv="Content-Type" content="...">
// and returns every encoding label found, document order.
func (d *Document) metaCharsetLabels(id NodeID) []string {
	n, ok := d.arena.GetNode(id)
	if !ok {
		return nil
	}
	var labels []string
	if n.IsElement("meta") {
		if cs, ok := n.GetAttr("charset"); ok && cs != "" {
			labels = append(labels, cs)
		} else if httpEquiv, ok := n.GetAttr("http-equiv"); ok {
			if eq := normalizeASCIILower(httpEquiv); eq == "content-type" {
				if content, ok := n.GetAttr("content"); ok {
					if label := extractCharsetFromContentType(content); label != "" {
						labels = append(labels, label)
					}
				}
			}
		}
	}
	for _, c := range n.Children {
		labels = append(labels, d.metaCharsetLabels(c)...)
	}
	return labels
}

// DetectEncoding returns the text encoding declared by the document's own
// meta tags, resolved through the HTML encoding-label table, defaulting to
// UTF-8 when no declaration is present or none of the declared labels are
// recognized.
func (d *Document) DetectEncoding() encoding.Encoding {
	for _, label := range d.metaCharsetLabels(d.Root) {
		if enc, err := htmlindex.Get(label); err == nil {
			return enc
		}
	}
	return unicode.UTF8
}

func normalizeASCIILower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// extractCharsetFromContentType pulls the charset= parameter out of an HTTP
// Content-Type string, e.g. "text/html; charset=iso-8859-1" -> "iso-8859-1".
func extractCharsetFromContentType(contentType string) string {
	const needle = "charset="
	lower := normalizeASCIILower(contentType)
	i := indexOf(lower, needle)
	if i < 0 {
		return ""
	}
	rest := contentType[i+len(needle):]
	for j, c := range rest {
		if c == ';' || c == ' ' || c == '"' || c == '\'' {
			return rest[:j]
		}
	}
	return rest
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

// String renders a short human-readable identity for debugging/logging.
func (d *Document) String() string {
	return fmt.Sprintf("Document{root=%d, nodes=%d}", d.Root, d.arena.Len())
}
