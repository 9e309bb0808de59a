// Package document implements the node arena and document-level operations:
// node storage, stylesheet attachment in DOM order, snapshot-based style
// invalidation, hover/focus transitions, resource installation, and form
// submission. Layout and paint are external consumers of this tree.
package document

import (
	"github.com/google/uuid"

	"github.com/cyrup-ai/blitz-sub000/common"
)

// NodeID is a node's stable slot index in the arena.
type NodeID int

// NoNode is the sentinel for "no node" (e.g. a node with no parent).
const NoNode NodeID = -1

// Kind tags what a node represents.
type Kind int

const (
	KindDocument Kind = iota
	KindElement
	KindText
	KindAnonymousBlock
	KindComment
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindAnonymousBlock:
		return "anonymous-block"
	case KindComment:
		return "comment"
	default:
		return "unknown"
	}
}

// Attr is a single element attribute.
type Attr struct {
	Name  string
	Value string
}

// Flags holds per-node invalidation/classification bits.
type Flags uint8

const (
	FlagIsInDocument Flags = 1 << iota
	FlagConstructionDirty
	FlagIsInlineRoot
	FlagIsTableRoot
)

func (f Flags) Has(bit Flags) bool { return f&bit != 0 }

// LayoutCacheKey identifies one cached layout result: the known dimensions
// passed in, the available space passed in, and the run mode the computation
// was made under.
type LayoutCacheKey struct {
	KnownWidth, KnownHeight     *float64
	AvailWidth, AvailHeight     float64
	AvailWidthDef, AvailHeightDef bool // true if Avail* is a definite length rather than min/max-content
	RunMode                     common.RunMode
}

// LayoutCacheEntry pairs a cache key with an opaque result owned by the
// layout package; document never interprets Result itself.
type LayoutCacheEntry struct {
	Key    LayoutCacheKey
	Result any
}

// Node is the atomic tree unit.
type Node struct {
	ID   NodeID
	Kind Kind

	// Identity is a process-unique handle stamped by the arena on creation,
	// distinct from ID: ID is a slot index the arena recycles once a node
	// is removed, so a map keyed on ID alone can silently start referring
	// to an unrelated later node once that slot is reissued. Code that
	// must keep a reference valid across a potential removal/recreation
	// (an external cascade's per-element cache, say) should key on
	// Identity instead.
	Identity uuid.UUID

	// Element fields.
	LocalName string
	Attrs     []Attr
	IDAttr    string
	StyleAttr string
	RoleData  any // ImageData, CanvasData, TableContext, TextInputState, CheckboxState, FileInputState, StylesheetHandle, InlineLayoutData, ListItemData

	// Text fields.
	Text string

	// Tree links.
	Parent   NodeID
	Children []NodeID
	Before   NodeID // pseudo-element, NoNode if absent
	After    NodeID

	// Derived per-layout-pass child lists; recomputed whenever construction
	// is dirtied, distinct from the raw DOM Children above.
	LayoutChildren []NodeID
	PaintChildren  []NodeID

	// Style.
	Style any // opaque ComputedValues handle from the style engine adapter

	// Interactive state.
	Hovered bool
	Focused bool
	Active  bool

	// Layout.
	Cache          *LayoutCacheEntry
	UnroundedLayout common.Rect
	FinalLayout     common.IntRect
	ScrollX, ScrollY float64

	Flags Flags
}

// GetAttr returns an attribute value by name.
func (n *Node) GetAttr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets (or replaces) an attribute value.
func (n *Node) SetAttr(name, value string) {
	for i, a := range n.Attrs {
		if a.Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// IsElement reports whether this node is an element with the given local name.
func (n *Node) IsElement(name string) bool {
	return n.Kind == KindElement && n.LocalName == name
}
