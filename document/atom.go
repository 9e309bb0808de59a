package document

import (
	"golang.org/x/net/html/atom"
)

// localNameAtom interns name against the well-known HTML tag table, the way
// golang.org/x/net/html itself avoids repeated string comparisons against
// tag names during parsing. A name outside the table (custom elements, SVG
// foreignObject children, etc.) looks up to the zero Atom, which is never a
// key in voidElements, so unknown names are correctly never "void".
func localNameAtom(name string) atom.Atom {
	return atom.Lookup([]byte(name))
}

// voidElements are HTML elements with no closing tag and no children, the
// interned-atom set DebugXML consults to render them as self-closing nodes.
var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Link: true, atom.Meta: true, atom.Source: true, atom.Track: true,
	atom.Wbr: true,
}

// IsVoidElement reports whether n is an HTML void element (no children, no
// closing tag), interning its local name against the standard atom table
// rather than comparing against a locally maintained string list.
func (n *Node) IsVoidElement() bool {
	if n.Kind != KindElement {
		return false
	}
	return voidElements[localNameAtom(n.LocalName)]
}
