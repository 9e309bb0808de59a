package document

import (
	"github.com/cyrup-ai/blitz-sub000/css"
)

// ProcessStyleElement parses the text content of a <style> node as CSS and
// attaches the result in document order. It is a no-op if id does not
// resolve to a node (the node may have been removed between scheduling and
// processing).
func (d *Document) ProcessStyleElement(id NodeID) error {
	n, ok := d.arena.GetNode(id)
	if !ok {
		return nil
	}
	text := collectTextContent(d, id)
	sheet := d.parser.Parse([]byte(text), n.LocalName)
	d.AddStylesheetForNode(id, sheet)
	return nil
}

func collectTextContent(d *Document, id NodeID) string {
	n, ok := d.arena.GetNode(id)
	if !ok {
		return ""
	}
	if n.Kind == KindText {
		return n.Text
	}
	var out string
	for _, c := range n.Children {
		out += collectTextContent(d, c)
	}
	return out
}

// AddStylesheetForNode attaches sheet as owned by id and inserts it into the
// document's stylesheet list in document order: scan id's following
// siblings and their pre-order descendants, then ascend to the parent and
// repeat, inserting before the first already-attached stylesheet node found
// this way. If no later stylesheet is found by the time the root is
// reached, sheet is appended at the end.
func (d *Document) AddStylesheetForNode(id NodeID, sheet *css.Stylesheet) {
	entry := &attachedStylesheet{owner: id, sheet: sheet}

	if n, ok := d.arena.GetNodeMut(id); ok {
		n.RoleData = StylesheetHandle{Index: len(d.stylesheets)}
	}

	insertAt := d.findInsertionIndex(id)
	if insertAt < 0 || insertAt >= len(d.stylesheets) {
		d.stylesheets = append(d.stylesheets, entry)
		return
	}
	d.stylesheets = append(d.stylesheets, nil)
	copy(d.stylesheets[insertAt+1:], d.stylesheets[insertAt:])
	d.stylesheets[insertAt] = entry
	d.reindexStylesheetHandles(insertAt)
}

// reindexStylesheetHandles fixes up the StylesheetHandle.Index stored on
// each owner node for every entry at or after from, whose position shifted
// when a sheet was spliced in ahead of them.
func (d *Document) reindexStylesheetHandles(from int) {
	for i := from; i < len(d.stylesheets); i++ {
		a := d.stylesheets[i]
		if a == nil {
			continue
		}
		if n, ok := d.arena.GetNodeMut(a.owner); ok {
			n.RoleData = StylesheetHandle{Index: i}
		}
	}
}

// findInsertionIndex returns the index in d.stylesheets before which a
// stylesheet owned by a node appearing after id in document order sits, or
// -1 if no such stylesheet exists yet.
func (d *Document) findInsertionIndex(id NodeID) int {
	visited := make(map[NodeID]bool)
	for cur := id; cur != NoNode; {
		n, ok := d.arena.GetNode(cur)
		if !ok {
			break
		}
		parent := n.Parent
		if parent == NoNode {
			break
		}
		parentNode, ok := d.arena.GetNode(parent)
		if !ok {
			break
		}
		idx := indexInSlice(parentNode.Children, cur)
		if idx >= 0 {
			for _, sib := range parentNode.Children[idx+1:] {
				if i, found := d.firstStylesheetIndexInSubtree(sib, visited); found {
					return i
				}
			}
		}
		cur = parent
	}
	return -1
}

func (d *Document) firstStylesheetIndexInSubtree(id NodeID, visited map[NodeID]bool) (int, bool) {
	if visited[id] {
		return 0, false
	}
	visited[id] = true
	n, ok := d.arena.GetNode(id)
	if !ok {
		return 0, false
	}
	if handle, ok := n.RoleData.(StylesheetHandle); ok {
		return handle.Index, true
	}
	for _, c := range n.Children {
		if i, found := d.firstStylesheetIndexInSubtree(c, visited); found {
			return i, true
		}
	}
	return 0, false
}

func indexInSlice(s []NodeID, v NodeID) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

// Stylesheets returns the attached stylesheets in document order.
func (d *Document) Stylesheets() []*css.Stylesheet {
	out := make([]*css.Stylesheet, 0, len(d.stylesheets))
	for _, a := range d.stylesheets {
		if a != nil {
			out = append(out, a.sheet)
		}
	}
	return out
}
