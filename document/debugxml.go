package document

import (
	"strconv"

	"github.com/beevik/etree"
)

// DebugXML serializes the tree rooted at id into an indented XML string for
// diagnostics: element tag names and attributes, text node content, and
// void elements left childless. It never fails on a well-formed in-memory
// tree; the returned error exists only for etree's WriteToString contract.
func (d *Document) DebugXML(id NodeID) (string, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("document")
	d.debugXMLNode(root, id)

	doc.Indent(2)
	return doc.WriteToString()
}

func (d *Document) debugXMLNode(parent *etree.Element, id NodeID) {
	n, ok := d.GetNode(id)
	if !ok {
		return
	}

	switch n.Kind {
	case KindText:
		parent.CreateText(n.Text)
		return
	case KindComment:
		parent.CreateComment(n.Text)
		return
	case KindDocument:
		for _, c := range n.Children {
			d.debugXMLNode(parent, c)
		}
		return
	}

	tag := n.LocalName
	if tag == "" {
		tag = n.Kind.String()
	}
	elem := parent.CreateElement(tag)
	elem.CreateAttr("id", strconv.Itoa(int(n.ID)))
	for _, a := range n.Attrs {
		elem.CreateAttr(a.Name, a.Value)
	}
	if n.Hovered {
		elem.CreateAttr("data-hovered", "true")
	}
	if n.Focused {
		elem.CreateAttr("data-focused", "true")
	}

	if n.IsVoidElement() {
		return
	}

	if n.Before != NoNode {
		d.debugXMLNode(elem, n.Before)
	}
	for _, c := range n.Children {
		d.debugXMLNode(elem, c)
	}
	if n.After != NoNode {
		d.debugXMLNode(elem, n.After)
	}
}
