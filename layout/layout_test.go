package layout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cyrup-ai/blitz-sub000/common"
	"github.com/cyrup-ai/blitz-sub000/document"
	"github.com/cyrup-ai/blitz-sub000/styloadapt"
)

func newTestDoc(t *testing.T) *document.Document {
	t.Helper()
	d, err := document.NewDocument(document.Config{
		Viewport: document.Viewport{Size: common.Size{Width: 800, Height: 600}, Scale: 1},
	})
	require.NoError(t, err)
	return d
}

func addElement(d *document.Document, parent document.NodeID, localName string) document.NodeID {
	id := d.CreateNode(&document.Node{
		Kind:      document.KindElement,
		LocalName: localName,
		Parent:    parent,
		Before:    document.NoNode,
		After:     document.NoNode,
	})
	if pn, ok := d.GetNodeMut(parent); ok {
		pn.Children = append(pn.Children, id)
	}
	return id
}

func addText(d *document.Document, parent document.NodeID, text string) document.NodeID {
	id := d.CreateNode(&document.Node{
		Kind:   document.KindText,
		Text:   text,
		Parent: parent,
		Before: document.NoNode,
		After:  document.NoNode,
	})
	if pn, ok := d.GetNodeMut(parent); ok {
		pn.Children = append(pn.Children, id)
	}
	return id
}

// fakeStyle is a StyleResolver test double: every node defaults to
// DisplayBlock unless overridden in displays, and Style always returns nil
// (exercising the "no ComputedValues yet" fallback paths).
type fakeStyle struct {
	displays map[document.NodeID]Display
}

func newFakeStyle() *fakeStyle { return &fakeStyle{displays: map[document.NodeID]Display{}} }

func (f *fakeStyle) Display(id document.NodeID) Display {
	if d, ok := f.displays[id]; ok {
		return d
	}
	return DisplayBlock
}

func (f *fakeStyle) Style(id document.NodeID) *styloadapt.TaffyStyloStyle {
	return nil
}
