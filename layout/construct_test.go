package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyrup-ai/blitz-sub000/document"
)

func TestConstructLayoutChildren_SkipsDisplayNoneSubtree(t *testing.T) {
	d := newTestDoc(t)
	style := newFakeStyle()
	hidden := addElement(d, d.Root, "div")
	addElement(d, hidden, "span")
	style.displays[hidden] = DisplayNone

	eng := NewEngine(d, style, nil, nil)
	eng.ConstructLayoutChildren(d.Root)

	n, ok := d.GetNode(d.Root)
	require.True(t, ok)
	assert.NotContains(t, n.LayoutChildren, hidden)
}

func TestConstructLayoutChildren_AllInlineBuildsInlineRoot(t *testing.T) {
	d := newTestDoc(t)
	style := newFakeStyle()
	para := addElement(d, d.Root, "p")
	addText(d, para, "hello ")
	span := addElement(d, para, "span")
	addText(d, span, "world")
	style.displays[span] = DisplayInline

	eng := NewEngine(d, style, nil, nil)
	eng.ConstructLayoutChildren(d.Root)

	n, ok := d.GetNode(para)
	require.True(t, ok)
	require.Len(t, n.LayoutChildren, 1)

	root, ok := d.GetNode(n.LayoutChildren[0])
	require.True(t, ok)
	assert.True(t, root.Flags.Has(document.FlagIsInlineRoot))
	data, ok := root.RoleData.(document.InlineLayoutData)
	require.True(t, ok)
	assert.Equal(t, "hello world", data.Buffer)
}

func TestWrapAnonymousBlocks_MixedInlineAndBlockChildren(t *testing.T) {
	d := newTestDoc(t)
	style := newFakeStyle()
	container := addElement(d, d.Root, "div")
	text1 := addText(d, container, "before ")
	block1 := addElement(d, container, "div")
	text2 := addText(d, container, "after")
	_ = text1

	eng := NewEngine(d, style, nil, nil)
	eng.ConstructLayoutChildren(d.Root)

	n, ok := d.GetNode(container)
	require.True(t, ok)
	require.Len(t, n.LayoutChildren, 3)

	anon1, ok := d.GetNode(n.LayoutChildren[0])
	require.True(t, ok)
	assert.Equal(t, document.KindAnonymousBlock, anon1.Kind)

	assert.Equal(t, block1, n.LayoutChildren[1])
	_ = text2
}

func TestWrapAnonymousBlocks_WhitespaceOnlyRunDiscarded(t *testing.T) {
	d := newTestDoc(t)
	style := newFakeStyle()
	container := addElement(d, d.Root, "div")
	addText(d, container, "   \n  ")
	block := addElement(d, container, "div")

	eng := NewEngine(d, style, nil, nil)
	eng.ConstructLayoutChildren(d.Root)

	n, ok := d.GetNode(container)
	require.True(t, ok)
	require.Len(t, n.LayoutChildren, 1)
	assert.Equal(t, block, n.LayoutChildren[0])
}

func TestConstructLayoutChildren_PrependsAndAppendsPseudoElements(t *testing.T) {
	d := newTestDoc(t)
	style := newFakeStyle()
	container := addElement(d, d.Root, "div")
	child := addElement(d, container, "span")
	style.displays[child] = DisplayInline

	before := d.CreateNode(&document.Node{Kind: document.KindAnonymousBlock, Parent: container, Before: document.NoNode, After: document.NoNode})
	after := d.CreateNode(&document.Node{Kind: document.KindAnonymousBlock, Parent: container, Before: document.NoNode, After: document.NoNode})
	if cn, ok := d.GetNodeMut(container); ok {
		cn.Before = before
		cn.After = after
	}

	eng := NewEngine(d, style, nil, nil)
	eng.ConstructLayoutChildren(d.Root)

	n, ok := d.GetNode(container)
	require.True(t, ok)
	require.NotEmpty(t, n.LayoutChildren)
	assert.Equal(t, before, n.LayoutChildren[0])
	assert.Equal(t, after, n.LayoutChildren[len(n.LayoutChildren)-1])
}
