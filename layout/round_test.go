package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyrup-ai/blitz-sub000/common"
	"github.com/cyrup-ai/blitz-sub000/document"
)

func TestRoundLayout_SnapsToIntegerPixels(t *testing.T) {
	d := newTestDoc(t)
	eng := NewEngine(d, newFakeStyle(), nil, nil)

	n, ok := d.GetNodeMut(d.Root)
	require.True(t, ok)
	n.UnroundedLayout = common.Rect{X: 1.4, Y: 2.6, Width: 10.5, Height: 20.49}

	eng.RoundLayout(d.Root)

	got, ok := d.GetNode(d.Root)
	require.True(t, ok)
	assert.Equal(t, 1, got.FinalLayout.X)
	assert.Equal(t, 3, got.FinalLayout.Y)
}

func TestRoundLayout_SharedEdgesBetweenSiblingsStayAligned(t *testing.T) {
	d := newTestDoc(t)
	eng := NewEngine(d, newFakeStyle(), nil, nil)

	a := addElement(d, d.Root, "div")
	b := addElement(d, d.Root, "div")
	if rn, ok := d.GetNodeMut(d.Root); ok {
		rn.LayoutChildren = []document.NodeID{a, b}
	}

	// a's right edge and b's left edge share the same absolute coordinate
	// before rounding; both must still round to the same pixel.
	if an, ok := d.GetNodeMut(a); ok {
		an.UnroundedLayout = common.Rect{X: 0, Y: 0, Width: 10.5, Height: 5}
	}
	if bn, ok := d.GetNodeMut(b); ok {
		bn.UnroundedLayout = common.Rect{X: 10.5, Y: 0, Width: 10.5, Height: 5}
	}

	eng.RoundLayout(d.Root)

	an, _ := d.GetNode(a)
	bn, _ := d.GetNode(b)
	assert.Equal(t, an.FinalLayout.X+an.FinalLayout.Width, bn.FinalLayout.X)
}
