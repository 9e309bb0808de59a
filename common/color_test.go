package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColor_OverOpaqueSrcReplacesDst(t *testing.T) {
	src := Opaque(255, 0, 0)
	dst := Opaque(0, 255, 0)
	got := src.Over(dst)
	assert.Equal(t, src, got)
}

func TestColor_OverTransparentSrcKeepsDst(t *testing.T) {
	src := Color{A: 0}
	dst := Opaque(0, 255, 0)
	got := src.Over(dst)
	assert.Equal(t, dst, got)
}

func TestColor_OverPartialAlphaBlends(t *testing.T) {
	src := Color{R: 1, A: 0.5}
	dst := Color{B: 1, A: 1}
	got := src.Over(dst)
	assert.InDelta(t, 0.5, got.R, 0.001)
	assert.InDelta(t, 0.5, got.B, 0.001)
	assert.InDelta(t, 1.0, got.A, 0.001)
}

func TestColor_LerpAtEndpoints(t *testing.T) {
	a := Opaque(0, 0, 0)
	b := Opaque(255, 255, 255)
	assert.Equal(t, a, a.Lerp(b, 0))
	assert.Equal(t, b, a.Lerp(b, 1))
}

func TestColor_IsTransparent(t *testing.T) {
	assert.True(t, Color{}.IsTransparent())
	assert.False(t, Opaque(1, 1, 1).IsTransparent())
}

func TestColor_ToNRGBAClampsRange(t *testing.T) {
	got := Color{R: 2, G: -1, B: 0.5, A: 1}.ToNRGBA()
	assert.Equal(t, uint8(255), got.R)
	assert.Equal(t, uint8(0), got.G)
}
