package paint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cyrup-ai/blitz-sub000/common"
)

func TestColorAtStop_InterpolatesBetweenBracketingStops(t *testing.T) {
	stops := []GradientStop{
		{Color: common.Opaque(0, 0, 0), Position: 0},
		{Color: common.Opaque(255, 255, 255), Position: 1},
	}
	mid := colorAtStop(stops, 0.5)
	assert.InDelta(t, 0.5, mid.R, 0.01)
}

func TestColorAtStop_ClampsOutsideRange(t *testing.T) {
	stops := []GradientStop{
		{Color: common.Opaque(10, 0, 0), Position: 0.2},
		{Color: common.Opaque(200, 0, 0), Position: 0.8},
	}
	assert.Equal(t, stops[0].Color, colorAtStop(stops, 0))
	assert.Equal(t, stops[1].Color, colorAtStop(stops, 1))
}

func TestNormalizeAngleFraction_WrapsNegativeAngles(t *testing.T) {
	f := normalizeAngleFraction(-math.Pi / 2)
	assert.InDelta(t, 0.75, f, 0.001)
}

func TestClampFraction(t *testing.T) {
	assert.Equal(t, 0.0, clampFraction(-1))
	assert.Equal(t, 1.0, clampFraction(2))
	assert.Equal(t, 0.3, clampFraction(0.3))
}

func TestNormalizeStopsToUnit_RebasesToFullRange(t *testing.T) {
	stops := []GradientStop{
		{Color: common.Opaque(255, 0, 0), Position: 0.2},
		{Color: common.Opaque(0, 0, 255), Position: 0.8},
	}
	norm := normalizeStopsToUnit(stops, 0.2, 0.6)
	assert.Equal(t, 0.0, norm[0].Position)
	assert.InDelta(t, 1.0, norm[1].Position, 0.0001)
}

func TestPaintGradient_RepeatingTilesInsteadOfClampingToSolidBands(t *testing.T) {
	// A linear gradient, angle 0, stops at 0.2 (red) and 0.8 (blue),
	// repeating: the raw per-pixel t spans the full box width 0..1, so with
	// the fix it should go through at least one full red->blue->red cycle
	// rather than clamping below 0.2 to solid red and above 0.8 to solid
	// blue for most of the box.
	scene := NewScene(100, 4)
	g := Gradient{
		Kind:     GradientLinear,
		AngleRad: 0,
		Stops: []GradientStop{
			{Color: common.Opaque(255, 0, 0), Position: 0.2},
			{Color: common.Opaque(0, 0, 255), Position: 0.8},
		},
		Repeating: true,
	}
	eng := NewEngine(nil, nil, nil)
	box := common.IntRect{X: 0, Y: 0, Width: 100, Height: 4}
	eng.paintGradient(scene, box, g)

	// Sample near the left edge (t close to 0, a second-period position):
	// under naive clamping this pixel would be solid red (t<0.2 clamps to
	// stop 0); with tiling it should sit mid-interpolation instead.
	px := scene.Canvas.NRGBAAt(5, 2)
	assert.False(t, px.R == 255 && px.B == 0, "left edge should not clamp to solid red under repeating tiling")
}

func TestExpandHints_MidpointShiftsTowardHint(t *testing.T) {
	hint := 0.25
	stops := []GradientStop{
		{Color: common.Opaque(0, 0, 0), Position: 0},
		{Color: common.Opaque(255, 255, 255), Position: 1, Hint: &hint},
	}
	expanded := expandHints(stops)
	assert.Greater(t, len(expanded), 2, "a hinted pair should expand into intermediate stops")

	// At the arithmetic midpoint (0.5), color-interpolation-hints pull the
	// perceptual 50% mark toward the hint: since hint=0.25 is left of 0.5,
	// the color at t=0.5 should already be past the unhinted midpoint gray.
	midColor := colorAtStop(expanded, 0.5)
	plainMid := stops[0].Color.Lerp(stops[1].Color, 0.5)
	assert.Greater(t, midColor.R, plainMid.R, "hint left of center should brighten the arithmetic midpoint")
}
