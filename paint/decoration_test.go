package paint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cyrup-ai/blitz-sub000/common"
)

func TestDecorationThickness_WavyIsThickerThanSolid(t *testing.T) {
	assert.Greater(t, decorationThickness(TextDecorationWavy, 16), decorationThickness(TextDecorationSolid, 16))
}

func TestPaintDecorationLine_DoesNotPanicForEachStyle(t *testing.T) {
	scene := NewScene(20, 20)
	eng := NewEngine(nil, nil, nil)
	styles := []TextDecorationStyle{TextDecorationSolid, TextDecorationDotted, TextDecorationDashed, TextDecorationWavy, TextDecorationDouble}
	for _, s := range styles {
		eng.paintDecorationLine(scene, 0, 10, 20, s, 16, common.Opaque(0, 0, 0))
	}
}

// white paints against the scene's default transparent-black canvas
// (nothing calls Clear in these tests) so a painted pixel's R channel
// reads 255 and an untouched one reads 0.
var white = common.Opaque(255, 255, 255)

func TestPaintDecorationLine_DottedRendersCirclesNotSquares(t *testing.T) {
	// fontSize=64 gives thickness=4, radius=2: the dot's bounding square
	// spans x/y in [0,4) around center (2,2), but its corner (0,0) lies
	// outside the radius-2 circle (distance^2 = 8 > 4). A square-fill dot
	// would paint that corner; a circular one must not.
	scene := NewScene(20, 20)
	eng := NewEngine(nil, nil, nil)
	eng.paintDecorationLine(scene, 0, 0, 20, TextDecorationDotted, 64, white)

	center := scene.Canvas.NRGBAAt(2, 2)
	assert.Equal(t, uint8(255), center.R, "center of first dot should be painted")

	corner := scene.Canvas.NRGBAAt(0, 0)
	assert.Equal(t, uint8(0), corner.R, "bounding-square corner outside the dot's radius must stay unpainted")
}

func TestPaintDecorationLine_DashedUsesThreeToTwoRatio(t *testing.T) {
	// fontSize=64 gives thickness=4, dash=12, gap=8.
	scene := NewScene(100, 10)
	eng := NewEngine(nil, nil, nil)
	eng.paintDecorationLine(scene, 0, 0, 100, TextDecorationDashed, 64, white)

	inDash := scene.Canvas.NRGBAAt(11, 0)
	assert.Equal(t, uint8(255), inDash.R, "pixel inside the first dash should be painted")

	inGap := scene.Canvas.NRGBAAt(16, 0)
	assert.Equal(t, uint8(0), inGap.R, "pixel in the following gap should be unpainted")

	nextDash := scene.Canvas.NRGBAAt(21, 0)
	assert.Equal(t, uint8(255), nextDash.R, "pixel in the second dash (dash+gap=20 later) should be painted")
}

func TestPaintDecorationLine_DoubleSeparationIsPointSixOfThickness(t *testing.T) {
	// fontSize=100 gives thickness=8, separation=round(8*0.6)=5: first
	// band fills y in [0,8), gap in [8,13), second band starts at y=13.
	scene := NewScene(20, 20)
	eng := NewEngine(nil, nil, nil)
	eng.paintDecorationLine(scene, 0, 0, 20, TextDecorationDouble, 100, white)

	firstBand := scene.Canvas.NRGBAAt(0, 0)
	assert.Equal(t, uint8(255), firstBand.R)

	gap := scene.Canvas.NRGBAAt(0, 10)
	assert.Equal(t, uint8(0), gap.R, "gap between the two double-line strokes should be unpainted")

	secondBand := scene.Canvas.NRGBAAt(0, 13)
	assert.Equal(t, uint8(255), secondBand.R)
}
