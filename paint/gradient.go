package paint

import (
	"math"

	"github.com/cyrup-ai/blitz-sub000/common"
)

// paintGradient fills box by sampling g at every pixel. Linear gradients
// project each pixel onto the angle vector; radial gradients use distance
// from the box center normalized to the box's half-diagonal as the extent;
// conic gradients use the angle from center. The raw per-pixel parameter t
// always runs 0 at the gradient's start edge to 1 at its end edge,
// regardless of where the stops themselves sit.
func (e *Engine) paintGradient(scene *Scene, box common.IntRect, g Gradient) {
	if len(g.Stops) == 0 {
		return
	}
	stops := expandHints(g.Stops)

	// Repeating gradients tile on the span between the first and last stop,
	// not on the raw [0,1] box parameter: stops at 0.2/0.8 repeat every 0.6
	// of t, and each period is rendered against stops renormalized to [0,1]
	// so colorAtStop's ordinary bracketing logic still applies.
	base, period := 0.0, 1.0
	if g.Repeating {
		base = stops[0].Position
		period = stops[len(stops)-1].Position - base
		if period <= 0 {
			period = 1
		}
		stops = normalizeStopsToUnit(stops, base, period)
	}

	cx, cy := float64(box.X)+float64(box.Width)/2, float64(box.Y)+float64(box.Height)/2
	maxDist := math.Hypot(float64(box.Width)/2, float64(box.Height)/2)
	dx, dy := math.Cos(g.AngleRad), math.Sin(g.AngleRad)
	alpha := scene.currentAlpha()

	clip := intersectIntRect(scene.currentClip(), box)
	if clip.Area() <= 0 {
		return
	}

	for py := clip.Y; py < clip.Y+clip.Height; py++ {
		for px := clip.X; px < clip.X+clip.Width; px++ {
			var t float64
			switch g.Kind {
			case GradientRadial:
				if maxDist > 0 {
					t = math.Hypot(float64(px)-cx, float64(py)-cy) / maxDist
				}
			case GradientConic:
				angle := math.Atan2(float64(py)-cy, float64(px)-cx) - g.AngleRad
				t = normalizeAngleFraction(angle)
			default:
				rel := (float64(px)-cx)*dx + (float64(py)-cy)*dy
				t = rel/maxDist/2 + 0.5
			}
			if g.Repeating {
				t = (t - base) / period
				t = t - math.Floor(t)
			} else {
				t = clampFraction(t)
			}
			c := colorAtStop(stops, t)
			if alpha < 1 {
				c = c.WithAlpha(c.A * alpha)
			}
			scene.blendPixel(px, py, c)
		}
	}
}

// normalizeStopsToUnit rebases stop positions so base maps to 0 and
// base+period maps to 1, preserving colors and relative spacing. Used so a
// repeating gradient's geometry can scale to the stops' own span while
// colorAtStop keeps operating on a plain [0,1] stop list.
func normalizeStopsToUnit(stops []GradientStop, base, period float64) []GradientStop {
	out := make([]GradientStop, len(stops))
	for i, s := range stops {
		out[i] = GradientStop{Color: s.Color, Position: (s.Position - base) / period}
	}
	return out
}

// gradientHintSamples is how many synthetic intermediate stops a color-
// interpolation hint expands into. Linear interpolation between enough
// samples closely approximates the hint's true non-linear easing curve
// without the renderer needing a dedicated non-linear sampling path.
const gradientHintSamples = 9

// expandHints rewrites any stop carrying a Hint into gradientHintSamples
// additional stops tracing the CSS color-interpolation-hint curve between
// it and the previous stop: progress P through the pair maps to a color
// weight of P^(ln 0.5 / ln H), H being the hint's fractional position, so the
// 50% color mix lands at the hint rather than at the arithmetic midpoint
// between the two stops.
func expandHints(stops []GradientStop) []GradientStop {
	if len(stops) == 0 {
		return stops
	}
	out := make([]GradientStop, 0, len(stops))
	out = append(out, GradientStop{Color: stops[0].Color, Position: stops[0].Position})
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if b.Hint == nil || *b.Hint <= a.Position || *b.Hint >= b.Position {
			out = append(out, GradientStop{Color: b.Color, Position: b.Position})
			continue
		}
		span := b.Position - a.Position
		hintFrac := (*b.Hint - a.Position) / span
		for k := 1; k <= gradientHintSamples; k++ {
			p := a.Position + span*float64(k)/float64(gradientHintSamples+1)
			t := math.Pow((p-a.Position)/span, math.Log(0.5)/math.Log(hintFrac))
			out = append(out, GradientStop{Color: a.Color.Lerp(b.Color, t), Position: p})
		}
		out = append(out, GradientStop{Color: b.Color, Position: b.Position})
	}
	return out
}

func normalizeAngleFraction(rad float64) float64 {
	twoPi := 2 * math.Pi
	rad = math.Mod(rad, twoPi)
	if rad < 0 {
		rad += twoPi
	}
	return rad / twoPi
}

func clampFraction(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// colorAtStop finds the two stops bracketing t and linearly interpolates
// between them; t outside the stop range clamps to the nearest end stop.
func colorAtStop(stops []GradientStop, t float64) common.Color {
	if len(stops) == 1 {
		return stops[0].Color
	}
	if t <= stops[0].Position {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if t >= last.Position {
		return last.Color
	}
	for i := 0; i < len(stops)-1; i++ {
		a, b := stops[i], stops[i+1]
		if t >= a.Position && t <= b.Position {
			span := b.Position - a.Position
			if span <= 0 {
				return b.Color
			}
			return a.Color.Lerp(b.Color, (t-a.Position)/span)
		}
	}
	return last.Color
}
