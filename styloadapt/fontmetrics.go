package styloadapt

// Font describes the face a metrics lookup should resolve: family name,
// numeric weight (100-900), italic/oblique style, and width percentage
// (100 = normal stretch).
type Font struct {
	Family  string
	Weight  int
	Italic  bool
	Stretch int
}

// Metrics holds the subset of font-face metrics the layout engine needs to
// resolve CSS length units like ex, cap, ch, and ic.
type Metrics struct {
	XHeight     float64
	CapHeight   float64
	Ascent      float64
	ZeroAdvance float64
	ICWidth     float64
}

// proportionalMetrics returns the engine's fallback metrics when no face in
// the font database matches the request, scaled from typical Latin-face
// ratios against the base size.
func proportionalMetrics(baseSize float64) Metrics {
	return Metrics{
		XHeight:     baseSize * 0.5,
		CapHeight:   baseSize * 0.7,
		Ascent:      baseSize * 0.8,
		ZeroAdvance: baseSize * 0.5,
		ICWidth:     baseSize,
	}
}

// FaceLookup resolves a requested font to a concrete face's metrics. A real
// implementation backs this with a font database query; returning
// (Metrics{}, false) signals a miss and triggers the proportional fallback.
type FaceLookup interface {
	Lookup(f Font, baseSize float64) (Metrics, bool)
}

// FontMetricsProvider resolves font metrics for a requested face and base
// size, falling back to proportional defaults when the face database has no
// match.
type FontMetricsProvider struct {
	Faces FaceLookup
}

// NewFontMetricsProvider returns a provider backed by faces. A nil faces
// value makes every lookup fall back to proportional defaults, which is
// useful for headless/DOM-only operation with no font database loaded.
func NewFontMetricsProvider(faces FaceLookup) *FontMetricsProvider {
	return &FontMetricsProvider{Faces: faces}
}

// Resolve returns the metrics for f at baseSize.
func (p *FontMetricsProvider) Resolve(f Font, baseSize float64) Metrics {
	if p.Faces != nil {
		if m, ok := p.Faces.Lookup(f, baseSize); ok {
			return m
		}
	}
	return proportionalMetrics(baseSize)
}
