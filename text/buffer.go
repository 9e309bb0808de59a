// Package text wraps a shaped-text buffer with caching suitable for the
// layout engine's repeated min/max-content width queries: re-shaping only
// when the text actually changes, and guarding the buffer's persistent
// wrap width across temporary measurement resizes.
package text

import "math"

// ShapedBuffer is the external collaborator that does real glyph shaping.
// A production build backs this with a text-shaping/layout library; tests
// use a fake that reports synthetic widths.
type ShapedBuffer interface {
	// SetText re-shapes the buffer's content. attrs and shaping are opaque
	// to this package and passed through verbatim.
	SetText(text string, attrs, shaping any)
	// SetWrapWidth sets the width (in CSS pixels) at which the buffer
	// wraps; math.Inf(1) requests unconstrained (single-line) shaping.
	SetWrapWidth(width float64)
	// LineWidths returns the shaped width of each wrapped line at the
	// buffer's current wrap width.
	LineWidths() []float64
	// UnbreakableRunWidths returns the shaped width of each unbreakable
	// run (word or, for scripts without word boundaries, grapheme
	// cluster) at infinite available width.
	UnbreakableRunWidths() []float64
}

// InlineBoxWidth is one embedded inline box's measured contribution,
// reported alongside the text runs when computing content widths.
type InlineBoxWidth float64

// Buffer wraps a ShapedBuffer with cached text/size state and derived
// content-width caches.
type Buffer struct {
	shaped ShapedBuffer

	text  string
	attrs any

	width, height float64

	minContentValid bool
	minContent      float64
	maxContentValid bool
	maxContent      float64
}

// NewBuffer wraps shaped for cached access.
func NewBuffer(shaped ShapedBuffer) *Buffer {
	return &Buffer{shaped: shaped}
}

// SetTextCached re-shapes the buffer only if text (or attrs) differ from
// the last call, invalidating the content-width caches when it does.
func (b *Buffer) SetTextCached(newText string, attrs, shaping any) {
	if b.text == newText && attrsEqual(b.attrs, attrs) {
		return
	}
	b.shaped.SetText(newText, attrs, shaping)
	b.text = newText
	b.attrs = attrs
	b.invalidateContentWidths()
}

// SetSizeCached records the buffer's box size, invalidating the
// content-width caches (a resize can change line breaking).
func (b *Buffer) SetSizeCached(width, height float64) {
	if b.width == width && b.height == height {
		return
	}
	b.width = width
	b.height = height
	b.invalidateContentWidths()
}

func (b *Buffer) invalidateContentWidths() {
	b.minContentValid = false
	b.maxContentValid = false
}

func attrsEqual(a, b any) bool {
	// Opaque attrs are compared by identity/value equality where the
	// concrete type supports ==; a comparison panic (e.g. on slices)
	// conservatively reports unequal, forcing a re-shape.
	defer func() { recover() }()
	return a == b
}

// withWrapWidthGuard temporarily switches the buffer's wrap width to w,
// restoring the original on every exit path (including panics) so
// measurement never corrupts the buffer's persistent layout state.
func (b *Buffer) withWrapWidthGuard(w float64, fn func()) {
	b.shaped.SetWrapWidth(w)
	defer b.shaped.SetWrapWidth(b.width)
	fn()
}

// CSSMinContentWidth is the max over all unbreakable runs (words, or
// grapheme clusters for scripts with no word boundaries) of that run's
// shaped width at infinite available width.
func (b *Buffer) CSSMinContentWidth() float64 {
	if b.minContentValid {
		return b.minContent
	}
	var result float64
	b.withWrapWidthGuard(math.Inf(1), func() {
		for _, w := range b.shaped.UnbreakableRunWidths() {
			result = math.Max(result, w)
		}
	})
	b.minContent = result
	b.minContentValid = true
	return result
}

// CSSMaxContentWidth is the max over all forced-break-delimited lines of
// that line's shaped width at infinite available width.
func (b *Buffer) CSSMaxContentWidth() float64 {
	if b.maxContentValid {
		return b.maxContent
	}
	var result float64
	b.withWrapWidthGuard(math.Inf(1), func() {
		for _, w := range b.shaped.LineWidths() {
			result = math.Max(result, w)
		}
	})
	b.maxContent = result
	b.maxContentValid = true
	return result
}

// CalculateContentWidthsWithInlineElements combines the buffer's own text
// widths with the widths of embedded inline boxes: min-content takes the
// max across text runs and individual inline box widths; max-content takes
// the max text line width plus the sum of inline box widths.
func (b *Buffer) CalculateContentWidthsWithInlineElements(inlineBoxes []InlineBoxWidth) (min, max float64) {
	min = b.CSSMinContentWidth()
	max = b.CSSMaxContentWidth()

	var boxSum float64
	for _, w := range inlineBoxes {
		boxSum += float64(w)
		if float64(w) > min {
			min = float64(w)
		}
	}
	max += boxSum
	return min, max
}
