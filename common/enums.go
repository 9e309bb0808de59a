// Package common holds a handful of small shared enums that do not belong to
// any single rendering subsystem, plus the geometry primitives in
// geometry.go.
package common

// ColorScheme mirrors the CSS prefers-color-scheme value used by the
// style-engine Device construction.
// ENUM(light, dark)
type ColorScheme int

const (
	ColorSchemeLight ColorScheme = iota
	ColorSchemeDark
)

func (c ColorScheme) String() string {
	switch c {
	case ColorSchemeDark:
		return "dark"
	default:
		return "light"
	}
}

// RunMode selects how much of a layout computation to perform; it is part of
// the layout cache key alongside known dimensions and available space.
// ENUM(perform-layout, compute-size)
type RunMode int

const (
	RunModePerformLayout RunMode = iota
	RunModeComputeSize
)

// ScreenshotFormat identifies the target encoder for a capture request.
// ENUM(png, jpeg, webp)
type ScreenshotFormat int

const (
	ScreenshotFormatPNG ScreenshotFormat = iota
	ScreenshotFormatJPEG
	ScreenshotFormatWebP
)

func (f ScreenshotFormat) String() string {
	switch f {
	case ScreenshotFormatJPEG:
		return "jpeg"
	case ScreenshotFormatWebP:
		return "webp"
	default:
		return "png"
	}
}

// ParseScreenshotFormat is the inverse of String, accepting the same names
// a --format CLI flag would pass; an unrecognized name reports false
// instead of silently defaulting.
func ParseScreenshotFormat(name string) (ScreenshotFormat, bool) {
	switch name {
	case "png", "":
		return ScreenshotFormatPNG, true
	case "jpeg", "jpg":
		return ScreenshotFormatJPEG, true
	case "webp":
		return ScreenshotFormatWebP, true
	default:
		return ScreenshotFormatPNG, false
	}
}
