package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseScreenshotFormat(t *testing.T) {
	cases := []struct {
		name string
		want ScreenshotFormat
		ok   bool
	}{
		{"png", ScreenshotFormatPNG, true},
		{"", ScreenshotFormatPNG, true},
		{"jpeg", ScreenshotFormatJPEG, true},
		{"jpg", ScreenshotFormatJPEG, true},
		{"webp", ScreenshotFormatWebP, true},
		{"bmp", ScreenshotFormatPNG, false},
	}
	for _, c := range cases {
		got, ok := ParseScreenshotFormat(c.name)
		assert.Equal(t, c.want, got, c.name)
		assert.Equal(t, c.ok, ok, c.name)
	}
}

func TestParseScreenshotFormat_RoundTripsWithString(t *testing.T) {
	for _, f := range []ScreenshotFormat{ScreenshotFormatPNG, ScreenshotFormatJPEG, ScreenshotFormatWebP} {
		got, ok := ParseScreenshotFormat(f.String())
		assert.True(t, ok)
		assert.Equal(t, f, got)
	}
}
