// Package colorutil provides the category color scheme used by the plots.
package colorutil

import (
	"image/color"
	"math"
)

// Common colors used for plot furniture and untyped series.
var (
	Black     = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	Blue      = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	Gray      = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	LightGray = color.RGBA{R: 200, G: 200, B: 200, A: 255}
)

// Palette is the fixed CAD-style palette handed out to the first categories.
var Palette = []color.RGBA{
	{R: 0, G: 0, B: 139, A: 255},    // darkblue
	{R: 139, G: 0, B: 0, A: 255},    // darkred
	{R: 0, G: 100, B: 0, A: 255},    // darkgreen
	{R: 255, G: 140, B: 0, A: 255},  // darkorange
	{R: 148, G: 0, B: 211, A: 255},  // darkviolet
	{R: 0, G: 139, B: 139, A: 255},  // darkcyan
	{R: 139, G: 0, B: 139, A: 255},  // darkmagenta
	{R: 184, G: 134, B: 11, A: 255}, // darkgoldenrod
	{R: 85, G: 107, B: 47, A: 255},  // darkolivegreen
	{R: 47, G: 79, B: 79, A: 255},   // darkslategray
	{R: 0, G: 0, B: 128, A: 255},    // navy
	{R: 128, G: 0, B: 0, A: 255},    // maroon
	{R: 34, G: 139, B: 34, A: 255},  // forestgreen
	{R: 210, G: 105, B: 30, A: 255}, // chocolate
	{R: 75, G: 0, B: 130, A: 255},   // indigo
}

const (
	// GoldenAngle is the hue increment in degrees between generated colors.
	GoldenAngle = 137.5

	generatedSaturation = 0.7
	generatedValue      = 0.8
)

// CategoryHue returns the hue in degrees [0, 360) for the category at ordinal index.
func CategoryHue(index int) float64 {
	return math.Mod(float64(index)*GoldenAngle, 360)
}

// CategoryColor returns the color for the category at ordinal index.
// Indexes inside the palette take the palette entry; the rest are spread
// around the hue circle by the golden angle.
func CategoryColor(index int) color.RGBA {
	if index >= 0 && index < len(Palette) {
		return Palette[index]
	}
	return HSVToRGB(CategoryHue(index), generatedSaturation, generatedValue)
}

// CategoryColors maps an ordered list of distinct categories to colors.
func CategoryColors(categories []string) []color.RGBA {
	colors := make([]color.RGBA, len(categories))
	for i := range categories {
		colors[i] = CategoryColor(i)
	}
	return colors
}

// HSVToRGB converts hue in degrees and saturation/value in [0, 1] to an opaque RGBA.
func HSVToRGB(h, s, v float64) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return color.RGBA{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
		A: 255,
	}
}

// WithAlpha returns c as a non-premultiplied color with the given opacity in [0, 1].
func WithAlpha(c color.RGBA, alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(alpha * 255))}
}
