package render

import "image/color"

// Decibel window bounds. The normalization window observed in the data is
// always clamped inside these, so rendered contrast is stable across files.
const (
	dbFloor = -100.0
	dbCeil  = 0.0
)

// rampColor maps a normalized intensity in [0, 1] onto the fixed color ramp:
// black through deep blue into cyan and white. The breakpoints are part of
// the visual contract and must not be retuned.
func rampColor(v float64) color.RGBA {
	var r, g, b float64
	switch {
	case v < 0.05:
		// black
	case v < 0.33:
		t := (v - 0.05) / 0.28
		g = 0.1 * t
		b = 0.5 * t
	case v < 0.66:
		t := (v - 0.33) / 0.33
		g = 0.1 + 0.8*t
		b = 0.5 + 0.5*t
	default:
		t := (v - 0.66) / 0.34
		r = t
		g = 0.9 + 0.1*t
		b = 1.0 - 0.5*t
	}
	return color.RGBA{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: 255}
}

// colorTable builds the 256-entry lookup table used for one render pass.
func colorTable() [256]color.RGBA {
	var lut [256]color.RGBA
	for i := range lut {
		lut[i] = rampColor(float64(i) / 255)
	}
	return lut
}
