// Package colorspace provides colour space conversions and perceptual
// distance metrics for the extraction engine.
package colorspace

import "math"

// Temperature classifies a colour as warm, cool, or neutral.
type Temperature string

const (
	// TemperatureWarm indicates red/orange dominated colours.
	TemperatureWarm Temperature = "warm"

	// TemperatureCool indicates blue dominated colours.
	TemperatureCool Temperature = "cool"

	// TemperatureNeutral indicates balanced colours.
	TemperatureNeutral Temperature = "neutral"
)

// RelativeLuminance calculates the relative luminance of a colour
// according to ITU-R BT.709 over linearized channels.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func RelativeLuminance(rgb RGB) float64 {
	r := SRGBToLinear(rgb.R)
	g := SRGBToLinear(rgb.G)
	b := SRGBToLinear(rgb.B)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ClassifyTemperature classifies a colour by its warmness score
// (r + 0.5g) - (b + 0.5g): warm above 20, cool below -20, otherwise
// neutral.
func ClassifyTemperature(rgb RGB) Temperature {
	warmness := (float64(rgb.R) + 0.5*float64(rgb.G)) - (float64(rgb.B) + 0.5*float64(rgb.G))
	switch {
	case warmness > 20:
		return TemperatureWarm
	case warmness < -20:
		return TemperatureCool
	default:
		return TemperatureNeutral
	}
}

// HueDegrees returns the HSV hue of an RGB colour in degrees [0, 360)
// and whether the colour is chromatic. Achromatic colours (r == g == b)
// have no defined hue and report false.
func HueDegrees(rgb RGB) (float64, bool) {
	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	if delta == 0 {
		return 0, false
	}

	var h float64
	switch maxVal {
	case r:
		h = (g - b) / delta
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	case b:
		h = (r-g)/delta + 4
	}

	return h * 60, true
}

// HueDistance calculates the angular distance between two hues on the
// colour wheel. Returns a value between 0 and 180 degrees (shortest
// path around the wheel).
func HueDistance(h1, h2 float64) float64 {
	diff := math.Abs(h1 - h2)
	if diff > 180 {
		diff = 360 - diff // Handle wraparound
	}
	return diff
}
