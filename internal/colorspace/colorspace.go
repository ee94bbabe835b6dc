// Package colorspace provides colour space conversions and perceptual
// distance metrics for the extraction engine.
package colorspace

import (
	"fmt"
	"math"
)

// RGB represents a colour in 8-bit sRGB.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// LAB represents a colour in CIE L*a*b* space (D65 illuminant).
// L is in [0, 100]; A and B are roughly in [-128, 128].
type LAB struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// XYZ represents a colour in CIE XYZ space, scaled so that the D65
// white point has Y = 1.0.
type XYZ struct {
	X float64
	Y float64
	Z float64
}

// D65 reference white.
const (
	whiteX = 0.95047
	whiteY = 1.0
	whiteZ = 1.08883
)

// SRGBToLinear converts an 8-bit sRGB channel to its linear-light value
// in [0, 1] using the piecewise sRGB transfer function.
func SRGBToLinear(c uint8) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// LinearToSRGB converts a linear-light channel value back to 8-bit sRGB.
// Input outside [0, 1] is clamped; this package clamps out-of-range
// values everywhere rather than rejecting them.
func LinearToSRGB(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	var s float64
	if v <= 0.0031308 {
		s = v * 12.92
	} else {
		s = 1.055*math.Pow(v, 1.0/2.4) - 0.055
	}
	s *= 255.0
	if s >= 255 {
		return 255
	}
	if s < 0 {
		return 0
	}
	return uint8(math.Round(s))
}

// LinearRGBToXYZ converts linear RGB channels to XYZ using the fixed
// sRGB/D65 matrix.
func LinearRGBToXYZ(r, g, b float64) XYZ {
	return XYZ{
		X: 0.4124564*r + 0.3575761*g + 0.1804375*b,
		Y: 0.2126729*r + 0.7151522*g + 0.0721750*b,
		Z: 0.0193339*r + 0.1191920*g + 0.9503041*b,
	}
}

// XYZToLinearRGB converts XYZ back to linear RGB channels. The result
// may fall slightly outside [0, 1] for colours near the gamut boundary;
// callers converting to 8-bit rely on LinearToSRGB clamping.
func XYZToLinearRGB(c XYZ) (r, g, b float64) {
	r = 3.2404542*c.X - 1.5371385*c.Y - 0.4985314*c.Z
	g = -0.9692660*c.X + 1.8760108*c.Y + 0.0415560*c.Z
	b = 0.0556434*c.X - 0.2040259*c.Y + 1.0572252*c.Z
	return r, g, b
}

// labF is the forward L*a*b* nonlinearity.
func labF(t float64) float64 {
	if t > 0.008856 {
		return math.Cbrt(t)
	}
	return 7.787*t + 16.0/116.0
}

// labFInv inverts labF.
func labFInv(t float64) float64 {
	t3 := t * t * t
	if t3 > 0.008856 {
		return t3
	}
	return (t - 16.0/116.0) / 7.787
}

// XYZToLAB converts XYZ to L*a*b* relative to the D65 white point.
func XYZToLAB(c XYZ) LAB {
	fx := labF(c.X / whiteX)
	fy := labF(c.Y / whiteY)
	fz := labF(c.Z / whiteZ)

	return LAB{
		L: 116.0*fy - 16.0,
		A: 500.0 * (fx - fy),
		B: 200.0 * (fy - fz),
	}
}

// LABToXYZ converts L*a*b* back to XYZ relative to the D65 white point.
func LABToXYZ(c LAB) XYZ {
	fy := (c.L + 16.0) / 116.0
	fx := fy + c.A/500.0
	fz := fy - c.B/200.0

	return XYZ{
		X: labFInv(fx) * whiteX,
		Y: labFInv(fy) * whiteY,
		Z: labFInv(fz) * whiteZ,
	}
}

// RGBToLAB converts an 8-bit sRGB colour to L*a*b* through the
// sRGB -> linear -> XYZ -> LAB pipeline.
func RGBToLAB(rgb RGB) LAB {
	r := SRGBToLinear(rgb.R)
	g := SRGBToLinear(rgb.G)
	b := SRGBToLinear(rgb.B)
	return XYZToLAB(LinearRGBToXYZ(r, g, b))
}

// LABToRGB converts L*a*b* back to 8-bit sRGB. Round-tripping any valid
// RGB colour through RGBToLAB and back differs by at most 1 per channel.
func LABToRGB(lab LAB) RGB {
	r, g, b := XYZToLinearRGB(LABToXYZ(lab))
	return RGB{
		R: LinearToSRGB(r),
		G: LinearToSRGB(g),
		B: LinearToSRGB(b),
	}
}
