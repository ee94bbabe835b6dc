// Package colorspace provides colour space conversions and perceptual
// distance metrics for the extraction engine.
package colorspace

import "sync"

var (
	linearLUT     [256]float64
	linearLUTOnce sync.Once
)

// linearTable returns the precomputed sRGB-to-linear table. Since the
// sRGB input is 8-bit the table is exact, so the batch paths produce
// values identical to the scalar functions.
func linearTable() *[256]float64 {
	linearLUTOnce.Do(func() {
		for i := range linearLUT {
			linearLUT[i] = SRGBToLinear(uint8(i))
		}
	})
	return &linearLUT
}

// LinearizeBuffer converts a flat byte buffer of sRGB channels to
// linear-light floats. Stride must be 3 (RGB) or 4 (RGBA); with stride
// 4 the alpha byte is skipped and only the colour channels are emitted.
// The output is laid out as consecutive r, g, b triples.
func LinearizeBuffer(data []byte, stride int) []float64 {
	if stride != 3 && stride != 4 {
		return nil
	}
	lut := linearTable()

	count := len(data) / stride
	out := make([]float64, 0, count*3)
	for i := 0; i+stride <= len(data); i += stride {
		out = append(out, lut[data[i]], lut[data[i+1]], lut[data[i+2]])
	}
	return out
}

// LABBuffer converts a flat byte buffer of sRGB channels to L*a*b*
// colours using the lookup-table linearization path. Stride semantics
// match LinearizeBuffer. Values are identical to calling RGBToLAB per
// pixel.
func LABBuffer(data []byte, stride int) []LAB {
	if stride != 3 && stride != 4 {
		return nil
	}
	lut := linearTable()

	count := len(data) / stride
	out := make([]LAB, 0, count)
	for i := 0; i+stride <= len(data); i += stride {
		xyz := LinearRGBToXYZ(lut[data[i]], lut[data[i+1]], lut[data[i+2]])
		out = append(out, XYZToLAB(xyz))
	}
	return out
}

// RGBToLABFast converts a single RGB colour to L*a*b* through the
// lookup table. Identical output to RGBToLAB.
func RGBToLABFast(rgb RGB) LAB {
	lut := linearTable()
	xyz := LinearRGBToXYZ(lut[rgb.R], lut[rgb.G], lut[rgb.B])
	return XYZToLAB(xyz)
}
