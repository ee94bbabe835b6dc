// Package colorspace provides colour space conversions and perceptual
// distance metrics for the extraction engine.
package colorspace

import (
	"fmt"
	"math"
)

// DeltaEMethod selects the perceptual colour difference formula.
type DeltaEMethod string

const (
	// CIE76 is plain Euclidean distance in L*a*b* space.
	CIE76 DeltaEMethod = "cie76"

	// CIE94 applies the 1994 lightness/chroma/hue weighting
	// (graphic arts constants: kL=1, K1=0.045, K2=0.015).
	CIE94 DeltaEMethod = "cie94"

	// CIEDE2000 is the full 2000 revision with rotation term.
	CIEDE2000 DeltaEMethod = "ciede2000"
)

// DeltaE computes the perceptual difference between two L*a*b* colours
// using the given method. Identical colours yield 0 for every method.
// An unknown method returns an error.
func DeltaE(c1, c2 LAB, method DeltaEMethod) (float64, error) {
	switch method {
	case CIE76:
		return DeltaE76(c1, c2), nil
	case CIE94:
		return DeltaE94(c1, c2), nil
	case CIEDE2000:
		return DeltaE2000(c1, c2), nil
	default:
		return 0, fmt.Errorf("unknown delta-e method: %s", method)
	}
}

// DeltaE76 is the Euclidean distance in L*a*b* space.
func DeltaE76(c1, c2 LAB) float64 {
	dl := c1.L - c2.L
	da := c1.A - c2.A
	db := c1.B - c2.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

// DeltaE94 implements the CIE94 colour difference formula with the
// graphic arts weighting constants.
func DeltaE94(c1, c2 LAB) float64 {
	const (
		kL = 1.0
		kC = 1.0
		kH = 1.0
		k1 = 0.045
		k2 = 0.015
	)

	dl := c1.L - c2.L
	cab1 := math.Sqrt(c1.A*c1.A + c1.B*c1.B)
	cab2 := math.Sqrt(c2.A*c2.A + c2.B*c2.B)
	dc := cab1 - cab2

	da := c1.A - c2.A
	db := c1.B - c2.B
	// Hue difference squared; guard against negative values caused by
	// floating point rounding.
	dh2 := da*da + db*db - dc*dc
	if dh2 < 0 {
		dh2 = 0
	}

	sl := 1.0
	sc := 1.0 + k1*cab1
	sh := 1.0 + k2*cab1

	tl := dl / (kL * sl)
	tc := dc / (kC * sc)
	th2 := dh2 / (kH * sh * kH * sh)

	return math.Sqrt(tl*tl + tc*tc + th2)
}

// DeltaE2000 implements the CIEDE2000 colour difference formula as
// published, including the G chroma compensation and the rotation term.
func DeltaE2000(c1, c2 LAB) float64 {
	const (
		kL = 1.0
		kC = 1.0
		kH = 1.0
	)

	cab1 := math.Sqrt(c1.A*c1.A + c1.B*c1.B)
	cab2 := math.Sqrt(c2.A*c2.A + c2.B*c2.B)
	cabMean := (cab1 + cab2) / 2.0

	c7 := math.Pow(cabMean, 7)
	g := 0.5 * (1.0 - math.Sqrt(c7/(c7+6103515625.0))) // 25^7

	a1p := (1.0 + g) * c1.A
	a2p := (1.0 + g) * c2.A

	c1p := math.Sqrt(a1p*a1p + c1.B*c1.B)
	c2p := math.Sqrt(a2p*a2p + c2.B*c2.B)

	h1p := hueAngle(c1.B, a1p)
	h2p := hueAngle(c2.B, a2p)

	dlp := c2.L - c1.L
	dcp := c2p - c1p

	var dhp float64
	if c1p*c2p == 0 {
		dhp = 0
	} else {
		dhp = h2p - h1p
		if dhp > 180 {
			dhp -= 360
		} else if dhp < -180 {
			dhp += 360
		}
	}
	dHp := 2.0 * math.Sqrt(c1p*c2p) * math.Sin(radians(dhp)/2.0)

	lpMean := (c1.L + c2.L) / 2.0
	cpMean := (c1p + c2p) / 2.0

	var hpMean float64
	switch {
	case c1p*c2p == 0:
		hpMean = h1p + h2p
	case math.Abs(h1p-h2p) <= 180:
		hpMean = (h1p + h2p) / 2.0
	case h1p+h2p < 360:
		hpMean = (h1p + h2p + 360) / 2.0
	default:
		hpMean = (h1p + h2p - 360) / 2.0
	}

	t := 1.0 -
		0.17*math.Cos(radians(hpMean-30)) +
		0.24*math.Cos(radians(2*hpMean)) +
		0.32*math.Cos(radians(3*hpMean+6)) -
		0.20*math.Cos(radians(4*hpMean-63))

	l50 := (lpMean - 50) * (lpMean - 50)
	sl := 1.0 + 0.015*l50/math.Sqrt(20.0+l50)
	sc := 1.0 + 0.045*cpMean
	sh := 1.0 + 0.015*cpMean*t

	dTheta := 30.0 * math.Exp(-((hpMean-275)/25.0)*((hpMean-275)/25.0))
	cp7 := math.Pow(cpMean, 7)
	rc := 2.0 * math.Sqrt(cp7/(cp7+6103515625.0))
	rt := -rc * math.Sin(radians(2.0*dTheta))

	tl := dlp / (kL * sl)
	tc := dcp / (kC * sc)
	th := dHp / (kH * sh)

	return math.Sqrt(tl*tl + tc*tc + th*th + rt*tc*th)
}

// hueAngle returns atan2(b, a) in degrees normalized to [0, 360).
func hueAngle(b, a float64) float64 {
	if a == 0 && b == 0 {
		return 0
	}
	h := math.Atan2(b, a) * 180.0 / math.Pi
	if h < 0 {
		h += 360
	}
	return h
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
