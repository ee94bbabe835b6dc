// Package quality scores extracted palettes and compares the
// quantization algorithms head to head.
package quality

import (
	"math"

	"github.com/chromacube/chromacube/internal/colorspace"
	"github.com/chromacube/chromacube/internal/quantize"
)

// Component weights of the overall quality score.
const (
	diversityWeight   = 0.25
	luminanceWeight   = 0.20
	temperatureWeight = 0.15
	perceptualWeight  = 0.20
	compactnessWeight = 0.20
)

// Perceptual distance rescaling bounds: a mean pairwise delta-E of 5
// maps to 0 and 30 to 1.
const (
	deltaEFloor   = 5.0
	deltaECeiling = 30.0
)

// Luminance band cutoffs for the highlight/midtone/shadow split.
const (
	shadowCutoff    = 0.3
	highlightCutoff = 0.7
)

// Breakdown holds the individual quality components and their weighted
// blend. Every field is in [0, 1]. Degenerate palettes (empty or a
// single colour) score 0 on the pairwise components rather than
// erroring.
type Breakdown struct {
	ColorDiversity     float64 `json:"color_diversity"`
	LuminanceRange     float64 `json:"luminance_range"`
	TemperatureBalance float64 `json:"temperature_balance"`
	PerceptualDistance float64 `json:"perceptual_distance"`
	ClusterCompactness float64 `json:"cluster_compactness"`
	Overall            float64 `json:"overall"`
}

// Score rates a palette. An empty palette scores zero everywhere.
func Score(colors []quantize.ExtractedColor) Breakdown {
	if len(colors) == 0 {
		return Breakdown{}
	}

	b := Breakdown{
		ColorDiversity:     colorDiversity(colors),
		LuminanceRange:     luminanceRange(colors),
		TemperatureBalance: temperatureBalance(colors),
		PerceptualDistance: perceptualDistance(colors),
		ClusterCompactness: clusterCompactness(colors),
	}
	b.Overall = diversityWeight*b.ColorDiversity +
		luminanceWeight*b.LuminanceRange +
		temperatureWeight*b.TemperatureBalance +
		perceptualWeight*b.PerceptualDistance +
		compactnessWeight*b.ClusterCompactness
	return b
}

// colorDiversity is the circular variance of the palette's hues.
// Achromatic colours carry no hue and are skipped; fewer than two
// chromatic colours score 0.
func colorDiversity(colors []quantize.ExtractedColor) float64 {
	sumSin, sumCos := 0.0, 0.0
	n := 0
	for _, c := range colors {
		hue, chromatic := colorspace.HueDegrees(c.Color)
		if !chromatic {
			continue
		}
		rad := hue * math.Pi / 180.0
		sumSin += math.Sin(rad)
		sumCos += math.Cos(rad)
		n++
	}
	if n < 2 {
		return 0
	}

	resultant := math.Sqrt(sumSin*sumSin+sumCos*sumCos) / float64(n)
	return clamp01(1.0 - resultant)
}

// luminanceRange is the spread between the brightest and darkest
// palette entries.
func luminanceRange(colors []quantize.ExtractedColor) float64 {
	minLum, maxLum := 1.0, 0.0
	for _, c := range colors {
		lum := colorspace.RelativeLuminance(c.Color)
		if lum < minLum {
			minLum = lum
		}
		if lum > maxLum {
			maxLum = lum
		}
	}
	if maxLum < minLum {
		return 0
	}
	return maxLum - minLum
}

// temperatureBalance scores how evenly the palette splits across warm,
// cool and neutral colours against an ideal one-third share each.
func temperatureBalance(colors []quantize.ExtractedColor) float64 {
	var warm, cool, neutral float64
	for _, c := range colors {
		switch colorspace.ClassifyTemperature(c.Color) {
		case colorspace.TemperatureWarm:
			warm++
		case colorspace.TemperatureCool:
			cool++
		default:
			neutral++
		}
	}

	total := float64(len(colors))
	deviation := math.Abs(warm/total-1.0/3.0) +
		math.Abs(cool/total-1.0/3.0) +
		math.Abs(neutral/total-1.0/3.0)

	return clamp01(1.0 - deviation)
}

// perceptualDistance is the mean pairwise CIE76 delta-E, linearly
// rescaled so [5, 30] maps to [0, 1]. A single colour yields no pairs
// and scores 0.
func perceptualDistance(colors []quantize.ExtractedColor) float64 {
	if len(colors) < 2 {
		return 0
	}

	labs := make([]colorspace.LAB, len(colors))
	for i, c := range colors {
		labs[i] = colorspace.RGBToLAB(c.Color)
	}

	sum := 0.0
	pairs := 0
	for i := 0; i < len(labs); i++ {
		for j := i + 1; j < len(labs); j++ {
			sum += colorspace.DeltaE76(labs[i], labs[j])
			pairs++
		}
	}
	mean := sum / float64(pairs)

	return clamp01((mean - deltaEFloor) / (deltaECeiling - deltaEFloor))
}

// clusterCompactness scores how closely the palette's luminance bands
// match the ideal 30% highlight / 40% midtone / 30% shadow split.
func clusterCompactness(colors []quantize.ExtractedColor) float64 {
	var highlight, midtone, shadow float64
	for _, c := range colors {
		lum := colorspace.RelativeLuminance(c.Color)
		switch {
		case lum >= highlightCutoff:
			highlight++
		case lum <= shadowCutoff:
			shadow++
		default:
			midtone++
		}
	}

	total := float64(len(colors))
	deviation := math.Abs(highlight/total-0.3) +
		math.Abs(midtone/total-0.4) +
		math.Abs(shadow/total-0.3)

	return clamp01(1.0 - deviation)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
