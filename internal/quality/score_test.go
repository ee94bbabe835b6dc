// Package quality scores extracted palettes and compares the
// quantization algorithms head to head.
package quality

import (
	"math"
	"testing"

	"github.com/chromacube/chromacube/internal/colorspace"
	"github.com/chromacube/chromacube/internal/quantize"
)

func palette(colors ...colorspace.RGB) []quantize.ExtractedColor {
	out := make([]quantize.ExtractedColor, len(colors))
	for i, c := range colors {
		out[i] = quantize.ExtractedColor{Color: c, Frequency: 1.0 / float64(len(colors))}
	}
	return out
}

func TestScoreEmptyPalette(t *testing.T) {
	got := Score(nil)
	if got != (Breakdown{}) {
		t.Errorf("Score(nil) = %+v, want zero value", got)
	}
}

func TestScoreSingleColor(t *testing.T) {
	got := Score(palette(colorspace.RGB{R: 128, G: 64, B: 32}))

	if got.PerceptualDistance != 0 {
		t.Errorf("PerceptualDistance = %v for single colour, want 0", got.PerceptualDistance)
	}
	if got.ColorDiversity != 0 {
		t.Errorf("ColorDiversity = %v for single colour, want 0", got.ColorDiversity)
	}
	if got.LuminanceRange != 0 {
		t.Errorf("LuminanceRange = %v for single colour, want 0", got.LuminanceRange)
	}
	if got.Overall < 0 || got.Overall > 1 {
		t.Errorf("Overall = %v, want in [0, 1]", got.Overall)
	}
}

func TestScoreBounds(t *testing.T) {
	tests := []struct {
		name   string
		colors []quantize.ExtractedColor
	}{
		{name: "black and white", colors: palette(
			colorspace.RGB{R: 0, G: 0, B: 0},
			colorspace.RGB{R: 255, G: 255, B: 255},
		)},
		{name: "primaries", colors: palette(
			colorspace.RGB{R: 255, G: 0, B: 0},
			colorspace.RGB{R: 0, G: 255, B: 0},
			colorspace.RGB{R: 0, G: 0, B: 255},
		)},
		{name: "muted greys", colors: palette(
			colorspace.RGB{R: 100, G: 100, B: 100},
			colorspace.RGB{R: 110, G: 110, B: 110},
			colorspace.RGB{R: 120, G: 120, B: 120},
		)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Score(tt.colors)
			for _, v := range []struct {
				name  string
				score float64
			}{
				{"ColorDiversity", b.ColorDiversity},
				{"LuminanceRange", b.LuminanceRange},
				{"TemperatureBalance", b.TemperatureBalance},
				{"PerceptualDistance", b.PerceptualDistance},
				{"ClusterCompactness", b.ClusterCompactness},
				{"Overall", b.Overall},
			} {
				if v.score < 0 || v.score > 1 {
					t.Errorf("%s = %v, want in [0, 1]", v.name, v.score)
				}
			}
		})
	}
}

func TestLuminanceRangeBlackWhite(t *testing.T) {
	got := luminanceRange(palette(
		colorspace.RGB{R: 0, G: 0, B: 0},
		colorspace.RGB{R: 255, G: 255, B: 255},
	))
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("luminanceRange() = %v, want 1", got)
	}
}

func TestColorDiversityPrimaries(t *testing.T) {
	// Hues at 0, 120 and 240 degrees cancel out, giving maximal
	// circular variance.
	got := colorDiversity(palette(
		colorspace.RGB{R: 255, G: 0, B: 0},
		colorspace.RGB{R: 0, G: 255, B: 0},
		colorspace.RGB{R: 0, G: 0, B: 255},
	))
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("colorDiversity() = %v, want 1", got)
	}
}

func TestColorDiversitySimilarHues(t *testing.T) {
	got := colorDiversity(palette(
		colorspace.RGB{R: 255, G: 0, B: 0},
		colorspace.RGB{R: 250, G: 10, B: 5},
	))
	if got > 0.01 {
		t.Errorf("colorDiversity() = %v for near-identical hues, want ~0", got)
	}
}

func TestColorDiversityAchromatic(t *testing.T) {
	got := colorDiversity(palette(
		colorspace.RGB{R: 40, G: 40, B: 40},
		colorspace.RGB{R: 200, G: 200, B: 200},
	))
	if got != 0 {
		t.Errorf("colorDiversity() = %v for grey palette, want 0", got)
	}
}

func TestTemperatureBalancePerfectSplit(t *testing.T) {
	got := temperatureBalance(palette(
		colorspace.RGB{R: 255, G: 0, B: 0},     // warm
		colorspace.RGB{R: 0, G: 0, B: 255},     // cool
		colorspace.RGB{R: 128, G: 128, B: 128}, // neutral
	))
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("temperatureBalance() = %v, want 1", got)
	}
}

func TestTemperatureBalanceSkewed(t *testing.T) {
	got := temperatureBalance(palette(
		colorspace.RGB{R: 255, G: 0, B: 0},
		colorspace.RGB{R: 240, G: 30, B: 10},
		colorspace.RGB{R: 220, G: 50, B: 0},
	))
	want := 1.0 - (math.Abs(1.0-1.0/3.0) + 1.0/3.0 + 1.0/3.0)
	if math.Abs(got-clamp01(want)) > 1e-9 {
		t.Errorf("temperatureBalance() = %v, want %v", got, clamp01(want))
	}
}

func TestPerceptualDistanceExtremes(t *testing.T) {
	// Black vs white has delta-E 100, far past the ceiling.
	far := perceptualDistance(palette(
		colorspace.RGB{R: 0, G: 0, B: 0},
		colorspace.RGB{R: 255, G: 255, B: 255},
	))
	if far != 1 {
		t.Errorf("perceptualDistance() = %v for black/white, want 1", far)
	}

	near := perceptualDistance(palette(
		colorspace.RGB{R: 100, G: 100, B: 100},
		colorspace.RGB{R: 101, G: 100, B: 100},
	))
	if near != 0 {
		t.Errorf("perceptualDistance() = %v for near-identical pair, want 0", near)
	}
}

func TestClusterCompactnessIdealSplit(t *testing.T) {
	// Three highlights, four midtones, three shadows: exactly the
	// ideal 30/40/30 split.
	colors := palette(
		colorspace.RGB{R: 250, G: 250, B: 250},
		colorspace.RGB{R: 240, G: 240, B: 240},
		colorspace.RGB{R: 230, G: 230, B: 230},
		colorspace.RGB{R: 180, G: 180, B: 180},
		colorspace.RGB{R: 170, G: 170, B: 170},
		colorspace.RGB{R: 160, G: 160, B: 160},
		colorspace.RGB{R: 150, G: 150, B: 150},
		colorspace.RGB{R: 60, G: 60, B: 60},
		colorspace.RGB{R: 40, G: 40, B: 40},
		colorspace.RGB{R: 20, G: 20, B: 20},
	)

	got := clusterCompactness(colors)
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("clusterCompactness() = %v, want 1", got)
	}
}
