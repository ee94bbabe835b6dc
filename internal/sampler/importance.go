// Package sampler reduces full image buffers to bounded candidate pixel
// sets for the quantizers.
package sampler

import (
	"sort"

	"github.com/chromacube/chromacube/internal/colorspace"
)

// ImportanceSampler scores every pixel by Sobel gradient magnitude and
// keeps those above the configured percentile, plus a random baseline
// fraction so flat regions still contribute. With edgesOnly set the
// baseline is skipped.
type ImportanceSampler struct {
	edgesOnly bool
}

// Sample selects high-gradient pixels, capped at the configured
// maximum.
func (s *ImportanceSampler) Sample(img *Image, cfg Config) ([]Pixel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	total := img.Width * img.Height
	if total == 0 {
		return []Pixel{}, nil
	}

	importance := gradientMagnitudes(img)
	threshold := percentile(importance, cfg.PercentileThreshold)

	maxSamples := cfg.cappedSamples()
	selected := make(map[int]struct{}, maxSamples)
	pixels := make([]Pixel, 0, maxSamples)

	for i := 0; i < total; i++ {
		if importance[i] <= threshold {
			continue
		}
		x := i % img.Width
		y := i / img.Width
		if !img.Opaque(x, y) {
			continue
		}
		selected[i] = struct{}{}
		pixels = append(pixels, img.PixelAt(x, y))
	}

	// Flat baseline so images with little texture still produce a
	// usable sample set.
	if !s.edgesOnly && cfg.RandomBaseline > 0 {
		rng := cfg.rng()
		baseline := int(float64(maxSamples) * cfg.RandomBaseline)
		for attempts := 0; attempts < baseline*4 && baseline > 0; attempts++ {
			i := rng.Intn(total)
			if _, dup := selected[i]; dup {
				continue
			}
			x := i % img.Width
			y := i / img.Width
			if !img.Opaque(x, y) {
				continue
			}
			selected[i] = struct{}{}
			pixels = append(pixels, img.PixelAt(x, y))
			baseline--
		}
	}

	if len(pixels) > maxSamples {
		pixels = thin(pixels, maxSamples)
	}

	return pixels, nil
}

// gradientMagnitudes computes the Sobel gradient magnitude of the
// grayscale luma for every pixel. Border coordinates are clamped.
func gradientMagnitudes(img *Image) []float64 {
	w, h := img.Width, img.Height

	luma := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(x, y)
			luma[y*w+x] = colorspace.RelativeLuminance(colorspace.RGB{R: r, G: g, B: b})
		}
	}

	at := func(x, y int) float64 {
		if x < 0 {
			x = 0
		} else if x >= w {
			x = w - 1
		}
		if y < 0 {
			y = 0
		} else if y >= h {
			y = h - 1
		}
		return luma[y*w+x]
	}

	out := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gx := -at(x-1, y-1) + at(x+1, y-1) +
				-2*at(x-1, y) + 2*at(x+1, y) +
				-at(x-1, y+1) + at(x+1, y+1)
			gy := -at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1) +
				at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)
			out[y*w+x] = gx*gx + gy*gy
		}
	}
	return out
}

// percentile returns the value at the given fraction of the sorted
// input. An empty input yields 0.
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}

// thin reduces a pixel slice to at most n entries by taking evenly
// spaced elements, preserving order.
func thin(pixels []Pixel, n int) []Pixel {
	if len(pixels) <= n {
		return pixels
	}
	out := make([]Pixel, 0, n)
	step := float64(len(pixels)) / float64(n)
	for i := 0; i < n; i++ {
		out = append(out, pixels[int(float64(i)*step)])
	}
	return out
}
