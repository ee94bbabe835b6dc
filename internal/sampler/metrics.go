// Package sampler reduces full image buffers to bounded candidate pixel
// sets for the quantizers.
package sampler

import "math"

// Metrics describes how well a sample set represents its source image.
// Every score is in [0, 1]; an empty sample set scores 0 everywhere.
type Metrics struct {
	// SpatialDistribution measures how evenly samples cover the canvas
	// (1 minus the coefficient of variation of grid-cell occupancy).
	SpatialDistribution float64 `json:"spatial_distribution"`

	// EdgeCoverage is the fraction of high-gradient pixels captured by
	// the sample set.
	EdgeCoverage float64 `json:"edge_coverage"`

	// Representativeness is the fraction of the image's colour variance
	// captured by the samples.
	Representativeness float64 `json:"representativeness"`

	// Diversity is the normalized mean pairwise colour distance among
	// samples.
	Diversity float64 `json:"diversity"`
}

// ComputeMetrics scores a sample set against its source image.
func ComputeMetrics(img *Image, samples []Pixel) Metrics {
	if len(samples) == 0 || img.Width*img.Height == 0 {
		return Metrics{}
	}
	return Metrics{
		SpatialDistribution: spatialDistribution(img, samples),
		EdgeCoverage:        edgeCoverage(img, samples),
		Representativeness:  representativeness(img, samples),
		Diversity:           diversity(samples),
	}
}

// spatialDistribution divides the canvas into a grid sized to the
// sample count and scores the evenness of per-cell occupancy.
func spatialDistribution(img *Image, samples []Pixel) float64 {
	grid := int(math.Sqrt(float64(len(samples))))
	if grid < 1 {
		grid = 1
	}
	if grid > img.Width {
		grid = img.Width
	}
	if grid > img.Height {
		grid = img.Height
	}

	counts := make([]float64, grid*grid)
	for _, p := range samples {
		cx := p.X * grid / img.Width
		cy := p.Y * grid / img.Height
		if cx >= grid {
			cx = grid - 1
		}
		if cy >= grid {
			cy = grid - 1
		}
		counts[cy*grid+cx]++
	}

	mean := float64(len(samples)) / float64(len(counts))
	if mean == 0 {
		return 0
	}
	variance := 0.0
	for _, c := range counts {
		d := c - mean
		variance += d * d
	}
	variance /= float64(len(counts))
	cv := math.Sqrt(variance) / mean

	return clamp01(1.0 - cv)
}

// edgeCoverage reports the fraction of above-threshold gradient pixels
// present in the sample set.
func edgeCoverage(img *Image, samples []Pixel) float64 {
	importance := gradientMagnitudes(img)
	threshold := percentile(importance, 0.80)

	edgeTotal := 0
	edgeSet := make(map[int]struct{})
	for i, v := range importance {
		if v > threshold {
			edgeTotal++
			edgeSet[i] = struct{}{}
		}
	}
	if edgeTotal == 0 {
		return 0
	}

	captured := 0
	for _, p := range samples {
		if _, ok := edgeSet[p.Y*img.Width+p.X]; ok {
			captured++
		}
	}
	return float64(captured) / float64(edgeTotal)
}

// representativeness compares per-channel colour variance of the
// samples against the whole image.
func representativeness(img *Image, samples []Pixel) float64 {
	imageVar := bufferVariance(img)
	if imageVar == 0 {
		// A flat image is perfectly represented by any sample.
		return 1
	}

	var sum, sumSq [3]float64
	for _, p := range samples {
		for i, c := range [3]uint8{p.R, p.G, p.B} {
			v := float64(c)
			sum[i] += v
			sumSq[i] += v * v
		}
	}
	n := float64(len(samples))
	sampleVar := 0.0
	for i := 0; i < 3; i++ {
		mean := sum[i] / n
		sampleVar += sumSq[i]/n - mean*mean
	}

	return clamp01(sampleVar / imageVar)
}

// bufferVariance sums the per-channel variance over all opaque pixels.
func bufferVariance(img *Image) float64 {
	var sum, sumSq [3]float64
	n := 0.0
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			r, g, b, a := img.At(x, y)
			if a < transparentAlpha {
				continue
			}
			for i, c := range [3]uint8{r, g, b} {
				v := float64(c)
				sum[i] += v
				sumSq[i] += v * v
			}
			n++
		}
	}
	if n == 0 {
		return 0
	}
	variance := 0.0
	for i := 0; i < 3; i++ {
		mean := sum[i] / n
		variance += sumSq[i]/n - mean*mean
	}
	return variance
}

// diversityPairLimit bounds the pairwise comparison to keep the metric
// cheap for large sample sets.
const diversityPairLimit = 500

// diversity computes the normalized mean pairwise RGB distance among
// samples. A single sample scores 0.
func diversity(samples []Pixel) float64 {
	n := len(samples)
	if n < 2 {
		return 0
	}

	step := 1
	if n > diversityPairLimit {
		step = n / diversityPairLimit
	}

	sum := 0.0
	pairs := 0
	for i := 0; i < n; i += step {
		for j := i + step; j < n; j += step {
			dr := float64(samples[i].R) - float64(samples[j].R)
			dg := float64(samples[i].G) - float64(samples[j].G)
			db := float64(samples[i].B) - float64(samples[j].B)
			sum += math.Sqrt(dr*dr + dg*dg + db*db)
			pairs++
		}
	}
	if pairs == 0 {
		return 0
	}

	// Normalize against the RGB space diagonal.
	maxDist := math.Sqrt(3 * 255 * 255)
	return clamp01(sum / float64(pairs) / maxDist)
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
