// Package quantize implements the colour reduction algorithms that turn
// a sampled pixel set into a small representative palette.
package quantize

import (
	"math"

	"github.com/chromacube/chromacube/internal/colorspace"
	"github.com/chromacube/chromacube/internal/sampler"
)

// KMeansQuantizer clusters samples with k-means in LAB space, using
// k-means++ initialization. Randomness comes from the injected source
// in the config, so results are reproducible per seed.
type KMeansQuantizer struct{}

// cluster tracks one centroid and the running sums of its members.
type cluster struct {
	centroid colorspace.LAB
	sumR     float64
	sumG     float64
	sumB     float64
	size     int
}

// Quantize runs the clustering loop and emits one colour per final
// centroid.
func (q *KMeansQuantizer) Quantize(pixels []sampler.Pixel, cfg Config) ([]ExtractedColor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(pixels) == 0 {
		return []ExtractedColor{}, nil
	}

	k := cfg.TargetColorCount
	if k > len(pixels) {
		k = len(pixels)
	}

	maxIterations := cfg.MaxIterations
	if maxIterations <= 0 {
		maxIterations = 100
	}
	convergence := cfg.ConvergenceThreshold
	if convergence <= 0 {
		convergence = 1.0
	}

	// Convert once through the lookup-table path; assignment only needs
	// relative ordering so squared distances are used throughout.
	labs := make([]colorspace.LAB, len(pixels))
	for i, p := range pixels {
		labs[i] = colorspace.RGBToLABFast(colorspace.RGB{R: p.R, G: p.G, B: p.B})
	}

	centroids := initCentroids(labs, k, cfg)
	assignments := make([]int, len(labs))

	for iter := 0; iter < maxIterations; iter++ {
		for i, lab := range labs {
			assignments[i] = nearestCentroid(lab, centroids)
		}

		clusters := make([]cluster, k)
		for i, p := range pixels {
			c := &clusters[assignments[i]]
			c.sumR += float64(p.R)
			c.sumG += float64(p.G)
			c.sumB += float64(p.B)
			c.size++
		}

		totalMovement := 0.0
		for i := range clusters {
			if clusters[i].size == 0 {
				// Empty clusters keep their previous centroid.
				continue
			}
			n := float64(clusters[i].size)
			rgb := colorspace.RGB{
				R: uint8(math.Round(clusters[i].sumR / n)),
				G: uint8(math.Round(clusters[i].sumG / n)),
				B: uint8(math.Round(clusters[i].sumB / n)),
			}
			next := colorspace.RGBToLABFast(rgb)
			totalMovement += colorspace.DeltaE76(centroids[i], next)
			centroids[i] = next
		}

		if totalMovement/float64(k) < convergence {
			break
		}
	}

	// Final assignment against the converged centroids.
	counts := make([]int, k)
	sums := make([][3]float64, k)
	for i, lab := range labs {
		a := nearestCentroid(lab, centroids)
		assignments[i] = a
		counts[a]++
		sums[a][0] += float64(pixels[i].R)
		sums[a][1] += float64(pixels[i].G)
		sums[a][2] += float64(pixels[i].B)
	}

	maxSize := 0
	for _, c := range counts {
		if c > maxSize {
			maxSize = c
		}
	}

	total := float64(len(pixels))
	out := make([]ExtractedColor, 0, k)
	for i := 0; i < k; i++ {
		if counts[i] == 0 {
			continue
		}
		n := float64(counts[i])
		rgb := colorspace.RGB{
			R: uint8(math.Round(sums[i][0] / n)),
			G: uint8(math.Round(sums[i][1] / n)),
			B: uint8(math.Round(sums[i][2] / n)),
		}

		// Representativeness: how tight the cluster is around its
		// centroid, scored against a loose LAB radius.
		avgDist := clusterSpread(labs, assignments, centroids[i], i)
		out = append(out, ExtractedColor{
			Color:              rgb,
			Frequency:          n / total,
			Importance:         n / float64(maxSize),
			Representativeness: clamp01(1.0 - avgDist/100.0),
		})
	}

	return out, nil
}

// clusterSpread returns the mean LAB distance of a cluster's members to
// its centroid.
func clusterSpread(labs []colorspace.LAB, assignments []int, centroid colorspace.LAB, idx int) float64 {
	sum := 0.0
	n := 0
	for i, a := range assignments {
		if a != idx {
			continue
		}
		sum += colorspace.DeltaE76(labs[i], centroid)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// initCentroids seeds k centroids with k-means++: the first uniformly
// at random, the rest with probability proportional to squared distance
// from the nearest chosen centroid.
func initCentroids(labs []colorspace.LAB, k int, cfg Config) []colorspace.LAB {
	rng := cfg.rng()

	centroids := make([]colorspace.LAB, 0, k)
	centroids = append(centroids, labs[rng.Intn(len(labs))])

	distances := make([]float64, len(labs))
	for len(centroids) < k {
		total := 0.0
		for i, lab := range labs {
			d := math.MaxFloat64
			for _, c := range centroids {
				if sq := squaredDistance(lab, c); sq < d {
					d = sq
				}
			}
			distances[i] = d
			total += d
		}

		if total == 0 {
			// Every remaining sample coincides with a centroid; padding
			// with a copy keeps k stable without affecting assignment.
			centroids = append(centroids, centroids[len(centroids)-1])
			continue
		}

		target := rng.Float64() * total
		cumulative := 0.0
		chosen := len(labs) - 1
		for i, d := range distances {
			cumulative += d
			if cumulative >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, labs[chosen])
	}

	return centroids
}

// nearestCentroid returns the index of the closest centroid by squared
// LAB distance.
func nearestCentroid(lab colorspace.LAB, centroids []colorspace.LAB) int {
	best := 0
	bestDist := math.MaxFloat64
	for i, c := range centroids {
		if d := squaredDistance(lab, c); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// squaredDistance is the squared Euclidean distance in LAB space; the
// square root is omitted since only relative ordering matters.
func squaredDistance(a, b colorspace.LAB) float64 {
	dl := a.L - b.L
	da := a.A - b.A
	db := a.B - b.B
	return dl*dl + da*da + db*db
}
