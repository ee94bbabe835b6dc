// Package quantize implements the colour reduction algorithms that turn
// a sampled pixel set into a small representative palette.
package quantize

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/chromacube/chromacube/internal/colorspace"
	"github.com/chromacube/chromacube/internal/sampler"
)

// Algorithm represents the colour extraction algorithm type.
type Algorithm string

const (
	// AlgorithmOctree reduces colours via an 8-ary trie over RGB
	// bit-planes.
	AlgorithmOctree Algorithm = "octree"

	// AlgorithmMedianCut recursively splits the colour bounding box
	// along its widest channel at the median.
	AlgorithmMedianCut Algorithm = "mediancut"

	// AlgorithmKMeans uses k-means clustering with k-means++
	// initialization in LAB space.
	AlgorithmKMeans Algorithm = "kmeans"

	// AlgorithmHybrid combines the other three and merges their
	// results.
	AlgorithmHybrid Algorithm = "hybrid"
)

// ValidAlgorithms returns a list of valid algorithm names in the fixed
// enumeration order used for comparator tie-breaking.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmOctree,
		AlgorithmMedianCut,
		AlgorithmKMeans,
		AlgorithmHybrid,
	}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	for _, valid := range ValidAlgorithms() {
		if alg == valid {
			return true
		}
	}
	return false
}

// ExtractedColor is the output unit of every quantizer. Frequency is
// the fraction of sampled pixels nearest to this colour; Importance and
// Representativeness are per-algorithm confidence heuristics. All three
// stay in [0, 1].
type ExtractedColor struct {
	Color              colorspace.RGB `json:"color"`
	Frequency          float64        `json:"frequency"`
	Importance         float64        `json:"importance"`
	Representativeness float64        `json:"representativeness"`
}

// Config is the immutable input to one extraction run.
type Config struct {
	// TargetColorCount is the number of colours to extract. Values
	// below 1 are rejected by Validate, not clamped.
	TargetColorCount int

	// MaxColorCount is an upper bound on palette size; it must be at
	// least TargetColorCount.
	MaxColorCount int

	// QualityThreshold is the minimum acceptable quality score for a
	// palette, consumed by callers that re-extract on poor results.
	QualityThreshold float64

	// ColorDistanceThreshold is the RGB distance below which the hybrid
	// combiner merges two colours.
	ColorDistanceThreshold float64

	// Algorithm selects the quantizer.
	Algorithm Algorithm

	// SamplingStrategy selects the pixel sampler feeding the quantizer.
	SamplingStrategy sampler.Strategy

	// MaxIterations bounds the k-means loop.
	MaxIterations int

	// ConvergenceThreshold stops k-means once average centroid movement
	// falls below it.
	ConvergenceThreshold float64

	// Rand supplies randomness for k-means++ initialization. A nil
	// value falls back to a time-seeded source; supplying a seeded
	// generator makes k-means reproducible.
	Rand *rand.Rand
}

// DefaultConfig returns the default extraction configuration.
func DefaultConfig() Config {
	return Config{
		TargetColorCount:       8,
		MaxColorCount:          16,
		QualityThreshold:       0.3,
		ColorDistanceThreshold: 15,
		Algorithm:              AlgorithmHybrid,
		SamplingStrategy:       sampler.StrategyHybrid,
		MaxIterations:          100,
		ConvergenceThreshold:   1.0,
	}
}

// Validate validates the extraction configuration.
func (c Config) Validate() error {
	if c.TargetColorCount < 1 {
		return fmt.Errorf("target colour count must be at least 1, got %d", c.TargetColorCount)
	}
	if c.TargetColorCount > 256 {
		return fmt.Errorf("target colour count too large: %d (maximum: 256)", c.TargetColorCount)
	}
	if c.MaxColorCount > 0 && c.MaxColorCount < c.TargetColorCount {
		return fmt.Errorf("max colour count %d is below target %d", c.MaxColorCount, c.TargetColorCount)
	}
	if c.ColorDistanceThreshold < 0 {
		return fmt.Errorf("colour distance threshold must be non-negative, got %v", c.ColorDistanceThreshold)
	}
	if !IsValidAlgorithm(c.Algorithm) {
		return fmt.Errorf("invalid algorithm: %s (valid algorithms: %v)", c.Algorithm, ValidAlgorithms())
	}
	if !sampler.IsValidStrategy(c.SamplingStrategy) {
		return fmt.Errorf("invalid sampling strategy: %s (valid strategies: %v)",
			c.SamplingStrategy, sampler.ValidStrategies())
	}
	return nil
}

// rng returns the configured random source, falling back to a
// time-seeded one.
func (c Config) rng() *rand.Rand {
	if c.Rand != nil {
		return c.Rand
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Quantizer is the single contract implemented by every extraction
// algorithm. Empty pixel input yields an empty colour list and a nil
// error. Octree and median-cut are fully deterministic; k-means is
// deterministic per injected random seed.
type Quantizer interface {
	Quantize(pixels []sampler.Pixel, cfg Config) ([]ExtractedColor, error)
}

// New creates a Quantizer for the given algorithm.
// Returns an error if the algorithm is not recognised.
func New(alg Algorithm) (Quantizer, error) {
	switch alg {
	case AlgorithmOctree:
		return &OctreeQuantizer{}, nil
	case AlgorithmMedianCut:
		return &MedianCutQuantizer{}, nil
	case AlgorithmKMeans:
		return &KMeansQuantizer{}, nil
	case AlgorithmHybrid:
		return &HybridQuantizer{}, nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", alg, ValidAlgorithms())
	}
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
