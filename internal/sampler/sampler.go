// Package sampler reduces full image buffers to bounded candidate pixel
// sets for the quantizers.
package sampler

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Strategy selects the pixel sampling approach.
type Strategy string

const (
	// StrategyUniform stride-samples the image for even spatial coverage.
	StrategyUniform Strategy = "uniform"

	// StrategyImportance selects high-gradient pixels plus a random
	// baseline so flat regions are not starved.
	StrategyImportance Strategy = "importance"

	// StrategyEdge selects high-gradient pixels only, with no random
	// baseline.
	StrategyEdge Strategy = "edge"

	// StrategyHybrid blends uniform and importance sampling according
	// to the configured weights.
	StrategyHybrid Strategy = "hybrid"
)

// maxSampleCap bounds every sampling run regardless of configuration.
const maxSampleCap = 15000

// ValidStrategies returns the list of recognised sampling strategies.
func ValidStrategies() []Strategy {
	return []Strategy{
		StrategyUniform,
		StrategyImportance,
		StrategyEdge,
		StrategyHybrid,
	}
}

// IsValidStrategy checks if the given strategy name is valid.
func IsValidStrategy(s Strategy) bool {
	for _, valid := range ValidStrategies() {
		if s == valid {
			return true
		}
	}
	return false
}

// Config holds configuration for one sampling run.
type Config struct {
	// MaxSamples bounds the number of returned pixels. Values above the
	// internal cap of 15000 are clamped.
	MaxSamples int

	// SpatialWeight, ColorWeight and EdgeWeight control how the hybrid
	// strategy divides its sample budget. They must sum to 1.0 (within
	// a small tolerance).
	SpatialWeight float64
	ColorWeight   float64
	EdgeWeight    float64

	// RandomBaseline is the fraction of MaxSamples reserved for random
	// selection by the importance strategy.
	RandomBaseline float64

	// PercentileThreshold is the gradient-magnitude percentile above
	// which a pixel counts as important.
	PercentileThreshold float64

	// Rand supplies randomness for the importance and hybrid
	// strategies. A nil value falls back to a time-seeded source; tests
	// inject a seeded generator for reproducibility.
	Rand *rand.Rand
}

// DefaultConfig returns the default sampling configuration.
func DefaultConfig() Config {
	return Config{
		MaxSamples:          10000,
		SpatialWeight:       0.4,
		ColorWeight:         0.3,
		EdgeWeight:          0.3,
		RandomBaseline:      0.10,
		PercentileThreshold: 0.80,
	}
}

// Validate validates the sampling configuration.
func (c Config) Validate() error {
	if c.MaxSamples < 1 {
		return fmt.Errorf("max samples must be at least 1, got %d", c.MaxSamples)
	}
	if c.PercentileThreshold < 0 || c.PercentileThreshold >= 1 {
		return fmt.Errorf("percentile threshold must be in [0, 1), got %v", c.PercentileThreshold)
	}
	if c.RandomBaseline < 0 || c.RandomBaseline > 1 {
		return fmt.Errorf("random baseline must be in [0, 1], got %v", c.RandomBaseline)
	}
	sum := c.SpatialWeight + c.ColorWeight + c.EdgeWeight
	if math.Abs(sum-1.0) > 0.01 {
		return fmt.Errorf("sampling weights must sum to 1.0, got %v", sum)
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

// cappedSamples returns the effective sample budget.
func (c Config) cappedSamples() int {
	if c.MaxSamples > maxSampleCap {
		return maxSampleCap
	}
	return c.MaxSamples
}

// Sampler is the common contract implemented by every sampling
// strategy. An image with no usable pixels yields an empty slice and a
// nil error.
type Sampler interface {
	Sample(img *Image, cfg Config) ([]Pixel, error)
}

// New creates a Sampler for the given strategy.
// Returns an error if the strategy is not recognised.
func New(s Strategy) (Sampler, error) {
	switch s {
	case StrategyUniform:
		return &UniformSampler{}, nil
	case StrategyImportance:
		return &ImportanceSampler{}, nil
	case StrategyEdge:
		return &ImportanceSampler{edgesOnly: true}, nil
	case StrategyHybrid:
		return &HybridSampler{}, nil
	default:
		return nil, fmt.Errorf("unknown sampling strategy: %s (valid strategies: %v)", s, ValidStrategies())
	}
}
