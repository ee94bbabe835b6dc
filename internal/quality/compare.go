// Package quality scores extracted palettes and compares the
// quantization algorithms head to head.
package quality

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/chromacube/chromacube/internal/quantize"
	"github.com/chromacube/chromacube/internal/sampler"
)

// Overall score blend for ranking algorithms against each other.
const (
	qualityShare     = 0.7
	performanceShare = 0.2
	memoryShare      = 0.1
)

// AlgorithmResult is the outcome of running one quantizer inside a
// comparison.
type AlgorithmResult struct {
	Algorithm    quantize.Algorithm        `json:"algorithm"`
	Colors       []quantize.ExtractedColor `json:"colors"`
	Quality      Breakdown                 `json:"quality"`
	Duration     time.Duration             `json:"duration"`
	MemoryBytes  int64                     `json:"memory_bytes"`
	OverallScore float64                   `json:"overall_score"`
}

// Comparison is the result of running every algorithm on identical
// sampled input.
type Comparison struct {
	Results       map[quantize.Algorithm]*AlgorithmResult `json:"results"`
	SampleCount   int                                     `json:"sample_count"`
	SampleMetrics sampler.Metrics                         `json:"sample_metrics"`
	Winner        quantize.Algorithm                      `json:"winner"`
}

// Comparator runs all quantizers head to head over one sampled pixel
// set.
type Comparator struct {
	logger hclog.Logger
}

// NewComparator creates a Comparator. A nil logger is replaced with a
// no-op one.
func NewComparator(logger hclog.Logger) *Comparator {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Comparator{logger: logger}
}

// Compare samples the image once and feeds the identical pixel set to
// all four quantizers, scoring each and declaring a winner. The
// quantizers run concurrently; each receives its own random source
// derived from the configured one so results stay reproducible per
// seed.
func (c *Comparator) Compare(img *sampler.Image, cfg quantize.Config, sampleCfg sampler.Config) (*Comparison, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	smp, err := sampler.New(cfg.SamplingStrategy)
	if err != nil {
		return nil, err
	}
	sampleCfg.Rand = deriveRand(cfg)
	pixels, err := smp.Sample(img, sampleCfg)
	if err != nil {
		return nil, fmt.Errorf("sampling failed: %w", err)
	}
	c.logger.Debug("sampled image", "strategy", cfg.SamplingStrategy, "samples", len(pixels))

	algorithms := quantize.ValidAlgorithms()

	// Seeds are drawn sequentially before the goroutines start so the
	// shared random source is never touched concurrently.
	seeds := make(map[quantize.Algorithm]*rand.Rand, len(algorithms))
	for _, alg := range algorithms {
		seeds[alg] = deriveRand(cfg)
	}

	results := make(map[quantize.Algorithm]*AlgorithmResult, len(algorithms))
	var mu sync.Mutex
	var wg sync.WaitGroup
	errs := make(map[quantize.Algorithm]error, len(algorithms))

	for _, alg := range algorithms {
		wg.Add(1)
		go func(alg quantize.Algorithm) {
			defer wg.Done()

			q, err := quantize.New(alg)
			if err != nil {
				mu.Lock()
				errs[alg] = err
				mu.Unlock()
				return
			}

			runCfg := cfg
			runCfg.Algorithm = alg
			runCfg.Rand = seeds[alg]

			start := time.Now()
			colors, err := q.Quantize(pixels, runCfg)
			duration := time.Since(start)
			if err != nil {
				mu.Lock()
				errs[alg] = err
				mu.Unlock()
				return
			}

			result := &AlgorithmResult{
				Algorithm:   alg,
				Colors:      colors,
				Quality:     Score(colors),
				Duration:    duration,
				MemoryBytes: estimateMemory(len(pixels), len(colors)),
			}
			result.OverallScore = overallScore(result)

			mu.Lock()
			results[alg] = result
			mu.Unlock()
		}(alg)
	}
	wg.Wait()

	for _, alg := range algorithms {
		if err := errs[alg]; err != nil {
			return nil, fmt.Errorf("%s extraction failed: %w", alg, err)
		}
		r := results[alg]
		c.logger.Debug("algorithm finished",
			"algorithm", alg,
			"colors", len(r.Colors),
			"quality", r.Quality.Overall,
			"duration", r.Duration,
			"overall", r.OverallScore)
	}

	comparison := &Comparison{
		Results:       results,
		SampleCount:   len(pixels),
		SampleMetrics: sampler.ComputeMetrics(img, pixels),
		Winner:        pickWinner(results, algorithms),
	}
	c.logger.Debug("comparison complete", "winner", comparison.Winner)
	return comparison, nil
}

// pickWinner returns the algorithm with the strictly maximal overall
// score. Ties fall to the earlier entry in the fixed enumeration order.
func pickWinner(results map[quantize.Algorithm]*AlgorithmResult, order []quantize.Algorithm) quantize.Algorithm {
	winner := order[0]
	best := results[winner].OverallScore
	for _, alg := range order[1:] {
		if results[alg].OverallScore > best {
			winner = alg
			best = results[alg].OverallScore
		}
	}
	return winner
}

// overallScore blends palette quality with inverse duration and memory
// footprint.
func overallScore(r *AlgorithmResult) float64 {
	// Sub-millisecond runs score ~1; the score halves for every
	// additional 50ms.
	perf := 1.0 / (1.0 + float64(r.Duration.Milliseconds())/50.0)

	// Memory is scored against a loose 1 MiB budget.
	mem := 1.0 - float64(r.MemoryBytes)/(1<<20)
	if mem < 0 {
		mem = 0
	}

	return qualityShare*r.Quality.Overall + performanceShare*perf + memoryShare*mem
}

// estimateMemory approximates the working-set bytes of one extraction:
// the sampled pixels plus the emitted colours.
func estimateMemory(sampleCount, colorCount int) int64 {
	const pixelBytes = 24   // two ints plus four channel bytes, padded
	const colorBytes = 32   // RGB plus three float scores, padded
	return int64(sampleCount*pixelBytes + colorCount*colorBytes)
}

// deriveRand produces an independent random source from the configured
// one, or a time-seeded source when none is set.
func deriveRand(cfg quantize.Config) *rand.Rand {
	if cfg.Rand != nil {
		return rand.New(rand.NewSource(cfg.Rand.Int63()))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
