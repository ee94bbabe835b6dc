// Package engine orchestrates sampling, quantization and quality
// scoring behind a single extraction call.
package engine

import (
	"fmt"
	"time"

	"github.com/chromacube/chromacube/internal/quality"
	"github.com/chromacube/chromacube/internal/quantize"
	"github.com/chromacube/chromacube/internal/sampler"
)

// Result is the output of one extraction run.
type Result struct {
	Colors         []quantize.ExtractedColor `json:"colors"`
	Algorithm      quantize.Algorithm        `json:"algorithm"`
	ExtractionTime time.Duration             `json:"extraction_time"`
	QualityScore   float64                   `json:"quality_score"`
	Quality        quality.Breakdown         `json:"quality"`
	MemoryUsage    int64                     `json:"memory_usage"`
	ColorCount     int                       `json:"color_count"`
	SampleCount    int                       `json:"sample_count"`
	SampleMetrics  sampler.Metrics           `json:"sample_metrics"`
}

// Extract runs the full pipeline: sample the image with the configured
// strategy, quantize the samples with the configured algorithm, then
// score the palette. An image with no usable pixels produces an empty,
// zero-scored result rather than an error.
func Extract(img *sampler.Image, cfg quantize.Config, sampleCfg sampler.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := sampleCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sampling configuration: %w", err)
	}

	start := time.Now()

	smp, err := sampler.New(cfg.SamplingStrategy)
	if err != nil {
		return nil, err
	}
	if sampleCfg.Rand == nil {
		sampleCfg.Rand = cfg.Rand
	}
	pixels, err := smp.Sample(img, sampleCfg)
	if err != nil {
		return nil, fmt.Errorf("sampling failed: %w", err)
	}

	q, err := quantize.New(cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	colors, err := q.Quantize(pixels, cfg)
	if err != nil {
		return nil, fmt.Errorf("quantization failed: %w", err)
	}

	breakdown := quality.Score(colors)

	return &Result{
		Colors:         colors,
		Algorithm:      cfg.Algorithm,
		ExtractionTime: time.Since(start),
		QualityScore:   breakdown.Overall,
		Quality:        breakdown,
		MemoryUsage:    estimateMemory(len(pixels), len(colors)),
		ColorCount:     len(colors),
		SampleCount:    len(pixels),
		SampleMetrics:  sampler.ComputeMetrics(img, pixels),
	}, nil
}

// ExtractDefault runs Extract with the default configuration: hybrid
// quantization over hybrid sampling, eight colours.
func ExtractDefault(img *sampler.Image) (*Result, error) {
	return Extract(img, quantize.DefaultConfig(), sampler.DefaultConfig())
}

// estimateMemory approximates the working-set bytes of one extraction.
func estimateMemory(sampleCount, colorCount int) int64 {
	const pixelBytes = 24
	const colorBytes = 32
	return int64(sampleCount*pixelBytes + colorCount*colorBytes)
}
