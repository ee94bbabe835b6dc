// Package quantize implements the colour reduction algorithms that turn
// a sampled pixel set into a small representative palette.
package quantize

import (
	"fmt"
	"math"
	"sort"

	"github.com/chromacube/chromacube/internal/sampler"
)

// Hybrid partitioning of the target count across the sub-algorithms.
// K-means absorbs the rounding remainder so the shares always add up.
const (
	hybridOctreeShare    = 0.4
	hybridMedianCutShare = 0.3
)

// Weights for ranking merged colours.
const (
	hybridFrequencyWeight          = 0.4
	hybridImportanceWeight         = 0.3
	hybridRepresentativenessWeight = 0.3
)

// HybridQuantizer runs octree, median-cut and k-means on the same
// sample set with split sub-counts, merges near-identical colours and
// keeps the highest scoring survivors.
type HybridQuantizer struct{}

// Quantize runs the three sub-algorithms and combines their output.
func (q *HybridQuantizer) Quantize(pixels []sampler.Pixel, cfg Config) ([]ExtractedColor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(pixels) == 0 {
		return []ExtractedColor{}, nil
	}

	target := cfg.TargetColorCount
	octreeCount := int(hybridOctreeShare * float64(target))
	medianCutCount := int(hybridMedianCutShare * float64(target))
	kmeansCount := target - octreeCount - medianCutCount

	subTargets := []struct {
		quantizer Quantizer
		count     int
	}{
		{&OctreeQuantizer{}, octreeCount},
		{&MedianCutQuantizer{}, medianCutCount},
		{&KMeansQuantizer{}, kmeansCount},
	}

	var candidates []ExtractedColor
	for _, sub := range subTargets {
		if sub.count == 0 {
			continue
		}
		subCfg := cfg
		subCfg.TargetColorCount = sub.count
		if subCfg.MaxColorCount > 0 && subCfg.MaxColorCount < sub.count {
			subCfg.MaxColorCount = sub.count
		}
		colors, err := sub.quantizer.Quantize(pixels, subCfg)
		if err != nil {
			return nil, fmt.Errorf("hybrid sub-extraction failed: %w", err)
		}
		candidates = append(candidates, colors...)
	}

	threshold := cfg.ColorDistanceThreshold
	if threshold <= 0 {
		threshold = 15
	}
	merged := mergeByDistance(candidates, threshold)

	sort.SliceStable(merged, func(i, j int) bool {
		return hybridScore(merged[i]) > hybridScore(merged[j])
	})
	if len(merged) > target {
		merged = merged[:target]
	}

	return merged, nil
}

// hybridScore ranks a colour by its blended confidence.
func hybridScore(c ExtractedColor) float64 {
	return hybridFrequencyWeight*c.Frequency +
		hybridImportanceWeight*c.Importance +
		hybridRepresentativenessWeight*c.Representativeness
}

// mergeByDistance folds colours within the RGB distance threshold into
// the first-kept entry, taking the elementwise max of its scores.
func mergeByDistance(colors []ExtractedColor, threshold float64) []ExtractedColor {
	kept := make([]ExtractedColor, 0, len(colors))
	for _, c := range colors {
		mergedIn := false
		for i := range kept {
			if rgbDistance(kept[i], c) <= threshold {
				kept[i].Frequency = math.Max(kept[i].Frequency, c.Frequency)
				kept[i].Importance = math.Max(kept[i].Importance, c.Importance)
				kept[i].Representativeness = math.Max(kept[i].Representativeness, c.Representativeness)
				mergedIn = true
				break
			}
		}
		if !mergedIn {
			kept = append(kept, c)
		}
	}
	return kept
}

// rgbDistance is the Euclidean distance between two extracted colours
// in RGB space.
func rgbDistance(a, b ExtractedColor) float64 {
	dr := float64(a.Color.R) - float64(b.Color.R)
	dg := float64(a.Color.G) - float64(b.Color.G)
	db := float64(a.Color.B) - float64(b.Color.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}
