// Package quantize implements the colour reduction algorithms that turn
// a sampled pixel set into a small representative palette.
package quantize

import (
	"math"
	"sort"

	"github.com/chromacube/chromacube/internal/colorspace"
	"github.com/chromacube/chromacube/internal/sampler"
)

// octreeDepth is the number of bit-plane levels in the trie; one level
// per bit of each 8-bit channel.
const octreeDepth = 8

// OctreeQuantizer reduces colours with an 8-level trie over the 24-bit
// RGB cube. Reduction drops the least-populated leaves outright rather
// than merging their pixel mass into siblings, which slightly
// understates total frequency after reduction. That behaviour is an
// accepted approximation carried over from the original design.
type OctreeQuantizer struct{}

// octreeNode accumulates the pixels that reach it. Only nodes at the
// deepest level carry counts.
type octreeNode struct {
	children [8]*octreeNode
	count    uint64
	redSum   uint64
	greenSum uint64
	blueSum  uint64
}

// branchIndex combines bit (7-level) of each channel into a child slot.
func branchIndex(r, g, b uint8, level int) int {
	shift := uint(7 - level)
	return int((r>>shift&1)<<2 | (g>>shift&1)<<1 | (b >> shift & 1))
}

// Quantize builds the trie, prunes it to the target leaf count and
// emits the surviving leaf averages.
func (q *OctreeQuantizer) Quantize(pixels []sampler.Pixel, cfg Config) ([]ExtractedColor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(pixels) == 0 {
		return []ExtractedColor{}, nil
	}

	root := &octreeNode{}
	var leaves []*octreeNode

	for _, p := range pixels {
		node := root
		for level := 0; level < octreeDepth; level++ {
			idx := branchIndex(p.R, p.G, p.B, level)
			if node.children[idx] == nil {
				node.children[idx] = &octreeNode{}
			}
			node = node.children[idx]
		}
		if node.count == 0 {
			leaves = append(leaves, node)
		}
		node.count++
		node.redSum += uint64(p.R)
		node.greenSum += uint64(p.G)
		node.blueSum += uint64(p.B)
	}

	leaves = reduceLeaves(leaves, cfg.TargetColorCount)

	total := float64(len(pixels))
	maxCount := uint64(0)
	for _, leaf := range leaves {
		if leaf.count > maxCount {
			maxCount = leaf.count
		}
	}

	colors := make([]ExtractedColor, 0, len(leaves))
	for _, leaf := range leaves {
		if leaf.count == 0 {
			continue
		}
		n := float64(leaf.count)
		frequency := n / total

		// Importance: dominance relative to the largest surviving leaf.
		// Representativeness: the leaf's share relative to a uniform
		// split of the samples across surviving leaves.
		importance := n / float64(maxCount)
		representativeness := clamp01(frequency * float64(len(leaves)))

		colors = append(colors, ExtractedColor{
			Color: colorspace.RGB{
				R: uint8(math.Round(float64(leaf.redSum) / n)),
				G: uint8(math.Round(float64(leaf.greenSum) / n)),
				B: uint8(math.Round(float64(leaf.blueSum) / n)),
			},
			Frequency:          frequency,
			Importance:         importance,
			Representativeness: representativeness,
		})
	}

	return colors, nil
}

// reduceLeaves repeatedly discards the smallest leaf until at most
// target remain. Because a dropped leaf's pixels are not reassigned,
// the surviving counts never change, so the loop collapses to keeping
// the target largest leaves. Insertion order breaks ties, keeping the
// result deterministic.
func reduceLeaves(leaves []*octreeNode, target int) []*octreeNode {
	if len(leaves) <= target {
		return leaves
	}

	order := make([]int, len(leaves))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return leaves[order[a]].count > leaves[order[b]].count
	})

	keep := make(map[int]struct{}, target)
	for _, idx := range order[:target] {
		keep[idx] = struct{}{}
	}

	// Preserve insertion order among survivors.
	out := make([]*octreeNode, 0, target)
	for i, leaf := range leaves {
		if _, ok := keep[i]; ok {
			out = append(out, leaf)
		}
	}
	return out
}
