// Package quantize implements the colour reduction algorithms that turn
// a sampled pixel set into a small representative palette.
package quantize

import (
	"math"
	"sort"

	"github.com/chromacube/chromacube/internal/colorspace"
	"github.com/chromacube/chromacube/internal/sampler"
)

// MedianCutQuantizer recursively splits the colour bounding box with
// the largest total channel range at the median of its widest channel.
type MedianCutQuantizer struct{}

// colorBox is a mutable working set of colours with per-channel bounds;
// it only exists for the duration of one Quantize call.
type colorBox struct {
	colors     []colorspace.RGB
	minR, maxR uint8
	minG, maxG uint8
	minB, maxB uint8
}

// newColorBox wraps a colour slice and computes its bounds.
func newColorBox(colors []colorspace.RGB) *colorBox {
	box := &colorBox{colors: colors}
	box.recomputeBounds()
	return box
}

func (b *colorBox) recomputeBounds() {
	b.minR, b.minG, b.minB = 255, 255, 255
	b.maxR, b.maxG, b.maxB = 0, 0, 0
	for _, c := range b.colors {
		if c.R < b.minR {
			b.minR = c.R
		}
		if c.R > b.maxR {
			b.maxR = c.R
		}
		if c.G < b.minG {
			b.minG = c.G
		}
		if c.G > b.maxG {
			b.maxG = c.G
		}
		if c.B < b.minB {
			b.minB = c.B
		}
		if c.B > b.maxB {
			b.maxB = c.B
		}
	}
}

// rangeSum is the sum of the three channel ranges. Box selection uses
// this rather than true volume, matching the "largest total range"
// tie-break of the original design.
func (b *colorBox) rangeSum() int {
	return int(b.maxR-b.minR) + int(b.maxG-b.minG) + int(b.maxB-b.minB)
}

// widestChannel returns 0, 1 or 2 for the channel with the largest
// range (red wins ties, then green).
func (b *colorBox) widestChannel() int {
	rs := b.maxR - b.minR
	gs := b.maxG - b.minG
	bs := b.maxB - b.minB
	if rs >= gs && rs >= bs {
		return 0
	}
	if gs >= bs {
		return 1
	}
	return 2
}

// split sorts the box's colours along its widest channel and divides at
// the median index.
func (b *colorBox) split() (*colorBox, *colorBox) {
	channel := b.widestChannel()
	sort.SliceStable(b.colors, func(i, j int) bool {
		switch channel {
		case 0:
			return b.colors[i].R < b.colors[j].R
		case 1:
			return b.colors[i].G < b.colors[j].G
		default:
			return b.colors[i].B < b.colors[j].B
		}
	})

	mid := len(b.colors) / 2
	return newColorBox(b.colors[:mid]), newColorBox(b.colors[mid:])
}

// average emits the box mean colour.
func (b *colorBox) average() colorspace.RGB {
	var r, g, bl uint64
	for _, c := range b.colors {
		r += uint64(c.R)
		g += uint64(c.G)
		bl += uint64(c.B)
	}
	n := float64(len(b.colors))
	return colorspace.RGB{
		R: uint8(math.Round(float64(r) / n)),
		G: uint8(math.Round(float64(g) / n)),
		B: uint8(math.Round(float64(bl) / n)),
	}
}

// Quantize splits boxes until the target count is reached or no box has
// more than one colour, then emits per-box averages.
func (q *MedianCutQuantizer) Quantize(pixels []sampler.Pixel, cfg Config) ([]ExtractedColor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(pixels) == 0 {
		return []ExtractedColor{}, nil
	}

	colors := make([]colorspace.RGB, len(pixels))
	for i, p := range pixels {
		colors[i] = colorspace.RGB{R: p.R, G: p.G, B: p.B}
	}

	boxes := []*colorBox{newColorBox(colors)}
	for len(boxes) < cfg.TargetColorCount {
		// Pick the splittable box with the largest total range;
		// first-encountered wins ties.
		best := -1
		bestRange := -1
		for i, box := range boxes {
			// Boxes with a single entry, or whose entries are all the
			// same colour, cannot be split further.
			if len(box.colors) < 2 || box.rangeSum() == 0 {
				continue
			}
			if r := box.rangeSum(); r > bestRange {
				best = i
				bestRange = r
			}
		}
		if best < 0 {
			break
		}

		left, right := boxes[best].split()
		boxes[best] = left
		boxes = append(boxes, right)
	}

	total := float64(len(pixels))
	maxSize := 0
	for _, box := range boxes {
		if len(box.colors) > maxSize {
			maxSize = len(box.colors)
		}
	}

	out := make([]ExtractedColor, 0, len(boxes))
	for _, box := range boxes {
		if len(box.colors) == 0 {
			continue
		}

		// Importance: dominance relative to the biggest box.
		// Representativeness: tighter boxes describe their members
		// better, so score by the unused fraction of the channel range.
		out = append(out, ExtractedColor{
			Color:              box.average(),
			Frequency:          float64(len(box.colors)) / total,
			Importance:         float64(len(box.colors)) / float64(maxSize),
			Representativeness: clamp01(1.0 - float64(box.rangeSum())/(3.0*255.0)),
		})
	}

	return out, nil
}
