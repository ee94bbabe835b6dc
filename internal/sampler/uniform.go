// Package sampler reduces full image buffers to bounded candidate pixel
// sets for the quantizers.
package sampler

// UniformSampler stride-samples the image, producing roughly
// min(totalPixels, MaxSamples) pixels with even spatial coverage.
type UniformSampler struct{}

// Sample walks the image at a fixed stride, skipping transparent
// pixels.
func (s *UniformSampler) Sample(img *Image, cfg Config) ([]Pixel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	total := img.Width * img.Height
	if total == 0 {
		return []Pixel{}, nil
	}

	maxSamples := cfg.cappedSamples()
	step := total / maxSamples
	if step < 1 {
		step = 1
	}

	pixels := make([]Pixel, 0, min(total, maxSamples))
	for i := 0; i < total; i += step {
		x := i % img.Width
		y := i / img.Width
		if !img.Opaque(x, y) {
			continue
		}
		pixels = append(pixels, img.PixelAt(x, y))
		if len(pixels) >= maxSamples {
			break
		}
	}

	return pixels, nil
}
