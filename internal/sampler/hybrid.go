// Package sampler reduces full image buffers to bounded candidate pixel
// sets for the quantizers.
package sampler

// HybridSampler blends uniform, edge and random sampling according to
// the configured weights, de-duplicating identical coordinates.
// SpatialWeight funds the uniform pass, EdgeWeight the importance pass
// and ColorWeight a random pass that favours colour variety in regions
// neither of the other passes reach.
type HybridSampler struct{}

// Sample combines the strategies and caps the result at the configured
// maximum.
func (s *HybridSampler) Sample(img *Image, cfg Config) ([]Pixel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	total := img.Width * img.Height
	if total == 0 {
		return []Pixel{}, nil
	}

	maxSamples := cfg.cappedSamples()
	uniformBudget := int(cfg.SpatialWeight * float64(maxSamples))
	edgeBudget := int(cfg.EdgeWeight * float64(maxSamples))
	randomBudget := maxSamples - uniformBudget - edgeBudget

	seen := make(map[int]struct{}, maxSamples)
	pixels := make([]Pixel, 0, maxSamples)
	add := func(p Pixel) bool {
		key := p.Y*img.Width + p.X
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
		pixels = append(pixels, p)
		return true
	}

	if uniformBudget > 0 {
		uniformCfg := cfg
		uniformCfg.MaxSamples = uniformBudget
		uniform, err := (&UniformSampler{}).Sample(img, uniformCfg)
		if err != nil {
			return nil, err
		}
		for _, p := range uniform {
			add(p)
		}
	}

	if edgeBudget > 0 {
		edgeCfg := cfg
		edgeCfg.MaxSamples = edgeBudget
		edges, err := (&ImportanceSampler{edgesOnly: true}).Sample(img, edgeCfg)
		if err != nil {
			return nil, err
		}
		for _, p := range edges {
			add(p)
		}
	}

	if randomBudget > 0 {
		rng := cfg.rng()
		for attempts := 0; attempts < randomBudget*4 && randomBudget > 0; attempts++ {
			i := rng.Intn(total)
			x := i % img.Width
			y := i / img.Width
			if !img.Opaque(x, y) {
				continue
			}
			if add(img.PixelAt(x, y)) {
				randomBudget--
			}
		}
	}

	if len(pixels) > maxSamples {
		pixels = thin(pixels, maxSamples)
	}

	return pixels, nil
}
