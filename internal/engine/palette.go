// Package engine orchestrates sampling, quantization and quality
// scoring behind a single extraction call.
package engine

import (
	"encoding/json"
	"fmt"

	"github.com/chromacube/chromacube/internal/colorspace"
)

// ToHex returns the extracted colours as hex strings (e.g.,
// ["#1a2b3c", "#4d5e6f"]).
func (r *Result) ToHex() []string {
	hexColors := make([]string, len(r.Colors))
	for i, c := range r.Colors {
		hexColors[i] = c.Color.Hex()
	}
	return hexColors
}

// ToRGBSlice returns the extracted colours as RGB structs.
func (r *Result) ToRGBSlice() []colorspace.RGB {
	rgbColors := make([]colorspace.RGB, len(r.Colors))
	for i, c := range r.Colors {
		rgbColors[i] = c.Color
	}
	return rgbColors
}

// colorJSON represents one colour in JSON output.
type colorJSON struct {
	Hex                string         `json:"hex"`
	RGB                colorspace.RGB `json:"rgb"`
	Frequency          float64        `json:"frequency"`
	Importance         float64        `json:"importance"`
	Representativeness float64        `json:"representativeness"`
}

// resultJSON is the JSON output shape of one extraction.
type resultJSON struct {
	Count        int         `json:"count"`
	Algorithm    string      `json:"algorithm"`
	QualityScore float64     `json:"quality_score"`
	ExtractionMS float64     `json:"extraction_ms"`
	SampleCount  int         `json:"sample_count"`
	Colors       []colorJSON `json:"colors"`
}

// ToJSON renders the extraction result as indented JSON.
func (r *Result) ToJSON() ([]byte, error) {
	colors := make([]colorJSON, len(r.Colors))
	for i, c := range r.Colors {
		colors[i] = colorJSON{
			Hex:                c.Color.Hex(),
			RGB:                c.Color,
			Frequency:          c.Frequency,
			Importance:         c.Importance,
			Representativeness: c.Representativeness,
		}
	}

	return json.MarshalIndent(resultJSON{
		Count:        r.ColorCount,
		Algorithm:    string(r.Algorithm),
		QualityScore: r.QualityScore,
		ExtractionMS: float64(r.ExtractionTime.Microseconds()) / 1000.0,
		SampleCount:  r.SampleCount,
		Colors:       colors,
	}, "", "  ")
}

// String returns a human-readable representation of the palette.
func (r *Result) String() string {
	if len(r.Colors) == 0 {
		return "Empty palette"
	}

	out := fmt.Sprintf("Palette with %d colours (%s, quality %.2f):\n", r.ColorCount, r.Algorithm, r.QualityScore)
	for i, c := range r.Colors {
		out += fmt.Sprintf("  %2d: %s (%s) freq=%.3f\n", i+1, c.Color.Hex(), c.Color.String(), c.Frequency)
	}
	return out
}
