// Chromacube - a perceptual colour palette extractor
//
// Chromacube extracts colour palettes from images using perceptually
// grounded quantization, and can compare its algorithms head to head.
package main

import (
	"github.com/chromacube/chromacube/internal/cli"
)

func main() {
	cli.Execute()
}
