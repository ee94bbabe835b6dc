// Test image generator for manual palette extraction runs.
//
// Produces testdata/sample.png: a 2x4 grid of saturated colour blocks,
// with one block replaced by a vertical luminance gradient and one by
// fully transparent pixels, so sampling, quantization and alpha
// handling can all be eyeballed from the CLI.
package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

func main() {
	width := 400
	height := 400
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	colors := []color.RGBA{
		{R: 255, G: 0, B: 0, A: 255},     // Red
		{R: 0, G: 255, B: 0, A: 255},     // Green
		{R: 0, G: 0, B: 255, A: 255},     // Blue
		{R: 255, G: 255, B: 0, A: 255},   // Yellow
		{R: 255, G: 0, B: 255, A: 255},   // Magenta
		{R: 0, G: 255, B: 255, A: 255},   // Cyan
		{R: 128, G: 128, B: 128, A: 255}, // Gray
		{R: 255, G: 128, B: 0, A: 255},   // Orange
	}

	blockWidth := width / 2
	blockHeight := height / 4

	colorIndex := 0
	for row := 0; row < 4; row++ {
		for col := 0; col < 2; col++ {
			c := colors[colorIndex]
			colorIndex++

			for y := row * blockHeight; y < (row+1)*blockHeight; y++ {
				for x := col * blockWidth; x < (col+1)*blockWidth; x++ {
					switch {
					case row == 3 && col == 0:
						// Vertical gradient block.
						v := uint8(255 - (y-row*blockHeight)*255/blockHeight)
						img.Set(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
					case row == 3 && col == 1:
						// Transparent block: must be ignored by samplers.
						img.Set(x, y, color.RGBA{})
					default:
						img.Set(x, y, c)
					}
				}
			}
		}
	}

	file, err := os.Create("testdata/sample.png")
	if err != nil {
		panic(err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		panic(err)
	}

	println("Test image created: testdata/sample.png")
}
