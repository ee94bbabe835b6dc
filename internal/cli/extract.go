package cli

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/chromacube/chromacube/internal/engine"
	"github.com/chromacube/chromacube/internal/image"
	"github.com/chromacube/chromacube/internal/quantize"
	"github.com/chromacube/chromacube/internal/sampler"
)

var (
	// Extract command flags
	extractColors      int
	extractAlgorithm   string
	extractSampling    string
	extractSamples     int
	extractFormat      string
	extractOutput      string
	extractSeed        int64
	extractShowPreview bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <image>",
	Short: "Extract a colour palette from an image",
	Long: `Extract a colour palette from an image using various algorithms.

The extract command samples pixels from an image, quantizes them down to
a small palette and scores the result for perceptual quality. You can
control the number of colours, the quantization algorithm, the sampling
strategy and the output format.

If the path is a directory, a random image inside it is selected.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Extract 8 colours (default) from an image
  chromacube extract wallpaper.jpg

  # Extract 16 colours with the octree algorithm
  chromacube extract -c 16 -a octree wallpaper.png

  # Use edge-biased sampling and output JSON
  chromacube extract --sampling edge --format json wallpaper.jpg

  # Show colour previews in the terminal
  chromacube extract --preview wallpaper.jpg

  # Reproducible extraction with a fixed seed
  chromacube extract --seed 42 wallpaper.jpg

  # Save the palette to a file
  chromacube extract --output palette.txt wallpaper.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	// Define flags for the extract command
	extractCmd.Flags().IntVarP(&extractColors, "colors", "c", 8, "number of colours to extract (1-256)")
	extractCmd.Flags().StringVarP(&extractAlgorithm, "algorithm", "a", "hybrid", "quantization algorithm (octree, mediancut, kmeans, hybrid)")
	extractCmd.Flags().StringVarP(&extractSampling, "sampling", "s", "hybrid", "pixel sampling strategy (uniform, importance, edge, hybrid)")
	extractCmd.Flags().IntVar(&extractSamples, "samples", 0, "maximum pixels to sample (0 = default)")
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "hex", "output format (hex, rgb, json)")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "output file (default: stdout)")
	extractCmd.Flags().Int64Var(&extractSeed, "seed", 0, "random seed for reproducible extraction (0 = time-seeded)")
	extractCmd.Flags().BoolVar(&extractShowPreview, "preview", false, "show colour previews in terminal")
}

// buildConfigs assembles the extraction and sampling configurations
// from the command-line flags.
func buildConfigs() (quantize.Config, sampler.Config, error) {
	cfg := quantize.DefaultConfig()
	cfg.TargetColorCount = extractColors
	if cfg.MaxColorCount < extractColors {
		cfg.MaxColorCount = extractColors
	}
	cfg.Algorithm = quantize.Algorithm(extractAlgorithm)
	cfg.SamplingStrategy = sampler.Strategy(extractSampling)
	if extractSeed != 0 {
		cfg.Rand = rand.New(rand.NewSource(extractSeed))
	}

	sampleCfg := sampler.DefaultConfig()
	if extractSamples > 0 {
		sampleCfg.MaxSamples = extractSamples
	}

	if err := cfg.Validate(); err != nil {
		return cfg, sampleCfg, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := sampleCfg.Validate(); err != nil {
		return cfg, sampleCfg, fmt.Errorf("invalid sampling configuration: %w", err)
	}
	return cfg, sampleCfg, nil
}

// loadImageBuffer resolves, loads and decodes an image path into the
// pixel buffer the extraction pipeline consumes.
func loadImageBuffer(path string, verbose bool) (*sampler.Image, error) {
	if err := image.ValidateImagePath(path); err != nil {
		return nil, fmt.Errorf("invalid image path: %w", err)
	}

	resolved, err := image.ResolveImagePath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve image path: %w", err)
	}
	if verbose && resolved != path {
		fmt.Fprintf(os.Stderr, "Selected image: %s\n", resolved)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Loading image: %s\n", resolved)
	}
	loader := image.NewFileLoader()
	img, err := loader.Load(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	buf, err := image.ToBuffer(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Image loaded: %dx%d\n", buf.Width, buf.Height)
	}
	return buf, nil
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, sampleCfg, err := buildConfigs()
	if err != nil {
		return err
	}

	buf, err := loadImageBuffer(args[0], verbose)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Extracting %d colours using %s algorithm (%s sampling)...\n",
			extractColors, extractAlgorithm, extractSampling)
	}

	result, err := engine.Extract(buf, cfg, sampleCfg)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Extracted %d colours from %d samples in %s (quality %.3f)\n",
			result.ColorCount, result.SampleCount, result.ExtractionTime, result.QualityScore)
	}

	output, err := formatResult(result, extractFormat, extractShowPreview && SupportsANSIColors())
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	// Write output to file or stdout
	if extractOutput != "" {
		if verbose {
			fmt.Fprintf(os.Stderr, "Writing output to: %s\n", extractOutput)
		}
		if err := os.WriteFile(extractOutput, []byte(output), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	} else {
		fmt.Print(output)
	}

	return nil
}

// formatResult formats the palette according to the specified format.
func formatResult(result *engine.Result, format string, showPreview bool) (string, error) {
	switch format {
	case "hex":
		return formatHex(result, showPreview), nil
	case "rgb":
		return formatRGB(result, showPreview), nil
	case "json":
		jsonBytes, err := result.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: hex, rgb, json)", format)
	}
}

// formatHex formats the palette as hex colour codes.
func formatHex(result *engine.Result, showPreview bool) string {
	output := ""
	for _, c := range result.ToRGBSlice() {
		if showPreview {
			output += FormatColorWithPreview(c, defaultWidth) + "\n"
		} else {
			output += c.Hex() + "\n"
		}
	}
	return output
}

// formatRGB formats the palette as RGB values.
func formatRGB(result *engine.Result, showPreview bool) string {
	output := ""
	for _, c := range result.ToRGBSlice() {
		if showPreview {
			output += ColorPreview(c, defaultWidth) + "  " + c.String() + "\n"
		} else {
			output += c.String() + "\n"
		}
	}
	return output
}
