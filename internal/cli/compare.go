package cli

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/chromacube/chromacube/internal/quality"
	"github.com/chromacube/chromacube/internal/quantize"
	"github.com/chromacube/chromacube/internal/sampler"
)

var (
	// Compare command flags
	compareColors   int
	compareSampling string
	compareFormat   string
	compareSeed     int64
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare <image>",
	Short: "Compare all quantization algorithms on one image",
	Long: `Compare all quantization algorithms on one image.

The compare command samples the image once, runs every quantization
algorithm on the identical pixel set, scores each palette and declares a
winner based on quality, speed and memory footprint.

Examples:
  # Compare algorithms on an image
  chromacube compare wallpaper.jpg

  # Compare with 16 target colours and a fixed seed
  chromacube compare -c 16 --seed 42 wallpaper.jpg

  # Machine-readable comparison
  chromacube compare --format json wallpaper.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().IntVarP(&compareColors, "colors", "c", 8, "number of colours to extract (1-256)")
	compareCmd.Flags().StringVarP(&compareSampling, "sampling", "s", "hybrid", "pixel sampling strategy (uniform, importance, edge, hybrid)")
	compareCmd.Flags().StringVarP(&compareFormat, "format", "f", "table", "output format (table, json)")
	compareCmd.Flags().Int64Var(&compareSeed, "seed", 0, "random seed for reproducible comparison (0 = time-seeded)")
}

// compareLogger builds the logger fed to the comparator. Verbose runs
// get debug output on stderr, quiet ones a no-op logger.
func compareLogger(verbose bool) hclog.Logger {
	if !verbose {
		return hclog.NewNullLogger()
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "compare",
		Output: os.Stderr,
		Level:  hclog.Debug,
	})
}

// runCompare executes the compare command.
func runCompare(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg := quantize.DefaultConfig()
	cfg.TargetColorCount = compareColors
	if cfg.MaxColorCount < compareColors {
		cfg.MaxColorCount = compareColors
	}
	cfg.SamplingStrategy = sampler.Strategy(compareSampling)
	if compareSeed != 0 {
		cfg.Rand = rand.New(rand.NewSource(compareSeed))
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	buf, err := loadImageBuffer(args[0], verbose)
	if err != nil {
		return err
	}

	comparator := quality.NewComparator(compareLogger(verbose))
	comparison, err := comparator.Compare(buf, cfg, sampler.DefaultConfig())
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	switch compareFormat {
	case "json":
		jsonBytes, err := json.MarshalIndent(comparison, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		fmt.Println(string(jsonBytes))
	case "table":
		fmt.Print(renderComparison(comparison))
	default:
		return fmt.Errorf("unsupported format: %s (supported: table, json)", compareFormat)
	}

	return nil
}

// renderComparison formats a comparison as a table with one row per
// algorithm, followed by the winner.
func renderComparison(comparison *quality.Comparison) string {
	table := NewTable([]string{"ALGORITHM", "COLORS", "QUALITY", "TIME", "MEMORY", "OVERALL"})
	for _, alg := range quantize.ValidAlgorithms() {
		r, ok := comparison.Results[alg]
		if !ok {
			continue
		}
		table.AddRow([]string{
			string(alg),
			fmt.Sprintf("%d", len(r.Colors)),
			fmt.Sprintf("%.3f", r.Quality.Overall),
			r.Duration.String(),
			fmt.Sprintf("%d B", r.MemoryBytes),
			fmt.Sprintf("%.3f", r.OverallScore),
		})
	}

	out := table.Render()
	out += fmt.Sprintf("\nSamples: %d\n", comparison.SampleCount)
	out += fmt.Sprintf("Winner:  %s\n", comparison.Winner)
	return out
}
