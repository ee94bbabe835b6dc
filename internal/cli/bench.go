package cli

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/chromacube/chromacube/internal/engine"
	"github.com/chromacube/chromacube/internal/quantize"
	"github.com/chromacube/chromacube/internal/sampler"
)

var (
	// Bench command flags
	benchColors     int
	benchIterations int
	benchSeed       int64
)

// benchCmd represents the bench command
var benchCmd = &cobra.Command{
	Use:   "bench <image>",
	Short: "Benchmark quantization algorithms on an image",
	Long: `Benchmark quantization algorithms on an image.

The bench command runs each quantization algorithm repeatedly against
the same image and reports per-algorithm timing statistics. Useful for
choosing an algorithm when extraction latency matters.

Examples:
  # Benchmark with defaults (10 iterations per algorithm)
  chromacube bench wallpaper.jpg

  # Longer run with 16 colours
  chromacube bench -n 50 -c 16 wallpaper.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runBench,
}

func init() {
	benchCmd.Flags().IntVarP(&benchColors, "colors", "c", 8, "number of colours to extract (1-256)")
	benchCmd.Flags().IntVarP(&benchIterations, "iterations", "n", 10, "iterations per algorithm")
	benchCmd.Flags().Int64Var(&benchSeed, "seed", 0, "random seed for reproducible runs (0 = time-seeded)")
}

// runBench executes the bench command.
func runBench(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	if benchIterations < 1 {
		return fmt.Errorf("iterations must be at least 1, got %d", benchIterations)
	}

	buf, err := loadImageBuffer(args[0], verbose)
	if err != nil {
		return err
	}

	table := NewTable([]string{"ALGORITHM", "MIN", "MAX", "MEAN", "QUALITY"})

	for _, alg := range quantize.ValidAlgorithms() {
		cfg := quantize.DefaultConfig()
		cfg.TargetColorCount = benchColors
		if cfg.MaxColorCount < benchColors {
			cfg.MaxColorCount = benchColors
		}
		cfg.Algorithm = alg
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		var (
			minTime time.Duration
			maxTime time.Duration
			total   time.Duration
			quality float64
		)
		for i := 0; i < benchIterations; i++ {
			if benchSeed != 0 {
				// Re-seed every iteration so each run does identical work.
				cfg.Rand = rand.New(rand.NewSource(benchSeed))
			}
			result, err := engine.Extract(buf, cfg, sampler.DefaultConfig())
			if err != nil {
				return fmt.Errorf("%s extraction failed: %w", alg, err)
			}

			d := result.ExtractionTime
			if i == 0 || d < minTime {
				minTime = d
			}
			if d > maxTime {
				maxTime = d
			}
			total += d
			quality = result.QualityScore
		}

		mean := total / time.Duration(benchIterations)
		table.AddRow([]string{
			string(alg),
			minTime.String(),
			maxTime.String(),
			mean.String(),
			fmt.Sprintf("%.3f", quality),
		})

		if verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d iterations, mean %s\n", alg, benchIterations, mean)
		}
	}

	fmt.Printf("Benchmark: %d iterations per algorithm, %d colours\n\n", benchIterations, benchColors)
	fmt.Print(table.Render())
	return nil
}
