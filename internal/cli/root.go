// Package cli provides the command-line interface for chromacube.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chromacube/chromacube/internal/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chromacube",
	Short: "A perceptual colour palette extractor",
	Long: `Chromacube extracts colour palettes from images using perceptually
grounded quantization.

Four extraction algorithms are available (octree, median-cut, k-means and a
hybrid of all three), combined with configurable pixel sampling strategies
and a palette quality scorer that can compare the algorithms against each
other on a given image.`,
	Version:      version.Short(),
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(benchCmd)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}
