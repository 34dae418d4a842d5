package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vqatools/vqa-annotator/internal"
)

var (
	verbose bool
	version string = "dev"
	commit  string = "unknown"
	date    string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vqa-annotator",
	Short: "Annotate images with multi-turn QA pairs and visual regions",
	Long: `A terminal tool for building vision-language training data: multi-turn
question/answer pairs per image, each turn optionally anchored to drawn
regions (rectangles, polygons, points) stored in image-pixel coordinates.

Annotations live in an annotations.json file at the root of each image
folder and round-trip losslessly through load and save.

Quick Start:
  vqa-annotator annotate ./images       # Open the interactive annotator
  vqa-annotator list ./images           # List images with annotation status
  vqa-annotator show ./images cat.png   # Print the QA pairs of one image
  vqa-annotator export ./images -f md   # Export annotations as Markdown`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
