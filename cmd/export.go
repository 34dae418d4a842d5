package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/vqatools/vqa-annotator/internal"
	"github.com/vqatools/vqa-annotator/internal/export"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export <folder>",
	Short: "Export a folder's annotations",
	Long: `Export the annotations of a working folder in another format.

Formats: json, jsonl, yaml, md. By default the export is written into the
folder's outputs/ directory; use --output - to write to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder := args[0]

		store := internal.NewAnnotationStore(folder)
		annotations, err := store.Load()
		if err != nil {
			return fmt.Errorf("failed to load annotations: %w", err)
		}
		if len(annotations) == 0 {
			return fmt.Errorf("no annotations found in %s", folder)
		}

		// File order inside the folder when available, name order otherwise.
		files, err := internal.ListImages(folder)
		if err != nil {
			return fmt.Errorf("failed to list images: %w", err)
		}
		entries := make([]internal.ImageAnnotation, 0, len(annotations))
		seen := make(map[string]bool)
		for _, name := range files {
			if turns, ok := annotations[name]; ok {
				entries = append(entries, internal.ImageAnnotation{Image: name, Conversations: turns})
				seen[name] = true
			}
		}
		var extras []string
		for name := range annotations {
			if !seen[name] {
				extras = append(extras, name)
			}
		}
		sort.Strings(extras)
		for _, name := range extras {
			entries = append(entries, internal.ImageAnnotation{Image: name, Conversations: annotations[name]})
		}

		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}

		if exportOutput == "-" {
			return exporter.Export(entries, os.Stdout)
		}

		outPath := exportOutput
		if outPath == "" {
			outPath = filepath.Join(folder, internal.OutputsDirName, "annotations."+exporter.Extension())
		}
		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()

		if err := exporter.Export(entries, f); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		fmt.Printf("Exported %d images to %s\n", len(entries), outPath)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format (json, jsonl, yaml, md)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path ('-' for stdout)")
	rootCmd.AddCommand(exportCmd)
}
