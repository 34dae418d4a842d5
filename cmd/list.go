package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/vqatools/vqa-annotator/internal"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	annotatedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)
)

var listCmd = &cobra.Command{
	Use:   "list <folder>",
	Short: "List the images of a folder with annotation status",
	Long:  `List all supported image files in a folder and mark which ones already carry annotations.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder := args[0]

		files, err := internal.ListImages(folder)
		if err != nil {
			return fmt.Errorf("failed to list images: %w", err)
		}
		if len(files) == 0 {
			return &internal.EmptyFolderError{Dir: folder}
		}

		store := internal.NewAnnotationStore(folder)
		annotations, err := store.Load()
		if err != nil {
			return fmt.Errorf("failed to load annotations: %w", err)
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("Images in %s", folder)))
		annotated := 0
		for _, name := range files {
			marker := mutedStyle.Render("  ")
			if len(annotations[name]) > 0 {
				marker = annotatedStyle.Render("✓ ")
				annotated++
			}
			pairs := ""
			if n := annotations[name].PairCount(); n > 0 {
				pairs = mutedStyle.Render(fmt.Sprintf("  (%d pairs)", n))
			}
			fmt.Printf("%s%s%s\n", marker, nameStyle.Render(name), pairs)
		}
		fmt.Printf("\n%s of %d images annotated\n", countStyle.Render(fmt.Sprintf("%d", annotated)), len(files))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
