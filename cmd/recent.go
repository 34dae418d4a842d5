package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vqatools/vqa-annotator/internal"
)

var recentLimit int

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently annotated folders",
	Long:  `List folders opened by the annotator, most recent first, with their annotation progress.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := internal.DefaultHistoryPath()
		if err != nil {
			return err
		}
		history, err := internal.OpenHistory(path)
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		defer func() { _ = history.Close() }()

		entries, err := history.Recent(recentLimit)
		if err != nil {
			return fmt.Errorf("failed to read history: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No folders annotated yet.")
			return nil
		}

		fmt.Println(headerStyle.Render("Recent folders"))
		for _, e := range entries {
			progress := countStyle.Render(fmt.Sprintf("%d/%d", e.AnnotatedCount, e.ImageCount))
			when := mutedStyle.Render(e.LastOpened.Local().Format("2006-01-02 15:04"))
			fmt.Printf("%s  %s  %s\n", progress, nameStyle.Render(e.Folder), when)
		}
		return nil
	},
}

func init() {
	recentCmd.Flags().IntVarP(&recentLimit, "limit", "n", 10, "Maximum entries to show")
	rootCmd.AddCommand(recentCmd)
}
