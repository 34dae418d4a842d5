package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/vqatools/vqa-annotator/internal"
)

var (
	questionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	answerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

var showCmd = &cobra.Command{
	Use:   "show <folder> <image>",
	Short: "Print the QA pairs of one image",
	Long:  `Print every question/answer pair recorded for one image, including the kind and coordinates of any attached regions.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder, name := args[0], args[1]

		store := internal.NewAnnotationStore(folder)
		annotations, err := store.Load()
		if err != nil {
			return fmt.Errorf("failed to load annotations: %w", err)
		}

		turns, ok := annotations[name]
		if !ok || len(turns) == 0 {
			fmt.Printf("No annotations for %s\n", name)
			return nil
		}

		fmt.Println(headerStyle.Render(name))
		for _, s := range turns.Summaries() {
			fmt.Println(questionStyle.Render(s.Question))
			fmt.Println(answerStyle.Render(s.Answer))
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
