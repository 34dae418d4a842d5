package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/vqatools/vqa-annotator/internal"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate <folder>",
	Short: "Open the interactive annotator on a folder of images",
	Long: `Open the terminal annotator. The image is rendered on a cell canvas;
draw with the mouse (left button starts and drags a shape, right button
finishes it), type the question and answer, and press enter to commit the
pair. Shapes drawn while the question field has focus attach to the
question, otherwise to the answer.

Key bindings:
  tab            switch between question and answer field
  enter          commit the question/answer pair
  f2 / f3 / f4   rectangle / polygon / point drawing mode
  esc            discard the in-progress shape
  ctrl+x         discard all drawn shapes and pending regions
  pgup / pgdn    previous / next image
  ctrl+up/down   select a committed pair
  ctrl+e         edit the selected pair (pops it back into the fields)
  ctrl+d         delete the selected pair
  ctrl+r         show the selected pair's regions on the canvas
  f5 / f6        fit to window / reset zoom (wheel zooms around the cursor)
  ctrl+s         save annotations.json
  ctrl+c         quit`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl := internal.NewController()
		// A provisional canvas size; the real one arrives with the first
		// window-size message.
		ctrl.SetCanvasSize(80, 24)
		if err := ctrl.OpenFolder(args[0]); err != nil {
			return err
		}

		var history *internal.History
		if path, err := internal.DefaultHistoryPath(); err == nil {
			if h, err := internal.OpenHistory(path); err == nil {
				history = h
				defer func() { _ = history.Close() }()
			} else {
				internal.LogWarn("history unavailable: %v", err)
			}
		}
		touchHistory(history, ctrl)

		m := newAnnotateModel(ctrl)
		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("annotator failed: %w", err)
		}
		touchHistory(history, ctrl)
		return nil
	},
}

func touchHistory(history *internal.History, ctrl *internal.Controller) {
	if history == nil {
		return
	}
	if err := history.Touch(ctrl.Folder(), ctrl.ImageCount(), ctrl.AnnotatedCount()); err != nil {
		internal.LogWarn("failed to record history: %v", err)
	}
}

func init() {
	rootCmd.AddCommand(annotateCmd)
}
