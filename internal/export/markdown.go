package export

import (
	"fmt"
	"io"

	"github.com/vqatools/vqa-annotator/internal"
)

// MarkdownExporter exports annotations as a human-readable report.
type MarkdownExporter struct{}

// Export writes one section per image with its QA pairs and regions.
func (e *MarkdownExporter) Export(annotations []internal.ImageAnnotation, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# Annotations\n\n")
	_, _ = fmt.Fprintf(w, "**Images:** %d\n\n", len(annotations))

	for _, ann := range annotations {
		_, _ = fmt.Fprintf(w, "## %s\n\n", ann.Image)
		_, _ = fmt.Fprintf(w, "**Pairs:** %d\n\n", ann.Conversations.PairCount())

		for i, s := range ann.Conversations.Summaries() {
			_, _ = fmt.Fprintf(w, "%s  \n%s\n\n", s.Question, s.Answer)
			if i < ann.Conversations.PairCount()-1 {
				_, _ = fmt.Fprintf(w, "---\n\n")
			}
		}
	}
	return nil
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
