package export

import (
	"encoding/json"
	"io"

	"github.com/vqatools/vqa-annotator/internal"
)

// JSONLExporter exports annotations as JSON Lines, one image record per
// line, the layout most training pipelines ingest directly.
type JSONLExporter struct{}

// Export writes one compact JSON object per image annotation.
func (e *JSONLExporter) Export(annotations []internal.ImageAnnotation, w io.Writer) error {
	enc := json.NewEncoder(w)
	for _, ann := range annotations {
		if err := enc.Encode(ann); err != nil {
			return err
		}
	}
	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
