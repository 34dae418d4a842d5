package export

import (
	"encoding/json"
	"io"

	"github.com/vqatools/vqa-annotator/internal"
)

// JSONExporter exports annotations in pretty-printed JSON, the same layout
// as the working folder's annotation file.
type JSONExporter struct{}

// Export writes the annotation set as a JSON array.
func (e *JSONExporter) Export(annotations []internal.ImageAnnotation, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(annotations)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
