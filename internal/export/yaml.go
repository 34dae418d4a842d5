package export

import (
	"io"
	"math"

	"github.com/vqatools/vqa-annotator/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports annotations in YAML format
type YAMLExporter struct{}

// Export writes the annotation set as a YAML document.
func (e *YAMLExporter) Export(annotations []internal.ImageAnnotation, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	docs := make([]yamlAnnotation, 0, len(annotations))
	for _, ann := range annotations {
		doc := yamlAnnotation{Image: ann.Image}
		for _, t := range ann.Conversations {
			yt := yamlTurn{From: t.Role, Value: t.Text}
			for _, r := range t.Regions {
				yt.VisualRefs = append(yt.VisualRefs, yamlRegion{
					Mode:   string(r.Kind),
					Coords: roundCoords(r.Coords),
				})
			}
			doc.Conversations = append(doc.Conversations, yt)
		}
		docs = append(docs, doc)
	}
	return enc.Encode(docs)
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}

type yamlAnnotation struct {
	Image         string     `yaml:"image"`
	Conversations []yamlTurn `yaml:"conversations"`
}

type yamlTurn struct {
	From       string       `yaml:"from"`
	Value      string       `yaml:"value"`
	VisualRefs []yamlRegion `yaml:"visual_refs,omitempty"`
}

type yamlRegion struct {
	Mode   string `yaml:"mode"`
	Coords []int  `yaml:"coords,flow"`
}

func roundCoords(coords []float64) []int {
	out := make([]int, len(coords))
	for i, c := range coords {
		out[i] = int(math.Round(c))
	}
	return out
}
