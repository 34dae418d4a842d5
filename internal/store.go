package internal

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Names inside the working folder.
const (
	AnnotationsFileName = "annotations.json"
	OutputsDirName      = "outputs"
)

// AnnotationStore reads and writes the annotation file of one working
// folder. The persisted format is a JSON array of ImageAnnotation records;
// see the Region marshalling for the coordinate rounding rule.
type AnnotationStore struct {
	dir string
}

// NewAnnotationStore returns a store bound to a working folder.
func NewAnnotationStore(dir string) *AnnotationStore {
	return &AnnotationStore{dir: dir}
}

// Path returns the annotation file path.
func (s *AnnotationStore) Path() string {
	return filepath.Join(s.dir, AnnotationsFileName)
}

// EnsureOutputsDir creates the folder's outputs/ directory if missing.
func (s *AnnotationStore) EnsureOutputsDir() error {
	dir := filepath.Join(s.dir, OutputsDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &PersistenceError{Op: "write", Path: dir, Err: err}
	}
	return nil
}

// Load reads the annotation file into a filename-keyed map. A missing file
// is not an error; it yields an empty map.
func (s *AnnotationStore) Load() (map[string]TurnList, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]TurnList{}, nil
		}
		return nil, &PersistenceError{Op: "read", Path: s.Path(), Err: err}
	}
	var entries []ImageAnnotation
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &PersistenceError{Op: "parse", Path: s.Path(), Err: err}
	}
	out := make(map[string]TurnList, len(entries))
	for _, e := range entries {
		out[e.Image] = e.Conversations
	}
	return out, nil
}

// Save writes the given entries as the complete annotation file,
// overwriting any previous content.
func (s *AnnotationStore) Save(entries []ImageAnnotation) error {
	if entries == nil {
		entries = []ImageAnnotation{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return &PersistenceError{Op: "write", Path: s.Path(), Err: err}
	}
	if err := os.WriteFile(s.Path(), data, 0644); err != nil {
		return &PersistenceError{Op: "write", Path: s.Path(), Err: err}
	}
	return nil
}
