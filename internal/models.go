package internal

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ShapeKind identifies the geometry of a drawn region.
type ShapeKind string

const (
	ShapeNone  ShapeKind = "NONE"
	ShapeRect  ShapeKind = "RECT"
	ShapePoly  ShapeKind = "POLY"
	ShapePoint ShapeKind = "POINT"
)

// Turn roles as stored in the annotation file.
const (
	RoleHuman = "human"
	RoleGPT   = "gpt"
)

// Region is one drawn shape in image-pixel space. Coords is a flattened
// x,y sequence whose arity depends on Kind:
//
//	RECT:  [x1 y1 x2 y2] (corners in drag order, not normalized)
//	POLY:  [x1 y1 x2 y2 x3 y3 ...] (>=3 vertices, implicitly closed)
//	POINT: [x y]
//
// Coordinates are floats in memory and rounded to integers when persisted,
// so a load/save round trip is lossless after the first save.
type Region struct {
	Kind   ShapeKind
	Coords []float64
}

// NewRect builds a rectangle region from two corners in any order.
func NewRect(x1, y1, x2, y2 float64) Region {
	return Region{Kind: ShapeRect, Coords: []float64{x1, y1, x2, y2}}
}

// NewPolygon builds a polygon region from a flattened vertex sequence.
// Fewer than 3 vertices is rejected.
func NewPolygon(coords []float64) (Region, error) {
	if len(coords) < 6 || len(coords)%2 != 0 {
		return Region{}, fmt.Errorf("polygon needs at least 3 x,y vertices, got %d values", len(coords))
	}
	return Region{Kind: ShapePoly, Coords: append([]float64(nil), coords...)}, nil
}

// NewPoint builds a point region.
func NewPoint(x, y float64) Region {
	return Region{Kind: ShapePoint, Coords: []float64{x, y}}
}

// Validate checks that the coordinate arity matches the shape kind.
func (r Region) Validate() error {
	switch r.Kind {
	case ShapeRect:
		if len(r.Coords) != 4 {
			return fmt.Errorf("rect region needs 4 coords, got %d", len(r.Coords))
		}
	case ShapePoly:
		if len(r.Coords) < 6 || len(r.Coords)%2 != 0 {
			return fmt.Errorf("poly region needs >=6 even coords, got %d", len(r.Coords))
		}
	case ShapePoint:
		if len(r.Coords) != 2 {
			return fmt.Errorf("point region needs 2 coords, got %d", len(r.Coords))
		}
	default:
		return fmt.Errorf("unknown shape kind %q", r.Kind)
	}
	return nil
}

// String renders the region compactly for list labels.
func (r Region) String() string {
	parts := make([]string, len(r.Coords))
	for i, c := range r.Coords {
		parts[i] = strconv.Itoa(int(math.Round(c)))
	}
	return fmt.Sprintf("%s:[%s]", r.Kind, strings.Join(parts, " "))
}

type regionJSON struct {
	Mode   string `json:"mode"`
	Coords []int  `json:"coords"`
}

// MarshalJSON writes the persisted form with integer coordinates.
func (r Region) MarshalJSON() ([]byte, error) {
	out := regionJSON{Mode: string(r.Kind), Coords: make([]int, len(r.Coords))}
	for i, c := range r.Coords {
		out.Coords[i] = int(math.Round(c))
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the persisted form back into float coordinates.
func (r *Region) UnmarshalJSON(data []byte) error {
	var in struct {
		Mode   string    `json:"mode"`
		Coords []float64 `json:"coords"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	r.Kind = ShapeKind(in.Mode)
	r.Coords = in.Coords
	return nil
}

// Turn is one utterance in the QA exchange for an image.
type Turn struct {
	Role    string   `json:"from"`
	Text    string   `json:"value"`
	Regions []Region `json:"visual_refs,omitempty"`
}

// TurnList is the ordered conversation for one image. Turns are appended in
// human/gpt pairs; pair-oriented accessors keep callers away from the
// underlying index arithmetic.
type TurnList []Turn

// Clone returns an independent copy of the list.
func (tl TurnList) Clone() TurnList {
	if tl == nil {
		return nil
	}
	out := make(TurnList, len(tl))
	copy(out, tl)
	return out
}

// PairCount returns the number of complete question/answer pairs.
func (tl TurnList) PairCount() int {
	return len(tl) / 2
}

// PairAt returns the question and answer turns of pair i.
func (tl TurnList) PairAt(i int) (Turn, Turn, error) {
	if i < 0 || i >= tl.PairCount() {
		return Turn{}, Turn{}, &IndexOutOfRangeError{Index: i, Count: tl.PairCount()}
	}
	return tl[2*i], tl[2*i+1], nil
}

// DeletePair removes pair i and returns the shortened list.
func (tl TurnList) DeletePair(i int) (TurnList, error) {
	if i < 0 || i >= tl.PairCount() {
		return tl, &IndexOutOfRangeError{Index: i, Count: tl.PairCount()}
	}
	out := make(TurnList, 0, len(tl)-2)
	out = append(out, tl[:2*i]...)
	out = append(out, tl[2*i+2:]...)
	return out, nil
}

// PairSummary is the human-readable rendering of one pair for list widgets.
type PairSummary struct {
	Question string
	Answer   string
}

// Summaries renders every pair with role-prefixed text plus a compact
// rendering of any attached regions.
func (tl TurnList) Summaries() []PairSummary {
	out := make([]PairSummary, 0, tl.PairCount())
	for i := 0; i < tl.PairCount(); i++ {
		q, a, _ := tl.PairAt(i)
		out = append(out, PairSummary{
			Question: summarizeTurn(q, fmt.Sprintf("Q%d", i+1)),
			Answer:   summarizeTurn(a, fmt.Sprintf("A%d", i+1)),
		})
	}
	return out
}

func summarizeTurn(t Turn, prefix string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(": ")
	b.WriteString(t.Text)
	for _, r := range t.Regions {
		b.WriteString(" <region>")
		b.WriteString(r.String())
	}
	return b.String()
}

// ImageAnnotation is the persisted record for one image file.
type ImageAnnotation struct {
	Image         string   `json:"image"`
	Conversations TurnList `json:"conversations"`
}
