package internal

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestRegion_Validate(t *testing.T) {
	tests := []struct {
		name    string
		region  Region
		wantErr bool
	}{
		{"valid rect", NewRect(1, 2, 3, 4), false},
		{"rect wrong arity", Region{Kind: ShapeRect, Coords: []float64{1, 2}}, true},
		{"valid point", NewPoint(5, 6), false},
		{"point wrong arity", Region{Kind: ShapePoint, Coords: []float64{1, 2, 3}}, true},
		{"valid poly", Region{Kind: ShapePoly, Coords: []float64{0, 0, 10, 0, 5, 10}}, false},
		{"poly too short", Region{Kind: ShapePoly, Coords: []float64{0, 0, 10, 0}}, true},
		{"poly odd length", Region{Kind: ShapePoly, Coords: []float64{0, 0, 10, 0, 5, 10, 3}}, true},
		{"unknown kind", Region{Kind: ShapeNone, Coords: nil}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.region.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewPolygon_RejectsShort(t *testing.T) {
	if _, err := NewPolygon([]float64{0, 0, 1, 1}); err == nil {
		t.Error("NewPolygon() accepted 2 vertices")
	}
	if _, err := NewPolygon([]float64{0, 0, 1, 1, 2, 2}); err != nil {
		t.Errorf("NewPolygon() rejected 3 vertices: %v", err)
	}
}

func TestRegion_MarshalRoundsCoords(t *testing.T) {
	r := NewRect(10.4, 10.6, 50.5, 79.49)

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"mode":"RECT","coords":[10,11,51,79]}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestRegion_UnmarshalRoundTrip(t *testing.T) {
	in := `{"mode":"POLY","coords":[0,0,10,0,5,10]}`
	var r Region
	if err := json.Unmarshal([]byte(in), &r); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if r.Kind != ShapePoly {
		t.Errorf("Unmarshal() kind = %v, want %v", r.Kind, ShapePoly)
	}
	want := []float64{0, 0, 10, 0, 5, 10}
	if !reflect.DeepEqual(r.Coords, want) {
		t.Errorf("Unmarshal() coords = %v, want %v", r.Coords, want)
	}

	// Re-marshalling already-integer coordinates is lossless.
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != in {
		t.Errorf("round trip = %s, want %s", data, in)
	}
}

func TestTurn_RegionsOmittedWhenEmpty(t *testing.T) {
	data, err := json.Marshal(Turn{Role: RoleHuman, Text: "What is this?"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(data), "visual_refs") {
		t.Errorf("Marshal() included empty visual_refs: %s", data)
	}

	data, err = json.Marshal(Turn{Role: RoleGPT, Text: "A cat.", Regions: []Region{NewPoint(3, 4)}})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), "visual_refs") {
		t.Errorf("Marshal() dropped visual_refs: %s", data)
	}
}

func TestTurnList_PairAccessors(t *testing.T) {
	tl := TurnList{
		{Role: RoleHuman, Text: "Q1"},
		{Role: RoleGPT, Text: "A1"},
		{Role: RoleHuman, Text: "Q2"},
		{Role: RoleGPT, Text: "A2"},
	}

	if got := tl.PairCount(); got != 2 {
		t.Errorf("PairCount() = %d, want 2", got)
	}

	q, a, err := tl.PairAt(1)
	if err != nil {
		t.Fatalf("PairAt(1) error = %v", err)
	}
	if q.Text != "Q2" || a.Text != "A2" {
		t.Errorf("PairAt(1) = (%q, %q), want (Q2, A2)", q.Text, a.Text)
	}

	if _, _, err := tl.PairAt(2); err == nil {
		t.Error("PairAt(2) did not fail")
	}
	var oor *IndexOutOfRangeError
	if _, _, err := tl.PairAt(-1); !errors.As(err, &oor) {
		t.Errorf("PairAt(-1) error = %v, want IndexOutOfRangeError", err)
	}
}

func TestTurnList_DeletePair(t *testing.T) {
	tl := TurnList{
		{Role: RoleHuman, Text: "Q1"},
		{Role: RoleGPT, Text: "A1"},
		{Role: RoleHuman, Text: "Q2"},
		{Role: RoleGPT, Text: "A2"},
	}

	tl, err := tl.DeletePair(0)
	if err != nil {
		t.Fatalf("DeletePair(0) error = %v", err)
	}
	if len(tl) != 2 || tl[0].Text != "Q2" || tl[1].Text != "A2" {
		t.Errorf("DeletePair(0) left %v", tl)
	}
	if tl[0].Role != RoleHuman || tl[1].Role != RoleGPT {
		t.Errorf("DeletePair(0) roles = (%s, %s)", tl[0].Role, tl[1].Role)
	}

	if _, err := tl.DeletePair(5); err == nil {
		t.Error("DeletePair(5) did not fail")
	}
}

func TestTurnList_Summaries(t *testing.T) {
	tl := TurnList{
		{Role: RoleHuman, Text: "Where is the cat?", Regions: []Region{NewRect(1, 2, 3, 4)}},
		{Role: RoleGPT, Text: "On the mat."},
	}

	s := tl.Summaries()
	if len(s) != 1 {
		t.Fatalf("Summaries() count = %d, want 1", len(s))
	}
	if want := "Q1: Where is the cat? <region>RECT:[1 2 3 4]"; s[0].Question != want {
		t.Errorf("Question summary = %q, want %q", s[0].Question, want)
	}
	if want := "A1: On the mat."; s[0].Answer != want {
		t.Errorf("Answer summary = %q, want %q", s[0].Answer, want)
	}
}

func TestTurnList_Clone(t *testing.T) {
	tl := TurnList{{Role: RoleHuman, Text: "Q1"}, {Role: RoleGPT, Text: "A1"}}
	cp := tl.Clone()
	cp[0].Text = "changed"
	if tl[0].Text != "Q1" {
		t.Error("Clone() shares backing storage")
	}
	if TurnList(nil).Clone() != nil {
		t.Error("Clone() of nil is not nil")
	}
}
