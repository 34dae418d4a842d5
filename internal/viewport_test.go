package internal

import (
	"math"
	"testing"
)

func TestViewport_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		view Viewport
	}{
		{"identity", Viewport{Zoom: 1.0}},
		{"zoomed in", Viewport{Zoom: 2.5, OffsetX: 40, OffsetY: -12}},
		{"zoomed out", Viewport{Zoom: 0.3, OffsetX: -100.5, OffsetY: 33.25}},
		{"min zoom", Viewport{Zoom: MinZoom, OffsetX: 7, OffsetY: 7}},
		{"max zoom", Viewport{Zoom: MaxZoom, OffsetX: 0.1, OffsetY: 9999}},
	}

	points := [][2]float64{{0, 0}, {10, 10}, {-5.5, 123.75}, {1920, 1080}, {0.001, -0.001}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, p := range points {
				sx, sy := tt.view.ToScreen(p[0], p[1])
				ix, iy := tt.view.ToImage(sx, sy)
				if math.Abs(ix-p[0]) > 1e-9 || math.Abs(iy-p[1]) > 1e-9 {
					t.Errorf("round trip of (%v,%v) = (%v,%v)", p[0], p[1], ix, iy)
				}
			}
		})
	}
}

func TestViewport_CoordsRoundTrip(t *testing.T) {
	v := Viewport{Zoom: 1.7, OffsetX: 12, OffsetY: -3}
	coords := []float64{0, 0, 10, 0, 5, 10, 123.5, 77.25}

	back := v.ToImageCoords(v.ToScreenCoords(coords))
	for i := range coords {
		if math.Abs(back[i]-coords[i]) > 1e-9 {
			t.Fatalf("coords[%d] round trip = %v, want %v", i, back[i], coords[i])
		}
	}
}

func TestViewport_SetZoomClamps(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.05, MinZoom},
		{0.1, 0.1},
		{1.0, 1.0},
		{5.0, 5.0},
		{17.0, MaxZoom},
	}
	for _, tt := range tests {
		v := NewViewport()
		v.SetZoom(tt.in)
		if v.Zoom != tt.want {
			t.Errorf("SetZoom(%v) = %v, want %v", tt.in, v.Zoom, tt.want)
		}
	}
}

func TestViewport_Fit(t *testing.T) {
	v := NewViewport()
	v.Fit(200, 100, 400, 100)

	// Width ratio 0.5, height ratio 1.0; the smaller wins.
	if v.Zoom != 0.5 {
		t.Errorf("Fit() zoom = %v, want 0.5", v.Zoom)
	}
	// Scaled image is 200x50; centered vertically.
	if v.OffsetX != 0 {
		t.Errorf("Fit() offsetX = %v, want 0", v.OffsetX)
	}
	if v.OffsetY != 25 {
		t.Errorf("Fit() offsetY = %v, want 25", v.OffsetY)
	}
	if !v.FitToWindow {
		t.Error("Fit() did not set FitToWindow")
	}
}

func TestViewport_FitClampsAtMinZoom(t *testing.T) {
	v := NewViewport()
	v.Fit(10, 10, 10000, 10000)
	if v.Zoom != MinZoom {
		t.Errorf("Fit() zoom = %v, want MinZoom", v.Zoom)
	}
}

func TestViewport_ZoomAroundKeepsPointFixed(t *testing.T) {
	v := NewViewport()
	v.Fit(100, 100, 200, 200)

	// The image point under the cursor must stay under it after zooming.
	cursorX, cursorY := 30.0, 60.0
	beforeX, beforeY := v.ToImage(cursorX, cursorY)
	v.ZoomIn(cursorX, cursorY, 200, 200)
	afterX, afterY := v.ToImage(cursorX, cursorY)

	// Scaled sizes are truncated to whole cells, so allow a small error.
	if math.Abs(afterX-beforeX) > 1.0 || math.Abs(afterY-beforeY) > 1.0 {
		t.Errorf("zoom moved cursor point from (%v,%v) to (%v,%v)", beforeX, beforeY, afterX, afterY)
	}
	if v.FitToWindow {
		t.Error("ZoomIn() left FitToWindow set")
	}
}

func TestViewport_ZoomStopsAtLimits(t *testing.T) {
	v := NewViewport()
	v.SetZoom(MaxZoom)
	v.ZoomIn(0, 0, 100, 100)
	if v.Zoom > MaxZoom {
		t.Errorf("ZoomIn() exceeded MaxZoom: %v", v.Zoom)
	}

	v.SetZoom(MinZoom)
	v.ZoomOut(0, 0, 100, 100)
	if v.Zoom < MinZoom {
		t.Errorf("ZoomOut() went below MinZoom: %v", v.Zoom)
	}
}

func TestViewport_Reset(t *testing.T) {
	v := NewViewport()
	v.Fit(100, 80, 300, 300)
	v.Reset(100, 80, 300, 300)
	if v.Zoom != 1.0 {
		t.Errorf("Reset() zoom = %v, want 1.0", v.Zoom)
	}
}
