package internal

// Zoom limits and the per-wheel-step factor.
const (
	MinZoom  = 0.1
	MaxZoom  = 5.0
	zoomStep = 1.1
)

// Viewport maps between screen space (the display surface, subject to pan
// and zoom) and image space (original image pixels, the only coordinates
// ever persisted). It is ephemeral state; nothing in it is saved.
type Viewport struct {
	Zoom        float64
	OffsetX     float64
	OffsetY     float64
	FitToWindow bool
}

// NewViewport returns a 1:1 viewport with no pan.
func NewViewport() Viewport {
	return Viewport{Zoom: 1.0}
}

func clampZoom(z float64) float64 {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}

// SetZoom sets the zoom factor, clamped to [MinZoom, MaxZoom].
func (v *Viewport) SetZoom(z float64) {
	v.Zoom = clampZoom(z)
}

// ToImage converts a screen-space point to image space.
func (v Viewport) ToImage(x, y float64) (float64, float64) {
	return (x - v.OffsetX) / v.Zoom, (y - v.OffsetY) / v.Zoom
}

// ToScreen converts an image-space point to screen space.
func (v Viewport) ToScreen(x, y float64) (float64, float64) {
	return x*v.Zoom + v.OffsetX, y*v.Zoom + v.OffsetY
}

// ToImageCoords converts a flattened x,y sequence to image space.
func (v Viewport) ToImageCoords(coords []float64) []float64 {
	out := make([]float64, len(coords))
	for i := 0; i+1 < len(coords); i += 2 {
		out[i], out[i+1] = v.ToImage(coords[i], coords[i+1])
	}
	return out
}

// ToScreenCoords converts a flattened x,y sequence to screen space.
func (v Viewport) ToScreenCoords(coords []float64) []float64 {
	out := make([]float64, len(coords))
	for i := 0; i+1 < len(coords); i += 2 {
		out[i], out[i+1] = v.ToScreen(coords[i], coords[i+1])
	}
	return out
}

// ScaledSize returns the image dimensions under the current zoom.
func (v Viewport) ScaledSize(imgW, imgH int) (int, int) {
	return int(float64(imgW) * v.Zoom), int(float64(imgH) * v.Zoom)
}

// Fit recomputes the viewport so the whole image fits the canvas: zoom is
// the smaller of the width and height ratios (never below MinZoom) and the
// offsets center the scaled image.
func (v *Viewport) Fit(canvasW, canvasH, imgW, imgH int) {
	if imgW <= 0 || imgH <= 0 {
		return
	}
	zoom := min(float64(canvasW)/float64(imgW), float64(canvasH)/float64(imgH))
	if zoom < MinZoom {
		zoom = MinZoom
	}
	v.Zoom = zoom
	w, h := v.ScaledSize(imgW, imgH)
	v.OffsetX = float64((canvasW - w) / 2)
	v.OffsetY = float64((canvasH - h) / 2)
	v.FitToWindow = true
}

// Reset restores 1:1 zoom around the canvas center.
func (v *Viewport) Reset(canvasW, canvasH, imgW, imgH int) {
	v.zoomAt(float64(canvasW)/2, float64(canvasH)/2, 1.0, imgW, imgH)
}

// ZoomIn zooms one wheel step in around the given screen point.
func (v *Viewport) ZoomIn(x, y float64, imgW, imgH int) {
	v.zoomAt(x, y, clampZoom(v.Zoom*zoomStep), imgW, imgH)
}

// ZoomOut zooms one wheel step out around the given screen point.
func (v *Viewport) ZoomOut(x, y float64, imgW, imgH int) {
	v.zoomAt(x, y, clampZoom(v.Zoom/zoomStep), imgW, imgH)
}

// zoomAt changes the zoom while keeping the image point under (x, y) fixed
// on screen: the relative position inside the scaled image is captured
// before the change and the offsets are recomputed from it after.
func (v *Viewport) zoomAt(x, y, newZoom float64, imgW, imgH int) {
	oldW, oldH := v.ScaledSize(imgW, imgH)
	if oldW <= 0 || oldH <= 0 {
		v.Zoom = newZoom
		return
	}
	posX := (x - v.OffsetX) / float64(oldW)
	posY := (y - v.OffsetY) / float64(oldH)
	v.Zoom = newZoom
	newW, newH := v.ScaledSize(imgW, imgH)
	v.OffsetX = x - posX*float64(newW)
	v.OffsetY = y - posY*float64(newH)
	v.FitToWindow = false
}
