package testutil

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// WriteImageFixture writes a solid-color PNG of the given size into dir and
// returns its path. Any filename extension is accepted; the content is PNG.
func WriteImageFixture(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 120, G: 140, B: 160, A: 255})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create image fixture %s: %v", name, err)
	}
	defer func() { _ = f.Close() }()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode image fixture %s: %v", name, err)
	}
	return path
}

// WriteCorruptImageFixture writes a file with an image extension but
// undecodable content.
func WriteCorruptImageFixture(t *testing.T, dir, name string) string {
	t.Helper()
	return WriteFile(t, dir, name, []byte("not an image"))
}
