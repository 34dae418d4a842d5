package internal

import (
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".gif":  true,
	".webp": true,
}

// IsSupportedImage reports whether the filename has a supported image
// extension (case-insensitive).
func IsSupportedImage(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// ListImages returns the supported image filenames directly inside dir, in
// directory listing order. Subdirectories are not descended into.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &PersistenceError{Op: "read", Path: dir, Err: err}
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if IsSupportedImage(entry.Name()) {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}

// DecodeImage loads and decodes one image file.
func DecodeImage(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		// imaging registers jpeg/png/gif/bmp/tiff; webp comes from the
		// x/image decoder registered above.
		f, ferr := os.Open(path)
		if ferr != nil {
			return nil, &DecodeError{Path: path, Err: ferr}
		}
		defer func() { _ = f.Close() }()
		if fallback, _, derr := image.Decode(f); derr == nil {
			return fallback, nil
		}
		return nil, &DecodeError{Path: path, Err: err}
	}
	return img, nil
}

// ImageSize returns the pixel dimensions of a decoded image.
func ImageSize(img image.Image) (int, int) {
	b := img.Bounds()
	return b.Dx(), b.Dy()
}
