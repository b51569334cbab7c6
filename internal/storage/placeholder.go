package storage

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// placeholderColor is the fill used for generated default images.
var placeholderColor = color.RGBA{R: 100, G: 150, B: 200, A: 255}

// EnsurePlaceholder writes a width x height solid PNG at path unless a file
// already exists there. It reports whether a file was written.
func EnsurePlaceholder(path string, width, height int) (bool, error) {
	ok, err := Exists(path)
	if err != nil {
		return false, err
	}
	if ok {
		return false, nil
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, placeholderColor)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return false, fmt.Errorf("failed to create placeholder image: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return false, fmt.Errorf("failed to encode placeholder image: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return false, fmt.Errorf("failed to write placeholder image: %w", err)
	}
	return true, nil
}
