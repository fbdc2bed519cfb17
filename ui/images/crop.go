package images

import (
	"errors"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// ErrEmptyCrop is returned when a crop rectangle has no pixels inside the source.
var ErrEmptyCrop = errors.New("crop rectangle is empty")

// CropBounds converts a float rectangle in image space to integer pixel bounds.
// Edges are rounded, the result is clamped to bounds and is at least 1x1
// whenever the rounded rectangle intersects bounds.
func CropBounds(bounds image.Rectangle, x, y, w, h float64) (image.Rectangle, error) {
	if w <= 0 || h <= 0 || math.IsNaN(x+y+w+h) || math.IsInf(x+y+w+h, 0) {
		return image.Rectangle{}, ErrEmptyCrop
	}
	x0 := int(math.Round(x))
	y0 := int(math.Round(y))
	x1 := int(math.Round(x + w))
	y1 := int(math.Round(y + h))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	r := image.Rect(x0, y0, x1, y1).Intersect(bounds)
	if r.Empty() {
		return image.Rectangle{}, ErrEmptyCrop
	}
	return r, nil
}

// Crop copies the pixels of src under the float rectangle into a new image
// whose bounds start at 0,0. The returned rectangle is the clamped region in
// src coordinates.
func Crop(src image.Image, x, y, w, h float64) (*image.NRGBA, image.Rectangle, error) {
	if src == nil {
		return nil, image.Rectangle{}, errors.New("nil source")
	}
	r, err := CropBounds(src.Bounds(), x, y, w, h)
	if err != nil {
		return nil, image.Rectangle{}, err
	}
	return imaging.Crop(src, r), r, nil
}
