package images

import (
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// ScaleToFit shrinks src so that it fits within maxW x maxH preserving aspect
// ratio. If the source already fits, the original is returned.
func ScaleToFit(src image.Image, maxW, maxH int) image.Image {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return src
	}
	if maxW < 1 {
		maxW = 1
	}
	if maxH < 1 {
		maxH = 1
	}
	return imaging.Fit(src, maxW, maxH, imaging.Box)
}

// ScaleBy resamples src by factor s into a new RGBA image. Upscaling uses
// nearest-neighbour so individual pixels stay crisp; downscaling uses
// approximate bilinear filtering.
func ScaleBy(src image.Image, s float64) *image.RGBA {
	if src == nil || s <= 0 {
		return nil
	}
	b := src.Bounds()
	w := int(float64(b.Dx())*s + 0.5)
	h := int(float64(b.Dy())*s + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	var interp draw.Interpolator = draw.ApproxBiLinear
	if s >= 1 {
		interp = draw.NearestNeighbor
	}
	interp.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
