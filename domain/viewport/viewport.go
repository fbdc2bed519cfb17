package viewport

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/disintegration/imaging"

	"github.com/soocke/region-cropper-go/domain/geometry"
	"github.com/soocke/region-cropper-go/ui/images"
)

// ErrNoSource is returned by crop operations before an image is loaded.
var ErrNoSource = errors.New("viewport: no source image")

// ErrEmptyCrop mirrors images.ErrEmptyCrop so callers need only this package.
var ErrEmptyCrop = images.ErrEmptyCrop

// Ladder lists the allowed display scales, smallest first.
var Ladder = []float64{0.125, 0.25, 0.5, 1, 2, 4}

const (
	MinScale = 0.125
	MaxScale = 4.0
	// zoomStep is the factor between adjacent rungs.
	zoomStep = 0.5
)

// Viewport holds the source image and the current display scale.
type Viewport struct {
	scale  float64
	source *image.NRGBA
	logger *slog.Logger
}

// New creates a viewport at the ladder rung nearest to initialScale.
func New(initialScale float64, logger *slog.Logger) *Viewport {
	v := &Viewport{logger: logger}
	v.scale = Snap(initialScale)
	return v
}

// Snap returns the ladder rung nearest to s in log scale. Non-positive and
// NaN values map to MinScale.
func Snap(s float64) float64 {
	if math.IsNaN(s) || s <= 0 {
		return MinScale
	}
	best := Ladder[0]
	bestDist := math.Inf(1)
	ls := math.Log2(s)
	for _, r := range Ladder {
		if d := math.Abs(ls - math.Log2(r)); d < bestDist {
			best, bestDist = r, d
		}
	}
	return best
}

// Scale returns the current scale factor.
func (v *Viewport) Scale() float64 { return v.scale }

// SetScale snaps s onto the ladder and returns the applied value.
func (v *Viewport) SetScale(s float64) float64 {
	v.scale = Snap(s)
	return v.scale
}

// Zoom moves one rung in direction (>0 in, <0 out). Zero is a no-op.
func (v *Viewport) Zoom(direction int) float64 {
	switch {
	case direction > 0:
		v.scale = math.Min(v.scale/zoomStep, MaxScale)
	case direction < 0:
		v.scale = math.Max(v.scale*zoomStep, MinScale)
	}
	return v.scale
}

// CanZoomIn reports whether a further zoom-in would change the scale.
func (v *Viewport) CanZoomIn() bool { return v.scale < MaxScale }

// CanZoomOut reports whether a further zoom-out would change the scale.
func (v *Viewport) CanZoomOut() bool { return v.scale > MinScale }

// Load replaces the source image. The viewport keeps its own copy.
func (v *Viewport) Load(img image.Image) {
	if img == nil {
		v.source = nil
		return
	}
	v.source = imaging.Clone(img)
	if v.logger != nil {
		b := v.source.Bounds()
		v.logger.Info("source loaded", "width", b.Dx(), "height", b.Dy(), "scale", v.scale)
	}
}

// Source returns the loaded image or nil. Callers must not modify it.
func (v *Viewport) Source() image.Image {
	if v.source == nil {
		return nil
	}
	return v.source
}

// HasSource reports whether an image is loaded.
func (v *Viewport) HasSource() bool { return v.source != nil }

// SourceSize returns the image dimensions in image space.
func (v *Viewport) SourceSize() (int, int) {
	if v.source == nil {
		return 0, 0
	}
	b := v.source.Bounds()
	return b.Dx(), b.Dy()
}

// ScreenSize returns the drawing surface size at the current scale.
func (v *Viewport) ScreenSize() (int, int) {
	w, h := v.SourceSize()
	return int(math.Ceil(geometry.ToScreen(float64(w), v.scale))), int(math.Ceil(geometry.ToScreen(float64(h), v.scale)))
}

// ToImage converts a screen point to image space.
func (v *Viewport) ToImage(p geometry.Point) geometry.Point {
	return geometry.Point{X: geometry.ToImage(p.X, v.scale), Y: geometry.ToImage(p.Y, v.scale)}
}

// CropImage returns the source pixels under rect (image space).
func (v *Viewport) CropImage(rect geometry.Rectangle) (*image.NRGBA, error) {
	if v.source == nil {
		return nil, ErrNoSource
	}
	out, _, err := images.Crop(v.source, rect.X, rect.Y, rect.Width, rect.Height)
	if err != nil {
		return nil, fmt.Errorf("crop %+v: %w", rect, err)
	}
	return out, nil
}

// ExtractCrop returns the pixels under rect (image space) encoded as PNG.
// Rectangles partly outside the source are clamped to it.
func (v *Viewport) ExtractCrop(rect geometry.Rectangle) (images.Encoded, error) {
	img, err := v.CropImage(rect)
	if err != nil {
		return images.Encoded{}, err
	}
	return images.Encode(img)
}
