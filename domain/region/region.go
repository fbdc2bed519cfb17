package region

import (
	"github.com/google/uuid"

	"github.com/soocke/region-cropper-go/domain/geometry"
	"github.com/soocke/region-cropper-go/ui/images"
)

// ID uniquely identifies a region for its whole lifetime.
type ID string

// NewID returns a fresh random identifier.
func NewID() ID { return ID(uuid.NewString()) }

// Region is a named rectangle over the source image (image space) together
// with its cached crop preview.
type Region struct {
	ID        ID
	Rectangle geometry.Rectangle
	Name      string
	// Rotation is the number of clockwise quarter turns applied on export.
	Rotation int
	// Preview is nil until a crop has been generated.
	Preview *images.Encoded
}

// New builds an unnamed region over rect.
func New(rect geometry.Rectangle) *Region {
	return &Region{ID: NewID(), Rectangle: rect}
}

// SetRectangle replaces the geometry and drops the now stale preview.
func (r *Region) SetRectangle(rect geometry.Rectangle) {
	r.Rectangle = rect
	r.Preview = nil
}

// RotateClockwise adds one quarter turn.
func (r *Region) RotateClockwise() {
	r.Rotation = images.NormalizeQuarterTurns(r.Rotation + 1)
}

// Degrees returns the rotation in degrees (0, 90, 180 or 270).
func (r *Region) Degrees() int { return r.Rotation * 90 }

// HasPreview reports whether a crop preview is cached.
func (r *Region) HasPreview() bool { return r != nil && r.Preview != nil }
