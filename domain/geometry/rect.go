package geometry

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Epsilon is the tolerance used when comparing coordinates that went through
// a screen/image conversion.
const Epsilon = 1e-9

// Point is a position in either screen or image space. The space is implied
// by the caller.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rectangle is an axis-aligned box with its origin at the top-left corner.
// Width and Height are non-negative once the rectangle has been normalized.
type Rectangle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rectangle) Right() float64  { return r.X + r.Width }
func (r Rectangle) Bottom() float64 { return r.Y + r.Height }

// Empty reports whether either side has zero length.
func (r Rectangle) Empty() bool {
	return scalar.EqualWithinAbs(r.Width, 0, Epsilon) || scalar.EqualWithinAbs(r.Height, 0, Epsilon)
}

// Equal compares two rectangles field by field within tol.
func (r Rectangle) Equal(o Rectangle, tol float64) bool {
	return scalar.EqualWithinAbs(r.X, o.X, tol) &&
		scalar.EqualWithinAbs(r.Y, o.Y, tol) &&
		scalar.EqualWithinAbs(r.Width, o.Width, tol) &&
		scalar.EqualWithinAbs(r.Height, o.Height, tol)
}

// ToScreen maps an image-space value to screen space at scale s.
func ToScreen(v, s float64) float64 { return v * s }

// ToImage maps a screen-space value to image space at scale s.
func ToImage(v, s float64) float64 { return v / s }

// RectToScreen converts every field of r with ToScreen.
func RectToScreen(r Rectangle, s float64) Rectangle {
	return Rectangle{X: ToScreen(r.X, s), Y: ToScreen(r.Y, s), Width: ToScreen(r.Width, s), Height: ToScreen(r.Height, s)}
}

// RectToImage converts every field of r with ToImage.
func RectToImage(r Rectangle, s float64) Rectangle {
	return Rectangle{X: ToImage(r.X, s), Y: ToImage(r.Y, s), Width: ToImage(r.Width, s), Height: ToImage(r.Height, s)}
}

// ContainsPoint reports strict interior containment; points on the border are outside.
func ContainsPoint(r Rectangle, x, y float64) bool {
	return x > r.X && x < r.X+r.Width && y > r.Y && y < r.Y+r.Height
}

// BuildRectangleFromDrag returns the normalized rectangle spanned by a drag
// from origin to current. Dragging up or left yields the same box as the
// opposite drag.
func BuildRectangleFromDrag(origin, current Point) Rectangle {
	x, w := span(origin.X, current.X)
	y, h := span(origin.Y, current.Y)
	return Rectangle{X: x, Y: y, Width: w, Height: h}
}

// ResizeRectangle rebuilds r from a fixed anchor and the current pointer
// position. Only the axes enabled by allowX/allowY move; the others keep
// r's extent. Crossing the anchor flips the rectangle instead of producing
// a negative size.
func ResizeRectangle(r Rectangle, anchorX, anchorY, currentX, currentY float64, allowX, allowY bool) Rectangle {
	out := r
	if allowX {
		out.X, out.Width = span(anchorX, currentX)
	}
	if allowY {
		out.Y, out.Height = span(anchorY, currentY)
	}
	return out
}

// span returns the low end and the length of the interval between a and b.
func span(a, b float64) (float64, float64) {
	return math.Min(a, b), math.Abs(b - a)
}
