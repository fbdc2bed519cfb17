package geometry

import "math"

// Handle classifies which part of a rectangle's boundary a pointer is over.
type Handle int

const (
	HandleDefault Handle = iota
	HandleCornerNWSE
	HandleCornerNESW
	HandleEdgeNS
	HandleEdgeEW
)

func (h Handle) String() string {
	switch h {
	case HandleCornerNWSE:
		return "corner-nwse"
	case HandleCornerNESW:
		return "corner-nesw"
	case HandleEdgeNS:
		return "edge-ns"
	case HandleEdgeEW:
		return "edge-ew"
	default:
		return "default"
	}
}

// Cursor returns the pointer-shape hint for the handle.
func (h Handle) Cursor() string {
	switch h {
	case HandleCornerNWSE:
		return "nwse-resize"
	case HandleCornerNESW:
		return "nesw-resize"
	case HandleEdgeNS:
		return "ns-resize"
	case HandleEdgeEW:
		return "ew-resize"
	default:
		return "default"
	}
}

// Resizable reports whether dragging the handle resizes the rectangle.
func (h Handle) Resizable() bool { return h != HandleDefault }

// ClassifyHandle decides which handle of r (screen space) the point (x, y)
// is over. Corners win over edges. An edge only counts when the point is at
// least threshold away from both adjacent corners.
func ClassifyHandle(r Rectangle, x, y, threshold float64) Handle {
	left, right := r.X, r.Right()
	top, bottom := r.Y, r.Bottom()
	nearL, nearR := near(x, left, threshold), near(x, right, threshold)
	nearT, nearB := near(y, top, threshold), near(y, bottom, threshold)

	switch {
	case nearL && nearT, nearR && nearB:
		return HandleCornerNWSE
	case nearR && nearT, nearL && nearB:
		return HandleCornerNESW
	}
	if (nearT || nearB) && x > left+threshold && x < right-threshold {
		return HandleEdgeNS
	}
	if (nearL || nearR) && y > top+threshold && y < bottom-threshold {
		return HandleEdgeEW
	}
	return HandleDefault
}

func near(v, edge, threshold float64) bool {
	return v > edge-threshold && v < edge+threshold
}

// Grip is the fixed side of a rectangle while one of its handles is dragged.
type Grip struct {
	AnchorX, AnchorY float64
	AllowX, AllowY   bool
}

// GripFor picks the anchor opposite the part of r nearest to the grab point
// (x, y) for handle h. It returns false for HandleDefault.
func GripFor(r Rectangle, h Handle, x, y float64) (Grip, bool) {
	left, right := r.X, r.Right()
	top, bottom := r.Y, r.Bottom()
	oppX := func() float64 {
		if math.Abs(x-left) <= math.Abs(x-right) {
			return right
		}
		return left
	}
	oppY := func() float64 {
		if math.Abs(y-top) <= math.Abs(y-bottom) {
			return bottom
		}
		return top
	}
	switch h {
	case HandleCornerNWSE, HandleCornerNESW:
		return Grip{AnchorX: oppX(), AnchorY: oppY(), AllowX: true, AllowY: true}, true
	case HandleEdgeNS:
		return Grip{AnchorX: left, AnchorY: oppY(), AllowY: true}, true
	case HandleEdgeEW:
		return Grip{AnchorX: oppX(), AnchorY: top, AllowX: true}, true
	default:
		return Grip{}, false
	}
}

// Apply resizes r so the moving side follows (x, y).
func (g Grip) Apply(r Rectangle, x, y float64) Rectangle {
	return ResizeRectangle(r, g.AnchorX, g.AnchorY, x, y, g.AllowX, g.AllowY)
}
