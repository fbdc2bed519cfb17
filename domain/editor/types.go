package editor

import (
	"image"

	"github.com/soocke/region-cropper-go/domain/geometry"
	"github.com/soocke/region-cropper-go/domain/region"
	"github.com/soocke/region-cropper-go/ui/images"
)

// Mode enumerates the interaction modes.
type Mode int

const (
	ModeSelect Mode = iota
	ModeCreateRegion
	ModeResize
)

func (m Mode) String() string {
	switch m {
	case ModeSelect:
		return "select"
	case ModeCreateRegion:
		return "create"
	case ModeResize:
		return "resize"
	default:
		return "unknown"
	}
}

// Signal is a command delivered from outside the pointer stream
// (toolbar buttons, keyboard shortcuts, debounced wheel).
type Signal interface{ signal() }

type (
	SignalEnterCreate    struct{}
	SignalEnterSelect    struct{}
	SignalDeleteSelected struct{}
	SignalSelectNext     struct{}
	SignalSelectPrevious struct{}
	SignalRotateSelected struct{}
	SignalClear          struct{}
	// SignalZoom steps the viewport one rung; Direction >0 zooms in.
	SignalZoom struct{ Direction int }
)

func (SignalEnterCreate) signal()    {}
func (SignalEnterSelect) signal()    {}
func (SignalDeleteSelected) signal() {}
func (SignalSelectNext) signal()     {}
func (SignalSelectPrevious) signal() {}
func (SignalRotateSelected) signal() {}
func (SignalClear) signal()          {}
func (SignalZoom) signal()           {}

// PointerKind tags a pointer event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	default:
		return "unknown"
	}
}

// PointerEvent is a primary-button pointer event in canvas (screen) space.
type PointerEvent struct {
	Kind PointerKind
	X, Y float64
}

// Viewport is the slice of the viewport the editor needs.
type Viewport interface {
	Scale() float64
	Zoom(direction int) float64
	CanZoomIn() bool
	CanZoomOut() bool
	ToImage(p geometry.Point) geometry.Point
	ExtractCrop(rect geometry.Rectangle) (images.Encoded, error)
	CropImage(rect geometry.Rectangle) (*image.NRGBA, error)
}

// Options tunes pointer handling.
type Options struct {
	// HandleThreshold is the screen-space distance within which an edge or
	// corner counts as grabbed.
	HandleThreshold float64
	// ClickSlop is the largest press-to-release travel still treated as a click.
	ClickSlop float64
}

// DefaultOptions returns the stock pointer tuning.
func DefaultOptions() Options {
	return Options{HandleThreshold: 10, ClickSlop: 3}
}

// ModeListener is called on each mode transition.
type ModeListener func(prev, next Mode)

// TransientListener receives the in-progress rectangle in screen space.
// target is the region being resized or nil while creating. A nil rect
// means the transient shape is gone.
type TransientListener func(rect *geometry.Rectangle, target *region.Region)

// CursorListener receives pointer-shape hints.
type CursorListener func(h geometry.Handle)

// ScaleListener is called after a zoom changes the scale.
type ScaleListener func(scale float64)

// CreatedListener is called after a region has been created from a drag.
type CreatedListener func(r *region.Region)
