package editor

import (
	"log/slog"
	"math"

	"github.com/soocke/region-cropper-go/domain/geometry"
	"github.com/soocke/region-cropper-go/domain/region"
	"github.com/soocke/region-cropper-go/ui/images"
)

// Editor turns pointer events and signals into region mutations. It is a
// synchronous state machine driven from the UI tick; it is not safe for
// concurrent use.
type Editor struct {
	mode   Mode
	store  *region.Store
	vp     Viewport
	opts   Options
	logger *slog.Logger

	// press is the pointer-down position in Select mode, used for click detection.
	press *geometry.Point

	// gesture state shared by create and resize, all screen space
	origin       *geometry.Point
	gestureScale float64
	transient    *geometry.Rectangle

	// resize state
	target   *region.Region
	snapshot geometry.Rectangle
	handle   geometry.Handle
	grab     geometry.Point
	grip     *geometry.Grip

	hover geometry.Handle

	modeListeners      []ModeListener
	transientListeners []TransientListener
	cursorListeners    []CursorListener
	scaleListeners     []ScaleListener
	createdListeners   []CreatedListener
}

// New creates an editor in Select mode.
func New(store *region.Store, vp Viewport, opts Options, logger *slog.Logger) *Editor {
	if opts.HandleThreshold <= 0 {
		opts.HandleThreshold = DefaultOptions().HandleThreshold
	}
	if opts.ClickSlop < 0 {
		opts.ClickSlop = 0
	}
	e := &Editor{mode: ModeSelect, store: store, vp: vp, opts: opts, logger: logger}
	store.OnChange(e.regionsChanged)
	return e
}

func (e *Editor) AddModeListener(l ModeListener)           { e.modeListeners = append(e.modeListeners, l) }
func (e *Editor) AddTransientListener(l TransientListener) { e.transientListeners = append(e.transientListeners, l) }
func (e *Editor) AddCursorListener(l CursorListener)       { e.cursorListeners = append(e.cursorListeners, l) }
func (e *Editor) AddScaleListener(l ScaleListener)         { e.scaleListeners = append(e.scaleListeners, l) }
func (e *Editor) AddCreatedListener(l CreatedListener)     { e.createdListeners = append(e.createdListeners, l) }

// Mode returns the current interaction mode.
func (e *Editor) Mode() Mode { return e.mode }

// Hover returns the handle under the pointer for the selected region.
func (e *Editor) Hover() geometry.Handle { return e.hover }

// Transient returns the in-progress rectangle in screen space.
func (e *Editor) Transient() (geometry.Rectangle, bool) {
	if e.transient == nil {
		return geometry.Rectangle{}, false
	}
	return *e.transient, true
}

// Target returns the region being resized, if any.
func (e *Editor) Target() *region.Region { return e.target }

// Options returns the active pointer tuning.
func (e *Editor) Options() Options { return e.opts }

// SetOptions replaces the pointer tuning; it applies to the next gesture.
func (e *Editor) SetOptions(o Options) {
	if o.HandleThreshold > 0 {
		e.opts.HandleThreshold = o.HandleThreshold
	}
	if o.ClickSlop >= 0 {
		e.opts.ClickSlop = o.ClickSlop
	}
}

// HandlePointer routes a pointer event to the matching handler.
func (e *Editor) HandlePointer(ev PointerEvent) {
	switch ev.Kind {
	case PointerDown:
		e.PointerDown(ev.X, ev.Y)
	case PointerMove:
		e.PointerMove(ev.X, ev.Y)
	case PointerUp:
		e.PointerUp(ev.X, ev.Y)
	}
}

// PointerDown starts a gesture at (x, y) in screen space.
func (e *Editor) PointerDown(x, y float64) {
	pt := geometry.Point{X: x, Y: y}
	switch e.mode {
	case ModeSelect:
		if sel := e.store.Selected(); sel != nil {
			scale := e.vp.Scale()
			screen := geometry.RectToScreen(sel.Rectangle, scale)
			if h := geometry.ClassifyHandle(screen, x, y, e.opts.HandleThreshold); h.Resizable() {
				e.beginResize(sel, screen, h, pt, scale)
				return
			}
		}
		e.press = &pt
	case ModeCreateRegion:
		e.origin = &pt
		e.gestureScale = e.vp.Scale()
	case ModeResize:
		// a second press while resizing is ignored
	}
}

// PointerMove updates the active gesture or the hover hint.
func (e *Editor) PointerMove(x, y float64) {
	switch e.mode {
	case ModeSelect:
		if e.press == nil {
			e.updateHover(x, y)
		}
	case ModeCreateRegion:
		if e.origin == nil {
			return
		}
		rect := geometry.BuildRectangleFromDrag(*e.origin, geometry.Point{X: x, Y: y})
		e.setTransient(&rect, nil)
	case ModeResize:
		rect, ok := e.resizeCandidate(x, y)
		if !ok {
			return
		}
		e.setTransient(&rect, e.target)
	}
}

// PointerUp completes the active gesture.
func (e *Editor) PointerUp(x, y float64) {
	switch e.mode {
	case ModeSelect:
		if e.press == nil {
			return
		}
		p := *e.press
		e.press = nil
		if math.Hypot(x-p.X, y-p.Y) <= e.opts.ClickSlop {
			e.Click(x, y)
		}
		e.updateHover(x, y)
	case ModeCreateRegion:
		if e.origin == nil {
			return
		}
		e.finishCreate(geometry.Point{X: x, Y: y})
	case ModeResize:
		e.finishResize(x, y)
		e.updateHover(x, y)
	}
}

// Click selects the topmost region under (x, y), skipping the region that
// is already selected so repeated clicks cycle through overlapping regions.
// When nothing else is hit the previous selection is kept.
func (e *Editor) Click(x, y float64) {
	if e.mode != ModeSelect {
		return
	}
	pt := e.vp.ToImage(geometry.Point{X: x, Y: y})
	prev := e.store.Selected()
	regions := e.store.Regions()
	for i := len(regions) - 1; i >= 0; i-- {
		r := regions[i]
		if e.store.IsSelected(r) || !geometry.ContainsPoint(r.Rectangle, pt.X, pt.Y) {
			continue
		}
		e.store.Select(r)
		return
	}
	if prev != nil && e.logger != nil {
		e.logger.Debug("click hit nothing new, keeping selection", "region", prev.Name)
	}
}

// Dispatch applies an out-of-band signal.
func (e *Editor) Dispatch(sig Signal) {
	switch s := sig.(type) {
	case SignalEnterCreate:
		switch e.mode {
		case ModeSelect:
			e.press = nil
			e.setMode(ModeCreateRegion)
		case ModeResize:
			if e.logger != nil {
				e.logger.Debug("create ignored while resizing")
			}
		}
	case SignalEnterSelect:
		e.cancelGesture()
	case SignalDeleteSelected:
		sel := e.store.Selected()
		if sel == nil {
			return
		}
		if e.target == sel {
			e.cancelGesture()
		}
		e.store.Remove(sel)
	case SignalSelectNext:
		e.step(1)
	case SignalSelectPrevious:
		e.step(-1)
	case SignalRotateSelected:
		if sel := e.store.Selected(); sel != nil {
			sel.RotateClockwise()
			e.store.Update(sel)
		}
	case SignalClear:
		e.Clear()
	case SignalZoom:
		if s.Direction == 0 || (s.Direction > 0 && !e.vp.CanZoomIn()) || (s.Direction < 0 && !e.vp.CanZoomOut()) {
			return
		}
		if e.mode == ModeResize {
			if e.logger != nil {
				e.logger.Debug("zoom ignored while resizing")
			}
			return
		}
		before := e.vp.Scale()
		after := e.vp.Zoom(s.Direction)
		if after == before {
			return
		}
		if e.logger != nil {
			e.logger.Debug("scale changed", "from", before, "to", after)
		}
		for _, l := range e.scaleListeners {
			l(after)
		}
	}
}

// LoadDetections replaces the selection with a batch of externally detected
// rectangles (image space). Empty rectangles are skipped. The first added
// region becomes selected.
func (e *Editor) LoadDetections(rects []geometry.Rectangle) []*region.Region {
	e.store.Select(nil)
	added := make([]*region.Region, 0, len(rects))
	for _, rc := range rects {
		if rc.Empty() {
			continue
		}
		added = append(added, region.New(geometry.BuildRectangleFromDrag(
			geometry.Point{X: rc.X, Y: rc.Y},
			geometry.Point{X: rc.X + rc.Width, Y: rc.Y + rc.Height},
		)))
	}
	e.store.Add(added...)
	if len(added) > 0 {
		e.store.Select(added[0])
	}
	return added
}

// ExportCrop returns r's pixels with its rotation applied, encoded as PNG.
func (e *Editor) ExportCrop(r *region.Region) (images.Encoded, error) {
	img, err := e.vp.CropImage(r.Rectangle)
	if err != nil {
		return images.Encoded{}, err
	}
	return images.Encode(images.Orient(img, r.Rotation))
}

// Clear drops every region and returns to Select mode.
func (e *Editor) Clear() {
	e.cancelGesture()
	e.store.Clear()
}

func (e *Editor) beginResize(r *region.Region, screen geometry.Rectangle, h geometry.Handle, pt geometry.Point, scale float64) {
	e.target = r
	e.snapshot = screen
	e.handle = h
	e.grab = pt
	e.grip = nil
	e.gestureScale = scale
	e.setMode(ModeResize)
	e.setHover(h)
}

// resizeCandidate computes the resized rectangle for a pointer at (x, y).
// The anchor is fixed on the first movement.
func (e *Editor) resizeCandidate(x, y float64) (geometry.Rectangle, bool) {
	if e.target == nil {
		return geometry.Rectangle{}, false
	}
	if e.grip == nil {
		g, ok := geometry.GripFor(e.snapshot, e.handle, e.grab.X, e.grab.Y)
		if !ok {
			return geometry.Rectangle{}, false
		}
		e.grip = &g
	}
	return e.grip.Apply(e.snapshot, x, y), true
}

func (e *Editor) finishCreate(pt geometry.Point) {
	rect := geometry.BuildRectangleFromDrag(*e.origin, pt)
	scale := e.gestureScale
	e.origin = nil
	e.setTransient(nil, nil)
	defer e.setMode(ModeSelect)

	img := geometry.RectToImage(rect, scale)
	if img.Empty() {
		if e.logger != nil {
			e.logger.Debug("zero-size region discarded")
		}
		return
	}
	r := region.New(img)
	if crop, err := e.vp.ExtractCrop(img); err == nil {
		r.Preview = &crop
	} else if e.logger != nil {
		e.logger.Warn("crop failed for new region", "error", err)
	}
	e.store.Add(r)
	e.store.Select(r)
	if e.logger != nil {
		e.logger.Info("region created", "name", r.Name, "x", img.X, "y", img.Y, "width", img.Width, "height", img.Height)
	}
	for _, l := range e.createdListeners {
		l(r)
	}
}

func (e *Editor) finishResize(x, y float64) {
	target := e.target
	still := e.grip == nil && x == e.grab.X && y == e.grab.Y
	rect, ok := e.resizeCandidate(x, y)
	scale := e.gestureScale
	e.resetResize()
	e.setTransient(nil, nil)
	e.setMode(ModeSelect)
	if still || !ok || target == nil || e.store.IndexOf(target) < 0 {
		return
	}
	img := geometry.RectToImage(rect, scale)
	if img.Empty() {
		if e.logger != nil {
			e.logger.Debug("zero-size resize rejected", "region", target.Name)
		}
		return
	}
	target.SetRectangle(img)
	if crop, err := e.vp.ExtractCrop(img); err == nil {
		target.Preview = &crop
	} else if e.logger != nil {
		e.logger.Warn("crop failed after resize", "region", target.Name, "error", err)
	}
	e.store.Update(target)
}

func (e *Editor) step(delta int) {
	n := e.store.Len()
	if n == 0 {
		return
	}
	idx := e.store.IndexOf(e.store.Selected())
	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = n - 1
	default:
		idx = ((idx+delta)%n + n) % n
	}
	e.store.Select(e.store.At(idx))
}

// cancelGesture abandons any in-progress gesture without mutating regions.
func (e *Editor) cancelGesture() {
	e.press = nil
	e.origin = nil
	e.resetResize()
	e.setTransient(nil, nil)
	e.setMode(ModeSelect)
}

func (e *Editor) resetResize() {
	e.target = nil
	e.grip = nil
	e.handle = geometry.HandleDefault
}

func (e *Editor) regionsChanged(c region.Change) {
	if c.Kind != region.ChangeRemoved || e.target == nil {
		return
	}
	for _, r := range c.Regions {
		if r == e.target {
			e.cancelGesture()
			return
		}
	}
}

func (e *Editor) updateHover(x, y float64) {
	h := geometry.HandleDefault
	if sel := e.store.Selected(); sel != nil {
		screen := geometry.RectToScreen(sel.Rectangle, e.vp.Scale())
		h = geometry.ClassifyHandle(screen, x, y, e.opts.HandleThreshold)
	}
	e.setHover(h)
}

func (e *Editor) setHover(h geometry.Handle) {
	if h == e.hover {
		return
	}
	e.hover = h
	for _, l := range e.cursorListeners {
		l(h)
	}
}

func (e *Editor) setTransient(rect *geometry.Rectangle, target *region.Region) {
	if rect == nil && e.transient == nil {
		return
	}
	e.transient = rect
	for _, l := range e.transientListeners {
		l(rect, target)
	}
}

func (e *Editor) setMode(next Mode) {
	prev := e.mode
	if prev == next {
		return
	}
	e.mode = next
	if next != ModeSelect {
		e.press = nil
	}
	if e.logger != nil {
		e.logger.Debug("editor mode transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range e.modeListeners {
		l(prev, next)
	}
}
