package render

import (
	"image"
	"log/slog"
	"time"

	"github.com/soocke/region-cropper-go/domain/geometry"
	"github.com/soocke/region-cropper-go/domain/region"
	"github.com/soocke/region-cropper-go/domain/schedule"
	"github.com/soocke/region-cropper-go/domain/viewport"
)

// Timing groups the scheduler's pacing knobs.
type Timing struct {
	RepaintInterval time.Duration
	FrameInterval   time.Duration
	ZoomDebounce    time.Duration
	// WheelDeltaMin is the smallest wheel delta magnitude that zooms.
	WheelDeltaMin int
}

// DefaultTiming mirrors the stock configuration.
func DefaultTiming() Timing {
	return Timing{
		RepaintInterval: 750 * time.Millisecond,
		FrameInterval:   16 * time.Millisecond,
		ZoomDebounce:    125 * time.Millisecond,
		WheelDeltaMin:   100,
	}
}

// FrameSink receives a composed frame. The frame is recycled after the sink
// returns, so sinks must copy or encode it before returning.
type FrameSink func(frame *image.RGBA)

// Stats counts scheduler activity.
type Stats struct {
	Repaints        uint64
	Overlays        uint64
	Previews        uint64
	PreviewFailures uint64
	ZoomsApplied    uint64
}

// Scheduler paces repaints and crop generation. Full repaints are throttled,
// transient overlays are coalesced per frame and wheel zoom is debounced.
// Crops are produced lazily for regions that lack one.
type Scheduler struct {
	store    *region.Store
	vp       *viewport.Viewport
	renderer *Renderer
	logger   *slog.Logger
	timing   Timing
	now      func() time.Time

	repaint *schedule.Throttle
	overlay *schedule.Coalescer
	zoom    *schedule.Debouncer[int]

	transient    *geometry.Rectangle
	transientFor *region.Region

	sinks  []FrameSink
	zoomFn func(direction int)
	stats  Stats
}

// NewScheduler wires the scheduler to store notifications.
func NewScheduler(store *region.Store, vp *viewport.Viewport, renderer *Renderer, timing Timing, logger *slog.Logger) *Scheduler {
	s := &Scheduler{store: store, vp: vp, renderer: renderer, timing: timing, logger: logger, now: time.Now}
	s.repaint = schedule.NewThrottle(timing.RepaintInterval, func() { s.draw(false) })
	s.overlay = schedule.NewCoalescer(timing.FrameInterval, func() { s.draw(true) })
	s.zoom = schedule.NewDebouncer(timing.ZoomDebounce, s.applyZoom)
	if store != nil {
		store.OnChange(s.regionsChanged)
		store.OnSelection(s.selectionChanged)
	}
	return s
}

// OnFrame registers a frame consumer.
func (s *Scheduler) OnFrame(sink FrameSink) {
	if sink != nil {
		s.sinks = append(s.sinks, sink)
	}
}

// SetZoomHandler sets the callback run when a debounced wheel zoom fires.
func (s *Scheduler) SetZoomHandler(fn func(direction int)) { s.zoomFn = fn }

// RequestRepaint asks for a full repaint, throttled to the repaint interval.
func (s *Scheduler) RequestRepaint() { s.repaint.Trigger(s.now()) }

// SourceChanged drops cached bases and repaints.
func (s *Scheduler) SourceChanged() {
	s.renderer.Invalidate()
	s.ClearTransient()
	s.RequestRepaint()
}

// ScaleChanged repaints after a zoom level change.
func (s *Scheduler) ScaleChanged(float64) { s.RequestRepaint() }

// SetTransient shows an in-progress rectangle (screen space). target is the
// region being resized, or nil for a create preview.
func (s *Scheduler) SetTransient(rect geometry.Rectangle, target *region.Region) {
	s.transient = &rect
	s.transientFor = target
	s.overlay.Request()
}

// ClearTransient removes the in-progress rectangle.
func (s *Scheduler) ClearTransient() {
	if s.transient == nil {
		return
	}
	s.transient = nil
	s.transientFor = nil
	s.overlay.Request()
}

// Wheel feeds a wheel event. Only ctrl-modified wheel motion larger than the
// configured threshold zooms; it reports whether the event was consumed.
func (s *Scheduler) Wheel(delta int, ctrl bool) bool {
	if !ctrl {
		return false
	}
	mag := delta
	if mag < 0 {
		mag = -mag
	}
	if mag <= s.timing.WheelDeltaMin {
		return false
	}
	dir := 1
	if delta < 0 {
		dir = -1
	}
	s.zoom.Trigger(s.now(), dir)
	return true
}

// Poll runs whatever is due at now. Call it from the UI tick.
func (s *Scheduler) Poll(now time.Time) {
	s.zoom.Poll(now)
	s.repaint.Poll(now)
	s.overlay.Poll(now)
}

// Stats returns activity counters.
func (s *Scheduler) Stats() Stats { return s.stats }

// EnsurePreview generates a crop for r if it has none. It reports whether
// r has a preview afterwards.
func (s *Scheduler) EnsurePreview(r *region.Region) bool {
	if r == nil {
		return false
	}
	if r.Preview != nil {
		return true
	}
	return s.RefreshPreview(r) == nil
}

// RefreshPreview regenerates r's crop unconditionally.
func (s *Scheduler) RefreshPreview(r *region.Region) error {
	enc, err := s.vp.ExtractCrop(r.Rectangle)
	if err != nil {
		s.stats.PreviewFailures++
		if s.logger != nil {
			s.logger.Warn("preview generation failed", "region", r.Name, "error", err)
		}
		return err
	}
	r.Preview = &enc
	s.stats.Previews++
	return nil
}

func (s *Scheduler) regionsChanged(c region.Change) {
	switch c.Kind {
	case region.ChangeAdded, region.ChangeUpdated:
		for _, r := range c.Regions {
			s.EnsurePreview(r)
		}
	case region.ChangeRemoved:
		for _, r := range c.Regions {
			if r == s.transientFor {
				s.transient, s.transientFor = nil, nil
			}
		}
	}
	s.RequestRepaint()
}

func (s *Scheduler) selectionChanged(_, next *region.Region) {
	if next != nil {
		s.EnsurePreview(next)
	}
	s.RequestRepaint()
}

func (s *Scheduler) applyZoom(direction int) {
	if s.zoomFn == nil {
		return
	}
	s.stats.ZoomsApplied++
	s.zoomFn(direction)
}

func (s *Scheduler) draw(overlay bool) {
	if len(s.sinks) == 0 || s.vp == nil {
		return
	}
	sc := Scene{
		Source:       s.vp.Source(),
		Scale:        s.vp.Scale(),
		Transient:    s.transient,
		TransientFor: s.transientFor,
	}
	if s.store != nil {
		sc.Regions = s.store.Regions()
		sc.Selected = s.store.Selected()
	}
	frame := s.renderer.Render(sc)
	if frame == nil {
		return
	}
	if overlay {
		s.stats.Overlays++
	} else {
		s.stats.Repaints++
	}
	for _, sink := range s.sinks {
		sink(frame)
	}
	RecycleFrame(frame)
}
