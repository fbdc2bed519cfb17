package app

import (
	"image"
	"log/slog"
	"sync"
	"sync/atomic"

	hook "github.com/robotn/gohook"

	"github.com/soocke/region-cropper-go/domain/editor"
)

// maxQueued bounds buffered pointer events between ticks.
const maxQueued = 512

// wheelNotch is the delta reported for one wheel notch.
const wheelNotch = 120

const leftButton = 1

// PointerHook turns global mouse events into canvas-relative pointer events.
// Events are captured on a background goroutine and drained on the UI thread.
type PointerHook struct {
	logger *slog.Logger

	// canvas bounds in screen coordinates; nil while the canvas is closed
	bounds atomic.Pointer[image.Rectangle]

	mu      sync.Mutex
	events  []editor.PointerEvent
	wheel   []int
	dropped uint64

	// owned by the hook goroutine
	pressed bool

	running atomic.Bool
	done    chan struct{}
}

func NewPointerHook(logger *slog.Logger) *PointerHook {
	return &PointerHook{logger: logger}
}

// SetCanvas updates the canvas area in screen coordinates. ok=false disables capture.
func (p *PointerHook) SetCanvas(r image.Rectangle, ok bool) {
	if !ok || r.Empty() {
		p.bounds.Store(nil)
		return
	}
	p.bounds.Store(&r)
}

// Start installs the global hook. It is a no-op if already running.
func (p *PointerHook) Start() {
	if !p.running.CompareAndSwap(false, true) {
		return
	}
	evs := hook.Start()
	if evs == nil {
		p.running.Store(false)
		if p.logger != nil {
			p.logger.Error("pointer hook unavailable")
		}
		return
	}
	p.done = make(chan struct{})
	go func() {
		defer close(p.done)
		defer func() {
			if r := recover(); r != nil && p.logger != nil {
				p.logger.Error("pointer hook panic", "panic", r)
			}
		}()
		for ev := range evs {
			p.handle(ev)
		}
	}()
	if p.logger != nil {
		p.logger.Info("pointer hook started")
	}
}

// Stop removes the hook and waits for the reader to exit.
func (p *PointerHook) Stop() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	hook.End()
	<-p.done
	p.mu.Lock()
	dropped := p.dropped
	p.mu.Unlock()
	if p.logger != nil {
		p.logger.Info("pointer hook stopped", "dropped", dropped)
	}
}

// Drain returns and clears the queued input.
func (p *PointerHook) Drain() ([]editor.PointerEvent, []int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ev, wh := p.events, p.wheel
	p.events, p.wheel = nil, nil
	return ev, wh
}

func (p *PointerHook) handle(ev hook.Event) {
	b := p.bounds.Load()
	if b == nil {
		p.pressed = false
		return
	}
	pt := image.Pt(int(ev.X), int(ev.Y))
	inside := pt.In(*b)
	x, y := float64(pt.X-b.Min.X), float64(pt.Y-b.Min.Y)
	switch ev.Kind {
	case hook.MouseHold:
		if ev.Button != leftButton || !inside {
			return
		}
		p.pressed = true
		p.push(editor.PointerEvent{Kind: editor.PointerDown, X: x, Y: y})
	case hook.MouseDown, hook.MouseUp:
		// release arrives as MouseDown followed by a MouseUp click report
		if ev.Button != leftButton || !p.pressed {
			return
		}
		p.pressed = false
		p.push(editor.PointerEvent{Kind: editor.PointerUp, X: x, Y: y})
	case hook.MouseMove, hook.MouseDrag:
		if !inside && !p.pressed {
			return
		}
		p.push(editor.PointerEvent{Kind: editor.PointerMove, X: x, Y: y})
	case hook.MouseWheel:
		if !inside || ev.Rotation == 0 {
			return
		}
		p.pushWheel(-int(ev.Rotation) * wheelNotch)
	}
}

// push appends ev, folding consecutive moves into the latest one.
func (p *PointerHook) push(ev editor.PointerEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n := len(p.events); n > 0 && ev.Kind == editor.PointerMove && p.events[n-1].Kind == editor.PointerMove {
		p.events[n-1] = ev
		return
	}
	if len(p.events) >= maxQueued {
		p.dropped++
		return
	}
	p.events = append(p.events, ev)
}

func (p *PointerHook) pushWheel(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.wheel) >= maxQueued {
		p.dropped++
		return
	}
	p.wheel = append(p.wheel, delta)
}
