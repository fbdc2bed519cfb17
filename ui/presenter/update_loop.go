package presenter

import (
	"time"

	"github.com/soocke/region-cropper-go/domain/editor"
)

// PointerSource hands over pointer and wheel input gathered since the last tick.
type PointerSource interface {
	Drain() (events []editor.PointerEvent, wheel []int)
}

// Poller advances time-based work such as throttled repaints.
type Poller interface {
	Poll(now time.Time)
}

// Loop aggregates feature presenters and drives periodic updates.
//
// Input is applied first so that the repaint scheduler sees this tick's
// changes. The zero value is usable (methods are nil-safe).
type Loop struct {
	Pointer  PointerSource
	Source   *SourcePresenter
	Render   Poller
	Editor   *EditorPresenter
	Mode     *ModePresenter
	Status   *StatusPresenter
	Schedule func()

	now func() time.Time
}

func NewLoop(pointer PointerSource, src *SourcePresenter, render Poller, ed *EditorPresenter, mode *ModePresenter, status *StatusPresenter, schedule func()) *Loop {
	return &Loop{Pointer: pointer, Source: src, Render: render, Editor: ed, Mode: mode, Status: status, Schedule: schedule, now: time.Now}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	if l.now != nil {
		now = l.now()
	}
	if l.Pointer != nil {
		events, wheel := l.Pointer.Drain()
		for _, ev := range events {
			l.Editor.Pointer(ev)
		}
		for _, d := range wheel {
			l.Editor.Wheel(d)
		}
	}
	l.Source.Tick()
	if l.Render != nil {
		l.Render.Poll(now)
	}
	l.Editor.Tick()
	l.Mode.Tick(now)
	l.Status.Tick(now)
	if l.Schedule != nil {
		l.Schedule()
	}
}
