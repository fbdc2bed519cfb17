package presenter

import (
	"image"
	"log/slog"
	"strings"

	"github.com/soocke/region-cropper-go/domain/source"
)

// SourceService narrows the loader to what the presenter drives.
type SourceService interface {
	OpenFile(path string) bool
	CaptureScreen(rect *image.Rectangle) bool
	Latest() source.Snapshot
}

// SourceTarget receives a freshly loaded image on the UI thread.
type SourceTarget interface {
	Load(img image.Image)
}

// SourceResetter clears editor state that belongs to the previous image.
type SourceResetter interface {
	Clear()
}

// SourceListener is told about an applied source (e.g. to repaint or persist the path).
type SourceListener func(snap source.Snapshot)

// SourcePresenter forwards open/capture requests to the loader and applies
// finished loads to the viewport on tick.
type SourcePresenter struct {
	svc       SourceService
	target    SourceTarget
	reset     SourceResetter
	logger    *slog.Logger
	applied   uint64
	listeners []SourceListener
}

func NewSourcePresenter(svc SourceService, target SourceTarget, reset SourceResetter, logger *slog.Logger) *SourcePresenter {
	return &SourcePresenter{svc: svc, target: target, reset: reset, logger: logger}
}

// AddListener registers a callback run after a source is applied.
func (p *SourcePresenter) AddListener(l SourceListener) {
	if p != nil && l != nil {
		p.listeners = append(p.listeners, l)
	}
}

// Open requests decoding of path. Blank paths are ignored.
func (p *SourcePresenter) Open(path string) bool {
	if p == nil || p.svc == nil {
		return false
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return false
	}
	ok := p.svc.OpenFile(path)
	if !ok && p.logger != nil {
		p.logger.Warn("open request rejected", "path", path)
	}
	return ok
}

// Capture requests a full screen capture.
func (p *SourcePresenter) Capture() bool {
	if p == nil || p.svc == nil {
		return false
	}
	return p.svc.CaptureScreen(nil)
}

// Applied returns the sequence of the last applied snapshot.
func (p *SourcePresenter) Applied() uint64 {
	if p == nil {
		return 0
	}
	return p.applied
}

// Tick applies a newer snapshot if one is available. Loading a new image
// discards all regions of the previous one.
func (p *SourcePresenter) Tick() {
	if p == nil || p.svc == nil || p.target == nil {
		return
	}
	snap := p.svc.Latest()
	if snap.Sequence == 0 || snap.Sequence == p.applied || snap.Image == nil {
		return
	}
	p.applied = snap.Sequence
	if p.reset != nil {
		p.reset.Clear()
	}
	p.target.Load(snap.Image)
	for _, l := range p.listeners {
		l(snap)
	}
}
