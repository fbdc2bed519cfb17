package presenter

import (
	"time"

	"github.com/soocke/region-cropper-go/domain/editor"
)

// ModeSource provides the editor methods the presenter requires.
type ModeSource interface {
	Mode() editor.Mode
}

// ModeView sets the mode label in the view.
type ModeView interface{ SetModeLabel(string) }

// ModePresenter receives editor mode transitions and updates the view on tick.
type ModePresenter struct {
	eng     ModeSource
	view    ModeView
	latest  editor.Mode
	painted bool
	pending []editor.Mode
}

func NewModePresenter(eng ModeSource, view ModeView) *ModePresenter {
	return &ModePresenter{eng: eng, view: view}
}

// OnMode queues a transition from the editor listener.
//
// The latest queued mode will be reflected on the next Tick.
func (p *ModePresenter) OnMode(_, next editor.Mode) {
	if p == nil {
		return
	}
	p.pending = append(p.pending, next)
}

// Tick reflects the most recent mode in the view.
func (p *ModePresenter) Tick(now time.Time) {
	if p == nil || p.eng == nil || p.view == nil {
		return
	}
	next := p.latest
	if len(p.pending) > 0 {
		next = p.pending[len(p.pending)-1]
		p.pending = p.pending[:0]
	} else if !p.painted {
		next = p.eng.Mode()
	}
	if p.painted && next == p.latest {
		return
	}
	p.latest = next
	p.painted = true
	p.view.SetModeLabel("Mode: " + next.String())
}
