package presenter

import (
	"path/filepath"
	"time"

	"github.com/soocke/region-cropper-go/domain/editor"
	"github.com/soocke/region-cropper-go/domain/region"
	"github.com/soocke/region-cropper-go/domain/source"
	"github.com/soocke/region-cropper-go/ui/model"
)

// statusRefresh bounds how stale relative times in the status line may get.
const statusRefresh = time.Second

// StatusInputs narrows what the status presenter reads each tick.
type StatusInputs struct {
	Mode   func() editor.Mode
	Scale  func() float64
	Store  *region.Store
	Source func() source.Snapshot
	Stats  func() source.Stats
	SizeFn func() (int, int)
}

// StatusView displays the status line.
type StatusView interface{ SetStatus(line string) }

// StatusPresenter gathers editor state into the status model and pushes it to the view.
type StatusPresenter struct {
	in        StatusInputs
	model     *model.StatusModel
	view      StatusView
	lastPaint time.Time
}

func NewStatusPresenter(in StatusInputs, m *model.StatusModel, view StatusView) *StatusPresenter {
	return &StatusPresenter{in: in, model: m, view: view}
}

// Tick refreshes the model and repaints when it changed or the line went stale.
func (p *StatusPresenter) Tick(now time.Time) {
	if p == nil || p.model == nil || p.view == nil {
		return
	}
	p.model.Set(p.collect())
	st, changed := p.model.Take()
	if !changed && now.Sub(p.lastPaint) < statusRefresh {
		return
	}
	p.lastPaint = now
	p.view.SetStatus(st.Line(now))
}

func (p *StatusPresenter) collect() model.Status {
	var st model.Status
	if p.in.Mode != nil {
		st.Mode = p.in.Mode().String()
	}
	if p.in.Scale != nil {
		st.Scale = p.in.Scale()
	}
	if s := p.in.Store; s != nil {
		st.Regions = s.Len()
		if sel := s.Selected(); sel != nil {
			st.Selected = sel.Name
			st.Rotation = sel.Rotation
			if sel.Preview != nil {
				st.PreviewBytes = sel.Preview.Size()
			}
		}
	}
	if p.in.Source != nil {
		if snap := p.in.Source(); snap.Sequence > 0 {
			st.Source = snap.Kind.String()
			if snap.Kind == source.KindFile {
				st.Source = filepath.Base(snap.Origin)
			}
			st.LoadedAt = snap.LoadedAt
		}
	}
	if p.in.SizeFn != nil {
		st.SourceW, st.SourceH = p.in.SizeFn()
	}
	if p.in.Stats != nil {
		if stats := p.in.Stats(); stats.LastFailure.After(stats.LastLoad) {
			st.LastError = stats.LastError
		}
	}
	return st
}
