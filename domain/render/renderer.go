package render

import (
	"image"
	"log/slog"

	"golang.org/x/image/draw"

	"github.com/soocke/region-cropper-go/domain/geometry"
	"github.com/soocke/region-cropper-go/domain/region"
)

// Scene is everything needed to compose one canvas frame.
type Scene struct {
	Source   image.Image
	Scale    float64
	Regions  []*region.Region
	Selected *region.Region
	// Transient is an in-progress rectangle in screen space. When
	// TransientFor is set it replaces that region's stored rectangle,
	// otherwise it is drawn as the dashed create preview.
	Transient    *geometry.Rectangle
	TransientFor *region.Region
}

// Renderer composes canvas frames from a Scene.
type Renderer struct {
	style  Style
	cache  *ScaledCache
	logger *slog.Logger
}

// NewRenderer creates a renderer backed by cache.
func NewRenderer(style Style, cache *ScaledCache, logger *slog.Logger) *Renderer {
	return &Renderer{style: style, cache: cache, logger: logger}
}

// Style returns the active style.
func (r *Renderer) Style() Style { return r.style }

// SetStyle replaces the style used by subsequent frames.
func (r *Renderer) SetStyle(s Style) { r.style = s }

// Invalidate drops the cached scaled bases.
func (r *Renderer) Invalidate() {
	if r.cache != nil {
		r.cache.Purge()
	}
}

// Render draws sc into a pooled frame. It returns nil when there is no
// source. The caller owns the frame and should hand it back with RecycleFrame.
func (r *Renderer) Render(sc Scene) *image.RGBA {
	if sc.Source == nil || sc.Scale <= 0 {
		return nil
	}
	var base *image.RGBA
	if r.cache != nil {
		base = r.cache.Get(sc.Source, sc.Scale)
	}
	if base == nil {
		return nil
	}
	frame := acquireFrame(base.Bounds())
	draw.Draw(frame, frame.Bounds(), base, base.Bounds().Min, draw.Src)

	small := sc.Scale < r.style.SmallLabelBelow
	face := labelFace(small)
	for _, reg := range sc.Regions {
		rect := geometry.RectToScreen(reg.Rectangle, sc.Scale)
		if sc.TransientFor == reg && sc.Transient != nil {
			rect = *sc.Transient
		}
		px := screenRect(rect.X, rect.Y, rect.Width, rect.Height)
		if reg == sc.Selected {
			fillRect(frame, px, r.style.Selected, r.style.FillAlpha)
			strokeRect(frame, px, r.style.Selected, r.style.SelectedLineWidth)
			drawLabel(frame, int(rect.X+5), int(rect.Y+15), reg.Name, r.style.Selected, face)
			continue
		}
		strokeRect(frame, px, r.style.Border, r.style.LineWidth)
		drawLabel(frame, int(rect.X+5), int(rect.Y+15), reg.Name, r.style.Border, face)
	}
	if sc.Transient != nil && sc.TransientFor == nil {
		t := *sc.Transient
		dashedRect(frame, screenRect(t.X, t.Y, t.Width, t.Height), r.style.Create, r.style.LineWidth, r.style.Dash)
	}
	return frame
}
