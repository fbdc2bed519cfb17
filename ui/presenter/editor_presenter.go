package presenter

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/soocke/region-cropper-go/domain/editor"
	"github.com/soocke/region-cropper-go/domain/geometry"
	"github.com/soocke/region-cropper-go/domain/region"
	"github.com/soocke/region-cropper-go/ui/images"
)

// EditorEngine is the slice of the editor the presenter drives.
type EditorEngine interface {
	Dispatch(sig editor.Signal)
	HandlePointer(ev editor.PointerEvent)
	Mode() editor.Mode
	ExportCrop(r *region.Region) (images.Encoded, error)
}

// RegionStore is the slice of the store the presenter reads.
type RegionStore interface {
	Regions() []*region.Region
	Selected() *region.Region
	Select(r *region.Region) bool
	Rename(r *region.Region, name string) bool
	IndexOf(r *region.Region) int
	At(i int) *region.Region
}

// WheelSink receives wheel motion for debounced zoom.
type WheelSink interface {
	Wheel(delta int, ctrl bool) bool
}

// CanvasView displays composed frames and pointer-shape hints.
type CanvasView interface {
	ShowFrame(img image.Image)
	SetCursor(h geometry.Handle, mode editor.Mode)
}

// RegionPanelView lists regions and shows the selected crop.
type RegionPanelView interface {
	SetRegions(names []string, selected int)
	ShowPreview(img image.Image, caption string)
	ClearPreview()
}

// EditorPresenter connects toolbar actions, pointer input and frames to the
// editor and pushes region list changes to the side panel on tick.
type EditorPresenter struct {
	eng        EditorEngine
	store      RegionStore
	wheel      WheelSink
	canvas     CanvasView
	panel      RegionPanelView
	logger     *slog.Logger
	previewMax int

	ctrl        bool
	listDirty   bool
	cursorDirty bool
	cursor      geometry.Handle
	shown       *images.Encoded
}

func NewEditorPresenter(eng EditorEngine, store RegionStore, wheel WheelSink, canvas CanvasView, panel RegionPanelView, previewMax int, logger *slog.Logger) *EditorPresenter {
	if previewMax < 16 {
		previewMax = 240
	}
	return &EditorPresenter{eng: eng, store: store, wheel: wheel, canvas: canvas, panel: panel, previewMax: previewMax, logger: logger, listDirty: true}
}

// OnRegionsChanged marks the list for refresh; register it as a store listener.
func (p *EditorPresenter) OnRegionsChanged(region.Change) {
	if p != nil {
		p.listDirty = true
	}
}

// OnSelectionChanged marks the list for refresh; register it as a store listener.
func (p *EditorPresenter) OnSelectionChanged(_, _ *region.Region) {
	if p != nil {
		p.listDirty = true
	}
}

// OnCursor queues a pointer-shape hint from the editor.
func (p *EditorPresenter) OnCursor(h geometry.Handle) {
	if p == nil {
		return
	}
	p.cursor = h
	p.cursorDirty = true
}

// OnMode refreshes the cursor when the mode changes (create uses a crosshair).
func (p *EditorPresenter) OnMode(_, _ editor.Mode) {
	if p != nil {
		p.cursorDirty = true
	}
}

// ShowFrame forwards a composed frame to the canvas; use as a scheduler sink.
func (p *EditorPresenter) ShowFrame(frame *image.RGBA) {
	if p == nil || p.canvas == nil || frame == nil {
		return
	}
	p.canvas.ShowFrame(frame)
}

// Pointer forwards a canvas pointer event to the editor.
func (p *EditorPresenter) Pointer(ev editor.PointerEvent) {
	if p == nil || p.eng == nil {
		return
	}
	p.eng.HandlePointer(ev)
}

// SetCtrl records the control-key state used to gate wheel zoom.
func (p *EditorPresenter) SetCtrl(down bool) {
	if p != nil {
		p.ctrl = down
	}
}

// Wheel forwards wheel motion with the current control-key state.
func (p *EditorPresenter) Wheel(delta int) bool {
	if p == nil || p.wheel == nil {
		return false
	}
	return p.wheel.Wheel(delta, p.ctrl)
}

func (p *EditorPresenter) dispatch(sig editor.Signal) {
	if p == nil || p.eng == nil {
		return
	}
	p.eng.Dispatch(sig)
}

func (p *EditorPresenter) AddRegion()      { p.dispatch(editor.SignalEnterCreate{}) }
func (p *EditorPresenter) Cancel()         { p.dispatch(editor.SignalEnterSelect{}) }
func (p *EditorPresenter) DeleteSelected() { p.dispatch(editor.SignalDeleteSelected{}) }
func (p *EditorPresenter) SelectNext()     { p.dispatch(editor.SignalSelectNext{}) }
func (p *EditorPresenter) SelectPrevious() { p.dispatch(editor.SignalSelectPrevious{}) }
func (p *EditorPresenter) RotateSelected() { p.dispatch(editor.SignalRotateSelected{}) }
func (p *EditorPresenter) ClearRegions()   { p.dispatch(editor.SignalClear{}) }
func (p *EditorPresenter) ZoomIn()         { p.dispatch(editor.SignalZoom{Direction: 1}) }
func (p *EditorPresenter) ZoomOut()        { p.dispatch(editor.SignalZoom{Direction: -1}) }

// SelectIndex selects the region at index i of the list. A negative index deselects.
func (p *EditorPresenter) SelectIndex(i int) {
	if p == nil || p.store == nil {
		return
	}
	if i < 0 {
		p.store.Select(nil)
		return
	}
	if r := p.store.At(i); r != nil {
		p.store.Select(r)
	}
}

// RenameSelected renames the selected region.
func (p *EditorPresenter) RenameSelected(name string) bool {
	if p == nil || p.store == nil {
		return false
	}
	sel := p.store.Selected()
	if sel == nil {
		return false
	}
	return p.store.Rename(sel, name)
}

// ExportSelected writes the selected crop, rotation applied, as <name>.png into dir.
func (p *EditorPresenter) ExportSelected(dir string) (string, error) {
	if p == nil || p.store == nil || p.eng == nil {
		return "", fmt.Errorf("export: presenter not ready")
	}
	sel := p.store.Selected()
	if sel == nil {
		return "", fmt.Errorf("export: no region selected")
	}
	enc, err := p.eng.ExportCrop(sel)
	if err != nil {
		return "", fmt.Errorf("export %s: %w", sel.Name, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export %s: %w", sel.Name, err)
	}
	path := filepath.Join(dir, fileName(sel.Name)+"."+enc.Format)
	if err := os.WriteFile(path, enc.Data, 0o644); err != nil {
		return "", fmt.Errorf("export %s: %w", sel.Name, err)
	}
	if p.logger != nil {
		p.logger.Info("crop exported", "region", sel.Name, "path", path, "width", enc.Width, "height", enc.Height, "size", humanize.Bytes(uint64(enc.Size())))
	}
	return path, nil
}

// Tick pushes pending list, preview and cursor updates to the views.
func (p *EditorPresenter) Tick() {
	if p == nil {
		return
	}
	if p.cursorDirty && p.canvas != nil && p.eng != nil {
		p.cursorDirty = false
		p.canvas.SetCursor(p.cursor, p.eng.Mode())
	}
	if !p.listDirty || p.panel == nil || p.store == nil {
		return
	}
	p.listDirty = false
	regions := p.store.Regions()
	names := make([]string, len(regions))
	for i, r := range regions {
		names[i] = r.Name
	}
	sel := p.store.Selected()
	p.panel.SetRegions(names, p.store.IndexOf(sel))
	p.refreshPreview(sel)
}

func (p *EditorPresenter) refreshPreview(sel *region.Region) {
	if sel == nil || sel.Preview == nil {
		if p.shown != nil {
			p.panel.ClearPreview()
		}
		p.shown = nil
		return
	}
	if sel.Preview == p.shown {
		return
	}
	img, err := images.Decode(*sel.Preview)
	if err != nil {
		if p.logger != nil {
			p.logger.Warn("preview decode failed", "region", sel.Name, "error", err)
		}
		return
	}
	p.shown = sel.Preview
	caption := fmt.Sprintf("%s  %dx%d", sel.Name, sel.Preview.Width, sel.Preview.Height)
	if sel.Rotation != 0 {
		caption += fmt.Sprintf("  %d°", sel.Degrees())
	}
	p.panel.ShowPreview(images.ScaleToFit(img, p.previewMax, p.previewMax), caption)
}

// fileName maps a region name onto a safe file stem.
func fileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "region"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
