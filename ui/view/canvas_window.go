package view

import (
	"fmt"
	"image"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/soocke/region-cropper-go/domain/editor"
	"github.com/soocke/region-cropper-go/domain/geometry"
	"github.com/soocke/region-cropper-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

// CanvasWindow is the editing surface: a separate window showing the
// composed frame at the current zoom.
type CanvasWindow interface {
	Open(title string)
	ShowFrame(img image.Image)
	SetCursor(h geometry.Handle, mode editor.Mode)
	// Bounds reports the window area in screen coordinates.
	Bounds() (image.Rectangle, bool)
	Close()
}

type canvasWindow struct {
	logger *slog.Logger
	win    *ToplevelWidget
	label  *LabelWidget
	photo  *Img
	cursor string
	onKey  func(w *Window)
}

// NewCanvasWindow creates the window manager. bind, if set, is called with
// the new window so the caller can attach keyboard shortcuts.
func NewCanvasWindow(logger *slog.Logger, bind func(w *Window)) CanvasWindow {
	return &canvasWindow{logger: logger, onKey: bind}
}

func (v *canvasWindow) Open(title string) {
	if v.win != nil {
		WmGeometry(v.win.Window)
		return
	}
	win := App.Toplevel(Borderwidth(0))
	win.WmTitle(title)
	v.win = win
	screenW, screenH := screenSize()
	initW, initH := screenW*2/3, screenH*2/3
	WmGeometry(win.Window, fmt.Sprintf("%dx%d+%d+%d", initW, initH, (screenW-initW)/2, (screenH-initH)/2))
	GridRowConfigure(win.Window, 0, Weight(1))
	GridColumnConfigure(win.Window, 0, Weight(1))
	placeholder := image.NewRGBA(image.Rect(0, 0, initW, initH))
	v.photo = NewPhoto(Data(images.EncodePNG(placeholder)))
	v.label = win.Label(Image(v.photo), Borderwidth(0), Anchor("nw"))
	Grid(v.label, Row(0), Column(0), Sticky("nw"))
	WmProtocol(win.Window, "WM_DELETE_WINDOW", v.Close)
	if v.onKey != nil {
		v.onKey(win.Window)
	}
}

// ShowFrame replaces the displayed frame. The image is encoded before
// returning so pooled frames can be recycled by the caller.
func (v *canvasWindow) ShowFrame(img image.Image) {
	if v.label == nil || img == nil {
		return
	}
	data := images.EncodePNG(img)
	if len(data) == 0 {
		if v.logger != nil {
			v.logger.Warn("frame encode produced no data")
		}
		return
	}
	if v.photo != nil {
		v.photo.Delete()
	}
	v.photo = NewPhoto(Data(data))
	v.label.Configure(Image(v.photo))
}

func (v *canvasWindow) SetCursor(h geometry.Handle, mode editor.Mode) {
	if v.label == nil {
		return
	}
	name := tkCursor(h, mode)
	if name == v.cursor {
		return
	}
	v.cursor = name
	v.label.Configure(Cursor(name))
}

func (v *canvasWindow) Bounds() (image.Rectangle, bool) {
	if v.win == nil {
		return image.Rectangle{}, false
	}
	return parseGeometry(WmGeometry(v.win.Window))
}

func (v *canvasWindow) Close() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
		v.label = nil
		v.photo = nil
		v.cursor = ""
	}
}

// tkCursor maps a handle hint onto a portable Tk cursor name.
func tkCursor(h geometry.Handle, mode editor.Mode) string {
	if mode == editor.ModeCreateRegion {
		return "crosshair"
	}
	switch h {
	case geometry.HandleCornerNWSE:
		return "bottom_right_corner"
	case geometry.HandleCornerNESW:
		return "bottom_left_corner"
	case geometry.HandleEdgeNS:
		return "sb_v_double_arrow"
	case geometry.HandleEdgeEW:
		return "sb_h_double_arrow"
	default:
		return "arrow"
	}
}

// screenSize returns the screen width and height.
// Currently returns static values; should be replaced with proper Tk winfo queries.
func screenSize() (int, int) {
	return 1920, 1080
}

// geomRe matches window geometry strings in the format "WIDTHxHEIGHT+X+Y"
var geomRe = regexp.MustCompile(`^(\d+)x(\d+)\+(-?\d+)\+(-?\d+)$`)

// parseGeometry parses a Tk geometry string and returns the corresponding rectangle.
func parseGeometry(g string) (image.Rectangle, bool) {
	g = strings.TrimSpace(g)
	m := geomRe.FindStringSubmatch(g)
	if len(m) != 5 {
		return image.Rectangle{}, false
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	x, _ := strconv.Atoi(m[3])
	y, _ := strconv.Atoi(m[4])
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(x, y, x+w, y+h), true
}
