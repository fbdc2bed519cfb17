package view

import (
	"image"
	"log/slog"
	"strings"

	"github.com/soocke/region-cropper-go/config"
	"github.com/soocke/region-cropper-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers are the user actions exposed by the main window. Nil entries
// leave the corresponding control inert.
type Handlers struct {
	Open           func(path string)
	Capture        func()
	AddRegion      func()
	Cancel         func()
	DeleteSelected func()
	ZoomIn         func()
	ZoomOut        func()
	SelectNext     func()
	SelectPrevious func()
	Rotate         func()
	Clear          func()
	Save           func()
	ToggleTheme    func()
	Exit           func()
	Ctrl           func(down bool)
	Regions        RegionHandlers
	ConfigApplied  func(cfg *config.Config)
}

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Status      StatusBar
	ConfigPanel ConfigPanel
	Regions     RegionPanel

	// Widgets
	PathInput *TextWidget
	handlers  Handlers
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout and binds keyboard shortcuts on the root window.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	rv.handlers = h

	// Row 0: source path and loaders
	rv.PathInput = Text(Height(1), Width(40))
	Grid(rv.PathInput, Row(0), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	if rv.cfg != nil && rv.cfg.LastImagePath != "" {
		rv.PathInput.Insert("1.0", rv.cfg.LastImagePath)
	}
	Grid(Button(Txt("Open"), Style(theme.StylePrimaryButton), Command(rv.open)), Row(0), Column(3), Sticky("we"), Padx("0.2m"), Pady("0.3m"))
	Grid(Button(Txt("Capture Screen"), Command(call(h.Capture))), Row(0), Column(4), Sticky("we"), Padx("0.2m"), Pady("0.3m"))

	// Row 1: editing toolbar
	tools := Frame()
	Grid(tools, Row(1), Column(0), Columnspan(5), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	buttons := []struct {
		text  string
		fn    func()
		style string
	}{
		{"Add Region [Ctrl+N]", h.AddRegion, theme.StylePrimaryButton},
		{"Delete", h.DeleteSelected, theme.StyleDangerButton},
		{"Zoom + [Ctrl+=]", h.ZoomIn, ""},
		{"Zoom - [Ctrl+-]", h.ZoomOut, ""},
		{"Next [Tab]", h.SelectNext, ""},
		{"Rotate [Ctrl+R]", h.Rotate, ""},
		{"Clear", h.Clear, theme.StyleDangerButton},
		{"Save Crop [Ctrl+S]", h.Save, ""},
		{"Theme", h.ToggleTheme, ""},
		{"Exit", h.Exit, ""},
	}
	for i, b := range buttons {
		opts := []Opt{Txt(b.text), Command(call(b.fn))}
		if b.style != "" {
			opts = append(opts, Style(b.style))
		}
		Grid(TButton(opts...), In(tools), Row(0), Column(i), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	}

	// Row 2: mode and status
	rv.Status = NewStatusBar(nil, 2, 0, 5, theme.StyleStateLabel)

	// Region list, rename and preview
	var row int
	rv.Regions, row = NewRegionPanel(3, h.Regions)

	// Config panel rows
	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger, h.ConfigApplied)
	rv.ConfigPanel.Build(row)

	GridColumnConfigure(App, 1, Weight(1))
	WmProtocol(App, "WM_DELETE_WINDOW", call(h.Exit))
	rv.BindKeys(App)
}

// BindKeys attaches editing shortcuts to w. The canvas window uses the same
// bindings so shortcuts work whichever window has focus.
func (rv *RootView) BindKeys(w *Window) {
	if rv == nil || w == nil {
		return
	}
	h := rv.handlers
	Bind(w, "<Control-n>", Command(call(h.AddRegion)))
	Bind(w, "<Control-equal>", Command(call(h.ZoomIn)))
	Bind(w, "<Control-plus>", Command(call(h.ZoomIn)))
	Bind(w, "<Control-minus>", Command(call(h.ZoomOut)))
	Bind(w, "<Control-r>", Command(call(h.Rotate)))
	Bind(w, "<Control-s>", Command(call(h.Save)))
	Bind(w, "<Escape>", Command(call(h.Cancel)))
	Bind(w, "<Control-Tab>", Command(call(h.SelectPrevious)))
	// Plain Tab and Delete edit the path and form inputs on the root window.
	if w != App {
		Bind(w, "<Tab>", Command(call(h.SelectNext)))
		Bind(w, "<Delete>", Command(call(h.DeleteSelected)))
	}
	if h.Ctrl != nil {
		for _, key := range []string{"Control_L", "Control_R"} {
			Bind(w, "<KeyPress-"+key+">", Command(func() { h.Ctrl(true) }))
			Bind(w, "<KeyRelease-"+key+">", Command(func() { h.Ctrl(false) }))
		}
	}
}

func (rv *RootView) open() {
	if rv.handlers.Open == nil || rv.PathInput == nil {
		return
	}
	path := strings.TrimSpace(strings.Join(rv.PathInput.Get("1.0", END), ""))
	rv.handlers.Open(path)
}

// SetModeLabel updates the mode label text.
func (rv *RootView) SetModeLabel(text string) {
	if rv != nil && rv.Status != nil {
		rv.Status.SetMode(text)
	}
}

// SetStatus updates the status line.
func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.Status != nil {
		rv.Status.SetStatus(text)
	}
}

// SetRegions proxies to the region panel.
func (rv *RootView) SetRegions(names []string, selected int) {
	if rv != nil && rv.Regions != nil {
		rv.Regions.SetRegions(names, selected)
	}
}

// ShowPreview proxies to the region panel.
func (rv *RootView) ShowPreview(img image.Image, caption string) {
	if rv != nil && rv.Regions != nil {
		rv.Regions.ShowPreview(img, caption)
	}
}

// ClearPreview proxies to the region panel.
func (rv *RootView) ClearPreview() {
	if rv != nil && rv.Regions != nil {
		rv.Regions.ClearPreview()
	}
}

// SetPath replaces the path input text.
func (rv *RootView) SetPath(path string) {
	if rv == nil || rv.PathInput == nil {
		return
	}
	rv.PathInput.Delete("1.0", END)
	rv.PathInput.Insert("1.0", path)
}

func call(fn func()) func() {
	return func() {
		if fn != nil {
			fn()
		}
	}
}
