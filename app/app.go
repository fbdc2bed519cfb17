package app

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/region-cropper-go/config"
	"github.com/soocke/region-cropper-go/debug"
	"github.com/soocke/region-cropper-go/domain/source"
	"github.com/soocke/region-cropper-go/ui/theme"
	"github.com/soocke/region-cropper-go/ui/view"
)

const debugInterval = 10 * time.Second

// Application owns the Tk main loop and the periodic update tick.
type Application struct {
	title   string
	width   int
	height  int
	c       *AppContainer
	tick    time.Duration
	afterID string
	cancel  context.CancelFunc
}

func NewApp(title string, width, height int, cfg *config.Config, cfgPath string, logger *slog.Logger) (*Application, error) {
	c, err := BuildContainer(cfg, cfgPath, logger, source.ScreenGrabber)
	if err != nil {
		return nil, err
	}
	a := &Application{title: title, width: width, height: height, c: c, tick: time.Duration(cfg.TickMs) * time.Millisecond}
	App.WmTitle(title)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a, nil
}

// Start builds the UI, starts background services and blocks in the Tk loop.
func (a *Application) Start() {
	c := a.c
	theme.InitStyles()

	root := view.NewRootView(c.Config, c.ConfigPath, c.Logger)
	canvas := view.NewCanvasWindow(c.Logger, root.BindKeys)
	c.AttachViews(root, canvas, a.scheduleUpdate)
	ep, sp := c.EditorPresenter, c.SourcePresenter

	root.Build(view.Handlers{
		Open:           func(path string) { sp.Open(path) },
		Capture:        func() { sp.Capture() },
		AddRegion:      ep.AddRegion,
		Cancel:         ep.Cancel,
		DeleteSelected: ep.DeleteSelected,
		ZoomIn:         ep.ZoomIn,
		ZoomOut:        ep.ZoomOut,
		SelectNext:     ep.SelectNext,
		SelectPrevious: ep.SelectPrevious,
		Rotate:         ep.RotateSelected,
		Clear:          ep.ClearRegions,
		Save:           a.saveSelected,
		ToggleTheme:    func() { theme.ToggleDark() },
		Exit:           a.exitHandler,
		Ctrl:           ep.SetCtrl,
		Regions: view.RegionHandlers{
			Select: ep.SelectIndex,
			Rename: func(name string) { ep.RenameSelected(name) },
		},
		ConfigApplied: c.ApplyConfig,
	})
	canvas.Open(a.title + " - Canvas")

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	if c.Config.Debug {
		debug.StartGoroutineLogger(ctx, debugInterval, c.Logger)
		debug.StartMemLogger(ctx, debugInterval, c.Logger)
	}

	c.Source.Start()
	c.Pointer.Start()
	if c.Config.LastImagePath != "" {
		sp.Open(c.Config.LastImagePath)
	}

	a.scheduleUpdate()
	App.Wait()
}

func (a *Application) update() {
	defer func() {
		if r := recover(); r != nil && a.c.Logger != nil {
			a.c.Logger.Error("update tick panic", "panic", r)
			a.scheduleUpdate()
		}
	}()
	c := a.c
	bounds, ok := c.Canvas.Bounds()
	c.Pointer.SetCanvas(bounds.Add(image.Pt(c.Config.CanvasOffsetX, c.Config.CanvasOffsetY)), ok)
	c.Loop.Tick()
}

func (a *Application) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(a.tick, a.update)
}

func (a *Application) saveSelected() {
	c := a.c
	path, err := c.EditorPresenter.ExportSelected(c.Config.ExportDir)
	if err != nil {
		if c.Logger != nil {
			c.Logger.Warn("crop export failed", "error", err)
		}
		return
	}
	if c.Logger != nil {
		c.Logger.Debug("crop saved", "path", path)
	}
}

func (a *Application) exitHandler() {
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	c := a.c
	c.Pointer.Stop()
	c.Source.Stop()
	if a.cancel != nil {
		a.cancel()
	}
	if err := c.Config.Save(c.ConfigPath); err != nil && c.Logger != nil {
		c.Logger.Error("config save failed", "error", err)
	}
	c.Canvas.Close()
	Destroy(App)
}
