package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/soocke/region-cropper-go/config"
	"github.com/soocke/region-cropper-go/domain/editor"
	"github.com/soocke/region-cropper-go/domain/geometry"
	"github.com/soocke/region-cropper-go/domain/region"
	"github.com/soocke/region-cropper-go/domain/render"
	"github.com/soocke/region-cropper-go/domain/source"
	"github.com/soocke/region-cropper-go/domain/viewport"
	"github.com/soocke/region-cropper-go/ui/model"
	"github.com/soocke/region-cropper-go/ui/presenter"
	"github.com/soocke/region-cropper-go/ui/view"
)

// AppContainer assembles domain services, presenters and views.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger

	Store     *region.Store
	Viewport  *viewport.Viewport
	Editor    *editor.Editor
	Renderer  *render.Renderer
	Scheduler *render.Scheduler
	Source    source.Service
	Pointer   *PointerHook
	Status    *model.StatusModel

	RootView *view.RootView
	Canvas   view.CanvasWindow

	// Presenters
	EditorPresenter *presenter.EditorPresenter
	SourcePresenter *presenter.SourcePresenter
	ModePresenter   *presenter.ModePresenter
	StatusPresenter *presenter.StatusPresenter
	Loop            *presenter.Loop
}

// StyleFromConfig parses the overlay colours, falling back to the defaults.
func StyleFromConfig(cfg *config.Config) (render.Style, error) {
	st, err := render.NewStyle(cfg.StyleSelected, cfg.StyleBorder, cfg.StyleCreate, cfg.StyleFillAlpha)
	if err != nil {
		return render.DefaultStyle(), fmt.Errorf("overlay style: %w", err)
	}
	return st, nil
}

// TimingFromConfig converts millisecond settings into scheduler timing.
func TimingFromConfig(cfg *config.Config) render.Timing {
	return render.Timing{
		RepaintInterval: time.Duration(cfg.RepaintIntervalMs) * time.Millisecond,
		FrameInterval:   time.Duration(cfg.FrameIntervalMs) * time.Millisecond,
		ZoomDebounce:    time.Duration(cfg.ZoomDebounceMs) * time.Millisecond,
		WheelDeltaMin:   cfg.WheelDeltaMin,
	}
}

// OptionsFromConfig converts pointer tuning settings.
func OptionsFromConfig(cfg *config.Config) editor.Options {
	return editor.Options{HandleThreshold: cfg.HandleThresholdPx, ClickSlop: cfg.ClickSlopPx}
}

// BuildContainer constructs the domain graph and wires listeners between the
// pieces. Views are attached later by AttachViews once Tk widgets exist.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger, grab source.Grabber) (*AppContainer, error) {
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger}
	style, err := StyleFromConfig(cfg)
	if err != nil && logger != nil {
		logger.Warn("using default overlay style", "error", err)
	}
	cache, err := render.NewScaledCache(cfg.ScaledCacheSize)
	if err != nil {
		return nil, fmt.Errorf("scaled cache: %w", err)
	}
	c.Store = region.NewStore(cfg.RegionNamePrefix, logger)
	c.Viewport = viewport.New(cfg.InitialScale, logger)
	c.Editor = editor.New(c.Store, c.Viewport, OptionsFromConfig(cfg), logger)
	c.Renderer = render.NewRenderer(style, cache, logger)
	c.Scheduler = render.NewScheduler(c.Store, c.Viewport, c.Renderer, TimingFromConfig(cfg), logger)
	c.Source = source.NewService(logger, grab)
	c.Pointer = NewPointerHook(logger)
	c.Status = model.NewStatusModel()

	c.Scheduler.SetZoomHandler(func(direction int) {
		c.Editor.Dispatch(editor.SignalZoom{Direction: direction})
	})
	c.Editor.AddScaleListener(c.Scheduler.ScaleChanged)
	c.Editor.AddTransientListener(func(rect *geometry.Rectangle, target *region.Region) {
		if rect == nil {
			c.Scheduler.ClearTransient()
			return
		}
		c.Scheduler.SetTransient(*rect, target)
	})
	c.Editor.AddCreatedListener(func(r *region.Region) {
		if logger != nil && r.Preview != nil {
			logger.Debug("region preview ready", "name", r.Name, "size", humanize.Bytes(uint64(r.Preview.Size())))
		}
	})
	return c, nil
}

// AttachViews connects presenters to the built views. It must run on the Tk thread.
func (c *AppContainer) AttachViews(root *view.RootView, canvas view.CanvasWindow, schedule func()) {
	c.RootView, c.Canvas = root, canvas
	c.EditorPresenter = presenter.NewEditorPresenter(c.Editor, c.Store, c.Scheduler, canvas, root, c.Config.PreviewMaxPx, c.Logger)
	c.Store.OnChange(c.EditorPresenter.OnRegionsChanged)
	c.Store.OnSelection(c.EditorPresenter.OnSelectionChanged)
	c.Editor.AddCursorListener(c.EditorPresenter.OnCursor)
	c.Editor.AddModeListener(c.EditorPresenter.OnMode)
	c.Scheduler.OnFrame(c.EditorPresenter.ShowFrame)

	c.ModePresenter = presenter.NewModePresenter(c.Editor, root)
	c.Editor.AddModeListener(c.ModePresenter.OnMode)

	c.SourcePresenter = presenter.NewSourcePresenter(c.Source, c.Viewport, c.Editor, c.Logger)
	c.SourcePresenter.AddListener(func(snap source.Snapshot) {
		c.Scheduler.SourceChanged()
		if snap.Kind == source.KindFile {
			c.Config.LastImagePath = snap.Origin
			root.SetPath(snap.Origin)
		}
		if c.Logger != nil {
			w, h := c.Viewport.SourceSize()
			c.Logger.Info("source applied", "kind", snap.Kind.String(), "origin", snap.Origin, "width", w, "height", h, "sequence", snap.Sequence)
		}
	})

	c.StatusPresenter = presenter.NewStatusPresenter(presenter.StatusInputs{
		Mode:   c.Editor.Mode,
		Scale:  c.Viewport.Scale,
		Store:  c.Store,
		Source: c.Source.Latest,
		Stats:  c.Source.Stats,
		SizeFn: c.Viewport.SourceSize,
	}, c.Status, root)

	c.Loop = presenter.NewLoop(c.Pointer, c.SourcePresenter, c.Scheduler, c.EditorPresenter, c.ModePresenter, c.StatusPresenter, schedule)
}

// ApplyConfig pushes edited settings into live components. Pacing changes
// take effect on the next start.
func (c *AppContainer) ApplyConfig(cfg *config.Config) {
	c.Editor.SetOptions(OptionsFromConfig(cfg))
	if st, err := StyleFromConfig(cfg); err == nil {
		c.Renderer.SetStyle(st)
	} else if c.Logger != nil {
		c.Logger.Warn("overlay style rejected", "error", err)
	}
	c.Scheduler.RequestRepaint()
}
