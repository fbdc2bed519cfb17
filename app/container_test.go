package app

import (
	"errors"
	"image"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/soocke/region-cropper-go/config"
	"github.com/soocke/region-cropper-go/domain/editor"
	"github.com/soocke/region-cropper-go/domain/geometry"
	"github.com/soocke/region-cropper-go/domain/render"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func noGrab(*image.Rectangle) (*image.RGBA, error) { return nil, errors.New("no screen") }

func newTestContainer(t *testing.T, cfg *config.Config) *AppContainer {
	t.Helper()
	c, err := BuildContainer(cfg, filepath.Join(t.TempDir(), "cfg.json"), discardLogger, noGrab)
	if err != nil {
		t.Fatalf("build container: %v", err)
	}
	c.Viewport.Load(image.NewNRGBA(image.Rect(0, 0, 400, 300)))
	return c
}

func TestTimingFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	got := TimingFromConfig(cfg)
	if got != render.DefaultTiming() {
		t.Fatalf("default config should map to default timing, got %+v", got)
	}
}

func TestStyleFromConfig_FallsBack(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.StyleBorder = "not-a-colour"
	st, err := StyleFromConfig(cfg)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if st != render.DefaultStyle() {
		t.Fatalf("expected default style on error")
	}
}

func TestContainer_WheelZoomReachesViewport(t *testing.T) {
	c := newTestContainer(t, config.DefaultConfig())
	var scales []float64
	c.Editor.AddScaleListener(func(s float64) { scales = append(scales, s) })
	if !c.Scheduler.Wheel(120, true) {
		t.Fatalf("ctrl wheel should be consumed")
	}
	c.Scheduler.Poll(time.Now().Add(time.Second))
	if c.Viewport.Scale() != 2 || len(scales) != 1 {
		t.Fatalf("expected one zoom step to 2, got scale %v listeners %v", c.Viewport.Scale(), scales)
	}
}

func TestContainer_CreateDragAddsRegionWithPreview(t *testing.T) {
	c := newTestContainer(t, config.DefaultConfig())
	c.Editor.Dispatch(editor.SignalEnterCreate{})
	c.Editor.PointerDown(10, 10)
	c.Editor.PointerMove(60, 40)
	c.Editor.PointerUp(60, 40)
	if c.Store.Len() != 1 {
		t.Fatalf("expected a region, got %d", c.Store.Len())
	}
	r := c.Store.At(0)
	if !r.Rectangle.Equal(geometry.Rectangle{X: 10, Y: 10, Width: 50, Height: 30}, geometry.Epsilon) {
		t.Fatalf("unexpected rectangle %+v", r.Rectangle)
	}
	if !r.HasPreview() || r.Preview.Width != 50 || r.Preview.Height != 30 {
		t.Fatalf("expected a 50x30 preview, got %+v", r.Preview)
	}
}

func TestContainer_ApplyConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	c := newTestContainer(t, cfg)
	cfg.HandleThresholdPx = 4
	cfg.StyleSelected = "#ff0000"
	c.ApplyConfig(cfg)
	if c.Editor.Options().HandleThreshold != 4 {
		t.Fatalf("handle threshold not applied")
	}
	if st := c.Renderer.Style(); st.Selected.R != 0xff || st.Selected.G != 0 {
		t.Fatalf("style not applied: %+v", st.Selected)
	}
}
