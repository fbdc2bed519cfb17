package viewport

import (
	"errors"
	"image"
	"image/color"
	"log/slog"
	"math"
	"testing"

	"github.com/soocke/region-cropper-go/domain/geometry"
	"github.com/soocke/region-cropper-go/ui/images"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func onLadder(s float64) bool {
	for _, r := range Ladder {
		if r == s {
			return true
		}
	}
	return false
}

func TestZoom_StaysOnLadder(t *testing.T) {
	v := New(1, discardLogger)
	for i := 0; i < 10; i++ {
		v.Zoom(1)
		if !onLadder(v.Scale()) {
			t.Fatalf("zoom in left ladder: %v", v.Scale())
		}
	}
	if v.Scale() != MaxScale || v.CanZoomIn() {
		t.Fatalf("expected clamp at max, got %v", v.Scale())
	}
	for i := 0; i < 10; i++ {
		v.Zoom(-1)
		if !onLadder(v.Scale()) {
			t.Fatalf("zoom out left ladder: %v", v.Scale())
		}
	}
	if v.Scale() != MinScale || v.CanZoomOut() {
		t.Fatalf("expected clamp at min, got %v", v.Scale())
	}
	v.Zoom(0)
	if v.Scale() != MinScale {
		t.Fatalf("zero direction must be a no-op")
	}
}

func TestZoom_Steps(t *testing.T) {
	v := New(1, discardLogger)
	if got := v.Zoom(1); got != 2 {
		t.Fatalf("expected 2 got %v", got)
	}
	if got := v.Zoom(-1); got != 1 {
		t.Fatalf("expected 1 got %v", got)
	}
	if got := v.Zoom(-1); got != 0.5 {
		t.Fatalf("expected 0.5 got %v", got)
	}
}

func TestSnap(t *testing.T) {
	cases := map[float64]float64{
		1:          1,
		0.3:        0.25,
		0.4:        0.5,
		3:          4,
		100:        4,
		0.01:       0.125,
		0:          MinScale,
		-2:         MinScale,
		math.NaN(): MinScale,
	}
	for in, want := range cases {
		if got := Snap(in); got != want {
			t.Fatalf("Snap(%v)=%v want %v", in, got, want)
		}
	}
	v := New(1, discardLogger)
	if v.SetScale(1.9) != 2 {
		t.Fatalf("SetScale should snap")
	}
}

func TestExtractCrop_NoSource(t *testing.T) {
	v := New(1, discardLogger)
	if _, err := v.ExtractCrop(geometry.Rectangle{Width: 1, Height: 1}); !errors.Is(err, ErrNoSource) {
		t.Fatalf("expected ErrNoSource, got %v", err)
	}
}

func TestExtractCrop_ClampsAndEncodes(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1000, 800))
	src.Set(999, 799, color.RGBA{R: 255, A: 255})
	v := New(0.25, discardLogger)
	v.Load(src)
	if w, h := v.ScreenSize(); w != 250 || h != 200 {
		t.Fatalf("unexpected screen size %dx%d", w, h)
	}
	enc, err := v.ExtractCrop(geometry.Rectangle{X: 900, Y: 700, Width: 200, Height: 200})
	if err != nil {
		t.Fatalf("crop: %v", err)
	}
	if enc.Width != 100 || enc.Height != 100 {
		t.Fatalf("expected clamp to 100x100, got %dx%d", enc.Width, enc.Height)
	}
	img, err := images.Decode(enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	r, _, _, _ := img.At(99, 99).RGBA()
	if r>>8 != 255 {
		t.Fatalf("expected red corner pixel")
	}
	if _, err := v.ExtractCrop(geometry.Rectangle{X: 2000, Y: 2000, Width: 5, Height: 5}); !errors.Is(err, ErrEmptyCrop) {
		t.Fatalf("expected ErrEmptyCrop, got %v", err)
	}
}

func TestLoad_CopiesSource(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	v := New(1, discardLogger)
	v.Load(src)
	src.Set(0, 0, color.RGBA{G: 255, A: 255})
	if _, g, _, _ := v.Source().At(0, 0).RGBA(); g != 0 {
		t.Fatalf("viewport should hold its own copy")
	}
	v.SetScale(2)
	pt := v.ToImage(geometry.Point{X: 6, Y: 2})
	if pt.X != 3 || pt.Y != 1 {
		t.Fatalf("unexpected image point %+v", pt)
	}
}
