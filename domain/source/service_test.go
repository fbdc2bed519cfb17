package source

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "src.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

// waitFor polls cond until it holds or the timeout expires.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}

func TestService_OpenFile(t *testing.T) {
	svc := NewService(discardLogger, nil)
	svc.Start()
	defer svc.Stop()
	path := writePNG(t, 32, 16)
	if !svc.OpenFile(path) {
		t.Fatalf("enqueue failed")
	}
	waitFor(t, time.Second, func() bool { return svc.Latest().Sequence == 1 })
	snap := svc.Latest()
	if snap.Kind != KindFile || snap.Format != "png" || snap.Origin != path {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if b := snap.Image.Bounds(); b.Dx() != 32 || b.Dy() != 16 {
		t.Fatalf("unexpected size %v", b)
	}
	if st := svc.Stats(); st.Loads != 1 || st.Failures != 0 {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestService_UnsupportedFile(t *testing.T) {
	svc := NewService(discardLogger, nil)
	svc.Start()
	defer svc.Stop()
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	svc.OpenFile(path)
	waitFor(t, time.Second, func() bool { return svc.Stats().Failures == 1 })
	if svc.Latest().Sequence != 0 {
		t.Fatalf("failed load must not publish a snapshot")
	}
	if !strings.Contains(svc.Stats().LastError, "unsupported") {
		t.Fatalf("expected unsupported format error, got %q", svc.Stats().LastError)
	}
}

func TestService_CaptureScreen(t *testing.T) {
	var gotRect *image.Rectangle
	grab := func(r *image.Rectangle) (*image.RGBA, error) {
		gotRect = r
		return image.NewRGBA(image.Rect(0, 0, 8, 8)), nil
	}
	svc := NewService(discardLogger, grab)
	svc.Start()
	defer svc.Stop()
	rect := image.Rect(0, 0, 8, 8)
	svc.CaptureScreen(&rect)
	waitFor(t, time.Second, func() bool { return svc.Latest().Sequence == 1 })
	if svc.Latest().Kind != KindScreen || gotRect == nil || *gotRect != rect {
		t.Fatalf("unexpected capture snapshot %+v", svc.Latest())
	}
}

func TestService_CaptureError(t *testing.T) {
	svc := NewService(discardLogger, func(*image.Rectangle) (*image.RGBA, error) { return nil, errors.New("no display") })
	svc.Start()
	defer svc.Stop()
	svc.CaptureScreen(nil)
	waitFor(t, time.Second, func() bool { return svc.Stats().Failures == 1 })
}

func TestService_NotRunning(t *testing.T) {
	svc := NewService(discardLogger, nil)
	if svc.OpenFile("x.png") {
		t.Fatalf("enqueue must fail before Start")
	}
	svc.Stop()
}

func TestDecode_Unsupported(t *testing.T) {
	if _, _, err := Decode(bytes.NewReader([]byte("garbage"))); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, _, err := DecodeFile(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
