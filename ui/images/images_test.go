package images

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 7, A: 255})
		}
	}
	return img
}

func TestCrop_ExactPixels(t *testing.T) {
	src := gradient(100, 80)
	out, r, err := Crop(src, 10, 20, 30, 15)
	if err != nil {
		t.Fatalf("crop: %v", err)
	}
	if r != image.Rect(10, 20, 40, 35) {
		t.Fatalf("unexpected bounds %v", r)
	}
	if out.Bounds().Dx() != 30 || out.Bounds().Dy() != 15 {
		t.Fatalf("unexpected size %v", out.Bounds())
	}
	if c := out.NRGBAAt(0, 0); c.R != 10 || c.G != 20 {
		t.Fatalf("top-left pixel mismatch %+v", c)
	}
}

func TestCrop_ClampsToSource(t *testing.T) {
	src := gradient(50, 50)
	out, r, err := Crop(src, 40, -10, 30, 20)
	if err != nil {
		t.Fatalf("crop: %v", err)
	}
	if r != image.Rect(40, 0, 50, 10) {
		t.Fatalf("expected clamp, got %v", r)
	}
	if out.Bounds().Dx() != 10 || out.Bounds().Dy() != 10 {
		t.Fatalf("unexpected size %v", out.Bounds())
	}
}

func TestCrop_DriftRoundsAway(t *testing.T) {
	src := gradient(100, 100)
	_, r, err := Crop(src, 9.9999999, 10.0000001, 20.0000002, 5)
	if err != nil {
		t.Fatalf("crop: %v", err)
	}
	if r != image.Rect(10, 10, 30, 15) {
		t.Fatalf("expected rounding to integer grid, got %v", r)
	}
}

func TestCrop_SubPixelIsAtLeastOnePixel(t *testing.T) {
	src := gradient(10, 10)
	_, r, err := Crop(src, 3.1, 3.1, 0.2, 0.2)
	if err != nil {
		t.Fatalf("crop: %v", err)
	}
	if r.Dx() != 1 || r.Dy() != 1 {
		t.Fatalf("expected 1x1 got %v", r)
	}
}

func TestCrop_Errors(t *testing.T) {
	src := gradient(10, 10)
	if _, _, err := Crop(src, 20, 20, 5, 5); !errors.Is(err, ErrEmptyCrop) {
		t.Fatalf("expected ErrEmptyCrop for outside rect, got %v", err)
	}
	if _, _, err := Crop(src, 1, 1, 0, 5); !errors.Is(err, ErrEmptyCrop) {
		t.Fatalf("expected ErrEmptyCrop for zero width, got %v", err)
	}
	if _, _, err := Crop(nil, 0, 0, 1, 1); err == nil {
		t.Fatalf("expected error for nil source")
	}
}

func TestEncodeDecode(t *testing.T) {
	enc, err := Encode(gradient(12, 7))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if enc.Format != FormatPNG || enc.Width != 12 || enc.Height != 7 || enc.Size() == 0 {
		t.Fatalf("unexpected encoded metadata %+v", enc)
	}
	img, err := Decode(enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 12 {
		t.Fatalf("decoded width mismatch")
	}
	if _, err := Decode(Encoded{Format: FormatPNG}); err == nil {
		t.Fatalf("expected error for empty data")
	}
}

func TestOrient(t *testing.T) {
	src := gradient(4, 2)
	if b := Orient(src, 1).Bounds(); b.Dx() != 2 || b.Dy() != 4 {
		t.Fatalf("quarter turn should swap sides, got %v", b)
	}
	// Clockwise: the original top-left pixel ends up in the top-right corner.
	rot := Orient(src, 1)
	if c := rot.NRGBAAt(1, 0); c.R != 0 || c.G != 0 {
		t.Fatalf("unexpected pixel after clockwise turn %+v", c)
	}
	if b := Orient(src, 2).Bounds(); b.Dx() != 4 {
		t.Fatalf("half turn keeps sides")
	}
	if NormalizeQuarterTurns(-1) != 3 || NormalizeQuarterTurns(9) != 1 {
		t.Fatalf("normalize mismatch")
	}
}

func TestScaleToFit(t *testing.T) {
	src := gradient(400, 200)
	out := ScaleToFit(src, 100, 100)
	if b := out.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Fatalf("unexpected fit %v", b)
	}
	small := gradient(10, 10)
	if ScaleToFit(small, 100, 100) != image.Image(small) {
		t.Fatalf("fitting source should be returned as-is")
	}
}

func TestScaleBy(t *testing.T) {
	src := gradient(64, 32)
	if b := ScaleBy(src, 0.125).Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Fatalf("downscale mismatch %v", b)
	}
	if b := ScaleBy(src, 2).Bounds(); b.Dx() != 128 || b.Dy() != 64 {
		t.Fatalf("upscale mismatch %v", b)
	}
	if ScaleBy(src, 0) != nil {
		t.Fatalf("zero scale should yield nil")
	}
}
