package images

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
)

// FormatPNG is the only encoding produced for crops and previews.
const FormatPNG = "png"

// Encoded is an image serialized for display or export.
type Encoded struct {
	Format string
	Data   []byte
	Width  int
	Height int
}

// Size returns the encoded length in bytes.
func (e Encoded) Size() int { return len(e.Data) }

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// Encode serializes img as PNG.
func Encode(img image.Image) (Encoded, error) {
	if img == nil {
		return Encoded{}, fmt.Errorf("encode: nil image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Encoded{}, fmt.Errorf("failed to encode png: %w", err)
	}
	b := img.Bounds()
	return Encoded{Format: FormatPNG, Data: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}, nil
}

// Decode parses e back into an image.
func Decode(e Encoded) (image.Image, error) {
	if len(e.Data) == 0 {
		return nil, fmt.Errorf("decode: empty %s data", e.Format)
	}
	img, err := png.Decode(bytes.NewReader(e.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", e.Format, err)
	}
	return img, nil
}
