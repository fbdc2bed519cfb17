package source

import (
	"image"

	"github.com/vova616/screenshot"
)

// ScreenGrabber captures the full active screen or rect when non-nil.
func ScreenGrabber(rect *image.Rectangle) (*image.RGBA, error) {
	if rect != nil && !rect.Empty() {
		return screenshot.CaptureRect(*rect)
	}
	return screenshot.CaptureScreen()
}
