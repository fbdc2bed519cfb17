package images

import (
	"image"

	"github.com/disintegration/imaging"
)

// NormalizeQuarterTurns maps any number of clockwise quarter turns into 0..3.
func NormalizeQuarterTurns(turns int) int {
	turns %= 4
	if turns < 0 {
		turns += 4
	}
	return turns
}

// Orient rotates img clockwise by the given number of quarter turns.
func Orient(img image.Image, quarterTurns int) *image.NRGBA {
	switch NormalizeQuarterTurns(quarterTurns) {
	case 1:
		return imaging.Rotate270(img)
	case 2:
		return imaging.Rotate180(img)
	case 3:
		return imaging.Rotate90(img)
	default:
		return imaging.Clone(img)
	}
}
