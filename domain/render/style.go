package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Style controls how regions are outlined on the canvas.
type Style struct {
	Selected          color.NRGBA
	Border            color.NRGBA
	Create            color.NRGBA
	FillAlpha         float64
	LineWidth         int
	SelectedLineWidth int
	Dash              int
	// SmallLabelBelow switches labels to the small face when the scale is under it.
	SmallLabelBelow float64
}

// DefaultStyle returns the stock palette.
func DefaultStyle() Style {
	return Style{
		Selected:          color.NRGBA{R: 0x9a, G: 0xe9, B: 0xbd, A: 0xff},
		Border:            color.NRGBA{R: 0xc9, G: 0xc9, B: 0xc9, A: 0xff},
		Create:            color.NRGBA{R: 0x8a, G: 0xbd, B: 0xe6, A: 0xff},
		FillAlpha:         0.2,
		LineWidth:         2,
		SelectedLineWidth: 3,
		Dash:              5,
		SmallLabelBelow:   0.5,
	}
}

// NewStyle builds a style from hex colours; empty strings keep the defaults.
func NewStyle(selected, border, create string, fillAlpha float64) (Style, error) {
	st := DefaultStyle()
	for _, f := range []struct {
		hex string
		dst *color.NRGBA
	}{{selected, &st.Selected}, {border, &st.Border}, {create, &st.Create}} {
		if strings.TrimSpace(f.hex) == "" {
			continue
		}
		c, err := ParseHexColor(f.hex)
		if err != nil {
			return DefaultStyle(), err
		}
		*f.dst = c
	}
	if fillAlpha >= 0 && fillAlpha <= 1 {
		st.FillAlpha = fillAlpha
	}
	return st, nil
}

// ParseHexColor parses #rgb or #rrggbb.
func ParseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
