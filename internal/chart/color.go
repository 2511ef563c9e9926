package chart

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"benchgraph/internal/benchmark"

	"golang.org/x/image/colornames"
)

// ParseColor accepts SVG/CSS color names ("teal", "SteelBlue") and hex colors
// in #rgb, #rrggbb or #rrggbbaa form.
func ParseColor(s string) (color.Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return nil, fmt.Errorf("empty color")
	}
	if strings.HasPrefix(name, "#") {
		return parseHex(name[1:])
	}
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unknown color %q", s)
}

func parseHex(h string) (color.Color, error) {
	orig := h
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return nil, fmt.Errorf("invalid hex color #%s", orig)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid hex color #%s", orig)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// ResultColor is the display color of a single result record.
func ResultColor(r benchmark.Result) (color.Color, error) {
	return ParseColor(r.Color)
}

// Hex formats c as #rrggbb, or #rrggbbaa when it is not opaque.
func Hex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}
