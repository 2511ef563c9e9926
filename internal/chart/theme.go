package chart

import (
	"image/color"

	"gonum.org/v1/plot/vg"
)

// Theme carries every visual setting a chart needs. It is passed to the
// Renderer explicitly so rendering never depends on package state.
type Theme struct {
	Width  vg.Length
	Height vg.Length

	Background color.Color
	Foreground color.Color // titles and axis labels
	TickColor  color.Color
	GridColor  color.Color
	LabelColor color.Color // value labels drawn on bars
	Fallback   color.Color // bars whose record color cannot be parsed
}

// DefaultTheme is the dark theme used for published benchmark graphs.
func DefaultTheme() Theme {
	return Theme{
		Width:      10 * vg.Inch,
		Height:     6 * vg.Inch,
		Background: color.RGBA{R: 0x0d, G: 0x11, B: 0x17, A: 0xff},
		Foreground: color.White,
		TickColor:  color.RGBA{R: 0xd3, G: 0xd3, B: 0xd3, A: 0xff},
		GridColor:  color.RGBA{R: 0x30, G: 0x36, B: 0x3d, A: 0xff},
		LabelColor: color.Black,
		Fallback:   color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	}
}
