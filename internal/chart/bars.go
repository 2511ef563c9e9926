package chart

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Bar is a single bar in data coordinates.
type Bar struct {
	Series string // legend name, e.g. "jsonifier Read"
	X      float64
	Height float64
	Color  color.Color
	Label  string
}

// barGroups draws bars whose width is given in x-axis units, so grouped bars
// keep their relative spacing whatever the canvas size.
type barGroups struct {
	Bars  []Bar
	Width float64

	// LabelStyle is used for the value label drawn just below each bar's top.
	LabelStyle text.Style
}

var (
	_ plot.Plotter    = (*barGroups)(nil)
	_ plot.DataRanger = (*barGroups)(nil)
)

// Plot implements the plot.Plotter interface.
func (b *barGroups) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	half := b.Width / 2

	for _, bar := range b.Bars {
		x0, x1 := trX(bar.X-half), trX(bar.X+half)
		y0, y1 := trY(0), trY(bar.Height)
		pts := []vg.Point{{X: x0, Y: y0}, {X: x0, Y: y1}, {X: x1, Y: y1}, {X: x1, Y: y0}}
		c.FillPolygon(bar.Color, c.ClipPolygonXY(pts))

		if bar.Label == "" {
			continue
		}
		pt := vg.Point{X: trX(bar.X), Y: trY(bar.Height * 0.95)}
		if c.Contains(pt) {
			c.FillText(b.LabelStyle, pt, bar.Label)
		}
	}
}

// DataRange implements the plot.DataRanger interface.
func (b *barGroups) DataRange() (xmin, xmax, ymin, ymax float64) {
	if len(b.Bars) == 0 {
		return 0, 0, 0, 0
	}
	half := b.Width / 2
	xmin, xmax = b.Bars[0].X-half, b.Bars[0].X+half
	for _, bar := range b.Bars[1:] {
		xmin = min(xmin, bar.X-half)
		xmax = max(xmax, bar.X+half)
		ymax = max(ymax, bar.Height)
	}
	ymax = max(ymax, b.Bars[0].Height)
	return xmin, xmax, 0, ymax
}

// swatch is a legend thumbnail filled with a single color.
type swatch struct {
	color color.Color
}

// Thumbnail implements the plot.Thumbnailer interface.
func (s swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(s.color, pts)
}
