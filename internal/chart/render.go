package chart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"benchgraph/internal/benchmark"
	bgerrors "benchgraph/internal/errors"
	"benchgraph/internal/telemetry"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

// Kind names a chart flavour. Its value is the file name suffix.
type Kind string

const (
	Results           Kind = "Results"
	CumulativeSpeedup Kind = "Cumulative_Speedup"
)

// Kinds lists the charts rendered for every test case, in order.
var Kinds = []Kind{Results, CumulativeSpeedup}

type layoutSpec struct {
	title  string
	yLabel string
	unit   string
	table  func(benchmark.Series) benchmark.Table
}

func specFor(kind Kind) layoutSpec {
	if kind == CumulativeSpeedup {
		return layoutSpec{
			title:  "%s Cumulative Speedup (Relative to Slowest Library)",
			yLabel: "Cumulative Speedup (%)",
			unit:   "%",
			table:  func(s benchmark.Series) benchmark.Table { return s.Speedup },
		}
	}
	return layoutSpec{
		title:  "%s Result Speed Comparison",
		yLabel: "Result Speed (MB/s)",
		unit:   "MB/s",
		table:  func(s benchmark.Series) benchmark.Table { return s.Speed },
	}
}

// BarWidth is the width of one bar in x-axis units when n libraries share the axis.
func BarWidth(n int) float64 {
	return 0.8 / float64(max(2, n))
}

// FileName returns the chart file name for a test. Path separators in the test
// name are replaced so the file always lands in the output directory.
func FileName(testName string, kind Kind, ext string) string {
	name := strings.NewReplacer("/", "_", `\`, "_").Replace(testName)
	return fmt.Sprintf("%s_%s.%s", name, kind, ext)
}

// EnsureDir creates dir and its parents if they do not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return bgerrors.Output("create output directory", dir, err)
	}
	return nil
}

// Renderer draws benchmark summaries into image files.
type Renderer struct {
	dir   string
	theme Theme
}

// NewRenderer returns a Renderer writing into dir.
func NewRenderer(dir string, theme Theme) *Renderer {
	return &Renderer{dir: dir, theme: theme}
}

// Render writes the raw speed and cumulative speedup charts for s and returns
// the written paths.
func (r *Renderer) Render(s benchmark.Summary) ([]string, error) {
	if err := EnsureDir(r.dir); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(Kinds))
	for _, kind := range Kinds {
		path, err := r.save(s, kind)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// RenderResults writes the raw speed chart.
func (r *Renderer) RenderResults(s benchmark.Summary) (string, error) {
	if err := EnsureDir(r.dir); err != nil {
		return "", err
	}
	return r.save(s, Results)
}

// RenderSpeedup writes the cumulative speedup chart.
func (r *Renderer) RenderSpeedup(s benchmark.Summary) (string, error) {
	if err := EnsureDir(r.dir); err != nil {
		return "", err
	}
	return r.save(s, CumulativeSpeedup)
}

func (r *Renderer) save(s benchmark.Summary, kind Kind) (string, error) {
	path := filepath.Join(r.dir, FileName(s.TestName, kind, "png"))
	p := r.Plot(s, kind)
	if err := p.Save(r.theme.Width, r.theme.Height, path); err != nil {
		return "", bgerrors.Output("write chart", path, err)
	}
	telemetry.LogDebug("chart written", "test", s.TestName, "kind", string(kind), "path", path)
	return path, nil
}

// Layout returns the bars of one chart. Library i of the ranking is centred on
// x = i with its Read bar on the left and its Write bar on the right. Zero
// values produce no bar.
func (r *Renderer) Layout(s benchmark.Summary, kind Kind) []Bar {
	spec := specFor(kind)
	w := BarWidth(len(s.Ranking))

	var bars []Bar
	for i, lib := range s.Ranking {
		for _, rt := range benchmark.ResultTypes {
			series := s.Series(rt)
			v := spec.table(series).Get(lib)
			if v == 0 {
				continue
			}
			offset := -w / 2
			if rt == benchmark.Write {
				offset = w / 2
			}
			rec, ok := series.Record(lib)
			bars = append(bars, Bar{
				Series: lib + " " + string(rt),
				X:      float64(i) + offset,
				Height: v,
				Color:  r.colorOf(rec, ok),
				Label:  fmt.Sprintf("%.2f%s", v, spec.unit),
			})
		}
	}
	return bars
}

func (r *Renderer) colorOf(rec benchmark.Result, ok bool) color.Color {
	if !ok {
		return r.theme.Fallback
	}
	c, err := ResultColor(rec)
	if err != nil {
		telemetry.LogWarn("unusable bar color, using fallback",
			"library", rec.LibraryName, "type", string(rec.ResultType), "error", err)
		return r.theme.Fallback
	}
	return c
}

// Plot builds the chart for s without writing it anywhere.
func (r *Renderer) Plot(s benchmark.Summary, kind Kind) *plot.Plot {
	spec := specFor(kind)
	n := len(s.Ranking)
	w := BarWidth(n)

	p := plot.New()
	p.Title.Text = fmt.Sprintf(spec.title, s.TestName)
	p.X.Label.Text = "Library Name"
	p.Y.Label.Text = spec.yLabel
	r.applyTheme(p)

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Color = r.theme.GridColor
	p.Add(grid)

	labelStyle := p.X.Tick.Label
	labelStyle.Color = r.theme.LabelColor
	labelStyle.Rotation = 0
	labelStyle.XAlign = text.XCenter
	labelStyle.YAlign = text.YTop
	labelStyle.Font.Weight = xfont.WeightBold
	labelStyle.Font.Size = vg.Points(max(8, w*30))

	bars := &barGroups{Bars: r.Layout(s, kind), Width: w, LabelStyle: labelStyle}
	p.Add(bars)

	ticks := make([]plot.Tick, n)
	for i, lib := range s.Ranking {
		ticks[i] = plot.Tick{Value: float64(i), Label: lib}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)

	p.Legend.Top = true
	p.Legend.Padding = 1 * vg.Millimeter
	if len(bars.Bars) > 0 {
		p.Legend.Add("Library and Result Type")
		for _, b := range bars.Bars {
			p.Legend.Add(b.Series, swatch{color: b.Color})
		}
	}

	_, _, _, ymax := bars.DataRange()
	if ymax == 0 {
		ymax = 1
	}
	p.X.Min, p.X.Max = -0.5, float64(max(n, 1))-0.5
	p.Y.Min, p.Y.Max = 0, ymax*1.1
	return p
}

func (r *Renderer) applyTheme(p *plot.Plot) {
	t := r.theme
	p.BackgroundColor = t.Background
	p.Title.TextStyle.Color = t.Foreground
	p.Legend.TextStyle.Color = t.Foreground
	for _, axis := range []*plot.Axis{&p.X, &p.Y} {
		axis.Color = t.TickColor
		axis.Label.TextStyle.Color = t.Foreground
		axis.Tick.Color = t.TickColor
		axis.Tick.Label.Color = t.TickColor
	}
}
