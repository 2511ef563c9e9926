package chart

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"benchgraph/internal/benchmark"
	bgerrors "benchgraph/internal/errors"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderHTML writes interactive versions of both charts for s.
func (r *Renderer) RenderHTML(s benchmark.Summary) ([]string, error) {
	if err := EnsureDir(r.dir); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(Kinds))
	for _, kind := range Kinds {
		path := filepath.Join(r.dir, FileName(s.TestName, kind, "html"))
		if err := r.writeHTML(path, s, kind); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (r *Renderer) writeHTML(path string, s benchmark.Summary, kind Kind) error {
	f, err := os.Create(path)
	if err != nil {
		return bgerrors.Output("create chart page", path, err)
	}
	defer f.Close()

	page := components.NewPage()
	page.PageTitle = fmt.Sprintf(specFor(kind).title, s.TestName)
	page.AddCharts(r.BarChart(s, kind))
	if err := page.Render(f); err != nil {
		return bgerrors.Output("render chart page", path, err)
	}
	return nil
}

// BarChart builds the echarts equivalent of Plot. Missing values are "-" so no
// bar is drawn for them.
func (r *Renderer) BarChart(s benchmark.Summary, kind Kind) *charts.Bar {
	spec := specFor(kind)
	fg := Hex(r.theme.Foreground)
	title := fmt.Sprintf(spec.title, s.TestName)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       title,
			Width:           fmt.Sprintf("%.0fpx", r.theme.Width.Points()*96/72),
			Height:          fmt.Sprintf("%.0fpx", r.theme.Height.Points()*96/72),
			BackgroundColor: Hex(r.theme.Background),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:      title,
			TitleStyle: &opts.TextStyle{Color: fg},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{
			Show:      opts.Bool(true),
			Right:     "10",
			TextStyle: &opts.TextStyle{Color: fg},
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Library Name"}),
		charts.WithYAxisOpts(opts.YAxis{Name: spec.yLabel}),
	)
	bar.SetXAxis(s.Ranking)

	for _, rt := range benchmark.ResultTypes {
		series := s.Series(rt)
		table := spec.table(series)
		data := make([]opts.BarData, len(s.Ranking))
		for i, lib := range s.Ranking {
			v := table.Get(lib)
			if v == 0 {
				data[i] = opts.BarData{Value: "-"}
				continue
			}
			rec, ok := series.Record(lib)
			data[i] = opts.BarData{
				Name:      lib + " " + string(rt),
				Value:     math.Round(v*100) / 100,
				ItemStyle: &opts.ItemStyle{Color: Hex(r.colorOf(rec, ok))},
			}
		}
		bar.AddSeries(string(rt), data, charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Position:  "top",
			Formatter: "{c}" + spec.unit,
		}))
	}
	return bar
}
