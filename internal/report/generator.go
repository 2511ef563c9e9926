package report

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"benchgraph/internal/benchmark"
	"benchgraph/internal/chart"
	bgerrors "benchgraph/internal/errors"
	"benchgraph/internal/telemetry"
)

// Options configures a Generator.
type Options struct {
	OutputDir string
	Theme     chart.Theme
	// HTML also writes interactive chart pages next to the PNGs.
	HTML bool
	// Out receives the per-test completion lines. Defaults to os.Stdout.
	Out     io.Writer
	Metrics *telemetry.Metrics
}

// Generator turns a benchmark report into chart files, one test case at a time.
type Generator struct {
	opts     Options
	renderer *chart.Renderer
}

// NewGenerator returns a Generator for opts.
func NewGenerator(opts Options) *Generator {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Metrics == nil {
		opts.Metrics = telemetry.NewMetrics()
	}
	return &Generator{
		opts:     opts,
		renderer: chart.NewRenderer(opts.OutputDir, opts.Theme),
	}
}

// Metrics returns the metrics the generator records into.
func (g *Generator) Metrics() *telemetry.Metrics {
	return g.opts.Metrics
}

// GenerateFile loads the report at path and runs it.
func (g *Generator) GenerateFile(path string) error {
	start := time.Now()
	defer func() { g.opts.Metrics.ObserveRunDuration(time.Since(start)) }()

	report, err := benchmark.Load(path)
	if err != nil {
		g.opts.Metrics.TrackError(string(bgerrors.KindOf(err)))
		return fmt.Errorf("failed to load report: %w", err)
	}
	slog.Debug("report loaded", "path", path, "tests", len(report))
	return g.run(report)
}

// Run charts every test case of report in input order and stops at the first
// failure.
func (g *Generator) Run(report benchmark.Report) error {
	start := time.Now()
	defer func() { g.opts.Metrics.ObserveRunDuration(time.Since(start)) }()
	return g.run(report)
}

func (g *Generator) run(report benchmark.Report) error {
	if err := chart.EnsureDir(g.opts.OutputDir); err != nil {
		g.opts.Metrics.TrackError(string(bgerrors.KindOutput))
		return err
	}

	for _, tc := range report {
		if err := g.generateTest(tc); err != nil {
			g.opts.Metrics.TrackError(string(bgerrors.KindOf(err)))
			return fmt.Errorf("failed to generate charts for %q: %w", tc.TestName, err)
		}
		g.opts.Metrics.TrackTestProcessed()
		fmt.Fprintf(g.opts.Out, "Graphs saved successfully for %s!\n", tc.TestName)
	}
	return nil
}

func (g *Generator) generateTest(tc benchmark.TestCase) error {
	summary := benchmark.Summarize(tc)

	if _, err := g.renderer.Render(summary); err != nil {
		return err
	}
	for _, kind := range chart.Kinds {
		g.opts.Metrics.TrackChartWritten(string(kind))
	}

	if g.opts.HTML {
		if _, err := g.renderer.RenderHTML(summary); err != nil {
			return err
		}
		for _, kind := range chart.Kinds {
			g.opts.Metrics.TrackChartWritten(string(kind) + "_html")
		}
	}

	slog.Debug("test charted", "test", tc.TestName, "libraries", len(summary.Libraries))
	return nil
}
