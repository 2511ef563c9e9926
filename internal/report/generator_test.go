package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"benchgraph/internal/benchmark"
	"benchgraph/internal/chart"
	bgerrors "benchgraph/internal/errors"
	"benchgraph/internal/telemetry"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const input = `[
  {"testName": "Discord Test", "results": [
    {"libraryName": "jsonifier", "resultType": "Read", "resultSpeed": 1500, "color": "teal"},
    {"libraryName": "jsonifier", "resultType": "Write", "resultSpeed": 2100, "color": "steelblue"},
    {"libraryName": "glaze", "resultType": "Read", "resultSpeed": 1100, "color": "green"},
    {"libraryName": "glaze", "resultType": "Write", "resultSpeed": 1400, "color": "lime"}
  ]},
  {"testName": "Empty Test", "results": []}
]`

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestGenerateFile(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "graphs")
	var out bytes.Buffer
	metrics := telemetry.NewMetrics()

	g := NewGenerator(Options{
		OutputDir: outDir,
		Theme:     chart.DefaultTheme(),
		Out:       &out,
		Metrics:   metrics,
	})
	require.NoError(t, g.GenerateFile(writeInput(t, input)))

	assert.Equal(t, "Graphs saved successfully for Discord Test!\nGraphs saved successfully for Empty Test!\n", out.String())
	for _, name := range []string{
		"Discord Test_Results.png",
		"Discord Test_Cumulative_Speedup.png",
		"Empty Test_Results.png",
		"Empty Test_Cumulative_Speedup.png",
	} {
		assert.FileExists(t, filepath.Join(outDir, name))
	}
	assert.NoFileExists(t, filepath.Join(outDir, "Discord Test_Results.html"))

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.TestsProcessed))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.ChartsWritten.WithLabelValues("Results")))
}

func TestGenerateHTML(t *testing.T) {
	outDir := t.TempDir()
	g := NewGenerator(Options{
		OutputDir: outDir,
		Theme:     chart.DefaultTheme(),
		HTML:      true,
		Out:       &bytes.Buffer{},
	})
	require.NoError(t, g.GenerateFile(writeInput(t, input)))

	assert.FileExists(t, filepath.Join(outDir, "Discord Test_Results.html"))
	assert.FileExists(t, filepath.Join(outDir, "Discord Test_Cumulative_Speedup.html"))
	assert.Equal(t, 2.0, testutil.ToFloat64(g.Metrics().ChartsWritten.WithLabelValues("Results_html")))
}

func TestGenerateExistingOutputDir(t *testing.T) {
	outDir := t.TempDir()
	path := writeInput(t, input)

	for i := 0; i < 2; i++ {
		g := NewGenerator(Options{OutputDir: outDir, Theme: chart.DefaultTheme(), Out: &bytes.Buffer{}})
		require.NoError(t, g.GenerateFile(path))
	}
}

func TestGenerateInputErrorWritesNothing(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "graphs")
	var out bytes.Buffer
	g := NewGenerator(Options{OutputDir: outDir, Theme: chart.DefaultTheme(), Out: &out})

	err := g.GenerateFile(writeInput(t, `[{"testName": "x", "results": [`))
	require.Error(t, err)
	assert.ErrorIs(t, err, bgerrors.ErrInput)
	assert.Empty(t, out.String())
	assert.NoDirExists(t, outDir)
	assert.Equal(t, 1.0, testutil.ToFloat64(g.Metrics().Errors.WithLabelValues("input")))
}

func TestGenerateDataShapeError(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "graphs")
	g := NewGenerator(Options{OutputDir: outDir, Theme: chart.DefaultTheme(), Out: &bytes.Buffer{}})

	err := g.GenerateFile(writeInput(t, `[
		{"testName": "ok", "results": []},
		{"testName": "bad", "results": [{"libraryName": "x", "resultType": "Read", "resultSpeed": 1}]}
	]`))
	require.Error(t, err)
	assert.ErrorIs(t, err, bgerrors.ErrDataShape)
	assert.NoDirExists(t, outDir)
}

func TestRunOutputError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	g := NewGenerator(Options{OutputDir: filepath.Join(blocker, "graphs"), Theme: chart.DefaultTheme(), Out: &bytes.Buffer{}})
	err := g.Run(benchmark.Report{{TestName: "t", Results: []benchmark.Result{}}})
	require.Error(t, err)
	assert.ErrorIs(t, err, bgerrors.ErrOutput)
	assert.Equal(t, 1.0, testutil.ToFloat64(g.Metrics().Errors.WithLabelValues("output")))
}
