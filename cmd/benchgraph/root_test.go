package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	bgerrors "benchgraph/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootGeneratesCharts(t *testing.T) {
	dir := setupCLI(t)
	input := writeInput(t, dir, sampleInput)
	outDir := filepath.Join(dir, "graphs")

	out, err := executeCommand(rootCmd, input, outDir)
	require.NoError(t, err)

	assert.Contains(t, out, "Graphs saved successfully for Discord Test!\n")
	assert.Contains(t, out, "Graphs saved successfully for Canada Test!\n")
	for _, name := range []string{
		"Discord Test_Results.png",
		"Discord Test_Cumulative_Speedup.png",
		"Canada Test_Results.png",
		"Canada Test_Cumulative_Speedup.png",
	} {
		assert.FileExists(t, filepath.Join(outDir, name))
	}
	assert.NoFileExists(t, filepath.Join(outDir, "Discord Test_Results.html"))
}

func TestRootHTMLAndMetrics(t *testing.T) {
	dir := setupCLI(t)
	input := writeInput(t, dir, sampleInput)
	outDir := filepath.Join(dir, "graphs")
	metricsFile := filepath.Join(dir, "benchgraph.prom")

	_, err := executeCommand(rootCmd, "--html", "--metrics-file", metricsFile, input, outDir)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outDir, "Discord Test_Results.html"))
	assert.FileExists(t, filepath.Join(outDir, "Canada Test_Cumulative_Speedup.html"))

	content, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "benchgraph_tests_processed_total 2")
}

func TestRootConfigFile(t *testing.T) {
	dir := setupCLI(t)
	input := writeInput(t, dir, sampleInput)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "benchgraph.yaml"), []byte("html: true\n"), 0644))

	_, err := executeCommand(rootCmd, input, "graphs")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "graphs", "Discord Test_Results.html"))
}

func TestRootInputErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{name: "malformed json", content: `[{"testName":`, want: bgerrors.ErrInput},
		{name: "missing field", content: `[{"results": []}]`, want: bgerrors.ErrDataShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupCLI(t)
			input := writeInput(t, dir, tt.content)
			outDir := filepath.Join(dir, "graphs")

			out, err := executeCommand(rootCmd, input, outDir)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.NotContains(t, out, "Graphs saved successfully")
			assert.NoDirExists(t, outDir)
		})
	}
}

func TestRootMissingInput(t *testing.T) {
	dir := setupCLI(t)

	_, err := executeCommand(rootCmd, filepath.Join(dir, "missing.json"), filepath.Join(dir, "graphs"))
	require.Error(t, err)
	assert.ErrorIs(t, err, bgerrors.ErrInput)
}

func TestRootArgs(t *testing.T) {
	setupCLI(t)

	_, err := executeCommand(rootCmd, "only-one.json")
	assert.Error(t, err)
}

func TestRootInvalidConfig(t *testing.T) {
	dir := setupCLI(t)
	input := writeInput(t, dir, sampleInput)

	_, err := executeCommand(rootCmd, "--width", "0", input, "graphs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chart.width must be positive")
	assert.NoDirExists(t, filepath.Join(dir, "graphs"))
}

func TestExecuteExitsNonZero(t *testing.T) {
	dir := setupCLI(t)
	resetFlags(rootCmd)

	var code int
	oldExit := exit
	exit = func(c int) { code = c }
	defer func() { exit = oldExit }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{filepath.Join(dir, "missing.json"), filepath.Join(dir, "graphs")})

	Execute()

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "Error: failed to load report")
}
