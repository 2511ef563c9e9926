package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const sampleInput = `[
  {"testName": "Discord Test", "results": [
    {"libraryName": "jsonifier", "resultType": "Read", "resultSpeed": 1500, "color": "teal"},
    {"libraryName": "jsonifier", "resultType": "Write", "resultSpeed": 2100, "color": "steelblue"},
    {"libraryName": "glaze", "resultType": "Read", "resultSpeed": 1000, "color": "green"},
    {"libraryName": "simdjson", "resultType": "Read", "resultSpeed": 1200, "color": "orange"},
    {"libraryName": "glaze", "resultType": "Write", "resultSpeed": 1400, "color": "lime"}
  ]},
  {"testName": "Canada Test", "results": []}
]`

// setupCLI isolates a test from config files in the working directory and
// from viper state left by earlier tests.
func setupCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return dir
}

func writeInput(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "results.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

// executeCommand executes a cobra command and returns its output.
func executeCommand(root *cobra.Command, args ...string) (string, error) {
	resetFlags(root)
	// Mock exit
	oldExit := exit
	exit = func(code int) {
		if code != 0 {
			panic(fmt.Sprintf("exit-%d", code))
		}
	}
	defer func() { exit = oldExit }()
	defer func() {
		if r := recover(); r != nil {
			if s, ok := r.(string); ok && strings.HasPrefix(s, "exit-") {
				return
			}
			panic(r)
		}
	}()
	root.SetArgs(args)
	b := new(bytes.Buffer)
	root.SetOut(b)
	root.SetErr(b)
	root.SetIn(bytes.NewBufferString(""))
	err := root.Execute()
	return b.String(), err
}

// resetFlags resets all flags to their default values.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Changed {
			f.Value.Set(f.DefValue)
			f.Changed = false
		}
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
