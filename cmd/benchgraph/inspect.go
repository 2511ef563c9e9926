package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"benchgraph/internal/benchmark"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var inspectTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

var inspectCmd = &cobra.Command{
	Use:   "inspect <input_file>",
	Short: "Print the speed and speedup tables without drawing charts",
	Long: `Loads the results file and prints, for every test case, each library's Read
and Write speed and cumulative speedup in chart order (fastest first).`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	rep, err := benchmark.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load report: %w", err)
	}

	out := cmd.OutOrStdout()
	for i, tc := range rep {
		if i > 0 {
			fmt.Fprintln(out)
		}
		printSummary(out, benchmark.Summarize(tc))
	}
	return nil
}

func printSummary(out io.Writer, s benchmark.Summary) {
	fmt.Fprintln(out, inspectTitleStyle.Render(s.TestName))
	if len(s.Ranking) == 0 {
		fmt.Fprintln(out, "  no results")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "LIBRARY\tREAD MB/S\tWRITE MB/S\tREAD %\tWRITE %")
	for _, lib := range s.Ranking {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", lib,
			cell(s.Read.Speed.Get(lib)),
			cell(s.Write.Speed.Get(lib)),
			cell(s.Read.Speedup.Get(lib)),
			cell(s.Write.Speedup.Get(lib)),
		)
	}
	w.Flush()
}

func cell(v float64) string {
	if v == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}
