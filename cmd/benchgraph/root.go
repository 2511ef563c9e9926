package main

import (
	"fmt"
	"log/slog"
	"os"

	"benchgraph/internal/config"
	bgerrors "benchgraph/internal/errors"
	"benchgraph/internal/report"
	"benchgraph/internal/telemetry"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var exit = os.Exit
var cfgFile string

// flagKeys maps config keys to the flags that override them.
var flagKeys = map[string]string{
	"verbose":      "verbose",
	"log_file":     "log-file",
	"html":         "html",
	"metrics_file": "metrics-file",
	"chart.width":  "width",
	"chart.height": "height",
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "benchgraph <input_file> <output_directory>",
	Short: "Render benchmark result charts from a JSON results file",
	Long: `benchgraph reads a JSON list of benchmark test cases and, for every test,
writes two grouped bar charts into the output directory:

  <testName>_Results.png             raw Read/Write speed per library (MB/s)
  <testName>_Cumulative_Speedup.png  speed relative to the slowest library (%)`,
	Args:              cobra.ExactArgs(2),
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
	RunE:              runGenerate,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Debug("run failed", "kind", string(bgerrors.KindOf(err)), "error", err)
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./benchgraph.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("log-file", "", "Also write logs to this file")

	rootCmd.Flags().Bool("html", false, "Also write interactive HTML charts")
	rootCmd.Flags().String("metrics-file", "", "Write run metrics to this file in Prometheus text format")
	rootCmd.Flags().Float64("width", 10, "Chart width in inches")
	rootCmd.Flags().Float64("height", 6, "Chart height in inches")
}

// initConfig reads in config file and ENV variables, binds the flags of the
// running command and sets up logging.
func initConfig(cmd *cobra.Command, args []string) error {
	for key, name := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := viper.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	if err := config.Load(cfgFile); err != nil {
		return err
	}
	if err := config.ValidateConfig(); err != nil {
		return err
	}

	telemetry.InitLogger(viper.GetBool("verbose"), viper.GetString("log_file"))
	if used := viper.ConfigFileUsed(); used != "" {
		telemetry.LogDebug("using config file", "path", used)
	}
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	inputFile, outputDir := args[0], args[1]

	metrics := telemetry.NewMetrics()
	g := report.NewGenerator(report.Options{
		OutputDir: outputDir,
		Theme:     config.Theme(),
		HTML:      viper.GetBool("html"),
		Out:       cmd.OutOrStdout(),
		Metrics:   metrics,
	})

	telemetry.LogDebug("generating charts", "input", inputFile, "output", outputDir)
	err := g.GenerateFile(inputFile)

	if path := viper.GetString("metrics_file"); path != "" {
		if werr := metrics.WriteTextfile(path); werr != nil {
			telemetry.LogError("Failed to write metrics", werr, "path", path)
		} else {
			telemetry.LogInfo("metrics written", "path", path)
		}
	}
	return err
}
