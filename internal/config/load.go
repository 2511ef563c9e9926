package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables that override config keys,
// e.g. BENCHGRAPH_CHART_WIDTH for chart.width.
const EnvPrefix = "BENCHGRAPH"

// SetDefaults registers the default value of every key.
func SetDefaults() {
	viper.SetDefault("verbose", false)
	viper.SetDefault("log_file", "")
	viper.SetDefault("html", false)
	viper.SetDefault("metrics_file", "")

	viper.SetDefault("chart.width", 10.0)
	viper.SetDefault("chart.height", 6.0)
	viper.SetDefault("chart.background", "#0d1117")
	viper.SetDefault("chart.foreground", "white")
	viper.SetDefault("chart.tick_color", "lightgray")
	viper.SetDefault("chart.grid_color", "#30363d")
	viper.SetDefault("chart.label_color", "black")
	viper.SetDefault("chart.fallback_color", "gray")
}

// Load initializes the configuration from file and environment variables.
// A missing benchgraph.yaml is not an error; a missing or broken file named
// explicitly through cfgFile is.
func Load(cfgFile string) error {
	// .env is optional
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("benchgraph")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}
