package config

import (
	"fmt"
	"image/color"
	"strings"

	"benchgraph/internal/chart"

	"github.com/spf13/viper"
	"gonum.org/v1/plot/vg"
)

var colorKeys = []string{
	"chart.background",
	"chart.foreground",
	"chart.tick_color",
	"chart.grid_color",
	"chart.label_color",
	"chart.fallback_color",
}

// ValidateConfig validates configuration values and returns an error if any are invalid.
// This function should be called after viper has loaded the configuration.
func ValidateConfig() error {
	var errors []string

	for _, key := range []string{"chart.width", "chart.height"} {
		if viper.IsSet(key) {
			if v := viper.GetFloat64(key); v <= 0 {
				errors = append(errors, fmt.Sprintf("%s must be positive, got: %v", key, v))
			}
		}
	}

	for _, key := range colorKeys {
		if !viper.IsSet(key) {
			continue
		}
		if _, err := chart.ParseColor(viper.GetString(key)); err != nil {
			errors = append(errors, fmt.Sprintf("%s: %v", key, err))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errors, "\n  "))
	}
	return nil
}

// Theme builds the chart theme from the chart.* keys, falling back to the
// default theme for anything unset or unparseable.
func Theme() chart.Theme {
	t := chart.DefaultTheme()

	if w := viper.GetFloat64("chart.width"); w > 0 {
		t.Width = vg.Length(w) * vg.Inch
	}
	if h := viper.GetFloat64("chart.height"); h > 0 {
		t.Height = vg.Length(h) * vg.Inch
	}

	colors := map[string]*color.Color{
		"chart.background":     &t.Background,
		"chart.foreground":     &t.Foreground,
		"chart.tick_color":     &t.TickColor,
		"chart.grid_color":     &t.GridColor,
		"chart.label_color":    &t.LabelColor,
		"chart.fallback_color": &t.Fallback,
	}
	for key, dst := range colors {
		s := viper.GetString(key)
		if s == "" {
			continue
		}
		if c, err := chart.ParseColor(s); err == nil {
			*dst = c
		}
	}
	return t
}
