package telemetry

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters of one benchgraph run. They live in a private
// registry and are exported once, as a node-exporter textfile.
type Metrics struct {
	registry *prometheus.Registry

	TestsProcessed prometheus.Counter
	ChartsWritten  *prometheus.CounterVec
	Errors         *prometheus.CounterVec
	RunDuration    prometheus.Gauge
}

// NewMetrics creates and registers the run metrics.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.TestsProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "benchgraph_tests_processed_total",
			Help: "Number of test cases whose charts were written.",
		},
	)
	m.ChartsWritten = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "benchgraph_charts_written_total",
			Help: "Number of chart files written, by chart kind.",
		},
		[]string{"kind"},
	)
	m.Errors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "benchgraph_errors_total",
			Help: "Number of failed runs, by error kind.",
		},
		[]string{"kind"},
	)
	m.RunDuration = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "benchgraph_run_duration_seconds",
			Help: "Wall time of the last run.",
		},
	)

	m.registry.MustRegister(m.TestsProcessed, m.ChartsWritten, m.Errors, m.RunDuration)
	return m
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// TrackTestProcessed counts one finished test case.
func (m *Metrics) TrackTestProcessed() {
	m.TestsProcessed.Inc()
}

// TrackChartWritten counts one written chart file.
func (m *Metrics) TrackChartWritten(kind string) {
	m.ChartsWritten.WithLabelValues(kind).Inc()
}

// TrackError counts a failed run.
func (m *Metrics) TrackError(kind string) {
	if kind == "" {
		kind = "unknown"
	}
	m.Errors.WithLabelValues(kind).Inc()
}

// ObserveRunDuration records how long the run took.
func (m *Metrics) ObserveRunDuration(d time.Duration) {
	m.RunDuration.Set(d.Seconds())
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
