package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "prelev"

// Pipeline label values.
const (
	PipelineAggregate = "aggregate"
	PipelineCalendar  = "calendar"
	PipelineChart     = "chart"
	PipelineFrequency = "frequency"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the transforms.
type Metrics struct {
	SkippedRecords    *prometheus.CounterVec   // labels: pipeline
	TransformDuration *prometheus.HistogramVec // labels: pipeline
	ToolCalls         *prometheus.CounterVec   // labels: tool, outcome={success,error}
	RegistryEntries   prometheus.Gauge

	gatherer prometheus.Gatherer
}

func newMetrics() *Metrics {
	return &Metrics{
		SkippedRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_records_total",
			Help:      "Records dropped because their date or time could not be parsed.",
		}, []string{"pipeline"}),
		TransformDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transform_duration_seconds",
			Help:      "Duration of one transform call.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"pipeline"}),
		ToolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "MCP tool calls by tool and outcome.",
		}, []string{"tool", "outcome"}),
		RegistryEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "registry_entries",
			Help:      "Number of aggregated series held in the registry.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.SkippedRecords, m.TransformDuration, m.ToolCalls, m.RegistryEntries}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	m.gatherer = prometheus.DefaultGatherer
	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	m := newMetrics()
	reg := prometheus.NewRegistry()
	reg.MustRegister(m.collectors()...)
	m.gatherer = reg
	return m
}

// Gatherer returns the registry the metrics were registered with.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.gatherer
}

// Skipped counts one dropped record. Safe on a nil receiver.
func (m *Metrics) Skipped(pipeline string) {
	if m == nil {
		return
	}
	m.SkippedRecords.WithLabelValues(pipeline).Inc()
}

// ObserveSince records the duration of a transform started at start. Safe on a nil receiver.
func (m *Metrics) ObserveSince(pipeline string, start time.Time) {
	if m == nil {
		return
	}
	m.TransformDuration.WithLabelValues(pipeline).Observe(time.Since(start).Seconds())
}

// ToolCall counts one MCP tool call. Safe on a nil receiver.
func (m *Metrics) ToolCall(tool string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.ToolCalls.WithLabelValues(tool, outcome).Inc()
}

// SetRegistryEntries reports the registry size. Safe on a nil receiver.
func (m *Metrics) SetRegistryEntries(n int) {
	if m == nil {
		return
	}
	m.RegistryEntries.Set(float64(n))
}
