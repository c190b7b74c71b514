package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "buoy_fetch"

// Metrics holds the Prometheus counters, histograms, and gauges for one fetch run.
type Metrics struct {
	// Fetch metrics.
	FetchRequests *prometheus.CounterVec   // labels: report={stdmet,spectral}, outcome={success,error}
	FetchDuration *prometheus.HistogramVec // labels: report

	// Parse metrics.
	ParseResults *prometheus.CounterVec // labels: report, outcome={present,absent}
	AbsentFields *prometheus.CounterVec // labels: report, field

	// Output metrics.
	DocumentWrites  *prometheus.CounterVec // labels: outcome={success,error}
	PublishResults  *prometheus.CounterVec // labels: sink, outcome={success,error}
	RunDuration     prometheus.Gauge
	LastSuccessTime prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates all run metrics and registers them with a private registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	m.registry = prometheus.NewRegistry()
	m.registry.MustRegister(
		m.FetchRequests,
		m.FetchDuration,
		m.ParseResults,
		m.AbsentFields,
		m.DocumentWrites,
		m.PublishResults,
		m.RunDuration,
		m.LastSuccessTime,
	)
	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry so tests can
// build as many as they need and inspect them in isolation.
func NewMetricsForTesting() *Metrics {
	return NewMetrics()
}

// Registry exposes the registry the metrics are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes every registered metric to path in the Prometheus text
// exposition format, for node_exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

func newMetrics() *Metrics {
	return &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_requests_total",
			Help:      "NDBC report fetches by report and outcome.",
		}, []string{"report", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "NDBC report fetch duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"report"}),
		ParseResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_results_total",
			Help:      "Parsed reports by report and whether a record was produced.",
		}, []string{"report", "outcome"}),
		AbsentFields: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "absent_fields_total",
			Help:      "Fields written as null because they were missing or sentinel-filtered.",
		}, []string{"report", "field"}),
		DocumentWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_writes_total",
			Help:      "Output document writes by outcome.",
		}, []string{"outcome"}),
		PublishResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_results_total",
			Help:      "Secondary document publishes by sink and outcome.",
		}, []string{"sink", "outcome"}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of the last fetch-parse-write run.",
		}),
		LastSuccessTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful document write.",
		}),
	}
}
