// Package observability provides Prometheus metrics for the calendar
// analysis pipeline.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AnalysisMetrics holds all Prometheus metrics for ingest and analysis.
type AnalysisMetrics struct {
	// Ingest metrics
	CalendarsLoadedTotal *prometheus.CounterVec
	EventsLoadedTotal    *prometheus.CounterVec
	LoadWarningsTotal    *prometheus.CounterVec
	EventsDedupedTotal   prometheus.Counter

	// Analysis metrics
	AnalysesTotal    *prometheus.CounterVec
	AnalysisSeconds  *prometheus.HistogramVec
	EventsAnalyzed   prometheus.Histogram
	DirectorySize    prometheus.Gauge

	// Report metrics
	ReportsGeneratedTotal *prometheus.CounterVec
}

// DefaultAnalysisMetrics creates metrics registered on the default registerer.
func DefaultAnalysisMetrics() *AnalysisMetrics {
	return NewAnalysisMetrics(prometheus.DefaultRegisterer)
}

// NewAnalysisMetrics creates a new set of analysis metrics.
func NewAnalysisMetrics(reg prometheus.Registerer) *AnalysisMetrics {
	factory := promauto.With(reg)

	return &AnalysisMetrics{
		// Ingest metrics
		CalendarsLoadedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calan_calendars_loaded_total",
				Help: "Total calendar files loaded",
			},
			[]string{"format", "status"},
		),
		EventsLoadedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calan_events_loaded_total",
				Help: "Total events parsed from calendar files",
			},
			[]string{"format"},
		),
		LoadWarningsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calan_load_warnings_total",
				Help: "Total rows or events skipped with warnings during load",
			},
			[]string{"format"},
		),
		EventsDedupedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "calan_events_deduped_total",
				Help: "Total duplicate events dropped across calendars",
			},
		),

		// Analysis metrics
		AnalysesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calan_analyses_total",
				Help: "Total analyses run",
			},
			[]string{"scope", "status"},
		),
		AnalysisSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "calan_analysis_seconds",
				Help:    "Analysis latency per scope",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"scope"},
		),
		EventsAnalyzed: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "calan_events_analyzed",
				Help:    "Number of events per analysis run",
				Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000},
			},
		),
		DirectorySize: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "calan_directory_employees",
				Help: "Employees in the loaded directory",
			},
		),

		// Report metrics
		ReportsGeneratedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calan_reports_generated_total",
				Help: "Total reports generated by format",
			},
			[]string{"format"},
		),
	}
}

// RecordCalendarLoaded records a calendar file load attempt.
func (m *AnalysisMetrics) RecordCalendarLoaded(format, status string) {
	m.CalendarsLoadedTotal.WithLabelValues(format, status).Inc()
}

// RecordEventsLoaded records events parsed from a calendar file.
func (m *AnalysisMetrics) RecordEventsLoaded(format string, count int) {
	m.EventsLoadedTotal.WithLabelValues(format).Add(float64(count))
}

// RecordLoadWarnings records skipped rows or events during load.
func (m *AnalysisMetrics) RecordLoadWarnings(format string, count int) {
	m.LoadWarningsTotal.WithLabelValues(format).Add(float64(count))
}

// RecordEventsDeduped records duplicate events dropped.
func (m *AnalysisMetrics) RecordEventsDeduped(count int) {
	m.EventsDedupedTotal.Add(float64(count))
}

// RecordAnalysis records a completed analysis with its duration.
func (m *AnalysisMetrics) RecordAnalysis(scope, status string, seconds float64) {
	m.AnalysesTotal.WithLabelValues(scope, status).Inc()
	m.AnalysisSeconds.WithLabelValues(scope).Observe(seconds)
}

// RecordEventsAnalyzed records the event count of an analysis run.
func (m *AnalysisMetrics) RecordEventsAnalyzed(count int) {
	m.EventsAnalyzed.Observe(float64(count))
}

// SetDirectorySize sets the employee count of the loaded directory.
func (m *AnalysisMetrics) SetDirectorySize(count int) {
	m.DirectorySize.Set(float64(count))
}

// RecordReportGenerated records a generated report.
func (m *AnalysisMetrics) RecordReportGenerated(format string) {
	m.ReportsGeneratedTotal.WithLabelValues(format).Inc()
}
