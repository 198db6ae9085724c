package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestAnalysisMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewAnalysisMetrics(reg)

	// Ingest metrics
	metrics.RecordCalendarLoaded("json", "ok")
	metrics.RecordCalendarLoaded("csv", "error")
	metrics.RecordEventsLoaded("json", 42)
	metrics.RecordLoadWarnings("json", 3)
	metrics.RecordEventsDeduped(7)

	// Analysis metrics
	metrics.RecordAnalysis("org", "ok", 0.25)
	metrics.RecordAnalysis("individual", "ok", 0.05)
	metrics.RecordEventsAnalyzed(42)
	metrics.SetDirectorySize(120)

	// Report metrics
	metrics.RecordReportGenerated("markdown")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	expectedMetrics := map[string]bool{
		"calan_calendars_loaded_total":  false,
		"calan_events_loaded_total":     false,
		"calan_load_warnings_total":     false,
		"calan_events_deduped_total":    false,
		"calan_analyses_total":          false,
		"calan_analysis_seconds":        false,
		"calan_events_analyzed":         false,
		"calan_directory_employees":     false,
		"calan_reports_generated_total": false,
	}

	for _, fam := range families {
		if _, ok := expectedMetrics[fam.GetName()]; ok {
			expectedMetrics[fam.GetName()] = true
		}
	}

	for name, found := range expectedMetrics {
		if !found {
			t.Errorf("Metric %s not found in registry", name)
		}
	}
}

func TestAnalysisMetrics_Values(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewAnalysisMetrics(reg)

	metrics.RecordEventsLoaded("json", 10)
	metrics.RecordEventsLoaded("json", 5)
	metrics.RecordEventsDeduped(2)
	metrics.SetDirectorySize(46)

	if got := testutil.ToFloat64(metrics.EventsLoadedTotal.WithLabelValues("json")); got != 15 {
		t.Errorf("calan_events_loaded_total{format=json} = %v, want 15", got)
	}
	if got := testutil.ToFloat64(metrics.EventsDedupedTotal); got != 2 {
		t.Errorf("calan_events_deduped_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.DirectorySize); got != 46 {
		t.Errorf("calan_directory_employees = %v, want 46", got)
	}
}
