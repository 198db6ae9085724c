// Package cmd provides CLI commands for the calan tool.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/mdomarsaleem1/calendar-analytics/config"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/ingest/batch"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/ingest/calendar"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/logging"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/model"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/observability"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/sample"
)

var (
	metricsOnce sync.Once
	metrics     *observability.AnalysisMetrics
)

// analysisMetrics returns the process-wide metrics set.
func analysisMetrics() *observability.AnalysisMetrics {
	metricsOnce.Do(func() {
		metrics = observability.DefaultAnalysisMetrics()
	})
	return metrics
}

// newRunLogger builds the logger for a command invocation. Debug mode
// lowers the level and mirrors entries to a log file in the config dir.
func newRunLogger(cfg *config.CLIConfig) logging.Logger {
	logCfg := logging.DefaultConfig()
	if cfg != nil && cfg.Debug {
		logCfg.Level = logging.LevelDebug
		if dir, err := config.ConfigDir(); err == nil {
			if writer, err := logging.NewFileWriter(filepath.Join(dir, "logs", "calan.log")); err == nil {
				logCfg.Sinks = []logging.Sink{logging.NewAsyncSink(logging.AsyncSinkConfig{Writer: writer})}
			}
		}
	}

	log := logging.NewLogger(logCfg)
	return log.With(logging.F("run_id", uuid.NewString()))
}

// outputJSON writes v to stdout as indented JSON.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputYAML writes v to stdout as YAML.
func outputYAML(v interface{}) error {
	enc := yaml.NewEncoder(os.Stdout)
	return enc.Encode(v)
}

// resolveOutputFormat returns the output format from flag or config.
func resolveOutputFormat(flagValue string, cfg *config.CLIConfig) config.OutputFormat {
	if flagValue != "" {
		return config.OutputFormat(flagValue)
	}
	if cfg != nil {
		return cfg.OutputFormat
	}
	return config.OutputFormatText
}

// collectCalendarFiles expands path into the calendar exports to load.
// A directory is scanned for *.json and *.csv files; owner emails are
// decoded from the file stems. A single file is returned as-is.
func collectCalendarFiles(path string) ([]batch.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("calendar path not found: %w", err)
	}

	if !info.IsDir() {
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return []batch.File{{Path: path, Owner: sample.EmailFromFileName(stem)}}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading calendar directory: %w", err)
	}

	var files []batch.File
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".json" && ext != ".csv" {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		files = append(files, batch.File{
			Path:  filepath.Join(path, entry.Name()),
			Owner: sample.EmailFromFileName(stem),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	if len(files) == 0 {
		return nil, fmt.Errorf("no calendar files (*.json, *.csv) found in %s", path)
	}
	return files, nil
}

// loadCalendarEvents loads every calendar file concurrently and merges the
// events, dropping duplicates of the same meeting seen in multiple
// calendars. The duplicate key is subject + start + organizer.
func loadCalendarEvents(ctx context.Context, loader *calendar.Loader, files []batch.File, log logging.Logger) ([]*model.Event, error) {
	m := analysisMetrics()

	result := batch.NewLoader(loader, log, batch.LoaderConfig{}).Load(ctx, files)
	if !result.Success {
		fe := result.Errors[0]
		return nil, fmt.Errorf("loading %s: %s", fe.FilePath, fe.Error)
	}

	var events []*model.Event
	seen := make(map[string]bool)
	deduped := 0

	for _, fr := range result.Files {
		format := strings.TrimPrefix(strings.ToLower(filepath.Ext(fr.File.Path)), ".")
		m.RecordCalendarLoaded(format, "ok")
		m.RecordEventsLoaded(format, len(fr.Events))
		m.RecordLoadWarnings(format, len(fr.Warnings))

		for _, warning := range fr.Warnings {
			log.Warn("calendar load warning", logging.F("file", filepath.Base(fr.File.Path)), logging.F("warning", warning))
		}

		for _, e := range fr.Events {
			key := e.Subject + "|" + e.Start.UTC().Format("2006-01-02T15:04:05") + "|" + strings.ToLower(e.OrganizerEmail)
			if seen[key] {
				deduped++
				continue
			}
			seen[key] = true
			events = append(events, e)
		}
	}

	m.RecordEventsDeduped(deduped)
	log.Info("calendars loaded",
		logging.F("files", len(files)),
		logging.F("events", len(events)),
		logging.F("duplicates_dropped", deduped))

	return events, nil
}

// firstEmailDomain returns the domain of the first employee email, used
// when no company domain is configured or present in the directory data.
func firstEmailDomain(org *model.Organization) string {
	emails := make([]string, 0, len(org.Employees))
	for email := range org.Employees {
		emails = append(emails, email)
	}
	sort.Strings(emails)
	for _, email := range emails {
		if at := strings.Index(email, "@"); at >= 0 {
			return email[at+1:]
		}
	}
	return ""
}
