package batch

import (
	"context"
	"sync"
	"time"

	"github.com/mdomarsaleem1/calendar-analytics/pkg/ingest/calendar"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/logging"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/model"
)

// DefaultConcurrency is the default number of concurrent workers.
const DefaultConcurrency = 4

// LoaderConfig configures the batch loader.
type LoaderConfig struct {
	// Concurrency is the number of worker goroutines.
	Concurrency int
}

// File is one calendar export to load, with the owner's email decoded
// from the file name.
type File struct {
	Path  string
	Owner string
}

// FileResult is the outcome of loading a single calendar file. Events is
// nil when Err is set. Skipped marks files not attempted after a context
// cancellation.
type FileResult struct {
	File     File
	Events   []*model.Event
	Warnings []string
	Err      error
	Skipped  bool
}

// FileError records an error for a specific file.
type FileError struct {
	FilePath string
	Error    string
}

// Result contains the outcome of a batch load. Files holds one entry per
// input file in input order.
type Result struct {
	TotalFiles   int
	LoadedCount  int
	SkippedCount int
	FailedCount  int
	Files        []FileResult
	Errors       []FileError
	StartedAt    time.Time
	CompletedAt  time.Time
	Success      bool
}

// Loader loads many calendar exports with a worker pool.
type Loader struct {
	cfg      LoaderConfig
	cal      *calendar.Loader
	logger   logging.Logger
	progress *Progress
}

// NewLoader creates a batch loader around a calendar loader.
func NewLoader(cal *calendar.Loader, logger logging.Logger, cfg LoaderConfig) *Loader {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Loader{
		cfg:    cfg,
		cal:    cal,
		logger: logger.With(logging.F("component", "batch_loader")),
	}
}

// Load loads every file. Failures are recorded per file rather than
// aborting the batch; files not attempted after a context cancellation
// count as skipped.
func (l *Loader) Load(ctx context.Context, files []File) *Result {
	result := &Result{
		TotalFiles: len(files),
		Files:      make([]FileResult, len(files)),
		StartedAt:  time.Now(),
	}
	if len(files) == 0 {
		result.CompletedAt = time.Now()
		result.Success = true
		return result
	}

	l.progress = NewProgress(len(files))
	l.progress.Start()

	if l.cfg.Concurrency == 1 {
		l.loadSequential(ctx, files, result)
	} else {
		l.loadParallel(ctx, files, result)
	}

	for i := range result.Files {
		fr := &result.Files[i]
		switch {
		case fr.Err != nil:
			result.FailedCount++
			result.Errors = append(result.Errors, FileError{FilePath: fr.File.Path, Error: fr.Err.Error()})
		case fr.Skipped:
			result.SkippedCount++
		default:
			result.LoadedCount++
		}
	}

	result.CompletedAt = time.Now()
	result.Success = result.FailedCount == 0
	l.progress.Complete(result.Success)

	return result
}

// Progress returns the current progress tracker. Nil before Load starts.
func (l *Loader) Progress() *Progress {
	return l.progress
}

// loadSequential loads files one at a time.
func (l *Loader) loadSequential(ctx context.Context, files []File, result *Result) {
	for i, file := range files {
		if ctx.Err() != nil {
			l.progress.RecordSkipped()
			result.Files[i] = FileResult{File: file, Skipped: true}
			continue
		}
		l.progress.SetCurrentFile(file.Path)
		result.Files[i] = l.loadFile(file)
	}
}

// loadParallel loads files using a worker pool.
func (l *Loader) loadParallel(ctx context.Context, files []File, result *Result) {
	type job struct {
		index int
		file  File
	}
	jobsCh := make(chan job, len(files))

	var wg sync.WaitGroup
	for i := 0; i < l.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobsCh {
				if ctx.Err() != nil {
					l.progress.RecordSkipped()
					result.Files[j.index] = FileResult{File: j.file, Skipped: true}
					continue
				}
				l.progress.SetCurrentFile(j.file.Path)
				result.Files[j.index] = l.loadFile(j.file)
			}
		}()
	}

	for i, file := range files {
		jobsCh <- job{index: i, file: file}
	}
	close(jobsCh)
	wg.Wait()
}

// loadFile loads a single calendar export and records the outcome.
func (l *Loader) loadFile(file File) FileResult {
	loaded, err := l.cal.LoadFile(file.Path, file.Owner)
	if err != nil {
		l.logger.Error("failed to load calendar", logging.Err(err), logging.F("file", file.Path))
		l.progress.RecordFailed()
		return FileResult{File: file, Err: err}
	}

	l.logger.Debug("calendar loaded",
		logging.F("file", file.Path),
		logging.F("owner", file.Owner),
		logging.F("events", len(loaded.Events)))
	l.progress.RecordLoaded()
	return FileResult{File: file, Events: loaded.Events, Warnings: loaded.Warnings}
}
