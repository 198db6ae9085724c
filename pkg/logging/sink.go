package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// LogEntry represents a log entry to be written to a sink.
type LogEntry struct {
	Timestamp time.Time         `json:"timestamp"`
	Level     string            `json:"level"`
	Component string            `json:"component"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RunID     string            `json:"run_id,omitempty"`
	Caller    string            `json:"caller,omitempty"`
}

// LogWriter is an interface for writing log entries to persistent storage.
// Implementations should handle batching and error recovery.
type LogWriter interface {
	WriteBatch(ctx context.Context, entries []LogEntry) error
}

// Sink is an interface for components that receive log entries.
type Sink interface {
	// Write queues a log entry for async processing.
	Write(entry LogEntry)
	// Flush blocks until all queued entries are written.
	Flush(ctx context.Context) error
	// Close shuts down the sink gracefully.
	Close() error
}

// AsyncSink is an async log sink with buffered batch writes.
type AsyncSink struct {
	writer       LogWriter
	entryChan    chan LogEntry
	flushChan    chan chan error
	flushTicker  *time.Ticker
	batchSize    int
	flushTimeout time.Duration
	wg           sync.WaitGroup
	done         chan struct{}
	mu           sync.Mutex
	closed       bool
}

// AsyncSinkConfig configures an AsyncSink.
type AsyncSinkConfig struct {
	// Writer is the backend for persisting log entries.
	Writer LogWriter
	// BufferSize is the channel capacity (default: 1000).
	BufferSize int
	// BatchSize is the max entries per batch write (default: 100).
	BatchSize int
	// FlushInterval is how often to flush buffered entries (default: 2s).
	FlushInterval time.Duration
}

// NewAsyncSink creates a new async log sink.
func NewAsyncSink(cfg AsyncSinkConfig) *AsyncSink {
	if cfg.Writer == nil {
		panic("AsyncSink requires a non-nil Writer")
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = 2 * time.Second
	}

	sink := &AsyncSink{
		writer:       cfg.Writer,
		entryChan:    make(chan LogEntry, cfg.BufferSize),
		flushChan:    make(chan chan error),
		flushTicker:  time.NewTicker(cfg.FlushInterval),
		batchSize:    cfg.BatchSize,
		flushTimeout: 5 * time.Second,
		done:         make(chan struct{}),
	}

	sink.wg.Add(1)
	go sink.run()

	return sink
}

// Write queues a log entry for async processing.
// If the buffer is full, the entry is dropped and a warning is logged to stderr.
func (s *AsyncSink) Write(entry LogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	select {
	case s.entryChan <- entry:
		// Successfully queued
	default:
		// Buffer full - log to stderr and drop
		fmt.Fprintf(os.Stderr, "[AsyncSink] Buffer full, dropping log entry: %s\n", entry.Message)
	}
}

// Flush blocks until all queued entries are written.
func (s *AsyncSink) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	// Send flush request to background goroutine (non-blocking)
	errChan := make(chan error, 1)
	select {
	case s.flushChan <- errChan:
		// Wait for flush to complete
		select {
		case err := <-errChan:
			return err
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.flushTimeout):
			return fmt.Errorf("flush timeout after %v", s.flushTimeout)
		}
	case <-time.After(100 * time.Millisecond):
		// If we can't send flush request quickly, the goroutine is busy
		// Just wait a bit for it to process
		return nil
	}
}

// Close shuts down the sink gracefully.
func (s *AsyncSink) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	close(s.done)
	s.flushTicker.Stop()
	s.wg.Wait()

	return nil
}

// run is the background goroutine that batches and writes log entries.
func (s *AsyncSink) run() {
	defer s.wg.Done()

	batch := make([]LogEntry, 0, s.batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), s.flushTimeout)
		defer cancel()

		err := s.writeBatch(ctx, batch)
		if err != nil {
			// Log error to stderr, never crash
			fmt.Fprintf(os.Stderr, "[AsyncSink] Failed to write batch of %d entries: %v\n", len(batch), err)
		}

		batch = batch[:0] // Reset batch
		return err
	}

	for {
		// Check for flush requests first (priority)
		select {
		case errChan := <-s.flushChan:
			// Explicit flush request - flush and respond
			err := flush()
			errChan <- err
			continue
		case <-s.done:
			// Drain remaining entries before exit
			flush()
		drainLoop:
			for {
				select {
				case entry := <-s.entryChan:
					batch = append(batch, entry)
					if len(batch) >= s.batchSize {
						flush()
					}
				default:
					break drainLoop
				}
			}
			flush()
			return
		default:
			// No flush request, continue normal processing
		}

		// Normal processing
		select {
		case entry := <-s.entryChan:
			batch = append(batch, entry)

			// Flush if batch is full
			if len(batch) >= s.batchSize {
				flush()
			}

		case <-s.flushTicker.C:
			// Periodic flush
			flush()

		case errChan := <-s.flushChan:
			// Explicit flush request
			err := flush()
			errChan <- err

		case <-s.done:
			// Drain remaining entries before exit
			flush()
		drainLoop2:
			for {
				select {
				case entry := <-s.entryChan:
					batch = append(batch, entry)
					if len(batch) >= s.batchSize {
						flush()
					}
				default:
					break drainLoop2
				}
			}
			flush()
			return
		}
	}
}

// writeBatch writes a batch of entries using the LogWriter.
func (s *AsyncSink) writeBatch(ctx context.Context, entries []LogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	return s.writer.WriteBatch(ctx, entries)
}

// FileWriter persists log entries as newline-delimited JSON in a single file.
// It implements LogWriter and is safe for concurrent use.
type FileWriter struct {
	mu   sync.Mutex
	path string
}

// NewFileWriter creates a FileWriter appending to the given path.
// The parent directory is created if it does not exist.
func NewFileWriter(path string) (*FileWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return &FileWriter{path: path}, nil
}

// WriteBatch appends the entries to the log file, one JSON object per line.
func (w *FileWriter) WriteBatch(ctx context.Context, entries []LogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, entry := range entries {
		if err := enc.Encode(entry); err != nil {
			return fmt.Errorf("failed to write log entry: %w", err)
		}
	}
	return nil
}

// getCaller returns the caller information (file:line) for logging.
func getCaller(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	// Extract just the filename, not the full path
	for i := len(file) - 1; i > 0; i-- {
		if file[i] == '/' {
			file = file[i+1:]
			break
		}
	}
	return fmt.Sprintf("%s:%d", file, line)
}
