// Package telemetry records per-search pipeline events to local Parquet
// files for offline analysis of query latency and data quality.
package telemetry

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/parquet-go/parquet-go"
)

// SearchEvent captures the outcome of one pipeline invocation.
type SearchEvent struct {
	RequestID       string    `parquet:"request_id"`
	Timestamp       time.Time `parquet:"timestamp"`
	Query           string    `parquet:"query"`
	ConstraintCount int       `parquet:"constraint_count"`
	CandidateCount  int       `parquet:"candidate_count"`
	DroppedCount    int       `parquet:"dropped_count"`
	ResultCount     int       `parquet:"result_count"`
	LatencyMillis   int64     `parquet:"latency_millis"`
	Outcome         string    `parquet:"outcome"`
}

// Recorder accepts search events. Implementations must be safe for
// concurrent use and must never fail the search path.
type Recorder interface {
	Record(event SearchEvent)
	Close() error
}

// NopRecorder discards all events.
type NopRecorder struct{}

func (NopRecorder) Record(SearchEvent) {}
func (NopRecorder) Close() error       { return nil }

// ParquetRecorder buffers events and flushes them to timestamped Parquet
// files in outputDir. Write failures are logged, never propagated.
type ParquetRecorder struct {
	outputDir string
	batchSize int
	logger    *slog.Logger

	mu     sync.Mutex
	buffer []SearchEvent
}

// NewParquetRecorder creates the output directory and returns a recorder
// flushing every batchSize events (100 when batchSize <= 0).
func NewParquetRecorder(outputDir string, batchSize int, logger *slog.Logger) (*ParquetRecorder, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create telemetry directory: %w", err)
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ParquetRecorder{
		outputDir: outputDir,
		batchSize: batchSize,
		logger:    logger,
		buffer:    make([]SearchEvent, 0, batchSize),
	}, nil
}

// Record buffers the event, flushing when the batch is full.
func (r *ParquetRecorder) Record(event SearchEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.buffer = append(r.buffer, event)
	if len(r.buffer) >= r.batchSize {
		r.flush()
	}
}

// Close flushes any buffered events.
func (r *ParquetRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flush()
	return nil
}

// flush writes the buffer to a new file. Caller must hold the lock.
func (r *ParquetRecorder) flush() {
	if len(r.buffer) == 0 {
		return
	}

	name := fmt.Sprintf("search_events_%s_%d.parquet", time.Now().Format("20060102_150405"), time.Now().UnixNano())
	path := filepath.Join(r.outputDir, name)

	if err := parquet.WriteFile(path, r.buffer); err != nil {
		r.logger.Error("failed to write telemetry parquet file", "path", path, "error", err)
		return
	}

	r.buffer = r.buffer[:0]
}
