package streaming

import (
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"
)

// AnalysisStatistics is a read-only snapshot of pipeline performance,
// exposed to observability tooling
type AnalysisStatistics struct {
	Processed uint64 `json:"processed"` // Buffers analyzed since creation
	Rejected  uint64 `json:"rejected"`  // Admissions refused (backpressure)

	AverageProcessing time.Duration `json:"average_processing"` // Over the rolling window
	PeakProcessing    time.Duration `json:"peak_processing"`

	CurrentMemory int64 `json:"current_memory"` // Bytes tracked by the pool
	PeakMemory    int64 `json:"peak_memory"`

	Allocations uint64 `json:"allocations"` // Pool buffer allocations
	Reuses      uint64 `json:"reuses"`      // Pool free-list hits
	Misses      uint64 `json:"misses"`      // Pool saturation rejections

	Load float64 `json:"load"` // Most recent processing-time / buffer-duration ratio
}

// PerformanceTracker keeps a rolling window of processing durations and
// memory readings. Historical counters (processed, rejected, peaks)
// survive a ResetActive; the rolling window and current readings do
// not.
type PerformanceTracker struct {
	mu     sync.Mutex
	window int

	durations   []float64 // seconds, rolling
	memReadings []int64   // rolling

	processed uint64
	rejected  uint64

	peakProcessing time.Duration
	peakMemory     int64
	currentMemory  int64
	lastLoad       float64
}

// NewPerformanceTracker creates a tracker with the given rolling-window
// capacity
func NewPerformanceTracker(windowSize int) *PerformanceTracker {
	if windowSize < 1 {
		windowSize = 1
	}
	return &PerformanceTracker{
		window: windowSize,
	}
}

// RecordProcessing records one completed analysis
func (t *PerformanceTracker) RecordProcessing(elapsed time.Duration, memory int64, load float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.processed++
	t.lastLoad = load
	t.currentMemory = memory

	if elapsed > t.peakProcessing {
		t.peakProcessing = elapsed
	}
	if memory > t.peakMemory {
		t.peakMemory = memory
	}

	t.durations = append(t.durations, elapsed.Seconds())
	if len(t.durations) > t.window {
		t.durations = t.durations[1:]
	}
	t.memReadings = append(t.memReadings, memory)
	if len(t.memReadings) > t.window {
		t.memReadings = t.memReadings[1:]
	}
}

// RecordRejection records one refused admission
func (t *PerformanceTracker) RecordRejection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rejected++
}

// ResetActive clears the rolling window and current readings. The
// historical counters and peaks persist.
func (t *PerformanceTracker) ResetActive() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.durations = nil
	t.memReadings = nil
	t.currentMemory = 0
	t.lastLoad = 0
}

// Snapshot returns the current statistics merged with the given pool
// counters
func (t *PerformanceTracker) Snapshot(allocations, reuses, misses uint64) AnalysisStatistics {
	t.mu.Lock()
	defer t.mu.Unlock()

	var avg time.Duration
	if len(t.durations) > 0 {
		avg = time.Duration(stat.Mean(t.durations, nil) * float64(time.Second))
	}

	return AnalysisStatistics{
		Processed:         t.processed,
		Rejected:          t.rejected,
		AverageProcessing: avg,
		PeakProcessing:    t.peakProcessing,
		CurrentMemory:     t.currentMemory,
		PeakMemory:        t.peakMemory,
		Allocations:       allocations,
		Reuses:            reuses,
		Misses:            misses,
		Load:              t.lastLoad,
	}
}
