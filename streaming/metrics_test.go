package streaming

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrackerRecordsProcessing(t *testing.T) {
	tracker := NewPerformanceTracker(16)

	tracker.RecordProcessing(10*time.Millisecond, 1024, 0.1)
	tracker.RecordProcessing(30*time.Millisecond, 2048, 0.3)

	stats := tracker.Snapshot(5, 3, 1)
	assert.Equal(t, uint64(2), stats.Processed)
	assert.Equal(t, uint64(0), stats.Rejected)
	assert.InDelta(t, (20 * time.Millisecond).Seconds(), stats.AverageProcessing.Seconds(), 1e-6)
	assert.Equal(t, 30*time.Millisecond, stats.PeakProcessing)
	assert.Equal(t, int64(2048), stats.CurrentMemory)
	assert.Equal(t, int64(2048), stats.PeakMemory)
	assert.Equal(t, 0.3, stats.Load)

	assert.Equal(t, uint64(5), stats.Allocations)
	assert.Equal(t, uint64(3), stats.Reuses)
	assert.Equal(t, uint64(1), stats.Misses)
}

func TestTrackerRecordsRejections(t *testing.T) {
	tracker := NewPerformanceTracker(16)

	for i := 0; i < 3; i++ {
		tracker.RecordRejection()
	}

	stats := tracker.Snapshot(0, 0, 0)
	assert.Equal(t, uint64(3), stats.Rejected)
	assert.Equal(t, uint64(0), stats.Processed)
}

func TestTrackerRollingWindow(t *testing.T) {
	tracker := NewPerformanceTracker(2)

	// The 100ms reading falls out of the window; only the last two count
	tracker.RecordProcessing(100*time.Millisecond, 0, 0)
	tracker.RecordProcessing(10*time.Millisecond, 0, 0)
	tracker.RecordProcessing(20*time.Millisecond, 0, 0)

	stats := tracker.Snapshot(0, 0, 0)
	assert.InDelta(t, (15 * time.Millisecond).Seconds(), stats.AverageProcessing.Seconds(), 1e-6)
	// Peak is historical, not windowed
	assert.Equal(t, 100*time.Millisecond, stats.PeakProcessing)
}

func TestTrackerResetActiveKeepsHistory(t *testing.T) {
	tracker := NewPerformanceTracker(16)

	tracker.RecordProcessing(40*time.Millisecond, 4096, 0.5)
	tracker.RecordRejection()
	tracker.ResetActive()

	stats := tracker.Snapshot(0, 0, 0)
	assert.Equal(t, uint64(1), stats.Processed)
	assert.Equal(t, uint64(1), stats.Rejected)
	assert.Equal(t, 40*time.Millisecond, stats.PeakProcessing)
	assert.Equal(t, int64(4096), stats.PeakMemory)

	assert.Equal(t, time.Duration(0), stats.AverageProcessing)
	assert.Equal(t, int64(0), stats.CurrentMemory)
	assert.Equal(t, 0.0, stats.Load)
}

func TestTrackerEmptySnapshot(t *testing.T) {
	stats := NewPerformanceTracker(16).Snapshot(0, 0, 0)
	assert.Equal(t, AnalysisStatistics{}, stats)
}
