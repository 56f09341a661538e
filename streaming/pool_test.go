package streaming

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolAcquireRelease(t *testing.T) {
	pool := NewBufferPool(1024, 44100, 4)

	buf, ok := pool.Acquire()
	require.True(t, ok)
	require.NotNil(t, buf)
	assert.Equal(t, StateAcquired, buf.State())
	assert.Equal(t, 1, pool.TrackedCount())
	assert.Equal(t, int64(1024*8), pool.MemoryUsage())

	pool.Release(buf)
	assert.Equal(t, StateReleased, buf.State())
	assert.Equal(t, 1, pool.FreeCount())
	// Release keeps the buffer tracked and charged
	assert.Equal(t, int64(1024*8), pool.MemoryUsage())
}

func TestPoolReusesReleasedBuffers(t *testing.T) {
	pool := NewBufferPool(1024, 44100, 4)

	buf, _ := pool.Acquire()
	pool.Release(buf)

	again, ok := pool.Acquire()
	require.True(t, ok)
	assert.Same(t, buf, again)

	allocations, reuses, _ := pool.Counters()
	assert.Equal(t, uint64(1), allocations)
	assert.Equal(t, uint64(1), reuses)
}

func TestPoolSaturationRejects(t *testing.T) {
	pool := NewBufferPool(1024, 44100, 2)

	a, ok := pool.Acquire()
	require.True(t, ok)
	b, ok := pool.Acquire()
	require.True(t, ok)

	// Saturated: backpressure, not an error
	c, ok := pool.Acquire()
	assert.False(t, ok)
	assert.Nil(t, c)

	_, _, misses := pool.Counters()
	assert.Equal(t, uint64(1), misses)

	pool.Release(a)
	pool.Release(b)
}

func TestPoolBoundsUnderInterleavedCycles(t *testing.T) {
	const maxBuffers = 5
	pool := NewBufferPool(512, 44100, maxBuffers)
	ceiling := int64(maxBuffers) * pool.BufferSizeBytes()

	var held []*SampleBuffer
	for i := 0; i < 100; i++ {
		if buf, ok := pool.Acquire(); ok {
			held = append(held, buf)
		}

		// Release in bursts to interleave
		if i%3 == 0 {
			for _, buf := range held {
				pool.Release(buf)
			}
			held = nil
		}

		assert.LessOrEqual(t, pool.FreeCount(), maxBuffers)
		assert.LessOrEqual(t, pool.TrackedCount(), maxBuffers)
		assert.LessOrEqual(t, pool.MemoryUsage(), ceiling)
	}
}

func TestPoolReleaseAllOrphansInFlight(t *testing.T) {
	pool := NewBufferPool(1024, 44100, 4)

	inFlight, ok := pool.Acquire()
	require.True(t, ok)
	pooled, ok := pool.Acquire()
	require.True(t, ok)
	pool.Release(pooled)

	pool.ReleaseAll()
	assert.Equal(t, int64(0), pool.MemoryUsage())
	assert.Equal(t, 0, pool.FreeCount())
	assert.Equal(t, 0, pool.TrackedCount())

	// The in-flight buffer is now orphaned: its release is a no-op,
	// not a crash, and it does not re-enter the pool
	pool.Release(inFlight)
	assert.Equal(t, 0, pool.FreeCount())
	assert.Equal(t, int64(0), pool.MemoryUsage())
}

func TestPoolReleaseForeignBufferIgnored(t *testing.T) {
	pool := NewBufferPool(1024, 44100, 4)
	other := NewBufferPool(1024, 44100, 4)

	foreign, ok := other.Acquire()
	require.True(t, ok)

	pool.Release(foreign)
	assert.Equal(t, 0, pool.FreeCount())
	pool.Release(nil)
	assert.Equal(t, 0, pool.FreeCount())
}

func TestPoolEvictOldestFree(t *testing.T) {
	pool := NewBufferPool(1024, 44100, 4)

	a, _ := pool.Acquire()
	time.Sleep(2 * time.Millisecond)
	b, _ := pool.Acquire()
	pool.Release(a)
	pool.Release(b)

	require.True(t, pool.EvictOldestFree())
	assert.Equal(t, 1, pool.FreeCount())
	assert.Equal(t, 1, pool.TrackedCount())
	assert.Equal(t, pool.BufferSizeBytes(), pool.MemoryUsage())

	// The survivor is the more recently used buffer
	survivor, ok := pool.Acquire()
	require.True(t, ok)
	assert.Same(t, b, survivor)

	// Free list is empty now
	assert.False(t, pool.EvictOldestFree())
}

func TestPoolEvictIdle(t *testing.T) {
	pool := NewBufferPool(1024, 44100, 4)

	a, _ := pool.Acquire()
	pool.Release(a)

	// Nothing is older than an hour
	assert.Equal(t, 0, pool.EvictIdle(time.Hour))
	assert.Equal(t, 1, pool.FreeCount())

	// Everything is older than zero
	time.Sleep(time.Millisecond)
	assert.Equal(t, 1, pool.EvictIdle(0))
	assert.Equal(t, 0, pool.FreeCount())
	assert.Equal(t, int64(0), pool.MemoryUsage())
}

func TestBufferCopyFromSetsFrameLength(t *testing.T) {
	pool := NewBufferPool(8, 44100, 1)
	buf, _ := pool.Acquire()

	buf.CopyFrom([]float64{1, 2, 3})
	assert.Equal(t, 3, buf.FrameLength())
	assert.Equal(t, []float64{1, 2, 3}, buf.Samples())

	// Oversized input truncates to capacity
	buf.CopyFrom(make([]float64, 20))
	assert.Equal(t, 8, buf.FrameLength())
}

func TestBufferDuration(t *testing.T) {
	pool := NewBufferPool(44100, 44100, 1)
	buf, _ := pool.Acquire()
	buf.CopyFrom(make([]float64, 44100))

	assert.Equal(t, time.Second, buf.Duration())
}
