package streaming

import (
	"sync"
	"time"

	"github.com/mixtape-labs/moodcore/logging"
)

// BufferPool is a fixed-capacity pool of reusable sample buffers. It
// hands out and reclaims buffers so the audio path never allocates per
// callback.
//
// All mutations happen under a single mutex with O(1) critical
// sections. A buffer on the free list is never referenced by an
// in-flight analysis; the tracked set covers both free and in-flight
// buffers and backs the total-memory counter used for admission
// control.
type BufferPool struct {
	mu         sync.Mutex
	free       []*SampleBuffer
	tracked    map[*SampleBuffer]struct{}
	memoryUsed int64

	capacity   int // samples per buffer
	sampleRate int
	maxBuffers int

	allocations uint64
	reuses      uint64
	misses      uint64

	logger logging.Logger
}

// NewBufferPool creates a pool of buffers holding capacity samples
// each, with at most maxBuffers tracked at once
func NewBufferPool(capacity, sampleRate, maxBuffers int) *BufferPool {
	return &BufferPool{
		tracked:    make(map[*SampleBuffer]struct{}),
		capacity:   capacity,
		sampleRate: sampleRate,
		maxBuffers: maxBuffers,
		logger: logging.WithFields(logging.Fields{
			"component":   "buffer_pool",
			"capacity":    capacity,
			"max_buffers": maxBuffers,
		}),
	}
}

// Acquire returns a buffer for exclusive use, or (nil, false) when the
// pool is saturated. Saturation is a designed backpressure signal, not
// a fault: callers drop the frame and move on. Never blocks beyond the
// pool mutex.
func (p *BufferPool) Acquire() (*SampleBuffer, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n := len(p.free); n > 0 {
		buf := p.free[n-1]
		p.free = p.free[:n-1]
		buf.touch()
		buf.state = StateAcquired
		p.reuses++
		return buf, true
	}

	if len(p.tracked) < p.maxBuffers {
		buf := newSampleBuffer(p.capacity, p.sampleRate)
		p.tracked[buf] = struct{}{}
		p.memoryUsed += buf.sizeBytes()
		buf.touch()
		buf.state = StateAcquired
		p.allocations++
		return buf, true
	}

	p.misses++
	return nil, false
}

// Release returns a buffer to the free list. Contents are not zeroed;
// the next acquirer must not assume zeroed memory. Releasing a buffer
// the pool does not track (a caller bug, or a buffer orphaned by
// ReleaseAll) is a no-op.
func (p *BufferPool) Release(buf *SampleBuffer) {
	if buf == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.tracked[buf]; !ok {
		// Orphaned by ReleaseAll, or never ours. Discard.
		p.logger.Warn("Release of untracked buffer ignored")
		return
	}

	buf.state = StateReleased
	p.free = append(p.free, buf)
}

// ReleaseAll empties the free list and drops tracking of every buffer,
// in-flight ones included. Safe to call concurrently with acquisitions:
// in-flight buffers are simply discarded when their owners release
// them. Memory usage is zero afterward.
func (p *BufferPool) ReleaseAll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.free = nil
	p.tracked = make(map[*SampleBuffer]struct{})
	p.memoryUsed = 0
}

// MemoryUsage returns the total bytes charged for tracked buffers
func (p *BufferPool) MemoryUsage() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.memoryUsed
}

// BufferSizeBytes returns the memory cost of one pooled buffer
func (p *BufferPool) BufferSizeBytes() int64 {
	return int64(p.capacity) * 8
}

// FreeCount returns the number of buffers on the free list
func (p *BufferPool) FreeCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// TrackedCount returns the number of buffers charged to the pool
func (p *BufferPool) TrackedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.tracked)
}

// EvictOldestFree drops the least recently used free buffer from the
// pool entirely, freeing its memory charge. Returns false when the free
// list is empty.
func (p *BufferPool) EvictOldestFree() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	oldest := -1
	for i, buf := range p.free {
		if oldest == -1 || buf.lastUsed.Before(p.free[oldest].lastUsed) {
			oldest = i
		}
	}
	if oldest == -1 {
		return false
	}

	buf := p.free[oldest]
	p.free = append(p.free[:oldest], p.free[oldest+1:]...)
	delete(p.tracked, buf)
	p.memoryUsed -= buf.sizeBytes()
	return true
}

// EvictIdle drops every free buffer that has not been used within
// maxAge. Returns the number evicted.
func (p *BufferPool) EvictIdle(maxAge time.Duration) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	kept := p.free[:0]
	evicted := 0

	for _, buf := range p.free {
		if buf.lastUsed.Before(cutoff) {
			delete(p.tracked, buf)
			p.memoryUsed -= buf.sizeBytes()
			evicted++
		} else {
			kept = append(kept, buf)
		}
	}
	p.free = kept

	if evicted > 0 {
		p.logger.Debug("Evicted idle buffers", logging.Fields{"count": evicted})
	}
	return evicted
}

// Counters returns the allocation, reuse and miss counts since the pool
// was created
func (p *BufferPool) Counters() (allocations, reuses, misses uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.allocations, p.reuses, p.misses
}
