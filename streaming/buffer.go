package streaming

import (
	"time"
)

// BufferState tracks where a buffer is in its processing lifecycle:
// Idle -> Acquired -> Analyzing -> Completed -> Released, with Rejected
// as a terminal state reachable directly from Idle when admission
// fails.
type BufferState int

const (
	StateIdle BufferState = iota
	StateAcquired
	StateAnalyzing
	StateCompleted
	StateReleased
	StateRejected
)

func (s BufferState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAcquired:
		return "acquired"
	case StateAnalyzing:
		return "analyzing"
	case StateCompleted:
		return "completed"
	case StateReleased:
		return "released"
	case StateRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// SampleBuffer owns a fixed-capacity block of audio samples. A buffer
// is acquired exclusively by one in-flight analysis at a time and never
// aliased across concurrent analyses; outside the pool's lock only its
// current owner touches it.
type SampleBuffer struct {
	samples     []float64
	sampleRate  int
	frameLength int
	lastUsed    time.Time
	state       BufferState
}

func newSampleBuffer(capacity, sampleRate int) *SampleBuffer {
	return &SampleBuffer{
		samples:    make([]float64, capacity),
		sampleRate: sampleRate,
		lastUsed:   time.Now(),
		state:      StateIdle,
	}
}

// CopyFrom fills the buffer from the given samples and sets the frame
// length to the number copied. Contents beyond the frame length are
// whatever the previous user left there; the pool does not zero
// released buffers.
func (b *SampleBuffer) CopyFrom(samples []float64) {
	n := copy(b.samples, samples)
	b.frameLength = n
}

// Samples returns the active frame: the first FrameLength samples
func (b *SampleBuffer) Samples() []float64 {
	return b.samples[:b.frameLength]
}

// FrameLength returns the number of valid samples in the buffer
func (b *SampleBuffer) FrameLength() int {
	return b.frameLength
}

// SampleRate returns the buffer's sample rate in Hz
func (b *SampleBuffer) SampleRate() int {
	return b.sampleRate
}

// Duration returns the real-time duration of the active frame
func (b *SampleBuffer) Duration() time.Duration {
	if b.sampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(b.frameLength) / float64(b.sampleRate) * float64(time.Second))
}

// LastUsed returns when the buffer was last acquired
func (b *SampleBuffer) LastUsed() time.Time {
	return b.lastUsed
}

// State returns the buffer's lifecycle state
func (b *SampleBuffer) State() BufferState {
	return b.state
}

func (b *SampleBuffer) touch() {
	b.lastUsed = time.Now()
}

// sizeBytes is the memory charged against the pool's tracked total
func (b *SampleBuffer) sizeBytes() int64 {
	return int64(cap(b.samples)) * 8
}
