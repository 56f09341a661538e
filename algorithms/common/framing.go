package common

// Framer splits an arbitrary-length sample stream into fixed-size,
// non-overlapping frames. Samples left over after the last complete
// frame are carried into the next call.
type Framer struct {
	buffer    []float64
	frameSize int
	writePos  int
}

// NewFramer creates a framer producing frames of frameSize samples
func NewFramer(frameSize int) *Framer {
	return &Framer{
		buffer:    make([]float64, frameSize),
		frameSize: frameSize,
	}
}

// Push adds samples and returns every complete frame they produce.
// Returned frames are freshly allocated copies.
func (f *Framer) Push(samples []float64) [][]float64 {
	var frames [][]float64

	for _, sample := range samples {
		f.buffer[f.writePos] = sample
		f.writePos++

		if f.writePos >= f.frameSize {
			frame := make([]float64, f.frameSize)
			copy(frame, f.buffer)
			frames = append(frames, frame)
			f.writePos = 0
		}
	}

	return frames
}

// Pending returns the number of buffered samples waiting for a full frame
func (f *Framer) Pending() int {
	return f.writePos
}

// Reset discards any buffered samples
func (f *Framer) Reset() {
	f.writePos = 0
}

// FrameSize returns the configured frame size
func (f *Framer) FrameSize() int {
	return f.frameSize
}
