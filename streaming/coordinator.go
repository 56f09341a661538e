package streaming

import (
	"sync"
	"time"

	"github.com/mixtape-labs/moodcore/algorithms/common"
	"github.com/mixtape-labs/moodcore/analysis"
	"github.com/mixtape-labs/moodcore/logging"
)

// PressureLevel is a graduated memory-pressure response level
type PressureLevel int

const (
	PressureNone PressureLevel = iota
	PressureGradual
	PressureAggressive
	PressureEmergency
)

func (l PressureLevel) String() string {
	switch l {
	case PressureNone:
		return "none"
	case PressureGradual:
		return "gradual"
	case PressureAggressive:
		return "aggressive"
	case PressureEmergency:
		return "emergency"
	default:
		return "unknown"
	}
}

// Result is one published analysis outcome
type Result struct {
	Features analysis.AudioFeatures `json:"features"`
	Mood     analysis.Mood          `json:"mood"`
}

// Coordinator owns the buffer pool and the in-flight set, admits or
// rejects incoming audio (backpressure), dispatches admitted buffers to
// a bounded set of analysis workers, and publishes results to
// subscribers.
//
// The audio-delivery path (Push/Process) never blocks: saturation
// short-circuits to a rejection in microseconds. Results may complete
// out of order relative to submission; subscribers needing ordering
// must sequence on their own.
type Coordinator struct {
	cfg       Config
	pool      *BufferPool
	tracker   *PerformanceTracker
	extractor *analysis.FeatureExtractor

	// One analyzer per worker slot so flux state is never shared
	// across concurrent analyses
	analyzers chan *analysis.SpectralAnalyzer

	framerMu sync.Mutex
	framer   *common.Framer

	mu        sync.Mutex
	accepting bool
	inFlight  int
	subs      []chan Result
	callbacks []func(analysis.AudioFeatures, analysis.Mood)
	wg        sync.WaitGroup

	logger logging.Logger
}

// NewCoordinator creates a streaming coordinator with the given
// configuration. Use DefaultConfig for a zero-configuration pipeline.
func NewCoordinator(cfg Config) *Coordinator {
	c := &Coordinator{
		cfg:       cfg,
		pool:      NewBufferPool(cfg.BufferSize, cfg.SampleRate, cfg.MaxPoolSize),
		tracker:   NewPerformanceTracker(cfg.MetricsWindow),
		extractor: analysis.NewFeatureExtractor(),
		analyzers: make(chan *analysis.SpectralAnalyzer, cfg.MaxConcurrent),
		framer:    common.NewFramer(cfg.BufferSize),
		accepting: true,
		logger: logging.WithFields(logging.Fields{
			"component":   "streaming_coordinator",
			"buffer_size": cfg.BufferSize,
			"concurrency": cfg.MaxConcurrent,
		}),
	}

	analyzerCfg := analysis.AnalyzerConfig{
		SampleRate: cfg.SampleRate,
		FFTSize:    cfg.BufferSize,
	}
	for i := 0; i < cfg.MaxConcurrent; i++ {
		c.analyzers <- analysis.NewSpectralAnalyzerWithConfig(analyzerCfg)
	}

	return c
}

// Push accepts an arbitrary-length chunk of mono samples in [-1, 1],
// splits it into analysis frames and submits each. Returns how many
// frames were admitted and how many were dropped under backpressure.
func (c *Coordinator) Push(samples []float64) (accepted, rejected int) {
	c.framerMu.Lock()
	frames := c.framer.Push(samples)
	c.framerMu.Unlock()

	for _, frame := range frames {
		if c.Process(frame) {
			accepted++
		} else {
			rejected++
		}
	}
	return accepted, rejected
}

// Process submits one frame for analysis. Returns false when the frame
// is rejected: admissions are paused, the concurrency limit is reached,
// the pool is saturated, or projected memory would exceed the ceiling.
// A rejection is a designed backpressure signal — the caller drops the
// frame and continues; no retry is needed.
func (c *Coordinator) Process(samples []float64) bool {
	c.mu.Lock()

	if !c.accepting || c.inFlight >= c.cfg.MaxConcurrent {
		c.mu.Unlock()
		c.tracker.RecordRejection()
		return false
	}

	// Projected usage counts the allocation Acquire would make on a
	// free-list miss
	projected := c.pool.MemoryUsage()
	if c.pool.FreeCount() == 0 {
		projected += c.pool.BufferSizeBytes()
	}
	if projected > c.cfg.MaxMemoryBytes {
		c.mu.Unlock()
		c.tracker.RecordRejection()
		return false
	}

	buf, ok := c.pool.Acquire()
	if !ok {
		c.mu.Unlock()
		c.tracker.RecordRejection()
		return false
	}

	c.inFlight++
	c.wg.Add(1)
	c.mu.Unlock()

	// Copy before returning: the caller may reuse its slice as soon as
	// Process returns
	buf.CopyFrom(samples)
	go c.analyze(buf, time.Now())
	return true
}

func (c *Coordinator) analyze(buf *SampleBuffer, start time.Time) {
	defer c.wg.Done()

	buf.state = StateAnalyzing
	analyzer := <-c.analyzers
	spectralFeatures := analyzer.Analyze(buf.Samples())
	c.analyzers <- analyzer
	buf.state = StateCompleted

	if spectralFeatures != nil {
		features := c.extractor.Extract(spectralFeatures)
		mood := analysis.ClassifyMood(features)
		c.publish(Result{Features: features, Mood: mood})
	}

	elapsed := time.Since(start)
	duration := buf.Duration()
	c.pool.Release(buf)

	c.mu.Lock()
	c.inFlight--
	c.mu.Unlock()

	if spectralFeatures != nil {
		load := 0.0
		if duration > 0 {
			load = elapsed.Seconds() / duration.Seconds()
		}
		c.tracker.RecordProcessing(elapsed, c.pool.MemoryUsage(), load)
		c.handleProcessingLoad(load)
	}

	c.CheckMemoryPressure()
}

// handleProcessingLoad applies graduated degradation when analysis
// cannot keep up with real time. Above the critical threshold the pool
// is cleared outright; above the high threshold pooled buffers are
// shed until only a small working set remains.
func (c *Coordinator) handleProcessingLoad(load float64) {
	switch {
	case load > c.cfg.CriticalLoadThreshold:
		c.logger.Warn("Critical processing load, clearing pool", logging.Fields{"load": load})
		c.PerformEmergencyCleanup()

	case load > c.cfg.HighLoadThreshold:
		c.logger.Warn("High processing load, shedding pooled buffers", logging.Fields{"load": load})
		for c.pool.FreeCount() > 1 {
			if !c.pool.EvictOldestFree() {
				break
			}
		}
	}
}

// CheckMemoryPressure evaluates tracked memory against the pressure
// ladder and applies the matching response. It is a pure function of
// current usage versus thresholds — an external scheduler can call it
// periodically, and tests can call it synchronously.
func (c *Coordinator) CheckMemoryPressure() PressureLevel {
	usage := float64(c.pool.MemoryUsage()) / float64(c.cfg.MaxMemoryBytes)

	var level PressureLevel
	switch {
	case usage >= c.cfg.EmergencyPressureThreshold:
		level = PressureEmergency
	case usage >= c.cfg.AggressivePressureThreshold:
		level = PressureAggressive
	case usage >= c.cfg.GradualPressureThreshold:
		level = PressureGradual
	default:
		return PressureNone
	}

	c.OnMemoryPressure(level)
	return level
}

// OnMemoryPressure applies a memory-pressure response directly. An
// external lifecycle collaborator calls this on host memory warnings in
// place of any platform notification hook.
func (c *Coordinator) OnMemoryPressure(level PressureLevel) {
	switch level {
	case PressureEmergency:
		c.logger.Warn("Emergency memory pressure")
		c.PerformEmergencyCleanup()

	case PressureAggressive:
		c.logger.Warn("Aggressive memory pressure")
		c.pool.EvictIdle(c.cfg.IdleEvictionAge)

	case PressureGradual:
		c.logger.Debug("Gradual memory pressure")
		target := int64(c.cfg.GradualTargetRatio * float64(c.cfg.MaxMemoryBytes))
		for c.pool.MemoryUsage() > target {
			if !c.pool.EvictOldestFree() {
				break
			}
		}
	}
}

// CancelCurrentAnalysis stops admissions, drains in-flight work,
// releases every buffer and resets the tracker's active counters.
// Historical counters persist. Admissions resume once the drain
// completes. Idempotent.
func (c *Coordinator) CancelCurrentAnalysis() {
	c.mu.Lock()
	c.accepting = false
	c.mu.Unlock()

	c.wg.Wait()
	c.pool.ReleaseAll()
	c.tracker.ResetActive()
	c.resetAnalyzers()

	c.framerMu.Lock()
	c.framer.Reset()
	c.framerMu.Unlock()

	c.mu.Lock()
	c.accepting = true
	c.mu.Unlock()

	c.logger.Info("Analysis cancelled, pipeline drained")
}

// resetAnalyzers clears flux state on every idle analyzer. Only called
// after a drain, when all analyzers are parked in the channel.
func (c *Coordinator) resetAnalyzers() {
	for i := 0; i < cap(c.analyzers); i++ {
		analyzer := <-c.analyzers
		analyzer.Reset()
		c.analyzers <- analyzer
	}
}

// PerformEmergencyCleanup drops all pooled buffers and resets the
// tracker's active counters. Idempotent; tracked memory is zero
// afterward. In-flight buffers are discarded when their analyses
// complete.
func (c *Coordinator) PerformEmergencyCleanup() {
	c.pool.ReleaseAll()
	c.tracker.ResetActive()
	c.logger.Info("Emergency cleanup performed")
}

// Subscribe returns a channel receiving every published result. A
// subscriber that falls behind loses results rather than blocking the
// pipeline: publishes to a full channel are dropped for that
// subscriber.
func (c *Coordinator) Subscribe(buffer int) <-chan Result {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Result, buffer)

	c.mu.Lock()
	c.subs = append(c.subs, ch)
	c.mu.Unlock()

	return ch
}

// OnResult registers a callback invoked synchronously from the analysis
// worker for every published result. Callbacks must be fast; slow
// consumers should Subscribe instead.
func (c *Coordinator) OnResult(fn func(analysis.AudioFeatures, analysis.Mood)) {
	c.mu.Lock()
	c.callbacks = append(c.callbacks, fn)
	c.mu.Unlock()
}

func (c *Coordinator) publish(result Result) {
	c.mu.Lock()
	subs := make([]chan Result, len(c.subs))
	copy(subs, c.subs)
	callbacks := make([]func(analysis.AudioFeatures, analysis.Mood), len(c.callbacks))
	copy(callbacks, c.callbacks)
	c.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- result:
		default:
			// Subscriber full; drop rather than block the worker
		}
	}
	for _, fn := range callbacks {
		fn(result.Features, result.Mood)
	}
}

// Statistics returns a snapshot of pipeline performance
func (c *Coordinator) Statistics() AnalysisStatistics {
	allocations, reuses, misses := c.pool.Counters()
	stats := c.tracker.Snapshot(allocations, reuses, misses)
	stats.CurrentMemory = c.pool.MemoryUsage()
	return stats
}

// InFlight returns the number of analyses currently running
func (c *Coordinator) InFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Pool exposes the coordinator's buffer pool for observability
func (c *Coordinator) Pool() *BufferPool {
	return c.pool
}

// Close stops admissions, drains in-flight work and closes all
// subscriber channels
func (c *Coordinator) Close() {
	c.mu.Lock()
	c.accepting = false
	c.mu.Unlock()

	c.wg.Wait()
	c.pool.ReleaseAll()

	c.mu.Lock()
	for _, ch := range c.subs {
		close(ch)
	}
	c.subs = nil
	c.mu.Unlock()
}
