package streaming

import (
	"time"
)

// Config holds the streaming pipeline configuration. The zero value is
// not usable; start from DefaultConfig.
type Config struct {
	BufferSize     int   `json:"buffer_size"`      // Samples per analysis buffer
	SampleRate     int   `json:"sample_rate"`      // Hz
	MaxPoolSize    int   `json:"max_pool_size"`    // Hard ceiling on pooled buffers
	MaxMemoryBytes int64 `json:"max_memory_bytes"` // Ceiling on tracked buffer memory
	MaxConcurrent  int   `json:"max_concurrent"`   // Simultaneous analyses admitted

	// Load thresholds, as a fraction of real-time buffer duration
	HighLoadThreshold     float64 `json:"high_load_threshold"`
	CriticalLoadThreshold float64 `json:"critical_load_threshold"`

	// Memory-pressure ladder, as a fraction of MaxMemoryBytes.
	// Severity order is load-bearing: emergency > aggressive > gradual.
	GradualPressureThreshold    float64 `json:"gradual_pressure_threshold"`
	AggressivePressureThreshold float64 `json:"aggressive_pressure_threshold"`
	EmergencyPressureThreshold  float64 `json:"emergency_pressure_threshold"`

	// GradualTargetRatio is the usage fraction gradual eviction drives
	// toward
	GradualTargetRatio float64 `json:"gradual_target_ratio"`

	// IdleEvictionAge is how long a pooled buffer may sit unused before
	// aggressive pressure evicts it
	IdleEvictionAge time.Duration `json:"idle_eviction_age"`

	// MetricsWindow is the rolling-window capacity of the performance
	// tracker
	MetricsWindow int `json:"metrics_window"`
}

// DefaultConfig returns the default pipeline configuration: 4096-sample
// buffers at 44100 Hz, 10 pooled buffers, 50 MB memory ceiling, 3
// concurrent analyses.
func DefaultConfig() Config {
	return Config{
		BufferSize:                  4096,
		SampleRate:                  44100,
		MaxPoolSize:                 10,
		MaxMemoryBytes:              50 * 1024 * 1024,
		MaxConcurrent:               3,
		HighLoadThreshold:           0.80,
		CriticalLoadThreshold:       0.90,
		GradualPressureThreshold:    0.75,
		AggressivePressureThreshold: 0.85,
		EmergencyPressureThreshold:  0.95,
		GradualTargetRatio:          0.70,
		IdleEvictionAge:             5 * time.Second,
		MetricsWindow:               256,
	}
}
