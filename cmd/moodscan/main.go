// moodscan feeds a WAV file through the moodcore analysis pipeline and
// prints the feature/mood stream. It stands in for the live
// audio-capture collaborator the library expects in production.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/spf13/cobra"

	"github.com/mixtape-labs/moodcore/logging"
	"github.com/mixtape-labs/moodcore/streaming"
)

type options struct {
	bufferSize  int
	concurrency int
	verbose     bool
	jsonOutput  bool
}

func main() {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "moodscan <file.wav>",
		Short:         "Analyze a WAV file and print its feature/mood stream",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], opts)
		},
	}

	rootCmd.Flags().IntVarP(&opts.bufferSize, "buffer-size", "b", 0,
		"Analysis buffer size in samples (default: one second of audio)")
	rootCmd.Flags().IntVarP(&opts.concurrency, "concurrency", "c", 3,
		"Maximum concurrent analyses")
	rootCmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false,
		"Enable debug logging")
	rootCmd.Flags().BoolVarP(&opts.jsonOutput, "json", "j", false,
		"Print results as JSON lines")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "moodscan: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, opts *options) error {
	if opts.verbose {
		logging.SetLevel(logging.DebugLevel)
	} else {
		logging.SetGlobalLogger(&logging.NoOpLogger{})
	}

	samples, sampleRate, err := decodeWAV(path)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	cfg := streaming.DefaultConfig()
	cfg.SampleRate = sampleRate
	cfg.MaxConcurrent = opts.concurrency
	if opts.bufferSize > 0 {
		cfg.BufferSize = opts.bufferSize
	} else {
		// One-second buffers give the tempo estimator enough envelope
		// to work with
		cfg.BufferSize = sampleRate
	}

	coordinator := streaming.NewCoordinator(cfg)
	defer coordinator.Close()

	results := coordinator.Subscribe(64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		second := 0
		for result := range results {
			printResult(second, result, opts.jsonOutput)
			second++
		}
	}()

	// A file is not a live stream: pace submissions instead of dropping
	// frames on backpressure
	for offset := 0; offset < len(samples); offset += cfg.BufferSize {
		end := min(offset+cfg.BufferSize, len(samples))
		frame := samples[offset:end]
		for !coordinator.Process(frame) {
			time.Sleep(time.Millisecond)
		}
	}

	coordinator.Close()
	<-done

	stats := coordinator.Statistics()
	fmt.Fprintf(os.Stderr, "\nprocessed %d buffers, avg %s, peak %s, peak memory %d bytes\n",
		stats.Processed, stats.AverageProcessing, stats.PeakProcessing, stats.PeakMemory)
	return nil
}

func printResult(second int, result streaming.Result, asJSON bool) {
	if asJSON {
		line, err := json.Marshal(result)
		if err != nil {
			return
		}
		fmt.Println(string(line))
		return
	}

	f := result.Features
	fmt.Printf("[%4ds] mood=%-11s tempo=%5.1f energy=%.2f valence=%.2f dance=%.2f acoustic=%.2f speech=%.2f live=%.2f\n",
		second, result.Mood, f.Tempo, f.Energy, f.Valence, f.Danceability,
		f.Acousticness, f.Speechiness, f.Liveness)
}

// decodeWAV reads a WAV file into mono float64 samples in [-1, 1]
func decodeWAV(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	pcm, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}
	if pcm == nil || pcm.Format == nil || len(pcm.Data) == 0 {
		return nil, 0, fmt.Errorf("no audio data")
	}

	return monoFloat(pcm), pcm.Format.SampleRate, nil
}

// monoFloat downmixes an interleaved PCM buffer to mono float64
// samples in [-1, 1]
func monoFloat(pcm *audio.IntBuffer) []float64 {
	channels := pcm.Format.NumChannels
	if channels < 1 {
		channels = 1
	}

	bitDepth := pcm.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := float64(int64(1) << (bitDepth - 1))

	numFrames := len(pcm.Data) / channels
	samples := make([]float64, numFrames)
	for i := 0; i < numFrames; i++ {
		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			sum += float64(pcm.Data[i*channels+ch])
		}
		samples[i] = sum / float64(channels) / scale
	}

	return samples
}
