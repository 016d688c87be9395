// SPDX-License-Identifier: EPL-2.0

package render

import (
	"fmt"
	"log/slog"
	"math"
	"runtime"

	"github.com/ik5/modstems/engine"
	"github.com/ik5/modstems/pcm"
	"github.com/ik5/modstems/stems"
)

const (
	MinSampleRate = 8000
	MaxSampleRate = 192000

	// DefaultSafetyMargin is added to the reported duration when sizing
	// buffers, in seconds.
	DefaultSafetyMargin = 5.0
)

// Options describe how every task of a run is rendered.
type Options struct {
	SampleRate     int
	BytesPerSample int

	// Panning is passed to every task when set. The engine applies it only
	// when a single channel is selected, so per-instrument and full-mix
	// stems ignore it.
	Panning *float32

	// SafetyMargin is in seconds.
	SafetyMargin float64

	// Workers bounds the tasks of one song running at once. Zero means
	// one per CPU.
	Workers int

	Stems stems.Flags
}

// DefaultOptions renders 16-bit 48 kHz per-instrument stems.
func DefaultOptions() Options {
	return Options{
		SampleRate:     48000,
		BytesPerSample: pcm.BytesInt16,
		SafetyMargin:   DefaultSafetyMargin,
		Stems:          stems.Flags{PerInstrument: true},
	}
}

// Validate checks o and fills in the worker count.
func (o *Options) Validate() error {
	if o.SampleRate < MinSampleRate || o.SampleRate > MaxSampleRate {
		return fmt.Errorf("%w: %d", ErrSampleRate, o.SampleRate)
	}
	if o.BytesPerSample != pcm.BytesInt16 && o.BytesPerSample != pcm.BytesFloat32 {
		return fmt.Errorf("%w: %d bytes per sample", ErrSampleFormat, o.BytesPerSample)
	}
	if o.Panning != nil {
		p := float64(*o.Panning)
		if math.IsNaN(p) || p < -1 || p > 1 {
			return fmt.Errorf("%w: %v", ErrPanning, *o.Panning)
		}
	}
	if o.SafetyMargin < 0 || math.IsNaN(o.SafetyMargin) || math.IsInf(o.SafetyMargin, 0) {
		return fmt.Errorf("%w: %v", ErrMargin, o.SafetyMargin)
	}
	if !o.Stems.Full && !o.Stems.PerChannel && !o.Stems.PerInstrument {
		return ErrNoStems
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}

	return nil
}

// Capacity is the buffer size for a task: whole seconds of song plus
// margin, at the task's output channel count.
func Capacity(meta engine.SongMetadata, t stems.Task, sampleRate, bytesPerSample int, margin float64) int {
	seconds := math.Ceil(float64(meta.DurationSeconds) + max(margin, 0))
	return int(seconds) * sampleRate * bytesPerSample * t.OutputChannels()
}

// ProgressFunc is called after each task of a song finishes. done counts
// finished tasks, whatever their outcome.
type ProgressFunc func(file string, done, total int)

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger; slog.Default is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

// WithProgress registers a progress callback. It may be called from
// several goroutines at once.
func WithProgress(fn ProgressFunc) Option {
	return func(r *Renderer) { r.progress = fn }
}
