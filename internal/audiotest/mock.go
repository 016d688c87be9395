// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds test doubles shared by the package tests:
// generated sources, synthetic PCM buffers and a scripted engine.
package audiotest

import (
	"io"
	"math"
)

// MockSource generates audio data for testing.
// It implements audio.Source without importing it.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int // frames to generate
	generated  int // frames generated so far
	waveform   func(frame int, channel int) float32
}

// NewMockSource creates a source of frames frames whose value at each
// frame and channel comes from waveform.
func NewMockSource(sampleRate, channels, frames int, waveform func(frame int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
	}
}

// NewSilentSource creates a mock source that generates silence.
func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewConstantSource(sampleRate, channels, frames, 0)
}

// NewSineSource creates a mock source that generates a sine wave at half scale.
func NewSineSource(sampleRate, channels, frames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame int, _ int) float32 {
		return Sine(frame, sampleRate, frequency)
	})
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, frames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 {
		return value
	})
}

// Sine is the half-scale sine value at frame.
func Sine(frame, sampleRate int, frequency float64) float32 {
	t := float64(frame) / float64(sampleRate)
	return float32(0.5 * math.Sin(2*math.Pi*frequency*t))
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 - 4096%m.channels }
func (m *MockSource) Close() error    { return nil }

// Reset rewinds the source to its first frame.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/m.channels, m.frames-m.generated)
	for frame := range n {
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(m.generated+frame, ch)
		}
	}

	m.generated += n
	if m.generated >= m.frames {
		return n * m.channels, io.EOF
	}

	return n * m.channels, nil
}

// ErrorSource yields Err on its first read.
type ErrorSource struct {
	Rate int
	Chan int
	Err  error
}

func (e *ErrorSource) SampleRate() int                    { return e.Rate }
func (e *ErrorSource) Channels() int                      { return e.Chan }
func (e *ErrorSource) BufSize() int                       { return 4096 - 4096%e.Chan }
func (e *ErrorSource) Close() error                       { return nil }
func (e *ErrorSource) ReadSamples([]float32) (int, error) { return 0, e.Err }
