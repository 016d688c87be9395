// SPDX-License-Identifier: EPL-2.0

// Package intsource adapts the go-audio integer PCM decoders to audio.Source.
package intsource

import (
	"bytes"
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
)

// Reader is the part of the go-audio wav and aiff decoders a Source reads from.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source turns integer PCM into float32 samples. With float set, 32-bit
// values are taken as IEEE float bit patterns.
type Source struct {
	dec      Reader
	format   *goaudio.Format
	scale    float32
	float    bool
	buf      *goaudio.IntBuffer
	finished bool
}

// New wraps dec. bitDepth must be 16, 24 or 32.
func New(dec Reader, format *goaudio.Format, bitDepth int, float bool) (*Source, error) {
	switch bitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("unsupported bit depth %d", bitDepth)
	}
	if float && bitDepth != 32 {
		return nil, fmt.Errorf("unsupported float bit depth %d", bitDepth)
	}
	if format == nil || format.NumChannels < 1 {
		return nil, fmt.Errorf("missing channel count")
	}

	return &Source{
		dec:    dec,
		format: format,
		scale:  float32(1 / math.Ldexp(1, bitDepth-1)),
		float:  float,
	}, nil
}

func (s *Source) SampleRate() int { return s.format.SampleRate }
func (s *Source) Channels() int   { return s.format.NumChannels }
func (s *Source) Close() error    { return nil }
func (s *Source) BufSize() int    { return 4096 - 4096%s.format.NumChannels }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.finished {
		return 0, io.EOF
	}
	if len(dst) == 0 {
		return 0, nil
	}

	if s.buf == nil || cap(s.buf.Data) < len(dst) {
		s.buf = &goaudio.IntBuffer{Data: make([]int, len(dst)), Format: s.format}
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.buf)
	if n == 0 {
		s.finished = true
		if err != nil && err != io.EOF {
			return 0, fmt.Errorf("read pcm: %w", err)
		}
		return 0, io.EOF
	}

	for i, v := range s.buf.Data[:n] {
		if s.float {
			dst[i] = math.Float32frombits(uint32(int32(v)))
		} else {
			dst[i] = float32(v) * s.scale
		}
	}

	if err == io.EOF || n < len(dst) {
		s.finished = true
		return n, io.EOF
	}
	if err != nil {
		return n, fmt.Errorf("read pcm: %w", err)
	}

	return n, nil
}

// Seekable returns r as an io.ReadSeeker, buffering it in memory when it
// cannot seek.
func Seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffer input: %w", err)
	}

	return bytes.NewReader(data), nil
}
