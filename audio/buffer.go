// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

const defaultBufSize = 4096

// BufferSource serves an in-memory interleaved float32 buffer as a Source.
// The buffer is read, never modified.
type BufferSource struct {
	samples  []float32
	rate     int
	channels int
	off      int
}

func NewBufferSource(samples []float32, sampleRate, channels int) (*BufferSource, error) {
	if channels < 1 {
		return nil, ErrChannels
	}
	if sampleRate < 1 {
		return nil, ErrSampleRate
	}
	if len(samples)%channels != 0 {
		return nil, fmt.Errorf("%w: %d values for %d channels", ErrInvalidDstSize, len(samples), channels)
	}

	return &BufferSource{samples: samples, rate: sampleRate, channels: channels}, nil
}

func (b *BufferSource) SampleRate() int { return b.rate }
func (b *BufferSource) Channels() int   { return b.channels }
func (b *BufferSource) BufSize() int    { return defaultBufSize - defaultBufSize%b.channels }
func (b *BufferSource) Close() error    { return nil }

func (b *BufferSource) ReadSamples(dst []float32) (int, error) {
	if len(dst)%b.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if b.off >= len(b.samples) {
		return 0, io.EOF
	}

	n := copy(dst, b.samples[b.off:])
	b.off += n
	if b.off >= len(b.samples) {
		return n, io.EOF
	}

	return n, nil
}

// ReadAll drains src into one interleaved buffer.
func ReadAll(src Source) ([]float32, error) {
	size := max(src.BufSize(), src.Channels())
	size -= size % src.Channels()

	buf := make([]float32, size)
	var out []float32
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("read samples: %w", err)
		}
	}
}
