// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"
	"math"

	"github.com/mewkiz/flac"

	"github.com/ik5/modstems/audio"
)

type source struct {
	stream   *flac.Stream
	rate     int
	channels int
	scale    float32
	pending  []float32
	finished bool
}

func (s *source) SampleRate() int { return s.rate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return BlockSize * s.channels }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	written := 0
	for written < len(dst) {
		if len(s.pending) == 0 {
			if s.finished {
				break
			}
			if err := s.next(); err != nil {
				return written, err
			}
			continue
		}

		n := copy(dst[written:], s.pending)
		s.pending = s.pending[n:]
		written += n
	}

	if s.finished && len(s.pending) == 0 {
		return written, io.EOF
	}
	return written, nil
}

// next decodes one frame into pending.
func (s *source) next() error {
	f, err := s.stream.ParseNext()
	if err == io.EOF {
		s.finished = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("parse flac frame: %w", err)
	}

	n := int(f.BlockSize)
	buf := s.pending[:0]
	for i := range n {
		for _, sub := range f.Subframes {
			buf = append(buf, float32(sub.Samples[i])*s.scale)
		}
	}
	s.pending = buf

	return nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("open flac stream: %w", err)
	}

	info := stream.Info
	return &source{
		stream:   stream,
		rate:     int(info.SampleRate),
		channels: int(info.NChannels),
		scale:    float32(1 / math.Ldexp(1, int(info.BitsPerSample)-1)),
	}, nil
}
