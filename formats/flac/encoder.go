// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	"github.com/ik5/modstems/codec"
	"github.com/ik5/modstems/pcm"
)

// FormatName is the registry key of the FLAC encoder.
const FormatName = "flac"

const (
	// BlockSize is the number of frames per FLAC frame at compression
	// level 8.
	BlockSize = 4096

	// CompressionLevel is the libFLAC preset used for every stream.
	CompressionLevel = 8

	// MaxSampleRate is the largest rate STREAMINFO can carry.
	MaxSampleRate = 655350
)

// stream is one stem widened to 32-bit samples.
type stream struct {
	samples       []int32
	frames        int
	channels      int
	bitsPerSample int
	sampleRate    int
}

// Encoder writes FLAC streams through libFLAC at CompressionLevel with
// verification on. Float renders are stored as 24-bit samples
// (x * 2^23, truncated); 16-bit renders are stored unchanged.
type Encoder struct {
	encode func(w io.WriteSeeker, s stream) error
}

func NewEncoder() *Encoder { return &Encoder{encode: encodeLibflac} }

func (*Encoder) Name() string      { return FormatName }
func (*Encoder) Extension() string { return ".flac" }

// ValidateSampleRate reports whether rate fits in STREAMINFO.
func ValidateSampleRate(rate int) error {
	if rate < 1 || rate > MaxSampleRate {
		return fmt.Errorf("%w: %d Hz, flac carries 1 to %d", codec.ErrSampleRate, rate, MaxSampleRate)
	}
	return nil
}

func (e *Encoder) Encode(w io.WriteSeeker, p codec.PCM) error {
	if p.Channels < 1 || p.Channels > 8 {
		return codec.Fail(FormatName, codec.OpInit, fmt.Errorf("%w: %d", ErrChannels, p.Channels))
	}
	if err := ValidateSampleRate(p.SampleRate); err != nil {
		return codec.Fail(FormatName, codec.OpInit, err)
	}
	if err := p.Validate(); err != nil {
		return codec.Fail(FormatName, codec.OpInit, err)
	}

	samples, bps, err := pcm.Int32s(p.Data, p.BytesPerSample)
	if err != nil {
		return codec.Fail(FormatName, codec.OpInit, err)
	}

	return e.encode(w, stream{
		samples:       samples,
		frames:        len(samples) / p.Channels,
		channels:      p.Channels,
		bitsPerSample: bps,
		sampleRate:    p.SampleRate,
	})
}
