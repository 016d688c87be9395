// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/modstems/codec"
	"github.com/ik5/modstems/pcm"
)

// FormatName is the registry key of the AIFF encoder.
const FormatName = "aiff"

const blockFrames = 4096

// Encoder writes AIFF files. AIFF has no float samples, so float renders
// are scaled to 24-bit integers; 16-bit renders are stored as is.
type Encoder struct{}

func NewEncoder() Encoder { return Encoder{} }

func (Encoder) Name() string      { return FormatName }
func (Encoder) Extension() string { return ".aiff" }

func (Encoder) Encode(w io.WriteSeeker, p codec.PCM) error {
	frames, err := p.Frames()
	if err != nil {
		return codec.Fail(FormatName, codec.OpInit, err)
	}

	depth := 16
	if p.IsFloat() {
		depth = pcm.FloatIntBits
	}

	enc := aiff.NewEncoder(struct{ io.WriteSeeker }{w}, p.SampleRate, depth, p.Channels)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: p.Channels, SampleRate: p.SampleRate},
		Data:           make([]int, 0, blockFrames*p.Channels),
		SourceBitDepth: depth,
	}

	frameBytes := p.BytesPerSample * p.Channels
	for start := 0; start < frames; start += blockFrames {
		end := min(start+blockFrames, frames)

		ints, _, err := pcm.Int32s(p.Data[start*frameBytes:end*frameBytes], p.BytesPerSample)
		if err != nil {
			return codec.Fail(FormatName, codec.OpEncode, err)
		}

		buf.Data = buf.Data[:0]
		for _, v := range ints {
			buf.Data = append(buf.Data, int(v))
		}
		if err := enc.Write(buf); err != nil {
			return codec.Fail(FormatName, codec.OpWrite, err)
		}
	}

	if err := enc.Close(); err != nil {
		return codec.Fail(FormatName, codec.OpFinalize, err)
	}

	return nil
}
