// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/modstems/codec"
	"github.com/ik5/modstems/pcm"
)

const (
	// FormatName is the registry key of the WAV encoder.
	FormatName = "wav"

	formatPCM   = 1
	formatFloat = 3

	blockFrames = 4096
)

// Encoder writes RIFF/WAVE files. 16-bit renders are stored as 16-bit PCM,
// float renders as 32-bit IEEE float. Samples are never converted.
type Encoder struct{}

func NewEncoder() Encoder { return Encoder{} }

func (Encoder) Name() string      { return FormatName }
func (Encoder) Extension() string { return ".wav" }

func (Encoder) Encode(w io.WriteSeeker, p codec.PCM) error {
	frames, err := p.Frames()
	if err != nil {
		return codec.Fail(FormatName, codec.OpInit, err)
	}

	depth, tag := 16, formatPCM
	if p.IsFloat() {
		depth, tag = 32, formatFloat
	}

	// The wrapper hides any Close method so the caller keeps the file.
	enc := wav.NewEncoder(struct{ io.WriteSeeker }{w}, p.SampleRate, depth, p.Channels, tag)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: p.Channels, SampleRate: p.SampleRate},
		Data:           make([]int, blockFrames*p.Channels),
		SourceBitDepth: depth,
	}

	frameBytes := p.BytesPerSample * p.Channels
	for start := 0; start < frames; start += blockFrames {
		end := min(start+blockFrames, frames)
		block := p.Data[start*frameBytes : end*frameBytes]

		buf.Data = buf.Data[:(end-start)*p.Channels]
		if err := fill(buf.Data, block, p.IsFloat()); err != nil {
			return codec.Fail(FormatName, codec.OpEncode, err)
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

// fill copies block into dst as the integers go-audio writes. Float samples
// travel as their bit patterns so the 32-bit writer stores them unchanged.
func fill(dst []int, block []byte, float bool) error {
	if float {
		floats, err := pcm.Float32s(block, pcm.BytesFloat32)
		if err != nil {
			return err
		}
		for i, v := range floats {
			dst[i] = int(int32(math.Float32bits(v)))
		}
		return nil
	}

	ints, err := pcm.Int16s(block)
	if err != nil {
		return err
	}
	if len(ints) != len(dst) {
		return fmt.Errorf("%w: %d samples for %d slots", pcm.ErrMisaligned, len(ints), len(dst))
	}
	for i, v := range ints {
		dst[i] = int(v)
	}

	return nil
}
