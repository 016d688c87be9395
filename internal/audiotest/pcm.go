// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
	"math"
)

// Int16PCM builds little-endian interleaved 16-bit PCM for frames frames.
func Int16PCM(frames, channels int, value func(frame, channel int) float32) []byte {
	out := make([]byte, frames*channels*2)
	for f := range frames {
		for c := range channels {
			v := int16(math.Round(float64(value(f, c)) * 32767))
			binary.LittleEndian.PutUint16(out[(f*channels+c)*2:], uint16(v))
		}
	}
	return out
}

// Float32PCM builds little-endian interleaved float32 PCM for frames frames.
func Float32PCM(frames, channels int, value func(frame, channel int) float32) []byte {
	out := make([]byte, frames*channels*4)
	for f := range frames {
		for c := range channels {
			binary.LittleEndian.PutUint32(out[(f*channels+c)*4:], math.Float32bits(value(f, c)))
		}
	}
	return out
}

// SineWave returns a waveform function for Int16PCM and Float32PCM.
// Channel c plays at frequency*(c+1).
func SineWave(sampleRate int, frequency float64) func(frame, channel int) float32 {
	return func(frame, channel int) float32 {
		return Sine(frame, sampleRate, frequency*float64(channel+1))
	}
}
