// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ik5/modstems/utils"
)

const (
	// BytesInt16 is the width of a 16-bit integer sample.
	BytesInt16 = 2
	// BytesFloat32 is the width of a 32-bit float sample.
	BytesFloat32 = 4

	// FloatIntBits is the integer depth float input is widened to for
	// encoders that only take integers.
	FloatIntBits = 24
)

// BitDepth reports the container bit depth for a sample width.
func BitDepth(bytesPerSample int) (int, error) {
	switch bytesPerSample {
	case BytesInt16:
		return 16, nil
	case BytesFloat32:
		return 32, nil
	}

	return 0, fmt.Errorf("%w: %d", ErrSampleWidth, bytesPerSample)
}

// Frames returns the number of interleaved frames held by a buffer of n bytes.
func Frames(n, bytesPerSample, channels int) (int, error) {
	if channels < 1 {
		return 0, ErrChannels
	}
	if _, err := BitDepth(bytesPerSample); err != nil {
		return 0, err
	}

	frame := bytesPerSample * channels
	if n%frame != 0 {
		return 0, fmt.Errorf("%w: %d bytes, frame is %d", ErrMisaligned, n, frame)
	}

	return n / frame, nil
}

// Int16s copies b into a slice of 16-bit samples.
func Int16s(b []byte) ([]int16, error) {
	if len(b)%BytesInt16 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrMisaligned, len(b))
	}

	out := make([]int16, len(b)/BytesInt16)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(b[i*BytesInt16:]))
	}

	return out, nil
}

// Float32s copies b into float samples. 16-bit input is scaled to [-1, 1),
// float input is returned bit for bit.
func Float32s(b []byte, bytesPerSample int) ([]float32, error) {
	switch bytesPerSample {
	case BytesInt16:
		ints, err := Int16s(b)
		if err != nil {
			return nil, err
		}
		out := make([]float32, len(ints))
		for i, v := range ints {
			out[i] = utils.Int16ToFloat32(v)
		}
		return out, nil

	case BytesFloat32:
		if len(b)%BytesFloat32 != 0 {
			return nil, fmt.Errorf("%w: %d bytes", ErrMisaligned, len(b))
		}
		out := make([]float32, len(b)/BytesFloat32)
		for i := range out {
			out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*BytesFloat32:]))
		}
		return out, nil
	}

	return nil, fmt.Errorf("%w: %d", ErrSampleWidth, bytesPerSample)
}

// Int32s widens b to 32-bit integer samples and reports the bit depth they
// carry. 16-bit input is widened unscaled (16 bit); float input is scaled by
// 2^(FloatIntBits-1) and truncated (24 bit).
func Int32s(b []byte, bytesPerSample int) ([]int32, int, error) {
	switch bytesPerSample {
	case BytesInt16:
		ints, err := Int16s(b)
		if err != nil {
			return nil, 0, err
		}
		out := make([]int32, len(ints))
		for i, v := range ints {
			out[i] = int32(v)
		}
		return out, 16, nil

	case BytesFloat32:
		floats, err := Float32s(b, BytesFloat32)
		if err != nil {
			return nil, 0, err
		}
		out := make([]int32, len(floats))
		for i, v := range floats {
			out[i] = utils.ScaleFloat32(v, FloatIntBits)
		}
		return out, FloatIntBits, nil
	}

	return nil, 0, fmt.Errorf("%w: %d", ErrSampleWidth, bytesPerSample)
}

// Float32Bytes serialises float samples back into a little-endian buffer.
func Float32Bytes(samples []float32) []byte {
	out := make([]byte, len(samples)*BytesFloat32)
	for i, v := range samples {
		binary.LittleEndian.PutUint32(out[i*BytesFloat32:], math.Float32bits(v))
	}

	return out
}

// Deinterleave splits interleaved samples into one slice per channel.
func Deinterleave(samples []float32, channels int) ([][]float32, error) {
	if channels < 1 {
		return nil, ErrChannels
	}
	if len(samples)%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples for %d channels", ErrMisaligned, len(samples), channels)
	}

	frames := len(samples) / channels
	planar := make([][]float32, channels)
	for c := range planar {
		planar[c] = make([]float32, frames)
	}

	for f := range frames {
		base := f * channels
		for c := range channels {
			planar[c][f] = samples[base+c]
		}
	}

	return planar, nil
}

// IsSilent reports whether every byte of b is zero. The whole buffer is
// scanned; an empty buffer is silent.
func IsSilent(b []byte) bool {
	i := 0
	for ; i+8 <= len(b); i += 8 {
		if binary.LittleEndian.Uint64(b[i:]) != 0 {
			return false
		}
	}
	for ; i < len(b); i++ {
		if b[i] != 0 {
			return false
		}
	}

	return true
}
