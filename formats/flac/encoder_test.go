// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"errors"
	"io"
	"testing"

	"github.com/ik5/modstems/codec"
	"github.com/ik5/modstems/internal/audiotest"
)

// capture returns an encoder whose backend records the stream it is given.
func capture(got *stream, err error) *Encoder {
	return &Encoder{encode: func(_ io.WriteSeeker, s stream) error {
		*got = s
		return err
	}}
}

func TestEncoder_WidensSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		bps  int
		data []byte
		bits int
	}{
		{"int16 stays 16-bit", 2, audiotest.Int16PCM(100, 2, audiotest.SineWave(8000, 440)), 16},
		{"float becomes 24-bit", 4, audiotest.Float32PCM(100, 2, audiotest.SineWave(8000, 440)), 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got stream
			err := capture(&got, nil).Encode(nil, codec.PCM{Data: tt.data, SampleRate: 8000, Channels: 2, BytesPerSample: tt.bps})
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if got.frames != 100 || got.channels != 2 || got.sampleRate != 8000 || got.bitsPerSample != tt.bits {
				t.Errorf("stream = %d frames, %d ch, %d Hz, %d bits", got.frames, got.channels, got.sampleRate, got.bitsPerSample)
			}
			if len(got.samples) != 200 {
				t.Errorf("len(samples) = %d, want 200", len(got.samples))
			}
		})
	}
}

func TestEncoder_SampleRates(t *testing.T) {
	t.Parallel()

	data := audiotest.Int16PCM(16, 1, audiotest.SineWave(8000, 440))

	for _, rate := range []int{8000, 44100, 96001, 192000, MaxSampleRate} {
		var got stream
		if err := capture(&got, nil).Encode(nil, codec.PCM{Data: data, SampleRate: rate, Channels: 1, BytesPerSample: 2}); err != nil {
			t.Errorf("Encode(%d Hz) error = %v", rate, err)
		}
	}

	for _, rate := range []int{0, MaxSampleRate + 1} {
		var got stream
		err := capture(&got, nil).Encode(nil, codec.PCM{Data: data, SampleRate: rate, Channels: 1, BytesPerSample: 2})
		var ee *codec.EncodeError
		if !errors.As(err, &ee) || ee.Op != codec.OpInit || !errors.Is(err, codec.ErrSampleRate) {
			t.Errorf("Encode(%d Hz) error = %v, want init ErrSampleRate", rate, err)
		}
	}
}

func TestEncoder_RejectsChannels(t *testing.T) {
	t.Parallel()

	var got stream
	err := capture(&got, nil).Encode(nil, codec.PCM{Data: make([]byte, 36), SampleRate: 8000, Channels: 9, BytesPerSample: 2})
	if !errors.Is(err, ErrChannels) {
		t.Errorf("Encode() error = %v, want ErrChannels", err)
	}
}

func TestEncoder_RejectsEmpty(t *testing.T) {
	t.Parallel()

	var got stream
	err := capture(&got, nil).Encode(nil, codec.PCM{SampleRate: 8000, Channels: 1, BytesPerSample: 2})
	if !errors.Is(err, codec.ErrEmptyPCM) {
		t.Errorf("Encode() error = %v, want ErrEmptyPCM", err)
	}
}

func TestEncoder_BackendError(t *testing.T) {
	t.Parallel()

	want := &codec.EncodeError{Format: FormatName, Op: codec.OpVerify, Err: ErrVerify}
	var got stream
	err := capture(&got, want).Encode(nil, codec.PCM{Data: make([]byte, 4), SampleRate: 8000, Channels: 1, BytesPerSample: 2})
	if !errors.Is(err, ErrVerify) {
		t.Errorf("Encode() error = %v, want ErrVerify", err)
	}
}
