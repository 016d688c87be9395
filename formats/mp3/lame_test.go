// SPDX-License-Identifier: EPL-2.0

//go:build cgo

package mp3

import (
	"bytes"
	"testing"
	"time"

	"github.com/ik5/modstems/audio"
	"github.com/ik5/modstems/codec"
	"github.com/ik5/modstems/internal/audiotest"
)

func TestLame_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		bps      int
	}{
		{"stereo int16", 2, 2},
		{"stereo float", 2, 4},
		{"mono int16", 1, 2},
		{"mono float", 1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			wave := audiotest.SineWave(44100, 440)
			data := audiotest.Int16PCM(44100, tt.channels, wave)
			if tt.bps == 4 {
				data = audiotest.Float32PCM(44100, tt.channels, wave)
			}
			in := codec.PCM{Data: data, SampleRate: 44100, Channels: tt.channels, BytesPerSample: tt.bps}

			var w bufferSeeker
			if err := NewEncoder(DefaultBitrate).Encode(&w, in); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if w.Len() == 0 || w.Len() > OutputBound(44100) {
				t.Fatalf("encoded %d bytes, want within (0, %d]", w.Len(), OutputBound(44100))
			}

			src, err := Decoder{}.Decode(bytes.NewReader(w.Bytes()))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			st, err := audio.Measure(src)
			if err != nil {
				t.Fatalf("Measure() error = %v", err)
			}

			if st.SampleRate != 44100 {
				t.Errorf("SampleRate = %d, want 44100", st.SampleRate)
			}
			if d := st.Duration(); d < 900*time.Millisecond || d > 1200*time.Millisecond {
				t.Errorf("Duration = %v, want about 1s", d)
			}
			if st.Peak < 0.3 {
				t.Errorf("Peak = %v, want an audible signal", st.Peak)
			}
		})
	}
}
