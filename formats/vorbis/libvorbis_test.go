// SPDX-License-Identifier: EPL-2.0

//go:build cgo

package vorbis

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/modstems/audio"
	"github.com/ik5/modstems/codec"
	"github.com/ik5/modstems/internal/audiotest"
)

func TestLibvorbis_Strategies(t *testing.T) {
	t.Parallel()

	for _, st := range Strategies {
		t.Run(string(st), func(t *testing.T) {
			t.Parallel()

			opts := DefaultOptions()
			opts.Strategy = st

			in := codec.PCM{
				Data:           audiotest.Float32PCM(44100+321, 2, audiotest.SineWave(44100, 440)),
				SampleRate:     44100,
				Channels:       2,
				BytesPerSample: 4,
			}

			path := filepath.Join(t.TempDir(), "stem.ogg")
			f, err := os.Create(path)
			if err != nil {
				t.Fatal(err)
			}
			if err := NewEncoder(opts).Encode(f, in); err != nil {
				f.Close()
				t.Fatalf("Encode() error = %v", err)
			}
			f.Close()

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.HasPrefix(data, []byte("OggS")) {
				t.Fatalf("output does not start with an Ogg page")
			}

			src, err := Decoder{}.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			st, err := audio.Measure(src)
			if err != nil {
				t.Fatalf("Measure() error = %v", err)
			}
			if st.SampleRate != 44100 || st.Channels != 2 {
				t.Errorf("decoded %d ch @ %d, want 2 ch @ 44100", st.Channels, st.SampleRate)
			}
			if d := st.Frames - (44100 + 321); d < -2048 || d > 2048 {
				t.Errorf("decoded %d frames, want about %d", st.Frames, 44100+321)
			}
			if st.Peak < 0.3 {
				t.Errorf("peak %v, want an audible signal", st.Peak)
			}
		})
	}
}
