// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/modstems/codec"
	"github.com/ik5/modstems/internal/audiotest"
)

func TestDecoder_NotWAVFile(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("this is not a wav file at all, just text padding it out")))
	if !errors.Is(err, ErrNotWavFile) {
		t.Errorf("Decode() error = %v, want ErrNotWavFile", err)
	}
}

func TestDecoder_NonSeekableInput(t *testing.T) {
	t.Parallel()

	var ws writeSeeker
	in := audiotest.Int16PCM(100, 1, audiotest.SineWave(8000, 440))
	if err := NewEncoder().Encode(&ws, codec.PCM{Data: in, SampleRate: 8000, Channels: 1, BytesPerSample: 2}); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	// io.MultiReader hides Seek, forcing the in-memory path.
	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(ws.buf)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.SampleRate() != 8000 || src.Channels() != 1 {
		t.Errorf("decoded %d ch @ %d, want 1 ch @ 8000", src.Channels(), src.SampleRate())
	}
}

func BenchmarkEncoder_Int16Stereo(b *testing.B) {
	in := audiotest.Int16PCM(44100, 2, audiotest.SineWave(44100, 440))
	p := codec.PCM{Data: in, SampleRate: 44100, Channels: 2, BytesPerSample: 2}

	b.ReportAllocs()
	for b.Loop() {
		var ws writeSeeker
		if err := NewEncoder().Encode(&ws, p); err != nil {
			b.Fatal(err)
		}
	}
}
