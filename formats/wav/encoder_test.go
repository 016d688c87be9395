// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/modstems/codec"
	"github.com/ik5/modstems/internal/audiotest"
)

// encodeFile runs the encoder against a real file and returns its bytes.
func encodeFile(t *testing.T, p codec.PCM) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "stem.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := NewEncoder().Encode(f, p); err != nil {
		f.Close()
		t.Fatalf("Encode() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return data
}

type header struct {
	format     uint16
	channels   uint16
	sampleRate uint32
	bits       uint16
	dataSize   uint32
}

func parseHeader(t *testing.T, data []byte) header {
	t.Helper()

	if len(data) < 44 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Fatalf("missing RIFF/WAVE header")
	}
	if string(data[36:40]) != "data" {
		t.Fatalf("data chunk not at offset 36: %q", data[36:40])
	}

	return header{
		format:     binary.LittleEndian.Uint16(data[20:22]),
		channels:   binary.LittleEndian.Uint16(data[22:24]),
		sampleRate: binary.LittleEndian.Uint32(data[24:28]),
		bits:       binary.LittleEndian.Uint16(data[34:36]),
		dataSize:   binary.LittleEndian.Uint32(data[40:44]),
	}
}

func TestEncoder_Int16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rate     int
		channels int
		frames   int
	}{
		{"mono 44100", 44100, 1, 1000},
		{"stereo 48000", 48000, 2, 10000},
		{"stereo odd frames", 22050, 2, 4097},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := audiotest.Int16PCM(tt.frames, tt.channels, audiotest.SineWave(tt.rate, 440))
			data := encodeFile(t, codec.PCM{Data: in, SampleRate: tt.rate, Channels: tt.channels, BytesPerSample: 2})

			h := parseHeader(t, data)
			if h.format != formatPCM || h.bits != 16 {
				t.Errorf("format = %d/%d bit, want PCM/16 bit", h.format, h.bits)
			}
			if int(h.channels) != tt.channels || int(h.sampleRate) != tt.rate {
				t.Errorf("header = %d ch @ %d, want %d ch @ %d", h.channels, h.sampleRate, tt.channels, tt.rate)
			}
			if int(h.dataSize) != len(in) {
				t.Errorf("data size = %d, want %d", h.dataSize, len(in))
			}
			if !bytes.Equal(data[44:44+len(in)], in) {
				t.Error("sample bytes differ from input")
			}
		})
	}
}

func TestEncoder_Float(t *testing.T) {
	t.Parallel()

	in := audiotest.Float32PCM(3000, 2, audiotest.SineWave(48000, 1000))
	orig := append([]byte(nil), in...)
	data := encodeFile(t, codec.PCM{Data: in, SampleRate: 48000, Channels: 2, BytesPerSample: 4})

	h := parseHeader(t, data)
	if h.format != formatFloat || h.bits != 32 {
		t.Errorf("format = %d/%d bit, want IEEE float/32 bit", h.format, h.bits)
	}
	if !bytes.Equal(data[44:44+len(in)], in) {
		t.Error("float samples were not stored bit for bit")
	}
	if !bytes.Equal(in, orig) {
		t.Error("encoder modified its input")
	}
}

func TestEncoder_Misaligned(t *testing.T) {
	t.Parallel()

	var ws writeSeeker
	err := NewEncoder().Encode(&ws, codec.PCM{Data: make([]byte, 3), SampleRate: 8000, Channels: 1, BytesPerSample: 2})

	var ee *codec.EncodeError
	if !errors.As(err, &ee) || ee.Op != codec.OpInit {
		t.Errorf("Encode() error = %v, want init EncodeError", err)
	}
}

func TestEncoder_RoundTrip(t *testing.T) {
	t.Parallel()

	in := audiotest.Int16PCM(2048, 2, audiotest.SineWave(44100, 440))
	data := encodeFile(t, codec.PCM{Data: in, SampleRate: 44100, Channels: 2, BytesPerSample: 2})

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.SampleRate() != 44100 || src.Channels() != 2 {
		t.Fatalf("decoded %d ch @ %d, want 2 ch @ 44100", src.Channels(), src.SampleRate())
	}

	got := make([]float32, 0, 4096)
	buf := make([]float32, 1000)
	for {
		n, err := src.ReadSamples(buf)
		got = append(got, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	if len(got) != 4096 {
		t.Fatalf("decoded %d samples, want 4096", len(got))
	}
	for i, v := range got {
		want := float32(int16(binary.LittleEndian.Uint16(in[2*i:]))) / 32768
		if v != want {
			t.Fatalf("sample %d = %v, want %v", i, v, want)
		}
	}
}

// writeSeeker is an in-memory io.WriteSeeker.
type writeSeeker struct {
	buf []byte
	pos int
}

func (w *writeSeeker) Write(p []byte) (int, error) {
	if need := w.pos + len(p); need > len(w.buf) {
		w.buf = append(w.buf, make([]byte, need-len(w.buf))...)
	}
	copy(w.buf[w.pos:], p)
	w.pos += len(p)
	return len(p), nil
}

func (w *writeSeeker) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		w.pos = int(offset)
	case io.SeekCurrent:
		w.pos += int(offset)
	case io.SeekEnd:
		w.pos = len(w.buf) + int(offset)
	}
	return int64(w.pos), nil
}
