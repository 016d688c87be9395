package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/modstems/internal/audiotest"
)

func drain(t *testing.T, src Source, chunk int) []float32 {
	t.Helper()

	buf := make([]float32, chunk)
	var out []float32
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 1000), 48000)

	if r.SampleRate() != 48000 {
		t.Errorf("SampleRate() = %d, want 48000", r.SampleRate())
	}
	if r.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", r.Channels())
	}
}

func TestResampler_SameRateIsExact(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSineSource(8000, 1, 1000, 440)
	want := drain(t, audiotest.NewSineSource(8000, 1, 1000, 440), 256)

	got := drain(t, NewResampler(src, 8000), 100)
	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range got {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Fatalf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestResampler_FrameCounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from, to int
		channels int
		frames   int
		tol      int
	}{
		{"44100 to 48000 stereo", 44100, 48000, 2, 44100, 2},
		{"8000 to 48000 mono", 8000, 48000, 1, 8000, 6},
		{"96000 to 48000 mono", 96000, 48000, 1, 96000, 1},
		{"22050 to 48000 stereo", 22050, 48000, 2, 11025, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(tt.from, tt.channels, tt.frames, 440)
			got := drain(t, NewResampler(src, tt.to), 1024*tt.channels)

			if len(got)%tt.channels != 0 {
				t.Fatalf("got %d values, not a whole number of frames", len(got))
			}

			frames := len(got) / tt.channels
			want := int(math.Ceil(float64(tt.frames) * float64(tt.to) / float64(tt.from)))
			if frames < want-tt.tol || frames > want+tt.tol {
				t.Errorf("got %d frames, want %d (±%d)", frames, want, tt.tol)
			}

			for i, s := range got {
				if s < -1 || s > 1 {
					t.Fatalf("got[%d] = %v, outside [-1, 1]", i, s)
				}
			}
		})
	}
}

func TestResampler_StereoPreserved(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(44100, 2, 1000, func(_ int, channel int) float32 {
		if channel == 0 {
			return 0.3
		}
		return 0.7
	})

	got := drain(t, NewResampler(src, 48000), 512)
	for i := 0; i+1 < len(got); i += 2 {
		if math.Abs(float64(got[i]-0.3)) > 1e-5 || math.Abs(float64(got[i+1]-0.7)) > 1e-5 {
			t.Fatalf("frame %d = (%v, %v), want (0.3, 0.7)", i/2, got[i], got[i+1])
		}
	}
}

func TestResampler_SingleFrame(t *testing.T) {
	t.Parallel()

	got := drain(t, NewResampler(audiotest.NewConstantSource(8000, 1, 1, 0.5), 8000), 16)
	if len(got) != 1 || got[0] != 0.5 {
		t.Errorf("got %v, want [0.5]", got)
	}
}

func TestResampler_EOF(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 1, 0), 48000)

	buf := make([]float32, 64)
	for range 2 {
		if n, err := r.ReadSamples(buf); n != 0 || err != io.EOF {
			t.Errorf("ReadSamples() = %d, %v; want 0, EOF", n, err)
		}
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 100), 48000)
	if _, err := r.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_SourceError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	r := NewResampler(&audiotest.ErrorSource{Rate: 44100, Chan: 2, Err: boom}, 48000)
	if _, err := r.ReadSamples(make([]float32, 64)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
}

func BenchmarkResampler_44100To48000(b *testing.B) {
	buf := make([]float32, 4096)
	b.ReportAllocs()

	for b.Loop() {
		r := NewResampler(audiotest.NewSineSource(44100, 2, 44100, 440), 48000)
		for {
			if _, err := r.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
