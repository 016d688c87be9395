package audio

import (
	"errors"
	"io"
	"slices"
	"sync"
	"testing"

	"github.com/ik5/modstems/internal/audiotest"
)

type mockDecoder struct {
	name string
}

func (d *mockDecoder) Decode(io.Reader) (Source, error) {
	return audiotest.NewSilentSource(44100, 2, 100), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "wav"}
	registry.Register("wav", decoder, ".wav")

	got, ok := registry.Get("wav")
	if !ok {
		t.Fatal("Registry.Get() failed to retrieve registered decoder")
	}
	if got != decoder {
		t.Error("Registry.Get() returned different decoder instance")
	}

	if _, ok := registry.Get("flac"); ok {
		t.Error("Registry.Get() returned ok=true for unregistered format")
	}
}

func TestRegistry_ForPath(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	wavDecoder := &mockDecoder{name: "wav"}
	aiffDecoder := &mockDecoder{name: "aiff"}
	registry.Register("wav", wavDecoder, "wav")
	registry.Register("aiff", aiffDecoder, ".aiff", ".aif")

	tests := []struct {
		path    string
		format  string
		want    Decoder
		wantErr bool
	}{
		{"out/song.wav", "wav", wavDecoder, false},
		{"SONG_0001_chan_full.WAV", "wav", wavDecoder, false},
		{"a.aif", "aiff", aiffDecoder, false},
		{"a.aiff", "aiff", aiffDecoder, false},
		{"a.flac", "", nil, true},
		{"noext", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			format, got, err := registry.ForPath(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownFormat) {
					t.Fatalf("ForPath(%q) error = %v, want ErrUnknownFormat", tt.path, err)
				}
				var ufe *UnknownFormatError
				if !errors.As(err, &ufe) || ufe.Path != tt.path {
					t.Errorf("ForPath(%q) error %v does not carry the path", tt.path, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ForPath(%q) error = %v", tt.path, err)
			}
			if format != tt.format || got != tt.want {
				t.Errorf("ForPath(%q) = %q, %v; want %q", tt.path, format, got, tt.format)
			}
		})
	}
}

func TestRegistry_Overwrite(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder1 := &mockDecoder{name: "first"}
	decoder2 := &mockDecoder{name: "second"}

	registry.Register("wav", decoder1)
	registry.Register("wav", decoder2)

	got, _ := registry.Get("wav")
	if got != decoder2 {
		t.Error("Registry.Get() did not return the overwritten decoder")
	}
}

func TestRegistry_Formats(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	for _, f := range []string{"ogg", "wav", "mp3"} {
		registry.Register(f, &mockDecoder{name: f})
	}

	want := []string{"mp3", "ogg", "wav"}
	if got := registry.Formats(); !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "test"}

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			registry.Register("format", decoder, "fmt")
		}()
		go func() {
			defer wg.Done()
			_, _ = registry.Get("format")
			_, _, _ = registry.ForPath("x.fmt")
		}()
	}
	wg.Wait()

	if got, ok := registry.Get("format"); !ok || got != decoder {
		t.Error("Registry returned wrong decoder after concurrent operations")
	}
}

func BenchmarkRegistry_ForPath(b *testing.B) {
	registry := NewRegistry()
	registry.Register("wav", &mockDecoder{}, "wav")

	b.ReportAllocs()
	for b.Loop() {
		_, _, _ = registry.ForPath("stem_0001_chan_0002.wav")
	}
}
