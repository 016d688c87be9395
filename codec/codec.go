// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/ik5/modstems/pcm"
)

// PCM is one rendered stem.
type PCM struct {
	// Data holds little-endian interleaved samples.
	Data           []byte
	SampleRate     int
	Channels       int
	BytesPerSample int
}

// Validate checks the buffer is a non-empty whole number of frames.
func (p PCM) Validate() error {
	if p.SampleRate < 1 {
		return fmt.Errorf("%w: %d", ErrSampleRate, p.SampleRate)
	}
	frames, err := p.Frames()
	if err != nil {
		return err
	}
	if frames == 0 {
		return ErrEmptyPCM
	}

	return nil
}

// Frames is the number of interleaved frames in Data.
func (p PCM) Frames() (int, error) {
	return pcm.Frames(len(p.Data), p.BytesPerSample, p.Channels)
}

// IsFloat reports whether Data holds float32 samples.
func (p PCM) IsFloat() bool {
	return p.BytesPerSample == pcm.BytesFloat32
}

// Float32s decodes Data to float samples in [-1, 1].
func (p PCM) Float32s() ([]float32, error) {
	return pcm.Float32s(p.Data, p.BytesPerSample)
}

// AsFloat32 returns p with float32 samples. Float input is returned as is;
// int16 input is converted into a new buffer.
func (p PCM) AsFloat32() (PCM, error) {
	if p.IsFloat() {
		return p, nil
	}

	floats, err := p.Float32s()
	if err != nil {
		return PCM{}, err
	}

	out := p
	out.Data = pcm.Float32Bytes(floats)
	out.BytesPerSample = pcm.BytesFloat32
	return out, nil
}

// Encoder writes one PCM value as a complete file body.
type Encoder interface {
	// Name is the format key, e.g. "flac".
	Name() string
	// Extension is appended to the output stem, e.g. ".flac".
	Extension() string
	// Encode writes pcm to w. It must not modify pcm.Data.
	Encode(w io.WriteSeeker, pcm PCM) error
}

// FloatOnly is implemented by encoders that need float32 input.
type FloatOnly interface {
	FloatOnly() bool
}

func needsFloat(enc Encoder) bool {
	f, ok := enc.(FloatOnly)
	return ok && f.FloatOnly()
}

// Registry holds encoders by format key.
type Registry struct {
	encoders map[string]Encoder

	mtx *sync.RWMutex
}

func NewRegistry(encoders ...Encoder) *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder, len(encoders)),
		mtx:      &sync.RWMutex{},
	}
	for _, e := range encoders {
		r.Register(e)
	}

	return r
}

func (r *Registry) Register(enc Encoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.encoders[enc.Name()] = enc
}

func (r *Registry) Get(format string) (Encoder, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	enc, ok := r.encoders[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return enc, nil
}

// Formats lists the registered keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	out := make([]string, 0, len(r.encoders))
	for k := range r.encoders {
		out = append(out, k)
	}
	slices.Sort(out)

	return out
}
