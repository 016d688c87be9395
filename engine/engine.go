// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"
	"math"
	"sync"
)

// Port is the interface the renderer needs from a synthesis engine.
type Port interface {
	// Probe reports the shape of a module. A module the engine cannot open
	// yields zero metadata, which Validate rejects.
	Probe(module []byte) (SongMetadata, error)

	// Render writes PCM for params into dst and returns the number of bytes
	// written. It never writes past len(dst).
	Render(dst []byte, module []byte, params *RenderParams) (int, error)
}

// SongMetadata is the shape of one module.
type SongMetadata struct {
	ChannelCount    uint32
	InstrumentCount uint32
	DurationSeconds float32
}

// Validate rejects metadata that cannot produce any stem.
func (m SongMetadata) Validate() error {
	if m.ChannelCount == 0 {
		return ErrNoChannels
	}
	if m.InstrumentCount == 0 {
		return ErrNoInstruments
	}

	d := float64(m.DurationSeconds)
	if d <= 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return fmt.Errorf("%w: %v seconds", ErrNoDuration, m.DurationSeconds)
	}

	return nil
}

// Locked serialises every call to the wrapped port behind one mutex.
type Locked struct {
	port Port
	mtx  *sync.Mutex
}

// NewLocked wraps p so that at most one Probe or Render runs at a time.
func NewLocked(p Port) *Locked {
	return &Locked{
		port: p,
		mtx:  &sync.Mutex{},
	}
}

func (l *Locked) Probe(module []byte) (SongMetadata, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	return l.port.Probe(module)
}

func (l *Locked) Render(dst []byte, module []byte, params *RenderParams) (int, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	return l.port.Render(dst, module, params)
}
