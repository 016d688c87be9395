// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ik5/modstems/engine"
)

// FakeEngine is a scripted engine.Port. The zero value probes as an empty
// song; set Meta and Frames to make it render.
type FakeEngine struct {
	Meta     engine.SongMetadata
	ProbeErr error

	// Frames is how many frames each render produces, capped at the
	// buffer size.
	Frames int

	// Silent selects renders that produce an all-zero buffer.
	Silent func(p engine.RenderParams) bool
	// Fail selects renders that return an error.
	Fail func(p engine.RenderParams) error
	// Overrun makes every render report one byte more than the buffer.
	Overrun bool
	// Delay is slept inside every render.
	Delay time.Duration

	mtx      sync.Mutex
	calls    []engine.RenderParams
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (f *FakeEngine) Probe([]byte) (engine.SongMetadata, error) {
	if f.ProbeErr != nil {
		return engine.SongMetadata{}, f.ProbeErr
	}
	return f.Meta, nil
}

func (f *FakeEngine) Render(dst []byte, _ []byte, params *engine.RenderParams) (int, error) {
	cur := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if cur <= p || f.peak.CompareAndSwap(p, cur) {
			break
		}
	}

	f.mtx.Lock()
	f.calls = append(f.calls, *params)
	f.mtx.Unlock()

	if f.Delay > 0 {
		time.Sleep(f.Delay)
	}
	if f.Fail != nil {
		if err := f.Fail(*params); err != nil {
			return 0, err
		}
	}
	if f.Overrun {
		return len(dst) + 1, nil
	}

	channels := 1
	if params.StereoOutput {
		channels = 2
	}
	frame := int(params.BytesPerSample) * channels
	if frame == 0 {
		return 0, fmt.Errorf("%w: zero sample width", engine.ErrRenderFailed)
	}

	frames := min(f.Frames, len(dst)/frame)
	n := frames * frame
	if f.Silent != nil && f.Silent(*params) {
		return n, nil
	}

	wave := SineWave(int(params.SampleRate), 440)
	var data []byte
	if params.BytesPerSample == 2 {
		data = Int16PCM(frames, channels, wave)
	} else {
		data = Float32PCM(frames, channels, wave)
	}
	copy(dst, data)

	return n, nil
}

// Calls returns the params of every render so far.
func (f *FakeEngine) Calls() []engine.RenderParams {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	out := make([]engine.RenderParams, len(f.calls))
	copy(out, f.calls)
	return out
}

// MaxInFlight is the largest number of renders seen running at once.
func (f *FakeEngine) MaxInFlight() int {
	return int(f.peak.Load())
}
