// SPDX-License-Identifier: EPL-2.0

package stems

import (
	"fmt"

	"github.com/ik5/modstems/engine"
)

// Task is one independent unit of output.
type Task struct {
	Channel    engine.Selector
	Instrument engine.Selector
	Stereo     bool
}

// Full is the task for the complete mix.
var Full = Task{Channel: engine.All, Instrument: engine.All, Stereo: true}

// Flags select which kinds of task Plan produces. They are additive.
type Flags struct {
	Full          bool
	PerChannel    bool
	PerInstrument bool

	// Stereo applies to per-channel and per-instrument stems only; the full
	// mix is always stereo.
	Stereo bool
}

// Plan returns the tasks for a song. PerChannel takes precedence over
// PerInstrument; Full is added in either case. meta must have passed
// engine.SongMetadata.Validate.
func Plan(meta engine.SongMetadata, flags Flags) []Task {
	var tasks []Task

	if flags.Full {
		tasks = append(tasks, Full)
	}

	switch {
	case flags.PerChannel:
		n := GridSize(meta)
		for i := range n {
			tasks = append(tasks, TaskAt(meta, i, flags.Stereo))
		}

	case flags.PerInstrument:
		for i := range int(meta.InstrumentCount) {
			tasks = append(tasks, Task{
				Channel:    engine.All,
				Instrument: engine.One(i),
				Stereo:     flags.Stereo,
			})
		}
	}

	return tasks
}

// GridSize is the number of (channel, instrument) pairs of a song.
func GridSize(meta engine.SongMetadata) int {
	return int(meta.ChannelCount) * int(meta.InstrumentCount)
}

// TaskAt derives the per-channel task at flat index i of the grid.
func TaskAt(meta engine.SongMetadata, i int, stereo bool) Task {
	channels := int(meta.ChannelCount)

	return Task{
		Channel:    engine.One(i % channels),
		Instrument: engine.One(i / channels),
		Stereo:     stereo,
	}
}

// OutputChannels is the number of interleaved channels the task renders.
func (t Task) OutputChannels() int {
	if t.Stereo {
		return 2
	}
	return 1
}

// Params builds the engine parameters for the task.
func (t Task) Params(sampleRate, bytesPerSample int, panning *float32) engine.RenderParams {
	p := engine.RenderParams{
		SampleRate:     uint32(sampleRate),
		BytesPerSample: uint32(bytesPerSample),
		Channel:        t.Channel,
		Instrument:     t.Instrument,
		StereoOutput:   t.Stereo,
	}
	if panning != nil {
		p.Panning = *panning
		p.PanningEnabled = true
	}

	return p
}

func (t Task) String() string {
	return fmt.Sprintf("channel=%s instrument=%s stereo=%t", t.Channel, t.Instrument, t.Stereo)
}
