// SPDX-License-Identifier: EPL-2.0

package stems

import (
	"testing"

	"github.com/ik5/modstems/engine"
	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	tests := []struct {
		name string
		task Task
		want string
	}{
		{name: "full mix", task: Full, want: "song"},
		{name: "instrument", task: Task{Channel: engine.All, Instrument: engine.One(0)}, want: "song_0001_chan_full"},
		{name: "channel and instrument", task: Task{Channel: engine.One(3), Instrument: engine.One(11)}, want: "song_0012_chan_0003"},
		{name: "channel only", task: Task{Channel: engine.One(2), Instrument: engine.All}, want: "song_full_chan_0002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Name("song", tt.task))
		})
	}
}

func TestName_NoCollisions(t *testing.T) {
	meta := engine.SongMetadata{ChannelCount: 64, InstrumentCount: 40, DurationSeconds: 1}

	var tasks []Task
	tasks = append(tasks, Plan(meta, Flags{Full: true, PerChannel: true})...)
	tasks = append(tasks, Plan(meta, Flags{PerInstrument: true})...)

	seen := make(map[string]Task, len(tasks))
	for _, task := range tasks {
		name := Name("song", task)
		if prev, ok := seen[name]; ok {
			t.Fatalf("%q produced by both %v and %v", name, prev, task)
		}
		seen[name] = task
	}
	assert.Len(t, seen, 1+64*40+40)
}

func TestName_Deterministic(t *testing.T) {
	task := TaskAt(song, 9, true)
	assert.Equal(t, Name("x", task), Name("x", task))
}
