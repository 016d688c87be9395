// SPDX-License-Identifier: EPL-2.0

// Package stems enumerates the render tasks for one song and names their
// output files.
//
// A song with C channels and I instruments can be split three ways:
//
//   - the full mix (always stereo);
//   - one stem per instrument, every channel playing;
//   - one stem per (channel, instrument) pair, C*I tasks.
//
// The per-pair grid is addressed by a flat index so that a worker pool can
// fan out over it: index = instrument*C + channel.
//
//	tasks := stems.Plan(meta, stems.Flags{Full: true, PerChannel: true})
//	name := stems.Name("song", tasks[1]) // "song_0001_chan_0000"
package stems
