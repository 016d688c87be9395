// SPDX-License-Identifier: EPL-2.0

// Package modstems splits tracker modules into audio stems.
//
// A module is rendered by a synthesis engine (libopenmpt, see
// engine/openmpt) once per stem: the full mix, one stem per instrument, or
// one per (channel, instrument) pair. Every stem that is not pure silence
// is encoded into one of the output formats.
//
// # Packages
//
//   - engine: the port a synthesis engine implements, and its parameter record
//   - stems: which tasks a song produces and how their files are named
//   - render: buffer sizing, the worker pool, silence skipping
//   - codec: the encoder contract and the file lifecycle around it
//   - formats/*: wav, aiff, flac, ogg (Vorbis), mp3 and opus
//   - audio: decoded streams, used to read stems back
//
// This package ties the format packages together:
//
//	encs, err := modstems.Encoders(modstems.DefaultEncoderOptions())
//	enc, err := encs.Get("flac")
//
//	r, err := render.New(port, afero.NewOsFs(), enc, render.DefaultOptions())
//	sum, err := r.Run(ctx, paths, "out")
//
// Written stems can be checked with Inspect, which decodes a file with the
// decoder its extension selects:
//
//	rep, err := modstems.Inspect(afero.NewOsFs(), modstems.Decoders(), "out/song.flac")
//	fmt.Println(rep.SampleRate, rep.Channels, rep.Duration(), rep.Peak)
//
// # Output Formats
//
//   - wav: 16-bit PCM or 32-bit IEEE float, as rendered
//   - aiff: 16-bit PCM; float renders are stored as 24-bit
//   - flac: 16 or 24 bit, verified by decoding after writing
//   - ogg: Vorbis through libvorbisenc (cgo)
//   - mp3: constant bitrate through LAME (cgo)
//   - opus: Ogg Opus through libopus (cgo)
package modstems
