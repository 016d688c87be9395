// SPDX-License-Identifier: EPL-2.0

// Package vorbis encodes rendered stems as Ogg Vorbis and decodes Ogg
// Vorbis files into an audio.Source.
//
// # Encoding
//
// The Encoder drives libvorbisenc through cgo (pkg-config vorbisenc). It
// takes float32 input only, mono or stereo; codec.WriteFile converts 16-bit
// renders first. The interleaved buffer is split into one planar slice per
// channel and submitted in blocks of one second (SampleRate frames). The
// last block carries the remainder unpadded.
//
// Each file is one stream moving through Opened, Encoding and Finalized.
// Finalize always runs, also after a block fails, so the encoder state is
// released; the failed file is then discarded by codec.WriteFile.
//
// # Bitrate strategies
//
//   - vbr: target Bitrate with bitrate management off
//   - quality: target Quality in [-0.1, 1.0]
//   - abr: average Bitrate
//   - constrained-abr: never above MaxBitrate
//
// For example:
//
//	enc := vorbis.NewEncoder(vorbis.Options{Strategy: vorbis.ABR, Bitrate: 160_000})
//
// Builds without cgo keep the package but the encoder reports
// codec.ErrUnavailable.
//
// # Decoding
//
// The Decoder uses github.com/jfreymuth/oggvorbis and yields interleaved
// float32 samples:
//
//	src, err := vorbis.Decoder{}.Decode(file)
package vorbis
