// SPDX-License-Identifier: EPL-2.0

// Package aiff encodes rendered stems as AIFF files and decodes AIFF files
// into an audio.Source.
//
// This package uses github.com/go-audio/aiff for both directions. AIFF is
// big-endian integer PCM only.
//
//   - 16-bit renders are written as 16-bit samples
//   - float renders are scaled by 2^23, truncated and written as 24-bit
//     samples, saturating at the 24-bit bounds
//
// Writing a stem:
//
//	path, err := codec.WriteFile(fs, "out/song_0001_chan_full", pcm, aiff.NewEncoder())
//
// The Decoder reads 16, 24 and 32-bit files and yields float32 samples
// normalized to [-1.0, 1.0].
package aiff
