// SPDX-License-Identifier: EPL-2.0

// Package codec defines the contract between the renderer and the output
// encoders under formats/.
//
// A rendered stem arrives as a PCM value: a little-endian interleaved
// buffer of int16 or float32 samples plus its rate and channel count. An
// Encoder turns one PCM value into one file body. WriteFile owns the file
// lifecycle around it:
//
//	path, err := codec.WriteFile(fs, "out/song_0001_chan_full", pcm, flac.NewEncoder())
//
// It appends the encoder extension, creates the file, encodes, closes, and
// removes the file again if any of those steps fail, so a failed stem never
// leaves a partial file behind.
//
// Encoders that only take float input implement FloatOnly; WriteFile gives
// them a converted copy of int16 renders. Encoders never modify PCM.Data.
package codec
