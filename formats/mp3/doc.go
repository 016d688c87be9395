// SPDX-License-Identifier: EPL-2.0

// Package mp3 encodes rendered stems as MP3 and decodes MP3 files into an
// audio.Source.
//
// # Encoding
//
// The Encoder calls libmp3lame through cgo (-lmp3lame) with a constant
// bitrate and quality 0, the slowest and best search. Stereo 16-bit and
// float buffers go through the interleaved entry points; mono buffers pass
// a nil right channel. Encoding is one call over the whole stem followed by
// lame_encode_flush_nogap, into a buffer reserved to OutputBound(frames).
//
//	enc := mp3.NewEncoder(mp3.DefaultBitrate)
//	path, err := codec.WriteFile(fs, "out/song", pcm, enc)
//
// Builds without cgo report codec.ErrUnavailable.
//
// # Decoding
//
// The Decoder uses github.com/hajimehoshi/go-mp3, which always yields
// 16-bit stereo; mono files come back with both channels equal.
package mp3
