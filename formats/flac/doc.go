// SPDX-License-Identifier: EPL-2.0

// Package flac encodes rendered stems as FLAC through libFLAC and decodes
// FLAC streams into an audio.Source using github.com/mewkiz/flac.
//
// # Sample mapping
//
//   - 16-bit renders are stored as 16-bit samples, unchanged
//   - float renders are multiplied by 2^23 and truncated toward zero into
//     24-bit samples, saturating at the 24-bit bounds
//
// # Encoding
//
// The encoder runs at CompressionLevel with libFLAC's verifier on: every
// frame is decoded again while encoding and compared with its input. A
// mismatch is reported as a codec.EncodeError with Op codec.OpVerify, Err
// ErrVerify and a Detail naming the first differing sample. Other libFLAC
// failures carry its resolved state string in Detail.
//
// Rates above 65535 Hz that a frame header cannot encode are written as
// non-subset streams whose frames take the rate from STREAMINFO.
//
// Without cgo the encoder returns codec.ErrUnavailable; decoding is pure Go.
package flac
